package main

import (
	"bytes"
	"encoding/json/v2"
	"fmt"
	"os"
	"slices"

	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderFlags struct {
	kind     string
	in       string
	out      string
	engineer string
	category string
	status   string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a document from a JSON record without the database",
	Long: `Renders one document with the configured logo and company identity.

Kinds and the JSON expected in --in:
  service    a report with data_json, --engineer optional
  onsite     an onsite report, --engineer optional
  quotation  a quotation with items
  surat      a handover letter with barang_items
  stock      an array of stock units, filtered by --category and --status
  stock-xlsx the same array written as a workbook`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderFlags.kind, "kind", "", "service, onsite, quotation, surat, stock or stock-xlsx")
	f.StringVar(&renderFlags.in, "in", "", "record JSON file")
	f.StringVar(&renderFlags.out, "out", "", "output file, default is the download name")
	f.StringVar(&renderFlags.engineer, "engineer", "", "engineer JSON file")
	f.StringVar(&renderFlags.category, "category", "all", "stock category: all, stock or demo")
	f.StringVar(&renderFlags.status, "status", "", "comma separated stock statuses")
	_ = renderCmd.MarkFlagRequired("kind")
	_ = renderCmd.MarkFlagRequired("in")
}

func runRender(cmd *cobra.Command, _ []string) error {
	c, cancel, err := initCore(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()
	defer c.ResourceCleanUp()
	docs, err := c.Assembler()
	if err != nil {
		return err
	}

	out, name, err := renderKind(cmd, docs)
	if err != nil {
		return err
	}
	if renderFlags.out != "" {
		name = renderFlags.out
	}
	if err = os.WriteFile(name, out, 0o644); err != nil {
		return err
	}
	zap.L().Info("document written", zap.String("kind", renderFlags.kind), zap.String("file", name), zap.Int("bytes", len(out)))
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}

func renderKind(cmd *cobra.Command, docs *documents.Assembler) ([]byte, string, error) {
	switch renderFlags.kind {
	case "service":
		var r models.Report
		if err := readJSON(renderFlags.in, &r); err != nil {
			return nil, "", err
		}
		eng, err := readEngineer()
		if err != nil {
			return nil, "", err
		}
		out, err := docs.ServiceReport(cmd.Context(), &r, eng)
		return out, documents.ReportFilename(r.ID), err
	case "onsite":
		var r models.OnsiteReport
		if err := readJSON(renderFlags.in, &r); err != nil {
			return nil, "", err
		}
		eng, err := readEngineer()
		if err != nil {
			return nil, "", err
		}
		r.Engineer = eng
		out, err := docs.OnsiteReport(&r)
		return out, documents.OnsiteFilename(&r), err
	case "quotation":
		var q models.Quotation
		if err := readJSON(renderFlags.in, &q); err != nil {
			return nil, "", err
		}
		out, err := docs.Quotation(&q)
		return out, documents.QuotationFilename(&q), err
	case "surat":
		var l models.HandoverLetter
		if err := readJSON(renderFlags.in, &l); err != nil {
			return nil, "", err
		}
		out, err := docs.HandoverLetter(&l)
		return out, documents.HandoverFilename(&l), err
	case "stock", "stock-xlsx":
		var units []*models.StockUnit
		if err := readJSON(renderFlags.in, &units); err != nil {
			return nil, "", err
		}
		f := models.ParseStockFilter(renderFlags.category, renderFlags.status)
		units = filterUnits(units, f)
		if len(units) == 0 {
			return nil, "", fmt.Errorf("no stock unit matches the filter")
		}
		if renderFlags.kind == "stock" {
			out, err := docs.StockRoster(units, f)
			return out, docs.StockFilename(f), err
		}
		var buf bytes.Buffer
		err := docs.StockWorkbook(&buf, units)
		return buf.Bytes(), docs.StockXLSXFilename(f), err
	}
	return nil, "", fmt.Errorf("unknown kind %q", renderFlags.kind)
}

// filterUnits applies the same selection as the stock export query
func filterUnits(units []*models.StockUnit, f models.StockFilter) []*models.StockUnit {
	var kept []*models.StockUnit
	for _, u := range units {
		if f.Category != models.CategoryAll && u.Category != f.Category {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, u.Status) {
			continue
		}
		kept = append(kept, u)
	}
	return kept
}

func readEngineer() (*models.Engineer, error) {
	if renderFlags.engineer == "" {
		return nil, nil
	}
	var e models.Engineer
	if err := readJSON(renderFlags.engineer, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

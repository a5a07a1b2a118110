package documents

import (
	"context"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/pdfs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// field is one data_json key printed as its own section
type field struct {
	Key   string
	Label string
}

var notesField = field{"notes", "Catatan"}

// reportSections lists the content sections of each variant in print order
var reportSections = map[models.ReportType][]field{
	models.ReportCommissioning: {
		{"scope", "Scope Pekerjaan"},
		{"pre_check", "Pre-Commissioning Check"},
		{"installation", "Instalasi"},
		{"calibration", "Kalibrasi"},
		{"test_result", "Hasil Pengujian"},
		{"conclusion", "Kesimpulan"},
		{"recommendation", "Rekomendasi"},
		notesField,
	},
	models.ReportInvestigation: {
		{"complaint", "Keluhan"},
		{"observation", "Observasi"},
		{"root_cause", "Akar Masalah"},
		{"analysis", "Analisa"},
		{"conclusion", "Kesimpulan"},
		{"recommendation", "Rekomendasi"},
		notesField,
	},
	models.ReportTroubleshooting: {
		{"problem", "Permasalahan"},
		{"symptom", "Gejala"},
		{"diagnosis", "Diagnosa"},
		{"action_taken", "Tindakan"},
		{"result", "Hasil"},
		{"recommendation", "Rekomendasi"},
		notesField,
	},
	models.ReportService: {
		{"scope", "Scope Pekerjaan"},
		{"work_performed", "Pekerjaan yang Dilakukan"},
		{"parts_replaced", "Part yang Diganti"},
		{"result", "Hasil"},
		{"recommendation", "Rekomendasi"},
		notesField,
	},
}

// headingColor picks the band color of a content section
func (s *sheet) headingColor(key string) pdfs.Color {
	switch key {
	case "conclusion", "result", "test_result":
		return s.c.Secondary
	case "root_cause", "diagnosis", "findings":
		return s.c.Purple
	case "recommendation":
		return s.c.Emerald
	case "parts_replaced":
		return s.c.Amber
	}
	return s.c.Primary
}

const (
	photoW   = 8.3 * pdfs.Cm
	photoH   = 6 * pdfs.Cm
	photoGap = 0.4 * pdfs.Cm
)

// ReportFilename is the download name of a service report
func ReportFilename(id int64) string {
	return "report_" + strconv.FormatInt(id, 10) + ".pdf"
}

// ServiceReport renders a commissioning, investigation, troubleshooting or service report.
// eng may be nil. Photos are read through the Assembler's FileLoader.
func (a *Assembler) ServiceReport(ctx context.Context, r *models.Report, eng *models.Engineer) ([]byte, error) {
	s, err := a.serviceSheet(ctx, r, eng)
	if err != nil {
		return nil, err
	}
	return s.render(s.doc.Title)
}

func (a *Assembler) serviceSheet(ctx context.Context, r *models.Report, eng *models.Engineer) (*sheet, error) {
	variant := r.Variant()
	title := strings.ToUpper(string(variant)) + " REPORT"
	s := a.newSheet(portraitA4, title)
	s.doc.Footer = a.standardFooter()

	s.header(8*pdfs.Cm, title, r.ReportNumber, 14)
	s.add(s.metaBand([]pair{
		{Label: "Nomor Report", Value: r.ReportNumber, Required: true},
		{Label: "Tanggal", Value: format.LongDate(r.ReportDate.Time), Required: true},
	}, 3, 5, 3, 6), pdfs.Space(0.4*pdfs.Cm))

	s.section("INFORMASI REPORT")
	s.infoGrid([]pair{
		{Label: "Client", Value: r.ClientName, Required: true},
		{Label: "Project", Value: r.ProjectName, Required: true},
		{Label: "Jenis Report", Value: variantLabel(variant), Required: true},
		{Label: "Status", Value: strings.ToUpper(r.Status), Required: true},
	})
	s.add(pdfs.Space(0.4 * pdfs.Cm))

	sections := reportSections[variant]
	printed := make(map[string]bool, len(sections))
	var content []field
	for _, f := range sections {
		printed[f.Key] = true
		if v, ok := r.Data.Get(f.Key); ok && strings.TrimSpace(v) != "" {
			content = append(content, f)
		}
	}
	if len(content) > 0 {
		s.section("DETAIL PEKERJAAN")
		for _, f := range content {
			v, _ := r.Data.Get(f.Key)
			s.textBlock(f.Label, v, s.headingColor(f.Key))
		}
	}

	var rest []models.DataField
	for _, f := range r.Data {
		if !printed[f.Key] && strings.TrimSpace(f.Value) != "" {
			rest = append(rest, f)
		}
	}
	if len(rest) > 0 {
		s.section("DATA LAINNYA")
		s.add(s.keyValueTable(rest), pdfs.Space(0.4*pdfs.Cm))
	}

	if len(r.Images) > 0 {
		photos, err := a.loadPhotos(ctx, r.Images)
		if err != nil {
			return nil, a.fail(title, err)
		}
		s.section("DOKUMENTASI")
		s.photoGrid(r.Images, photos)
	}

	engName, engSig, engSub := "", "", ""
	if eng != nil {
		engName, engSig, engSub = eng.Name, eng.SignatureData, eng.PositionLine()
	}
	s.section("TANDA TANGAN")
	s.add(s.signatureColumns([]signer{
		{Label: "ENGINEER", Signature: engSig, Name: engName, Sub: engSub},
		{Label: "CLIENT", Heading: s.c.Emerald, Fill: s.c.Mint, Name: r.ClientName, Sub: r.ProjectName},
	}, 0.5*pdfs.Cm))
	return s, nil
}

func variantLabel(t models.ReportType) string {
	return upperFirst(string(t))
}

// keyValueTable prints the leftover data_json keys, one per row
func (s *sheet) keyValueTable(fields []models.DataField) *pdfs.Table {
	t := s.table(pdfs.Scale(pdfs.Cm, 4.5, 12.5))
	t.RepeatHeader = false
	t.Grid = pdfs.Line(0.3, s.c.Border)
	label := s.style(pdfs.RoleLabel).WithFill(s.c.Accent).WithVAlign(pdfs.VAlignTop).WithPadding(pdfs.Pad(2.5))
	value := s.style(pdfs.RoleBody).WithPadding(pdfs.Pad(2.5))
	for _, f := range fields {
		s.tableRow(t, pdfs.Text(label, keyLabel(f.Key)), pdfs.Text(value, f.Value))
	}
	return t
}

// keyLabel turns "action_taken" into "Action Taken"
func keyLabel(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

// upperFirst title-cases the first rune of s
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// photo is the outcome of loading one report image
type photo struct {
	block pdfs.Block
	err   error
}

// loadPhotos reads and decodes every image concurrently. Results keep the input order.
// A file that cannot be read or decoded becomes a placeholder; only ctx aborts the load.
func (a *Assembler) loadPhotos(ctx context.Context, images []*models.ReportImage) ([]photo, error) {
	out := make([]photo, len(images))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, img := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := a.Files(img.FilePath)
			if err != nil {
				out[i] = photo{block: &pdfs.Blank{W: photoW, H: photoH}, err: err}
				return nil
			}
			b, err := pdfs.EmbedImageBytes(raw, photoW, photoH)
			out[i] = photo{block: b, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// photoGrid places the photos two per row with their captions
func (s *sheet) photoGrid(images []*models.ReportImage, photos []photo) {
	caption := s.style(pdfs.RoleMuted).WithAlign(pdfs.AlignCenter).WithPadding(pdfs.PadXY(1, 1.2))
	cells := make([]pdfs.Block, len(photos))
	for i, p := range photos {
		if p.err != nil {
			s.a.Logger.Warn("photo replaced by placeholder",
				zap.String("document", s.doc.Title), zap.String("path", images[i].FilePath), zap.Error(p.err))
		}
		text := images[i].Caption
		if text == "" {
			text = "Foto " + strconv.Itoa(i+1)
		}
		cells[i] = s.stack(photoW, p.block, pdfs.Text(caption, text))
	}
	for i := 0; i < len(cells); i += 2 {
		right := pdfs.Block(&pdfs.Blank{W: photoW})
		if i+1 < len(cells) {
			right = cells[i+1]
		}
		s.add(s.row(s.w, []float64{photoW, photoGap, photoW}, cells[i], &pdfs.Blank{W: photoGap}, right),
			pdfs.Space(0.3*pdfs.Cm))
	}
}

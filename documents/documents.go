// Package documents assembles Flotech records into laid-out PDF documents.
//
// Every builder turns one record into an ordered list of pdfs blocks on a fixed
// page template, then hands the document to the renderer. Builders keep no state
// between calls; the Assembler only holds read-only configuration.
package documents

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Christosun/flotech-report-system/pdfs"
	"go.uber.org/zap"
)

// ErrGeneration wraps every failure that aborts a document
var ErrGeneration = errors.New("documents: generation failed")

// Company is the identity printed in headers and footers
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Telp    string `json:"telp"`
	Email   string `json:"email"`
}

var Flotech = Company{
	Name:    "PT FLOTECH CONTROLS INDONESIA",
	Address: "Rukan Artha Gading Niaga, Blok F/7",
	City:    "Jl. Boulevard Artha Gading, Jakarta 14240",
	Telp:    "Telp: +6221 45850778 / Fax: +6221 45850779",
	Email:   "e-Mail: salesjkt@flotech.co.id / Website: www.flotech.com.sg",
}

// FileLoader reads the bytes of a stored photo
type FileLoader func(path string) ([]byte, error)

// Assembler builds every document variant
type Assembler struct {
	Palette *pdfs.Palette
	Company Company
	Clock   func() time.Time
	Logo    []byte     // raw logo image; nil prints the text mark
	Files   FileLoader // service report photos
	Logger  *zap.Logger
}

type Option func(*Assembler)

func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.Clock = now }
}

func WithLogo(raw []byte) Option {
	return func(a *Assembler) { a.Logo = raw }
}

func WithFiles(load FileLoader) Option {
	return func(a *Assembler) { a.Files = load }
}

func WithCompany(c Company) Option {
	return func(a *Assembler) { a.Company = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) { a.Logger = l }
}

func New(opts ...Option) *Assembler {
	a := &Assembler{
		Palette: pdfs.Default,
		Company: Flotech,
		Clock:   time.Now,
		Files:   os.ReadFile,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = zap.L()
	}
	return a
}

// LoadLogo reads the logo file. A missing file is not an error; the text mark is used.
func LoadLogo(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		zap.L().Warn("logo not found, using text mark", zap.String("path", path))
		return nil, nil
	}
	return raw, err
}

// render validates and paints doc. Layout contract violations are logged at ERROR.
func (a *Assembler) render(kind string, doc *pdfs.Document) ([]byte, error) {
	out, err := pdfs.Renderer{Clock: a.Clock}.Render(doc)
	if err != nil {
		return nil, a.fail(kind, err)
	}
	return out, nil
}

func (a *Assembler) fail(kind string, err error) error {
	if errors.Is(err, pdfs.ErrLayoutContract) {
		a.Logger.Error("layout contract violated", zap.String("document", kind), zap.Error(err))
	} else {
		a.Logger.Warn("document generation failed", zap.String("document", kind), zap.Error(err))
	}
	return fmt.Errorf("%w: %s: %w", ErrGeneration, kind, err)
}

var unsafeName = strings.NewReplacer("/", "-", "\\", "-", `"`, "", "\n", " ", "\r", " ")

// fileSafe keeps a record number usable as a download filename
func fileSafe(number string) string {
	return unsafeName.Replace(strings.TrimSpace(number))
}

package documents

import (
	"strings"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/pdfs"
)

// letterA4 leaves 16.5 cm between the side margins for the letter's column tables
var letterA4 = pdfs.PageTemplate{
	Size:    pdfs.A4Size,
	Margins: pdfs.Margins{Left: 2.25 * pdfs.Cm, Top: 2 * pdfs.Cm, Right: 2.25 * pdfs.Cm, Bottom: 3.5 * pdfs.Cm},
}

// letterWording is what changes between a serah and a terima letter
type letterWording struct {
	Title        string
	FirstRole    string
	SecondRole   string
	Action       string
	FirstColor   func(pdfs.Colors) pdfs.Color
	SecondColor  func(pdfs.Colors) pdfs.Color
	SecondTinted bool // second signature label on the mint fill
}

func primary(c pdfs.Colors) pdfs.Color { return c.Primary }
func emerald(c pdfs.Colors) pdfs.Color { return c.Emerald }

var wordings = map[models.LetterType]letterWording{
	models.LetterSerah: {
		Title:       "BERITA ACARA SERAH TERIMA BARANG",
		FirstRole:   "PIHAK PERTAMA (Yang Menyerahkan)",
		SecondRole:  "PIHAK KEDUA (Yang Menerima)",
		Action:      "menyerahkan kepada pihak kedua",
		FirstColor:  primary,
		SecondColor: emerald,
	},
	models.LetterTerima: {
		Title:        "BERITA ACARA PENERIMAAN BARANG",
		FirstRole:    "PIHAK PERTAMA (Yang Menerima)",
		SecondRole:   "PIHAK KEDUA (Yang Menyerahkan)",
		Action:       "menerima dari pihak kedua",
		FirstColor:   emerald,
		SecondColor:  primary,
		SecondTinted: true,
	},
}

// HandoverFilename is the download name of a handover letter
func HandoverFilename(l *models.HandoverLetter) string {
	return "Surat_" + fileSafe(l.SuratNumber) + ".pdf"
}

// HandoverLetter renders a serah or terima letter. The type decides the role
// wording and which party gets which color.
func (a *Assembler) HandoverLetter(l *models.HandoverLetter) ([]byte, error) {
	s := a.handoverSheet(l)
	return s.render(s.doc.Title)
}

func (a *Assembler) handoverSheet(l *models.HandoverLetter) *sheet {
	wd := wordings[l.Type()]
	s := a.newSheet(letterA4, wd.Title)
	s.doc.Footer = a.standardFooter()
	first, second := l.First(), l.Second()
	date := format.LongDate(l.SuratDate.Time)

	s.header(7.5*pdfs.Cm, wd.Title, l.SuratNumber, 12)
	s.add(s.metaBand([]pair{
		{Label: "Nomor Surat", Value: l.SuratNumber, Required: true},
		{Label: "Tanggal", Value: date, Required: true},
	}, 3, 6, 3, 4.5))
	if l.Perihal != "" {
		p := s.row(s.w, pdfs.Scale(pdfs.Cm, 3, 13.5),
			pdfs.Text(s.style(pdfs.RoleLabel), "Perihal"),
			pdfs.Text(s.style(pdfs.RoleValue).Regular(), l.Perihal),
		)
		p.Box = pdfs.Line(0.5, s.c.Border)
		s.add(p)
	}
	s.add(pdfs.Space(0.5 * pdfs.Cm))

	firstName, secondName := first.Name, second.Name
	if firstName == "" {
		firstName = "Pihak Pertama"
	}
	if secondName == "" {
		secondName = "Pihak Kedua"
	}
	opening := "Yang bertanda tangan di bawah ini, " + firstName + " selaku pihak pertama menyatakan bahwa telah " +
		wd.Action + " barang-barang kepada " + secondName +
		" selaku pihak kedua, dengan rincian sebagaimana tercantum di bawah ini."
	s.add(pdfs.Text(s.style(pdfs.RoleBody).WithSize(10).WithPadding(pdfs.Padding{}), opening), pdfs.Space(0.5*pdfs.Cm))

	const gap = 0.4 * pdfs.Cm
	colW := (s.w - gap) / 2
	s.add(s.twoColumns(
		s.partyBlock(partyOf(first), wd.FirstRole, wd.FirstColor(s.c), colW),
		s.partyBlock(partyOf(second), wd.SecondRole, wd.SecondColor(s.c), colW),
		gap,
	), pdfs.Space(0.5*pdfs.Cm))

	s.section("DAFTAR BARANG")
	items := s.itemTable(handoverColumns, handoverRows(l.BarangItems))
	items.Grid = pdfs.Border{}
	items.HeadBelow = pdfs.Line(0.2, s.c.Border)
	s.add(items)

	if l.Catatan != "" {
		s.add(pdfs.Space(0.3 * pdfs.Cm))
		s.textBlock("CATATAN", l.Catatan, s.c.Secondary)
	}

	closing := "Demikian Berita Acara ini dibuat dan ditandatangani oleh kedua belah pihak pada tanggal " + date +
		" sebagai bukti yang sah atas serah terima barang tersebut di atas."
	const qrSide = 2.2 * pdfs.Cm
	s.add(pdfs.Space(0.5*pdfs.Cm), s.row(s.w, []float64{s.w - qrSide, qrSide},
		pdfs.Text(s.style(pdfs.RoleBody).WithColor(s.c.Gray).WithPadding(pdfs.Padding{Right: 3}), closing),
		s.qrMark(a.verification("BAST", l.SuratNumber, date), qrSide),
	), pdfs.Space(0.4*pdfs.Cm))

	secondFill := s.c.Accent
	if wd.SecondTinted {
		secondFill = s.c.Mint
	}
	s.add(s.signatureColumns([]signer{
		{
			Label:     roleLines(wd.FirstRole),
			Heading:   wd.FirstColor(s.c),
			Signature: first.Signature,
			Name:      first.Name,
			Sub:       jobLine(first),
		},
		{
			Label:     roleLines(wd.SecondRole),
			Heading:   wd.SecondColor(s.c),
			Fill:      secondFill,
			Signature: second.Signature,
			Name:      second.Name,
			Sub:       jobLine(second),
		},
	}, gap))
	return s
}

// roleLines breaks "PIHAK PERTAMA (Yang Menerima)" before the parenthesis
func roleLines(role string) string {
	if head, tail, ok := strings.Cut(role, " ("); ok {
		return head + "\n(" + tail
	}
	return role
}

// jobLine is "title\ncompany", or the company alone when there is no title
func jobLine(p models.Party) string {
	if p.Title == "" {
		return p.Company
	}
	return p.Title + "\n" + p.Company
}

func partyOf(p models.Party) party {
	return party{Name: p.Name, Title: p.Title, Company: p.Company, Address: p.Address}
}

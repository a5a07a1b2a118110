package documents

import (
	"strings"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/Christosun/flotech-report-system/pdfs"
)

// QuotationFilename is the download name of a quotation
func QuotationFilename(q *models.Quotation) string {
	return "Quotation_" + fileSafe(q.QuotationNumber) + ".pdf"
}

// Quotation renders the offer with its item table, PPN aggregates and a QR mark.
func (a *Assembler) Quotation(q *models.Quotation) ([]byte, error) {
	return a.quotationSheet(q).render(quotationTitle)
}

const quotationTitle = "QUOTATION"

func (a *Assembler) quotationSheet(q *models.Quotation) *sheet {
	s := a.newSheet(portraitA4, quotationTitle)
	s.doc.Footer = a.standardFooter()
	date := format.LongDate(q.CreatedAt.Time)

	s.header(8*pdfs.Cm, quotationTitle, q.QuotationNumber, 14)
	s.add(
		s.metaBand([]pair{
			{Label: "Nomor Quotation", Value: q.QuotationNumber, Required: true},
			{Label: "Tanggal", Value: date, Required: true},
		}, 3, 5, 3, 6),
		s.metaBand([]pair{
			{Label: "Berlaku s/d", Value: validUntil(q.ValidUntil)},
			{Label: "Status", Value: strings.ToUpper(q.Status), Required: true},
		}, 3, 5, 3, 6),
		pdfs.Space(0.5*pdfs.Cm),
	)

	const gap = 0.4 * pdfs.Cm
	colW := (s.w - gap) / 2
	co := a.Company
	s.add(s.twoColumns(
		s.partyBlock(party{
			Name:    q.CustomerName,
			Company: q.CustomerCompany,
			Title:   contactLine(q.CustomerEmail, q.CustomerPhone),
			Address: q.CustomerAddress,
		}, "KEPADA", s.c.Primary, colW),
		s.partyBlock(party{
			Company: co.Name,
			Title:   co.Telp,
			Address: co.Address + "\n" + co.City,
		}, "DARI", s.c.Secondary, colW),
		gap,
	), pdfs.Space(0.4*pdfs.Cm))

	s.infoGrid([]pair{
		{Label: "Project", Value: q.ProjectName},
		{Label: "Kategori", Value: q.Category},
		{Label: "Mata Uang", Value: q.Currency},
	})
	s.add(pdfs.Space(0.4 * pdfs.Cm))

	s.section("RINCIAN PENAWARAN")
	s.add(s.itemTable(quotationColumns, quotationRows(q.Items)))
	s.add(s.aggregates(ComputeTotals(q.Items))...)
	s.add(pdfs.Space(0.5 * pdfs.Cm))

	s.textBlock("CATATAN", q.Notes, s.c.Secondary)
	s.textBlock("SYARAT & KETENTUAN", q.Terms, s.c.Primary)

	s.add(pdfs.Space(0.5*pdfs.Cm), s.closingBlock(q, date))
	return s
}

// closingBlock is the QR mark on the left and the company signature on the right
func (s *sheet) closingBlock(q *models.Quotation, date string) *pdfs.RowGroup {
	const (
		qrSide = 2.6 * pdfs.Cm
		signW  = 7 * pdfs.Cm
	)
	muted := s.style(pdfs.RoleMuted)
	mark := s.qrMark(s.a.verification("Quotation", q.QuotationNumber, date), qrSide)
	if img, ok := mark.(*pdfs.ImageBlock); ok {
		img.Align = pdfs.AlignLeft
	}
	left := s.stack(s.w-signW, mark,
		pdfs.Text(muted.WithPadding(pdfs.Padding{Top: 1}), "Scan untuk verifikasi dokumen"))
	sub := s.style(pdfs.RoleSignatureSub)
	right := s.stack(signW,
		pdfs.Text(s.style(pdfs.RoleBody).WithAlign(pdfs.AlignCenter), "Hormat kami,"),
		pdfs.Text(sub.Bold().WithColor(s.c.Primary).WithSize(9), s.a.Company.Name),
		&pdfs.Blank{W: sigW, H: sigH},
		&pdfs.Rule{Thickness: 0.5 * pdfs.Pt, Color: s.c.Border, Width: signW - 1.5*pdfs.Cm},
		pdfs.Text(sub, "Authorized Signature"),
	)
	return s.row(s.w, []float64{s.w - signW, signW}, left, right)
}

func validUntil(d nullable.Date) string {
	if !d.Valid {
		return ""
	}
	return format.LongDate(d.Time)
}

// contactLine joins email and phone with the absent parts dropped
func contactLine(email, phone string) string {
	var parts []string
	for _, p := range []string{email, phone} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "  |  ")
}

package documents

import (
	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/pdfs"
)

// OnsiteFilename is the download name of an onsite report
func OnsiteFilename(r *models.OnsiteReport) string {
	return "OnsiteReport_" + fileSafe(r.ReportNumber) + ".pdf"
}

// OnsiteReport renders a site visit with its engineer resolved in r.Engineer.
func (a *Assembler) OnsiteReport(r *models.OnsiteReport) ([]byte, error) {
	return a.onsiteSheet(r).render(onsiteTitle)
}

const onsiteTitle = "ONSITE SERVICE REPORT"

func (a *Assembler) onsiteSheet(r *models.OnsiteReport) *sheet {
	s := a.newSheet(portraitA4, onsiteTitle)
	s.doc.Footer = a.standardFooter()

	s.header(8*pdfs.Cm, onsiteTitle, r.ReportNumber, 14)
	s.add(s.metaBand([]pair{
		{Label: "Nomor Report", Value: r.ReportNumber, Required: true},
		{Label: "Tanggal Kunjungan", Value: format.LongDate(r.VisitDate.Time), Required: true},
	}, 3, 5, 3, 6), pdfs.Space(0.4*pdfs.Cm))

	s.section("INFORMASI CLIENT / CUSTOMER")
	s.infoGrid([]pair{
		{Label: "Perusahaan / Instansi", Value: r.ClientCompany},
		{Label: "Nama Client / PIC", Value: r.ClientName},
		{Label: "Contact Person", Value: r.ContactPerson},
		{Label: "No. Telepon", Value: r.ContactPhone},
		{Label: "Lokasi / Site", Value: r.SiteLocation},
		{Label: "Alamat", Value: r.ClientAddress},
	})
	s.add(pdfs.Space(0.4 * pdfs.Cm))

	eng := r.Engineer
	if r.EquipmentTag != "" || r.EquipmentModel != "" || r.SerialNumber != "" {
		engName := ""
		if eng != nil {
			engName = eng.Name
		}
		s.section("DATA PERALATAN")
		s.infoGrid([]pair{
			{Label: "Tag / ID Alat", Value: r.EquipmentTag},
			{Label: "Model / Type", Value: r.EquipmentModel},
			{Label: "Serial Number", Value: r.SerialNumber},
			{Label: "Engineer", Value: engName},
		})
		s.add(pdfs.Space(0.4 * pdfs.Cm))
	}

	s.section("DETAIL PEKERJAAN")
	s.textBlock("Deskripsi / Scope Pekerjaan", r.JobDescription, s.c.Primary)
	s.textBlock("Pekerjaan yang Dilakukan", r.WorkPerformed, s.c.Secondary)
	s.textBlock("Temuan / Findings", r.Findings, s.c.Purple)
	s.textBlock("Rekomendasi", r.Recommendations, s.c.Emerald)
	s.textBlock("Material / Parts Digunakan", r.MaterialsUsed, s.c.Amber)
	s.add(pdfs.Space(0.3 * pdfs.Cm))

	engineer := signer{Label: "ENGINEER"}
	if eng != nil {
		engineer.Signature, engineer.Name, engineer.Sub = eng.SignatureData, eng.Name, eng.PositionLine()
	}
	s.section("TANDA TANGAN")
	s.add(s.signatureColumns([]signer{
		engineer,
		{
			Label:     "CUSTOMER / CLIENT",
			Heading:   s.c.Emerald,
			Fill:      s.c.Mint,
			Signature: r.CustomerSignature,
			Name:      r.ClientName,
			Sub:       r.ClientCompany,
		},
	}, 0))
	return s
}

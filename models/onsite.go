package models

import (
	"time"

	"github.com/Christosun/flotech-report-system/nullable"
)

type OnsiteReport struct {
	ID                int64         `json:"id"`
	ReportNumber      string        `json:"report_number"`
	VisitDate         nullable.Date `json:"visit_date"`
	ClientName        string        `json:"client_name"`
	ClientCompany     string        `json:"client_company"`
	ClientAddress     string        `json:"client_address"`
	SiteLocation      string        `json:"site_location"`
	ContactPerson     string        `json:"contact_person"`
	ContactPhone      string        `json:"contact_phone"`
	EngineerID        nullable.Int  `json:"engineer_id"`
	JobDescription    string        `json:"job_description"`
	EquipmentTag      string        `json:"equipment_tag"`
	EquipmentModel    string        `json:"equipment_model"`
	SerialNumber      string        `json:"serial_number"`
	WorkPerformed     string        `json:"work_performed"`
	Findings          string        `json:"findings"`
	Recommendations   string        `json:"recommendations"`
	MaterialsUsed     string        `json:"materials_used"`
	CustomerSignature string        `json:"customer_signature,omitzero"`
	Status            string        `json:"status"`
	CreatedBy         nullable.Int  `json:"created_by"`
	CreatedAt         nullable.Time `json:"created_at"`
	UpdatedAt         nullable.Time `json:"updated_at"`

	Engineer *Engineer `json:"-"`
}

func (r *OnsiteReport) TargetFields() []any {
	return []any{
		&r.ID, &r.ReportNumber, &r.VisitDate, &r.ClientName, &r.ClientCompany,
		&r.ClientAddress, &r.SiteLocation, &r.ContactPerson, &r.ContactPhone,
		&r.EngineerID, &r.JobDescription, &r.EquipmentTag, &r.EquipmentModel,
		&r.SerialNumber, &r.WorkPerformed, &r.Findings, &r.Recommendations,
		&r.MaterialsUsed, &r.CustomerSignature, &r.Status, &r.CreatedBy,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *OnsiteReport) GetID() int64 {
	return r.ID
}

// EngineerFK is nil when no engineer is assigned
func (r *OnsiteReport) EngineerFK() *int64 {
	if !r.EngineerID.Valid || r.EngineerID.Int64 == 0 {
		return nil
	}
	return &r.EngineerID.Int64
}

// OnsiteView is the JSON shape of an onsite report with its engineer resolved
type OnsiteView struct {
	*OnsiteReport `json:",inline"`

	EngineerName      *string `json:"engineer_name"`
	EngineerPosition  *string `json:"engineer_position"`
	EngineerSignature *string `json:"engineer_signature,omitzero"`
}

// View flattens the engineer. withSignatures keeps both signatures.
func (r *OnsiteReport) View(withSignatures bool) OnsiteView {
	v := OnsiteView{OnsiteReport: r}
	if r.Engineer != nil {
		v.EngineerName = &r.Engineer.Name
		v.EngineerPosition = &r.Engineer.Position
		if withSignatures {
			v.EngineerSignature = &r.Engineer.SignatureData
		}
	}
	if !withSignatures && r.CustomerSignature != "" {
		cp := *r
		cp.CustomerSignature = ""
		v.OnsiteReport = &cp
	}
	return v
}

type OnsitePatch struct {
	ReportNumber      *string       `json:"report_number"`
	VisitDate         *string       `json:"visit_date"`
	ClientName        *string       `json:"client_name"`
	ClientCompany     *string       `json:"client_company"`
	ClientAddress     *string       `json:"client_address"`
	SiteLocation      *string       `json:"site_location"`
	ContactPerson     *string       `json:"contact_person"`
	ContactPhone      *string       `json:"contact_phone"`
	EngineerID        *nullable.Int `json:"engineer_id"`
	JobDescription    *string       `json:"job_description"`
	EquipmentTag      *string       `json:"equipment_tag"`
	EquipmentModel    *string       `json:"equipment_model"`
	SerialNumber      *string       `json:"serial_number"`
	WorkPerformed     *string       `json:"work_performed"`
	Findings          *string       `json:"findings"`
	Recommendations   *string       `json:"recommendations"`
	MaterialsUsed     *string       `json:"materials_used"`
	CustomerSignature *string       `json:"customer_signature"`
	Status            *string       `json:"status"`
}

// Apply copies every sent field onto r. engineer_id 0 unassigns.
func (p *OnsitePatch) Apply(r *OnsiteReport, now time.Time) {
	setString(&r.ReportNumber, p.ReportNumber)
	setDate(&r.VisitDate, p.VisitDate)
	setString(&r.ClientName, p.ClientName)
	setString(&r.ClientCompany, p.ClientCompany)
	setString(&r.ClientAddress, p.ClientAddress)
	setString(&r.SiteLocation, p.SiteLocation)
	setString(&r.ContactPerson, p.ContactPerson)
	setString(&r.ContactPhone, p.ContactPhone)
	if p.EngineerID != nil {
		r.EngineerID = *p.EngineerID
		if r.EngineerID.Int64 == 0 {
			r.EngineerID = nullable.Int{}
		}
	}
	setString(&r.JobDescription, p.JobDescription)
	setString(&r.EquipmentTag, p.EquipmentTag)
	setString(&r.EquipmentModel, p.EquipmentModel)
	setString(&r.SerialNumber, p.SerialNumber)
	setString(&r.WorkPerformed, p.WorkPerformed)
	setString(&r.Findings, p.Findings)
	setString(&r.Recommendations, p.Recommendations)
	setString(&r.MaterialsUsed, p.MaterialsUsed)
	setString(&r.CustomerSignature, p.CustomerSignature)
	setString(&r.Status, p.Status)
	if r.Status == "" {
		r.Status = StatusDraft
	}
	r.UpdatedAt = nullable.TimeOf(now)
}

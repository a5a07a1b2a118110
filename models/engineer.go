package models

import (
	"time"

	"github.com/Christosun/flotech-report-system/nullable"
)

type Engineer struct {
	ID              int64         `json:"id"`
	UserID          nullable.Int  `json:"user_id"`
	Name            string        `json:"name"`
	EmployeeID      string        `json:"employee_id"`
	Position        string        `json:"position"`
	Department      string        `json:"department"`
	Specialization  string        `json:"specialization"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Certification   string        `json:"certification"`
	YearsExperience int64         `json:"years_experience"`
	SignatureData   string        `json:"signature_data,omitzero"` // list queries leave it empty
	HasSignature    bool          `json:"has_signature"`
	CreatedAt       nullable.Time `json:"created_at"`
	UpdatedAt       nullable.Time `json:"updated_at"`
}

func (e *Engineer) TargetFields() []any {
	return []any{
		&e.ID, &e.UserID, &e.Name, &e.EmployeeID, &e.Position, &e.Department,
		&e.Specialization, &e.Email, &e.Phone, &e.Certification, &e.YearsExperience,
		&e.SignatureData, &e.HasSignature, &e.CreatedAt, &e.UpdatedAt,
	}
}

func (e *Engineer) GetID() int64 {
	return e.ID
}

// PositionLine is "position  |  employee_id" with absent parts dropped
func (e *Engineer) PositionLine() string {
	switch {
	case e.EmployeeID == "":
		return e.Position
	case e.Position == "":
		return "  |  " + e.EmployeeID
	}
	return e.Position + "  |  " + e.EmployeeID
}

// EngineerPatch carries the fields of a create or update request.
// nil means "not sent".
type EngineerPatch struct {
	UserID          *nullable.Int `json:"user_id"`
	Name            *string       `json:"name"`
	EmployeeID      *string       `json:"employee_id"`
	Position        *string       `json:"position"`
	Department      *string       `json:"department"`
	Specialization  *string       `json:"specialization"`
	Email           *string       `json:"email"`
	Phone           *string       `json:"phone"`
	Certification   *string       `json:"certification"`
	YearsExperience *nullable.Int `json:"years_experience"`
	SignatureData   *string       `json:"signature_data"`
}

// Apply copies every sent field onto e. An empty signature never replaces a stored one.
func (p *EngineerPatch) Apply(e *Engineer, now time.Time) {
	setInt(&e.UserID, p.UserID)
	setString(&e.Name, p.Name)
	setString(&e.EmployeeID, p.EmployeeID)
	setString(&e.Position, p.Position)
	setString(&e.Department, p.Department)
	setString(&e.Specialization, p.Specialization)
	setString(&e.Email, p.Email)
	setString(&e.Phone, p.Phone)
	setString(&e.Certification, p.Certification)
	if p.YearsExperience != nil {
		e.YearsExperience = p.YearsExperience.ForceValue()
	}
	if p.SignatureData != nil && *p.SignatureData != "" {
		e.SignatureData = *p.SignatureData
	}
	e.HasSignature = e.SignatureData != ""
	e.UpdatedAt = nullable.TimeOf(now)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *nullable.Int, src *nullable.Int) {
	if src != nil {
		*dst = *src
	}
}

// setDate keeps dst when src is absent or does not parse
func setDate(dst *nullable.Date, src *string) {
	if src == nil || *src == "" {
		return
	}
	if d, err := nullable.ParseDate(*src); err == nil {
		*dst = d
	}
}

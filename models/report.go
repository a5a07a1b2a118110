package models

import (
	"strings"

	"github.com/Christosun/flotech-report-system/nullable"
)

// ReportType tags the service report variants
type ReportType string

const (
	ReportCommissioning   ReportType = "commissioning"
	ReportInvestigation   ReportType = "investigation"
	ReportTroubleshooting ReportType = "troubleshooting"
	ReportService         ReportType = "service"
)

// ParseReportType is case-insensitive. Unknown types map to ReportService.
func ParseReportType(s string) ReportType {
	switch t := ReportType(strings.ToLower(strings.TrimSpace(s))); t {
	case ReportCommissioning, ReportInvestigation, ReportTroubleshooting:
		return t
	}
	return ReportService
}

type Report struct {
	ID           int64          `json:"id"`
	ReportNumber string         `json:"report_number"`
	ReportType   string         `json:"report_type"`
	ClientName   string         `json:"client_name"`
	ProjectName  string         `json:"project_name"`
	EngineerID   nullable.Int   `json:"engineer_id"`
	ReportDate   nullable.Date  `json:"report_date"`
	Status       string         `json:"status"`
	Data         DataFields     `json:"data_json"`
	CreatedAt    nullable.Time  `json:"created_at"`
	Images       []*ReportImage `json:"images,omitzero"`
}

func (r *Report) TargetFields() []any {
	return []any{
		&r.ID, &r.ReportNumber, &r.ReportType, &r.ClientName, &r.ProjectName,
		&r.EngineerID, &r.ReportDate, &r.Status, &r.Data, &r.CreatedAt,
	}
}

func (r *Report) GetID() int64 {
	return r.ID
}

func (r *Report) Variant() ReportType {
	return ParseReportType(r.ReportType)
}

type ReportImage struct {
	ID         int64         `json:"id"`
	ReportID   int64         `json:"report_id"`
	FilePath   string        `json:"file_path"`
	Caption    string        `json:"caption,omitzero"`
	UploadedAt nullable.Time `json:"uploaded_at"`
}

func (i *ReportImage) TargetFields() []any {
	return []any{&i.ID, &i.ReportID, &i.FilePath, &i.Caption, &i.UploadedAt}
}

func (i *ReportImage) GetID() int64 {
	return i.ID
}

// ReportInput is the create request body
type ReportInput struct {
	ReportNumber string       `json:"report_number"`
	ReportType   string       `json:"report_type"`
	ClientName   string       `json:"client_name"`
	ProjectName  string       `json:"project_name"`
	EngineerID   nullable.Int `json:"engineer_id"`
	ReportDate   string       `json:"report_date"`
	Status       string       `json:"status"`
	Data         DataFields   `json:"data_json"`
}

// ToReport builds the row to insert. report_date must be "2006-01-02" or empty.
func (in *ReportInput) ToReport() (*Report, error) {
	date, err := nullable.ParseDate(in.ReportDate)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	return &Report{
		ReportNumber: in.ReportNumber,
		ReportType:   in.ReportType,
		ClientName:   in.ClientName,
		ProjectName:  in.ProjectName,
		EngineerID:   in.EngineerID,
		ReportDate:   date,
		Status:       status,
		Data:         in.Data,
	}, nil
}

const StatusDraft = "draft"

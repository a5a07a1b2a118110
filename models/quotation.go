package models

import (
	"database/sql/driver"
	"time"

	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/shopspring/decimal"
)

type QuotationItem struct {
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Qty         Number `json:"qty"`
	Unit        string `json:"unit"`
	UnitPrice   Number `json:"unit_price"`
	Discount    Number `json:"discount"`
	Remarks     string `json:"remarks"`
}

// DiscountPercent is clamped to [0,100]
func (i QuotationItem) DiscountPercent() decimal.Decimal {
	d := i.Discount.Decimal()
	switch {
	case d.IsNegative():
		return decimal.Zero
	case d.GreaterThan(hundred):
		return hundred
	}
	return d
}

// Subtotal is unit_price × qty × (1 − discount/100), unrounded
func (i QuotationItem) Subtotal() decimal.Decimal {
	keep := decimal.NewFromInt(1).Sub(i.DiscountPercent().Div(hundred))
	return i.UnitPrice.Decimal().Mul(i.Qty.Decimal()).Mul(keep)
}

var hundred = decimal.NewFromInt(100)

type QuotationItems []QuotationItem

// Sum of every item subtotal, unrounded
func (items QuotationItems) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (items *QuotationItems) Scan(value any) error {
	*items = nil
	return scanJSON(value, items)
}

func (items QuotationItems) Value() (driver.Value, error) {
	if items == nil {
		items = QuotationItems{}
	}
	return valueJSON([]QuotationItem(items))
}

type Quotation struct {
	ID              int64           `json:"id"`
	QuotationNumber string          `json:"quotation_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerCompany string          `json:"customer_company"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	ProjectName     string          `json:"project_name"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	ValidUntil      nullable.Date   `json:"valid_until"`
	Currency        string          `json:"currency"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Notes           string          `json:"notes"`
	Terms           string          `json:"terms"`
	Items           QuotationItems  `json:"items"`
	CreatedBy       nullable.Int    `json:"created_by"`
	CreatedAt       nullable.Time   `json:"created_at"`
	UpdatedAt       nullable.Time   `json:"updated_at"`
}

func (q *Quotation) TargetFields() []any {
	return []any{
		&q.ID, &q.QuotationNumber, &q.CustomerName, &q.CustomerCompany,
		&q.CustomerEmail, &q.CustomerPhone, &q.CustomerAddress, &q.ProjectName,
		&q.Category, &q.Status, &q.ValidUntil, &q.Currency, &q.TotalAmount,
		&q.Notes, &q.Terms, &q.Items, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
	}
}

func (q *Quotation) GetID() int64 {
	return q.ID
}

// QuotationInput is the create request body
type QuotationInput struct {
	QuotationNumber string         `json:"quotation_number"`
	CustomerName    string         `json:"customer_name"`
	CustomerCompany string         `json:"customer_company"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `json:"customer_address"`
	ProjectName     string         `json:"project_name"`
	Category        string         `json:"category"`
	Status          string         `json:"status"`
	ValidUntil      string         `json:"valid_until"`
	Currency        string         `json:"currency"`
	TotalAmount     Number         `json:"total_amount"`
	Notes           string         `json:"notes"`
	Terms           string         `json:"terms"`
	Items           QuotationItems `json:"items"`
}

// ToQuotation builds the row to insert.
// An unparsable valid_until is dropped. A missing total is computed from the items.
func (in *QuotationInput) ToQuotation(createdBy int64, now time.Time) *Quotation {
	validUntil, err := nullable.ParseDate(in.ValidUntil)
	if err != nil {
		validUntil = nullable.Date{}
	}
	q := &Quotation{
		QuotationNumber: in.QuotationNumber,
		CustomerName:    in.CustomerName,
		CustomerCompany: in.CustomerCompany,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		ProjectName:     in.ProjectName,
		Category:        in.Category,
		Status:          in.Status,
		ValidUntil:      validUntil,
		Currency:        in.Currency,
		TotalAmount:     in.TotalAmount.Decimal(),
		Notes:           in.Notes,
		Terms:           in.Terms,
		Items:           in.Items,
		CreatedBy:       nullable.IntOf(createdBy),
		CreatedAt:       nullable.TimeOf(now),
		UpdatedAt:       nullable.TimeOf(now),
	}
	if q.Status == "" {
		q.Status = StatusDraft
	}
	if q.Currency == "" {
		q.Currency = "IDR"
	}
	if !in.TotalAmount.Valid {
		q.TotalAmount = in.Items.Sum()
	}
	if q.Items == nil {
		q.Items = QuotationItems{}
	}
	return q
}

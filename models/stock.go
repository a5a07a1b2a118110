package models

import (
	"strings"
	"time"

	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/shopspring/decimal"
)

const (
	CategoryStock = "stock"
	CategoryDemo  = "demo"
	CategoryAll   = "all"

	StockAvailable = "available"
	StockOnLoan    = "on_loan"
	StockDemo      = "demo"
	StockInRepair  = "in_repair"
	StockSold      = "sold"
	StockRetired   = "retired"

	ConditionGood = "good"
)

// StockStatus is how a unit status prints. Colors are "#RRGGBB".
type StockStatus struct {
	Label string
	Fill  string
	Ink   string
}

var stockStatuses = map[string]StockStatus{
	StockAvailable: {"Available", "#D1FAE5", "#065F46"},
	StockOnLoan:    {"On Loan", "#FEF3C7", "#92400E"},
	StockDemo:      {"Demo", "#DBEAFE", "#1E40AF"},
	StockInRepair:  {"In Repair", "#FEF9C3", "#713F12"},
	StockSold:      {"Sold", "#F3F4F6", "#4B5563"},
	StockRetired:   {"Retired", "#E5E7EB", "#374151"},
}

// StatusOf returns the print form of status. Unknown statuses print as-is on the default colors.
func StatusOf(status string) StockStatus {
	if s, ok := stockStatuses[status]; ok {
		return s
	}
	label := status
	if label == "" {
		label = "—"
	}
	return StockStatus{Label: label, Fill: "#F3F4F6", Ink: "#374151"}
}

// KnownStatus reports whether status is one of the fixed unit statuses
func KnownStatus(status string) bool {
	_, ok := stockStatuses[status]
	return ok
}

var conditionLabels = map[string]string{
	"excellent": "Excellent",
	"good":      "Good",
	"fair":      "Fair",
	"poor":      "Poor",
	"damaged":   "Damaged",
}

func ConditionLabel(condition string) string {
	if l, ok := conditionLabels[condition]; ok {
		return l
	}
	if condition == "" {
		return "—"
	}
	return condition
}

type StockUnit struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Brand         string              `json:"brand"`
	Model         string              `json:"model"`
	SerialNumber  string              `json:"serial_number"`
	AssetTag      string              `json:"asset_tag"`
	Type          string              `json:"type"`
	Category      string              `json:"category"`
	Condition     string              `json:"condition"`
	Status        string              `json:"status"`
	Location      string              `json:"location"`
	LoanTo        string              `json:"loan_to"`
	LoanDate      nullable.Date       `json:"loan_date"`
	ReturnDate    nullable.Date       `json:"return_date"`
	PurchaseDate  nullable.Date       `json:"purchase_date"`
	PurchasePrice decimal.NullDecimal `json:"purchase_price"`
	Description   string              `json:"description"`
	Remarks       string              `json:"remarks"`
	CreatedAt     nullable.Time       `json:"created_at"`
	UpdatedAt     nullable.Time       `json:"updated_at"`
}

func (u *StockUnit) TargetFields() []any {
	return []any{
		&u.ID, &u.Name, &u.Brand, &u.Model, &u.SerialNumber, &u.AssetTag, &u.Type,
		&u.Category, &u.Condition, &u.Status, &u.Location, &u.LoanTo, &u.LoanDate,
		&u.ReturnDate, &u.PurchaseDate, &u.PurchasePrice, &u.Description, &u.Remarks,
		&u.CreatedAt, &u.UpdatedAt,
	}
}

func (u *StockUnit) GetID() int64 {
	return u.ID
}

// Notes joins loan, return and remarks the way the roster prints them
func (u *StockUnit) Notes() string {
	var parts []string
	if u.LoanTo != "" {
		parts = append(parts, "Pinjam: "+u.LoanTo)
	}
	if u.ReturnDate.Valid {
		parts = append(parts, "Kembali: "+u.ReturnDate.Time.Format("02/01/06"))
	}
	if u.Remarks != "" {
		parts = append(parts, u.Remarks)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " | ")
}

func (u *StockUnit) CategoryLabel() string {
	if u.Category == CategoryDemo {
		return "Demo"
	}
	return "Stock"
}

type StockPatch struct {
	Name          *string `json:"name"`
	Brand         *string `json:"brand"`
	Model         *string `json:"model"`
	SerialNumber  *string `json:"serial_number"`
	AssetTag      *string `json:"asset_tag"`
	Type          *string `json:"type"`
	Category      *string `json:"category"`
	Condition     *string `json:"condition"`
	Status        *string `json:"status"`
	Location      *string `json:"location"`
	LoanTo        *string `json:"loan_to"`
	LoanDate      *string `json:"loan_date"`
	ReturnDate    *string `json:"return_date"`
	PurchaseDate  *string `json:"purchase_date"`
	PurchasePrice *Number `json:"purchase_price"`
	Description   *string `json:"description"`
	Remarks       *string `json:"remarks"`
}

// Apply copies every sent field onto u and fills the defaults.
// Sent dates that do not parse clear the stored date.
func (p *StockPatch) Apply(u *StockUnit, now time.Time) {
	setString(&u.Name, p.Name)
	setString(&u.Brand, p.Brand)
	setString(&u.Model, p.Model)
	setString(&u.SerialNumber, p.SerialNumber)
	setString(&u.AssetTag, p.AssetTag)
	setString(&u.Type, p.Type)
	setString(&u.Category, p.Category)
	setString(&u.Condition, p.Condition)
	setString(&u.Status, p.Status)
	setString(&u.Location, p.Location)
	setString(&u.LoanTo, p.LoanTo)
	resetDate(&u.LoanDate, p.LoanDate)
	resetDate(&u.ReturnDate, p.ReturnDate)
	resetDate(&u.PurchaseDate, p.PurchaseDate)
	if p.PurchasePrice != nil {
		u.PurchasePrice = decimal.NullDecimal{Decimal: p.PurchasePrice.Value, Valid: p.PurchasePrice.Valid}
	}
	setString(&u.Description, p.Description)
	setString(&u.Remarks, p.Remarks)
	if u.Category == "" {
		u.Category = CategoryStock
	}
	if u.Condition == "" {
		u.Condition = ConditionGood
	}
	if u.Status == "" {
		u.Status = StockAvailable
	}
	u.UpdatedAt = nullable.TimeOf(now)
}

func resetDate(dst *nullable.Date, src *string) {
	if src == nil {
		return
	}
	d, err := nullable.ParseDate(*src)
	if err != nil {
		d = nullable.Date{}
	}
	*dst = d
}

// StockFilter selects the roster rows. Statuses is empty for "all statuses".
type StockFilter struct {
	Category string
	Statuses []string
}

// ParseStockFilter reads ?category=all|stock|demo&status=a,b
func ParseStockFilter(category, status string) StockFilter {
	f := StockFilter{Category: CategoryAll}
	if category == CategoryStock || category == CategoryDemo {
		f.Category = category
	}
	for _, s := range strings.Split(status, ",") {
		if s = strings.TrimSpace(s); s != "" {
			f.Statuses = append(f.Statuses, s)
		}
	}
	return f
}

// CategoryArg is "" when every category matches
func (f StockFilter) CategoryArg() string {
	if f.Category == CategoryAll {
		return ""
	}
	return f.Category
}

package stores

import (
	"context"
	"fmt"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/models"
)

var (
	stockColumns      map[string]sqldb.Column
	stockDefaultOrder sqldb.OrderBy
	stockTieBreak     []sqldb.OrderBy
)

func init() {
	var err error
	stockColumns, err = sqldb.Sortable("id", "name", "brand", "category", "status", "location", "created_at", "updated_at")
	if err != nil {
		panic(fmt.Errorf("stores: stock sort columns: %w", err))
	}
	stockDefaultOrder = sqldb.OrderBy{Column: stockColumns["name"]}
	stockTieBreak = []sqldb.OrderBy{{Column: stockColumns["brand"]}, {Column: stockColumns["id"]}}
}

// Stock stores the stock and demo units
type Stock struct {
	base
}

// Find returns the units matching f, ordered by sort ("name", "-updated_at", ...).
// Unknown sort keys fall back to name.
func (s *Stock) Find(ctx context.Context, f models.StockFilter, sort string) ([]*models.StockUnit, error) {
	// `?` ordinals 1-3 precede the status list
	statuses := len(f.Statuses)
	args := []any{f.CategoryArg(), f.CategoryArg(), statuses}
	if statuses == 0 {
		args = append(args, "")
	}
	for _, st := range f.Statuses {
		args = append(args, st)
	}
	stmt, err := s.expand("filter", 4, max(statuses, 1))
	if err != nil {
		return nil, err
	}
	orders := append([]sqldb.OrderBy{sqldb.ParseOrderBy(sort, stockColumns, stockDefaultOrder)}, stockTieBreak...)
	return sqldb.QueryItems[models.StockUnit, *models.StockUnit](ctx, s.q, stmt+sqldb.OrderByClause(orders), args...)
}

func (s *Stock) Get(ctx context.Context, id int64) (*models.StockUnit, error) {
	stmt, err := s.stmt("get")
	if err != nil {
		return nil, err
	}
	u, err := sqldb.QueryItem[models.StockUnit, *models.StockUnit](ctx, s.q, stmt, id)
	return u, translate(err)
}

func (s *Stock) Create(ctx context.Context, u *models.StockUnit) error {
	s.stamp(&u.CreatedAt, &u.UpdatedAt)
	id, err := s.insert(ctx, "insert", s.args(u, u.CreatedAt, u.UpdatedAt)...)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (s *Stock) Update(ctx context.Context, u *models.StockUnit) error {
	s.stamp(nil, &u.UpdatedAt)
	_, err := s.exec(ctx, "update", s.args(u, u.UpdatedAt, u.ID)...)
	return err
}

func (s *Stock) Delete(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete", id)
}

func (s *Stock) args(u *models.StockUnit, tail ...any) []any {
	args := []any{
		u.Name, u.Brand, u.Model, u.SerialNumber, u.AssetTag, u.Type, u.Category,
		u.Condition, u.Status, u.Location, u.LoanTo, u.LoanDate, u.ReturnDate,
		u.PurchaseDate, u.PurchasePrice, u.Description, u.Remarks,
	}
	return append(args, tail...)
}

package stores

import (
	"context"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
)

type Quotations struct {
	base
}

// List returns the quotations newest first. Notes, terms and items are left empty.
func (s *Quotations) List(ctx context.Context) ([]*models.Quotation, error) {
	stmt, err := s.stmt("list")
	if err != nil {
		return nil, err
	}
	return sqldb.QueryItems[models.Quotation, *models.Quotation](ctx, s.q, stmt)
}

func (s *Quotations) Get(ctx context.Context, id int64) (*models.Quotation, error) {
	stmt, err := s.stmt("get")
	if err != nil {
		return nil, err
	}
	q, err := sqldb.QueryItem[models.Quotation, *models.Quotation](ctx, s.q, stmt, id)
	return q, translate(err)
}

// Create stores q and sets its ID. A taken quotation number is ErrDuplicate.
func (s *Quotations) Create(ctx context.Context, q *models.Quotation) error {
	s.stamp(&q.CreatedAt, &q.UpdatedAt)
	if q.Items == nil {
		q.Items = models.QuotationItems{}
	}
	id, err := s.insert(ctx, "insert",
		nullable.StringOf(q.QuotationNumber), q.CustomerName, q.CustomerCompany,
		q.CustomerEmail, q.CustomerPhone, q.CustomerAddress, q.ProjectName, q.Category,
		q.Status, q.ValidUntil, q.Currency, q.TotalAmount, q.Notes, q.Terms, q.Items,
		q.CreatedBy, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return err
	}
	q.ID = id
	return nil
}

func (s *Quotations) SetStatus(ctx context.Context, id int64, status string) error {
	return s.execOne(ctx, "update_status", status, nullable.TimeOf(s.now()), id)
}

func (s *Quotations) Delete(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete", id)
}

package stores

import (
	"context"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/Christosun/flotech-report-system/orm"
)

type Engineers struct {
	base
}

// List returns every engineer without signature bytes. HasSignature is still set.
func (s *Engineers) List(ctx context.Context) ([]*models.Engineer, error) {
	stmt, err := s.stmt("list")
	if err != nil {
		return nil, err
	}
	return sqldb.QueryItems[models.Engineer, *models.Engineer](ctx, s.q, stmt)
}

func (s *Engineers) Get(ctx context.Context, id int64) (*models.Engineer, error) {
	stmt, err := s.stmt("get")
	if err != nil {
		return nil, err
	}
	e, err := sqldb.QueryItem[models.Engineer, *models.Engineer](ctx, s.q, stmt, id)
	return e, translate(err)
}

// GetMany loads the engineers with the given ids, signatures included
func (s *Engineers) GetMany(ctx context.Context, ids []int64) (*orm.Collection[*models.Engineer, int64], error) {
	if len(ids) == 0 {
		return orm.NewEmptyCollection[*models.Engineer, int64](), nil
	}
	stmt, err := s.expand("get_many", 1, len(ids))
	if err != nil {
		return nil, err
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	items, err := sqldb.QueryItems[models.Engineer, *models.Engineer](ctx, s.q, stmt, args...)
	if err != nil {
		return nil, err
	}
	return orm.NewCollection[*models.Engineer, int64](items), nil
}

// Create stores e and sets its ID. A taken employee_id is ErrDuplicate.
func (s *Engineers) Create(ctx context.Context, e *models.Engineer) error {
	s.stamp(&e.CreatedAt, &e.UpdatedAt)
	e.HasSignature = e.SignatureData != ""
	id, err := s.insert(ctx, "insert",
		e.UserID, e.Name, nullable.StringOf(e.EmployeeID), e.Position, e.Department,
		e.Specialization, e.Email, e.Phone, e.Certification, e.YearsExperience,
		nullable.StringOf(e.SignatureData), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// Update writes every column of e back
func (s *Engineers) Update(ctx context.Context, e *models.Engineer) error {
	s.stamp(nil, &e.UpdatedAt)
	_, err := s.exec(ctx, "update",
		e.UserID, e.Name, nullable.StringOf(e.EmployeeID), e.Position, e.Department,
		e.Specialization, e.Email, e.Phone, e.Certification, e.YearsExperience,
		nullable.StringOf(e.SignatureData), e.UpdatedAt, e.ID,
	)
	return err
}

func (s *Engineers) SetSignature(ctx context.Context, id int64, signature string) error {
	return s.execOne(ctx, "set_signature", nullable.StringOf(signature), nullable.TimeOf(s.now()), id)
}

func (s *Engineers) Delete(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete", id)
}

package stores

import (
	"context"
	"strings"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/models"
)

type Users struct {
	base
}

func (s *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	stmt, err := s.stmt("get")
	if err != nil {
		return nil, err
	}
	u, err := sqldb.QueryItem[models.User, *models.User](ctx, s.q, stmt, id)
	return u, translate(err)
}

// GetByEmail matches the address case-insensitively
func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	stmt, err := s.stmt("get_by_email")
	if err != nil {
		return nil, err
	}
	u, err := sqldb.QueryItem[models.User, *models.User](ctx, s.q, stmt, normalizeEmail(email))
	return u, translate(err)
}

func (s *Users) List(ctx context.Context) ([]*models.User, error) {
	stmt, err := s.stmt("list")
	if err != nil {
		return nil, err
	}
	return sqldb.QueryItems[models.User, *models.User](ctx, s.q, stmt)
}

// Create stores u and sets its ID. A taken email is ErrDuplicate.
func (s *Users) Create(ctx context.Context, u *models.User) error {
	u.Email = normalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = models.RoleEngineer
	}
	s.stamp(&u.CreatedAt, nil)
	id, err := s.insert(ctx, "insert", u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (s *Users) SetPassword(ctx context.Context, id int64, hash string) error {
	return s.execOne(ctx, "set_password", hash, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

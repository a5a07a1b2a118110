package stores

import (
	"context"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
)

// Handovers stores the handover letters (surat serah terima)
type Handovers struct {
	base
}

// List returns the letters newest first without signatures
func (s *Handovers) List(ctx context.Context) ([]*models.HandoverLetter, error) {
	stmt, err := s.stmt("list")
	if err != nil {
		return nil, err
	}
	return sqldb.QueryItems[models.HandoverLetter, *models.HandoverLetter](ctx, s.q, stmt)
}

func (s *Handovers) Get(ctx context.Context, id int64) (*models.HandoverLetter, error) {
	stmt, err := s.stmt("get")
	if err != nil {
		return nil, err
	}
	l, err := sqldb.QueryItem[models.HandoverLetter, *models.HandoverLetter](ctx, s.q, stmt, id)
	return l, translate(err)
}

func (s *Handovers) Create(ctx context.Context, l *models.HandoverLetter) error {
	s.stamp(&l.CreatedAt, &l.UpdatedAt)
	if l.Status == "" {
		l.Status = models.StatusDraft
	}
	id, err := s.insert(ctx, "insert", s.args(l, l.CreatedBy, l.CreatedAt, l.UpdatedAt)...)
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

func (s *Handovers) Update(ctx context.Context, l *models.HandoverLetter) error {
	s.stamp(nil, &l.UpdatedAt)
	_, err := s.exec(ctx, "update", s.args(l, l.UpdatedAt, l.ID)...)
	return err
}

func (s *Handovers) Delete(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete", id)
}

// args lists the content columns shared by insert and update, then tail
func (s *Handovers) args(l *models.HandoverLetter, tail ...any) []any {
	if l.BarangItems == nil {
		l.BarangItems = models.HandoverItems{}
	}
	args := []any{
		l.SuratNumber, string(l.Type()), l.SuratDate, l.Perihal,
		l.PihakPertamaNama, l.PihakPertamaJabatan, l.PihakPertamaPerusahaan,
		l.PihakPertamaAlamat, nullable.StringOf(l.PihakPertamaSignature),
		l.PihakKeduaNama, l.PihakKeduaJabatan, l.PihakKeduaPerusahaan,
		l.PihakKeduaAlamat, nullable.StringOf(l.PihakKeduaSignature),
		l.BarangItems, l.Catatan, l.Status,
	}
	return append(args, tail...)
}

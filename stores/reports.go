package stores

import (
	"context"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/orm"
)

type Reports struct {
	base
}

// List returns the service reports newest first, without images
func (s *Reports) List(ctx context.Context) ([]*models.Report, error) {
	stmt, err := s.stmt("list")
	if err != nil {
		return nil, err
	}
	return sqldb.QueryItems[models.Report, *models.Report](ctx, s.q, stmt)
}

// Get returns the report with its images in upload order
func (s *Reports) Get(ctx context.Context, id int64) (*models.Report, error) {
	stmt, err := s.stmt("get")
	if err != nil {
		return nil, err
	}
	r, err := sqldb.QueryItem[models.Report, *models.Report](ctx, s.q, stmt, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.attachImages(ctx, orm.NewCollection[*models.Report, int64]([]*models.Report{r})); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Reports) attachImages(ctx context.Context, reports *orm.Collection[*models.Report, int64]) error {
	if reports.Len() == 0 {
		return nil
	}
	stmt, err := s.expand("images", 1, reports.Len())
	if err != nil {
		return err
	}
	images, err := sqldb.QueryItems[models.ReportImage, *models.ReportImage](ctx, s.q, stmt, reports.IDsAsAny()...)
	if err != nil {
		return err
	}
	orm.LinkHasMany(reports, orm.NewCollection[*models.ReportImage, int64](images),
		func(img *models.ReportImage) int64 { return img.ReportID },
		func(r *models.Report) *[]*models.ReportImage { return &r.Images },
	)
	return nil
}

func (s *Reports) Create(ctx context.Context, r *models.Report) error {
	s.stamp(&r.CreatedAt, nil)
	if r.Data == nil {
		r.Data = models.DataFields{}
	}
	id, err := s.insert(ctx, "insert",
		r.ReportNumber, r.ReportType, r.ClientName, r.ProjectName, r.EngineerID,
		r.ReportDate, r.Status, r.Data, r.CreatedAt,
	)
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// AddImage records an already stored file against its report
func (s *Reports) AddImage(ctx context.Context, img *models.ReportImage) error {
	s.stamp(&img.UploadedAt, nil)
	id, err := s.insert(ctx, "insert_image", img.ReportID, img.FilePath, img.Caption, img.UploadedAt)
	if err != nil {
		return err
	}
	img.ID = id
	return nil
}

// Delete removes the report. Its image rows go with it.
func (s *Reports) Delete(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete", id)
}

package stores

import (
	"context"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/Christosun/flotech-report-system/orm"
)

type OnsiteReports struct {
	base
	engineers *Engineers
}

// List returns the onsite reports newest first with their engineers linked
func (s *OnsiteReports) List(ctx context.Context) ([]*models.OnsiteReport, error) {
	stmt, err := s.stmt("list")
	if err != nil {
		return nil, err
	}
	items, err := sqldb.QueryItems[models.OnsiteReport, *models.OnsiteReport](ctx, s.q, stmt)
	if err != nil {
		return nil, err
	}
	if err := s.linkEngineers(ctx, orm.NewCollection[*models.OnsiteReport, int64](items)); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *OnsiteReports) Get(ctx context.Context, id int64) (*models.OnsiteReport, error) {
	stmt, err := s.stmt("get")
	if err != nil {
		return nil, err
	}
	r, err := sqldb.QueryItem[models.OnsiteReport, *models.OnsiteReport](ctx, s.q, stmt, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.linkEngineers(ctx, orm.NewCollection[*models.OnsiteReport, int64]([]*models.OnsiteReport{r})); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *OnsiteReports) linkEngineers(ctx context.Context, reports *orm.Collection[*models.OnsiteReport, int64]) error {
	ids := orm.CollectUniqueToSlice(reports, (*models.OnsiteReport).EngineerFK)
	engineers, err := s.engineers.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	orm.LinkOptionalBelongsTo(reports, engineers,
		(*models.OnsiteReport).EngineerFK,
		func(r *models.OnsiteReport) **models.Engineer { return &r.Engineer },
	)
	return nil
}

func (s *OnsiteReports) Create(ctx context.Context, r *models.OnsiteReport) error {
	s.stamp(&r.CreatedAt, &r.UpdatedAt)
	if r.Status == "" {
		r.Status = models.StatusDraft
	}
	id, err := s.insert(ctx, "insert",
		r.ReportNumber, r.VisitDate, r.ClientName, r.ClientCompany, r.ClientAddress,
		r.SiteLocation, r.ContactPerson, r.ContactPhone, r.EngineerID, r.JobDescription,
		r.EquipmentTag, r.EquipmentModel, r.SerialNumber, r.WorkPerformed, r.Findings,
		r.Recommendations, r.MaterialsUsed, nullable.StringOf(r.CustomerSignature), r.Status,
		r.CreatedBy, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

func (s *OnsiteReports) Update(ctx context.Context, r *models.OnsiteReport) error {
	s.stamp(nil, &r.UpdatedAt)
	_, err := s.exec(ctx, "update",
		r.ReportNumber, r.VisitDate, r.ClientName, r.ClientCompany, r.ClientAddress,
		r.SiteLocation, r.ContactPerson, r.ContactPhone, r.EngineerID, r.JobDescription,
		r.EquipmentTag, r.EquipmentModel, r.SerialNumber, r.WorkPerformed, r.Findings,
		r.Recommendations, r.MaterialsUsed, nullable.StringOf(r.CustomerSignature), r.Status,
		r.UpdatedAt, r.ID,
	)
	return err
}

func (s *OnsiteReports) Delete(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete", id)
}

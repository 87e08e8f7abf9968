package services

import (
	"context"
	"strings"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// ReportInput files an employee report
type ReportInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// ReportQuery filters the report listing
type ReportQuery struct {
	EmployeeID string              `form:"employeeId"`
	Status     models.ReportStatus `form:"status"`
	PageQuery
}

// ReportService handles employee reports
type ReportService struct {
	deps *Dependencies
}

// NewReportService creates a new report service
func NewReportService(deps *Dependencies) *ReportService {
	return &ReportService{deps: deps}
}

// Create files a report on behalf of an employee
func (s *ReportService) Create(ctx context.Context, actor Actor, input ReportInput) (*models.EmployeeReport, error) {
	if actor.Role != models.RoleEmployee {
		return nil, forbidden()
	}
	if err := validate(input); err != nil {
		return nil, err
	}
	report := &models.EmployeeReport{
		EmployeeID: actor.UserID,
		Title:      strings.TrimSpace(input.Title),
		Content:    input.Content,
		Status:     models.ReportStatusPending,
	}
	if err := s.deps.Store.Reports.Create(ctx, report); err != nil {
		return nil, fromRepo(err, i18n.ReportNotFound)
	}
	return report, nil
}

// FindAll lists reports; employees only see their own
func (s *ReportService) FindAll(ctx context.Context, actor Actor, query ReportQuery) ([]models.EmployeeReport, error) {
	filter := repositories.ReportFilter{
		EmployeeID: query.EmployeeID,
		Status:     query.Status,
		Page:       repositories.Page{Limit: query.Limit, Offset: query.Offset},
	}
	if !actor.IsAdmin() {
		filter.EmployeeID = actor.UserID
	}
	reports, err := s.deps.Store.Reports.FindAll(ctx, filter)
	return reports, fromRepo(err, i18n.ReportNotFound)
}

// FindOne returns a report to an admin or its author
func (s *ReportService) FindOne(ctx context.Context, actor Actor, id string) (*models.EmployeeReport, error) {
	report, err := s.deps.Store.Reports.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.ReportNotFound)
	}
	if !actor.CanAccess(report.EmployeeID) {
		return nil, forbidden()
	}
	return report, nil
}

// UpdateStatus marks a report reviewed or resolved
func (s *ReportService) UpdateStatus(ctx context.Context, id string, status models.ReportStatus) (*models.EmployeeReport, error) {
	if status != models.ReportStatusReviewed && status != models.ReportStatusResolved {
		return nil, badRequest(i18n.ErrValidation)
	}
	report, err := s.deps.Store.Reports.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, i18n.ReportNotFound)
	}
	report.Status = status
	if err := s.deps.Store.Reports.Save(ctx, report); err != nil {
		return nil, fromRepo(err, i18n.ReportNotFound)
	}
	return report, nil
}

// Remove deletes a report for an admin or its author
func (s *ReportService) Remove(ctx context.Context, actor Actor, id string) error {
	if _, err := s.FindOne(ctx, actor, id); err != nil {
		return err
	}
	return fromRepo(s.deps.Store.Reports.Delete(ctx, id), i18n.ReportNotFound)
}

package report

import (
	"context"
	"fmt"
	"log/slog"
)

type Repository interface {
	DepartmentCompletion(ctx context.Context) ([]DepartmentCompletion, error)
	ReporteeCompletion(ctx context.Context, managerID int64) ([]ReporteeCompletion, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) DepartmentCompletion(ctx context.Context) ([]DepartmentCompletion, error) {
	rows, err := s.repo.DepartmentCompletion(ctx)
	if err != nil {
		return nil, fmt.Errorf("department completion report: %w", err)
	}
	if rows == nil {
		rows = []DepartmentCompletion{}
	}
	return rows, nil
}

// ReporteeCompletion covers the reportees linked to managerID only.
func (s *Service) ReporteeCompletion(ctx context.Context, managerID int64) ([]ReporteeCompletion, error) {
	rows, err := s.repo.ReporteeCompletion(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("reportee completion report: %w", err)
	}
	if rows == nil {
		rows = []ReporteeCompletion{}
	}
	return rows, nil
}

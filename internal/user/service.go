package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"gorm.io/gorm"
)

// Repository getters return nil, nil when the row does not exist.
type Repository interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	List(ctx context.Context) ([]*userDatamodel.User, error)

	CreateDepartment(ctx context.Context, d *userDatamodel.Department) error
	GetDepartmentByID(ctx context.Context, id int64) (*userDatamodel.Department, error)
	GetDepartmentByName(ctx context.Context, name string) (*userDatamodel.Department, error)
	ListDepartments(ctx context.Context) ([]*userDatamodel.Department, error)

	CreateManagerLink(ctx context.Context, link *userDatamodel.ManagerRelationship) error
	LinkExists(ctx context.Context, managerID, reporteeID int64) (bool, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.FullName = strings.TrimSpace(dto.FullName)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	if dto.DepartmentID != nil {
		if err := s.ensureDepartment(ctx, *dto.DepartmentID); err != nil {
			return nil, err
		}
	}

	role := coreuser.RoleEmployee
	if dto.Role != "" {
		role, _ = coreuser.ParseRole(dto.Role)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		FullName:     dto.FullName,
		PasswordHash: hash,
		Role:         string(role),
		DepartmentID: dto.DepartmentID,
		IsActive:     active,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", row.ID, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

// Exists lets other modules check a user id without loading the account.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

func (s *Service) CreateDepartment(ctx context.Context, dto CreateDepartmentDTO) (*Department, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetDepartmentByName(ctx, dto.Name)
	if err != nil {
		return nil, fmt.Errorf("lookup department: %w", err)
	}
	if existing != nil {
		return nil, internal.ErrDepartmentExists
	}

	row := &userDatamodel.Department{Name: dto.Name}
	if err := s.repo.CreateDepartment(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrDepartmentExists
		}
		return nil, fmt.Errorf("create department: %w", err)
	}
	return DepartmentFromDataModel(row), nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	rows, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	departments := make([]*Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, DepartmentFromDataModel(row))
	}
	return departments, nil
}

// LinkReportee records managerID → reporteeID. Self links are rejected.
func (s *Service) LinkReportee(ctx context.Context, managerID int64, dto LinkReporteeDTO) (*ManagerLink, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if managerID == dto.ReporteeID {
		return nil, internal.ErrSelfReporting
	}

	for _, id := range []int64{managerID, dto.ReporteeID} {
		ok, err := s.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lookup user %d: %w", id, err)
		}
		if !ok {
			return nil, internal.ErrUserNotFound
		}
	}

	linked, err := s.repo.LinkExists(ctx, managerID, dto.ReporteeID)
	if err != nil {
		return nil, fmt.Errorf("lookup link: %w", err)
	}
	if linked {
		return nil, internal.ErrReporteeLinked
	}

	row := &userDatamodel.ManagerRelationship{ManagerID: managerID, ReporteeID: dto.ReporteeID}
	if err := s.repo.CreateManagerLink(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrReporteeLinked
		}
		return nil, fmt.Errorf("create manager link: %w", err)
	}

	s.logger.InfoContext(ctx, "reportee linked", "manager_id", managerID, "reportee_id", dto.ReporteeID)
	return &ManagerLink{ID: row.ID, ManagerID: row.ManagerID, ReporteeID: row.ReporteeID}, nil
}

// IsReportee satisfies auth.ReporteeChecker.
func (s *Service) IsReportee(ctx context.Context, managerID, reporteeID int64) (bool, error) {
	return s.repo.LinkExists(ctx, managerID, reporteeID)
}

func (s *Service) ensureDepartment(ctx context.Context, id int64) error {
	d, err := s.repo.GetDepartmentByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup department: %w", err)
	}
	if d == nil {
		return internal.ErrDepartmentNotFound
	}
	return nil
}

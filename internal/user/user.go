package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
)

type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	FullName     string        `json:"full_name"`
	PasswordHash string        `json:"-"`
	Role         coreuser.Role `json:"role"`
	DepartmentID *int64        `json:"department_id"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ManagerLink struct {
	ID         int64 `json:"id"`
	ManagerID  int64 `json:"manager_id"`
	ReporteeID int64 `json:"reportee_id"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		DepartmentID: u.DepartmentID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         coreuser.Role(u.Role),
		DepartmentID: u.DepartmentID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func DepartmentFromDataModel(d *userDatamodel.Department) *Department {
	return &Department{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt}
}

package user

type CreateUserDTO struct {
	Email        string `json:"email" validate:"required,email,max=255"`
	FullName     string `json:"full_name" validate:"required,max=200"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Role         string `json:"role" validate:"omitempty,oneof=EMPLOYEE MANAGER ADMIN SUPER_ADMIN"`
	DepartmentID *int64 `json:"department_id" validate:"omitempty,gt=0"`
	IsActive     *bool  `json:"is_active"`
}

type CreateDepartmentDTO struct {
	Name string `json:"name" validate:"required,max=120"`
}

type LinkReporteeDTO struct {
	ReporteeID int64 `json:"reportee_id" validate:"required,gt=0"`
}

package report

// DepartmentCompletion counts, per department, the employees who completed at
// least one mandatory training. It does not require every mandatory training.
type DepartmentCompletion struct {
	DepartmentID                   int64  `json:"department_id" db:"department_id"`
	DepartmentName                 string `json:"department_name" db:"department_name"`
	TotalEmployees                 int64  `json:"total_employees" db:"total_employees"`
	EmployeesCompletedMandatoryAny int64  `json:"employees_completed_mandatory_any" db:"employees_completed_mandatory_any"`
}

type ReporteeCompletion struct {
	UserID             int64  `json:"user_id" db:"user_id"`
	Name               string `json:"name" db:"name"`
	Email              string `json:"email" db:"email"`
	CompletedMandatory int64  `json:"completed_mandatory" db:"completed_mandatory"`
	TotalMandatory     int64  `json:"total_mandatory" db:"total_mandatory"`
}

const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

package postgres

import (
	"context"

	"github.com/frahmantamala/ld-portal/internal/report"
	"github.com/jmoiron/sqlx"
)

const statusCompleted = "COMPLETED"

// Departments without employees are left out, matching the inner join.
const departmentCompletionQuery = `
SELECT
	d.id   AS department_id,
	d.name AS department_name,
	COUNT(u.id) AS total_employees,
	(
		SELECT COUNT(DISTINCT e.user_id)
		FROM enrollments e
		JOIN users eu ON eu.id = e.user_id
		JOIN trainings t ON t.id = e.training_id
		WHERE eu.department_id = d.id
		  AND t.is_mandatory = ?
		  AND e.status = ?
	) AS employees_completed_mandatory_any
FROM departments d
JOIN users u ON u.department_id = d.id
GROUP BY d.id, d.name
ORDER BY d.id`

const reporteeCompletionQuery = `
SELECT
	u.id        AS user_id,
	u.full_name AS name,
	u.email     AS email,
	(
		SELECT COUNT(DISTINCT e.training_id)
		FROM enrollments e
		JOIN trainings t ON t.id = e.training_id
		WHERE e.user_id = u.id
		  AND t.is_mandatory = ?
		  AND e.status = ?
	) AS completed_mandatory,
	(SELECT COUNT(*) FROM trainings mt WHERE mt.is_mandatory = ?) AS total_mandatory
FROM manager_relationships mr
JOIN users u ON u.id = mr.reportee_id
WHERE mr.manager_id = ?
ORDER BY u.id`

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) DepartmentCompletion(ctx context.Context) ([]report.DepartmentCompletion, error) {
	var rows []report.DepartmentCompletion
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(departmentCompletionQuery), true, statusCompleted)
	return rows, err
}

func (r *ReportRepository) ReporteeCompletion(ctx context.Context, managerID int64) ([]report.ReporteeCompletion, error) {
	var rows []report.ReporteeCompletion
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(reporteeCompletionQuery), true, statusCompleted, true, managerID)
	return rows, err
}

package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null;size:255"`
	FullName     string    `gorm:"column:full_name;not null;size:200"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null;size:32;default:EMPLOYEE"`
	DepartmentID *int64    `gorm:"column:department_id;index"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

type Department struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null;size:120"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Department) TableName() string { return "departments" }

type ManagerRelationship struct {
	ID         int64     `gorm:"primaryKey"`
	ManagerID  int64     `gorm:"column:manager_id;not null;uniqueIndex:uq_manager_reportee"`
	ReporteeID int64     `gorm:"column:reportee_id;not null;uniqueIndex:uq_manager_reportee;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ManagerRelationship) TableName() string { return "manager_relationships" }

package profile

import (
	"time"

	"github.com/frahmantamala/ld-portal/internal/core/common/validation"
	profileDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/profile"
)

const HistoryStatusCompleted = "COMPLETED"

// Profile is the read model returned by the profile endpoints.
type Profile struct {
	UserID                        int64            `json:"user_id"`
	TechStack                     *string          `json:"tech_stack"`
	TotalLearningHoursCurrentYear int              `json:"total_learning_hours_current_year"`
	Certifications                []*Certification `json:"certifications"`
	TrainingHistory               []*HistoryEntry  `json:"training_history"`
}

type Certification struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	Issuer           *string   `json:"issuer"`
	IssueDate        *string   `json:"issue_date"`
	ExpiryDate       *string   `json:"expiry_date"`
	LinkedTrainingID *int64    `json:"linked_training_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type HistoryEntry struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	TrainingID     int64     `json:"training_id"`
	Status         string    `json:"status"`
	CompletionDate string    `json:"completion_date"`
	HoursCredited  int       `json:"hours_credited"`
	CreatedAt      time.Time `json:"created_at"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validation.DateLayout)
	return &s
}

func CertificationFromDataModel(c *profileDatamodel.Certification) *Certification {
	return &Certification{
		ID:               c.ID,
		UserID:           c.UserID,
		Name:             c.Name,
		Issuer:           c.Issuer,
		IssueDate:        formatDate(c.IssueDate),
		ExpiryDate:       formatDate(c.ExpiryDate),
		LinkedTrainingID: c.LinkedTrainingID,
		CreatedAt:        c.CreatedAt,
	}
}

func HistoryFromDataModel(h *profileDatamodel.TrainingHistoryEntry) *HistoryEntry {
	return &HistoryEntry{
		ID:             h.ID,
		UserID:         h.UserID,
		TrainingID:     h.TrainingID,
		Status:         h.Status,
		CompletionDate: h.CompletionDate.Format(validation.DateLayout),
		HoursCredited:  h.HoursCredited,
		CreatedAt:      h.CreatedAt,
	}
}

package certificate

import (
	"fmt"
	"time"

	certificateDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/certificate"
)

type Certificate struct {
	ID           int64     `json:"id"`
	Serial       string    `json:"serial"`
	UserID       int64     `json:"user_id"`
	BadgeID      int64     `json:"badge_id"`
	TemplateType string    `json:"template_type"`
	Meta         string    `json:"meta"`
	IssuedAt     time.Time `json:"issued_at"`
}

// MetaFor is the human readable line printed on a badge certificate.
func MetaFor(templateType string) string {
	return fmt.Sprintf("Certificate for %s badge", templateType)
}

func FromDataModel(c *certificateDatamodel.Certificate) *Certificate {
	return &Certificate{
		ID:           c.ID,
		Serial:       c.Serial,
		UserID:       c.UserID,
		BadgeID:      c.BadgeID,
		TemplateType: c.TemplateType,
		Meta:         c.Meta,
		IssuedAt:     c.IssuedAt,
	}
}

package auth

import (
	"context"
	"fmt"

	"github.com/frahmantamala/ld-portal/internal"
)

// ReporteeChecker answers whether a manager→reportee link exists.
type ReporteeChecker interface {
	IsReportee(ctx context.Context, managerID, reporteeID int64) (bool, error)
}

// ABACPolicy holds attribute based rules that need data beyond the role.
type ABACPolicy struct {
	reportees ReporteeChecker
}

func NewABACPolicy(reportees ReporteeChecker) *ABACPolicy {
	return &ABACPolicy{reportees: reportees}
}

// CanViewProfile: admins see everyone, everybody sees themselves, managers
// see their linked reportees.
func (p *ABACPolicy) CanViewProfile(ctx context.Context, viewer *User, ownerID int64) error {
	if viewer == nil {
		return internal.ErrMissingToken
	}
	if viewer.Role.IsAdmin() || viewer.ID == ownerID {
		return nil
	}
	if viewer.Role.IsManager() {
		linked, err := p.reportees.IsReportee(ctx, viewer.ID, ownerID)
		if err != nil {
			return fmt.Errorf("check reportee link: %w", err)
		}
		if linked {
			return nil
		}
	}
	return internal.ErrProfileForbidden
}

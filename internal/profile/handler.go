package profile

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/transport"
)

type ServiceAPI interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	GetProfileForUser(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*Profile, error)
	AddCertification(ctx context.Context, userID int64, dto CreateCertificationDTO) (*Certification, error)
}

// AccessPolicy decides whether viewer may read ownerID's profile.
type AccessPolicy interface {
	CanViewProfile(ctx context.Context, viewer *auth.User, ownerID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Policy  AccessPolicy
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, policy AccessPolicy) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Policy:      policy,
	}
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	p, err := h.Service.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto UpdateProfileDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	p, err := h.Service.UpdateProfile(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) AddMyCertification(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto CreateCertificationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	cert, err := h.Service.AddCertification(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, cert)
}

func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	ownerID, err := h.URLParamID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	if err := h.Policy.CanViewProfile(r.Context(), viewer, ownerID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	p, err := h.Service.GetProfileForUser(r.Context(), ownerID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

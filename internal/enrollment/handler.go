package enrollment

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/transport"
)

type ServiceAPI interface {
	CreateEnrollment(ctx context.Context, userID int64, dto CreateEnrollmentDTO) (*Enrollment, error)
	ListMine(ctx context.Context, userID int64) ([]*Enrollment, error)
	CompleteEnrollment(ctx context.Context, enrollmentID, userID int64) (*Enrollment, error)
	RecordAttendance(ctx context.Context, recordedBy int64, dto RecordAttendanceDTO) (*AttendanceRecord, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto CreateEnrollmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	e, err := h.Service.CreateEnrollment(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	enrollments, err := h.Service.ListMine(r.Context(), user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, enrollments)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	enrollmentID, err := h.URLParamID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	e, err := h.Service.CompleteEnrollment(r.Context(), enrollmentID, user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto RecordAttendanceDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	record, err := h.Service.RecordAttendance(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, record)
}

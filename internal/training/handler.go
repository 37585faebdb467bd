package training

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/transport"
)

type ServiceAPI interface {
	CreateTraining(ctx context.Context, dto CreateTrainingDTO, createdBy int64) (*Training, error)
	ListTrainings(ctx context.Context) ([]*Training, error)
	CreateAssignment(ctx context.Context, dto CreateAssignmentDTO) (*Assignment, error)
	ListAssignments(ctx context.Context) ([]*Assignment, error)
	MandatoryStatusFor(ctx context.Context, userID int64) ([]MandatoryTrainingStatus, error)
	ListApprovals(ctx context.Context, status string) ([]*Approval, error)
	DecideApproval(ctx context.Context, approvalID, decidedBy int64, dto ApprovalDecisionDTO) (*Approval, error)
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

func (h *Handler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto CreateTrainingDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	t, err := h.Service.CreateTraining(r.Context(), dto, user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) ListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.Service.ListTrainings(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, trainings)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssignmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	a, err := h.Service.CreateAssignment(r.Context(), dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Service.ListAssignments(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, assignments)
}

func (h *Handler) MandatoryStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	statuses, err := h.Service.MandatoryStatusFor(r.Context(), user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, statuses)
}

func (h *Handler) ListApprovals(w http.ResponseWriter, r *http.Request) {
	approvals, err := h.Service.ListApprovals(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, approvals)
}

func (h *Handler) DecideApproval(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	approvalID, err := h.URLParamID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	var dto ApprovalDecisionDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	approval, err := h.Service.DecideApproval(r.Context(), approvalID, user.ID, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, approval)
}

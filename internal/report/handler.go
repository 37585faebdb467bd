package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/transport"
)

type ServiceAPI interface {
	DepartmentCompletion(ctx context.Context) ([]DepartmentCompletion, error)
	ReporteeCompletion(ctx context.Context, managerID int64) ([]ReporteeCompletion, error)
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

func (h *Handler) DepartmentMandatoryCompletion(w http.ResponseWriter, r *http.Request) {
	format, err := requestedFormat(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	rows, err := h.Service.DepartmentCompletion(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	if format == FormatXLSX {
		buf, err := DepartmentsXLSX(rows)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}
		h.writeXLSX(w, "department-mandatory-completion", buf)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) ManagerMandatoryCompletion(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	format, err := requestedFormat(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	rows, err := h.Service.ReporteeCompletion(r.Context(), user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	if format == FormatXLSX {
		buf, err := ReporteesXLSX(rows)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}
		h.writeXLSX(w, "reportee-mandatory-completion", buf)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func requestedFormat(r *http.Request) (string, error) {
	switch f := r.URL.Query().Get("format"); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", internal.NewValidationFieldError("format", "format must be one of [json xlsx]", internal.ErrCodeValidationFailed)
	}
}

func (h *Handler) writeXLSX(w http.ResponseWriter, name string, buf *bytes.Buffer) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("failed to write xlsx response", "error", err)
	}
}

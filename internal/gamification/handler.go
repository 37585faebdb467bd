package gamification

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/transport"
)

type QuizServiceAPI interface {
	CreateQuiz(ctx context.Context, dto CreateQuizDTO, createdBy int64) (*Quiz, error)
	ListByTraining(ctx context.Context, trainingID int64) ([]*Quiz, error)
	Submit(ctx context.Context, quizID, userID int64, dto SubmitQuizDTO) (*Submission, error)
}

type BadgeServiceAPI interface {
	ListUserBadges(ctx context.Context, userID int64) ([]*UserBadge, error)
}

type Handler struct {
	*transport.BaseHandler
	Quizzes QuizServiceAPI
	Badges  BadgeServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, quizzes QuizServiceAPI, badges BadgeServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Quizzes:     quizzes,
		Badges:      badges,
	}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto CreateQuizDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	quiz, err := h.Quizzes.CreateQuiz(r.Context(), dto, user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, quiz)
}

func (h *Handler) ListByTraining(w http.ResponseWriter, r *http.Request) {
	trainingID, err := h.URLParamID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	quizzes, err := h.Quizzes.ListByTraining(r.Context(), trainingID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	quizID, err := h.URLParamID(r, "id")
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	var dto SubmitQuizDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	submission, err := h.Quizzes.Submit(r.Context(), quizID, user.ID, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, submission)
}

func (h *Handler) ListMyBadges(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	badges, err := h.Badges.ListUserBadges(r.Context(), user.ID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, badges)
}

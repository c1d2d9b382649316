package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/repo"
	"github.com/BuzzLyutic/taskflow-api/internal/service"
	"github.com/BuzzLyutic/taskflow-api/pkg/respond"
)

type UserHandler struct {
	gamification *service.GamificationService
	logger       *zap.Logger
}

func NewUserHandler(gamification *service.GamificationService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		gamification: gamification,
		logger:       logger,
	}
}

func (h *UserHandler) Badges(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	badges, err := h.gamification.UserBadges(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			respond.Error(w, r, http.StatusNotFound, "not found")
			return
		}
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, r, http.StatusOK, badges)
}

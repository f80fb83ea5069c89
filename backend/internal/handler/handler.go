package handler

import (
	"context"

	"github.com/itchan-dev/msgboard/backend/internal/service"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board  service.BoardService
	health HealthChecker
}

func New(board service.BoardService, health HealthChecker) *Handler {
	return &Handler{board: board, health: health}
}

package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const pingTimeout = 2 * time.Second

// Pinger - хранилище, доступность которого проверяет health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на проверку связи клиента: 200 только если база отвечает.
// Клиент считает сервер недоступным при любом другом статусе и не начинает синхронизацию
type Handler struct {
	db          Pinger
	log         *slog.Logger
	middlewares huma.Middlewares
}

func NewHandler(db Pinger, log *slog.Logger, middlewares huma.Middlewares) *Handler {
	return &Handler{
		db:          db,
		log:         log.With("component", "health_handler"),
		middlewares: middlewares,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.checkOp(), h.check)
}

func (h *Handler) check(ctx context.Context, _ *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database unreachable", "error", err)
		return nil, huma.Error503ServiceUnavailable("database unavailable")
	}

	return &Output{Body: Response{Status: "Ok", Database: "up"}}, nil
}

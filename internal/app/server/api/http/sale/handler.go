package sale

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/server/api/http/middleware/auth"
	"shopkeeper/internal/domain/sale"
)

type Handler struct {
	service    sale.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sale.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "sale_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.lookupOp(), h.lookup)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	items, err := h.service.List(ctx, userID)
	if err != nil {
		h.log.Error("list failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("list failed")
	}
	if items == nil {
		items = []sale.Record{}
	}

	return &listOutput{
		Body: ListResponse{Status: "Ok", Items: items},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	if err := h.service.Create(ctx, userID, input.Body); err != nil {
		switch {
		case errors.Is(err, sale.ErrAlreadyExists):
			return nil, huma.Error409Conflict(sale.ErrAlreadyExists.Error())
		case errors.Is(err, sale.ErrInvalidData):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("create failed", "user_id", userID, "id", input.Body.ID, "error", err)
		return nil, huma.Error500InternalServerError("create failed")
	}

	return &createOutput{
		Body: CreateResponse{ID: input.Body.ID, Status: "Ok"},
	}, nil
}

func (h *Handler) lookup(ctx context.Context, input *lookupInput) (*lookupOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	found, err := h.service.Exists(ctx, userID, input.Key)
	if err != nil {
		h.log.Error("lookup failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("lookup failed")
	}

	return &lookupOutput{
		Body: LookupResponse{Found: found, Status: "Ok"},
	}, nil
}

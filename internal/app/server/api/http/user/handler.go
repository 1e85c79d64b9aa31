package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/server/api/http/middleware/auth"
	"shopkeeper/internal/domain/session"
	"shopkeeper/internal/domain/user"
)

type Handler struct {
	service   user.Servicer
	session   session.Servicer
	log       *slog.Logger
	public    huma.Middlewares
	protected huma.Middlewares
}

// NewHandler: public применяются к регистрации и логину, protected к /me
func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, public, protected huma.Middlewares) *Handler {
	return &Handler{
		service:   service,
		session:   session,
		log:       log.With("component", "user_handler"),
		public:    public,
		protected: protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			return nil, huma.Error409Conflict("login already taken")
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("register failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("register failed")
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("invalid credentials")
		}
		h.log.Error("authenticate failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("login failed")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session failed", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("login failed")
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:  token,
			UserID: u.ID,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) me(ctx context.Context, _ *meInput) (*meOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}

	u, err := h.service.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error401Unauthorized("unknown user")
		}
		return nil, huma.Error500InternalServerError("lookup failed")
	}

	return &meOutput{
		Body: MeResponse{UserID: u.ID, Login: u.Login, Status: "Ok"},
	}, nil
}

package types

import (
	"context"
	"errors"

	"shopkeeper/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "app"

var ErrNoApp = errors.New("приложение не инициализировано")

// App достает клиентское приложение, положенное в контекст корневой командой
func App(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}

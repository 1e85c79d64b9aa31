package connectivity

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/exp/slog"
)

const (
	healthPath     = "/api/v1/health"
	DefaultTimeout = 3 * time.Second
)

// Probe проверяет доступность удаленного хранилища запросом к health-эндпоинту
type Probe struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	log     *slog.Logger
}

func NewProbe(baseURL string, timeout time.Duration, log *slog.Logger) *Probe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Probe{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		timeout: timeout,
		log:     log.With("component", "connectivity_probe"),
	}
}

// CheckConnectivity возвращает true, если сервер ответил 200 за отведенное время
func (p *Probe) CheckConnectivity(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+healthPath, nil)
	if err != nil {
		p.log.Error("failed to build probe request", "error", err)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Debug("server unreachable", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

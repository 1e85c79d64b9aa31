package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/pos"
)

var ErrSyncInProgress = errors.New("sync already in progress")

const DefaultInterval = 30 * time.Second

// Pusher отправляет на сервер несинхронизированные записи одной коллекции
type Pusher interface {
	Kind() string
	Push(ctx context.Context, sess pos.Session) (Result, error)
}

// Stats - статистика отправки изменений
type Stats struct {
	TotalPushes    int       `json:"total_pushes"`
	LastSuccessful time.Time `json:"last_successful"`
	LastFailed     time.Time `json:"last_failed"`
	TotalPushed    int       `json:"total_pushed"`
	TotalErrors    int       `json:"total_errors"`
	AvgDuration    float64   `json:"avg_duration"`
}

// Orchestrator управляет отправкой изменений по всем коллекциям
type Orchestrator struct {
	pushers   []Pusher
	probe     Prober
	log       *slog.Logger
	interval  time.Duration
	mu        sync.RWMutex
	isSyncing bool
	lastSync  time.Time
	stats     *Stats
}

func NewOrchestrator(probe Prober, interval time.Duration, log *slog.Logger, pushers ...Pusher) *Orchestrator {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Orchestrator{
		pushers:  pushers,
		probe:    probe,
		log:      log.With("component", "sync_orchestrator"),
		interval: interval,
		stats:    &Stats{},
	}
}

// PushAll отправляет изменения всех коллекций по порядку.
// Сбой одной коллекции не мешает остальным.
func (o *Orchestrator) PushAll(ctx context.Context, sess pos.Session) (Result, error) {
	o.mu.Lock()
	if o.isSyncing {
		o.mu.Unlock()
		return failed(ErrSyncInProgress), ErrSyncInProgress
	}
	o.isSyncing = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.isSyncing = false
		o.mu.Unlock()
	}()

	if !sess.Authenticated() {
		return failed(pos.ErrUnauthenticated), pos.ErrUnauthenticated
	}

	if !o.probe.CheckConnectivity(ctx) {
		return failed(pos.ErrOffline), pos.ErrOffline
	}

	start := time.Now()
	o.log.Info("push started", "user_id", sess.UserID)

	res := Result{Errors: []string{}}
	for _, p := range o.pushers {
		r, err := p.Push(ctx, sess)
		if err != nil {
			o.log.Error("push failed", "kind", p.Kind(), "error", err)
		}
		res.Errors = append(res.Errors, r.Errors...)
		res.Synced += r.Synced
	}
	res.Success = len(res.Errors) == 0

	duration := time.Since(start)
	o.updateStats(res, duration)

	if res.Success {
		o.log.Info("push completed", "duration", duration, "synced", res.Synced)
	} else {
		o.log.Warn("push completed with errors", "duration", duration, "errors", len(res.Errors))
	}

	return res, nil
}

func (o *Orchestrator) updateStats(res Result, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := time.Now()
	o.lastSync = now
	o.stats.TotalPushes++

	if res.Success {
		o.stats.LastSuccessful = now
	} else {
		o.stats.LastFailed = now
	}

	o.stats.TotalPushed += res.Synced
	o.stats.TotalErrors += len(res.Errors)

	n := float64(o.stats.TotalPushes)
	o.stats.AvgDuration = (o.stats.AvgDuration*(n-1) + duration.Seconds()) / n
}

// StartAutoSync отправляет изменения по таймеру до отмены ctx
func (o *Orchestrator) StartAutoSync(ctx context.Context, sess pos.Session) {
	o.log.Info("auto sync started", "interval", o.interval)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.log.Info("auto sync stopped")
			return
		case <-ticker.C:
			if _, err := o.PushAll(ctx, sess); err != nil {
				o.log.Debug("auto sync skipped", "error", err)
			}
		}
	}
}

func (o *Orchestrator) GetStats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return *o.stats
}

func (o *Orchestrator) LastSyncTime() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastSync
}

func (o *Orchestrator) IsSyncing() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.isSyncing
}

func (o *Orchestrator) ResetStats() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats = &Stats{}
}

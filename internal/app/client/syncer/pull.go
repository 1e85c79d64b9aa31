package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

// Prober проверяет доступность сервера
type Prober interface {
	CheckConnectivity(ctx context.Context) bool
}

// Refresher заменяет локальную коллекцию данными сервера
type Refresher interface {
	Kind() string
	Refresh(ctx context.Context, sess pos.Session) (replaced int, errs []string)
}

var errKeepLocal = errors.New("keep local data")

// Refresh загружает коллекцию с сервера и заменяет ею локальную.
// Пустой ответ сервера не затирает непустой локальный кэш.
func (a *Adapter[T]) Refresh(ctx context.Context, sess pos.Session) (int, []string) {
	pulled := a.Pull(ctx, sess)
	if len(pulled.Errors) > 0 {
		return 0, pulled.Errors
	}

	replacement := pulled.Records
	if replacement == nil {
		replacement = []T{}
	}

	err := storage.Update(a.store, sess.UserID, a.key, []T{}, func(local []T) ([]T, error) {
		if len(replacement) == 0 && len(local) > 0 {
			return nil, errKeepLocal
		}
		return replacement, nil
	})

	switch {
	case errors.Is(err, errKeepLocal):
		a.log.Warn(fmt.Sprintf("Server returned empty %s but local has data - keeping local data", a.kind))
		return 0, nil
	case err != nil:
		return 0, []string{fmt.Sprintf("Failed to save %s: %v", a.kind, err)}
	}

	return len(replacement), nil
}

// PullManager загружает все коллекции пользователя с сервера
type PullManager struct {
	store   *storage.Store
	probe   Prober
	targets []Refresher
	log     *slog.Logger
	now     func() time.Time
}

func NewPullManager(store *storage.Store, probe Prober, log *slog.Logger, targets ...Refresher) *PullManager {
	return &PullManager{
		store:   store,
		probe:   probe,
		targets: targets,
		log:     log.With("component", "pull_manager"),
		now:     time.Now,
	}
}

// PullFromRemote по очереди обновляет все коллекции и сохраняет метаданные синхронизации
func (m *PullManager) PullFromRemote(ctx context.Context, sess pos.Session) (Result, error) {
	if !sess.Authenticated() {
		return failed(pos.ErrUnauthenticated), pos.ErrUnauthenticated
	}

	if !m.probe.CheckConnectivity(ctx) {
		return failed(pos.ErrOffline), pos.ErrOffline
	}

	m.log.Info("pulling data from server", "user_id", sess.UserID)

	errs := []string{}
	synced := 0
	for _, t := range m.targets {
		n, tErrs := t.Refresh(ctx, sess)
		synced += n
		errs = append(errs, tErrs...)
		m.log.Debug("collection pulled", "kind", t.Kind(), "replaced", n, "errors", len(tErrs))
	}

	meta := pos.SyncMeta{LastSync: m.now().UTC()}
	if len(errs) > 0 {
		meta.Errors = errs
	}
	if err := m.store.Set(sess.UserID, storage.KeySyncMeta, meta); err != nil {
		m.log.Error("failed to save sync metadata", "error", err)
		errs = append(errs, fmt.Sprintf("Failed to save sync metadata: %v", err))
	}

	res := Result{Success: len(errs) == 0, Errors: errs, Synced: synced}
	if res.Success {
		m.log.Info("pull completed", "synced", synced)
	} else {
		m.log.Warn("pull completed with errors", "errors", len(errs))
	}

	return res, nil
}

// LastSync возвращает сохраненные метаданные последнего pull
func (m *PullManager) LastSync(sess pos.Session) pos.SyncMeta {
	return storage.Load(m.store, sess.UserID, storage.KeySyncMeta, pos.SyncMeta{})
}

package syncer

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

// Record - локальная запись, которую умеет синхронизировать Adapter
type Record[T any] interface {
	RecordID() string
	IsSynced() bool
	Label() string
	MarkSynced() T
}

// Remote - удаленная коллекция записей одного вида
type Remote[T any] interface {
	// Find ищет запись по естественному ключу среди записей пользователя сессии
	Find(ctx context.Context, sess pos.Session, rec T) (bool, error)
	Insert(ctx context.Context, sess pos.Session, rec T) error
	List(ctx context.Context, sess pos.Session) ([]T, error)
}

// Adapter синхронизирует одну коллекцию (товары, клиенты, ...) между кэшем и сервером
type Adapter[T Record[T]] struct {
	kind   string
	key    string
	remote Remote[T]
	store  *storage.Store
	log    *slog.Logger
}

func NewAdapter[T Record[T]](kind, key string, remote Remote[T], store *storage.Store, log *slog.Logger) *Adapter[T] {
	return &Adapter[T]{
		kind:   kind,
		key:    key,
		remote: remote,
		store:  store,
		log:    log.With("component", "sync_adapter", "kind", kind),
	}
}

func (a *Adapter[T]) Kind() string {
	return a.kind
}

// Push отправляет на сервер все записи с synced=false.
// Ошибка одной записи не прерывает обработку остальных.
func (a *Adapter[T]) Push(ctx context.Context, sess pos.Session) (Result, error) {
	if !sess.Authenticated() {
		return failed(pos.ErrUnauthenticated), pos.ErrUnauthenticated
	}

	records := storage.Load(a.store, sess.UserID, a.key, []T{})

	var pending []T
	for _, rec := range records {
		if !rec.IsSynced() {
			pending = append(pending, rec)
		}
	}

	if len(pending) == 0 {
		return Result{Success: true, Errors: []string{}}, nil
	}

	a.log.Debug("pushing unsynced records", "count", len(pending))

	res := Result{Errors: []string{}}
	for _, rec := range pending {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Push of %s interrupted: %v", a.kind, err))
			break
		}

		if err := a.pushOne(ctx, sess, rec); err != nil {
			a.log.Warn("failed to push record", "id", rec.RecordID(), "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to sync %s: %v", rec.Label(), err))
			continue
		}

		// флаг сохраняем сразу, чтобы сбой на следующих записях не откатил уже отправленные
		found, err := a.markSynced(sess.UserID, rec.RecordID())
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to sync %s: %v", rec.Label(), err))
			continue
		}
		if !found {
			a.log.Warn("record deleted locally during push", "id", rec.RecordID())
			continue
		}

		res.Synced++
	}

	res.Success = len(res.Errors) == 0
	return res, nil
}

func (a *Adapter[T]) pushOne(ctx context.Context, sess pos.Session, rec T) error {
	exists, err := a.remote.Find(ctx, sess, rec)
	if err != nil {
		return err
	}
	if exists {
		a.log.Debug("record already on server", "id", rec.RecordID())
		return nil
	}

	return a.remote.Insert(ctx, sess, rec)
}

// markSynced перечитывает коллекцию и помечает только одну запись,
// не затирая записи, добавленные локально во время синхронизации.
// found=false, если запись успели удалить локально
func (a *Adapter[T]) markSynced(userID, id string) (found bool, err error) {
	err = storage.Update(a.store, userID, a.key, []T{}, func(records []T) ([]T, error) {
		for i, rec := range records {
			if rec.RecordID() == id {
				records[i] = rec.MarkSynced()
				found = true
				break
			}
		}
		return records, nil
	})
	return found, err
}

// Pull загружает записи пользователя с сервера. Локальный кэш не меняется.
func (a *Adapter[T]) Pull(ctx context.Context, sess pos.Session) PullResult[T] {
	remote, err := a.remote.List(ctx, sess)
	if err != nil {
		a.log.Error("failed to pull records", "error", err)
		return PullResult[T]{Errors: []string{fmt.Sprintf("Failed to pull %s: %v", a.kind, err)}}
	}

	records := make([]T, 0, len(remote))
	for _, rec := range remote {
		records = append(records, rec.MarkSynced())
	}

	return PullResult[T]{Records: records}
}

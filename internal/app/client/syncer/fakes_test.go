package syncer

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

var (
	testSession = pos.Session{UserID: "u1", Token: "tok"}
	errBoom     = errors.New("boom")
)

func newTestStore() *storage.Store {
	return storage.New(storage.NewMemoryKV(), slog.Default())
}

// fakeRemote хранит записи по естественному ключу
type fakeRemote[T any] struct {
	mu        sync.Mutex
	key       func(T) string
	items     map[string]T
	order     []string
	insertErr map[string]error
	findErr   error
	listErr   error
	onInsert  func(T)
	inserts   int
}

func newFakeRemote[T any](key func(T) string) *fakeRemote[T] {
	return &fakeRemote[T]{
		key:       key,
		items:     make(map[string]T),
		insertErr: make(map[string]error),
	}
}

func (f *fakeRemote[T]) Find(_ context.Context, _ pos.Session, rec T) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return false, f.findErr
	}
	_, ok := f.items[f.key(rec)]
	return ok, nil
}

func (f *fakeRemote[T]) Insert(_ context.Context, _ pos.Session, rec T) error {
	f.mu.Lock()
	k := f.key(rec)
	if err := f.insertErr[k]; err != nil {
		f.mu.Unlock()
		return err
	}
	f.items[k] = rec
	f.order = append(f.order, k)
	f.inserts++
	hook := f.onInsert
	f.mu.Unlock()

	if hook != nil {
		hook(rec)
	}
	return nil
}

func (f *fakeRemote[T]) List(_ context.Context, _ pos.Session) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]T, 0, len(f.order))
	for _, k := range f.order {
		out = append(out, f.items[k])
	}
	return out, nil
}

func (f *fakeRemote[T]) seed(recs ...T) {
	for _, r := range recs {
		k := f.key(r)
		f.items[k] = r
		f.order = append(f.order, k)
	}
}

type fakeProbe struct {
	online bool
	calls  int
}

func (p *fakeProbe) CheckConnectivity(context.Context) bool {
	p.calls++
	return p.online
}

func customerKey(c pos.Customer) string { return pos.NormalizePhone(c.Phone, "US") }

func productKey(p pos.Product) string { return p.Name }

func customer(id, name, phone string, synced bool) pos.Customer {
	return pos.Customer{Meta: pos.Meta{ID: id, Synced: synced}, Name: name, Phone: phone}
}

func product(id, name string, synced bool) pos.Product {
	return pos.Product{Meta: pos.Meta{ID: id, Synced: synced}, Name: name, Quantity: 1}
}

package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

type stubPusher struct {
	kind  string
	res   Result
	err   error
	calls int
	block chan struct{}
}

func (s *stubPusher) Kind() string { return s.kind }

func (s *stubPusher) Push(context.Context, pos.Session) (Result, error) {
	s.calls++
	if s.block != nil {
		<-s.block
	}
	return s.res, s.err
}

func TestOrchestrator_PushAll_Aggregates(t *testing.T) {
	// Arrange
	ok := &stubPusher{kind: "products", res: Result{Success: true, Errors: []string{}, Synced: 2}}
	bad := &stubPusher{kind: "customers", res: Result{Errors: []string{"Failed to sync Bob: boom"}, Synced: 1}}
	last := &stubPusher{kind: "sales", res: Result{Success: true, Errors: []string{}, Synced: 3}}
	o := NewOrchestrator(&fakeProbe{online: true}, time.Minute, slog.Default(), ok, bad, last)

	// Act
	res, err := o.PushAll(context.Background(), testSession)

	// Assert
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 6, res.Synced)
	assert.Equal(t, []string{"Failed to sync Bob: boom"}, res.Errors)
	assert.Equal(t, 1, last.calls)

	stats := o.GetStats()
	assert.Equal(t, 1, stats.TotalPushes)
	assert.Equal(t, 6, stats.TotalPushed)
	assert.Equal(t, 1, stats.TotalErrors)
	assert.False(t, stats.LastFailed.IsZero())
	assert.False(t, o.LastSyncTime().IsZero())
	assert.False(t, o.IsSyncing())
}

func TestOrchestrator_PushAll_PreChecks(t *testing.T) {
	p := &stubPusher{kind: "products"}

	t.Run("unauthenticated", func(t *testing.T) {
		o := NewOrchestrator(&fakeProbe{online: true}, 0, slog.Default(), p)
		res, err := o.PushAll(context.Background(), pos.Session{UserID: "u1"})
		assert.ErrorIs(t, err, pos.ErrUnauthenticated)
		assert.Equal(t, []string{"User not authenticated"}, res.Errors)
	})

	t.Run("offline", func(t *testing.T) {
		o := NewOrchestrator(&fakeProbe{online: false}, 0, slog.Default(), p)
		res, err := o.PushAll(context.Background(), testSession)
		assert.ErrorIs(t, err, pos.ErrOffline)
		assert.Equal(t, []string{"No internet connection"}, res.Errors)
		assert.Zero(t, o.GetStats().TotalPushes)
	})

	assert.Zero(t, p.calls)
}

func TestOrchestrator_PushAll_InProgress(t *testing.T) {
	block := make(chan struct{})
	p := &stubPusher{kind: "products", res: Result{Success: true}, block: block}
	o := NewOrchestrator(&fakeProbe{online: true}, 0, slog.Default(), p)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = o.PushAll(context.Background(), testSession)
	}()

	require.Eventually(t, o.IsSyncing, time.Second, 5*time.Millisecond)

	_, err := o.PushAll(context.Background(), testSession)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(block)
	<-done
	assert.False(t, o.IsSyncing())
}

func TestOrchestrator_WithAdapters(t *testing.T) {
	store := newTestStore()
	products := newFakeRemote(productKey)
	customers := newFakeRemote(customerKey)
	credit := newFakeRemote(func(t pos.CreditTransaction) string { return t.ID })
	sales := newFakeRemote(func(s pos.Sale) string { return s.ID })
	adapters := NewAdapters(store, slog.Default(), products, customers, credit, sales)

	require.NoError(t, store.Set("u1", storage.KeyProducts, []pos.Product{product("p1", "Rice", false)}))
	require.NoError(t, store.Set("u1", storage.KeySales, []pos.Sale{{Meta: pos.Meta{ID: "s1"}, PaymentType: pos.PaymentCash}}))
	customers.insertErr["+16502530001"] = errBoom
	require.NoError(t, store.Set("u1", storage.KeyCustomers, []pos.Customer{customer("c1", "Ann", "650-253-0001", false)}))

	o := NewOrchestrator(&fakeProbe{online: true}, 0, slog.Default(), adapters.Pushers()...)
	res, err := o.PushAll(context.Background(), testSession)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Synced)
	assert.Equal(t, []string{"Failed to sync Ann: boom"}, res.Errors)
	assert.Equal(t, 1, sales.inserts)
	assert.Len(t, adapters.Refreshers(), 3)
}

func TestOrchestrator_StartAutoSync(t *testing.T) {
	p := &stubPusher{kind: "products", res: Result{Success: true}}
	o := NewOrchestrator(&fakeProbe{online: true}, 10*time.Millisecond, slog.Default(), p)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		o.StartAutoSync(ctx, testSession)
		close(done)
	}()

	require.Eventually(t, func() bool { return o.GetStats().TotalPushes >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("auto sync did not stop")
	}
}

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

type pullFixture struct {
	store     *storage.Store
	probe     *fakeProbe
	products  *fakeRemote[pos.Product]
	customers *fakeRemote[pos.Customer]
	manager   *PullManager
}

func newPullFixture() *pullFixture {
	f := &pullFixture{
		store:     newTestStore(),
		probe:     &fakeProbe{online: true},
		products:  newFakeRemote(productKey),
		customers: newFakeRemote(customerKey),
	}
	log := slog.Default()
	f.manager = NewPullManager(f.store, f.probe, log,
		NewAdapter(KindProducts, storage.KeyProducts, f.products, f.store, log),
		NewAdapter(KindCustomers, storage.KeyCustomers, f.customers, f.store, log),
	)
	f.manager.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestPullManager_ReplacesLocalData(t *testing.T) {
	// Arrange
	f := newPullFixture()
	require.NoError(t, f.store.Set("u1", storage.KeyProducts, []pos.Product{product("old", "Old", false)}))
	f.products.seed(product("r1", "Rice", false), product("r2", "Beans", false))
	f.customers.seed(customer("c1", "Ann", "650-253-0001", false))

	// Act
	res, err := f.manager.PullFromRemote(context.Background(), testSession)

	// Assert
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 3, res.Synced)

	products := storage.Load(f.store, "u1", storage.KeyProducts, []pos.Product{})
	require.Len(t, products, 2)
	assert.Equal(t, "r1", products[0].ID)
	assert.True(t, products[0].Synced)

	meta := f.manager.LastSync(testSession)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), meta.LastSync)
	assert.Nil(t, meta.Errors)
}

func TestPullManager_KeepsLocalWhenServerEmpty(t *testing.T) {
	f := newPullFixture()
	local := []pos.Customer{customer("c1", "Ann", "650-253-0001", false)}
	require.NoError(t, f.store.Set("u1", storage.KeyCustomers, local))

	res, err := f.manager.PullFromRemote(context.Background(), testSession)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.Synced)
	assert.Equal(t, local, storage.Load(f.store, "u1", storage.KeyCustomers, []pos.Customer{}))
	assert.Empty(t, storage.Load(f.store, "u1", storage.KeyProducts, []pos.Product{}))
}

func TestPullManager_ErrorSkipsMerge(t *testing.T) {
	f := newPullFixture()
	local := []pos.Product{product("p1", "Rice", false)}
	require.NoError(t, f.store.Set("u1", storage.KeyProducts, local))
	f.products.listErr = errBoom
	f.customers.seed(customer("c1", "Ann", "650-253-0001", false))

	res, err := f.manager.PullFromRemote(context.Background(), testSession)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, []string{"Failed to pull products: boom"}, res.Errors)
	assert.Equal(t, 1, res.Synced)
	assert.Equal(t, local, storage.Load(f.store, "u1", storage.KeyProducts, []pos.Product{}))
	assert.Equal(t, []string{"Failed to pull products: boom"}, f.manager.LastSync(testSession).Errors)
}

func TestPullManager_PreChecks(t *testing.T) {
	tests := []struct {
		name    string
		sess    pos.Session
		online  bool
		wantErr error
		probed  int
	}{
		{name: "unauthenticated", sess: pos.Session{}, online: true, wantErr: pos.ErrUnauthenticated, probed: 0},
		{name: "offline", sess: testSession, online: false, wantErr: pos.ErrOffline, probed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPullFixture()
			f.probe.online = tt.online
			f.products.seed(product("r1", "Rice", false))

			res, err := f.manager.PullFromRemote(context.Background(), tt.sess)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, res.Success)
			assert.Equal(t, []string{tt.wantErr.Error()}, res.Errors)
			assert.Equal(t, tt.probed, f.probe.calls)
			assert.Empty(t, storage.Load(f.store, "u1", storage.KeyProducts, []pos.Product{}))
			assert.True(t, f.manager.LastSync(testSession).LastSync.IsZero())
		})
	}
}

func TestPullManager_Notifies(t *testing.T) {
	f := newPullFixture()
	ch, unsubscribe := f.store.Subscribe()
	defer unsubscribe()

	_, err := f.manager.PullFromRemote(context.Background(), testSession)
	require.NoError(t, err)

	select {
	case c := <-ch:
		assert.Equal(t, "u1", c.UserID)
	default:
		t.Fatal("expected change notification")
	}
}

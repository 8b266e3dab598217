package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bookstore-storefront/internal/domains/cart/model"
	"bookstore-storefront/internal/domains/cart/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	m     sync.RWMutex
	snaps map[string]model.Snapshot
	saves int
	err   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{snaps: map[string]model.Snapshot{}}
}

func (r *mockRepository) Load(_ context.Context, sessionID string) (*model.Snapshot, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	snap, ok := r.snaps[sessionID]
	if !ok {
		return nil, model.ErrSnapshotMiss
	}
	return &snap, nil
}

func (r *mockRepository) Save(_ context.Context, snap model.Snapshot) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves++
	r.snaps[snap.SessionID] = snap
	return nil
}

func (r *mockRepository) Delete(_ context.Context, sessionID string) error {
	r.m.Lock()
	defer r.m.Unlock()
	delete(r.snaps, sessionID)
	return r.err
}

func (r *mockRepository) saveCount() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.saves
}

var dune = model.NewItem{BookID: "1", Title: "Dune", Price: 24.999}

func TestCartService_AddAndGet(t *testing.T) {
	repo := newMockRepository()
	svc := NewCartService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddItem(ctx, "s1", dune)
		require.NoError(t, err)
	}

	cart, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 75.0, cart.TotalPrice)
	assert.Equal(t, 3, repo.saveCount())

	n, err := svc.ItemCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	svc := NewCartService(newMockRepository(), nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", dune)
	require.NoError(t, err)

	n, err := svc.ItemCount(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCartService_RequiresSession(t *testing.T) {
	svc := NewCartService(newMockRepository(), nil)
	_, err := svc.GetCart(context.Background(), " ")
	assert.ErrorIs(t, err, model.ErrSessionRequired)
}

func TestCartService_RemoveMissingIsNotAnError(t *testing.T) {
	repo := newMockRepository()
	svc := NewCartService(repo, nil)
	ctx := context.Background()
	_, _ = svc.AddItem(ctx, "s1", dune)
	saves := repo.saveCount()

	res, err := svc.RemoveBook(ctx, "s1", "unknown")
	require.NoError(t, err)
	assert.False(t, res.Removed)
	assert.Equal(t, 1, res.Cart.TotalItems)

	res, err = svc.RemoveLine(ctx, "s1", uuid.New())
	require.NoError(t, err)
	assert.False(t, res.Removed)
	assert.Equal(t, saves, repo.saveCount(), "unchanged cart is not re-persisted")
}

func TestCartService_RemoveLineAndUpdate(t *testing.T) {
	svc := NewCartService(newMockRepository(), nil)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "s1", dune)
	require.NoError(t, err)
	lineID := cart.Items[0].LineID

	cart, err = svc.UpdateQuantity(ctx, "s1", "1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.TotalItems)

	res, err := svc.RemoveLine(ctx, "s1", lineID)
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Equal(t, 3, res.Cart.TotalItems)

	cart, err = svc.Clear(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.Empty)
}

func TestCartService_RestoresFromRepository(t *testing.T) {
	repo := newMockRepository()
	ctx := context.Background()

	first := NewCartService(repo, nil)
	_, err := first.AddItem(ctx, "s1", dune)
	require.NoError(t, err)

	// a fresh process sees the persisted cart
	second := NewCartService(repo, nil)
	n, err := second.ItemCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCartService_StorageOutageFallsBackToMemory(t *testing.T) {
	repo := newMockRepository()
	repo.err = errors.New("redis down")
	svc := NewCartService(repo, nil)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "s1", dune)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalItems)
}

func TestCartService_MutateErrorIsReturned(t *testing.T) {
	svc := NewCartService(newMockRepository(), nil)
	boom := errors.New("boom")

	_, err := svc.Mutate(context.Background(), "s1", "custom", func(*store.Store) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestCartService_TeardownAndSweep(t *testing.T) {
	repo := newMockRepository()
	svc := NewCartService(repo, nil).(*CartService)
	ctx := context.Background()

	_, _ = svc.AddItem(ctx, "s1", dune)
	_, _ = svc.AddItem(ctx, "s2", dune)

	require.NoError(t, svc.Teardown(ctx, "s1"))
	n, _ := svc.ItemCount(ctx, "s1")
	assert.Equal(t, 0, n, "teardown removes the persisted cart too")

	now := time.Now()
	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	assert.Equal(t, 2, svc.Sweep(time.Hour))

	// evicted from memory only; s2 comes back from the repository
	n, _ = svc.ItemCount(ctx, "s2")
	assert.Equal(t, 1, n)
}

// gatedRepository blocks Load for one session until release is closed.
type gatedRepository struct {
	*mockRepository
	slow    string
	entered chan struct{}
	release chan struct{}
}

func (r *gatedRepository) Load(ctx context.Context, sessionID string) (*model.Snapshot, error) {
	if sessionID == r.slow {
		close(r.entered)
		<-r.release
	}
	return r.mockRepository.Load(ctx, sessionID)
}

func TestCartService_TeardownWaitsForInflightMutation(t *testing.T) {
	repo := newMockRepository()
	svc := NewCartService(repo, nil)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	mutated := make(chan error, 1)
	go func() {
		_, err := svc.Mutate(ctx, "s1", model.OpAdd, func(st *store.Store) error {
			close(entered)
			<-release
			_, err := st.AddItem(dune)
			return err
		})
		mutated <- err
	}()
	<-entered

	tornDown := make(chan error, 1)
	go func() { tornDown <- svc.Teardown(ctx, "s1") }()

	// give teardown a chance to run ahead of the mutation
	time.Sleep(20 * time.Millisecond)
	close(release)

	require.NoError(t, <-mutated)
	require.NoError(t, <-tornDown)

	_, err := repo.Load(ctx, "s1")
	assert.ErrorIs(t, err, model.ErrSnapshotMiss, "ended session must not be written back")

	cart, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.Empty, "replaying the old session id sees an empty cart")
}

func TestCartService_SlowRestoreDoesNotBlockOtherSessions(t *testing.T) {
	repo := &gatedRepository{
		mockRepository: newMockRepository(),
		slow:           "slow",
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	svc := NewCartService(repo, nil)
	ctx := context.Background()

	slowDone := make(chan struct{})
	go func() {
		_, _ = svc.GetCart(ctx, "slow")
		close(slowDone)
	}()
	<-repo.entered

	fastDone := make(chan error, 1)
	go func() {
		_, err := svc.AddItem(ctx, "fast", dune)
		fastDone <- err
	}()

	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("a pending restore of one session blocked another session")
	}

	close(repo.release)
	<-slowDone
}

func TestCartService_RekeyMovesCart(t *testing.T) {
	repo := newMockRepository()
	svc := NewCartService(repo, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "old", dune)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "old", dune)
	require.NoError(t, err)

	require.NoError(t, svc.Rekey(ctx, "old", "new"))

	n, err := svc.ItemCount(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snap, err := repo.Load(ctx, "new")
	require.NoError(t, err)
	assert.Len(t, snap.Items, 2)

	_, err = repo.Load(ctx, "old")
	assert.ErrorIs(t, err, model.ErrSnapshotMiss)
	n, err = svc.ItemCount(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "the old id no longer carries the cart")

	assert.ErrorIs(t, svc.Rekey(ctx, "new", "new"), model.ErrSessionRequired)
}

package favorites_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/offerspot/offerspot-backend/internal/favorites"
	"github.com/offerspot/offerspot-backend/internal/favorites/mocks"
	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	pizzaDeal  = offer.Offer{ID: 1, Title: "Pizza Deal", DiscountedPrice: 80}
	sushiNight = offer.Offer{ID: 2, Title: "Sushi Night", DiscountedPrice: 150}

	errUnexpected = errors.New("unexpected error")
)

func newLoadedStore(t *testing.T, seed []favorites.Snapshot) (*favorites.Store, *mocks.MockStorage, *mocks.MockFetcher) {
	t.Helper()

	ctrl := gomock.NewController(t)

	storage := mocks.NewMockStorage(ctrl)
	fetcher := mocks.NewMockFetcher(ctrl)

	storage.EXPECT().Load().Return(seed, nil)

	store := favorites.NewStore(storage, fetcher, zap.NewNop())
	store.Load()

	return store, storage, fetcher
}

func TestStore_AddDeduplicatesByID(t *testing.T) {
	store, storage, _ := newLoadedStore(t, nil)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	store.Add(pizzaDeal)
	store.Add(pizzaDeal)
	store.Add(pizzaDeal)

	require.Len(t, store.All(), 1)
	assert.True(t, store.IsFavorite(1))
}

func TestStore_ToggleIdempotence(t *testing.T) {
	store, storage, _ := newLoadedStore(t, nil)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	assert.True(t, store.Toggle(pizzaDeal))
	assert.False(t, store.Toggle(pizzaDeal))

	assert.Empty(t, store.All())
	assert.False(t, store.IsFavorite(1))
}

func TestStore_InsertionOrderPreserved(t *testing.T) {
	store, storage, _ := newLoadedStore(t, nil)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	store.Add(sushiNight)
	store.Add(pizzaDeal)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].ID.Int())
	assert.Equal(t, 1, all[1].ID.Int())
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	store, _, _ := newLoadedStore(t, nil)

	// no Save expected: nothing changed
	store.Remove(42)

	assert.Empty(t, store.All())
}

func TestStore_NoPersistBeforeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)

	storage := mocks.NewMockStorage(ctrl)
	store := favorites.NewStore(storage, mocks.NewMockFetcher(ctrl), zap.NewNop())

	// a mutation before Load must never write through, otherwise a
	// slow startup would clobber previously persisted favorites
	store.Add(pizzaDeal)

	assert.True(t, store.IsFavorite(1))
}

func TestStore_LoadKeepsPersistedEntries(t *testing.T) {
	seed := []favorites.Snapshot{{Offer: offer.Offer{ID: 5, Title: "Kept"}}}
	store, _, _ := newLoadedStore(t, seed)

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].ID.Int())
}

func TestStore_LoadFailureLeavesStoreUsable(t *testing.T) {
	ctrl := gomock.NewController(t)

	storage := mocks.NewMockStorage(ctrl)
	storage.EXPECT().Load().Return(nil, errUnexpected)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	store := favorites.NewStore(storage, mocks.NewMockFetcher(ctrl), zap.NewNop())
	store.Load()

	store.Add(pizzaDeal)

	assert.True(t, store.IsFavorite(1))
}

func TestStore_SaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	store, storage, _ := newLoadedStore(t, nil)
	storage.EXPECT().Save(gomock.Any()).Return(errUnexpected).AnyTimes()

	store.Add(pizzaDeal)

	assert.True(t, store.IsFavorite(1))
}

func TestStore_RefreshPartialFailure(t *testing.T) {
	seed := []favorites.Snapshot{
		{Offer: pizzaDeal},
		{Offer: sushiNight},
	}
	store, storage, fetcher := newLoadedStore(t, seed)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	refreshed := pizzaDeal
	refreshed.Title = "Pizza Deal v2"
	refreshed.DiscountedPrice = 70

	fetcher.EXPECT().OfferByID(gomock.Any(), 1).Return(&refreshed, nil)
	fetcher.EXPECT().OfferByID(gomock.Any(), 2).Return(nil, errUnexpected)

	require.True(t, store.LastRefreshed().IsZero())

	store.Refresh(context.Background())

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Pizza Deal v2", all[0].Title)
	assert.Equal(t, float64(70), all[0].DiscountedPrice)
	// the failed fetch keeps the stale snapshot
	assert.Equal(t, "Sushi Night", all[1].Title)

	assert.False(t, store.LastRefreshed().IsZero())
}

func TestStore_RefreshAllSettleBeforeCommit(t *testing.T) {
	seed := []favorites.Snapshot{
		{Offer: pizzaDeal},
		{Offer: sushiNight},
	}
	store, storage, fetcher := newLoadedStore(t, seed)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	slow := sushiNight
	slow.Title = "Sushi Night v2"

	fetcher.EXPECT().OfferByID(gomock.Any(), 1).Return(&pizzaDeal, nil)
	fetcher.EXPECT().OfferByID(gomock.Any(), 2).DoAndReturn(
		func(ctx context.Context, id int) (*offer.Offer, error) {
			time.Sleep(50 * time.Millisecond)
			return &slow, nil
		},
	)

	store.Refresh(context.Background())

	// the commit waited for the slowest fetch
	all := store.All()
	assert.Equal(t, "Sushi Night v2", all[1].Title)
}

func TestStore_ReloadReplacesStateWholesale(t *testing.T) {
	store, storage, _ := newLoadedStore(t, nil)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	store.Add(pizzaDeal)

	external := []favorites.Snapshot{{Offer: sushiNight}}
	storage.EXPECT().Load().Return(external, nil)

	store.Reload()

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ID.Int())
	// the local edit lost: last writer wins at the storage layer
	assert.False(t, store.IsFavorite(1))
}

func TestStore_SubscribersNotified(t *testing.T) {
	store, storage, _ := newLoadedStore(t, nil)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	var notified [][]favorites.Snapshot
	store.Subscribe(func(snapshot []favorites.Snapshot) {
		notified = append(notified, snapshot)
	})

	store.Add(pizzaDeal)
	store.Remove(1)

	require.Len(t, notified, 2)
	assert.Len(t, notified[0], 1)
	assert.Empty(t, notified[1])
}

func TestStore_SubscriberMayCallBack(t *testing.T) {
	store, storage, _ := newLoadedStore(t, nil)
	storage.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	var sawFavorite bool
	store.Subscribe(func([]favorites.Snapshot) {
		sawFavorite = store.IsFavorite(1)
	})

	store.Add(pizzaDeal)

	assert.True(t, sawFavorite)
}

package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"listing-feed/internal/feederrors"
	model "listing-feed/internal/models"
)

// Helper to create a fixed-price listing
func newListing(id, title, seller string, price float64) model.Listing {
	return model.Listing{
		ID:          id,
		Title:       title,
		Description: fmt.Sprintf("%s description", title),
		Price:       price,
		Seller:      seller,
		Date:        time.Now().UTC(),
	}
}

// Helper to create an auction listing ending at the given offset
func newAuctionListing(id, seller string, status model.AuctionStatus, endsIn time.Duration) model.Listing {
	l := newListing(id, "Auction "+id, seller, 20)
	l.Auction = &model.Auction{
		StartingPrice: 10,
		EndTime:       time.Now().UTC().Add(endsIn),
		Status:        status,
	}
	return l
}

// Test AddListing / GetListings
func TestMemoryRepo_GetListings(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddListing(newListing("listing1", "Red Boots", "vera", 45))
	repo.AddListing(newListing("listing2", "Wool Scarf", "hal", 25))
	repo.AddListing(newListing("listing3", "Denim Jacket", "owl", 60))

	listings, err := repo.GetListings()
	require.NoError(t, err)
	require.Len(t, listings, 3)

	// insertion order is preserved
	require.Equal(t, "listing1", listings[0].ID)
	require.Equal(t, "listing2", listings[1].ID)
	require.Equal(t, "listing3", listings[2].ID)

	// replacing a listing keeps its slot and does not duplicate it
	updated := newListing("listing2", "Wool Scarf v2", "hal", 30)
	repo.AddListing(updated)

	listings, err = repo.GetListings()
	require.NoError(t, err)
	require.Len(t, listings, 3)
	require.Equal(t, "Wool Scarf v2", listings[1].Title)
}

// Test GetListing
func TestMemoryRepo_GetListing(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddListing(newListing("listing1", "Red Boots", "vera", 45))

	tests := []struct {
		name      string
		listingID string
		wantError bool
	}{
		{name: "existing_listing", listingID: "listing1", wantError: false},
		{name: "unknown_listing", listingID: "nope", wantError: true},
		{name: "empty_id", listingID: "", wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, err := repo.GetListing(tc.listingID)
			if tc.wantError {
				require.Error(t, err)
				require.True(t, errors.Is(err, feederrors.ErrListingNotFound))
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.listingID, l.ID)
			}
		})
	}
}

// Test RemoveListing
func TestMemoryRepo_RemoveListing(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddListing(newListing("listing1", "Red Boots", "vera", 45))
	repo.AddListing(newListing("listing2", "Wool Scarf", "hal", 25))

	rev := repo.Revision()
	repo.RemoveListing("listing1")
	require.Greater(t, repo.Revision(), rev)

	listings, err := repo.GetListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, "listing2", listings[0].ID)

	// removing an unknown listing is a no-op and does not bump the revision
	rev = repo.Revision()
	repo.RemoveListing("nope")
	require.Equal(t, rev, repo.Revision())
}

// Test GetPopularTags
func TestMemoryRepo_GetPopularTags(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()

	l1 := newListing("listing1", "Red Boots", "vera", 45)
	l1.Tags = []string{"boots", "leather"}
	l2 := newListing("listing2", "Black Boots", "hal", 55)
	l2.Tags = []string{"boots", "winter"}
	l3 := newListing("listing3", "Wool Scarf", "owl", 25)
	l3.Tags = []string{"winter", "wool"}

	// an ended auction's tags must not count
	expired := newAuctionListing("listing4", "vera", model.AuctionActive, -time.Hour)
	expired.Tags = []string{"boots", "rare"}

	repo.AddListing(l1)
	repo.AddListing(l2)
	repo.AddListing(l3)
	repo.AddListing(expired)

	tags, err := repo.GetPopularTags(3)
	require.NoError(t, err)
	require.Len(t, tags, 3)

	require.Equal(t, model.TagCount{Tag: "boots", Count: 2}, tags[0])
	require.Equal(t, model.TagCount{Tag: "winter", Count: 2}, tags[1])
	require.Equal(t, model.TagCount{Tag: "leather", Count: 1}, tags[2])

	// zero limit returns everything
	all, err := repo.GetPopularTags(0)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

// Test GetUser and GetSellerProfile
func TestMemoryRepo_UsersAndProfiles(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddUser(model.User{Username: "vera", Role: model.RoleSeller, Verified: true})
	repo.AddSellerProfile(model.SellerProfile{Username: "vera", Bio: "Curated vintage wear"})

	u, err := repo.GetUser("vera")
	require.NoError(t, err)
	require.True(t, u.IsVerified())

	_, err = repo.GetUser("ghost")
	require.True(t, errors.Is(err, feederrors.ErrUserNotFound))

	p, err := repo.GetSellerProfile("vera")
	require.NoError(t, err)
	require.Equal(t, "Curated vintage wear", p.Bio)

	_, err = repo.GetSellerProfile("ghost")
	require.True(t, errors.Is(err, feederrors.ErrProfileNotFound))
}

// Test GetOrdersBySeller
func TestMemoryRepo_GetOrdersBySeller(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddOrder(model.Order{OrderID: "o1", Seller: "vera", Status: model.OrderCompleted})
	repo.AddOrder(model.Order{OrderID: "o2", Seller: "vera", Status: model.OrderPending})
	repo.AddOrder(model.Order{OrderID: "o3", Seller: "hal", Status: model.OrderCompleted})

	orders, err := repo.GetOrdersBySeller("vera")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	orders, err = repo.GetOrdersBySeller("ghost")
	require.NoError(t, err)
	require.Empty(t, orders)
}

// Test IsSubscribed
func TestMemoryRepo_IsSubscribed(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	repo.AddSubscription("bee", "hal")
	repo.AddSubscription("bee", "hal") // idempotent

	tests := []struct {
		name   string
		buyer  string
		seller string
		want   bool
	}{
		{name: "subscribed", buyer: "bee", seller: "hal", want: true},
		{name: "not_subscribed", buyer: "bee", seller: "vera", want: false},
		{name: "unknown_buyer", buyer: "ghost", seller: "hal", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := repo.IsSubscribed(tc.buyer, tc.seller)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	require.Len(t, repo.subscriptions["bee"], 1)
}

// Test Revision bumps on every write
func TestMemoryRepo_Revision(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.Equal(t, uint64(0), repo.Revision())

	repo.AddListing(newListing("listing1", "Red Boots", "vera", 45))
	repo.AddUser(model.User{Username: "vera"})
	repo.AddOrder(model.Order{OrderID: "o1", Seller: "vera"})

	require.Equal(t, uint64(3), repo.Revision())
}

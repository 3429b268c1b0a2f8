package models

import "time"

// Role is the viewer's role in the marketplace
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User represents a marketplace account
type User struct {
	Username           string `json:"username"`
	Role               Role   `json:"role"`
	Verified           bool   `json:"verified"`
	VerificationStatus string `json:"verification_status"`
}

// IsVerified reports whether the account passed seller verification
func (u User) IsVerified() bool {
	return u.Verified || u.VerificationStatus == "verified"
}

// SellerProfile holds the public profile attached to a seller account
type SellerProfile struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Picture  string `json:"picture"`
}

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionCancelled AuctionStatus = "cancelled"
	AuctionEnded     AuctionStatus = "ended"
)

// Bid represents an accepted bid on an auction listing
type Bid struct {
	Bidder string    `json:"bidder"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// Auction is the auction sub-record of a listing. Absence means fixed price.
type Auction struct {
	StartingPrice float64       `json:"starting_price"`
	ReservePrice  *float64      `json:"reserve_price,omitempty"`
	EndTime       time.Time     `json:"end_time"`
	Status        AuctionStatus `json:"status"`
	Bids          []Bid         `json:"bids,omitempty"`
	HighestBid    *float64      `json:"highest_bid,omitempty"`
	HighestBidder string        `json:"highest_bidder,omitempty"`
}

// Listing represents a sellable item
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Tags        []string  `json:"tags,omitempty"`
	Seller      string    `json:"seller"`
	IsPremium   bool      `json:"is_premium"`
	HoursWorn   *float64  `json:"hours_worn,omitempty"`
	Auction     *Auction  `json:"auction,omitempty"`
	Date        time.Time `json:"date"`
}

// IsActive reports whether the listing belongs to the active set: fixed-price
// listings always do, auctions only while status is active and the end time is
// a valid instant strictly in the future.
func (l Listing) IsActive(now time.Time) bool {
	if l.Auction == nil {
		return true
	}
	if l.Auction.Status != AuctionActive {
		return false
	}
	if l.Auction.EndTime.IsZero() {
		return false
	}
	return l.Auction.EndTime.After(now)
}

// EffectivePrice is the auction's highest bid when present, else the fixed price
func (l Listing) EffectivePrice() float64 {
	if l.Auction != nil && l.Auction.HighestBid != nil {
		return *l.Auction.HighestBid
	}
	return l.Price
}

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderRefunded  OrderStatus = "refunded"
)

// Order represents a purchase of a listing
type Order struct {
	OrderID   string      `json:"order_id"`
	ListingID string      `json:"listing_id"`
	Buyer     string      `json:"buyer"`
	Seller    string      `json:"seller"`
	Amount    float64     `json:"amount"`
	Status    OrderStatus `json:"status"`
	Date      time.Time   `json:"date"`
}

// TagCount is a tag with its usage count across active listings
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CategoryCounts partitions the active listing set by category
type CategoryCounts struct {
	All      int `json:"all"`
	Standard int `json:"standard"`
	Premium  int `json:"premium"`
	Auction  int `json:"auction"`
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"listing-feed/internal/config"
	feed "listing-feed/internal/feedService"
	model "listing-feed/internal/models"
	"listing-feed/internal/repository"
	"listing-feed/internal/server"
	"listing-feed/internal/stream"
	"listing-feed/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLevel(cfg.Server.LogLevel)

	repo := repository.NewMemoryRepo()

	if !hydrateFromRedis(cfg, repo) {
		prepopulateListings(repo)
	}

	feedSvc := feed.NewFeedService(repo, feed.Options{
		PageSize:     cfg.Feed.PageSize,
		MarkupFactor: cfg.Feed.MarkupFactor,
	})
	defer feedSvc.Close()

	manager := stream.NewManager(feedSvc)
	go manager.Run()
	go forwardTicks(feedSvc.CountdownEngine(), manager)

	router := server.SetupRouter(feedSvc, manager)

	addr := ":" + cfg.Server.Port
	fmt.Printf("Starting listing feed server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// forwardTicks relays countdown ticks to every live browse session. Ticks
// carry only the counter; sessions use them as redraw triggers.
func forwardTicks(engine *feed.CountdownEngine, manager *stream.Manager) {
	ticks, cancel := engine.Subscribe()
	defer cancel()

	for range ticks {
		payload, err := json.Marshal(map[string]any{"type": "tick", "count": engine.Ticks()})
		if err != nil {
			continue
		}
		manager.Broadcast(payload)
	}
}

// hydrateFromRedis loads listings published by the marketplace backend. Any
// failure degrades to the built-in sample data rather than aborting startup.
func hydrateFromRedis(cfg *config.Config, repo *repository.MemoryRepo) bool {
	if !cfg.Redis.Enabled {
		return false
	}

	store, err := repository.NewRedisStore(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		utils.Warn("redis hydration unavailable", map[string]any{"error": err.Error()})
		return false
	}
	defer store.Close()

	ctx, cancelCtx := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelCtx()

	listings, err := store.LoadListings(ctx)
	if err != nil {
		utils.Warn("redis hydration failed", map[string]any{"error": err.Error()})
		return false
	}
	for _, l := range listings {
		repo.AddListing(l)
	}

	utils.Info("hydrated listings from redis", map[string]any{"count": len(listings)})
	return len(listings) > 0
}

// prepopulateListings adds sample marketplace data to the in-memory repo
func prepopulateListings(repo *repository.MemoryRepo) {
	now := time.Now().UTC()
	hours := func(h float64) *float64 { return &h }
	bid := 42.0

	sellers := []model.User{
		{Username: "vintage_vera", Role: model.RoleSeller, Verified: true},
		{Username: "hiker_hal", Role: model.RoleSeller, VerificationStatus: "verified"},
		{Username: "nightowl", Role: model.RoleSeller},
	}
	for _, u := range sellers {
		repo.AddUser(u)
	}
	repo.AddUser(model.User{Username: "buyer_bee", Role: model.RoleBuyer})

	repo.AddSellerProfile(model.SellerProfile{Username: "vintage_vera", Bio: "Curated vintage wear", Picture: "/img/vera.jpg"})
	repo.AddSellerProfile(model.SellerProfile{Username: "hiker_hal", Bio: "Trail-tested gear", Picture: "/img/hal.jpg"})

	listings := []model.Listing{
		{
			ID: "listing1", Title: "Red Boots", Description: "Barely worn leather boots",
			Price: 45, Tags: []string{"boots", "leather"}, Seller: "vintage_vera",
			HoursWorn: hours(12), Date: now.Add(-48 * time.Hour),
		},
		{
			ID: "listing2", Title: "Wool Scarf", Description: "Hand-knit, from boot camp days",
			Price: 25, Tags: []string{"wool", "winter"}, Seller: "hiker_hal",
			IsPremium: true, Date: now.Add(-24 * time.Hour),
		},
		{
			ID: "listing3", Title: "Denim Jacket", Description: "Classic fit",
			Price: 60, Tags: []string{"denim"}, Seller: "nightowl",
			Auction: &model.Auction{
				StartingPrice: 30,
				EndTime:       now.Add(2 * time.Hour),
				Status:        model.AuctionActive,
				Bids:          []model.Bid{{Bidder: "buyer_bee", Amount: bid, Date: now.Add(-time.Hour)}},
				HighestBid:    &bid,
				HighestBidder: "buyer_bee",
			},
			Date: now.Add(-12 * time.Hour),
		},
	}
	for _, l := range listings {
		repo.AddListing(l)
	}

	repo.AddOrder(model.Order{
		OrderID: utils.GenerateID(), ListingID: "listing0", Buyer: "buyer_bee",
		Seller: "vintage_vera", Amount: 30, Status: model.OrderCompleted, Date: now.Add(-72 * time.Hour),
	})
	repo.AddSubscription("buyer_bee", "hiker_hal")
}

package helpers

// BrowseQuery is the raw browse filter as it arrives on the query string
type BrowseQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	Hours    string `form:"hours"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
}

// CountdownResponse is the remaining-time payload for one auction listing
type CountdownResponse struct {
	ListingID      string `json:"listing_id"`
	Label          string `json:"label"`
	UpdateInterval int64  `json:"update_interval_ms"`
}

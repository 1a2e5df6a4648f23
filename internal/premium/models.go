package premium

import "time"

// Plan is a purchasable premium tier
type Plan struct {
	Name     string `json:"name"`
	PriceNGN int    `json:"price_ngn"`
	Days     int    `json:"days"`
}

// Plans lists the purchasable tiers, keyed by plan id
var Plans = map[string]Plan{
	"daily":   {Name: "Daily", PriceNGN: 200, Days: 1},
	"weekly":  {Name: "Weekly", PriceNGN: 1000, Days: 7},
	"monthly": {Name: "Monthly", PriceNGN: 3000, Days: 30},
}

// User is a stored account record
type User struct {
	ID           string    `json:"id"`
	Premium      bool      `json:"premium"`
	PremiumUntil time.Time `json:"premium_until,omitempty"`
	ChecksToday  int       `json:"checks_today"`
	CheckDate    string    `json:"check_date"` // YYYY-MM-DD of the counter
}

// Status is the quota view returned to clients
type Status struct {
	UserID          string `json:"user_id"`
	Premium         bool   `json:"premium"`
	PremiumUntil    string `json:"premium_until,omitempty"`
	ChecksUsedToday int    `json:"checks_used_today"`
	ChecksRemaining int    `json:"checks_remaining"` // -1 means unmetered
}

// UpgradeRequest selects a plan
type UpgradeRequest struct {
	Plan string `json:"plan" binding:"required,oneof=daily weekly monthly"`
}

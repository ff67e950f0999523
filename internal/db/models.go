package db

import (
	"time"

	"gorm.io/datatypes"
)

// User is a marketplace visitor as tracked by activity and purchase
// events. Rows are created lazily on the first event that carries the
// user id; TotalSpent and TotalPurchases only ever grow.
type User struct {
	UserID    string `gorm:"primaryKey;size:64"`
	Username  *string
	FirstSeen time.Time `gorm:"autoCreateTime"`
	LastSeen  time.Time

	TotalSpent     float64 `gorm:"not null;default:0"`
	TotalPurchases int64   `gorm:"not null;default:0"`
	WalletAddress  *string
}

// OnlineUser marks a user as currently online. Rows older than the
// online window are purged lazily on the next activity write.
type OnlineUser struct {
	UserID       string    `gorm:"primaryKey;size:64"`
	LastActivity time.Time `gorm:"index;not null"`
}

// Purchase is one registered gift purchase. Everything except Status is
// immutable once written.
type Purchase struct {
	ID uint `gorm:"primaryKey"`

	PurchaseID string `gorm:"uniqueIndex;size:128;not null"`
	UserID     string `gorm:"index;size:64;not null"`

	GiftID   string  `gorm:"size:128;not null"`
	GiftName string  `gorm:"size:128;not null"`
	Amount   float64 `gorm:"not null"`

	RecipientUsername string
	WalletAddress     string
	Status            string    `gorm:"size:32;not null;default:pending"`
	Timestamp         time.Time `gorm:"index;autoCreateTime"`

	// Metadata holds arbitrary key/value pairs supplied by the client
	// (e.g. source screen, promo code) without schema changes.
	Metadata datatypes.JSONMap `gorm:"type:json"`
}

// PopularGift accumulates per-gift sales counts for the popularity
// ranking. Incremented by exactly one per registered purchase.
type PopularGift struct {
	GiftID      string    `gorm:"primaryKey;size:128"`
	GiftName    string    `gorm:"size:128;not null"`
	TotalSales  int64     `gorm:"not null;default:0"`
	LastUpdated time.Time `gorm:"not null"`
}

// DailyStat is the per-calendar-day rollup. Turnover, gifts sold and
// revenue accumulate additively per purchase; the user counters are
// snapshots taken at write time.
type DailyStat struct {
	Date string `gorm:"primaryKey;size:10"` // YYYY-MM-DD

	TotalUsers    int64   `gorm:"not null;default:0"`
	OnlineUsers   int64   `gorm:"not null;default:0"`
	DailyTurnover float64 `gorm:"not null;default:0"`
	GiftsSold     int64   `gorm:"not null;default:0"`
	TotalRevenue  float64 `gorm:"not null;default:0"`
}

// ButtonSetting is an independent feature flag for one front-end
// button. The well-known ids are seeded enabled at startup.
type ButtonSetting struct {
	ButtonID    string    `gorm:"primaryKey;size:32"`
	Enabled     bool      `gorm:"not null;default:true"`
	LastUpdated time.Time `gorm:"not null"`
}

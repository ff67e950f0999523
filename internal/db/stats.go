package db

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OnlineWindow is how long a user counts as online after their last activity.
const OnlineWindow = 5 * time.Minute

// Purchase lifecycle statuses. The source system stored free-form strings;
// here the set is closed and transitions are validated.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

var (
	ErrUnknownStatus     = errors.New("unknown purchase status")
	ErrInvalidTransition = errors.New("invalid purchase status transition")
	ErrPurchaseNotFound  = errors.New("purchase not found")
)

// RecordActivity upserts the user and their online presence, then purges
// presence rows older than the online window. The purge is a side effect
// of the write path; there is no background sweep.
func RecordActivity(gdb *gorm.DB, userID string, username *string) error {
	now := time.Now()

	assigns := map[string]interface{}{"last_seen": now}
	if username != nil && *username != "" {
		assigns["username"] = *username
	}
	user := &User{UserID: userID, Username: username, FirstSeen: now, LastSeen: now}
	if err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(assigns),
	}).Create(user).Error; err != nil {
		return err
	}

	presence := &OnlineUser{UserID: userID, LastActivity: now}
	if err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_activity": now}),
	}).Create(presence).Error; err != nil {
		return err
	}

	cutoff := now.Add(-OnlineWindow)
	return gdb.Where("last_activity < ?", cutoff).Delete(&OnlineUser{}).Error
}

// PurchaseInput carries everything RecordPurchase needs beyond the ids
// the caller already resolved against the catalog.
type PurchaseInput struct {
	UserID            string
	Username          *string
	GiftID            string
	GiftName          string
	Amount            float64
	RecipientUsername string
	WalletAddress     string
	Metadata          map[string]any
}

// RecordPurchase registers one purchase: user totals, the purchase row,
// the popularity counter and the daily rollup all move inside a single
// transaction so concurrent purchases never lose increments.
// Returns the generated purchase id.
func RecordPurchase(gdb *gorm.DB, in PurchaseInput) (string, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	// Nanosecond resolution keeps ids unique when one user buys twice
	// within the same second.
	purchaseID := fmt.Sprintf("purchase_%d_%s", now.UnixNano(), in.UserID)

	err := gdb.Transaction(func(tx *gorm.DB) error {
		userAssigns := map[string]interface{}{
			"last_seen":       now,
			"total_spent":     gorm.Expr("users.total_spent + ?", in.Amount),
			"total_purchases": gorm.Expr("users.total_purchases + 1"),
		}
		if in.Username != nil && *in.Username != "" {
			userAssigns["username"] = *in.Username
		}
		if in.WalletAddress != "" {
			userAssigns["wallet_address"] = in.WalletAddress
		}
		var wallet *string
		if in.WalletAddress != "" {
			wallet = &in.WalletAddress
		}
		user := &User{
			UserID:         in.UserID,
			Username:       in.Username,
			FirstSeen:      now,
			LastSeen:       now,
			TotalSpent:     in.Amount,
			TotalPurchases: 1,
			WalletAddress:  wallet,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(userAssigns),
		}).Create(user).Error; err != nil {
			return err
		}

		meta := datatypes.JSONMap{}
		for k, v := range in.Metadata {
			meta[k] = v
		}
		purchase := &Purchase{
			PurchaseID:        purchaseID,
			UserID:            in.UserID,
			GiftID:            in.GiftID,
			GiftName:          in.GiftName,
			Amount:            in.Amount,
			RecipientUsername: in.RecipientUsername,
			WalletAddress:     in.WalletAddress,
			Status:            StatusPending,
			Timestamp:         now,
			Metadata:          meta,
		}
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		popular := &PopularGift{GiftID: in.GiftID, GiftName: in.GiftName, TotalSales: 1, LastUpdated: now}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "gift_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"gift_name":    in.GiftName,
				"total_sales":  gorm.Expr("popular_gifts.total_sales + 1"),
				"last_updated": now,
			}),
		}).Create(popular).Error; err != nil {
			return err
		}

		// Snapshot counts at write time; the money columns accumulate.
		var totalUsers, onlineUsers int64
		if err := tx.Model(&User{}).Count(&totalUsers).Error; err != nil {
			return err
		}
		if err := tx.Model(&OnlineUser{}).Count(&onlineUsers).Error; err != nil {
			return err
		}
		stat := &DailyStat{
			Date:          today,
			TotalUsers:    totalUsers,
			OnlineUsers:   onlineUsers,
			DailyTurnover: in.Amount,
			GiftsSold:     1,
			TotalRevenue:  in.Amount,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_users":    totalUsers,
				"online_users":   onlineUsers,
				"daily_turnover": gorm.Expr("daily_stats.daily_turnover + ?", in.Amount),
				"gifts_sold":     gorm.Expr("daily_stats.gifts_sold + 1"),
				"total_revenue":  gorm.Expr("daily_stats.total_revenue + ?", in.Amount),
			}),
		}).Create(stat).Error
	})
	if err != nil {
		return "", err
	}
	return purchaseID, nil
}

// UpdatePurchaseStatus moves a purchase through its lifecycle. Unknown
// target statuses and transitions out of a terminal state are rejected.
func UpdatePurchaseStatus(gdb *gorm.DB, purchaseID, status string) error {
	if _, ok := statusTransitions[status]; !ok {
		return ErrUnknownStatus
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		var purchase Purchase
		if err := tx.Where("purchase_id = ?", purchaseID).First(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseNotFound
			}
			return err
		}
		if purchase.Status == status {
			return nil
		}
		allowed := false
		for _, next := range statusTransitions[purchase.Status] {
			if next == status {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrInvalidTransition
		}
		return tx.Model(&purchase).Update("status", status).Error
	})
}

// Statistics is the live aggregate snapshot served to the front-end.
type Statistics struct {
	TotalUsers    int64   `json:"totalUsers"`
	TodayOnline   int64   `json:"todayOnline"`
	DailyTurnover float64 `json:"dailyTurnover"`
	GiftsSold     int64   `json:"giftsSold"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TodayRevenue  float64 `json:"todayRevenue"`
	WeekRevenue   float64 `json:"weekRevenue"`
	TotalSales    int64   `json:"totalSales"`
}

// GetStatistics derives the snapshot with read-only aggregate queries at
// call time; nothing here is cached.
func GetStatistics(gdb *gorm.DB) (*Statistics, error) {
	now := time.Now()
	today := now.Format("2006-01-02")

	var stats Statistics
	if err := gdb.Model(&User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := gdb.Model(&OnlineUser{}).Count(&stats.TodayOnline).Error; err != nil {
		return nil, err
	}

	var daily DailyStat
	err := gdb.Where("date = ?", today).Limit(1).Find(&daily).Error
	if err != nil {
		return nil, err
	}
	stats.DailyTurnover = round2(daily.DailyTurnover)

	if err := gdb.Model(&Purchase{}).Count(&stats.GiftsSold).Error; err != nil {
		return nil, err
	}

	var totalRevenue float64
	if err := gdb.Model(&User{}).Select("COALESCE(SUM(total_spent), 0)").Scan(&totalRevenue).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = round2(totalRevenue)

	var weekRevenue float64
	weekAgo := now.AddDate(0, 0, -7)
	if err := gdb.Model(&Purchase{}).
		Where("timestamp >= ?", weekAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&weekRevenue).Error; err != nil {
		return nil, err
	}
	stats.WeekRevenue = round2(weekRevenue)

	stats.TodayRevenue = stats.DailyTurnover
	stats.TotalSales = stats.GiftsSold
	return &stats, nil
}

// TopBuyer is one row of the spending ranking.
type TopBuyer struct {
	Username  string  `json:"username"`
	Spent     float64 `json:"spent"`
	Purchases int64   `json:"purchases"`
}

// GetTopBuyers ranks users by lifetime spend, ignoring users that never
// bought anything. Users without a username show up as "Anonymous".
func GetTopBuyers(gdb *gorm.DB, limit int) ([]TopBuyer, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []User
	if err := gdb.Where("total_spent > 0").
		Order("total_spent DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	buyers := make([]TopBuyer, 0, len(users))
	for _, u := range users {
		name := "Anonymous"
		if u.Username != nil && *u.Username != "" {
			name = *u.Username
		}
		buyers = append(buyers, TopBuyer{
			Username:  name,
			Spent:     round2(u.TotalSpent),
			Purchases: u.TotalPurchases,
		})
	}
	return buyers, nil
}

// GiftRank is one row of the popularity ranking.
type GiftRank struct {
	Name  string `json:"name"`
	Sales int64  `json:"sales"`
}

// GetPopularGifts ranks gifts by total registered sales.
func GetPopularGifts(gdb *gorm.DB, limit int) ([]GiftRank, error) {
	if limit <= 0 {
		limit = 10
	}
	var gifts []PopularGift
	if err := gdb.Order("total_sales DESC").Limit(limit).Find(&gifts).Error; err != nil {
		return nil, err
	}

	ranks := make([]GiftRank, 0, len(gifts))
	for _, g := range gifts {
		ranks = append(ranks, GiftRank{Name: g.GiftName, Sales: g.TotalSales})
	}
	return ranks, nil
}

// GetButtonStatus reports whether a front-end button is enabled. Unknown
// button ids default to enabled.
func GetButtonStatus(gdb *gorm.DB, buttonID string) (bool, error) {
	var setting ButtonSetting
	err := gdb.Where("button_id = ?", buttonID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return setting.Enabled, nil
}

// SetButtonStatus upserts a button flag.
func SetButtonStatus(gdb *gorm.DB, buttonID string, enabled bool) error {
	now := time.Now()
	setting := &ButtonSetting{ButtonID: buttonID, Enabled: enabled, LastUpdated: now}
	return gdb.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "button_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"enabled":      enabled,
			"last_updated": now,
		}),
	}).Create(setting).Error
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

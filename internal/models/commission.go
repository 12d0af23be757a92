package models

import (
	"time"
)

const (
	CommissionPending   = "PENDING"
	CommissionApproved  = "APPROVED"
	CommissionPaid      = "PAID"
	CommissionCancelled = "CANCELLED"
)

// Commission levels
const (
	LevelDirect   = 1
	LevelIndirect = 2
)

// Commission is one earned payout. The composite unique index on
// (transaction_id, level) is the authoritative de-duplication for purchase
// processing: a purchase can produce at most one direct and one indirect row.
type Commission struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AffiliateId     int       `gorm:"column:affiliate_id;not null;index:idx_commission_affiliate" json:"affiliate_id"`
	FromAffiliateId int       `gorm:"column:from_affiliate_id;not null" json:"from_affiliate_id"`
	TransactionId   string    `gorm:"column:transaction_id;size:64;not null;uniqueIndex:idx_commission_trx_level" json:"transaction_id"`
	Level           int       `gorm:"column:level;not null;uniqueIndex:idx_commission_trx_level" json:"level"` // 1: direct, 2: indirect
	Amount          float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Status          string    `gorm:"column:status;size:20;default:PENDING" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Commission) TableName() string {
	return "commissions"
}

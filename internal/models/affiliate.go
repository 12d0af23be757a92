package models

import (
	"time"
)

type Tier string

const (
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

func (t Tier) Valid() bool {
	switch t {
	case TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

type Affiliate struct {
	ID                    int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId                int       `gorm:"column:user_id;not null;uniqueIndex:idx_affiliate_user" json:"user_id"`
	ReferralCode          string    `gorm:"column:referral_code;size:20;not null;uniqueIndex:idx_affiliate_code" json:"referral_code"`
	ParentId              *int      `gorm:"column:parent_id;index:idx_affiliate_parent" json:"parent_id"`
	PackageTier           Tier      `gorm:"column:package_tier;size:20;not null" json:"package_tier"`
	TotalDirectEarnings   float64   `gorm:"column:total_direct_earnings;type:decimal(20,2);default:0.00" json:"total_direct_earnings"`
	TotalIndirectEarnings float64   `gorm:"column:total_indirect_earnings;type:decimal(20,2);default:0.00" json:"total_indirect_earnings"`
	CurrentBalance        float64   `gorm:"column:current_balance;type:decimal(20,2);default:0.00" json:"current_balance"`
	TotalWithdrawn        float64   `gorm:"column:total_withdrawn;type:decimal(20,2);default:0.00" json:"total_withdrawn"`
	Status                int       `gorm:"column:status;default:1" json:"status"` // 1: active, 0: suspended
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

const (
	AffiliateSuspended = 0
	AffiliateActive    = 1
)

package models

import (
	"time"
)

const (
	ReferralActive = "ACTIVE"
	ReferralClosed = "CLOSED"
)

// Referral is the edge record created when a new affiliate registers under a
// referrer's code. CommissionEarned is a running total accumulated by the
// ledger; the row itself is never deleted.
type Referral struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AffiliateId         int       `gorm:"column:affiliate_id;not null;index:idx_referral_affiliate" json:"affiliate_id"`
	ReferredUserId      int       `gorm:"column:referred_user_id;not null" json:"referred_user_id"`
	ReferredAffiliateId int       `gorm:"column:referred_affiliate_id;not null;index:idx_referral_referred" json:"referred_affiliate_id"`
	CommissionEarned    float64   `gorm:"column:commission_earned;type:decimal(20,2);default:0.00" json:"commission_earned"`
	Status              string    `gorm:"column:status;size:20;default:ACTIVE" json:"status"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Referral) TableName() string {
	return "referrals"
}

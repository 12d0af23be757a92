package models

import (
	"time"
)

// ArchivedTransaction is a cold copy of a settled audit row moved out of the
// hot transactions table by the archive scheduler.
type ArchivedTransaction struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int       `gorm:"column:user_id;not null" json:"user_id"`
	AffiliateId   int       `gorm:"column:affiliate_id;default:0" json:"affiliate_id"`
	TransactionNo string    `gorm:"column:transaction_no;size:64;not null;index" json:"transaction_no"`
	Amount        float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	TrxType       string    `gorm:"column:transaction_type;size:50;not null" json:"transaction_type"`
	Subject       string    `gorm:"column:subject;size:255;not null" json:"subject"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	PackageTier   string    `gorm:"column:package_tier;size:20" json:"package_tier"`
	Balance       float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	Status        int       `gorm:"column:status;default:0" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ArchivedTransaction) TableName() string {
	return "archived_transactions"
}

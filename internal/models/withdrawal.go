package models

import (
	"time"
)

const (
	WithdrawalPending   = "PENDING"
	WithdrawalApproved  = "APPROVED"
	WithdrawalCompleted = "COMPLETED"
	WithdrawalRejected  = "REJECTED"
	WithdrawalCancelled = "CANCELLED"
)

type Withdrawal struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId         int       `gorm:"column:user_id;not null;index:idx_withdrawal_user" json:"user_id"`
	AffiliateId    int       `gorm:"column:affiliate_id;not null;index:idx_withdrawal_affiliate" json:"affiliate_id"`
	Amount         float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	WithdrawalCode string    `gorm:"column:withdrawal_code;size:40" json:"withdrawal_code"`
	Comment        string    `gorm:"column:comment;type:text" json:"comment"`
	UpdatedBy      string    `gorm:"column:updated_by;size:150" json:"updated_by"`
	Status         string    `gorm:"column:status;size:20;default:PENDING" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

package services

import (
	"affiliate-service/internal/models"

	"gorm.io/gorm"
)

type HelperService struct {
	DB *gorm.DB
}

func NewHelperService(db *gorm.DB) *HelperService {
	return &HelperService{DB: db}
}

type AuditEntry struct {
	UserId        int
	AffiliateId   int
	TransactionNo string
	Amount        float64
	TrxType       string
	Subject       string
	Description   string
	Balance       float64
}

// SaveAuditRow appends one settled audit transaction inside the caller's
// unit of work so a rollback discards the row together with the balance
// mutation it describes.
func (s *HelperService) SaveAuditRow(tx *gorm.DB, entry AuditEntry) error {
	row := models.Transaction{
		UserId:        entry.UserId,
		AffiliateId:   entry.AffiliateId,
		TransactionNo: entry.TransactionNo,
		Amount:        entry.Amount,
		TrxType:       entry.TrxType,
		Subject:       entry.Subject,
		Description:   entry.Description,
		Balance:       entry.Balance,
		Status:        1,
	}
	return tx.Create(&row).Error
}

// RecordPurchase stores the verified purchase event if it is not already
// present. The payment collaborator normally writes this row; keeping the
// upsert here makes webhook replays harmless.
func (s *HelperService) RecordPurchase(tx *gorm.DB, transactionID string, userID, affiliateID int, amount float64, tier models.Tier) error {
	var count int64
	if err := tx.Model(&models.Transaction{}).
		Where("transaction_no = ? AND subject = ?", transactionID, "Purchase").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	row := models.Transaction{
		UserId:        userID,
		AffiliateId:   affiliateID,
		TransactionNo: transactionID,
		Amount:        amount,
		TrxType:       "debit",
		Subject:       "Purchase",
		Description:   "Package purchase",
		PackageTier:   string(tier),
		Status:        1,
	}
	return tx.Create(&row).Error
}

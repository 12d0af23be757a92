package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"affiliate-service/internal/models"

	"gorm.io/gorm"
)

// Audit rows older than this move to the archive table.
const archiveAfterDays = 90

type TransactionArchiveService struct {
	DB *gorm.DB
}

func NewTransactionArchiveService(db *gorm.DB) *TransactionArchiveService {
	return &TransactionArchiveService{DB: db}
}

// ArchiveTransactions moves settled audit rows past the retention window into
// archived_transactions.
func (s *TransactionArchiveService) ArchiveTransactions() {
	log.Println("Starting transaction archive process...")

	cutoff := time.Now().AddDate(0, 0, -archiveAfterDays)

	var oldTransactions []models.Transaction
	if err := s.DB.Where("created_at < ? AND status = ?", cutoff, 1).Find(&oldTransactions).Error; err != nil {
		log.Printf("Error finding old transactions: %v", err)
		return
	}

	if len(oldTransactions) == 0 {
		log.Println("No transactions to archive")
		return
	}

	log.Printf("Found %d transactions to archive", len(oldTransactions))

	archived := make([]models.ArchivedTransaction, 0, len(oldTransactions))
	for _, row := range oldTransactions {
		archived = append(archived, models.ArchivedTransaction{
			UserId:        row.UserId,
			AffiliateId:   row.AffiliateId,
			TransactionNo: row.TransactionNo,
			Amount:        row.Amount,
			TrxType:       row.TrxType,
			Subject:       row.Subject,
			Description:   row.Description,
			PackageTier:   row.PackageTier,
			Balance:       row.Balance,
			Status:        row.Status,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}

		ids := make([]int, len(oldTransactions))
		for i, t := range oldTransactions {
			ids[i] = t.ID
		}
		return tx.Delete(&models.Transaction{}, ids).Error
	})

	if err != nil {
		log.Printf("Error during transaction archiving: %v", err)
	} else {
		log.Printf("Archived and removed %d transactions.", len(oldTransactions))
	}
}

// StartScheduler runs the archive nightly.
func (s *TransactionArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 2 * * *", func() {
		log.Println("Running scheduled transaction archive task...")
		s.ArchiveTransactions()
	})
	if err != nil {
		log.Printf("Error scheduling archive task: %v", err)
		return
	}
	c.Start()
	log.Println("Transaction Archive Scheduler started (Daily at 02:00)")
}

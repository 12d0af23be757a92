package consumers

import (
	"errors"
	"log"

	"affiliate-service/internal/models"
	"affiliate-service/internal/services"

	"gorm.io/gorm"
)

type WithdrawalProcessor struct {
	DB         *gorm.DB
	Withdrawal *services.WithdrawalService
}

func NewWithdrawalProcessor(db *gorm.DB, withdrawal *services.WithdrawalService) *WithdrawalProcessor {
	return &WithdrawalProcessor{DB: db, Withdrawal: withdrawal}
}

// ProcessWithdrawalRequest handles a queued payout request. Small amounts are
// disbursed automatically; anything above the auto limit stays PENDING for an
// admin. Re-delivered tasks are harmless because ApplyWithdrawal only acts on
// PENDING rows.
func (p *WithdrawalProcessor) ProcessWithdrawalRequest(job services.WithdrawalJobDTO) error {
	if job.Amount > services.AutoPayoutLimit {
		log.Printf("Withdrawal %d (%.2f) above auto payout limit, awaiting admin review", job.WithdrawalId, job.Amount)
		return nil
	}

	_, err := p.Withdrawal.ApplyWithdrawal(job.WithdrawalId, models.WithdrawalCompleted, "auto-disbursement")
	if err != nil {
		if errors.Is(err, services.ErrAlreadyProcessed) {
			log.Printf("Withdrawal %d already processed, skipping", job.WithdrawalId)
			return nil
		}
		if errors.Is(err, services.ErrInsufficientBalance) {
			// Balance moved between request and disbursement; leave the row
			// PENDING for an admin decision.
			log.Printf("Withdrawal %d has insufficient balance at disbursement time", job.WithdrawalId)
			return nil
		}
		return err
	}

	log.Printf("Withdrawal %d auto-disbursed", job.WithdrawalId)
	return nil
}

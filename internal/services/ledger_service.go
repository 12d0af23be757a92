package services

import (
	"errors"
	"fmt"

	"affiliate-service/internal/models"
	"affiliate-service/internal/rates"

	"gorm.io/gorm"
)

// processAttempts bounds the retry loop around a unit of work aborted by
// store contention.
const processAttempts = 3

// errCommissionExists signals that another caller won the race to process the
// same transaction; the duplicate-key error on the unique
// (transaction_id, level) index is the single source of truth for that.
var errCommissionExists = errors.New("commission already recorded")

type LedgerService struct {
	DB        *gorm.DB
	Rates     rates.Table
	Hierarchy *HierarchyService
	Helper    *HelperService
}

func NewLedgerService(db *gorm.DB, table rates.Table, hierarchy *HierarchyService, helper *HelperService) *LedgerService {
	return &LedgerService{DB: db, Rates: table, Hierarchy: hierarchy, Helper: helper}
}

type ProcessResult struct {
	Direct   *models.Commission `json:"direct"`
	Indirect *models.Commission `json:"indirect"`
}

// ProcessPurchase settles the commissions for one verified purchase. The
// whole operation runs in a single database transaction: resolve the upline,
// write the direct and indirect commission rows, and move the beneficiary
// balances with relative increments. Calling it again with the same
// transaction id returns the already-committed rows unchanged.
func (s *LedgerService) ProcessPurchase(transactionID string, purchaserAffiliateID int) (ProcessResult, error) {
	var res ProcessResult
	var err error
	for attempt := 1; attempt <= processAttempts; attempt++ {
		res, err = s.processOnce(transactionID, purchaserAffiliateID)
		if err == nil || !isRetryable(err) {
			return res, err
		}
	}
	return ProcessResult{}, ErrConcurrencyConflict
}

func (s *LedgerService) processOnce(transactionID string, purchaserAffiliateID int) (ProcessResult, error) {
	var res ProcessResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		found, err := s.loadExisting(tx, transactionID, &res)
		if err != nil || found {
			return err
		}

		var purchaser models.Affiliate
		if err := tx.First(&purchaser, purchaserAffiliateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownAffiliate
			}
			return err
		}

		parent, grandparent, err := s.Hierarchy.ResolveUpline(tx, &purchaser)
		if err != nil {
			return err
		}
		if parent == nil {
			return nil
		}

		direct, err := s.credit(tx, transactionID, &purchaser, parent, purchaser.ID, models.LevelDirect)
		if err != nil {
			return err
		}
		res.Direct = direct

		if grandparent != nil {
			indirect, err := s.credit(tx, transactionID, &purchaser, grandparent, parent.ID, models.LevelIndirect)
			if err != nil {
				return err
			}
			res.Indirect = indirect
		}

		return nil
	})

	if errors.Is(err, errCommissionExists) {
		// Lost the first-processing race; the winner's rows are committed by
		// the time the duplicate-key error surfaces.
		res = ProcessResult{}
		if _, loadErr := s.loadExisting(s.DB, transactionID, &res); loadErr != nil {
			return ProcessResult{}, loadErr
		}
		return res, nil
	}
	if err != nil {
		return ProcessResult{}, err
	}
	return res, nil
}

func (s *LedgerService) loadExisting(db *gorm.DB, transactionID string, res *ProcessResult) (bool, error) {
	var existing []models.Commission
	if err := db.Where("transaction_id = ?", transactionID).Order("level asc").Find(&existing).Error; err != nil {
		return false, err
	}
	if len(existing) == 0 {
		return false, nil
	}
	for i := range existing {
		switch existing[i].Level {
		case models.LevelDirect:
			res.Direct = &existing[i]
		case models.LevelIndirect:
			res.Indirect = &existing[i]
		}
	}
	return true, nil
}

// credit writes one commission row and applies its side effects to the
// beneficiary. A zero rate entry produces no row at all: absence of a row is
// the "no payout" signal, so aggregate queries never need an amount guard.
func (s *LedgerService) credit(tx *gorm.DB, transactionID string, purchaser, beneficiary *models.Affiliate, edgeAffiliateID, level int) (*models.Commission, error) {
	amount := s.Rates.Amount(purchaser.PackageTier, beneficiary.PackageTier, level)
	if amount <= 0 {
		return nil, nil
	}

	// Source purchase is already verified, so the commission is born APPROVED.
	commission := models.Commission{
		AffiliateId:     beneficiary.ID,
		FromAffiliateId: purchaser.ID,
		TransactionId:   transactionID,
		Level:           level,
		Amount:          amount,
		Status:          models.CommissionApproved,
	}
	if err := tx.Create(&commission).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errCommissionExists
		}
		return nil, err
	}

	earningsCol := "total_direct_earnings"
	subject := "Direct Commission"
	if level == models.LevelIndirect {
		earningsCol = "total_indirect_earnings"
		subject = "Indirect Commission"
	}

	// Relative increments so concurrent purchases crediting the same upline
	// serialize correctly regardless of commit order.
	if err := tx.Model(&models.Affiliate{}).
		Where("id = ?", beneficiary.ID).
		UpdateColumns(map[string]interface{}{
			earningsCol:       gorm.Expr(earningsCol+" + ?", amount),
			"current_balance": gorm.Expr("current_balance + ?", amount),
		}).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Referral{}).
		Where("affiliate_id = ? AND referred_affiliate_id = ?", beneficiary.ID, edgeAffiliateID).
		UpdateColumn("commission_earned", gorm.Expr("commission_earned + ?", amount)).Error; err != nil {
		return nil, err
	}

	var balance float64
	if err := tx.Model(&models.Affiliate{}).
		Select("current_balance").
		Where("id = ?", beneficiary.ID).
		Scan(&balance).Error; err != nil {
		return nil, err
	}

	if err := s.Helper.SaveAuditRow(tx, AuditEntry{
		UserId:        beneficiary.UserId,
		AffiliateId:   beneficiary.ID,
		TransactionNo: transactionID,
		Amount:        amount,
		TrxType:       "credit",
		Subject:       subject,
		Description:   fmt.Sprintf("Level %d commission from purchase by affiliate %d", level, purchaser.ID),
		Balance:       balance,
	}); err != nil {
		return nil, err
	}

	return &commission, nil
}

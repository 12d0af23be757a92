package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"affiliate-service/internal/models"
	"affiliate-service/pkg/common"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Task type consumed by the worker binary.
const TypeWithdrawalRequest = "withdrawal-request"

// Payout limits. The product exposes a single fixed band for affiliate
// payouts; amounts above the auto limit wait for an admin decision.
const (
	MinimumWithdrawal = 500.0
	MaximumWithdrawal = 100000.0
	AutoPayoutLimit   = 5000.0
)

type WithdrawalService struct {
	DB     *gorm.DB
	Helper *HelperService
	Queue  *asynq.Client
}

func NewWithdrawalService(db *gorm.DB, helper *HelperService, queue *asynq.Client) *WithdrawalService {
	return &WithdrawalService{DB: db, Helper: helper, Queue: queue}
}

type WithdrawRequestDTO struct {
	UserId int
	Amount float64
}

type WithdrawalJobDTO struct {
	WithdrawalId int     `json:"withdrawalId"`
	AffiliateId  int     `json:"affiliateId"`
	Amount       float64 `json:"amount"`
}

// RequestWithdrawal records a PENDING payout request for the affiliate owned
// by the user. The balance check here is a courtesy precheck for fast
// feedback; the authoritative guard runs inside ApplyWithdrawal's atomic
// debit.
func (s *WithdrawalService) RequestWithdrawal(data WithdrawRequestDTO) (*models.Withdrawal, error) {
	var affiliate models.Affiliate
	if err := s.DB.Where("user_id = ?", data.UserId).First(&affiliate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAffiliate
		}
		return nil, err
	}

	if data.Amount < MinimumWithdrawal {
		return nil, fmt.Errorf("minimum withdrawable amount is %.2f", MinimumWithdrawal)
	}
	if data.Amount > MaximumWithdrawal {
		return nil, fmt.Errorf("maximum withdrawable amount is %.2f", MaximumWithdrawal)
	}
	if affiliate.CurrentBalance < data.Amount {
		return nil, ErrInsufficientBalance
	}

	withdrawal := models.Withdrawal{
		UserId:         data.UserId,
		AffiliateId:    affiliate.ID,
		Amount:         data.Amount,
		WithdrawalCode: uuid.NewString(),
		Status:         models.WithdrawalPending,
	}
	if err := s.DB.Create(&withdrawal).Error; err != nil {
		return nil, err
	}

	s.enqueueRequest(withdrawal)

	return &withdrawal, nil
}

func (s *WithdrawalService) enqueueRequest(w models.Withdrawal) {
	if s.Queue == nil {
		return
	}
	payload, err := json.Marshal(WithdrawalJobDTO{
		WithdrawalId: w.ID,
		AffiliateId:  w.AffiliateId,
		Amount:       w.Amount,
	})
	if err != nil {
		log.Printf("Failed to marshal withdrawal job: %v", err)
		return
	}
	task := asynq.NewTask(TypeWithdrawalRequest, payload)
	if _, err := s.Queue.Enqueue(task, asynq.TaskID(fmt.Sprintf("withdrawal:%s", w.WithdrawalCode))); err != nil {
		log.Printf("Failed to enqueue withdrawal %d: %v", w.ID, err)
	}
}

// ApplyWithdrawal moves a PENDING request to its terminal status. APPROVED and
// COMPLETED debit the affiliate balance; the balance floor is enforced in the
// UPDATE predicate itself so two racing approvals cannot both pass a stale
// check. REJECTED and CANCELLED only transition the status.
func (s *WithdrawalService) ApplyWithdrawal(withdrawalID int, newStatus, updatedBy string) (*models.Affiliate, error) {
	var affiliate *models.Affiliate
	var err error
	for attempt := 1; attempt <= processAttempts; attempt++ {
		affiliate, err = s.applyOnce(withdrawalID, newStatus, updatedBy)
		if err == nil || !isRetryable(err) {
			return affiliate, err
		}
	}
	return nil, ErrConcurrencyConflict
}

func (s *WithdrawalService) applyOnce(withdrawalID int, newStatus, updatedBy string) (*models.Affiliate, error) {
	debit := false
	switch newStatus {
	case models.WithdrawalApproved, models.WithdrawalCompleted:
		debit = true
	case models.WithdrawalRejected, models.WithdrawalCancelled:
	default:
		return nil, fmt.Errorf("unsupported withdrawal status %q", newStatus)
	}

	var affiliate models.Affiliate
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var withdrawal models.Withdrawal
		if err := tx.First(&withdrawal, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownWithdrawal
			}
			return err
		}

		// The status predicate makes the transition the serialization point:
		// the second of two concurrent processors affects zero rows.
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalPending).
			UpdateColumns(map[string]interface{}{
				"status":     newStatus,
				"updated_by": updatedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if !debit {
			return tx.First(&affiliate, withdrawal.AffiliateId).Error
		}

		res = tx.Model(&models.Affiliate{}).
			Where("id = ? AND current_balance >= ?", withdrawal.AffiliateId, withdrawal.Amount).
			UpdateColumns(map[string]interface{}{
				"current_balance": gorm.Expr("current_balance - ?", withdrawal.Amount),
				"total_withdrawn": gorm.Expr("total_withdrawn + ?", withdrawal.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Affiliate{}).Where("id = ?", withdrawal.AffiliateId).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrUnknownAffiliate
			}
			return ErrInsufficientBalance
		}

		if err := tx.First(&affiliate, withdrawal.AffiliateId).Error; err != nil {
			return err
		}

		return s.Helper.SaveAuditRow(tx, AuditEntry{
			UserId:        withdrawal.UserId,
			AffiliateId:   withdrawal.AffiliateId,
			TransactionNo: withdrawal.WithdrawalCode,
			Amount:        withdrawal.Amount,
			TrxType:       "debit",
			Subject:       "Withdrawal",
			Description:   fmt.Sprintf("Withdrawal request %d %s", withdrawal.ID, newStatus),
			Balance:       affiliate.CurrentBalance,
		})
	})
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

type ListWithdrawalsDTO struct {
	From   string
	To     string
	Status string
	UserId int
	Page   int
	Limit  int
}

// ListWithdrawals returns an admin page of requests with the total amount for
// the filtered date range.
func (s *WithdrawalService) ListWithdrawals(data ListWithdrawalsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Withdrawal{})
	if data.From != "" && data.To != "" {
		query = query.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}
	if data.UserId != 0 {
		query = query.Where("user_id = ?", data.UserId)
	}
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var list []models.Withdrawal
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var totalAmount float64
	sumQuery := s.DB.Model(&models.Withdrawal{})
	if data.From != "" && data.To != "" {
		sumQuery = sumQuery.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}
	if err := sumQuery.Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(map[string]interface{}{
		"data":        list,
		"totalAmount": totalAmount,
	}, total, page, limit, "Withdrawal requests fetched successfully"), nil
}

// FetchAffiliateWithdrawals lists one affiliate's own requests.
func (s *WithdrawalService) FetchAffiliateWithdrawals(affiliateID int, pendingOnly bool) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	query := s.DB.Where("affiliate_id = ?", affiliateID)
	if pendingOnly {
		query = query.Where("status = ?", models.WithdrawalPending)
	}
	if err := query.Order("created_at DESC").Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

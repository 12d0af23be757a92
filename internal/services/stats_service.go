package services

import (
	"errors"

	"affiliate-service/internal/models"
	"affiliate-service/pkg/common"

	"gorm.io/gorm"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

type CommissionStats struct {
	TotalDirect    float64 `json:"totalDirect"`
	TotalIndirect  float64 `json:"totalIndirect"`
	CurrentBalance float64 `json:"currentBalance"`
	TotalWithdrawn float64 `json:"totalWithdrawn"`
	TotalReferrals int64   `json:"totalReferrals"`
}

// GetCommissionStats aggregates an affiliate's earnings for dashboards. The
// totals come straight off the affiliate row; only the Ledger and Reconciler
// write those columns.
func (s *StatsService) GetCommissionStats(affiliateID int) (CommissionStats, error) {
	var affiliate models.Affiliate
	if err := s.DB.First(&affiliate, affiliateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommissionStats{}, ErrUnknownAffiliate
		}
		return CommissionStats{}, err
	}

	var totalReferrals int64
	if err := s.DB.Model(&models.Referral{}).
		Where("affiliate_id = ?", affiliateID).
		Count(&totalReferrals).Error; err != nil {
		return CommissionStats{}, err
	}

	return CommissionStats{
		TotalDirect:    affiliate.TotalDirectEarnings,
		TotalIndirect:  affiliate.TotalIndirectEarnings,
		CurrentBalance: affiliate.CurrentBalance,
		TotalWithdrawn: affiliate.TotalWithdrawn,
		TotalReferrals: totalReferrals,
	}, nil
}

type ListCommissionsDTO struct {
	AffiliateId int
	Level       int
	Status      string
	From        string
	To          string
	Page        int
	Limit       int
}

// ListCommissions pages through an affiliate's commission history.
func (s *StatsService) ListCommissions(data ListCommissionsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Commission{}).Where("affiliate_id = ?", data.AffiliateId)
	if data.Level != 0 {
		query = query.Where("level = ?", data.Level)
	}
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.From != "" && data.To != "" {
		query = query.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var commissions []models.Commission
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&commissions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(commissions, total, page, limit, "Commissions fetched"), nil
}

package services

import (
	"errors"
	"strings"

	"affiliate-service/internal/models"
	"affiliate-service/pkg/common"

	"gorm.io/gorm"
)

type ReferralService struct {
	DB *gorm.DB
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{DB: db}
}

// CreateAffiliate issues the referral participation record for a user on
// first package purchase. Repeat calls for the same user return the existing
// record unchanged; tier and parent are immutable once set.
func (s *ReferralService) CreateAffiliate(userID int, tier models.Tier) (*models.Affiliate, error) {
	var existing models.Affiliate
	err := s.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	affiliate := models.Affiliate{
		UserId:       userID,
		ReferralCode: common.GenerateRefCode(),
		PackageTier:  tier,
		Status:       models.AffiliateActive,
	}

	// The code column is unique; regenerate on the rare collision. A losing
	// racer on user_id picks up the winner's row instead.
	for attempt := 0; attempt < 3; attempt++ {
		err = s.DB.Create(&affiliate).Error
		if err == nil {
			return &affiliate, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
		if dbErr := s.DB.Where("user_id = ?", userID).First(&existing).Error; dbErr == nil {
			return &existing, nil
		}
		affiliate.ReferralCode = common.GenerateRefCode()
	}
	return nil, err
}

// RegisterReferral links a newly created affiliate under the owner of the
// given referral code and creates the referral edge. A code that does not
// resolve to an active affiliate is not an error: the affiliate simply has no
// referrer. Only a supplied-but-malformed code is rejected.
func (s *ReferralService) RegisterReferral(newAffiliateID int, referralCode string) (*models.Referral, error) {
	if referralCode == "" {
		return nil, nil
	}

	normalized := strings.ToUpper(strings.TrimSpace(referralCode))
	if normalized == "" {
		return nil, ErrInvalidReferralCode
	}

	var affiliate models.Affiliate
	if err := s.DB.First(&affiliate, newAffiliateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAffiliate
		}
		return nil, err
	}

	var referrer models.Affiliate
	err := s.DB.Where("referral_code = ? AND status = ?", normalized, models.AffiliateActive).First(&referrer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if referrer.ID == affiliate.ID {
		return nil, nil
	}

	var referral *models.Referral
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// parent_id is immutable once set; the guard makes a replayed
		// registration a no-op instead of a re-link.
		res := tx.Model(&models.Affiliate{}).
			Where("id = ? AND parent_id IS NULL", affiliate.ID).
			UpdateColumn("parent_id", referrer.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var edge models.Referral
			if err := tx.Where("affiliate_id = ? AND referred_affiliate_id = ?", referrer.ID, affiliate.ID).
				First(&edge).Error; err == nil {
				referral = &edge
			}
			return nil
		}

		edge := models.Referral{
			AffiliateId:         referrer.ID,
			ReferredUserId:      affiliate.UserId,
			ReferredAffiliateId: affiliate.ID,
			CommissionEarned:    0,
			Status:              models.ReferralActive,
		}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
		referral = &edge
		return nil
	})
	if err != nil {
		return nil, err
	}

	return referral, nil
}

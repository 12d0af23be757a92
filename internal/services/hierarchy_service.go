package services

import (
	"errors"

	"affiliate-service/internal/models"

	"gorm.io/gorm"
)

type HierarchyService struct {
	DB *gorm.DB
}

func NewHierarchyService(db *gorm.DB) *HierarchyService {
	return &HierarchyService{DB: db}
}

// Resolve returns the affiliate's parent and grandparent. A nil parent is the
// common root case, not an error. Traversal stops at two hops no matter how
// deep the upline runs.
func (s *HierarchyService) Resolve(affiliateID int) (*models.Affiliate, *models.Affiliate, error) {
	var affiliate models.Affiliate
	if err := s.DB.First(&affiliate, affiliateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnknownAffiliate
		}
		return nil, nil, err
	}
	return s.ResolveUpline(s.DB, &affiliate)
}

// ResolveUpline walks parent_id twice on the given handle so the ledger can
// resolve inside its own transaction. A dangling parent_id is treated as no
// parent rather than failing the purchase.
func (s *HierarchyService) ResolveUpline(tx *gorm.DB, affiliate *models.Affiliate) (*models.Affiliate, *models.Affiliate, error) {
	if affiliate.ParentId == nil {
		return nil, nil, nil
	}

	var parent models.Affiliate
	if err := tx.First(&parent, *affiliate.ParentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	if parent.ParentId == nil {
		return &parent, nil, nil
	}

	var grandparent models.Affiliate
	if err := tx.First(&grandparent, *parent.ParentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &parent, nil, nil
		}
		return nil, nil, err
	}

	return &parent, &grandparent, nil
}

type HierarchyView struct {
	Affiliate     models.Affiliate   `json:"affiliate"`
	Parent        *models.Affiliate  `json:"parent"`
	Grandparent   *models.Affiliate  `json:"grandparent"`
	Children      []models.Affiliate `json:"children"`
	Grandchildren []models.Affiliate `json:"grandchildren"`
}

// GetHierarchy returns the two generations above and below an affiliate.
func (s *HierarchyService) GetHierarchy(affiliateID int) (HierarchyView, error) {
	var view HierarchyView

	var affiliate models.Affiliate
	if err := s.DB.First(&affiliate, affiliateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, ErrUnknownAffiliate
		}
		return view, err
	}
	view.Affiliate = affiliate

	parent, grandparent, err := s.ResolveUpline(s.DB, &affiliate)
	if err != nil {
		return view, err
	}
	view.Parent = parent
	view.Grandparent = grandparent

	if err := s.DB.Where("parent_id = ?", affiliateID).Find(&view.Children).Error; err != nil {
		return view, err
	}

	if len(view.Children) > 0 {
		childIDs := make([]int, len(view.Children))
		for i, c := range view.Children {
			childIDs[i] = c.ID
		}
		if err := s.DB.Where("parent_id IN ?", childIDs).Find(&view.Grandchildren).Error; err != nil {
			return view, err
		}
	}

	return view, nil
}

package handlers

import (
	"net/http"
	"strconv"

	"affiliate-service/internal/models"
	"affiliate-service/internal/services"
	"affiliate-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type CreateAffiliateRequest struct {
	UserId       int    `json:"user_id" binding:"required"`
	PackageTier  string `json:"package_tier" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

func (h *Handler) CreateAffiliate(c *gin.Context) {
	var req CreateAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	tier := models.Tier(req.PackageTier)
	if !tier.Valid() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid package tier", nil, http.StatusBadRequest))
		return
	}

	affiliate, err := h.Referral.CreateAffiliate(req.UserId, tier)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	referral, err := h.Referral.RegisterReferral(affiliate.ID, req.ReferralCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{
		"affiliate": affiliate,
		"referral":  referral,
	}, "Affiliate created"))
}

func affiliateIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid affiliate id", nil, http.StatusBadRequest))
		return 0, false
	}
	return id, true
}

func (h *Handler) GetHierarchy(c *gin.Context) {
	id, ok := affiliateIDParam(c)
	if !ok {
		return
	}

	view, err := h.Hierarchy.GetHierarchy(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(view, "Hierarchy fetched"))
}

func (h *Handler) GetStats(c *gin.Context) {
	id, ok := affiliateIDParam(c)
	if !ok {
		return
	}

	stats, err := h.Stats.GetCommissionStats(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(stats, "Stats fetched"))
}

func (h *Handler) ListCommissions(c *gin.Context) {
	id, ok := affiliateIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	level, _ := strconv.Atoi(c.Query("level"))

	result, err := h.Stats.ListCommissions(services.ListCommissionsDTO{
		AffiliateId: id,
		Level:       level,
		Status:      c.Query("status"),
		From:        c.Query("from"),
		To:          c.Query("to"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"net/http"

	"affiliate-service/internal/models"
	"affiliate-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// ProcessPurchaseRequest is the verified purchase event handed over by the
// payment collaborator after gateway signature verification. The engine
// trusts it completely.
type ProcessPurchaseRequest struct {
	TransactionId string  `json:"transaction_id" binding:"required"`
	UserId        int     `json:"user_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PackageTier   string  `json:"package_tier" binding:"required"`
	ReferralCode  string  `json:"referral_code"`
}

func (h *Handler) ProcessPurchase(c *gin.Context) {
	var req ProcessPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	tier := models.Tier(req.PackageTier)
	if !tier.Valid() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid package tier", nil, http.StatusBadRequest))
		return
	}

	// First purchase creates the affiliate and links the referral edge;
	// replays of the same event find both already in place.
	affiliate, err := h.Referral.CreateAffiliate(req.UserId, tier)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if _, err := h.Referral.RegisterReferral(affiliate.ID, req.ReferralCode); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.Helper.RecordPurchase(h.Helper.DB, req.TransactionId, req.UserId, affiliate.ID, req.Amount, tier); err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := h.Ledger.ProcessPurchase(req.TransactionId, affiliate.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Purchase processed"))
}

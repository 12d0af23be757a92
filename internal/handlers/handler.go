package handlers

import (
	"errors"
	"net/http"

	"affiliate-service/internal/services"
	"affiliate-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Referral   *services.ReferralService
	Ledger     *services.LedgerService
	Hierarchy  *services.HierarchyService
	Stats      *services.StatsService
	Withdrawal *services.WithdrawalService
	Helper     *services.HelperService
}

func New(
	referral *services.ReferralService,
	ledger *services.LedgerService,
	hierarchy *services.HierarchyService,
	stats *services.StatsService,
	withdrawal *services.WithdrawalService,
	helper *services.HelperService,
) *Handler {
	return &Handler{
		Referral:   referral,
		Ledger:     ledger,
		Hierarchy:  hierarchy,
		Stats:      stats,
		Withdrawal: withdrawal,
		Helper:     helper,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/affiliates", h.CreateAffiliate)
	r.GET("/affiliates/:id/hierarchy", h.GetHierarchy)
	r.GET("/affiliates/:id/stats", h.GetStats)
	r.GET("/affiliates/:id/commissions", h.ListCommissions)
	r.GET("/affiliates/:id/withdrawals", h.FetchAffiliateWithdrawals)

	r.POST("/purchases/process", h.ProcessPurchase)

	r.POST("/withdrawals", h.RequestWithdrawal)
	r.GET("/withdrawals", h.ListWithdrawals)
	r.PUT("/withdrawals/:id/status", h.UpdateWithdrawalStatus)
}

func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnknownAffiliate),
		errors.Is(err, services.ErrUnknownWithdrawal):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidReferralCode),
		errors.Is(err, services.ErrInsufficientBalance):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyProcessed):
		status = http.StatusConflict
	case errors.Is(err, services.ErrConcurrencyConflict):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
}

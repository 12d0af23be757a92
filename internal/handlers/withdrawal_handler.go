package handlers

import (
	"net/http"
	"strconv"

	"affiliate-service/internal/services"
	"affiliate-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type RequestWithdrawalRequest struct {
	UserId int     `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

func (h *Handler) RequestWithdrawal(c *gin.Context) {
	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	withdrawal, err := h.Withdrawal.RequestWithdrawal(services.WithdrawRequestDTO{
		UserId: req.UserId,
		Amount: req.Amount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(withdrawal, "Withdrawal requested"))
}

type UpdateWithdrawalStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	UpdatedBy string `json:"updated_by"`
}

func (h *Handler) UpdateWithdrawalStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid withdrawal id", nil, http.StatusBadRequest))
		return
	}

	var req UpdateWithdrawalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	affiliate, err := h.Withdrawal.ApplyWithdrawal(id, req.Status, req.UpdatedBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(affiliate, "Withdrawal updated"))
}

func (h *Handler) ListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	userId, _ := strconv.Atoi(c.Query("user_id"))

	result, err := h.Withdrawal.ListWithdrawals(services.ListWithdrawalsDTO{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Status: c.Query("status"),
		UserId: userId,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) FetchAffiliateWithdrawals(c *gin.Context) {
	id, ok := affiliateIDParam(c)
	if !ok {
		return
	}

	pendingOnly := c.Query("pending") == "true"
	withdrawals, err := h.Withdrawal.FetchAffiliateWithdrawals(id, pendingOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(withdrawals, "Withdrawals fetched"))
}

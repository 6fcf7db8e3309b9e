package handler

import (
	"net/http"

	"fishtable/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetBalance
// @Summary Get user balance
// @Description Returns the current balance for a user. Visible to the user, their agent and admins.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.BalanceResponse
// @Failure 403 {object} model.ErrorResponse "Forbidden"
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /users/{id}/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleError(c, model.ErrUserNotFound)
		return
	}

	resp, err := h.walletService.GetBalance(c.Request.Context(), p, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reconcile
// @Summary Reconcile a wallet
// @Description Replays the wallet's ledger entries and compares the result with the stored balance.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.Reconciliation
// @Failure 403 {object} model.ErrorResponse "Forbidden"
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /users/{id}/reconcile [get]
func (h *Handler) Reconcile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleError(c, model.ErrUserNotFound)
		return
	}

	rec, err := h.walletService.Reconcile(c.Request.Context(), p, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// FundUser
// @Summary Fund a managed user
// @Description Moves credit from the agent's quota into a user's wallet. A repeated transfer_id is rejected.
// @Tags agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Param request body model.FundRequest true "Transfer"
// @Success 200 {object} model.FundResponse
// @Failure 400 {object} model.ErrorResponse "Quota exceeded"
// @Failure 403 {object} model.ErrorResponse "Forbidden"
// @Failure 409 {object} model.ErrorResponse "Duplicate transfer"
// @Router /agents/{id}/fund [post]
func (h *Handler) FundUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	agentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if agentID != p.UserID {
		h.handleError(c, model.ErrForbidden)
		return
	}

	var req model.FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.handleError(c, model.ErrInvalidAmount)
		return
	}
	// Both ids passed the uuid binding tag.
	userID := uuid.MustParse(req.UserID)
	transferID := uuid.MustParse(req.TransferID)

	resp, err := h.walletService.Fund(c.Request.Context(), p, userID, amount, transferID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetAgentQuota
// @Summary Set an agent's quota
// @Description Replaces the remaining funding allowance of an agent, creating it if the agent has none. Admins only.
// @Tags agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Param request body model.SetQuotaRequest true "New quota"
// @Success 200 {object} model.QuotaResponse
// @Failure 400 {object} model.ErrorResponse "Invalid amount"
// @Failure 403 {object} model.ErrorResponse "Forbidden"
// @Failure 404 {object} model.ErrorResponse "Agent not found"
// @Router /agents/{id}/quota [put]
func (h *Handler) SetAgentQuota(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	agentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	remaining, err := decimal.NewFromString(req.Remaining)
	if err != nil {
		h.handleError(c, model.ErrInvalidAmount)
		return
	}

	resp, err := h.walletService.SetQuota(c.Request.Context(), p, agentID, remaining)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTables
// @Summary List tables
// @Description Seat occupancy and live fish count per table.
// @Tags tables
// @Produce json
// @Success 200 {object} model.TableListResponse
// @Router /tables [get]
func (h *Handler) ListTables(c *gin.Context) {
	tables := h.gameService.Tables()
	c.JSON(http.StatusOK, model.TableListResponse{Tables: tables, Total: len(tables)})
}

package handler

import (
	"net/http"

	"fishtable/internal/auth"
	"fishtable/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func principal(c *gin.Context) (model.Principal, bool) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "missing principal", Code: "UNAUTHORIZED"})
	}
	return p, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateCreditRequest
// @Summary Create a credit request
// @Description Opens a pending deposit or withdrawal for the caller. Only one pending request per kind is allowed.
// @Tags credit-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateCreditRequest true "Kind and amount"
// @Success 201 {object} model.CreditRequestResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 409 {object} model.ErrorResponse "Pending request exists"
// @Router /credit-requests [post]
func (h *Handler) CreateCreditRequest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	kind, err := model.ParseCreditKind(req.Kind)
	if err != nil {
		h.handleError(c, err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.handleError(c, model.ErrInvalidAmount)
		return
	}

	created, err := h.creditService.Create(c.Request.Context(), p, kind, amount)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewCreditRequestResponse(created))
}

// GetCreditRequest
// @Summary Get a credit request
// @Tags credit-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} model.CreditRequestResponse
// @Failure 403 {object} model.ErrorResponse "Forbidden"
// @Failure 404 {object} model.ErrorResponse "Not found"
// @Router /credit-requests/{id} [get]
func (h *Handler) GetCreditRequest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	req, err := h.creditService.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCreditRequestResponse(req))
}

// ApproveCreditRequest
// @Summary Approve a credit request
// @Description Applies the deposit or withdrawal and marks the request approved in one transaction. Agent deposits draw on the agent quota.
// @Tags credit-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} model.CreditRequestResponse
// @Failure 400 {object} model.ErrorResponse "Insufficient funds or quota"
// @Failure 403 {object} model.ErrorResponse "Forbidden"
// @Failure 409 {object} model.ErrorResponse "Already resolved"
// @Router /credit-requests/{id}/approve [post]
func (h *Handler) ApproveCreditRequest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	req, balance, err := h.creditService.Approve(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	resp := model.NewCreditRequestResponse(req)
	resp.Balance = balance.StringFixed(2)
	c.JSON(http.StatusOK, resp)
}

// RejectCreditRequest
// @Summary Reject a credit request
// @Tags credit-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} model.CreditRequestResponse
// @Failure 403 {object} model.ErrorResponse "Forbidden"
// @Failure 409 {object} model.ErrorResponse "Already resolved"
// @Router /credit-requests/{id}/reject [post]
func (h *Handler) RejectCreditRequest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	req, err := h.creditService.Reject(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCreditRequestResponse(req))
}

package model

type ErrorResponse struct {
	Error   string `json:"error" example:"insufficient funds"`
	Code    string `json:"code,omitempty" example:"INSUFFICIENT_FUNDS"`
	Details string `json:"details,omitempty"`
}

type BalanceResponse struct {
	UserID   string `json:"user_id" example:"8d3a2d4e-5b1f-4e0f-9a57-3f3c1d0f2b11"`
	WalletID string `json:"wallet_id" example:"0b7d6f0e-7a54-4c0e-8f0e-6d1c2a9b3e44"`
	Balance  string `json:"balance" example:"100.00"`
}

type CreateCreditRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=deposit withdrawal" example:"deposit" enums:"deposit,withdrawal"`
	Amount string `json:"amount" binding:"required" example:"50.00"`
}

type CreditRequestResponse struct {
	ID         string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID    string `json:"owner_id"`
	Kind       string `json:"kind" example:"deposit"`
	Amount     string `json:"amount" example:"50.00"`
	Status     string `json:"status" example:"pending"`
	ApproverID string `json:"approver_id,omitempty"`
	Balance    string `json:"balance,omitempty" example:"150.00"`
}

type FundRequest struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	Amount     string `json:"amount" binding:"required" example:"25.00"`
	TransferID string `json:"transfer_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type FundResponse struct {
	UserID         string `json:"user_id"`
	Balance        string `json:"balance" example:"125.00"`
	QuotaRemaining string `json:"quota_remaining" example:"975.00"`
}

type SetQuotaRequest struct {
	Remaining string `json:"remaining" binding:"required" example:"5000.00"`
}

type QuotaResponse struct {
	AgentID   string `json:"agent_id"`
	Remaining string `json:"remaining" example:"5000.00"`
	Version   int    `json:"version" example:"3"`
}

type TableListResponse struct {
	Tables []TableSummary `json:"tables"`
	Total  int            `json:"total"`
}

func NewCreditRequestResponse(req *CreditRequest) CreditRequestResponse {
	resp := CreditRequestResponse{
		ID:      req.ID.String(),
		OwnerID: req.OwnerID.String(),
		Kind:    req.Kind.String(),
		Amount:  req.Amount.StringFixed(2),
		Status:  string(req.Status),
	}
	if req.ApproverID != nil {
		resp.ApproverID = req.ApproverID.String()
	}
	return resp
}

package handler

import (
	"errors"
	"net/http"

	"fishtable/internal/auth"
	"fishtable/internal/model"
	"fishtable/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	gameService   service.GameService
	creditService service.CreditService
	walletService service.WalletService
	verifier      *auth.Verifier
	socket        *GameSocket
	logger        zerolog.Logger
}

func NewHandler(
	gameService service.GameService,
	creditService service.CreditService,
	walletService service.WalletService,
	verifier *auth.Verifier,
	socket *GameSocket,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		gameService:   gameService,
		creditService: creditService,
		walletService: walletService,
		verifier:      verifier,
		socket:        socket,
		logger:        logger,
	}
}

func (h *Handler) SetupRoutes() *gin.Engine {
	router := gin.New()

	// Middlewares
	router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(h.logger),
		gin.Recovery(),
	)

	// Swagger and health checks
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Game socket, authenticated by its first message
	if h.socket != nil {
		router.GET("/ws", h.socket.Serve)
	}

	// API routes
	v1 := router.Group("/api/v1")
	v1.GET("/tables", h.ListTables)

	authed := v1.Group("", auth.Middleware(h.verifier, h.logger))

	credits := authed.Group("/credit-requests")
	credits.POST("", h.CreateCreditRequest)
	credits.GET("/:id", h.GetCreditRequest)
	credits.POST("/:id/approve", auth.RequireRole(model.RoleAdmin, model.RoleAgent), h.ApproveCreditRequest)
	credits.POST("/:id/reject", auth.RequireRole(model.RoleAdmin, model.RoleAgent), h.RejectCreditRequest)

	users := authed.Group("/users")
	users.GET("/:id/balance", h.GetBalance)
	users.GET("/:id/reconcile", h.Reconcile)

	agents := authed.Group("/agents")
	agents.POST("/:id/fund", auth.RequireRole(model.RoleAgent), h.FundUser)
	agents.PUT("/:id/quota", auth.RequireRole(model.RoleAdmin), h.SetAgentQuota)

	return router
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first match wins.
var errorMappings = []errorMapping{
	{model.ErrInsufficientFunds, http.StatusBadRequest, "INSUFFICIENT_FUNDS"},
	{model.ErrQuotaExceeded, http.StatusBadRequest, "QUOTA_EXCEEDED"},
	{model.ErrTableFull, http.StatusConflict, "TABLE_FULL"},
	{model.ErrFishNotFound, http.StatusNotFound, "FISH_NOT_FOUND"},
	{model.ErrDuplicateStake, http.StatusConflict, "DUPLICATE_STAKE"},
	{model.ErrDuplicateEntry, http.StatusConflict, "DUPLICATE_ENTRY"},
	{model.ErrRequestAlreadyResolved, http.StatusConflict, "REQUEST_ALREADY_RESOLVED"},
	{model.ErrPendingRequestExists, http.StatusConflict, "PENDING_REQUEST_EXISTS"},
	{model.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{model.ErrAmountTooLarge, http.StatusBadRequest, "AMOUNT_TOO_LARGE"},
	{model.ErrInvalidBet, http.StatusBadRequest, "INVALID_BET"},
	{model.ErrInvalidBullet, http.StatusBadRequest, "INVALID_BULLET"},
	{model.ErrInvalidKind, http.StatusBadRequest, "INVALID_KIND"},
	{model.ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{model.ErrInvalidState, http.StatusConflict, "INVALID_STATE"},
	{model.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{model.ErrWalletNotFound, http.StatusNotFound, "WALLET_NOT_FOUND"},
	{model.ErrAgentNotFound, http.StatusNotFound, "AGENT_NOT_FOUND"},
	{model.ErrRequestNotFound, http.StatusNotFound, "REQUEST_NOT_FOUND"},
	{model.ErrStakeNotFound, http.StatusNotFound, "STAKE_NOT_FOUND"},
	{model.ErrTableNotFound, http.StatusNotFound, "TABLE_NOT_FOUND"},
	{model.ErrNotSeated, http.StatusConflict, "NOT_SEATED"},
	{model.ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
	{model.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{model.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{model.ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
	{model.ErrPersistence, http.StatusServiceUnavailable, "PERSISTENCE_FAILURE"},
}

// classify returns the HTTP status and machine code for err. Unknown errors
// are internal.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status, code := classify(err)
	resp := model.ErrorResponse{Error: err.Error(), Code: code}

	switch status {
	case http.StatusInternalServerError:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("internal server error")
		resp.Error = "internal server error"
	case http.StatusServiceUnavailable:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("persistence failure")
		resp.Details = "the operation was not applied"
	}

	c.JSON(status, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg, Code: "INVALID_REQUEST"})
}

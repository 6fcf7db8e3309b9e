package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"fishtable/internal/auth"
	"fishtable/internal/config"
	"fishtable/internal/database"
	"fishtable/internal/events"
	"fishtable/internal/game"
	"fishtable/internal/handler"
	"fishtable/internal/jackpot"
	"fishtable/internal/ledger"
	"fishtable/internal/model"
	"fishtable/internal/repository/postgres"
	"fishtable/internal/service"
	"fishtable/internal/table"
	"fishtable/migrations"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

const testSecret = "e2e-secret"

// Runs as first function
func TestMain(m *testing.M) {
	if os.Getenv("SKIP_E2E") != "" {
		fmt.Println("Skipping E2E tests")
		os.Exit(0)
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		fmt.Printf("failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, migrations.FS, zerolog.Nop()); err != nil {
		fmt.Printf("failed to migrate: %v\n", err)
		os.Exit(1)
	}

	testPool = pool
	os.Exit(m.Run())
}

type e2eUsers struct {
	admin, agent, player model.Principal
}

func seedUser(t *testing.T, role model.Role, agentID *uuid.UUID, balance string) model.Principal {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()

	_, err := testPool.Exec(ctx,
		`INSERT INTO users (id, username, role, agent_id) VALUES ($1, $2, $3, $4)`,
		id, fmt.Sprintf("%s-%s", role, id.String()[:8]), string(role), agentID)
	require.NoError(t, err)
	_, err = testPool.Exec(ctx,
		`INSERT INTO wallets (id, user_id, balance, opening_balance) VALUES ($1, $2, $3, $3)`,
		uuid.New(), id, balance)
	require.NoError(t, err)
	return model.Principal{UserID: id, Role: role}
}

func setupE2E(t *testing.T) (*gin.Engine, e2eUsers) {
	if testPool == nil {
		t.Skip("Database connection not available")
	}

	users := e2eUsers{
		admin: seedUser(t, model.RoleAdmin, nil, "0"),
		agent: seedUser(t, model.RoleAgent, nil, "0"),
	}
	users.player = seedUser(t, model.RolePlayer, &users.agent.UserID, "100.00")
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO agent_quotas (agent_id, remaining) VALUES ($1, 1000.00)`, users.agent.UserID)
	require.NoError(t, err)

	logger := zerolog.Nop()
	dbManager := postgres.NewTransactionManager(testPool)
	userRepo := postgres.NewUserRepository(testPool)
	walletRepo := postgres.NewWalletRepository(testPool)
	l := ledger.New(walletRepo, postgres.NewQuotaRepository(testPool), postgres.NewLedgerRepository(testPool),
		dbManager, decimal.NewFromInt(1_000_000), logger)

	catalog, err := game.NewCatalog(game.DefaultFishTypes(0.95))
	require.NoError(t, err)
	engine := game.NewEngine(catalog, game.NewRandom(1), game.EngineConfig{Tables: 1, PathsPerTable: 8}, logger)
	payer := jackpot.NewPayer(jackpot.NewEngine(jackpot.Config{}, game.NewRandom(3), nil, logger), l,
		postgres.NewJackpotRepository(testPool), logger)
	tables := table.NewManager(1, 4, logger)

	gameService := service.NewGameService(l, postgres.NewStakeRepository(testPool), engine, payer, tables,
		events.Nop{}, game.NewRandom(2), []decimal.Decimal{decimal.NewFromInt(10)}, logger)
	creditService := service.NewCreditService(l, userRepo, postgres.NewCreditRepository(testPool), dbManager,
		tables, events.Nop{}, logger)
	walletService := service.NewWalletService(l, userRepo, logger)

	h := handler.NewHandler(gameService, creditService, walletService, auth.NewVerifier(testSecret), nil, logger)
	return h.SetupRoutes(), users
}

func do(t *testing.T, router *gin.Engine, p model.Principal, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	token, err := auth.GenerateToken(testSecret, p, time.Hour)
	require.NoError(t, err)

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func walletBalance(t *testing.T, userID uuid.UUID) string {
	var balance string
	err := testPool.QueryRow(context.Background(),
		"SELECT balance FROM wallets WHERE user_id = $1", userID).Scan(&balance)
	require.NoError(t, err)
	return balance
}

func quotaRemaining(t *testing.T, agentID uuid.UUID) string {
	var remaining string
	err := testPool.QueryRow(context.Background(),
		"SELECT remaining FROM agent_quotas WHERE agent_id = $1", agentID).Scan(&remaining)
	require.NoError(t, err)
	return remaining
}

// runConcurrently starts every request at once behind a barrier and returns
// the status codes.
func runConcurrently(n int, fn func(i int) int) []int {
	barrier := make(chan struct{})
	codes := make([]int, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			<-barrier
			codes[i] = fn(i)
		}()
	}
	close(barrier)
	wg.Wait()
	return codes
}

// Test_ConcurrentFund_SameTransferID_AppliedOnce verifies that repeated
// transfers with one transfer_id move credit exactly once and never 500.
func Test_ConcurrentFund_SameTransferID_AppliedOnce(t *testing.T) {
	router, users := setupE2E(t)

	const numRequests = 25
	transferID := uuid.NewString()
	path := fmt.Sprintf("/api/v1/agents/%s/fund", users.agent.UserID)

	codes := runConcurrently(numRequests, func(int) int {
		return do(t, router, users.agent, http.MethodPost, path, model.FundRequest{
			UserID:     users.player.UserID.String(),
			Amount:     "10.00",
			TransferID: transferID,
		}).Code
	})

	var ok, duplicate int
	for _, code := range codes {
		assert.NotEqual(t, http.StatusInternalServerError, code)
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			duplicate++
		default:
			t.Logf("Unexpected status %d", code)
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, numRequests-1, duplicate)
	assert.Equal(t, "110.00", walletBalance(t, users.player.UserID))
	assert.Equal(t, "990.00", quotaRemaining(t, users.agent.UserID))
}

// Test_ConcurrentFund_MixedTransferIDs verifies 5 requests sharing one
// transfer_id plus 20 unique ones apply 21 transfers.
func Test_ConcurrentFund_MixedTransferIDs(t *testing.T) {
	router, users := setupE2E(t)

	shared := uuid.NewString()
	path := fmt.Sprintf("/api/v1/agents/%s/fund", users.agent.UserID)

	codes := runConcurrently(25, func(i int) int {
		transferID := shared
		if i >= 5 {
			transferID = uuid.NewString()
		}
		return do(t, router, users.agent, http.MethodPost, path, model.FundRequest{
			UserID:     users.player.UserID.String(),
			Amount:     "10.00",
			TransferID: transferID,
		}).Code
	})

	ok := 0
	for _, code := range codes {
		assert.NotEqual(t, http.StatusInternalServerError, code)
		if code == http.StatusOK {
			ok++
		}
	}
	assert.Equal(t, 21, ok)
	assert.Equal(t, "310.00", walletBalance(t, users.player.UserID))
	assert.Equal(t, "790.00", quotaRemaining(t, users.agent.UserID))
}

// Test_ConcurrentApprovals_AppliedOnce verifies a deposit approved by many
// callers at once is applied once and the ledger still reconciles.
func Test_ConcurrentApprovals_AppliedOnce(t *testing.T) {
	router, users := setupE2E(t)

	w := do(t, router, users.player, http.MethodPost, "/api/v1/credit-requests", model.CreateCreditRequest{
		Kind:   "deposit",
		Amount: "50.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.CreditRequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/v1/credit-requests/%s/approve", created.ID)
	codes := runConcurrently(10, func(i int) int {
		approver := users.admin
		if i%2 == 1 {
			approver = users.agent
		}
		return do(t, router, approver, http.MethodPost, path, nil).Code
	})

	ok := 0
	for _, code := range codes {
		assert.NotEqual(t, http.StatusInternalServerError, code)
		if code == http.StatusOK {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, "150.00", walletBalance(t, users.player.UserID))

	w = do(t, router, users.admin, http.MethodGet, fmt.Sprintf("/api/v1/users/%s/reconcile", users.player.UserID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rec model.Reconciliation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.True(t, rec.Consistent)
	assert.Equal(t, 1, rec.Entries)
}

// Test_SetAgentQuota_UpsertsAndUnblocksFunding covers both the insert and the
// update path of the quota upsert against postgres.
func Test_SetAgentQuota_UpsertsAndUnblocksFunding(t *testing.T) {
	router, users := setupE2E(t)

	fresh := seedUser(t, model.RoleAgent, nil, "0")
	managed := seedUser(t, model.RolePlayer, &fresh.UserID, "0")
	fundPath := fmt.Sprintf("/api/v1/agents/%s/fund", fresh.UserID)
	fund := func(amount string) int {
		return do(t, router, fresh, http.MethodPost, fundPath, model.FundRequest{
			UserID: managed.UserID.String(), Amount: amount, TransferID: uuid.NewString(),
		}).Code
	}

	assert.Equal(t, http.StatusNotFound, fund("5.00"), "no quota row yet")

	w := do(t, router, users.admin, http.MethodPut, fmt.Sprintf("/api/v1/agents/%s/quota", fresh.UserID),
		model.SetQuotaRequest{Remaining: "50.00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusOK, fund("50.00"))
	assert.Equal(t, http.StatusBadRequest, fund("0.01"))

	w = do(t, router, users.admin, http.MethodPut, fmt.Sprintf("/api/v1/agents/%s/quota", users.agent.UserID),
		model.SetQuotaRequest{Remaining: "2500.00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2500.00", quotaRemaining(t, users.agent.UserID))

	w = do(t, router, users.agent, http.MethodPut, fmt.Sprintf("/api/v1/agents/%s/quota", users.agent.UserID),
		model.SetQuotaRequest{Remaining: "9999.00"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "50.00", walletBalance(t, managed.UserID))
}

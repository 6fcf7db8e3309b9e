package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fishtable/internal/model"
	"fishtable/internal/session"
	"fishtable/internal/table"
	mocks "fishtable/mocks/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeDirectory map[string]*model.User

func (f fakeDirectory) GetByConnectionToken(_ context.Context, token string) (*model.User, error) {
	if u, ok := f[token]; ok {
		return u, nil
	}
	return nil, model.ErrUnauthorized
}

type wireEvent struct {
	Type    string          `json:"type"`
	TableID int             `json:"table_id"`
	Payload json.RawMessage `json:"payload"`
}

type socketFixture struct {
	url      string
	socket   *GameSocket
	game     *mocks.GameService
	tables   *table.Manager
	seating  *recordingSeating
	sessions *session.MemoryStore
	user     *model.User
}

func newSocketFixture(t *testing.T) *socketFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	user := &model.User{ID: uuid.New(), Username: "alice", Role: model.RolePlayer, WalletID: uuid.New()}
	f := &socketFixture{
		game:     mocks.NewGameService(t),
		tables:   table.NewManager(2, 2, zerolog.Nop()),
		sessions: session.NewMemoryStore(),
		user:     user,
	}
	f.seating = &recordingSeating{Manager: f.tables}
	f.socket = NewGameSocket(f.game, f.seating, fakeDirectory{"good-token": user}, f.sessions,
		session.NewMemoryAttempts(3, time.Minute), SocketConfig{PongTimeout: 5 * time.Second}, zerolog.Nop())

	router := gin.New()
	router.GET("/ws", f.socket.Serve)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	f.url = "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	return f
}

func (f *socketFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func read(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev wireEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func readError(t *testing.T, conn *websocket.Conn) model.ErrorEvent {
	t.Helper()
	ev := read(t, conn)
	require.Equal(t, model.EventError, ev.Type)
	var e model.ErrorEvent
	require.NoError(t, json.Unmarshal(ev.Payload, &e))
	return e
}

func (f *socketFixture) login(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	send(t, conn, ClientMessage{Type: MsgAuth, Token: "good-token"})
	ev := read(t, conn)
	require.Equal(t, model.EventLogin, ev.Type)
}

func (f *socketFixture) joinTable(t *testing.T, conn *websocket.Conn, tableID int) {
	t.Helper()
	f.game.On("TableInit", mock.Anything, f.user.Player(), tableID, mock.Anything).Return(&model.TableInit{
		TableID: tableID,
		Pool:    decimal.NewFromInt(3),
		Balance: decimal.NewFromInt(100),
	}, nil).Once()
	send(t, conn, ClientMessage{Type: MsgJoin, TableID: &tableID})
	require.Equal(t, model.EventInit, read(t, conn).Type)
	require.Equal(t, model.EventSeatChanged, read(t, conn).Type)
}

func TestSocket_RequiresLogin(t *testing.T) {
	f := newSocketFixture(t)
	conn := f.dial(t)

	send(t, conn, ClientMessage{Type: MsgJoin})
	assert.Equal(t, "UNAUTHORIZED", readError(t, conn).Code)

	send(t, conn, ClientMessage{Type: MsgShoot, BulletID: uuid.NewString(), Bet: "10"})
	assert.Equal(t, "NOT_SEATED", readError(t, conn).Code)

	send(t, conn, ClientMessage{Type: "dance"})
	assert.Equal(t, "INVALID_REQUEST", readError(t, conn).Code)
}

func TestSocket_LoginJoinAndShoot(t *testing.T) {
	f := newSocketFixture(t)
	conn := f.dial(t)

	f.login(t, conn)
	f.joinTable(t, conn, 1)

	_, seat, ok := f.tables.PlayerAt(f.connID(t))
	require.True(t, ok)
	assert.Equal(t, 1, seat.TableID)

	bullet := uuid.New()
	f.game.On("Shoot", mock.Anything, f.user.Player(), 1, bullet, mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.NewFromInt(10))
	})).Return(&model.ShootResult{StakeID: bullet, Accepted: true, Balance: decimal.NewFromInt(90)}, nil)

	send(t, conn, ClientMessage{Type: MsgShoot, BulletID: bullet.String(), Bet: "10"})
	ev := read(t, conn)
	require.Equal(t, model.EventShootResult, ev.Type)
	var res model.ShootResult
	require.NoError(t, json.Unmarshal(ev.Payload, &res))
	assert.True(t, res.Accepted)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(90)))

	f.game.On("Hit", mock.Anything, f.user.Player(), 1, bullet, int64(7)).Return(&model.HitOutcome{
		StakeID: bullet, FishID: 7, Killed: true, Reward: decimal.NewFromInt(50), Balance: decimal.NewFromInt(140),
	}, nil)

	send(t, conn, ClientMessage{Type: MsgHit, BulletID: bullet.String(), FishID: 7})
	ev = read(t, conn)
	require.Equal(t, model.EventHitResult, ev.Type)
	var out model.HitOutcome
	require.NoError(t, json.Unmarshal(ev.Payload, &out))
	assert.True(t, out.Killed)
}

func TestSocket_RejectedShotCarriesBalance(t *testing.T) {
	f := newSocketFixture(t)
	conn := f.dial(t)
	f.login(t, conn)
	f.joinTable(t, conn, 0)

	bullet := uuid.New()
	f.game.On("ResolveShot", mock.Anything, f.user.Player(), 0, bullet, mock.Anything, int64(3)).
		Return(&model.HitOutcome{StakeID: bullet, Balance: decimal.NewFromInt(10)}, model.ErrInsufficientFunds)

	send(t, conn, ClientMessage{Type: MsgFire, BulletID: bullet.String(), Bet: "20", FishID: 3})

	e := readError(t, conn)
	assert.Equal(t, "INSUFFICIENT_FUNDS", e.Code)
	assert.Equal(t, "10.00", e.Balance)

	// The connection stays usable after a validation error.
	send(t, conn, ClientMessage{Type: MsgShoot, BulletID: "nope", Bet: "20"})
	assert.Equal(t, "INVALID_BULLET", readError(t, conn).Code)
}

func TestSocket_BlocksAfterRepeatedBadTokens(t *testing.T) {
	f := newSocketFixture(t)
	conn := f.dial(t)

	for i := 0; i < 2; i++ {
		send(t, conn, ClientMessage{Type: MsgAuth, Token: "wrong"})
		assert.Equal(t, "UNAUTHORIZED", readError(t, conn).Code)
	}
	send(t, conn, ClientMessage{Type: MsgAuth, Token: "wrong"})
	assert.Equal(t, "TOO_MANY_ATTEMPTS", readError(t, conn).Code)

	send(t, conn, ClientMessage{Type: MsgAuth, Token: "good-token"})
	assert.Equal(t, "TOO_MANY_ATTEMPTS", readError(t, conn).Code)
}

func TestSocket_LeaveAndDisconnectFreeSeat(t *testing.T) {
	f := newSocketFixture(t)
	conn := f.dial(t)
	f.login(t, conn)
	f.joinTable(t, conn, 0)
	connID := f.connID(t)

	send(t, conn, ClientMessage{Type: MsgLeave})
	assert.Eventually(t, func() bool {
		_, _, seated := f.tables.PlayerAt(connID)
		sess, err := f.sessions.Get(context.Background(), connID)
		return !seated && err == nil && sess.State == model.RoomLoginSuccess && sess.TableID == -1
	}, 2*time.Second, 10*time.Millisecond)

	send(t, conn, ClientMessage{Type: MsgLeave})
	assert.Equal(t, "NOT_SEATED", readError(t, conn).Code)

	f.joinTable(t, conn, 1)
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		_, err := f.sessions.Get(context.Background(), connID)
		return err != nil && f.tables.Occupied(1) == 0
	}, 2*time.Second, 20*time.Millisecond)
}

// recordingSeating remembers the last connection that took a seat.
type recordingSeating struct {
	*table.Manager
	mu   sync.Mutex
	last string
}

func (r *recordingSeating) Join(tableID int, player model.Player, conn table.Conn) (table.Seat, error) {
	r.mu.Lock()
	r.last = conn.ID()
	r.mu.Unlock()
	return r.Manager.Join(tableID, player, conn)
}

func (f *socketFixture) connID(t *testing.T) string {
	t.Helper()
	f.seating.mu.Lock()
	defer f.seating.mu.Unlock()
	require.NotEmpty(t, f.seating.last)
	return f.seating.last
}

func TestSocket_CloseAllStopsClientsAndRefusesNew(t *testing.T) {
	f := newSocketFixture(t)
	conn := f.dial(t)
	f.login(t, conn)
	f.joinTable(t, conn, 0)
	idle := f.dial(t)

	require.Eventually(t, func() bool { return f.socket.Connections() == 2 }, 2*time.Second, 10*time.Millisecond)

	f.socket.CloseAll()

	for _, c := range []*websocket.Conn{conn, idle} {
		assert.True(t, websocket.IsCloseError(readUntilClosed(t, c), websocket.CloseGoingAway))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.socket.Wait(ctx))
	assert.Zero(t, f.socket.Connections())

	assert.Equal(t, 0, f.tables.Occupied(0), "seat released on shutdown")

	late := f.dial(t)
	assert.True(t, websocket.IsCloseError(readUntilClosed(t, late), websocket.CloseGoingAway))
	assert.Zero(t, f.socket.Connections())
}

// readUntilClosed drains frames until the connection reports an error.
func readUntilClosed(t *testing.T, conn *websocket.Conn) error {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return err
		}
	}
}

func TestSocket_WaitHonorsDeadline(t *testing.T) {
	f := newSocketFixture(t)
	f.dial(t)
	require.Eventually(t, func() bool { return f.socket.Connections() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, f.socket.Wait(ctx), context.Canceled)
}

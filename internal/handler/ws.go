package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"fishtable/internal/model"
	"fishtable/internal/service"
	"fishtable/internal/session"
	"fishtable/internal/table"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Client message types.
const (
	MsgAuth  = "auth"
	MsgJoin  = "join"
	MsgLeave = "leave"
	MsgShoot = "shoot"
	MsgHit   = "hit"
	MsgFire  = "fire"
)

// ClientMessage is one inbound frame. Fields that a type does not use are ignored.
type ClientMessage struct {
	Type     string `json:"type"`
	Token    string `json:"token,omitempty"`
	TableID  *int   `json:"table_id,omitempty"`
	BulletID string `json:"bullet_id,omitempty"`
	Bet      string `json:"bet,omitempty"`
	FishID   int64  `json:"fish_id,omitempty"`
}

// Directory resolves the user behind a connection token.
type Directory interface {
	GetByConnectionToken(ctx context.Context, token string) (*model.User, error)
}

// Seating is the table side a socket needs.
type Seating interface {
	Join(tableID int, player model.Player, conn table.Conn) (table.Seat, error)
	Leave(connID string) (table.Seat, bool)
	PlayerAt(connID string) (model.Player, table.Seat, bool)
	Broadcast(tableID int, event model.Event) int
}

type SocketConfig struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
	// AllowedOrigins empty accepts any origin.
	AllowedOrigins []string
}

func (c SocketConfig) withDefaults() SocketConfig {
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.PongTimeout <= 0 {
		c.PongTimeout = 60 * time.Second
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongTimeout {
		c.PingInterval = c.PongTimeout * 9 / 10
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 4096
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 256
	}
	return c
}

// GameSocket speaks the real-time game protocol over websocket.
type GameSocket struct {
	upgrader  websocket.Upgrader
	game      service.GameService
	seating   Seating
	directory Directory
	sessions  session.Store
	attempts  session.AttemptTracker
	cfg       SocketConfig
	logger    zerolog.Logger

	mu      sync.Mutex
	clients map[string]*client
	closing bool
	active  sync.WaitGroup
}

func NewGameSocket(
	game service.GameService,
	seating Seating,
	directory Directory,
	sessions session.Store,
	attempts session.AttemptTracker,
	cfg SocketConfig,
	logger zerolog.Logger,
) *GameSocket {
	cfg = cfg.withDefaults()
	return &GameSocket{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return len(cfg.AllowedOrigins) == 0 || lo.Contains(cfg.AllowedOrigins, r.Header.Get("Origin"))
			},
		},
		game:      game,
		seating:   seating,
		directory: directory,
		sessions:  sessions,
		attempts:  attempts,
		cfg:       cfg,
		logger:    logger,
		clients:   make(map[string]*client),
	}
}

// register tracks a connection. It fails once CloseAll has run.
func (s *GameSocket) register(cl *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.clients[cl.id] = cl
	s.active.Add(1)
	return true
}

func (s *GameSocket) unregister(cl *client) {
	s.mu.Lock()
	delete(s.clients, cl.id)
	s.mu.Unlock()
	s.active.Done()
}

// CloseAll stops accepting connections and tells every connected client the
// server is going away. It is meant for http.Server.RegisterOnShutdown, as
// Shutdown does not track hijacked connections.
func (s *GameSocket) CloseAll() {
	s.mu.Lock()
	s.closing = true
	clients := lo.Values(s.clients)
	s.mu.Unlock()

	for _, cl := range clients {
		cl.stopWith(websocket.CloseGoingAway)
	}
	s.logger.Info().Int("connections", len(clients)).Msg("closing game connections")
}

// Wait blocks until every connection has finished its cleanup or ctx ends.
func (s *GameSocket) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.active.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *GameSocket) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// client is one websocket connection. It implements table.Conn.
type client struct {
	id       string
	remote   string
	ws       *websocket.Conn
	send     chan model.Event
	done     chan struct{}
	stopOnce sync.Once
	sess     *session.Session
	player   model.Player

	// closeCode is set once, before done is closed.
	closeCode int
}

func (c *client) ID() string {
	return c.id
}

// Send queues an event for the write pump. It never blocks.
func (c *client) Send(ev model.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

func (c *client) stop() {
	c.stopWith(websocket.CloseNormalClosure)
}

func (c *client) stopWith(code int) {
	c.stopOnce.Do(func() {
		c.closeCode = code
		close(c.done)
	})
}

// Serve upgrades the request and runs the connection until it closes.
func (s *GameSocket) Serve(c *gin.Context) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("ip", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	cl := &client{
		id:     uuid.New().String(),
		remote: c.ClientIP(),
		ws:     ws,
		send:   make(chan model.Event, s.cfg.SendBuffer),
		done:   make(chan struct{}),
	}
	if !s.register(cl) {
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(s.cfg.WriteTimeout))
		_ = ws.Close()
		return
	}
	defer s.unregister(cl)

	cl.sess = session.New(cl.id)
	ctx := context.WithoutCancel(c.Request.Context())
	if err := s.sessions.Put(ctx, cl.sess); err != nil {
		s.logger.Error().Err(err).Str("conn_id", cl.id).Msg("session store unavailable")
		_ = ws.Close()
		return
	}

	log := s.logger.With().Str("conn_id", cl.id).Logger()
	log.Debug().Str("ip", cl.remote).Msg("connection opened")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writePump(cl, log)
	}()

	s.readPump(ctx, cl, log)

	s.disconnect(ctx, cl, log)
	cl.stop()
	wg.Wait()
	_ = ws.Close()
	log.Debug().Msg("connection closed")
}

func (s *GameSocket) readPump(ctx context.Context, cl *client, log zerolog.Logger) {
	cl.ws.SetReadLimit(s.cfg.MaxMessageSize)
	_ = cl.ws.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	cl.ws.SetPongHandler(func(string) error {
		return cl.ws.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	})

	for {
		var msg ClientMessage
		if err := cl.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("connection dropped")
			}
			return
		}
		select {
		case <-cl.done:
			return
		default:
		}
		s.dispatch(ctx, cl, msg, log)
	}
}

func (s *GameSocket) writePump(cl *client, log zerolog.Logger) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			_ = cl.ws.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			_ = cl.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(cl.closeCode, ""))
			// A peer that never answers the close frame must not hold the read pump.
			_ = cl.ws.UnderlyingConn().SetReadDeadline(time.Now().Add(s.cfg.WriteTimeout))
			return
		case ev := <-cl.send:
			_ = cl.ws.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := cl.ws.WriteJSON(ev); err != nil {
				log.Warn().Err(err).Str("event", ev.Type).Msg("write failed")
				cl.stop()
				_ = cl.ws.Close()
				return
			}
		case <-ticker.C:
			_ = cl.ws.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := cl.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				cl.stop()
				_ = cl.ws.Close()
				return
			}
		}
	}
}

func (s *GameSocket) dispatch(ctx context.Context, cl *client, msg ClientMessage, log zerolog.Logger) {
	var err error
	switch msg.Type {
	case MsgAuth:
		err = s.authenticate(ctx, cl, msg)
	case MsgJoin:
		err = s.join(ctx, cl, msg)
	case MsgLeave:
		err = s.leave(ctx, cl)
	case MsgShoot:
		err = s.shoot(ctx, cl, msg)
	case MsgHit:
		err = s.hit(ctx, cl, msg)
	case MsgFire:
		err = s.fire(ctx, cl, msg)
	default:
		cl.Send(model.NewEvent(model.EventError, cl.sess.TableID, model.ErrorEvent{Code: "INVALID_REQUEST", Message: "unknown message type " + msg.Type}))
		return
	}
	if err != nil {
		s.sendError(cl, err, log)
	}
}

func (s *GameSocket) sendError(cl *client, err error, log zerolog.Logger) {
	_, code := classify(err)
	ev := model.ErrorEvent{Code: code, Message: err.Error()}

	var balErr *balanceError
	if errors.As(err, &balErr) {
		ev.Balance = balErr.balance.StringFixed(2)
	}
	if !model.IsDomain(err) {
		log.Error().Err(err).Msg("socket operation failed")
		ev.Message = "internal error"
	}
	cl.Send(model.NewEvent(model.EventError, cl.sess.TableID, ev))
}

// balanceError carries the unchanged balance of a rejected shot.
type balanceError struct {
	err     error
	balance decimal.Decimal
}

func (e *balanceError) Error() string { return e.err.Error() }
func (e *balanceError) Unwrap() error { return e.err }

func (s *GameSocket) saveSession(ctx context.Context, cl *client) error {
	return s.sessions.Put(ctx, cl.sess)
}

func (s *GameSocket) authenticate(ctx context.Context, cl *client, msg ClientMessage) error {
	key := "ip:" + cl.remote
	blocked, err := s.attempts.Blocked(ctx, key)
	if err != nil {
		return err
	}
	if blocked {
		return model.ErrTooManyAttempts
	}
	if err := cl.sess.Transition(model.RoomSMSWait); err != nil {
		return err
	}

	user, err := s.directory.GetByConnectionToken(ctx, msg.Token)
	if err != nil {
		_ = cl.sess.Transition(model.RoomLoginFailure)
		if saveErr := s.saveSession(ctx, cl); saveErr != nil {
			return saveErr
		}
		if errors.Is(err, model.ErrUnauthorized) {
			if _, regErr := s.attempts.Register(ctx, key); regErr != nil {
				return regErr
			}
		}
		return err
	}

	if err := s.attempts.Reset(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("conn_id", cl.id).Msg("attempt counter not reset")
	}
	if err := cl.sess.Transition(model.RoomLoginSuccess); err != nil {
		return err
	}
	cl.sess.UserID = user.ID
	cl.sess.Role = user.Role
	cl.player = user.Player()
	if err := s.saveSession(ctx, cl); err != nil {
		return err
	}

	s.logger.Info().Str("conn_id", cl.id).Str("user_id", user.ID.String()).Msg("connection authenticated")
	cl.Send(model.NewEvent(model.EventLogin, -1, cl.player))
	return nil
}

func (s *GameSocket) loggedIn(cl *client) error {
	switch cl.sess.State {
	case model.RoomLoginSuccess, model.RoomInGame:
		return nil
	}
	return model.ErrUnauthorized
}

func (s *GameSocket) join(ctx context.Context, cl *client, msg ClientMessage) error {
	if err := s.loggedIn(cl); err != nil {
		return err
	}
	tableID := table.AnyTable
	if msg.TableID != nil {
		tableID = *msg.TableID
	}

	previous, wasSeated := s.seatOf(cl)
	seat, err := s.seating.Join(tableID, cl.player, cl)
	if err != nil {
		return err
	}
	if wasSeated && previous != seat {
		s.seating.Broadcast(previous.TableID, model.NewEvent(model.EventSeatChanged, previous.TableID,
			model.SeatChanged{SeatID: previous.SeatID, UserID: cl.player.UserID, Joined: false}))
	}

	if err := cl.sess.Transition(model.RoomInGame); err != nil {
		return err
	}
	cl.sess.TableID = seat.TableID
	if err := s.saveSession(ctx, cl); err != nil {
		return err
	}

	state, err := s.game.TableInit(ctx, cl.player, seat.TableID, seat.SeatID)
	if err != nil {
		return err
	}
	cl.Send(model.NewEvent(model.EventInit, seat.TableID, state))
	s.seating.Broadcast(seat.TableID, model.NewEvent(model.EventSeatChanged, seat.TableID,
		model.SeatChanged{SeatID: seat.SeatID, UserID: cl.player.UserID, Joined: true}))
	return nil
}

func (s *GameSocket) seatOf(cl *client) (table.Seat, bool) {
	_, seat, ok := s.seating.PlayerAt(cl.id)
	return seat, ok
}

func (s *GameSocket) leave(ctx context.Context, cl *client) error {
	seat, ok := s.seating.Leave(cl.id)
	if !ok {
		return model.ErrNotSeated
	}
	s.seating.Broadcast(seat.TableID, model.NewEvent(model.EventSeatChanged, seat.TableID,
		model.SeatChanged{SeatID: seat.SeatID, UserID: cl.player.UserID, Joined: false}))

	if err := cl.sess.Transition(model.RoomLoginSuccess); err != nil {
		return err
	}
	cl.sess.TableID = -1
	return s.saveSession(ctx, cl)
}

// seated returns the player and table of a connection that holds a seat.
func (s *GameSocket) seated(cl *client) (model.Player, int, error) {
	player, seat, ok := s.seating.PlayerAt(cl.id)
	if !ok {
		return model.Player{}, 0, model.ErrNotSeated
	}
	return player, seat.TableID, nil
}

func parseShot(msg ClientMessage, needBet bool) (uuid.UUID, decimal.Decimal, error) {
	bulletID, err := uuid.Parse(msg.BulletID)
	if err != nil {
		return uuid.Nil, decimal.Zero, model.ErrInvalidBullet
	}
	if !needBet {
		return bulletID, decimal.Zero, nil
	}
	bet, err := decimal.NewFromString(msg.Bet)
	if err != nil {
		return uuid.Nil, decimal.Zero, model.ErrInvalidBet
	}
	return bulletID, bet, nil
}

func (s *GameSocket) shoot(ctx context.Context, cl *client, msg ClientMessage) error {
	player, tableID, err := s.seated(cl)
	if err != nil {
		return err
	}
	bulletID, bet, err := parseShot(msg, true)
	if err != nil {
		return err
	}

	res, err := s.game.Shoot(ctx, player, tableID, bulletID, bet)
	if err != nil {
		if res != nil {
			return &balanceError{err: err, balance: res.Balance}
		}
		return err
	}
	cl.Send(model.NewEvent(model.EventShootResult, tableID, res))
	return nil
}

func (s *GameSocket) hit(ctx context.Context, cl *client, msg ClientMessage) error {
	player, tableID, err := s.seated(cl)
	if err != nil {
		return err
	}
	bulletID, _, err := parseShot(msg, false)
	if err != nil {
		return err
	}

	out, err := s.game.Hit(ctx, player, tableID, bulletID, msg.FishID)
	if err != nil {
		return err
	}
	cl.Send(model.NewEvent(model.EventHitResult, tableID, out))
	return nil
}

func (s *GameSocket) fire(ctx context.Context, cl *client, msg ClientMessage) error {
	player, tableID, err := s.seated(cl)
	if err != nil {
		return err
	}
	bulletID, bet, err := parseShot(msg, true)
	if err != nil {
		return err
	}

	out, err := s.game.ResolveShot(ctx, player, tableID, bulletID, bet, msg.FishID)
	if err != nil {
		if out != nil {
			return &balanceError{err: err, balance: out.Balance}
		}
		return err
	}
	cl.Send(model.NewEvent(model.EventHitResult, tableID, out))
	return nil
}

func (s *GameSocket) disconnect(ctx context.Context, cl *client, log zerolog.Logger) {
	if seat, ok := s.seating.Leave(cl.id); ok {
		s.seating.Broadcast(seat.TableID, model.NewEvent(model.EventSeatChanged, seat.TableID,
			model.SeatChanged{SeatID: seat.SeatID, UserID: cl.player.UserID, Joined: false}))
	}
	if err := s.sessions.Delete(ctx, cl.id); err != nil {
		log.Warn().Err(err).Msg("session not deleted")
	}
}

// Package table seats connections at tables and fans events out to the
// connections seated at one table.
package table

import (
	"fmt"
	"sync"

	"fishtable/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// AnyTable asks Join to take the first free seat on any table.
const AnyTable = -1

// Conn is one client connection. Send must not block; it reports false when
// the event was dropped.
type Conn interface {
	ID() string
	Send(event model.Event) bool
}

type Seat struct {
	TableID int       `json:"table_id"`
	SeatID  int       `json:"seat_id"`
	UserID  uuid.UUID `json:"user_id"`
}

type occupant struct {
	conn   Conn
	player model.Player
}

type Manager struct {
	mu     sync.RWMutex
	seats  [][]*occupant
	byConn map[string]Seat
	logger zerolog.Logger
}

func NewManager(tables, seatsPerTable int, logger zerolog.Logger) *Manager {
	seats := make([][]*occupant, tables)
	for i := range seats {
		seats[i] = make([]*occupant, seatsPerTable)
	}
	return &Manager{
		seats:  seats,
		byConn: make(map[string]Seat),
		logger: logger,
	}
}

func (m *Manager) Tables() int {
	return len(m.seats)
}

// Join seats the connection on the first free seat of tableID, or of the first
// table with room when tableID is AnyTable. A connection already seated at the
// requested table keeps its seat; one seated elsewhere moves.
func (m *Manager) Join(tableID int, player model.Player, conn Conn) (Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tableID != AnyTable && (tableID < 0 || tableID >= len(m.seats)) {
		return Seat{}, fmt.Errorf("%w: %d", model.ErrTableNotFound, tableID)
	}

	if current, ok := m.byConn[conn.ID()]; ok {
		if tableID == AnyTable || current.TableID == tableID {
			return current, nil
		}
		m.releaseLocked(conn.ID(), current)
	}

	candidates := lo.Range(len(m.seats))
	if tableID != AnyTable {
		candidates = []int{tableID}
	}
	for _, t := range candidates {
		for s, occ := range m.seats[t] {
			if occ != nil {
				continue
			}
			m.seats[t][s] = &occupant{conn: conn, player: player}
			seat := Seat{TableID: t, SeatID: s, UserID: player.UserID}
			m.byConn[conn.ID()] = seat
			m.logger.Debug().
				Str("conn_id", conn.ID()).
				Str("user_id", player.UserID.String()).
				Int("table_id", t).
				Int("seat_id", s).
				Msg("seat taken")
			return seat, nil
		}
	}
	return Seat{}, model.ErrTableFull
}

// Leave frees the connection's seat. It is safe to call for a connection that
// is not seated.
func (m *Manager) Leave(connID string) (Seat, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seat, ok := m.byConn[connID]
	if !ok {
		return Seat{}, false
	}
	m.releaseLocked(connID, seat)
	return seat, true
}

func (m *Manager) releaseLocked(connID string, seat Seat) {
	m.seats[seat.TableID][seat.SeatID] = nil
	delete(m.byConn, connID)
	m.logger.Debug().Str("conn_id", connID).Int("table_id", seat.TableID).Int("seat_id", seat.SeatID).Msg("seat released")
}

func (m *Manager) SeatOf(connID string) (Seat, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seat, ok := m.byConn[connID]
	return seat, ok
}

// PlayerAt returns who holds the connection's seat.
func (m *Manager) PlayerAt(connID string) (model.Player, Seat, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seat, ok := m.byConn[connID]
	if !ok {
		return model.Player{}, Seat{}, false
	}
	return m.seats[seat.TableID][seat.SeatID].player, seat, true
}

func (m *Manager) members(tableID int) []*occupant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tableID < 0 || tableID >= len(m.seats) {
		return nil
	}
	return lo.Compact(m.seats[tableID])
}

// Broadcast sends the event to every connection seated at tableID and returns
// how many accepted it.
func (m *Manager) Broadcast(tableID int, event model.Event) int {
	delivered := 0
	for _, occ := range m.members(tableID) {
		if occ.conn.Send(event) {
			delivered++
		} else {
			m.logger.Warn().Str("conn_id", occ.conn.ID()).Str("event", event.Type).Msg("event dropped, connection too slow")
		}
	}
	return delivered
}

// SendToUser delivers the event to every seat held by the user.
func (m *Manager) SendToUser(userID uuid.UUID, event model.Event) int {
	m.mu.RLock()
	var conns []Conn
	for _, table := range m.seats {
		for _, occ := range table {
			if occ != nil && occ.player.UserID == userID {
				conns = append(conns, occ.conn)
			}
		}
	}
	m.mu.RUnlock()

	return lo.CountBy(conns, func(c Conn) bool { return c.Send(event) })
}

func (m *Manager) Occupied(tableID int) int {
	return len(m.members(tableID))
}

func (m *Manager) Active(tableID int) bool {
	return m.Occupied(tableID) > 0
}

func (m *Manager) Players(tableID int) []model.Player {
	return lo.Map(m.members(tableID), func(o *occupant, _ int) model.Player { return o.player })
}

// Snapshot summarizes seat occupancy for every table. LiveFish is left for the caller.
func (m *Manager) Snapshot() []model.TableSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lo.Map(m.seats, func(table []*occupant, id int) model.TableSummary {
		return model.TableSummary{
			TableID:  id,
			Seats:    len(table),
			Occupied: lo.CountBy(table, func(o *occupant) bool { return o != nil }),
		}
	})
}

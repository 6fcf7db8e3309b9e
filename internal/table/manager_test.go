package table

import (
	"fmt"
	"sync"
	"testing"

	"fishtable/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id     string
	mu     sync.Mutex
	events []model.Event
	full   bool
}

func newConn(id string) *fakeConn { return &fakeConn{id: id} }

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(e model.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		return false
	}
	c.events = append(c.events, e)
	return true
}

func (c *fakeConn) received() []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Event(nil), c.events...)
}

func player() model.Player {
	return model.Player{UserID: uuid.New(), WalletID: uuid.New()}
}

func TestJoin_FirstFreeSeatLeftToRight(t *testing.T) {
	m := NewManager(2, 2, zerolog.Nop())

	s1, err := m.Join(0, player(), newConn("a"))
	require.NoError(t, err)
	s2, err := m.Join(0, player(), newConn("b"))
	require.NoError(t, err)

	assert.Equal(t, Seat{TableID: 0, SeatID: 0, UserID: s1.UserID}, s1)
	assert.Equal(t, 1, s2.SeatID)

	_, err = m.Join(0, player(), newConn("c"))
	assert.ErrorIs(t, err, model.ErrTableFull)
}

func TestJoin_AnyTableScansTableToTable(t *testing.T) {
	m := NewManager(2, 1, zerolog.Nop())

	s1, err := m.Join(AnyTable, player(), newConn("a"))
	require.NoError(t, err)
	s2, err := m.Join(AnyTable, player(), newConn("b"))
	require.NoError(t, err)
	_, err = m.Join(AnyTable, player(), newConn("c"))

	assert.Equal(t, 0, s1.TableID)
	assert.Equal(t, 1, s2.TableID)
	assert.ErrorIs(t, err, model.ErrTableFull)
}

func TestJoin_UnknownTable(t *testing.T) {
	m := NewManager(1, 1, zerolog.Nop())
	_, err := m.Join(4, player(), newConn("a"))
	assert.ErrorIs(t, err, model.ErrTableNotFound)
}

func TestJoin_SameConnectionKeepsSeatOrMoves(t *testing.T) {
	m := NewManager(2, 2, zerolog.Nop())
	p, conn := player(), newConn("a")

	first, err := m.Join(0, p, conn)
	require.NoError(t, err)
	again, err := m.Join(0, p, conn)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, m.Occupied(0))

	moved, err := m.Join(1, p, conn)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.TableID)
	assert.Equal(t, 0, m.Occupied(0))
}

func TestLeave_IsIdempotent(t *testing.T) {
	m := NewManager(1, 1, zerolog.Nop())
	conn := newConn("a")
	_, err := m.Join(0, player(), conn)
	require.NoError(t, err)

	_, ok := m.Leave("a")
	assert.True(t, ok)
	_, ok = m.Leave("a")
	assert.False(t, ok)

	_, err = m.Join(0, player(), newConn("b"))
	assert.NoError(t, err, "seat is free again")
}

func TestBroadcast_IsTableScoped(t *testing.T) {
	m := NewManager(2, 2, zerolog.Nop())
	a, b, c := newConn("a"), newConn("b"), newConn("c")
	m.Join(0, player(), a)
	m.Join(0, player(), b)
	m.Join(1, player(), c)

	n := m.Broadcast(0, model.NewEvent(model.EventFishSpawned, 0, nil))

	assert.Equal(t, 2, n)
	assert.Len(t, a.received(), 1)
	assert.Len(t, b.received(), 1)
	assert.Empty(t, c.received())
}

func TestBroadcast_SkipsSlowConnection(t *testing.T) {
	m := NewManager(1, 2, zerolog.Nop())
	fast, slow := newConn("fast"), newConn("slow")
	slow.full = true
	m.Join(0, player(), fast)
	m.Join(0, player(), slow)

	assert.Equal(t, 1, m.Broadcast(0, model.NewEvent(model.EventPoolUpdated, 0, nil)))
}

func TestSendToUser(t *testing.T) {
	m := NewManager(2, 2, zerolog.Nop())
	p := player()
	a, b := newConn("a"), newConn("b")
	m.Join(0, p, a)
	m.Join(1, player(), b)

	assert.Equal(t, 1, m.SendToUser(p.UserID, model.NewEvent(model.EventCreditResolved, 0, nil)))
	assert.Len(t, a.received(), 1)
	assert.Empty(t, b.received())
}

func TestConcurrentJoinNeverOverbooks(t *testing.T) {
	m := NewManager(1, 4, zerolog.Nop())

	var wg sync.WaitGroup
	var mu sync.Mutex
	seated, full := 0, 0
	start := make(chan struct{})
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := m.Join(0, player(), newConn(fmt.Sprintf("c%d", i)))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				seated++
			} else if assert.ErrorIs(t, err, model.ErrTableFull) {
				full++
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 4, seated)
	assert.Equal(t, 16, full)
}

func TestSnapshot(t *testing.T) {
	m := NewManager(3, 2, zerolog.Nop())
	m.Join(1, player(), newConn("a"))

	snap := m.Snapshot()

	require.Len(t, snap, 3)
	assert.Equal(t, model.TableSummary{TableID: 1, Seats: 2, Occupied: 1}, snap[1])
	assert.True(t, m.Active(1))
	assert.False(t, m.Active(0))
	assert.Len(t, m.Players(1), 1)
}

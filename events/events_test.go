package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type capture struct {
	mu     sync.Mutex
	events []Event
}

func (c *capture) handler(_ context.Context, e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func waitForCount(t *testing.T, c *capture, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d events, got %d", want, c.count())
}

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()
	c := &capture{}
	bus.Subscribe(EventTypeGameCreated, c.handler)

	bus.Emit(context.Background(), GameCreatedEvent{GameID: 1, CreatorID: 2, Stake: 1000})

	waitForCount(t, c, 1)
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()
	c := &capture{}
	bus.Subscribe(EventTypeGameCreated, c.handler)

	bus.Emit(context.Background(), VaultSweptEvent{AdminID: 1, Amount: 500})

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, c.count())
}

func TestBus_PanickingHandlerIsIsolated(t *testing.T) {
	bus := NewBus()
	c := &capture{}
	bus.Subscribe(EventTypeVaultSwept, func(context.Context, Event) {
		panic("handler bug")
	})
	bus.Subscribe(EventTypeVaultSwept, c.handler)

	bus.Emit(context.Background(), VaultSweptEvent{AdminID: 1, Amount: 500})

	// The panic in the first handler must not starve the second
	waitForCount(t, c, 1)
}

func TestTransactionalBus_FlushDelivers(t *testing.T) {
	bus := NewBus()
	c := &capture{}
	bus.Subscribe(EventTypeAccessFeePaid, c.handler)

	txBus := NewTransactionalBus(bus)
	txBus.Publish(AccessFeePaidEvent{UserID: 1, Fee: 1000})
	txBus.Publish(AccessFeePaidEvent{UserID: 2, Fee: 1000})

	// Nothing reaches the real bus before flush
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, c.count())

	assert.NoError(t, txBus.Flush(context.Background()))
	waitForCount(t, c, 2)
}

func TestTransactionalBus_DiscardDrops(t *testing.T) {
	bus := NewBus()
	c := &capture{}
	bus.Subscribe(EventTypeAccessFeePaid, c.handler)

	txBus := NewTransactionalBus(bus)
	txBus.Publish(AccessFeePaidEvent{UserID: 1, Fee: 1000})
	txBus.Discard()

	assert.NoError(t, txBus.Flush(context.Background()))
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, c.count())
}

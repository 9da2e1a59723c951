package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	name    string
	payload int
}

func (e testEvent) Name() string { return e.name }

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	bus, err := New(zap.NewNop(), 4)
	require.NoError(t, err)
	t.Cleanup(bus.Close)
	return bus
}

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := newTestBus(t)

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var got []int

	handler := func(ctx context.Context, event Event) error {
		defer wg.Done()
		mu.Lock()
		got = append(got, event.(testEvent).payload)
		mu.Unlock()
		return nil
	}
	bus.Subscribe("thing.happened", handler)
	bus.Subscribe("thing.happened", handler)

	bus.Publish(context.Background(), testEvent{name: "thing.happened", payload: 42})

	waitDone(t, &wg)
	assert.Equal(t, []int{42, 42}, got)
}

func TestBusIgnoresUnsubscribedEvents(t *testing.T) {
	bus := newTestBus(t)

	called := make(chan struct{}, 1)
	bus.Subscribe("thing.happened", func(ctx context.Context, event Event) error {
		called <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "other.thing"})

	select {
	case <-called:
		t.Fatal("listener ran for an event it never subscribed to")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusListenerErrorDoesNotPropagate(t *testing.T) {
	bus := newTestBus(t)

	var wg sync.WaitGroup
	wg.Add(2)

	failing := func(ctx context.Context, event Event) error {
		defer wg.Done()
		return errors.New("listener blew up")
	}
	var secondRan bool
	bus.Subscribe("thing.happened", failing)
	bus.Subscribe("thing.happened", func(ctx context.Context, event Event) error {
		defer wg.Done()
		secondRan = true
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "thing.happened"})

	waitDone(t, &wg)
	assert.True(t, secondRan)
}

func waitDone(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listeners did not finish in time")
	}
}

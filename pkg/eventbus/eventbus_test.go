package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct {
	name    string
	payload string
}

func (e testEvent) Name() string { return e.name }

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := New(zap.NewNop())
	received := make(chan Event, 1)

	bus.Subscribe("thing.happened", func(ctx context.Context, event Event) error {
		received <- event
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "thing.happened", payload: "42"})

	select {
	case event := <-received:
		e, ok := event.(testEvent)
		assert.True(t, ok)
		assert.Equal(t, "42", e.payload)
	case <-time.After(2 * time.Second):
		t.Fatal("событие не доставлено подписчику")
	}
}

func TestPublishToMultipleSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	received := make(chan struct{}, 2)

	listener := func(ctx context.Context, event Event) error {
		received <- struct{}{}
		return nil
	}
	bus.Subscribe("thing.happened", listener)
	bus.Subscribe("thing.happened", listener)

	bus.Publish(context.Background(), testEvent{name: "thing.happened"})

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(2 * time.Second):
			t.Fatalf("получено %d из 2 доставок", i)
		}
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	// Не должно паниковать и блокироваться.
	bus.Publish(context.Background(), testEvent{name: "nobody.cares"})
}

func TestListenerErrorDoesNotAffectOthers(t *testing.T) {
	bus := New(zap.NewNop())
	received := make(chan struct{}, 1)

	bus.Subscribe("thing.happened", func(ctx context.Context, event Event) error {
		return errors.New("обработчик сломался")
	})
	bus.Subscribe("thing.happened", func(ctx context.Context, event Event) error {
		received <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "thing.happened"})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("второй подписчик не получил событие")
	}
}

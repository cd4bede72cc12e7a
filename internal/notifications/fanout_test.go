package notifications_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelPublisher struct {
	events chan order.TransitionEvent
	err    error
}

func newChannelPublisher() *channelPublisher {
	return &channelPublisher{events: make(chan order.TransitionEvent, 1)}
}

func (p *channelPublisher) Publish(_ context.Context, event order.TransitionEvent) error {
	p.events <- event
	return p.err
}

func awaitEvent(t *testing.T, p *channelPublisher) order.TransitionEvent {
	t.Helper()

	select {
	case event := <-p.events:
		return event
	case <-time.After(time.Second):
		t.Fatal("publisher was not invoked")
		return order.TransitionEvent{}
	}
}

func TestFanOutPublish_DeliversToAllTargets(t *testing.T) {
	first := newChannelPublisher()
	second := newChannelPublisher()
	fanout := notifications.NewFanOutPublisher(nil, first, second)

	testOrder := newTestOrder(t)
	event := lastEvent(t, testOrder)

	err := fanout.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, event.Type(), awaitEvent(t, first).Type())
	assert.Equal(t, event.Type(), awaitEvent(t, second).Type())
}

func TestFanOutPublish_TargetFailure_DoesNotSurface(t *testing.T) {
	failing := newChannelPublisher()
	failing.err = assert.AnError
	fanout := notifications.NewFanOutPublisher(nil, failing)

	testOrder := newTestOrder(t)
	event := lastEvent(t, testOrder)

	err := fanout.Publish(context.Background(), event)

	require.NoError(t, err)
	awaitEvent(t, failing)
}

func TestFanOutPublish_SkipsNilTargets(t *testing.T) {
	target := newChannelPublisher()
	fanout := notifications.NewFanOutPublisher(nil, nil, target)

	testOrder := newTestOrder(t)
	event := lastEvent(t, testOrder)

	err := fanout.Publish(context.Background(), event)

	require.NoError(t, err)
	awaitEvent(t, target)
}

func TestFanOutPublish_SurvivesCallerContextCancellation(t *testing.T) {
	target := newChannelPublisher()
	fanout := notifications.NewFanOutPublisher(nil, target)

	testOrder := newTestOrder(t)
	event := lastEvent(t, testOrder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fanout.Publish(ctx, event)

	require.NoError(t, err)
	awaitEvent(t, target)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/mock"
	"github.com/osmlabs/authkeeper/models"
)

func TestDispatcher_PublishDeliversEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGatewayClient(ctrl)
	sink := &eventSink{}

	gateway.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).DoAndReturn(sink.record)

	d := NewEventDispatcher(gateway, logger.Nop())
	d.Publish(models.GatewayEvent{Kind: models.EventSessionSync, Email: "a@b.c"})
	d.Wait()

	events := sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventSessionSync, events[0].Kind)
}

func TestDispatcher_PublishSwallowsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGatewayClient(ctrl)

	gateway.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(errors.New("gateway down"))

	d := NewEventDispatcher(gateway, logger.Nop())
	require.NotPanics(t, func() {
		d.Publish(models.GatewayEvent{Kind: models.EventResetPassword})
		d.Wait()
	})
}

func TestDispatcher_PublishUsesDetachedDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGatewayClient(ctrl)

	gateway.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.GatewayEvent) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "publishes run under their own timeout")
			assert.NoError(t, ctx.Err(), "a caller's cancelled context must not leak in")
			return nil
		})

	d := NewEventDispatcher(gateway, logger.Nop())
	d.Publish(models.GatewayEvent{Kind: models.EventUserQuery})
	d.Wait()
}

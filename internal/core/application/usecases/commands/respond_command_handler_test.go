package commands_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRespondCommandHandler(t *testing.T) {
	customerID := kernel.NewUUID()
	bobID := kernel.NewUUID()

	newOpenOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		return o
	}

	t.Run("should record response and keep status unchanged", func(t *testing.T) {
		ctx := t.Context()
		o := newOpenOrder(t)
		store := newFakeOrderStore(o)
		gateway := new(MockOrderGateway)
		notifier := &recordingNotifier{}
		gateway.On("AddResponse", ctx, o.ID(), bobID).
			Return(ports.RespondResult{ActorID: bobID, Status: order.Open}, nil).Once()

		cmd, err := commands.NewRespondCommand(o.ID(), bobID)
		require.NoError(t, err)

		handler := commands.NewRespondCommandHandler(store, gateway, notifier, commands.NewInflightRegistry())
		snapshot, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Open", snapshot.Status)
		assert.Equal(t, []string{bobID.String()}, snapshot.Responders)

		stored, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.True(t, stored.HasResponder(bobID))
		assert.Equal(t, order.Open, stored.Status())

		require.Len(t, notifier.snapshots, 1)
		assert.Equal(t, ports.NotificationSuccess, notifier.lastNotification().Kind)
		gateway.AssertExpectations(t)
	})

	t.Run("should mirror remote promotion to InProgress", func(t *testing.T) {
		ctx := t.Context()
		o := newOpenOrder(t)
		store := newFakeOrderStore(o)
		gateway := new(MockOrderGateway)
		gateway.On("AddResponse", ctx, o.ID(), bobID).
			Return(ports.RespondResult{ActorID: bobID, Status: order.InProgress}, nil).Once()

		cmd, err := commands.NewRespondCommand(o.ID(), bobID)
		require.NoError(t, err)

		handler := commands.NewRespondCommandHandler(store, gateway, &recordingNotifier{}, commands.NewInflightRegistry())
		snapshot, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "InProgress", snapshot.Status)
		require.NotNil(t, snapshot.ExecutorID)
		assert.Equal(t, bobID.String(), *snapshot.ExecutorID)
	})

	t.Run("should keep exactly one responder entry on repeated response", func(t *testing.T) {
		ctx := t.Context()
		o := newOpenOrder(t)
		require.NoError(t, o.AddResponder(bobID))
		store := newFakeOrderStore(o)
		gateway := new(MockOrderGateway)
		gateway.On("AddResponse", ctx, o.ID(), bobID).
			Return(ports.RespondResult{ActorID: bobID, Status: order.Open}, nil).Once()

		cmd, err := commands.NewRespondCommand(o.ID(), bobID)
		require.NoError(t, err)

		handler := commands.NewRespondCommandHandler(store, gateway, &recordingNotifier{}, commands.NewInflightRegistry())
		snapshot, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, []string{bobID.String()}, snapshot.Responders)
	})

	t.Run("should fail with Forbidden when the customer responds", func(t *testing.T) {
		o := newOpenOrder(t)
		store := newFakeOrderStore(o)
		notifier := &recordingNotifier{}

		cmd, err := commands.NewRespondCommand(o.ID(), customerID)
		require.NoError(t, err)

		handler := commands.NewRespondCommandHandler(store, new(MockOrderGateway), notifier, commands.NewInflightRegistry())
		_, err = handler.Handle(t.Context(), cmd)

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindForbidden, workflowErr.Kind())
		assert.Equal(t, ports.NotificationError, notifier.lastNotification().Kind)
	})

	t.Run("should fail with NotFound for untracked order", func(t *testing.T) {
		cmd, err := commands.NewRespondCommand(kernel.NewUUID(), bobID)
		require.NoError(t, err)

		handler := commands.NewRespondCommandHandler(newFakeOrderStore(), new(MockOrderGateway), &recordingNotifier{}, commands.NewInflightRegistry())
		_, err = handler.Handle(t.Context(), cmd)

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindNotFound, workflowErr.Kind())
	})

	t.Run("should surface remote failure and leave the mirror untouched", func(t *testing.T) {
		ctx := t.Context()
		o := newOpenOrder(t)
		store := newFakeOrderStore(o)
		gateway := new(MockOrderGateway)
		gateway.On("AddResponse", ctx, o.ID(), bobID).
			Return(ports.RespondResult{}, fmt.Errorf("%w: connection refused", ports.ErrRemoteUnavailable)).Once()

		cmd, err := commands.NewRespondCommand(o.ID(), bobID)
		require.NoError(t, err)

		handler := commands.NewRespondCommandHandler(store, gateway, &recordingNotifier{}, commands.NewInflightRegistry())
		_, err = handler.Handle(ctx, cmd)

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindRemoteUnavailable, workflowErr.Kind())

		stored, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.False(t, stored.HasResponder(bobID))
	})

	t.Run("should reject a second transition while one is in flight", func(t *testing.T) {
		ctx := t.Context()
		o := newOpenOrder(t)
		store := newFakeOrderStore(o)
		registry := commands.NewInflightRegistry()
		gateway := new(MockOrderGateway)

		// Simulate the first attempt still running.
		release, err := registry.Acquire(o.ID())
		require.NoError(t, err)
		defer release()

		cmd, err := commands.NewRespondCommand(o.ID(), bobID)
		require.NoError(t, err)

		handler := commands.NewRespondCommandHandler(store, gateway, &recordingNotifier{}, registry)
		_, err = handler.Handle(ctx, cmd)

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindConflict, workflowErr.Kind())
		gateway.AssertNotCalled(t, "AddResponse", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		handler := commands.NewRespondCommandHandler(newFakeOrderStore(), new(MockOrderGateway), &recordingNotifier{}, commands.NewInflightRegistry())

		_, err := handler.Handle(t.Context(), commands.RespondCommand{})

		require.ErrorIs(t, err, commands.ErrRespondCommandIsNotConstructed)
	})
}

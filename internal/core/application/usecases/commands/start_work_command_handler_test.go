package commands_test

import (
	"context"
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

func TestStartWorkCommandHandler(t *testing.T) {
	customerID := kernel.NewUUID()
	bobID := kernel.NewUUID()

	newOrderWithResponder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		require.NoError(t, o.AddResponder(bobID))
		return o
	}

	newCommand := func(t *testing.T, o *order.Order) commands.StartWorkCommand {
		t.Helper()
		cmd, err := commands.NewStartWorkCommand(o.ID(), customerID, bobID)
		require.NoError(t, err)
		return cmd
	}

	t.Run("should move order to InProgress with executor and review count", func(t *testing.T) {
		ctx := t.Context()
		o := newOrderWithResponder(t)
		store := newFakeOrderStore(o)
		notifier := &recordingNotifier{}
		gateway := new(MockOrderGateway)
		mock.InOrder(
			gateway.On("UpdateStatus", ctx, o.ID(), customerID, order.InProgress).Return(order.InProgress, nil).Once(),
			gateway.On("UpdateReviewCount", ctx, o.ID(), customerID, 1).Return(1, nil).Once(),
		)

		handler := commands.NewStartWorkCommandHandler(store, gateway, notifier, commands.NewInflightRegistry())
		snapshot, err := handler.Handle(ctx, newCommand(t, o))

		require.NoError(t, err)
		assert.Equal(t, "InProgress", snapshot.Status)
		require.NotNil(t, snapshot.ExecutorID)
		assert.Equal(t, bobID.String(), *snapshot.ExecutorID)
		assert.Equal(t, 1, snapshot.ReviewCount)

		stored, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.InProgress, stored.Status())
		assert.Equal(t, 1, stored.ReviewCount())
		assert.Equal(t, ports.NotificationSuccess, notifier.lastNotification().Kind)
		// The responder is already registered, so no response insert happens.
		gateway.AssertNotCalled(t, "AddResponse", mock.Anything, mock.Anything, mock.Anything)
		gateway.AssertExpectations(t)
	})

	t.Run("should compensate status when review count update fails", func(t *testing.T) {
		ctx := t.Context()
		o := newOrderWithResponder(t)
		store := newFakeOrderStore(o)
		notifier := &recordingNotifier{}
		gateway := new(MockOrderGateway)
		mock.InOrder(
			gateway.On("UpdateStatus", ctx, o.ID(), customerID, order.InProgress).Return(order.InProgress, nil).Once(),
			gateway.On("UpdateReviewCount", ctx, o.ID(), customerID, 1).
				Return(0, fmt.Errorf("%w: timeout", ports.ErrRemoteUnavailable)).Once(),
			gateway.On("UpdateStatus", ctx, o.ID(), customerID, order.Open).Return(order.Open, nil).Once(),
		)

		handler := commands.NewStartWorkCommandHandler(store, gateway, notifier, commands.NewInflightRegistry())
		_, err := handler.Handle(ctx, newCommand(t, o))

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindRemoteUnavailable, workflowErr.Kind())
		assert.Equal(t, ports.NotificationError, notifier.lastNotification().Kind)

		// Compensation succeeded, so the mirror stays in its pre-attempt state.
		stored, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Open, stored.Status())
		assert.Nil(t, stored.Executor())
		assert.Equal(t, 0, stored.ReviewCount())
		gateway.AssertExpectations(t)
	})

	t.Run("should escalate to PartialFailure when compensation fails", func(t *testing.T) {
		ctx := t.Context()
		o := newOrderWithResponder(t)
		store := newFakeOrderStore(o)
		notifier := &recordingNotifier{}
		gateway := new(MockOrderGateway)
		mock.InOrder(
			gateway.On("UpdateStatus", ctx, o.ID(), customerID, order.InProgress).Return(order.InProgress, nil).Once(),
			gateway.On("UpdateReviewCount", ctx, o.ID(), customerID, 1).
				Return(0, fmt.Errorf("%w: timeout", ports.ErrRemoteUnavailable)).Once(),
			gateway.On("UpdateStatus", ctx, o.ID(), customerID, order.Open).
				Return(order.Unknown, fmt.Errorf("%w: timeout", ports.ErrRemoteUnavailable)).Once(),
		)

		handler := commands.NewStartWorkCommandHandler(store, gateway, notifier, commands.NewInflightRegistry())
		_, err := handler.Handle(ctx, newCommand(t, o))

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindPartialFailure, workflowErr.Kind())
		assert.Equal(t, []string{"update status"}, workflowErr.AppliedSteps())
		assert.Equal(t, []string{"update review count", "add response"}, workflowErr.FailedSteps())
		assert.Equal(t, ports.NotificationWarning, notifier.lastNotification().Kind)

		// The mirror keeps the committed subset: status applied, count not.
		stored, err := store.Get(o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.InProgress, stored.Status())
		assert.Equal(t, 0, stored.ReviewCount())
		gateway.AssertExpectations(t)
	})

	t.Run("should surface PartialFailure when cancelled between steps", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		o := newOrderWithResponder(t)
		store := newFakeOrderStore(o)
		gateway := new(MockOrderGateway)
		gateway.On("UpdateStatus", ctx, o.ID(), customerID, order.InProgress).
			Run(func(mock.Arguments) { cancel() }).
			Return(order.InProgress, nil).Once()

		handler := commands.NewStartWorkCommandHandler(store, gateway, &recordingNotifier{}, commands.NewInflightRegistry())
		_, err := handler.Handle(ctx, newCommand(t, o))

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindPartialFailure, workflowErr.Kind())
		assert.Equal(t, []string{"update status"}, workflowErr.AppliedSteps())
		// Committed steps are not compensated after cancellation.
		gateway.AssertNumberOfCalls(t, "UpdateStatus", 1)
	})

	t.Run("should fail with InvalidTransition for unregistered responder", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		store := newFakeOrderStore(o)

		cmd, err := commands.NewStartWorkCommand(o.ID(), customerID, bobID)
		require.NoError(t, err)

		handler := commands.NewStartWorkCommandHandler(store, new(MockOrderGateway), &recordingNotifier{}, commands.NewInflightRegistry())
		_, err = handler.Handle(t.Context(), cmd)

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindInvalidTransition, workflowErr.Kind())
	})

	t.Run("should fail with Forbidden for non-customer actor", func(t *testing.T) {
		o := newOrderWithResponder(t)
		store := newFakeOrderStore(o)

		cmd, err := commands.NewStartWorkCommand(o.ID(), bobID, bobID)
		require.NoError(t, err)

		handler := commands.NewStartWorkCommandHandler(store, new(MockOrderGateway), &recordingNotifier{}, commands.NewInflightRegistry())
		_, err = handler.Handle(t.Context(), cmd)

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindForbidden, workflowErr.Kind())
	})

	t.Run("should fail with InvalidTransition when order is already in development", func(t *testing.T) {
		executorID := kernel.NewUUID()
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.InProgress,
			[]kernel.UUID{executorID}, 1, false)
		require.NoError(t, err)
		store := newFakeOrderStore(o)

		cmd, err := commands.NewStartWorkCommand(o.ID(), customerID, executorID)
		require.NoError(t, err)

		handler := commands.NewStartWorkCommandHandler(store, new(MockOrderGateway), &recordingNotifier{}, commands.NewInflightRegistry())
		_, err = handler.Handle(t.Context(), cmd)

		var workflowErr *commands.WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, commands.KindInvalidTransition, workflowErr.Kind())
	})
}

package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	t.Run("should create open order with no responders", func(t *testing.T) {
		o, err := order.NewOrder(validID, customerID)

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.Equal(t, order.Open, o.Status())
		assert.Nil(t, o.Executor())
		assert.Empty(t, o.Responders())
		assert.Equal(t, 0, o.ReviewCount())
		assert.False(t, o.HasBeenRated())
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, customerID)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with invalid customer ID", func(t *testing.T) {
		var invalidCustomer kernel.UUID

		o, err := order.NewOrder(validID, invalidCustomer)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestRestoreOrder(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	executorID := kernel.NewUUID()
	responderID := kernel.NewUUID()

	t.Run("should restore an in-progress order", func(t *testing.T) {
		o, err := order.RestoreOrder(orderID, customerID, &executorID, order.InProgress,
			[]kernel.UUID{responderID, executorID}, 2, false)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.InProgress, o.Status())
		require.NotNil(t, o.Executor())
		assert.True(t, o.Executor().IsEqual(executorID))
		assert.Len(t, o.Responders(), 2)
		assert.Equal(t, 2, o.ReviewCount())
	})

	t.Run("should restore a rated completed order", func(t *testing.T) {
		o, err := order.RestoreOrder(orderID, customerID, &executorID, order.Completed,
			[]kernel.UUID{executorID}, 1, true)

		require.NoError(t, err)
		assert.True(t, o.HasBeenRated())
	})

	t.Run("should deduplicate responders", func(t *testing.T) {
		o, err := order.RestoreOrder(orderID, customerID, nil, order.Open,
			[]kernel.UUID{responderID, responderID}, 1, false)

		require.NoError(t, err)
		assert.Len(t, o.Responders(), 1)
	})

	t.Run("should fail when open order has an executor", func(t *testing.T) {
		o, err := order.RestoreOrder(orderID, customerID, &executorID, order.Open, nil, 0, false)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "Open is not a valid status to have an executor")
	})

	t.Run("should fail when in-progress order has no executor", func(t *testing.T) {
		o, err := order.RestoreOrder(orderID, customerID, nil, order.InProgress, nil, 0, false)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with negative review count", func(t *testing.T) {
		o, err := order.RestoreOrder(orderID, customerID, nil, order.Open, nil, -1, false)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "reviewCount is invalid")
	})

	t.Run("should fail with invalid responder", func(t *testing.T) {
		var invalidResponder kernel.UUID

		o, err := order.RestoreOrder(orderID, customerID, nil, order.Open,
			[]kernel.UUID{invalidResponder}, 0, false)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestOrderValidate(t *testing.T) {
	t.Run("should fail on zero-value order", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail on nil order", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderRoleOf(t *testing.T) {
	customerID := kernel.NewUUID()
	executorID := kernel.NewUUID()
	strangerID := kernel.NewUUID()

	o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.InProgress,
		[]kernel.UUID{executorID}, 1, false)
	require.NoError(t, err)

	t.Run("should classify the owner as customer", func(t *testing.T) {
		assert.Equal(t, order.RoleCustomer, o.RoleOf(customerID))
	})

	t.Run("should classify the assigned executor", func(t *testing.T) {
		assert.Equal(t, order.RoleExecutor, o.RoleOf(executorID))
	})

	t.Run("should classify any other actor as responder", func(t *testing.T) {
		assert.Equal(t, order.RoleResponder, o.RoleOf(strangerID))
	})

	t.Run("should classify a zero actor as unknown", func(t *testing.T) {
		var anonymous kernel.UUID

		assert.Equal(t, order.RoleUnknown, o.RoleOf(anonymous))
	})
}

func TestOrderAuthorize(t *testing.T) {
	customerID := kernel.NewUUID()
	executorID := kernel.NewUUID()
	strangerID := kernel.NewUUID()

	newOpenOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		return o
	}

	newInProgressOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.InProgress,
			[]kernel.UUID{executorID}, 1, false)
		require.NoError(t, err)
		return o
	}

	newCompletedOrder := func(t *testing.T, rated bool) *order.Order {
		t.Helper()
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.Completed,
			[]kernel.UUID{executorID}, 1, rated)
		require.NoError(t, err)
		return o
	}

	t.Run("should reject unauthenticated actor before anything else", func(t *testing.T) {
		var anonymous kernel.UUID

		err := newOpenOrder(t).Authorize(order.Respond, anonymous)

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject transition forbidden by status", func(t *testing.T) {
		err := newOpenOrder(t).Authorize(order.Complete, customerID)

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "Complete from Open")
	})

	t.Run("should reject actor forbidden by role", func(t *testing.T) {
		err := newInProgressOrder(t).Authorize(order.Cancel, strangerID)

		assert.ErrorIs(t, err, order.ErrActorNotPermitted)
		assert.Contains(t, err.Error(), "Cancel as Responder")
	})

	t.Run("should check status before role", func(t *testing.T) {
		// A responder asking to Complete an Open order trips on the status
		// table first.
		err := newOpenOrder(t).Authorize(order.Complete, strangerID)

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should allow customer to cancel in-progress order", func(t *testing.T) {
		assert.NoError(t, newInProgressOrder(t).Authorize(order.Cancel, customerID))
	})

	t.Run("should allow executor to cancel in-progress order", func(t *testing.T) {
		assert.NoError(t, newInProgressOrder(t).Authorize(order.Cancel, executorID))
	})

	t.Run("should allow customer to rate completed order once", func(t *testing.T) {
		assert.NoError(t, newCompletedOrder(t, false).Authorize(order.Rate, customerID))
	})

	t.Run("should reject second rating", func(t *testing.T) {
		err := newCompletedOrder(t, true).Authorize(order.Rate, customerID)

		assert.ErrorIs(t, err, order.ErrOrderAlreadyRated)
	})

	t.Run("should reject customer responding to own order", func(t *testing.T) {
		err := newOpenOrder(t).Authorize(order.Respond, customerID)

		assert.ErrorIs(t, err, order.ErrActorNotPermitted)
	})
}

func TestOrderRecordResponse(t *testing.T) {
	customerID := kernel.NewUUID()
	responderID := kernel.NewUUID()

	newOpenOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		return o
	}

	t.Run("should add responder and keep reported status", func(t *testing.T) {
		o := newOpenOrder(t)

		err := o.RecordResponse(responderID, order.Open)

		require.NoError(t, err)
		assert.True(t, o.HasResponder(responderID))
		assert.Equal(t, order.Open, o.Status())
		assert.Nil(t, o.Executor())
	})

	t.Run("should promote responder to executor when remote reports InProgress", func(t *testing.T) {
		o := newOpenOrder(t)

		err := o.RecordResponse(responderID, order.InProgress)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		require.NotNil(t, o.Executor())
		assert.True(t, o.Executor().IsEqual(responderID))
	})

	t.Run("should be idempotent for repeated responder", func(t *testing.T) {
		o := newOpenOrder(t)
		require.NoError(t, o.RecordResponse(responderID, order.Open))

		err := o.RecordResponse(responderID, order.Open)

		require.NoError(t, err)
		assert.Len(t, o.Responders(), 1)
	})

	t.Run("should reject response from the customer", func(t *testing.T) {
		err := newOpenOrder(t).RecordResponse(customerID, order.Open)

		assert.ErrorIs(t, err, order.ErrActorNotPermitted)
	})

	t.Run("should reject response from the assigned executor", func(t *testing.T) {
		o := newOpenOrder(t)
		require.NoError(t, o.RecordResponse(responderID, order.InProgress))

		err := o.RecordResponse(responderID, order.InProgress)

		assert.ErrorIs(t, err, order.ErrActorNotPermitted)
	})

	t.Run("should reject response on completed order", func(t *testing.T) {
		executorID := kernel.NewUUID()
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.Completed,
			[]kernel.UUID{executorID}, 1, false)
		require.NoError(t, err)

		err = o.RecordResponse(kernel.NewUUID(), order.Open)

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrderStartWork(t *testing.T) {
	customerID := kernel.NewUUID()
	responderID := kernel.NewUUID()

	t.Run("should assign executor and move to InProgress", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		require.NoError(t, o.RecordResponse(responderID, order.Open))

		err = o.StartWork(responderID)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		require.NotNil(t, o.Executor())
		assert.True(t, o.Executor().IsEqual(responderID))
	})

	t.Run("should reject unregistered responder", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)

		err = o.StartWork(responderID)

		assert.ErrorIs(t, err, order.ErrResponderNotRegistered)
	})

	t.Run("should reject start on non-open order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		require.NoError(t, o.RecordResponse(responderID, order.Open))
		require.NoError(t, o.StartWork(responderID))

		err = o.StartWork(responderID)

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrderCompleteAndReopen(t *testing.T) {
	customerID := kernel.NewUUID()
	executorID := kernel.NewUUID()

	newInProgressOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.InProgress,
			[]kernel.UUID{executorID}, 1, false)
		require.NoError(t, err)
		return o
	}

	t.Run("should complete in-progress order and keep executor", func(t *testing.T) {
		o := newInProgressOrder(t)

		err := o.CompleteWork()

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.NotNil(t, o.Executor())
	})

	t.Run("should reject completing open order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)

		assert.ErrorIs(t, o.CompleteWork(), order.ErrInvalidTransition)
	})

	t.Run("should reopen in-progress order and clear executor", func(t *testing.T) {
		o := newInProgressOrder(t)

		err := o.Reopen()

		require.NoError(t, err)
		assert.Equal(t, order.Open, o.Status())
		assert.Nil(t, o.Executor())
	})

	t.Run("should reject reopening completed order", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.CompleteWork())

		assert.ErrorIs(t, o.Reopen(), order.ErrInvalidTransition)
	})
}

func TestOrderResponderSet(t *testing.T) {
	customerID := kernel.NewUUID()
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	t.Run("should preserve insertion order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)

		require.NoError(t, o.AddResponder(first))
		require.NoError(t, o.AddResponder(second))

		responders := o.Responders()
		require.Len(t, responders, 2)
		assert.True(t, responders[0].IsEqual(first))
		assert.True(t, responders[1].IsEqual(second))
	})

	t.Run("should remove a responder and ignore absent ones", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		require.NoError(t, o.AddResponder(first))

		require.NoError(t, o.RemoveResponder(first))
		require.NoError(t, o.RemoveResponder(first))

		assert.Empty(t, o.Responders())
	})

	t.Run("should reject removing responder from completed order", func(t *testing.T) {
		executorID := kernel.NewUUID()
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.Completed,
			[]kernel.UUID{executorID}, 1, false)
		require.NoError(t, err)

		assert.ErrorIs(t, o.RemoveResponder(executorID), order.ErrInvalidTransition)
	})

	t.Run("should return a defensive copy", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		require.NoError(t, o.AddResponder(first))

		responders := o.Responders()
		responders[0] = second

		assert.True(t, o.HasResponder(first))
		assert.False(t, o.HasResponder(second))
	})
}

func TestOrderMarkRated(t *testing.T) {
	customerID := kernel.NewUUID()
	executorID := kernel.NewUUID()

	t.Run("should mark completed order as rated once", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.Completed,
			[]kernel.UUID{executorID}, 1, false)
		require.NoError(t, err)

		require.NoError(t, o.MarkRated())
		assert.True(t, o.HasBeenRated())

		assert.ErrorIs(t, o.MarkRated(), order.ErrOrderAlreadyRated)
	})

	t.Run("should reject rating a non-completed order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)

		assert.ErrorIs(t, o.MarkRated(), order.ErrInvalidTransition)
	})
}

func TestOrderClone(t *testing.T) {
	customerID := kernel.NewUUID()
	responderID := kernel.NewUUID()

	t.Run("should isolate mutations from the original", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)
		require.NoError(t, o.AddResponder(responderID))

		clone := o.Clone()
		require.NoError(t, clone.RecordResponse(kernel.NewUUID(), order.Open))
		require.NoError(t, clone.StartWork(responderID))

		assert.Equal(t, order.Open, o.Status())
		assert.Nil(t, o.Executor())
		assert.Len(t, o.Responders(), 1)
		assert.Equal(t, order.InProgress, clone.Status())
	})
}

func TestOrderSnapshot(t *testing.T) {
	customerID := kernel.NewUUID()
	executorID := kernel.NewUUID()
	responderID := kernel.NewUUID()

	t.Run("should expose all lifecycle fields as strings", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), customerID, &executorID, order.InProgress,
			[]kernel.UUID{responderID, executorID}, 2, false)
		require.NoError(t, err)

		snapshot := o.Snapshot()

		assert.Equal(t, o.ID().String(), snapshot.ID)
		assert.Equal(t, customerID.String(), snapshot.CustomerID)
		require.NotNil(t, snapshot.ExecutorID)
		assert.Equal(t, executorID.String(), *snapshot.ExecutorID)
		assert.Equal(t, "InProgress", snapshot.Status)
		assert.Equal(t, []string{responderID.String(), executorID.String()}, snapshot.Responders)
		assert.Equal(t, 2, snapshot.ReviewCount)
		assert.False(t, snapshot.HasBeenRated)
	})

	t.Run("should omit executor for open order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), customerID)
		require.NoError(t, err)

		assert.Nil(t, o.Snapshot().ExecutorID)
	})
}

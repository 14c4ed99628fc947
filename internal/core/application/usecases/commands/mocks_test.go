package commands_test

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

// Gateways are mocked with testify so tests can pin remote call sequences;
// stores and the notifier are plain in-memory fakes because assertions
// inspect the resulting state rather than the calls.

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) UpdateStatus(ctx context.Context, orderID, actorID kernel.UUID, status order.Status) (order.Status, error) {
	args := m.Called(ctx, orderID, actorID, status)
	return args.Get(0).(order.Status), args.Error(1)
}

func (m *MockOrderGateway) UpdateReviewCount(ctx context.Context, orderID, actorID kernel.UUID, count int) (int, error) {
	args := m.Called(ctx, orderID, actorID, count)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderGateway) AddResponse(ctx context.Context, orderID, actorID kernel.UUID) (ports.RespondResult, error) {
	args := m.Called(ctx, orderID, actorID)
	return args.Get(0).(ports.RespondResult), args.Error(1)
}

func (m *MockOrderGateway) RemoveResponse(ctx context.Context, orderID, actorID kernel.UUID) error {
	args := m.Called(ctx, orderID, actorID)
	return args.Error(0)
}

func (m *MockOrderGateway) Complete(ctx context.Context, orderID, actorID kernel.UUID) (float64, error) {
	args := m.Called(ctx, orderID, actorID)
	return args.Get(0).(float64), args.Error(1)
}

type MockRatingGateway struct{ mock.Mock }

func (m *MockRatingGateway) SubmitRating(ctx context.Context, orderID, actorID kernel.UUID, value float64) error {
	args := m.Called(ctx, orderID, actorID, value)
	return args.Error(0)
}

func (m *MockRatingGateway) HasRated(ctx context.Context, orderID, actorID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingGateway) ParticipantRating(ctx context.Context, participantID kernel.UUID) (ports.ParticipantRating, error) {
	args := m.Called(ctx, participantID)
	return args.Get(0).(ports.ParticipantRating), args.Error(1)
}

type MockFinanceGateway struct{ mock.Mock }

func (m *MockFinanceGateway) Finances(ctx context.Context, participantID kernel.UUID) (ports.RemoteFinances, error) {
	args := m.Called(ctx, participantID)
	return args.Get(0).(ports.RemoteFinances), args.Error(1)
}

func (m *MockFinanceGateway) Withdraw(ctx context.Context, participantID kernel.UUID, amount float64) (string, error) {
	args := m.Called(ctx, participantID, amount)
	return args.String(0), args.Error(1)
}

type fakeOrderStore struct {
	orders map[string]*order.Order
}

func newFakeOrderStore(orders ...*order.Order) *fakeOrderStore {
	store := &fakeOrderStore{orders: make(map[string]*order.Order)}
	for _, o := range orders {
		store.Save(o)
	}
	return store
}

func (s *fakeOrderStore) Get(id kernel.UUID) (*order.Order, error) {
	aggregate, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return aggregate.Clone(), nil
}

func (s *fakeOrderStore) Save(aggregate *order.Order) {
	s.orders[aggregate.ID().String()] = aggregate.Clone()
}

type fakeLedgerStore struct {
	accounts map[string]*ledger.Account
}

func newFakeLedgerStore(accounts ...*ledger.Account) *fakeLedgerStore {
	store := &fakeLedgerStore{accounts: make(map[string]*ledger.Account)}
	for _, account := range accounts {
		store.Save(account)
	}
	return store
}

func (s *fakeLedgerStore) Get(participantID kernel.UUID) (*ledger.Account, error) {
	account, ok := s.accounts[participantID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("participantID", participantID)
	}
	return account.Clone(), nil
}

func (s *fakeLedgerStore) Save(account *ledger.Account) {
	s.accounts[account.ParticipantID().String()] = account.Clone()
}

func (s *fakeLedgerStore) All() []*ledger.Account {
	accounts := make([]*ledger.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account.Clone())
	}
	return accounts
}

type fakeRatingStore struct {
	aggregates map[string]rating.Aggregate
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{aggregates: make(map[string]rating.Aggregate)}
}

func (s *fakeRatingStore) Get(participantID kernel.UUID) (rating.Aggregate, bool) {
	aggregate, ok := s.aggregates[participantID.String()]
	return aggregate, ok
}

func (s *fakeRatingStore) Save(participantID kernel.UUID, aggregate rating.Aggregate) {
	s.aggregates[participantID.String()] = aggregate
}

type recordingNotifier struct {
	notifications []ports.Notification
	snapshots     []order.Snapshot
}

func (n *recordingNotifier) Notify(_ context.Context, notification ports.Notification) {
	n.notifications = append(n.notifications, notification)
}

func (n *recordingNotifier) PublishOrderSnapshot(_ context.Context, snapshot order.Snapshot) {
	n.snapshots = append(n.snapshots, snapshot)
}

func (n *recordingNotifier) lastNotification() ports.Notification {
	if len(n.notifications) == 0 {
		return ports.Notification{}
	}
	return n.notifications[len(n.notifications)-1]
}

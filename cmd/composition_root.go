package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/out/marketplaceapi"
	"marketplace/internal/adapters/out/memstore"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
)

// CompositionRoot wires stores, the remote marketplace client and the
// notifier into the command and query handlers. Stores and the in-flight
// registry are shared: every handler must see the same state.
type CompositionRoot struct {
	orderStore  *memstore.OrderStore
	ratingStore *memstore.RatingStore
	ledgerStore *memstore.LedgerStore

	marketplaceClient *marketplaceapi.Client
	notifier          ports.Notifier
	inflight          *commands.InflightRegistry
	logger            *slog.Logger

	config Config
}

// NewCompositionRoot creates the object graph for the workflow service.
func NewCompositionRoot(config Config, notifier ports.Notifier, logger *slog.Logger) (CompositionRoot, error) {
	client, err := marketplaceapi.NewClient(config.MarketplaceAPIURL, config.MarketplaceAPIToken)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		orderStore:        memstore.NewOrderStore(),
		ratingStore:       memstore.NewRatingStore(),
		ledgerStore:       memstore.NewLedgerStore(),
		marketplaceClient: client,
		notifier:          notifier,
		inflight:          commands.NewInflightRegistry(),
		logger:            logger,
		config:            config,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderStore, c.notifier)
}

func (c *CompositionRoot) CreateRespondCommandHandler() commands.RespondCommandHandler {
	return commands.NewRespondCommandHandler(c.orderStore, c.marketplaceClient, c.notifier, c.inflight)
}

func (c *CompositionRoot) CreateStartWorkCommandHandler() commands.StartWorkCommandHandler {
	return commands.NewStartWorkCommandHandler(c.orderStore, c.marketplaceClient, c.notifier, c.inflight)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(
		c.orderStore, c.ledgerStore, c.marketplaceClient, c.notifier, c.inflight)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderStore, c.marketplaceClient, c.notifier, c.inflight)
}

func (c *CompositionRoot) CreateRateExecutorCommandHandler() commands.RateExecutorCommandHandler {
	return commands.NewRateExecutorCommandHandler(
		c.orderStore, c.ratingStore, c.marketplaceClient, c.notifier, c.inflight)
}

func (c *CompositionRoot) CreateWithdrawCommandHandler() commands.WithdrawCommandHandler {
	return commands.NewWithdrawCommandHandler(c.ledgerStore, c.marketplaceClient, c.notifier)
}

func (c *CompositionRoot) CreateSettleTransactionsCommandHandler() commands.SettleTransactionsCommandHandler {
	return commands.NewSettleTransactionsCommandHandler(c.ledgerStore, c.marketplaceClient, c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderStore)
}

func (c *CompositionRoot) CreateGetParticipantRatingQueryHandler() queries.GetParticipantRatingQueryHandler {
	return queries.NewGetParticipantRatingQueryHandler(c.ratingStore, c.marketplaceClient)
}

func (c *CompositionRoot) CreateGetFinancesQueryHandler() queries.GetFinancesQueryHandler {
	return queries.NewGetFinancesQueryHandler(c.ledgerStore, c.marketplaceClient)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSettleTransactionsCommandHandler(),
		c.config.SettlementSchedule,
		c.logger,
	)
}

package cmd

type Config struct {
	HTTPPort                 string
	MarketplaceAPIURL        string
	MarketplaceAPIToken      string
	NatsURL                  string
	NatsClusterID            string
	NatsClientID             string
	NatsNotificationsSubject string
	NatsOrdersSubject        string
	SettlementSchedule       string
}

package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iinboxrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/imenurepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/isettingsrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iuow"
	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	inboxrepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/inbox/postgres"
	menurepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/menu/postgres"
	outboxrepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/outbox/postgres"
	settingsrepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/settings/postgres"
	"github.com/corray333/backend-labs/storefront/internal/dal/uow"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/corray333/backend-labs/storefront/internal/service/payment/mock"
	"github.com/corray333/backend-labs/storefront/internal/service/payment/stripe"
	"github.com/spf13/viper"
)

// storage groups the repositories selected by storage.driver.
type storage struct {
	menu     imenurepo.IMenuRepository
	settings isettingsrepo.ISettingsRepository
	uow      iuow.Factory
	outbox   ioutboxrepo.IOutboxRepository
	inbox    iinboxrepo.IInboxRepository

	// nil for the memory driver
	postgres *postgres.Client
}

func mustNewStorage() storage {
	switch driver := strings.ToLower(viper.GetString("storage.driver")); driver {
	case "", "memory":
		store := memory.MustNewStore(memory.WithFile(viper.GetString("storage.memory.file")))

		return storage{
			menu:     store.Menu(),
			settings: store.Settings(),
			uow:      store.UnitOfWorkFactory(),
			outbox:   store.Outbox(),
			inbox:    store.Inbox(),
		}
	case "postgres":
		client := postgres.MustNewClient()

		return storage{
			menu:     menurepo.NewPostgresMenuRepository(client.Pool()),
			settings: settingsrepo.NewPostgresSettingsRepository(client.Pool()),
			uow:      uow.Factory(client),
			outbox:   outboxrepo.NewOutboxRepository(client.DB()),
			inbox:    inboxrepo.NewInboxRepository(client.DB()),
			postgres: client,
		}
	default:
		panic(fmt.Sprintf("unknown storage driver %q", driver))
	}
}

func (s storage) Close() error {
	if s.postgres == nil {
		return nil
	}

	return s.postgres.Close()
}

func mustNewGateway() payment.Gateway {
	switch gateway := strings.ToLower(viper.GetString("payment.gateway")); gateway {
	case "", "mock":
		successRate := 1.0
		if viper.IsSet("payment.mock.success_rate") {
			successRate = viper.GetFloat64("payment.mock.success_rate")
		}

		return mock.New(
			mock.WithSuccessRate(successRate),
			mock.WithSeed(viper.GetUint64("payment.mock.seed")),
			mock.WithDelay(time.Duration(viper.GetInt("payment.mock.delay_ms"))*time.Millisecond),
		)
	case "stripe":
		secretKey := os.Getenv("STRIPE_SECRET_KEY")
		if secretKey == "" {
			panic("STRIPE_SECRET_KEY is required for the stripe payment gateway")
		}

		return stripe.NewGateway(secretKey, viper.GetString("payment.stripe.return_url"))
	default:
		panic(fmt.Sprintf("unknown payment gateway %q", gateway))
	}
}

package services

import (
	"github.com/ghuser/beantrail/pkg/app"
	"github.com/ghuser/beantrail/pkg/cache"
	"github.com/ghuser/beantrail/services/supplychain/domain/events"
	"github.com/ghuser/beantrail/services/supplychain/domain/repositories"
	"github.com/ghuser/beantrail/services/supplychain/infrastructure/notify"
	"github.com/ghuser/beantrail/services/supplychain/infrastructure/persistence/memory"
	"github.com/ghuser/beantrail/services/supplychain/infrastructure/persistence/postgres"
	"github.com/ghuser/beantrail/services/supplychain/metrics"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Chain    *ChainService
	Fetch    *FetchService
	Registry *RegistryService
	Accounts *AccountService

	// Notifier is the in-process observer hub; callers subscribe for
	// transition events delivered inside this process.
	Notifier *notify.GoChannel
}

// New wires all supplychain application services with infrastructure from the
// Application container. With a database the PostgreSQL stores back the
// ledger; without one (tests, single-process runs) the memory stores do.
func New(a *app.Application) *Services {
	local := notify.NewGoChannel(a.Logger)
	sinks := []events.Notifier{local}
	if a.EventBus != nil {
		sinks = append(sinks, notify.NewBus(a.EventBus))
	}
	notifier := notify.NewFanout(a.Logger, sinks...)

	var itemCache *cache.ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	var (
		items    = itemRepo(a)
		roles    = roleRepo(a)
		accounts = accountRepo(a)
	)

	return &Services{
		Chain:    NewChainService(items, roles, accounts, notifier, itemCache, metrics.New(), a.Logger),
		Fetch:    NewFetchService(items, itemCache),
		Registry: NewRegistryService(roles),
		Accounts: NewAccountService(accounts),
		Notifier: local,
	}
}

func itemRepo(a *app.Application) repositories.ItemRepository {
	if a.Db != nil {
		return postgres.NewItemRepository(a.Db)
	}
	return memory.NewItemStore()
}

func roleRepo(a *app.Application) repositories.RoleRegistry {
	if a.Db != nil {
		return postgres.NewRoleRepository(a.Db)
	}
	return memory.NewRoleStore()
}

func accountRepo(a *app.Application) repositories.AccountStore {
	if a.Db != nil {
		return postgres.NewAccountRepository(a.Db)
	}
	return memory.NewAccountStore()
}

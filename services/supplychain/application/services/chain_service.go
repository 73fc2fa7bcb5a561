package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/beantrail/pkg/cache"
	"github.com/ghuser/beantrail/pkg/logger"
	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
	"github.com/ghuser/beantrail/services/supplychain/domain/events"
	"github.com/ghuser/beantrail/services/supplychain/domain/models"
	"github.com/ghuser/beantrail/services/supplychain/domain/repositories"
	domainsvcs "github.com/ghuser/beantrail/services/supplychain/domain/services"
	"github.com/ghuser/beantrail/services/supplychain/metrics"
)

// ChainService executes lifecycle transitions against the item ledger.
// Every transition is one atomic check-then-act unit under a per-UPC lock:
// load → role guard → state/owner guard → (buy only: escrow settlement) →
// commit the listed mutations → emit one event. A failed guard aborts with
// zero mutation and no event; callers retry at a higher layer if they wish.
type ChainService struct {
	items    repositories.ItemRepository
	roles    repositories.RoleRegistry
	accounts repositories.AccountStore
	notifier events.Notifier
	cache    *pkgcache.ItemCache
	metrics  *metrics.Metrics
	log      logger.Logger
	locks    upcLocks
}

// NewChainService wires the transition executor with its collaborators.
// notifier, cache, and m may be nil; the corresponding step is skipped.
func NewChainService(
	items repositories.ItemRepository,
	roles repositories.RoleRegistry,
	accounts repositories.AccountStore,
	notifier events.Notifier,
	itemCache *pkgcache.ItemCache,
	m *metrics.Metrics,
	log logger.Logger,
) *ChainService {
	return &ChainService{
		items:    items,
		roles:    roles,
		accounts: accounts,
		notifier: notifier,
		cache:    itemCache,
		metrics:  m,
		log:      log,
	}
}

// Harvest creates the item record in state Harvested with the farmer as owner.
// Creation is open: the farmer does not need to be registered yet — later
// transitions are where farmer membership is enforced.
func (s *ChainService) Harvest(ctx context.Context, p models.HarvestParams) (item *models.Item, err error) {
	defer s.observe("Harvested", time.Now(), &err)

	unlock := s.locks.lock(p.UPC)
	defer unlock()

	item, err = models.NewItem(p)
	if err != nil {
		return nil, fmt.Errorf("harvest: %w", err)
	}
	if _, err = s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.afterCommit(ctx, item, p.FarmerID)
	return item, nil
}

// Process advances Harvested → Processed; the caller must be the owning,
// registered farmer.
func (s *ChainService) Process(ctx context.Context, upc uint64, actor uuid.UUID) (*models.Item, error) {
	return s.transition(ctx, "Processed", upc, actor, models.RoleFarmer, func(it *models.Item) error {
		return it.Process(actor)
	})
}

// Pack advances Processed → Packed; the caller must be the owning,
// registered farmer.
func (s *ChainService) Pack(ctx context.Context, upc uint64, actor uuid.UUID) (*models.Item, error) {
	return s.transition(ctx, "Packed", upc, actor, models.RoleFarmer, func(it *models.Item) error {
		return it.Pack(actor)
	})
}

// Sell advances Packed → ForSale and records the immutable asking price.
func (s *ChainService) Sell(ctx context.Context, upc uint64, actor uuid.UUID, price uint64) (*models.Item, error) {
	return s.transition(ctx, "ForSale", upc, actor, models.RoleFarmer, func(it *models.Item) error {
		return it.Sell(actor, price)
	})
}

// Buy advances ForSale → Sold. Settlement runs strictly before the ownership
// commit: exactly the recorded price moves from the paying distributor to the
// current owner (the farmer), and the refund amountSent − price is returned.
// If settlement fails the item is untouched; if the commit fails after
// settlement, the payment is compensated back before the error is returned.
func (s *ChainService) Buy(ctx context.Context, upc uint64, actor uuid.UUID, amountSent uint64) (item *models.Item, refund uint64, err error) {
	defer s.observe("Sold", time.Now(), &err)

	unlock := s.locks.lock(upc)
	defer unlock()

	if err = s.requireRole(ctx, models.RoleDistributor, actor); err != nil {
		return nil, 0, err
	}

	item, err = s.items.GetByUPC(ctx, upc)
	if err != nil {
		return nil, 0, err
	}
	if err = item.RequireState(models.StateForSale); err != nil {
		return nil, 0, err
	}

	payee := item.OwnerID
	refund, err = domainsvcs.Settle(ctx, s.accounts, actor, payee, amountSent, item.Price)
	if err != nil {
		return nil, 0, err
	}

	if err = item.Buy(actor); err != nil {
		return nil, 0, err
	}
	if err = s.items.Update(ctx, item); err != nil {
		// Funds moved but the ownership commit failed; put the payment back
		// so the item never changes hands separately from its payment.
		if cErr := s.accounts.Transfer(ctx, payee, actor, item.Price); cErr != nil {
			s.log.ErrorContext(ctx, "settlement compensation failed",
				"upc", upc, "amount", item.Price, "error", cErr)
		}
		return nil, 0, fmt.Errorf("commit sold: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AddSettled(item.Price)
	}
	s.afterCommit(ctx, item, actor)
	return item, refund, nil
}

// Ship advances Sold → Shipped; the caller must be the owning, registered
// distributor.
func (s *ChainService) Ship(ctx context.Context, upc uint64, actor uuid.UUID) (*models.Item, error) {
	return s.transition(ctx, "Shipped", upc, actor, models.RoleDistributor, func(it *models.Item) error {
		return it.Ship(actor)
	})
}

// Receive advances Shipped → Received; any registered retailer takes custody.
func (s *ChainService) Receive(ctx context.Context, upc uint64, actor uuid.UUID) (*models.Item, error) {
	return s.transition(ctx, "Received", upc, actor, models.RoleRetailer, func(it *models.Item) error {
		return it.Receive(actor)
	})
}

// Purchase advances Received → Purchased, the terminal state; any registered
// consumer takes custody.
func (s *ChainService) Purchase(ctx context.Context, upc uint64, actor uuid.UUID) (*models.Item, error) {
	return s.transition(ctx, "Purchased", upc, actor, models.RoleConsumer, func(it *models.Item) error {
		return it.Purchase(actor)
	})
}

// transition runs one guarded step: role first, then the aggregate's own
// state/owner guard inside apply. Nothing is written and no event is emitted
// unless every guard passes.
func (s *ChainService) transition(
	ctx context.Context,
	name string,
	upc uint64,
	actor uuid.UUID,
	role models.Role,
	apply func(*models.Item) error,
) (item *models.Item, err error) {
	defer s.observe(name, time.Now(), &err)

	unlock := s.locks.lock(upc)
	defer unlock()

	if err = s.requireRole(ctx, role, actor); err != nil {
		return nil, err
	}

	item, err = s.items.GetByUPC(ctx, upc)
	if err != nil {
		return nil, err
	}

	if err = apply(item); err != nil {
		return nil, err
	}

	if err = s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("commit %s: %w", name, err)
	}

	s.afterCommit(ctx, item, actor)
	return item, nil
}

func (s *ChainService) requireRole(ctx context.Context, role models.Role, actor uuid.UUID) error {
	ok, err := s.roles.Has(ctx, role, actor)
	if err != nil {
		return fmt.Errorf("role check: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s membership required", supplydomain.ErrUnauthorized, role)
	}
	return nil
}

// afterCommit runs once the ledger mutation is durable: drop the stale cache
// entry, then emit the transition event. Neither step can fail the transition.
func (s *ChainService) afterCommit(ctx context.Context, item *models.Item, actor uuid.UUID) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, item.UPC); err != nil {
			s.log.WarnContext(ctx, "cache invalidation failed", "upc", item.UPC, "error", err)
		}
	}
	if s.notifier != nil {
		evt := events.NewTransitionEvent(item, actor)
		if err := s.notifier.Emit(ctx, evt); err != nil {
			s.log.ErrorContext(ctx, "event emission failed",
				"event", evt.Name, "upc", evt.UPC, "error", err)
		}
	}
}

func (s *ChainService) observe(name string, start time.Time, err *error) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(name, start, *err)
	}
}

// upcLocks serializes transitions per UPC. Whichever caller wins the lock
// executes first; the loser observes the advanced state and its guard fails
// predictably. Guard failures return immediately — no retry, no queueing.
type upcLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func (l *upcLocks) lock(upc uint64) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uint64]*sync.Mutex)
	}
	m, ok := l.locks[upc]
	if !ok {
		m = &sync.Mutex{}
		l.locks[upc] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

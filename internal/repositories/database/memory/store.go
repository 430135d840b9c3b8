// Package memory implements the repository ports over mutex-guarded
// in-memory collections. It favors clarity over performance: collections
// are small slices kept in insertion order, which is the ordering contract
// for unsorted listings.
//
// A Store is an explicit handle constructed per process or per test case;
// there is no package-level singleton, so parallel tests each get isolated
// state.
package memory

import (
	"sync"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// Store holds every in-memory collection plus the change log behind one
// RWMutex. Mutations take the write lock for their full duration, which
// serializes them; readers observe either the pre- or post-mutation state,
// never a partially merged one.
type Store struct {
	mu sync.RWMutex

	properties    []domain.Property
	prospects     []domain.Prospect
	opportunities []domain.Opportunity
	offers        []domain.Offer
	visits        []domain.Visit
	agents        []domain.Agent
	templates     []domain.MessageTemplate

	changes      []domain.ChangeRecord
	nextChangeID int64

	clock func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the store's time source. Tests use this to make
// timestamps deterministic.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore creates an empty store handle.
func NewStore(options ...StoreOption) *Store {
	s := &Store{
		nextChangeID: 1,
		clock:        time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.clock()
}

// NewRepositoryProvider wires every memory repository around one shared
// store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PropertyRepo:    NewPropertyRepository(store),
		ProspectRepo:    NewProspectRepository(store),
		OpportunityRepo: NewOpportunityRepository(store),
		OfferRepo:       NewOfferRepository(store),
		VisitRepo:       NewVisitRepository(store),
		AgentRepo:       NewAgentRepository(store),
		TemplateRepo:    NewTemplateRepository(store),
		ChangeLogRepo:   NewChangeLogRepository(store),
	}
}

// paginate applies limit/offset semantics to a filtered result slice. A
// limit of zero means no limit.
func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

package memory

import (
	"context"
	"sort"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// ChangeLogRepository implements the append-only change log over the shared
// in-memory store. Records outlive the entities they reference: deleting an
// entity leaves its history intact.
type ChangeLogRepository struct {
	store *Store
}

// NewChangeLogRepository creates a memory-backed change log repository.
func NewChangeLogRepository(store *Store) *ChangeLogRepository {
	return &ChangeLogRepository{store: store}
}

var _ portsrepo.ChangeLogRepositoryFacade = (*ChangeLogRepository)(nil)

// AppendChange assigns the next sequential identifier and stamps the
// timestamp from the store clock, overriding whatever the caller put in
// those fields. Identifier assignment and the append happen under one write
// lock, so ids are strictly increasing in insertion order even when
// timestamps collide.
func (r *ChangeLogRepository) AppendChange(_ context.Context, record domain.ChangeRecord) (*domain.ChangeRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	record.ChangeID = r.store.nextChangeID
	record.Timestamp = r.store.clock()
	r.store.nextChangeID++
	r.store.changes = append(r.store.changes, record)
	stored := record
	return &stored, nil
}

// ListChangesByEntity returns matching records most recent first: descending
// timestamp, descending id on timestamp ties. The sort is explicit rather
// than relying on append order, so the contract holds even when the store
// clock is not monotonic.
func (r *ChangeLogRepository) ListChangesByEntity(_ context.Context, entityType domain.EntityType, entityID int64) ([]domain.ChangeRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]domain.ChangeRecord, 0)
	for _, record := range r.store.changes {
		if record.EntityType == entityType && record.EntityID == entityID {
			matched = append(matched, record)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ChangeID > matched[j].ChangeID
	})
	return matched, nil
}

package repositories

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// ChangeLogAppender defines the single write operation on the change log.
type ChangeLogAppender interface {
	// AppendChange stores a new change record, assigning the next sequential
	// identifier and stamping the timestamp at call time. Caller-supplied
	// ChangeID and Timestamp values are ignored; records are immutable once
	// appended.
	AppendChange(ctx context.Context, record domain.ChangeRecord) (*domain.ChangeRecord, error)
}

// ChangeLogReader defines read operations on the change log.
type ChangeLogReader interface {
	// ListChangesByEntity retrieves every record referencing the entity,
	// most recent first: descending timestamp, descending identifier on
	// timestamp ties. This ordering is a documented contract relied on by
	// the history view.
	ListChangesByEntity(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.ChangeRecord, error)
}

// ChangeLogRepositoryFacade combines the change log interfaces.
type ChangeLogRepositoryFacade interface {
	ChangeLogAppender
	ChangeLogReader
}

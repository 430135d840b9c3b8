package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// ChangeRecorderSvc is the write side of the change log, used by the entity
// services. All methods resolve the acting agent's display name at append
// time and never fail the caller's operation silently.
type ChangeRecorderSvc interface {
	// RecordStateChange appends a state-change record for a stage or status
	// transition. Appending happens on every call, including transitions to
	// the current stage.
	RecordStateChange(ctx context.Context, entityType domain.EntityType, entityID int64, previous, next string, actorID int64) (*domain.ChangeRecord, error)

	// RecordFieldChange appends one record for a single tracked-field
	// change. Values must already be canonically formatted (see
	// domain.FormatAmount and domain.FormatTime).
	RecordFieldChange(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, previous, next string, actorID int64) (*domain.ChangeRecord, error)

	// RecordLifecycle appends a created/updated/deleted record with no
	// value pair.
	RecordLifecycle(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, actorID int64) (*domain.ChangeRecord, error)
}

// ChangeLogReaderSvc is the read side of the change log.
type ChangeLogReaderSvc interface {
	// AuditTrail returns every change record for the entity, most recent
	// first.
	AuditTrail(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.ChangeRecord, error)
}

// ChangeLogSvcFacade combines both sides of the change log service.
type ChangeLogSvcFacade interface {
	ChangeRecorderSvc
	ChangeLogReaderSvc
}

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	"github.com/vistahomes/real_estate_crm/internal/repositories/database/memory"
)

// fixedClock returns a clock stuck at one instant so every append gets the
// same timestamp and ordering falls back to identifiers.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestChangeLog_AppendAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewChangeLogRepository(store)

	// Caller-supplied id and timestamp must be ignored.
	first, err := repo.AppendChange(ctx, domain.ChangeRecord{
		ChangeID:   9999,
		EntityType: domain.EntityOffer,
		EntityID:   1,
		Action:     domain.ActionCreated,
		Timestamp:  time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	second, err := repo.AppendChange(ctx, domain.ChangeRecord{
		EntityType: domain.EntityOffer,
		EntityID:   1,
		Action:     domain.ActionDeleted,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ChangeID)
	assert.Equal(t, int64(2), second.ChangeID)
	assert.NotEqual(t, 1999, first.Timestamp.Year())
}

func TestChangeLog_ListMostRecentFirstOnTimestampTies(t *testing.T) {
	ctx := context.Background()
	instant := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(fixedClock(instant)))
	repo := memory.NewChangeLogRepository(store)

	for _, action := range []domain.ChangeAction{domain.ActionCreated, domain.ActionStateChange, domain.ActionDeleted} {
		_, err := repo.AppendChange(ctx, domain.ChangeRecord{
			EntityType: domain.EntityProperty,
			EntityID:   7,
			Action:     action,
		})
		require.NoError(t, err)
	}
	// A record for a different entity must not leak into the listing.
	_, err := repo.AppendChange(ctx, domain.ChangeRecord{
		EntityType: domain.EntityProperty,
		EntityID:   8,
		Action:     domain.ActionCreated,
	})
	require.NoError(t, err)

	records, err := repo.ListChangesByEntity(ctx, domain.EntityProperty, 7)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Same timestamp everywhere, so descending ids must break the tie.
	assert.Equal(t, domain.ActionDeleted, records[0].Action)
	assert.Equal(t, domain.ActionStateChange, records[1].Action)
	assert.Equal(t, domain.ActionCreated, records[2].Action)
	assert.True(t, records[0].ChangeID > records[1].ChangeID)
	assert.True(t, records[1].ChangeID > records[2].ChangeID)
}

func TestChangeLog_ListDescendingTimestampWithBackwardsClock(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	// Clock jumps backwards between appends, as after an NTP correction.
	instants := []time.Time{base, base.Add(-time.Hour), base.Add(time.Minute)}
	calls := 0
	store := memory.NewStore(memory.WithClock(func() time.Time {
		instant := instants[calls]
		calls++
		return instant
	}))
	repo := memory.NewChangeLogRepository(store)

	for range instants {
		_, err := repo.AppendChange(ctx, domain.ChangeRecord{
			EntityType: domain.EntityOffer,
			EntityID:   5,
			Action:     domain.ActionUpdated,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListChangesByEntity(ctx, domain.EntityOffer, 5)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Descending timestamps regardless of append order.
	assert.Equal(t, int64(3), records[0].ChangeID)
	assert.Equal(t, int64(1), records[1].ChangeID)
	assert.Equal(t, int64(2), records[2].ChangeID)
	assert.True(t, !records[0].Timestamp.Before(records[1].Timestamp))
	assert.True(t, !records[1].Timestamp.Before(records[2].Timestamp))
}

func TestChangeLog_HistoryOutlivesEntity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	offerRepo := memory.NewOfferRepository(store)
	changeRepo := memory.NewChangeLogRepository(store)

	stored, err := offerRepo.SaveOffer(ctx, domain.Offer{OpportunityID: 1, Stage: domain.OfferDraft})
	require.NoError(t, err)
	_, err = changeRepo.AppendChange(ctx, domain.ChangeRecord{
		EntityType: domain.EntityOffer,
		EntityID:   stored.OfferID,
		Action:     domain.ActionCreated,
	})
	require.NoError(t, err)

	require.NoError(t, offerRepo.DeleteOffer(ctx, stored.OfferID))

	records, err := changeRepo.ListChangesByEntity(ctx, domain.EntityOffer, stored.OfferID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestOpportunity_SaveAppendsToColumnBottom(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOpportunityRepository(store)

	a, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityNew})
	require.NoError(t, err)
	b, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityNew})
	require.NoError(t, err)
	c, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityQualified})
	require.NoError(t, err)

	assert.Equal(t, 0, a.BoardPosition)
	assert.Equal(t, 1, b.BoardPosition)
	// First card of its own column.
	assert.Equal(t, 0, c.BoardPosition)
	assert.Equal(t, int64(1), a.OpportunityID)
	assert.Equal(t, int64(2), b.OpportunityID)
	assert.Equal(t, int64(3), c.OpportunityID)
}

func TestOpportunity_MoveRepacksBothColumns(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOpportunityRepository(store)

	// NEW column: cards 1, 2, 3 at positions 0, 1, 2.
	for i := 0; i < 3; i++ {
		_, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityNew})
		require.NoError(t, err)
	}
	// QUALIFIED column: card 4 at position 0.
	_, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityQualified})
	require.NoError(t, err)

	// Move the middle NEW card to the head of QUALIFIED.
	moved, err := repo.MoveOpportunity(ctx, 2, domain.OpportunityQualified, 0, 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.OpportunityQualified, moved.Stage)
	assert.Equal(t, 0, moved.BoardPosition)

	// Source column closed the gap: card 3 slid from position 2 to 1.
	after, err := repo.FindOpportunityByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, after.BoardPosition)

	// Destination column shifted down: card 4 moved from 0 to 1.
	displaced, err := repo.FindOpportunityByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, displaced.BoardPosition)
}

func TestOpportunity_MoveClampsPositionToColumnEnd(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOpportunityRepository(store)

	_, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityNew})
	require.NoError(t, err)
	_, err = repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityQualified})
	require.NoError(t, err)

	moved, err := repo.MoveOpportunity(ctx, 1, domain.OpportunityQualified, 1<<30, 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, moved.BoardPosition)
}

func TestOpportunity_DeleteRepacksColumn(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOpportunityRepository(store)

	// NEW column: cards 1, 2, 3 at positions 0, 1, 2.
	for i := 0; i < 3; i++ {
		_, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityNew})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteOpportunity(ctx, 2))

	// The card above the deleted one slid down to keep positions contiguous.
	survivor, err := repo.FindOpportunityByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, survivor.BoardPosition)

	// A fresh insert lands below the survivors, not on top of one.
	created, err := repo.SaveOpportunity(ctx, domain.Opportunity{Stage: domain.OpportunityNew})
	require.NoError(t, err)
	assert.Equal(t, 2, created.BoardPosition)
	assert.NotEqual(t, survivor.BoardPosition, created.BoardPosition)
}

func TestOpportunity_MoveMissingCard(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOpportunityRepository(store)

	_, err := repo.MoveOpportunity(ctx, 404, domain.OpportunityNew, 0, 1, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProperty_DuplicateReferenceRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewPropertyRepository(store)

	_, err := repo.SaveProperty(ctx, domain.Property{Reference: "VH-0042", Title: "Sea view flat"})
	require.NoError(t, err)

	// Listing codes are customer facing; comparison is case-insensitive.
	_, err = repo.SaveProperty(ctx, domain.Property{Reference: "vh-0042", Title: "Other flat"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestAgent_DuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewAgentRepository(store)

	_, err := repo.SaveAgent(ctx, domain.Agent{Name: "Maria", Email: "maria@vistahomes.example"})
	require.NoError(t, err)

	_, err = repo.SaveAgent(ctx, domain.Agent{Name: "Imposter", Email: "MARIA@vistahomes.example"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestAgent_DeactivateClearsActiveFlag(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewAgentRepository(store)

	stored, err := repo.SaveAgent(ctx, domain.Agent{Name: "Maria", Email: "maria@vistahomes.example", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, repo.DeactivateAgent(ctx, stored.AgentID, 1, time.Now()))

	after, err := repo.FindAgentByID(ctx, stored.AgentID)
	require.NoError(t, err)
	assert.False(t, after.IsActive)
}

func TestOffer_ListByOpportunityKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOfferRepository(store)

	for _, opp := range []int64{42, 42, 7, 42} {
		_, err := repo.SaveOffer(ctx, domain.Offer{OpportunityID: opp, Stage: domain.OfferDraft})
		require.NoError(t, err)
	}

	opportunityID := int64(42)
	offers, err := repo.ListOffers(ctx, portsrepo.OfferFilter{OpportunityID: &opportunityID})
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, int64(1), offers[0].OfferID)
	assert.Equal(t, int64(2), offers[1].OfferID)
	assert.Equal(t, int64(4), offers[2].OfferID)
}

func TestOffer_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewOfferRepository(store)

	err := repo.DeleteOffer(ctx, 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

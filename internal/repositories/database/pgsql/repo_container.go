package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository over a shared
// connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PropertyRepo:    newPgxPropertyRepository(dbPool),
		ProspectRepo:    newPgxProspectRepository(dbPool),
		OpportunityRepo: newPgxOpportunityRepository(dbPool),
		OfferRepo:       newPgxOfferRepository(dbPool),
		VisitRepo:       newPgxVisitRepository(dbPool),
		AgentRepo:       newPgxAgentRepository(dbPool),
		TemplateRepo:    newPgxTemplateRepository(dbPool),
		ChangeLogRepo:   newPgxChangeLogRepository(dbPool),
	}
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PropertyRepo    PropertyRepositoryFacade
	ProspectRepo    ProspectRepositoryFacade
	OpportunityRepo OpportunityRepositoryFacade
	OfferRepo       OfferRepositoryFacade
	VisitRepo       VisitRepositoryFacade
	AgentRepo       AgentRepositoryFacade
	TemplateRepo    TemplateRepositoryFacade
	ChangeLogRepo   ChangeLogRepositoryFacade
}

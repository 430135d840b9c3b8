package services

import (
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/platform/config"
	"github.com/vistahomes/real_estate_crm/internal/platform/metrics"
)

// NewServiceContainer wires every service over the repository provider. The
// change log service is constructed first because every entity service
// records through it. m may be nil in tests.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	changeLog := NewChangeLogService(repos.ChangeLogRepo, repos.AgentRepo, WithChangeLogMetrics(m))

	return &portssvc.ServiceContainer{
		Property:    NewPropertyService(repos.PropertyRepo, changeLog, WithPropertyMetrics(m)),
		Prospect:    NewProspectService(repos.ProspectRepo, changeLog, WithProspectMetrics(m)),
		Opportunity: NewOpportunityService(repos.OpportunityRepo, repos.ProspectRepo, repos.PropertyRepo, changeLog, WithOpportunityMetrics(m)),
		Offer:       NewOfferService(repos.OfferRepo, repos.OpportunityRepo, changeLog, WithOfferMetrics(m)),
		Visit:       NewVisitService(repos.VisitRepo, repos.OpportunityRepo, changeLog, WithVisitMetrics(m)),
		Agent:       NewAgentService(repos.AgentRepo),
		Template:    NewTemplateService(repos.TemplateRepo),
		ChangeLog:   changeLog,
		Auth:        NewAuthService(repos.AgentRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}

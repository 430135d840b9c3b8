package domain

// ProspectStatus is the closed set of qualification states for a prospect.
type ProspectStatus string

const (
	ProspectNew       ProspectStatus = "NEW"
	ProspectContacted ProspectStatus = "CONTACTED"
	ProspectQualified ProspectStatus = "QUALIFIED"
	ProspectDiscarded ProspectStatus = "DISCARDED"
)

// ProspectStatuses lists every valid prospect status.
var ProspectStatuses = []ProspectStatus{
	ProspectNew,
	ProspectContacted,
	ProspectQualified,
	ProspectDiscarded,
}

// ValidProspectStatus reports whether s belongs to the prospect status
// enumeration.
func ValidProspectStatus(s ProspectStatus) bool {
	for _, v := range ProspectStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Prospect represents a potential buyer or seller before an opportunity is
// opened for them.
type Prospect struct {
	ProspectID  int64          `json:"prospectID"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Source      string         `json:"source"` // e.g. portal, referral, walk-in
	Status      ProspectStatus `json:"status"`
	AgentID     int64          `json:"agentID"` // Assigned agent, FK -> agents.agent_id
	Observation string         `json:"observation"`
	AuditFields
}

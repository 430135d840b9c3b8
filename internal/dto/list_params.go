package dto

// ListOffersParams defines query parameters for listing offers.
type ListOffersParams struct {
	OpportunityID *int64  `form:"opportunityID"`
	AgentID       *int64  `form:"agentID"`
	Stage         *string `form:"stage"`
	Limit         int     `form:"limit,default=50"`
	Offset        int     `form:"offset,default=0"`
}

// ListOpportunitiesParams defines query parameters for listing
// opportunities.
type ListOpportunitiesParams struct {
	ProspectID *int64  `form:"prospectID"`
	PropertyID *int64  `form:"propertyID"`
	AgentID    *int64  `form:"agentID"`
	Stage      *string `form:"stage"`
	Limit      int     `form:"limit,default=50"`
	Offset     int     `form:"offset,default=0"`
}

// ListPropertiesParams defines query parameters for listing properties.
type ListPropertiesParams struct {
	AgentID *int64  `form:"agentID"`
	Status  *string `form:"status"`
	City    *string `form:"city"`
	Limit   int     `form:"limit,default=50"`
	Offset  int     `form:"offset,default=0"`
}

// ListProspectsParams defines query parameters for listing prospects.
type ListProspectsParams struct {
	AgentID *int64  `form:"agentID"`
	Status  *string `form:"status"`
	Limit   int     `form:"limit,default=50"`
	Offset  int     `form:"offset,default=0"`
}

// ListVisitsParams defines query parameters for listing visits.
type ListVisitsParams struct {
	OpportunityID *int64  `form:"opportunityID"`
	PropertyID    *int64  `form:"propertyID"`
	AgentID       *int64  `form:"agentID"`
	Status        *string `form:"status"`
	Limit         int     `form:"limit,default=50"`
	Offset        int     `form:"offset,default=0"`
}

// ListTemplatesParams defines query parameters for listing message
// templates.
type ListTemplatesParams struct {
	ActiveOnly bool `form:"activeOnly"`
	Limit      int  `form:"limit,default=50"`
	Offset     int  `form:"offset,default=0"`
}

// ListParams defines generic limit/offset query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

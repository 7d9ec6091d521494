package models

// StatusClosed is the one claim status that means a claim is settled.
// Every other status value ("Open", "In Review", ...) counts as open.
const StatusClosed = "Closed"

// EnglishSentinel marks an agent with no secondary language of interest.
const EnglishSentinel = "English"

type Disaster struct {
	ID           int     `json:"id"`
	State        string  `json:"state"` // full state/territory name
	DeclaredDate Date    `json:"declared_date"`
	EndDate      Date    `json:"end_date"`
	RadiusMiles  float64 `json:"radius_miles"` // impact-area radius
}

type Claim struct {
	ID                     int     `json:"id"`
	DisasterID             int     `json:"disaster_id"`              // may dangle, not enforced
	AgentAssignedID        int     `json:"agent_assigned_id"`        // may dangle, not enforced
	ClaimHandlerAssignedID int     `json:"claim_handler_assigned_id"` // unvalidated
	Status                 string  `json:"status"`
	EstimateCost           float64 `json:"estimate_cost"`
	SeverityRating         int     `json:"severity_rating"` // 1-10
}

type Agent struct {
	ID                int    `json:"id"`
	State             string `json:"state"`
	SecondaryLanguage string `json:"secondary_language"`
}

// ClaimHandler is loaded alongside the other collections but no query
// consults it.
type ClaimHandler struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Dataset bundles the collections the loader hands to the engine. Everything
// in it is treated as immutable after load.
type Dataset struct {
	Disasters     []Disaster
	Claims        []Claim
	Agents        []Agent
	ClaimHandlers []ClaimHandler
}

// Closed reports whether the claim has been settled.
func (c *Claim) Closed() bool {
	return c.Status == StatusClosed
}

package domain

// IncidentDescription holds the three parts of a normalized trader-error
// note before final assembly. Built fresh per invocation, never persisted.
type IncidentDescription struct {
	EventMarket []string
	Cause       string
	Action      string
}

package trip_models

type ReplyKind string

const (
	ReplyText    ReplyKind = "text"
	ReplyTrip    ReplyKind = "trip"
	ReplyLodging ReplyKind = "lodging"
)

// Outcome names the terminal state a request reached.
type Outcome string

const (
	OutcomeAnswered           Outcome = "answered"
	OutcomeLocationMissing    Outcome = "location_missing"
	OutcomeLocationUnresolved Outcome = "location_unresolved"
	OutcomePlanMalformed      Outcome = "plan_malformed"
	OutcomeUnexpectedFailure  Outcome = "unexpected_failure"
)

type LodgingDisplay struct {
	Location ResolvedLocation        `json:"location"`
	Hotels   ProviderResult[Lodging] `json:"hotels"`
	Advice   string                  `json:"advice"`
}

type Reply struct {
	Kind    ReplyKind       `json:"kind"`
	Intent  Intent          `json:"intent"`
	Outcome Outcome         `json:"outcome"`
	Text    string          `json:"text,omitempty"`
	Trip    *TripPlan       `json:"trip,omitempty"`
	Lodging *LodgingDisplay `json:"lodging,omitempty"`
}

func TextReply(intent Intent, outcome Outcome, text string) Reply {
	return Reply{Kind: ReplyText, Intent: intent, Outcome: outcome, Text: text}
}

type ConversationTurn struct {
	Query    Query `json:"query"`
	Response Reply `json:"response"`
}

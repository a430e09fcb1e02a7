package trip_models

type Intent string

const (
	IntentGreeting              Intent = "greeting"
	IntentNonTravel             Intent = "non_travel"
	IntentTripPlanning          Intent = "trip_planning"
	IntentLodgingQuery          Intent = "lodging_query"
	IntentGeneralTravelQuestion Intent = "general_travel_question"
)

func (i Intent) String() string {
	return string(i)
}

package services

import (
	"fmt"
	"strings"

	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

// Generation presets. Structured replies run cooler so the JSON stays on schema.
var (
	planOptions   = utils.GenerateOptions{JSON: true, Temperature: 0.4, MaxTokens: 8192}
	listOptions   = utils.GenerateOptions{Temperature: 0.5, MaxTokens: 2048}
	guideOptions  = utils.GenerateOptions{JSON: true, Temperature: 0.5, MaxTokens: 2048}
	adviceOptions = utils.GenerateOptions{Temperature: 0.8, MaxTokens: 512}
)

const WelcomeText = `Hello! I'm your travel assistant.

I can help you with:
• Detailed trip itineraries
• Hotels and accommodation
• Local restaurants
• Travel questions and destination insights

Try asking:
• "Plan a 3 day trip to Paris"
• "Best places to visit in Tokyo"
• "What to eat in Italy"
• "Hotels in New York"

What would you like to know?`

const GreetingText = `Hello! Ready to plan an adventure?

Tell me:
• Where would you like to go?
• How many days do you want to stay?

Or ask me anything about destinations, hotels, food or travel tips.`

const NonTravelText = `I'm built to help with travel planning.

I can assist you with:
• Planning detailed trip itineraries
• Finding hotels and restaurants
• Destination recommendations and tips
• Travel advice and budgeting
• Local attractions and activities

For example:
• "Plan a 3 day trip to Paris"
• "Best places to visit in Japan"
• "What's the best time to visit Bali?"
• "Cheap hotels in London"

What destination would you like to explore?`

const ApologyText = `Oops! Something went wrong.

Please try:
• Rephrasing your question
• Being more specific
• Asking a different question

I'm here to help!`

const (
	friendlyEmptyText    = "I'd be happy to help with that! Could you share a bit more about what you're looking for?"
	friendlyFallbackText = "I'm here to help with your travel questions! What would you like to know?"
)

var locationExamples = map[trip_models.Intent][]string{
	trip_models.IntentTripPlanning: {
		"Plan a 3 day trip to Paris",
		"Create 5 day itinerary for Tokyo",
		"Make a 7 day trip to Bali",
	},
	trip_models.IntentLodgingQuery: {
		"Hotels in Paris",
		"Best accommodations in Tokyo",
		"Cheap stays in Bali",
	},
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "• \"%s\"\n", it)
	}
	return b.String()
}

func LocationMissingText(intent trip_models.Intent) string {
	subject := "your destination"
	if intent == trip_models.IntentLodgingQuery {
		subject = "your destination for hotel recommendations"
	}
	return fmt.Sprintf("I couldn't identify %s.\n\nPlease try formats like:\n%s\nWhat destination interests you?",
		subject, bulletList(locationExamples[intent]))
}

func LocationUnresolvedText(intent trip_models.Intent, location string) string {
	if intent == trip_models.IntentLodgingQuery {
		return fmt.Sprintf("I couldn't find %q on the map.\n\nPossible issues:\n• The name might be misspelled\n• Try being more specific (e.g. \"Paris, France\")\n\nYou can also try:\n%s",
			location, bulletList([]string{"Accommodations in " + location, "Places to stay in " + location}))
	}
	return fmt.Sprintf("I couldn't find %q on the map.\n\nPossible issues:\n• The name might be misspelled\n• Try being more specific (e.g. \"Paris, France\")\n\nYou can also try:\n%s",
		location, bulletList([]string{"Best places in " + location, "What to do in " + location, "Guide to " + location}))
}

func PlanMalformedText(location string) string {
	return fmt.Sprintf("I ran into a problem putting together your trip to %s.\n\nPlease try again, or rephrase the request, for example:\n%s",
		location, bulletList([]string{"Plan a 3 day trip to " + location, "Best places in " + location}))
}

func LodgingAdviceFallback(location string) string {
	return fmt.Sprintf("Here are some great hotel options in %s!", location)
}

func tripPrompt(location string, params trip_models.TripParameters, attractions []trip_models.Attraction, hotels []trip_models.Lodging) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert travel planner. Create a detailed %d-day itinerary for %s.\n\n", params.DurationDays, location)
	if params.Query != "" {
		fmt.Fprintf(&b, "USER REQUEST: %q\n", params.Query)
	}
	if params.Budget != "" {
		fmt.Fprintf(&b, "BUDGET: %s\n", params.Budget)
	}
	if params.Travelers != "" {
		fmt.Fprintf(&b, "TRAVELERS: %s\n", params.Travelers)
	}
	if len(attractions) > 0 {
		names := make([]string, 0, len(attractions))
		for _, a := range attractions {
			names = append(names, a.Name)
		}
		fmt.Fprintf(&b, "KNOWN ATTRACTIONS (prefer these): %s\n", strings.Join(names, "; "))
	}
	if len(hotels) > 0 {
		names := make([]string, 0, len(hotels))
		for _, h := range hotels {
			names = append(names, h.Name)
		}
		fmt.Fprintf(&b, "KNOWN HOTELS: %s\n", strings.Join(names, "; "))
	}

	fmt.Fprintf(&b, `
INSTRUCTIONS:
1. Return ONLY valid JSON, no text before or after.
2. Include exactly %d days with 3-5 places per day.
3. Use real, well-known places in %s with realistic coordinates, pricing and timing.
4. Include 3 hotel options and 3 restaurant options.

JSON STRUCTURE:
{
  "itinerary": [
    {
      "day": 1,
      "plan": [
        {
          "placeName": "Real attraction name",
          "placeDetails": "80-120 word description with practical tips",
          "placeImageUrl": null,
          "ticketPricing": "Price range, 'Free' or 'Varies'",
          "rating": "4.5",
          "time": "Morning/Afternoon/Evening",
          "lat": 0.0,
          "lon": 0.0
        }
      ]
    }
  ],
  "hotelOptions": [
    {"hotelName": "", "hotelAddress": "", "price": "", "rating": "4.5", "description": "", "hotelImageUrl": null, "lat": 0.0, "lon": 0.0}
  ],
  "restaurantOptions": [
    {"restaurantName": "", "restaurantAddress": "", "price": "$$", "rating": "4.5", "description": "", "restaurantImageUrl": null, "lat": 0.0, "lon": 0.0}
  ]
}

Mix cultural, historical, recreational and food experiences, keep timing realistic and do not repeat similar attractions.`, params.DurationDays, location)
	return b.String()
}

func hotelFallbackPrompt(location string) string {
	return fmt.Sprintf(`Generate 3 realistic, well-known hotel recommendations for %s. Include a mix of budget, mid-range and luxury options.

Respond with ONLY a valid JSON array:
[
  {
    "hotelName": "Actual hotel name in %s",
    "hotelAddress": "Complete address",
    "price": "$100-200/night",
    "rating": "4.5",
    "description": "Brief description of amenities and location",
    "lat": 0.0,
    "lon": 0.0
  }
]`, location, location)
}

func restaurantFallbackPrompt(location string) string {
	return fmt.Sprintf(`Generate 3 realistic, popular restaurant recommendations for %s. Include variety in cuisine types.

Respond with ONLY a valid JSON array:
[
  {
    "restaurantName": "Actual restaurant name in %s",
    "restaurantAddress": "Complete address",
    "price": "$$",
    "rating": "4.5",
    "description": "Cuisine type and specialty dishes",
    "lat": 0.0,
    "lon": 0.0
  }
]`, location, location)
}

func attractionFallbackPrompt(location string) string {
	return fmt.Sprintf(`List 6 popular tourist attractions in %s.

Respond with ONLY a valid JSON array:
[
  {"placeName": "", "placeDetails": "One sentence description", "rating": "4.5", "lat": 0.0, "lon": 0.0}
]`, location)
}

func guidesPrompt(location trip_models.ResolvedLocation) string {
	return fmt.Sprintf(`Generate 4-5 local guide recommendations for %s at coordinates %.4f, %.4f. Each guide has guideName, guideDescription, guideContact, guideRating and guidePrice. Return only a valid JSON object with a "guides" array.`,
		location.DisplayName, location.Latitude, location.Longitude)
}

func friendlyPrompt(query string) string {
	return fmt.Sprintf(`You are a friendly, knowledgeable travel assistant. Answer this travel question naturally and helpfully:

%q

Guidelines:
- Be conversational and specific.
- Include practical tips where relevant.
- Keep it to 3-5 sentences, with bullet points only if they help.
- For destinations mention 2-3 specific highlights; for timing mention months or seasons; for food name actual dishes.`, query)
}

func hotelAdvicePrompt(location, query string) string {
	return fmt.Sprintf(`You are a hotel booking expert. Give helpful information about hotels in %s.

USER QUERY: %q

Cover the types of accommodation available, price ranges for different budgets, the best areas to stay, booking tips and any seasonal considerations. Keep it to 4-6 sentences and specific to %s.`, location, query, location)
}

var fallbackGuide = trip_models.Guide{
	Name:        "Local Expert Guide",
	Description: "Experienced local guide for personalized tours",
	Contact:     "Contact via app",
	Rating:      "4.5",
	Price:       "$50/hour",
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

func TestExplore_CombinesSourcesAndFallbacks(t *testing.T) {
	h := newHarness(t)
	h.dining.err = errProviderDown
	svc := NewExploreService(h.sources, h.enricher, zaptest.NewLogger(t))

	out, err := svc.Explore(context.Background(), " Rome ")
	require.NoError(t, err)

	assert.Equal(t, "Rome, Earth", out.Location.DisplayName)
	assert.Equal(t, trip_models.OriginPrimary, out.Hotels.Origin)

	assert.Equal(t, trip_models.OriginGeneratedFallback, out.Restaurants.Origin)
	require.Len(t, out.Restaurants.Items, 1)
	assert.Equal(t, "Da Enzo", out.Restaurants.Items[0].Name)

	assert.Equal(t, trip_models.OriginGeneratedFallback, out.Attractions.Origin)
	assert.Equal(t, "Pantheon", out.Attractions.Items[0].Name)
	assert.Equal(t, "https://img.test/Pantheon", out.Attractions.Items[0].ImageURL)

	require.Len(t, out.Guides, 1)
	assert.Equal(t, "Giulia", out.Guides[0].Name)
	assert.Equal(t, trip_models.FlexString("4.9"), out.Guides[0].Rating)
	assert.Equal(t, "https://img.test/Giulia_guide", out.Guides[0].ImageURL)
}

func TestExplore_GuideFallback(t *testing.T) {
	h := newHarness(t)
	h.generator.fail = map[string]error{"guides": errProviderDown}
	svc := NewExploreService(h.sources, h.enricher, zaptest.NewLogger(t))

	out, err := svc.Explore(context.Background(), "Rome")
	require.NoError(t, err)
	require.Len(t, out.Guides, 1)
	assert.Equal(t, "Local Expert Guide", out.Guides[0].Name)
}

func TestExplore_Errors(t *testing.T) {
	h := newHarness(t)
	svc := NewExploreService(h.sources, h.enricher, zaptest.NewLogger(t))

	_, err := svc.Explore(context.Background(), "")
	assert.ErrorIs(t, err, utils.ErrLocationMissing)

	h.geocoder.err = utils.ErrNoValidLocation
	_, err = svc.Explore(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, utils.ErrLocationUnresolved)
}

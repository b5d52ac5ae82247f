package lbc

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sharedSearchURL = "https://www.leboncoin.fr/recherche?category=9&text=maison" +
	"&locations=Paris__48.85994982004764_2.33801573723567_9256" +
	"&square=200-400&price=300000-700000"

func TestQueryFromURL(t *testing.T) {
	q, err := QueryFromURL(sharedSearchURL)
	require.NoError(t, err)

	require.Equal(t, "maison", q.Text)
	require.Equal(t, CategoryVentesImmobilieres, q.Category)
	require.Equal(t, SortRelevance, q.Sort)
	require.Equal(t, DefaultLimit, q.Limit)
	require.Equal(t, 0, q.Offset)

	require.Len(t, q.Locations, 1)
	city, ok := q.Locations[0].(City)
	require.True(t, ok)
	require.Equal(t, "Paris", city.Label)
	require.InDelta(t, 48.8599, city.Lat, 0.001)
	require.InDelta(t, 2.3380, city.Lng, 0.001)
	require.Equal(t, 9256, city.Radius)

	require.Equal(t, Range{Min: 200, Max: 400}, q.Ranges["square"])
	require.Equal(t, Range{Min: 300000, Max: 700000}, q.Ranges["price"])
}

func TestQueryFromURLDefaultsAndNoise(t *testing.T) {
	q, err := QueryFromURL("https://www.leboncoin.fr/recherche?text=velo" +
		"&locations=garbage,Lyon__45.75_4.85&square=big-small&shippable=true")
	require.NoError(t, err)

	require.Equal(t, "velo", q.Text)
	require.Equal(t, CategoryToutesCategories, q.Category)

	// the unparsable city token and the non-numeric range are dropped
	require.Len(t, q.Locations, 1)
	city := q.Locations[0].(City)
	require.Equal(t, "Lyon", city.Label)
	require.Equal(t, DefaultCityRadius, city.Radius)
	require.Empty(t, q.Ranges)
}

func TestQueryFromURLMalformed(t *testing.T) {
	_, err := QueryFromURL("https://www.leboncoin.fr/recherche?%zz")
	require.ErrorIs(t, err, ErrInvalidValue)
}

// Both construction paths must land on the same wire payload for an
// equivalent search.
func TestURLAndArgumentsProduceSamePayload(t *testing.T) {
	fromURL, err := QueryFromURL(sharedSearchURL)
	require.NoError(t, err)

	fromArgs, err := BuildQuery(SearchOptions{
		Text:     "maison",
		Category: "VENTES_IMMOBILIERES",
		Locations: []Location{City{
			Lat:    48.85994982004764,
			Lng:    2.33801573723567,
			Radius: 9256,
			Label:  "Paris",
		}},
		Ranges: map[string][]int{
			"square": {200, 400},
			"price":  {300000, 700000},
		},
	})
	require.NoError(t, err)

	urlPayload, err := fromURL.Payload()
	require.NoError(t, err)
	argsPayload, err := fromArgs.Payload()
	require.NoError(t, err)

	var urlDecoded, argsDecoded map[string]any
	require.NoError(t, json.Unmarshal(urlPayload, &urlDecoded))
	require.NoError(t, json.Unmarshal(argsPayload, &argsDecoded))
	require.Empty(t, cmp.Diff(urlDecoded, argsDecoded))
	require.Equal(t, string(argsPayload), string(urlPayload))
}

package lbc

import (
	"net/url"
	"strconv"
	"strings"
)

// parameters of the shared-URL grammar that are not range filters
var reservedParams = map[string]bool{
	"category":  true,
	"text":      true,
	"locations": true,
	"page":      true,
	"limit":     true,
	"sort":      true,
}

// QueryFromURL parses a human-shared search URL into the same canonical
// query the structured path produces. The grammar is the public
// query-string one: category, text, locations (comma-separated
// label__lat_lng_radius city tokens) and <name>=min-max range tokens.
// Unknown parameters are ignored.
func QueryFromURL(rawURL string) (*Query, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, invalidValue("malformed search url: %v", err)
	}
	params := parsed.Query()

	q := &Query{
		Text:     params.Get("text"),
		Category: CategoryToutesCategories,
		Sort:     SortRelevance,
		AdType:   AdTypeOffer,
		Limit:    DefaultLimit,
	}
	if c := params.Get("category"); c != "" {
		q.Category = Category(c)
	}
	if locs := params.Get("locations"); locs != "" {
		for _, token := range strings.Split(locs, ",") {
			city, ok := parseCityToken(token)
			if !ok {
				continue
			}
			q.Locations = append(q.Locations, city)
		}
	}

	for _, name := range sortedKeys(params) {
		if reservedParams[name] {
			continue
		}
		bounds, ok := parseRangeToken(params.Get(name))
		if !ok {
			continue
		}
		if q.Ranges == nil {
			q.Ranges = make(map[string]Range)
		}
		q.Ranges[name] = bounds
	}

	return q, nil
}

// parseCityToken decodes a compound city descriptor of the form
// "Paris__48.8599_2.3380_10000" (radius optional).
func parseCityToken(token string) (City, bool) {
	label, coords, found := strings.Cut(token, "__")
	if !found {
		return City{}, false
	}
	parts := strings.Split(coords, "_")
	if len(parts) < 2 {
		return City{}, false
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return City{}, false
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return City{}, false
	}
	radius := DefaultCityRadius
	if len(parts) >= 3 {
		radius, err = strconv.Atoi(parts[2])
		if err != nil {
			return City{}, false
		}
	}
	return City{Lat: lat, Lng: lng, Radius: radius, Label: label}, true
}

// parseRangeToken decodes a "min-max" pair like "200-400". Tokens that
// are not a two-element pair are dropped, same as the structured path.
func parseRangeToken(token string) (Range, bool) {
	minPart, maxPart, found := strings.Cut(token, "-")
	if !found {
		return Range{}, false
	}
	min, err := strconv.Atoi(minPart)
	if err != nil {
		return Range{}, false
	}
	max, err := strconv.Atoi(maxPart)
	if err != nil {
		return Range{}, false
	}
	return Range{Min: min, Max: max}, true
}

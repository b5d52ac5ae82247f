package lbc

import (
	"encoding/json"
	"sort"
)

// DefaultLimit is the page size used when the caller does not pick one.
const DefaultLimit = 35

// Range is an inclusive (min, max) bound for a numeric filter such as
// price or square.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Query is the canonical representation of a search, independent of
// whether it came from structured arguments or a shared URL. A Query is
// wire-ready: Payload renders it into the exact JSON the search endpoint
// expects.
type Query struct {
	Text      string
	Category  Category
	Sort      Sort
	Locations []Location
	Limit     int
	Offset    int
	AdType    AdType
	OwnerType OwnerType
	TitleOnly bool
	Ranges    map[string]Range
	Enums     map[string][]any
}

type categoryFilter struct {
	ID string `json:"id"`
}

type keywordFilter struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

type locationFilter struct {
	Locations []wireLocation `json:"locations"`
}

type searchFilters struct {
	Category *categoryFilter  `json:"category,omitempty"`
	Keywords *keywordFilter   `json:"keywords,omitempty"`
	Location *locationFilter  `json:"location,omitempty"`
	Ranges   map[string]Range `json:"ranges,omitempty"`
	Enums    map[string][]any `json:"enums,omitempty"`
}

type searchPayload struct {
	Filters   searchFilters `json:"filters"`
	Limit     int           `json:"limit"`
	Offset    int           `json:"offset"`
	SortBy    string        `json:"sort_by,omitempty"`
	SortOrder string        `json:"sort_order,omitempty"`
	OwnerType string        `json:"owner_type,omitempty"`
}

// Payload renders the query into the canonical search request body.
func (q *Query) Payload() ([]byte, error) {
	category := q.Category
	if category == "" {
		category = CategoryToutesCategories
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	filters := searchFilters{
		Category: &categoryFilter{ID: string(category)},
	}
	if q.Text != "" {
		filters.Keywords = &keywordFilter{Text: q.Text}
		if q.TitleOnly {
			filters.Keywords.Type = "subject"
		}
	}
	if len(q.Locations) > 0 {
		locs := make([]wireLocation, len(q.Locations))
		for i, l := range q.Locations {
			locs[i] = l.wire()
		}
		filters.Location = &locationFilter{Locations: locs}
	}
	if len(q.Ranges) > 0 {
		filters.Ranges = q.Ranges
	}

	enums := make(map[string][]any, len(q.Enums)+1)
	for name, values := range q.Enums {
		enums[name] = values
	}
	if q.AdType != "" {
		enums["ad_type"] = []any{string(q.AdType)}
	}
	if len(enums) > 0 {
		filters.Enums = enums
	}

	sortBy := q.Sort.By
	if sortBy == "" {
		sortBy = SortRelevance.By
	}

	return json.Marshal(searchPayload{
		Filters:   filters,
		Limit:     limit,
		Offset:    q.Offset,
		SortBy:    sortBy,
		SortOrder: q.Sort.Order,
		OwnerType: string(q.OwnerType),
	})
}

// SearchOptions are the structured arguments of a search. Names
// (category, sort, ad type, owner type) are resolved through the mapping
// tables with tolerant defaults; filter values are validated strictly.
type SearchOptions struct {
	Text      string
	Category  string
	Sort      string
	Locations []Location
	Page      int
	Limit     int
	AdType    string
	OwnerType string
	TitleOnly bool

	// Ranges maps a filter name to a (min, max) pair, e.g.
	// "square" -> [200, 400]. Anything other than a two-element pair
	// is ignored, matching the upstream behavior.
	Ranges map[string][]int

	// Enums maps a filter name to its accepted values. All values of
	// one filter must share a single type.
	Enums map[string][]any
}

// BuildQuery assembles a canonical query from structured arguments.
// It only fails on filter input that cannot be reconciled; unknown names
// fall back to their documented defaults.
func BuildQuery(opts SearchOptions) (*Query, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := &Query{
		Text:      opts.Text,
		Category:  ParseCategory(opts.Category),
		Sort:      ParseSort(opts.Sort),
		Locations: opts.Locations,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		AdType:    ParseAdType(opts.AdType),
		OwnerType: ParseOwnerType(opts.OwnerType),
		TitleOnly: opts.TitleOnly,
	}

	for _, name := range sortedKeys(opts.Ranges) {
		bounds := opts.Ranges[name]
		if len(bounds) != 2 {
			// the backend grammar only knows (min, max) pairs,
			// anything else is dropped
			continue
		}
		if q.Ranges == nil {
			q.Ranges = make(map[string]Range)
		}
		q.Ranges[name] = Range{Min: bounds[0], Max: bounds[1]}
	}

	for _, name := range sortedKeys(opts.Enums) {
		values := opts.Enums[name]
		if len(values) == 0 {
			continue
		}
		if err := checkEnumValues(name, values); err != nil {
			return nil, err
		}
		if q.Enums == nil {
			q.Enums = make(map[string][]any)
		}
		q.Enums[name] = values
	}

	return q, nil
}

// checkEnumValues enforces that all values of one enum filter share a
// single type. Mixing is a construction error, never a silent coercion.
func checkEnumValues(name string, values []any) error {
	kind := enumKind(values[0])
	if kind == "" {
		return invalidValue("enum filter %q has unsupported value %v", name, values[0])
	}
	for _, v := range values[1:] {
		k := enumKind(v)
		if k == "" {
			return invalidValue("enum filter %q has unsupported value %v", name, v)
		}
		if k != kind {
			return invalidValue("enum filter %q mixes %s and %s values", name, kind, k)
		}
	}
	return nil
}

func enumKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int, int32, int64, float64:
		return "integer"
	case bool:
		return "bool"
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

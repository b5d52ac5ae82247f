package lbc

import "strings"

// DefaultCityRadius is the search radius in meters when none is given.
const DefaultCityRadius = 10000

// Location is one alternative in a query's location filter. The backend
// accepts several at once with OR semantics.
type Location interface {
	wire() wireLocation
}

// wireLocation is the tagged union the search endpoint expects under
// filters.location.locations[].
type wireLocation struct {
	LocationType string    `json:"locationType"`
	Area         *wireArea `json:"area,omitempty"`
	City         string    `json:"city,omitempty"`
	RegionID     string    `json:"region_id,omitempty"`
	DepartmentID string    `json:"department_id,omitempty"`
}

type wireArea struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius int     `json:"radius"`
}

// City is a point-and-radius location. Label is optional display text.
type City struct {
	Lat    float64
	Lng    float64
	Radius int
	Label  string
}

func (c City) wire() wireLocation {
	radius := c.Radius
	if radius <= 0 {
		radius = DefaultCityRadius
	}
	return wireLocation{
		LocationType: "city",
		City:         c.Label,
		Area: &wireArea{
			Lat:    c.Lat,
			Lng:    c.Lng,
			Radius: radius,
		},
	}
}

// Region is an administrative region with its stable backend identifier.
type Region struct {
	ID   string
	Name string
}

func (r Region) wire() wireLocation {
	return wireLocation{
		LocationType: "region",
		RegionID:     r.ID,
	}
}

// Department is an administrative department. It carries the identifier
// of its parent region alongside its own.
type Department struct {
	RegionID   string
	RegionName string
	ID         string
	Name       string
}

func (d Department) wire() wireLocation {
	return wireLocation{
		LocationType: "department",
		RegionID:     d.RegionID,
		DepartmentID: d.ID,
	}
}

var (
	RegionAlsace              = Region{ID: "1", Name: "ALSACE"}
	RegionAquitaine           = Region{ID: "2", Name: "AQUITAINE"}
	RegionAuvergne            = Region{ID: "3", Name: "AUVERGNE"}
	RegionBasseNormandie      = Region{ID: "4", Name: "BASSE_NORMANDIE"}
	RegionBourgogne           = Region{ID: "5", Name: "BOURGOGNE"}
	RegionBretagne            = Region{ID: "6", Name: "BRETAGNE"}
	RegionCentre              = Region{ID: "7", Name: "CENTRE"}
	RegionChampagneArdenne    = Region{ID: "8", Name: "CHAMPAGNE_ARDENNE"}
	RegionCorse               = Region{ID: "9", Name: "CORSE"}
	RegionFrancheComte        = Region{ID: "10", Name: "FRANCHE_COMTE"}
	RegionHauteNormandie      = Region{ID: "11", Name: "HAUTE_NORMANDIE"}
	RegionIleDeFrance         = Region{ID: "12", Name: "ILE_DE_FRANCE"}
	RegionLanguedocRoussillon = Region{ID: "13", Name: "LANGUEDOC_ROUSSILLON"}
	RegionLimousin            = Region{ID: "14", Name: "LIMOUSIN"}
	RegionLorraine            = Region{ID: "15", Name: "LORRAINE"}
	RegionMidiPyrenees        = Region{ID: "16", Name: "MIDI_PYRENEES"}
	RegionNordPasDeCalais     = Region{ID: "17", Name: "NORD_PAS_DE_CALAIS"}
	RegionPaysDeLaLoire       = Region{ID: "18", Name: "PAYS_DE_LA_LOIRE"}
	RegionPicardie            = Region{ID: "19", Name: "PICARDIE"}
	RegionPoitouCharentes     = Region{ID: "20", Name: "POITOU_CHARENTES"}
	RegionPACA                = Region{ID: "21", Name: "PROVENCE_ALPES_COTE_D_AZUR"}
	RegionRhoneAlpes          = Region{ID: "22", Name: "RHONE_ALPES"}
)

var regionNames = map[string]Region{}

func init() {
	for _, r := range []Region{
		RegionAlsace, RegionAquitaine, RegionAuvergne, RegionBasseNormandie,
		RegionBourgogne, RegionBretagne, RegionCentre, RegionChampagneArdenne,
		RegionCorse, RegionFrancheComte, RegionHauteNormandie, RegionIleDeFrance,
		RegionLanguedocRoussillon, RegionLimousin, RegionLorraine,
		RegionMidiPyrenees, RegionNordPasDeCalais, RegionPaysDeLaLoire,
		RegionPicardie, RegionPoitouCharentes, RegionPACA, RegionRhoneAlpes,
	} {
		regionNames[r.Name] = r
	}
	for _, d := range departments {
		departmentNames[d.Name] = d
	}
}

// ParseRegion resolves a region name like "ILE_DE_FRANCE".
func ParseRegion(name string) (Region, bool) {
	r, ok := regionNames[strings.ToUpper(name)]
	return r, ok
}

var departments = []Department{
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "75", Name: "PARIS"},
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "77", Name: "SEINE_ET_MARNE"},
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "78", Name: "YVELINES"},
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "91", Name: "ESSONNE"},
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "92", Name: "HAUTS_DE_SEINE"},
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "93", Name: "SEINE_SAINT_DENIS"},
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "94", Name: "VAL_DE_MARNE"},
	{RegionID: "12", RegionName: "ILE_DE_FRANCE", ID: "95", Name: "VAL_D_OISE"},
	{RegionID: "2", RegionName: "AQUITAINE", ID: "33", Name: "GIRONDE"},
	{RegionID: "6", RegionName: "BRETAGNE", ID: "35", Name: "ILLE_ET_VILAINE"},
	{RegionID: "13", RegionName: "LANGUEDOC_ROUSSILLON", ID: "34", Name: "HERAULT"},
	{RegionID: "16", RegionName: "MIDI_PYRENEES", ID: "31", Name: "HAUTE_GARONNE"},
	{RegionID: "17", RegionName: "NORD_PAS_DE_CALAIS", ID: "59", Name: "NORD"},
	{RegionID: "18", RegionName: "PAYS_DE_LA_LOIRE", ID: "44", Name: "LOIRE_ATLANTIQUE"},
	{RegionID: "21", RegionName: "PROVENCE_ALPES_COTE_D_AZUR", ID: "13", Name: "BOUCHES_DU_RHONE"},
	{RegionID: "21", RegionName: "PROVENCE_ALPES_COTE_D_AZUR", ID: "06", Name: "ALPES_MARITIMES"},
	{RegionID: "22", RegionName: "RHONE_ALPES", ID: "69", Name: "RHONE"},
	{RegionID: "22", RegionName: "RHONE_ALPES", ID: "38", Name: "ISERE"},
}

var departmentNames = map[string]Department{}

// ParseDepartment resolves a department name like "PARIS".
func ParseDepartment(name string) (Department, bool) {
	d, ok := departmentNames[strings.ToUpper(name)]
	return d, ok
}

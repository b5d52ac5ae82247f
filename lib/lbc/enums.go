package lbc

import "strings"

// Category is the backend identifier of a search category.
type Category string

const (
	CategoryToutesCategories   Category = "0"
	CategoryVehicules          Category = "1"
	CategoryVoitures           Category = "2"
	CategoryMotos              Category = "3"
	CategoryCaravaning         Category = "4"
	CategoryUtilitaires        Category = "5"
	CategoryEquipementAuto     Category = "6"
	CategoryNautisme           Category = "7"
	CategoryImmobilier         Category = "8"
	CategoryVentesImmobilieres Category = "9"
	CategoryLocations          Category = "10"
	CategoryColocations        Category = "11"
	CategoryBureauxCommerces   Category = "13"
	CategoryEmploi             Category = "71"
	CategoryMultimedia         Category = "14"
	CategoryInformatique       Category = "15"
	CategoryTelephonie         Category = "17"
	CategoryMaison             Category = "19"
	CategoryAmeublement        Category = "20"
	CategoryElectromenager     Category = "21"
	CategoryVetements          Category = "22"
	CategoryLoisirs            Category = "24"
	CategoryAnimaux            Category = "28"
	CategoryServices           Category = "33"
)

var categoryNames = map[string]Category{
	"TOUTES_CATEGORIES":   CategoryToutesCategories,
	"VEHICULES":           CategoryVehicules,
	"VOITURES":            CategoryVoitures,
	"MOTOS":               CategoryMotos,
	"CARAVANING":          CategoryCaravaning,
	"UTILITAIRES":         CategoryUtilitaires,
	"EQUIPEMENT_AUTO":     CategoryEquipementAuto,
	"NAUTISME":            CategoryNautisme,
	"IMMOBILIER":          CategoryImmobilier,
	"VENTES_IMMOBILIERES": CategoryVentesImmobilieres,
	"LOCATIONS":           CategoryLocations,
	"COLOCATIONS":         CategoryColocations,
	"BUREAUX_COMMERCES":   CategoryBureauxCommerces,
	"EMPLOI":              CategoryEmploi,
	"MULTIMEDIA":          CategoryMultimedia,
	"INFORMATIQUE":        CategoryInformatique,
	"TELEPHONIE":          CategoryTelephonie,
	"MAISON":              CategoryMaison,
	"AMEUBLEMENT":         CategoryAmeublement,
	"ELECTROMENAGER":      CategoryElectromenager,
	"VETEMENTS":           CategoryVetements,
	"LOISIRS":             CategoryLoisirs,
	"ANIMAUX":             CategoryAnimaux,
	"SERVICES":            CategoryServices,
}

// ParseCategory resolves a category name like "IMMOBILIER" to its backend
// id. Unknown names fall back to CategoryToutesCategories, the boundary is
// tolerant by contract.
func ParseCategory(name string) Category {
	if c, ok := categoryNames[strings.ToUpper(name)]; ok {
		return c
	}
	return CategoryToutesCategories
}

// CategoryNames lists the known category names with their ids.
func CategoryNames() map[string]string {
	out := make(map[string]string, len(categoryNames))
	for name, id := range categoryNames {
		out[name] = string(id)
	}
	return out
}

// Sort is a (sort key, direction) pair understood by the search endpoint.
// Relevance has no direction.
type Sort struct {
	By    string
	Order string
}

var (
	SortRelevance = Sort{By: "relevance"}
	SortNewest    = Sort{By: "time", Order: "desc"}
	SortOldest    = Sort{By: "time", Order: "asc"}
	SortCheapest  = Sort{By: "price", Order: "desc"}
)

var sortNames = map[string]Sort{
	"RELEVANCE": SortRelevance,
	"NEWEST":    SortNewest,
	"OLDEST":    SortOldest,
	"CHEAPEST":  SortCheapest,
}

// ParseSort resolves a sort name, falling back to relevance.
func ParseSort(name string) Sort {
	if s, ok := sortNames[strings.ToUpper(name)]; ok {
		return s
	}
	return SortRelevance
}

// SortNames lists the known sort option names with their wire keys.
func SortNames() map[string]string {
	out := make(map[string]string, len(sortNames))
	for name, s := range sortNames {
		out[name] = s.By
	}
	return out
}

type AdType string

const (
	AdTypeOffer  AdType = "offer"
	AdTypeDemand AdType = "demand"
)

var adTypeNames = map[string]AdType{
	"OFFER":  AdTypeOffer,
	"DEMAND": AdTypeDemand,
}

// ParseAdType resolves an ad type name, falling back to AdTypeOffer.
func ParseAdType(name string) AdType {
	if t, ok := adTypeNames[strings.ToUpper(name)]; ok {
		return t
	}
	return AdTypeOffer
}

// AdTypeNames lists the known ad type names with their wire values.
func AdTypeNames() map[string]string {
	out := make(map[string]string, len(adTypeNames))
	for name, t := range adTypeNames {
		out[name] = string(t)
	}
	return out
}

type OwnerType string

const (
	OwnerTypeNone    OwnerType = ""
	OwnerTypeAll     OwnerType = "all"
	OwnerTypePro     OwnerType = "pro"
	OwnerTypePrivate OwnerType = "private"
)

var ownerTypeNames = map[string]OwnerType{
	"ALL":     OwnerTypeAll,
	"PRO":     OwnerTypePro,
	"PRIVATE": OwnerTypePrivate,
}

// ParseOwnerType resolves an owner type name. Unknown names leave the
// filter unset rather than failing.
func ParseOwnerType(name string) OwnerType {
	if t, ok := ownerTypeNames[strings.ToUpper(name)]; ok {
		return t
	}
	return OwnerTypeNone
}

// OwnerTypeNames lists the known owner type names with their wire values.
func OwnerTypeNames() map[string]string {
	out := make(map[string]string, len(ownerTypeNames))
	for name, t := range ownerTypeNames {
		out[name] = string(t)
	}
	return out
}

package lbc

// AdLocation is where an ad is listed. All fields come straight from the
// backend payload.
type AdLocation struct {
	City           string
	RegionName     string
	DepartmentName string
	Zipcode        string
	Lat            float64
	Lng            float64
}

// Attribute is one (key, value) pair of an ad, with the display labels
// the backend attaches to both sides.
type Attribute struct {
	Key        string
	KeyLabel   string
	Value      string
	ValueLabel string
}

// Ad is a single classified ad. Ads are only ever produced by the
// response mapper; Price is in the major currency unit, not cents.
type Ad struct {
	ID                   int64
	Subject              string
	Body                 string
	Price                float64
	URL                  string
	Images               []string
	CategoryName         string
	AdType               string
	Status               string
	FirstPublicationDate string
	ExpirationDate       string
	Location             AdLocation
	Attributes           []Attribute
	HasPhone             bool
	Favorites            int
	UserID               string
}

// ProProfile is the professional storefront attached to pro accounts.
type ProProfile struct {
	OnlineStoreName string
	Siret           string
	WebsiteURL      string
	Description     string
	Phone           string
	Email           string
}

// User is a public account profile. Pro is nil for private sellers.
type User struct {
	ID            string
	Name          string
	AccountType   string
	Pro           *ProProfile
	PhoneVerified bool
	EmailVerified bool
	CreationDate  string
	TotalAds      int
}

// Search is one page of search results together with the count
// breakdown the backend reports.
type Search struct {
	Ads            []Ad
	Total          int
	TotalAll       int
	TotalPro       int
	TotalPrivate   int
	TotalActive    int
	TotalInactive  int
	TotalShippable int
	MaxPages       int
}

package search

import "lbc-backend/lib/lbc"

type locationBody struct {
	Type   string  `json:"type"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius int     `json:"radius"`
	City   string  `json:"city"`
	Name   string  `json:"name"`
}

type searchRequest struct {
	Text              string         `json:"text"`
	Category          string         `json:"category"`
	Sort              string         `json:"sort"`
	Locations         []locationBody `json:"locations"`
	Page              int            `json:"page"`
	Limit             int            `json:"limit"`
	AdType            string         `json:"ad_type"`
	OwnerType         string         `json:"owner_type"`
	SearchInTitleOnly bool           `json:"search_in_title_only"`

	Square         []int `json:"square"`
	Price          []int `json:"price"`
	Rooms          []any `json:"rooms"`
	Bedrooms       []any `json:"bedrooms"`
	RealEstateType []any `json:"real_estate_type"`
	Shippable      *bool `json:"shippable"`
}

// options translates the request body into structured search arguments.
// Unknown location types and names are skipped, same as the rest of the
// boundary's tolerant defaults.
func (r searchRequest) options() lbc.SearchOptions {
	opts := lbc.SearchOptions{
		Text:      r.Text,
		Category:  r.Category,
		Sort:      r.Sort,
		Page:      r.Page,
		Limit:     r.Limit,
		AdType:    r.AdType,
		OwnerType: r.OwnerType,
		TitleOnly: r.SearchInTitleOnly,
	}

	for _, loc := range r.Locations {
		switch loc.Type {
		case "", "city":
			opts.Locations = append(opts.Locations, lbc.City{
				Lat:    loc.Lat,
				Lng:    loc.Lng,
				Radius: loc.Radius,
				Label:  loc.City,
			})
		case "region":
			if region, ok := lbc.ParseRegion(loc.Name); ok {
				opts.Locations = append(opts.Locations, region)
			}
		case "department":
			if department, ok := lbc.ParseDepartment(loc.Name); ok {
				opts.Locations = append(opts.Locations, department)
			}
		}
	}

	ranges := map[string][]int{}
	if r.Square != nil {
		ranges["square"] = r.Square
	}
	if r.Price != nil {
		ranges["price"] = r.Price
	}
	if len(ranges) > 0 {
		opts.Ranges = ranges
	}

	enums := map[string][]any{}
	if len(r.Rooms) > 0 {
		enums["rooms"] = r.Rooms
	}
	if len(r.Bedrooms) > 0 {
		enums["bedrooms"] = r.Bedrooms
	}
	if len(r.RealEstateType) > 0 {
		enums["real_estate_type"] = r.RealEstateType
	}
	if r.Shippable != nil {
		enums["shippable"] = []any{*r.Shippable}
	}
	if len(enums) > 0 {
		opts.Enums = enums
	}

	return opts
}

type searchURLRequest struct {
	URL   string `json:"url"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type locationResponse struct {
	City           string  `json:"city"`
	RegionName     string  `json:"region_name"`
	DepartmentName string  `json:"department_name"`
	Zipcode        string  `json:"zipcode"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
}

type attributeResponse struct {
	Key        string `json:"key"`
	KeyLabel   string `json:"key_label"`
	Value      string `json:"value"`
	ValueLabel string `json:"value_label"`
}

type adResponse struct {
	ID                   int64               `json:"id"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Price                float64             `json:"price"`
	URL                  string              `json:"url"`
	Images               []string            `json:"images"`
	CategoryName         string              `json:"category_name"`
	AdType               string              `json:"ad_type"`
	FirstPublicationDate string              `json:"first_publication_date"`
	ExpirationDate       string              `json:"expiration_date"`
	Location             locationResponse    `json:"location"`
	Attributes           []attributeResponse `json:"attributes"`
	HasPhone             bool                `json:"has_phone"`
	Favorites            int                 `json:"favorites"`
	UserID               string              `json:"user_id"`
}

type searchResponse struct {
	Total          int          `json:"total"`
	TotalAll       int          `json:"total_all"`
	TotalPro       int          `json:"total_pro"`
	TotalPrivate   int          `json:"total_private"`
	TotalActive    int          `json:"total_active"`
	TotalInactive  int          `json:"total_inactive"`
	TotalShippable int          `json:"total_shippable"`
	MaxPages       int          `json:"max_pages"`
	Ads            []adResponse `json:"ads"`
}

type professionalResponse struct {
	OnlineStoreName string `json:"online_store_name"`
	Siret           string `json:"siret"`
	WebsiteURL      string `json:"website_url"`
	Description     string `json:"description"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

type userResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Pro           bool                  `json:"pro"`
	AccountType   string                `json:"account_type"`
	CreationDate  string                `json:"creation_date"`
	PhoneVerified bool                  `json:"phone_verified"`
	EmailVerified bool                  `json:"email_verified"`
	TotalAds      int                   `json:"total_ads"`
	Professional  *professionalResponse `json:"professional,omitempty"`
}

func adBody(ad lbc.Ad) adResponse {
	out := adResponse{
		ID:                   ad.ID,
		Title:                ad.Subject,
		Description:          ad.Body,
		Price:                ad.Price,
		URL:                  ad.URL,
		Images:               ad.Images,
		CategoryName:         ad.CategoryName,
		AdType:               ad.AdType,
		FirstPublicationDate: ad.FirstPublicationDate,
		ExpirationDate:       ad.ExpirationDate,
		HasPhone:             ad.HasPhone,
		Favorites:            ad.Favorites,
		UserID:               ad.UserID,
		Location: locationResponse{
			City:           ad.Location.City,
			RegionName:     ad.Location.RegionName,
			DepartmentName: ad.Location.DepartmentName,
			Zipcode:        ad.Location.Zipcode,
			Lat:            ad.Location.Lat,
			Lng:            ad.Location.Lng,
		},
	}
	for _, attr := range ad.Attributes {
		out.Attributes = append(out.Attributes, attributeResponse(attr))
	}
	return out
}

func searchBody(result lbc.Search) searchResponse {
	out := searchResponse{
		Total:          result.Total,
		TotalAll:       result.TotalAll,
		TotalPro:       result.TotalPro,
		TotalPrivate:   result.TotalPrivate,
		TotalActive:    result.TotalActive,
		TotalInactive:  result.TotalInactive,
		TotalShippable: result.TotalShippable,
		MaxPages:       result.MaxPages,
		Ads:            []adResponse{},
	}
	for _, ad := range result.Ads {
		out.Ads = append(out.Ads, adBody(ad))
	}
	return out
}

func userBody(user lbc.User) userResponse {
	out := userResponse{
		ID:            user.ID,
		Name:          user.Name,
		Pro:           user.Pro != nil,
		AccountType:   user.AccountType,
		CreationDate:  user.CreationDate,
		PhoneVerified: user.PhoneVerified,
		EmailVerified: user.EmailVerified,
		TotalAds:      user.TotalAds,
	}
	if user.Pro != nil {
		out.Professional = &professionalResponse{
			OnlineStoreName: user.Pro.OnlineStoreName,
			Siret:           user.Pro.Siret,
			WebsiteURL:      user.Pro.WebsiteURL,
			Description:     user.Pro.Description,
			Phone:           user.Pro.Phone,
			Email:           user.Pro.Email,
		}
	}
	return out
}

package lbc

import (
	"encoding/json"
	"fmt"
)

// The raw* types mirror the backend JSON. Everything except the
// identifying ids is optional: partial payloads map to zero values, they
// never fail the whole response.

type rawImages struct {
	URLsLarge []string `json:"urls_large"`
}

type rawAttribute struct {
	Key        string `json:"key"`
	KeyLabel   string `json:"key_label"`
	Value      string `json:"value"`
	ValueLabel string `json:"value_label"`
}

type rawAdLocation struct {
	City           string  `json:"city"`
	RegionName     string  `json:"region_name"`
	DepartmentName string  `json:"department_name"`
	Zipcode        string  `json:"zipcode"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
}

type rawCounters struct {
	Favorites int `json:"favorites"`
}

type rawOwner struct {
	UserID string `json:"user_id"`
}

type rawAd struct {
	ListID               int64          `json:"list_id"`
	Subject              string         `json:"subject"`
	Body                 string         `json:"body"`
	PriceCents           int64          `json:"price_cents"`
	URL                  string         `json:"url"`
	Images               *rawImages     `json:"images"`
	CategoryName         string         `json:"category_name"`
	AdType               string         `json:"ad_type"`
	Status               string         `json:"status"`
	FirstPublicationDate string         `json:"first_publication_date"`
	ExpirationDate       string         `json:"expiration_date"`
	Location             rawAdLocation  `json:"location"`
	Attributes           []rawAttribute `json:"attributes"`
	HasPhone             bool           `json:"has_phone"`
	Counters             *rawCounters   `json:"counters"`
	Owner                *rawOwner      `json:"owner"`
}

type rawSearch struct {
	Ads            []rawAd `json:"ads"`
	Total          int     `json:"total"`
	TotalAll       int     `json:"total_all"`
	TotalPro       int     `json:"total_pro"`
	TotalPrivate   int     `json:"total_private"`
	TotalActive    int     `json:"total_active"`
	TotalInactive  int     `json:"total_inactive"`
	TotalShippable int     `json:"total_shippable"`
}

type rawBadge struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type rawProProfile struct {
	OnlineStoreName string `json:"online_store_name"`
	Siret           string `json:"siret"`
	WebsiteURL      string `json:"website_url"`
	Description     string `json:"description"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

type rawUser struct {
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	RegisteredAt string         `json:"registered_at"`
	AccountType  string         `json:"account_type"`
	Pro          *rawProProfile `json:"pro"`
	Badges       []rawBadge     `json:"badges"`
	TotalAds     int            `json:"total_ads"`
}

func mapAd(raw rawAd) (Ad, error) {
	if raw.ListID == 0 {
		return Ad{}, fmt.Errorf("%w: ad payload is missing list_id", ErrRequest)
	}

	ad := Ad{
		ID:      raw.ListID,
		Subject: raw.Subject,
		Body:    raw.Body,
		// the wire carries minor units
		Price:                float64(raw.PriceCents) / 100,
		URL:                  raw.URL,
		CategoryName:         raw.CategoryName,
		AdType:               raw.AdType,
		Status:               raw.Status,
		FirstPublicationDate: raw.FirstPublicationDate,
		ExpirationDate:       raw.ExpirationDate,
		HasPhone:             raw.HasPhone,
		Location: AdLocation{
			City:           raw.Location.City,
			RegionName:     raw.Location.RegionName,
			DepartmentName: raw.Location.DepartmentName,
			Zipcode:        raw.Location.Zipcode,
			Lat:            raw.Location.Lat,
			Lng:            raw.Location.Lng,
		},
	}
	if raw.Images != nil {
		ad.Images = raw.Images.URLsLarge
	}
	if raw.Counters != nil {
		ad.Favorites = raw.Counters.Favorites
	}
	if raw.Owner != nil {
		ad.UserID = raw.Owner.UserID
	}
	for _, attr := range raw.Attributes {
		ad.Attributes = append(ad.Attributes, Attribute{
			Key:        attr.Key,
			KeyLabel:   attr.KeyLabel,
			Value:      attr.Value,
			ValueLabel: attr.ValueLabel,
		})
	}
	return ad, nil
}

func mapAdResponse(body []byte) (Ad, error) {
	var raw rawAd
	if err := json.Unmarshal(body, &raw); err != nil {
		return Ad{}, fmt.Errorf("%w: decode ad response: %v", ErrRequest, err)
	}
	return mapAd(raw)
}

func mapUserResponse(body []byte) (User, error) {
	var raw rawUser
	if err := json.Unmarshal(body, &raw); err != nil {
		return User{}, fmt.Errorf("%w: decode user response: %v", ErrRequest, err)
	}
	if raw.UserID == "" {
		return User{}, fmt.Errorf("%w: user payload is missing user_id", ErrRequest)
	}

	user := User{
		ID:           raw.UserID,
		Name:         raw.Name,
		AccountType:  raw.AccountType,
		CreationDate: raw.RegisteredAt,
		TotalAds:     raw.TotalAds,
	}
	for _, badge := range raw.Badges {
		if badge.Status != "validated" {
			continue
		}
		switch badge.Name {
		case "phone":
			user.PhoneVerified = true
		case "email":
			user.EmailVerified = true
		}
	}
	if raw.Pro != nil {
		user.Pro = &ProProfile{
			OnlineStoreName: raw.Pro.OnlineStoreName,
			Siret:           raw.Pro.Siret,
			WebsiteURL:      raw.Pro.WebsiteURL,
			Description:     raw.Pro.Description,
			Phone:           raw.Pro.Phone,
			Email:           raw.Pro.Email,
		}
	}
	return user, nil
}

func mapSearchResponse(body []byte, limit int) (Search, error) {
	var raw rawSearch
	if err := json.Unmarshal(body, &raw); err != nil {
		return Search{}, fmt.Errorf("%w: decode search response: %v", ErrRequest, err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := Search{
		Total:          raw.Total,
		TotalAll:       raw.TotalAll,
		TotalPro:       raw.TotalPro,
		TotalPrivate:   raw.TotalPrivate,
		TotalActive:    raw.TotalActive,
		TotalInactive:  raw.TotalInactive,
		TotalShippable: raw.TotalShippable,
		MaxPages:       (raw.Total + limit - 1) / limit,
	}
	for _, rawAd := range raw.Ads {
		ad, err := mapAd(rawAd)
		if err != nil {
			return Search{}, err
		}
		result.Ads = append(result.Ads, ad)
	}
	return result, nil
}

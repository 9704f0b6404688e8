package model

import "time"

// SearchType distinguishes flight-only searches from multi-product packages.
type SearchType string

const (
	SearchTypeFlight  SearchType = "flight"
	SearchTypePackage SearchType = "package"
)

// SearchSubType refines a search within its type.
type SearchSubType string

const (
	SearchSubTypeOneWay         SearchSubType = "one-way"
	SearchSubTypeRoundTrip      SearchSubType = "round-trip"
	SearchSubTypeMultiCity      SearchSubType = "multi-city"
	SearchSubTypeFlightCar      SearchSubType = "flight-car"
	SearchSubTypeFlightHotel    SearchSubType = "flight-hotel"
	SearchSubTypeFlightHotelCar SearchSubType = "flight-hotel-car"
)

// PointsCashMode is the active redemption mode for the booking in progress.
// Empty means a plain cash booking.
type PointsCashMode string

const (
	PointsCashNone PointsCashMode = ""
	PointsOnly     PointsCashMode = "P"
	PointsAndCash  PointsCashMode = "Pc"
)

// SearchCriterion is one leg of a (possibly multi-city) search. The position
// of a criterion in the request is the leg index.
type SearchCriterion struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
	HideResult  bool      `json:"hideResult,omitempty"`
}

// SearchRequest is a full fare search request.
type SearchRequest struct {
	Criteria                    []SearchCriterion `json:"criteria"`
	Passengers                  int               `json:"passengers"`
	UsePoints                   bool              `json:"usePoints"`
	OriginallyPointsOnlyBooking bool              `json:"originallyPointsOnlyBooking,omitempty"`
	DefaultJourneyKey           string            `json:"defaultJourneyKey,omitempty"`
	PromoCode                   string            `json:"promoCode,omitempty"`
	OriginalBookingLocator      string            `json:"originalBookingLocator,omitempty"`
}

// SearchInput is the availability-form state the workflow reads when a search
// or sell is dispatched.
type SearchInput struct {
	Type                SearchType    `json:"type"`
	SubType             SearchSubType `json:"subType"`
	Flight              SearchRequest `json:"flight"`
	OriginalJourneyKeys []string      `json:"originalJourneyKeys,omitempty"`
	PassengerSeatCount  int           `json:"passengerSeatCount"`
}

// SeasonalNotice describes a suspended seasonal route. Station code "ANY"
// matches every station.
type SeasonalNotice struct {
	FromStation string    `json:"fromStation"`
	ToStation   string    `json:"toStation"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Message     string    `json:"message"`
}

// AppliesTo reports whether the notice covers any criterion of the request.
func (n SeasonalNotice) AppliesTo(req SearchRequest) bool {
	for _, c := range req.Criteria {
		originMatch := c.Origin == n.FromStation || n.FromStation == "ANY"
		destMatch := c.Destination == n.ToStation || n.ToStation == "ANY"
		if originMatch && destMatch && c.Date.After(n.StartDate) && c.Date.Before(n.EndDate) {
			return true
		}
	}
	return false
}

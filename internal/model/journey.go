package model

import (
	"sort"
	"time"
)

// Designator identifies one journey's city pair and times.
type Designator struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
}

// Segment is one flight segment of a journey.
type Segment struct {
	FlightNumber string `json:"flightNumber"`
	Carrier      string `json:"carrier,omitempty"`
}

// ServiceCharge is a priced component attached to a passenger fare.
type ServiceCharge struct {
	Detail string  `json:"detail"`
	Amount float64 `json:"amount"`
}

// PassengerFare is the per-passenger pricing block of a raw fare.
type PassengerFare struct {
	FareAmount           float64         `json:"fareAmount"`
	OriginalFareAmount   float64         `json:"originalFareAmount,omitempty"`
	LoyaltyPoints        float64         `json:"loyaltyPoints,omitempty"`
	FareAmountDifference *float64        `json:"fareAmountDifference,omitempty"`
	AccrualTotalTax      float64         `json:"accrualTotalTax,omitempty"`
	ServiceCharges       []ServiceCharge `json:"serviceCharges,omitempty"`
}

// FareDetails carries the facets of a raw fare.
type FareDetails struct {
	IsClubFare       bool            `json:"isClubFare"`
	IsCardHolderFare bool            `json:"isCardHolderFare"`
	ProductClass     string          `json:"productClass,omitempty"`
	PassengerFares   []PassengerFare `json:"passengerFares"`
}

// RawFare is a fare exactly as the availability service returns it.
type RawFare struct {
	FareAvailabilityKey string      `json:"fareAvailabilityKey"`
	Details             FareDetails `json:"details"`
	PointCash           bool        `json:"pointCash,omitempty"`
}

// RawJourney is a journey as returned by the availability service. The
// PointCashFares set is only populated by the hybrid search merge.
type RawJourney struct {
	JourneyKey     string             `json:"journeyKey"`
	Designator     Designator         `json:"designator"`
	Segments       []Segment          `json:"segments,omitempty"`
	Fares          map[string]RawFare `json:"fares"`
	PointCashFares map[string]RawFare `json:"pointCashFares,omitempty"`
}

// RawTrip is the availability response for one leg.
type RawTrip struct {
	Origin      string       `json:"origin"`
	Destination string       `json:"destination"`
	Journeys    []RawJourney `json:"journeysAvailable"`
}

// AvailabilityData is the payload of a fare search response.
type AvailabilityData struct {
	Trips []RawTrip `json:"trips"`
}

// Fare is an enriched, flattened fare ready for selection and totalling. For
// modify flows Amount holds the fare delta versus the original booking when
// the service supplies one.
type Fare struct {
	FareAvailabilityKey string   `json:"fareAvailabilityKey"`
	Amount              float64  `json:"amount"`
	OriginalAmount      float64  `json:"originalAmount,omitempty"`
	LoyaltyPoints       float64  `json:"loyaltyPoints,omitempty"`
	AmountDifference    *float64 `json:"amountDifference,omitempty"`
	AccrualTotalTax     float64  `json:"accrualTotalTax,omitempty"`
	IsClubFare          bool     `json:"isClubFare"`
	IsCardHolderFare    bool     `json:"isCardHolderFare"`
	PointCash           bool     `json:"pointCash,omitempty"`
	ProductClass        string   `json:"productClass,omitempty"`
	TaxFeeSum           float64  `json:"taxFeeSum,omitempty"`
}

// / Journey is an enriched journey: the raw fare sets flattened plus the four
// derived fare slots and the departure/arrival flags.
type Journey struct {
	JourneyKey        string          `json:"journeyKey"`
	Designator        Designator      `json:"designator"`
	Segments          []Segment       `json:"segments,omitempty"`
	Fares             map[string]Fare `json:"fares"`
	PointCashFares    map[string]Fare `json:"pointCashFares,omitempty"`
	StandardFare      *Fare           `json:"standardFare,omitempty"`
	ClubFare          *Fare           `json:"clubFare,omitempty"`
	PointCash         *Fare           `json:"pointCashFare,omitempty"`
	PointCashClubFare *Fare           `json:"pointCashClubFare,omitempty"`
	CardHolderFare    *Fare           `json:"cardHolderFare,omitempty"`
	IsEarly           bool            `json:"isEarly"`
	IsNextDayArrival  bool            `json:"isNextDayArrival"`
}

// Trip is the enriched result for one leg.
type Trip struct {
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Journeys       []Journey `json:"journeysAvailable"`
	DefaultJourney *Journey  `json:"defaultJourney,omitempty"`
}

// SearchResult pairs the request that produced it with the enriched trips.
type SearchResult struct {
	Search SearchRequest `json:"search"`
	Trips  []Trip        `json:"trips"`
}

// RawSearchResult is what the store holds: the request plus the untouched
// availability payload. Enrichment happens in the derivation layer.
type RawSearchResult struct {
	Search SearchRequest     `json:"search"`
	Data   *AvailabilityData `json:"data"`
}

// SortedFareKeys returns the availability keys of a fare set in a stable
// order.
func SortedFareKeys[F any](fares map[string]F) []string {
	keys := make([]string, 0, len(fares))
	for k := range fares {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

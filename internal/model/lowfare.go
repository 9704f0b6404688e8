package model

import "time"

// LowFareCriterion is one leg of a low-fare calendar search: a date window
// around the selected travel date.
type LowFareCriterion struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	BeginDate    time.Time `json:"beginDate"`
	EndDate      time.Time `json:"endDate"`
	SelectedDate time.Time `json:"selectedDate"`
}

// LowFareSearchRequest asks for the cheapest fare per day over each leg's
// window.
type LowFareSearchRequest struct {
	Criteria   []LowFareCriterion `json:"criteria"`
	Passengers int                `json:"passengers"`
	UsePoints  bool               `json:"usePoints"`
}

// PassengerLowFare is the per-passenger-type pricing of a raw low fare.
type PassengerLowFare struct {
	FareAmount           float64 `json:"fareAmount"`
	TaxesAndFeesAmount   float64 `json:"taxesAndFeesAmount"`
	FareAmountDifference float64 `json:"fareAmountDifference,omitempty"`
}

// RawLowFare is one priced option on a calendar day.
type RawLowFare struct {
	Passengers map[string]PassengerLowFare `json:"passengers"`
}

// LowestFareAmount is the service-computed cheapest fare for a day, used in
// points mode.
type LowestFareAmount struct {
	FareAmount           float64 `json:"fareAmount"`
	FarePointAmount      float64 `json:"farePointAmount"`
	FareAmountDifference float64 `json:"fareAmountDifference,omitempty"`
}

// RawLowFareMarket is one day of one city pair in the low-fare response.
type RawLowFareMarket struct {
	Origin           string            `json:"origin"`
	Destination      string            `json:"destination"`
	DepartureDate    time.Time         `json:"departureDate"`
	LowFares         []RawLowFare      `json:"lowFares"`
	LowestFareAmount *LowestFareAmount `json:"lowestFareAmount,omitempty"`
}

// LowFareData is the payload of a low-fare search response.
type LowFareData struct {
	Markets []RawLowFareMarket `json:"lowFareDateMarkets"`
}

// RawLowFareResult is what the store holds for the low-fare calendar.
type RawLowFareResult struct {
	Search LowFareSearchRequest `json:"search"`
	Data   *LowFareData         `json:"data"`
}

// LowestFare is the derived cheapest fare for one calendar day.
type LowestFare struct {
	FareAmount           float64 `json:"fareAmount"`
	TaxesAndFeesAmount   float64 `json:"taxesAndFeesAmount,omitempty"`
	TotalFareAmount      float64 `json:"totalFareAmount,omitempty"`
	FareAmountDifference float64 `json:"fareAmountDifference,omitempty"`
}

// LowFareMarket is one derived calendar cell: a day for a leg, with the
// lowest fare when the service had one.
type LowFareMarket struct {
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination"`
	DepartureDate time.Time   `json:"departureDate"`
	LowestFare    *LowestFare `json:"lowestFare,omitempty"`
	TripIndex     int         `json:"tripIndex"`
	HasFares      bool        `json:"hasFares"`
}

// LowFareResult pairs the low-fare request with the derived calendar grid.
type LowFareResult struct {
	Search  LowFareSearchRequest `json:"search"`
	Markets []LowFareMarket      `json:"markets"`
}

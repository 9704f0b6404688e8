package model

import "time"

// BookingData is the committed booking returned by a sell or modify-sell
// transaction.
type BookingData struct {
	BookingID           string         `json:"bookingId"`
	RecordLocator       string         `json:"recordLocator"`
	TotalAmount         float64        `json:"totalAmount"`
	PointsRedeemed      float64        `json:"pointsRedeemed,omitempty"`
	Mode                PointsCashMode `json:"mode,omitempty"`
	SeatRemappingNeeded bool           `json:"seatRemappingNeeded,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
}

// SellResponse is the availability service's answer to a sell request.
type SellResponse struct {
	Data *BookingData `json:"data"`
}

// ModifySellResponse is the answer to a modify-sell request.
type ModifySellResponse struct {
	Data *ModifySellData `json:"data"`
}

// ModifySellData wraps the re-booked record plus the seat remapping flag.
type ModifySellData struct {
	NewBooking          BookingData `json:"newBooking"`
	SeatRemappingNeeded bool        `json:"seatRemappingNeeded"`
}

// BookingState is the in-progress booking slice the workflow reads: the
// journeys already on the booking (modify flows), the award-point total of
// the existing record, and any bundle codes already selected.
type BookingState struct {
	ActiveJourneys      []Journey    `json:"activeJourneys,omitempty"`
	AwardPointTotal     float64      `json:"awardPointTotal,omitempty"`
	SelectedBundleCodes []string     `json:"selectedBundleCodes,omitempty"`
	Data                *BookingData `json:"data,omitempty"`
}

// PackageResult is the package-availability slice navigation consults after
// a combination search.
type PackageResult struct {
	Hotels   int `json:"hotels"`
	Vehicles int `json:"vehicles"`
}

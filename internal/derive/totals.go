package derive

import (
	"time"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// StandardFareTotal sums the standard-fare amount of every selected journey.
func StandardFareTotal(sels model.FareSelections) float64 {
	var total float64
	for _, jf := range sels {
		if jf.Journey.StandardFare != nil {
			total += jf.Journey.StandardFare.Amount
		}
	}
	return total
}

// FareSelectionTotal sums the amount of each selected fare.
func FareSelectionTotal(sels model.FareSelections) float64 {
	var total float64
	for _, jf := range sels {
		total += jf.Fare.Amount
	}
	return total
}

// LoyaltyPointsSelectionTotal sums the point cost of each selected fare.
func LoyaltyPointsSelectionTotal(sels model.FareSelections) float64 {
	var total float64
	for _, jf := range sels {
		total += jf.Fare.LoyaltyPoints
	}
	return total
}

// PointCashFareTotal sums the point-cash fare amounts; club members get the
// point-cash club fare where one exists.
func PointCashFareTotal(sels model.FareSelections, isClub bool) float64 {
	var total float64
	for _, jf := range sels {
		if isClub && jf.Journey.PointCashClubFare != nil {
			total += jf.Journey.PointCashClubFare.Amount
			continue
		}
		if jf.Journey.PointCash != nil {
			total += jf.Journey.PointCash.Amount
		}
	}
	return total
}

// LoyaltyPointsTotal sums the point cost per leg, taking the club fare for
// club members where one exists.
func LoyaltyPointsTotal(sels model.FareSelections, isClub bool) float64 {
	var total float64
	for _, jf := range sels {
		if isClub && jf.Journey.ClubFare != nil {
			total += jf.Journey.ClubFare.LoyaltyPoints
			continue
		}
		if jf.Journey.StandardFare != nil {
			total += jf.Journey.StandardFare.LoyaltyPoints
		}
	}
	return total
}

// PointsCashLoyaltyPointsTotal is LoyaltyPointsTotal over the point-cash
// fare slots.
func PointsCashLoyaltyPointsTotal(sels model.FareSelections, isClub bool) float64 {
	var total float64
	for _, jf := range sels {
		if isClub && jf.Journey.PointCashClubFare != nil {
			total += jf.Journey.PointCashClubFare.LoyaltyPoints
			continue
		}
		if jf.Journey.PointCash != nil {
			total += jf.Journey.PointCash.LoyaltyPoints
		}
	}
	return total
}

// ClubSavings is the per-booking cash delta between standard and club fares,
// multiplied by seat count.
func ClubSavings(sels model.FareSelections, seatCount int) float64 {
	var savings float64
	for _, jf := range sels {
		if jf.Journey.ClubFare != nil && jf.Journey.StandardFare != nil {
			savings += jf.Journey.StandardFare.Amount - jf.Journey.ClubFare.Amount
		}
	}
	return savings * float64(seats(seatCount))
}

// LoyaltyPointsClubSavingTotal is the point delta a non-member would save by
// enrolling, multiplied by seat count. Zero for existing members.
func LoyaltyPointsClubSavingTotal(sels model.FareSelections, seatCount int, isClub bool) float64 {
	var savings float64
	for _, jf := range sels {
		if !isClub && jf.Journey.ClubFare != nil && jf.Journey.StandardFare != nil {
			savings += jf.Journey.StandardFare.LoyaltyPoints - jf.Journey.ClubFare.LoyaltyPoints
		}
	}
	return savings * float64(seats(seatCount))
}

// PointsCashLoyaltyPointsClubSavingTotal is LoyaltyPointsClubSavingTotal
// over the point-cash slots.
func PointsCashLoyaltyPointsClubSavingTotal(sels model.FareSelections, seatCount int, isClub bool) float64 {
	var savings float64
	for _, jf := range sels {
		if !isClub && jf.Journey.PointCashClubFare != nil && jf.Journey.PointCash != nil {
			savings += jf.Journey.PointCash.LoyaltyPoints - jf.Journey.PointCashClubFare.LoyaltyPoints
		}
	}
	return savings * float64(seats(seatCount))
}

// PointsCashFareClubSavingTotal is the cash delta between point-cash and
// point-cash club fares for a non-member, multiplied by seat count.
func PointsCashFareClubSavingTotal(sels model.FareSelections, seatCount int, isClub bool) float64 {
	var savings float64
	for _, jf := range sels {
		if !isClub && jf.Journey.PointCashClubFare != nil && jf.Journey.PointCash != nil {
			savings += jf.Journey.PointCash.Amount - jf.Journey.PointCashClubFare.Amount
		}
	}
	return savings * float64(seats(seatCount))
}

// PointsCashFareSavingTotal is the same cash delta regardless of membership.
func PointsCashFareSavingTotal(sels model.FareSelections, seatCount int) float64 {
	var savings float64
	for _, jf := range sels {
		if jf.Journey.PointCashClubFare != nil && jf.Journey.PointCash != nil {
			savings += jf.Journey.PointCash.Amount - jf.Journey.PointCashClubFare.Amount
		}
	}
	return savings * float64(seats(seatCount))
}

// CardHolderPointsTotal sums the point cost per leg preferring the
// card-holder fare where one exists.
func CardHolderPointsTotal(sels model.FareSelections) float64 {
	var total float64
	for _, jf := range sels {
		if jf.Journey.CardHolderFare != nil {
			total += jf.Journey.CardHolderFare.LoyaltyPoints
			continue
		}
		if jf.Journey.StandardFare != nil {
			total += jf.Journey.StandardFare.LoyaltyPoints
		}
	}
	return total
}

// SelectionIsClubFare reports whether any selected fare is a club fare.
func SelectionIsClubFare(sels model.FareSelections) bool {
	for _, jf := range sels {
		if jf.Fare.IsClubFare {
			return true
		}
	}
	return false
}

// IsAwardBooking reports whether the booking in progress is paid with
// points: either the existing record already carries an award total, or the
// active search asked for points pricing.
func IsAwardBooking(result *model.RawSearchResult, awardBookingTotal float64) bool {
	if awardBookingTotal > 0 {
		return true
	}
	return result != nil && result.Search.UsePoints
}

// AllFareSelectionMade reports whether every visible leg has a selection.
func AllFareSelectionMade(sels model.FareSelections, result *model.SearchResult) bool {
	if result == nil {
		return false
	}
	visible := 0
	for i := range result.Trips {
		if i < len(result.Search.Criteria) && result.Search.Criteria[i].HideResult {
			continue
		}
		visible++
	}
	return len(sels) == visible
}

// FareSelectionWithin24Hours reports whether the first selection departs
// within the next 24 hours.
func FareSelectionWithin24Hours(sels model.FareSelections, now time.Time) bool {
	idx := sels.SortedIndexes()
	if len(idx) == 0 {
		return false
	}
	dep := sels[idx[0]].Journey.Designator.Departure
	diff := dep.Sub(now)
	return diff >= 0 && diff <= 24*time.Hour
}

// FlightPointsBreakdownTotal is the selected point cost across all legs,
// per seat.
func FlightPointsBreakdownTotal(sels model.FareSelections, seatCount int) float64 {
	return LoyaltyPointsSelectionTotal(sels) * float64(seatCount)
}

// FlightBreakdownTotal is the headline price of the flight section: cash
// total for cash bookings; for award bookings the mode-appropriate fare
// total plus the redemption fee, all multiplied by seat count.
func FlightBreakdownTotal(sels model.FareSelections, isAward bool, mode model.PointsCashMode, redemptionFee float64, seatCount int) float64 {
	if !isAward {
		return FareSelectionTotal(sels) * float64(seatCount)
	}
	base := FareSelectionTotal(sels)
	if mode == model.PointsCashNone || mode == model.PointsOnly {
		base = StandardFareTotal(sels)
	}
	return (base + redemptionFee) * float64(seatCount)
}

// SectionBreakdown is one leg's line in the price breakdown.
type SectionBreakdown struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Total       float64 `json:"total"`
	PointsTotal float64 `json:"pointsTotal"`
}

// FlightsSectionBreakdownTotals lists the per-leg cash and point totals in
// leg order.
func FlightsSectionBreakdownTotals(sels model.FareSelections, seatCount int) []SectionBreakdown {
	out := make([]SectionBreakdown, 0, len(sels))
	for _, i := range sels.SortedIndexes() {
		jf := sels[i]
		out = append(out, SectionBreakdown{
			Origin:      jf.Journey.Designator.Origin,
			Destination: jf.Journey.Designator.Destination,
			Total:       jf.Fare.Amount * float64(seatCount),
			PointsTotal: jf.Fare.LoyaltyPoints * float64(seatCount),
		})
	}
	return out
}

func seats(seatCount int) int {
	if seatCount > 0 {
		return seatCount
	}
	return 1
}

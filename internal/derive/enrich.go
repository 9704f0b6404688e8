// Package derive holds the pure projection functions recomputed from the
// state snapshot (plus named external inputs) on every read. Nothing here
// mutates state.
package derive

import (
	"time"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// earlyDepartureHour is the local hour below which a departure counts as a
// post-midnight ("early") flight.
const earlyDepartureHour = 4

// SearchResult enriches the stored search payload: placeholder trips for
// legs the service returned nothing for, flattened fares, the derived fare
// slots, the early/next-day flags, and the default journey.
func SearchResult(raw *model.RawSearchResult) *model.SearchResult {
	if raw == nil {
		return nil
	}
	result := &model.SearchResult{Search: raw.Search}
	if raw.Data == nil {
		result.Trips = []model.Trip{}
		return result
	}

	trips := make([]model.RawTrip, len(raw.Data.Trips))
	copy(trips, raw.Data.Trips)

	// Legs with no trip in the payload still get an empty placeholder at
	// their index so selections stay aligned with criteria.
	for i, c := range raw.Search.Criteria {
		if !tripExists(trips, c.Origin, c.Destination) {
			placeholder := model.RawTrip{Origin: c.Origin, Destination: c.Destination}
			trips = append(trips[:i], append([]model.RawTrip{placeholder}, trips[i:]...)...)
		}
	}

	result.Trips = make([]model.Trip, 0, len(trips))
	for _, rt := range trips {
		trip := model.Trip{Origin: rt.Origin, Destination: rt.Destination}
		trip.Journeys = make([]model.Journey, 0, len(rt.Journeys))
		for _, rj := range rt.Journeys {
			journey := enrichJourney(rj)
			trip.Journeys = append(trip.Journeys, journey)
		}
		if key := raw.Search.DefaultJourneyKey; key != "" {
			for i := range trip.Journeys {
				if trip.Journeys[i].JourneyKey == key {
					dj := trip.Journeys[i]
					trip.DefaultJourney = &dj
					break
				}
			}
		}
		result.Trips = append(result.Trips, trip)
	}
	return result
}

func tripExists(trips []model.RawTrip, origin, destination string) bool {
	for _, t := range trips {
		if t.Origin == origin && t.Destination == destination {
			return true
		}
	}
	return false
}

func enrichJourney(rj model.RawJourney) model.Journey {
	fares := flattenFares(rj.Fares)
	pointCashFares := flattenFares(rj.PointCashFares)

	j := model.Journey{
		JourneyKey:     rj.JourneyKey,
		Designator:     rj.Designator,
		Segments:       rj.Segments,
		Fares:          fares,
		PointCashFares: pointCashFares,
	}
	j.ClubFare = findFare(fares, func(f model.Fare) bool { return f.IsClubFare })
	j.StandardFare = findFare(fares, func(f model.Fare) bool { return !f.IsClubFare })
	j.CardHolderFare = findFare(fares, func(f model.Fare) bool { return f.IsCardHolderFare })
	j.PointCash = findFare(pointCashFares, func(f model.Fare) bool { return !f.IsClubFare })
	j.PointCashClubFare = findFare(pointCashFares, func(f model.Fare) bool { return f.IsClubFare })

	dep, arr := rj.Designator.Departure, rj.Designator.Arrival
	if !dep.IsZero() {
		j.IsEarly = dep.Hour() < earlyDepartureHour
		j.IsNextDayArrival = !arr.IsZero() && startOfDay(arr).After(startOfDay(dep))
	}
	return j
}

// flattenFares folds each raw fare's first passenger fare and service
// charges into the flat Fare shape selections work with. For modify flows
// the fare-amount delta, when present, becomes the effective amount.
func flattenFares(raw map[string]model.RawFare) map[string]model.Fare {
	if raw == nil {
		return nil
	}
	out := make(map[string]model.Fare, len(raw))
	for key, rf := range raw {
		if len(rf.Details.PassengerFares) == 0 {
			continue
		}
		pf := rf.Details.PassengerFares[0]
		fare := model.Fare{
			FareAvailabilityKey: rf.FareAvailabilityKey,
			Amount:              pf.FareAmount,
			OriginalAmount:      pf.OriginalFareAmount,
			LoyaltyPoints:       pf.LoyaltyPoints,
			AmountDifference:    pf.FareAmountDifference,
			AccrualTotalTax:     pf.AccrualTotalTax,
			IsClubFare:          rf.Details.IsClubFare,
			IsCardHolderFare:    rf.Details.IsCardHolderFare,
			PointCash:           rf.PointCash,
			ProductClass:        rf.Details.ProductClass,
			TaxFeeSum:           taxFeeSum(rf.Details.PassengerFares),
		}
		if pf.FareAmountDifference != nil {
			fare.Amount = *pf.FareAmountDifference
		}
		out[key] = fare
	}
	return out
}

func taxFeeSum(passengerFares []model.PassengerFare) float64 {
	var sum float64
	for _, pf := range passengerFares {
		for _, sc := range pf.ServiceCharges {
			if sc.Detail == "TaxFeeSum" {
				sum += sc.Amount
			}
		}
	}
	return sum
}

func findFare(fares map[string]model.Fare, match func(model.Fare) bool) *model.Fare {
	for _, key := range model.SortedFareKeys(fares) {
		if f := fares[key]; match(f) {
			return &f
		}
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LowFareResult projects the stored low-fare payload onto a day-by-day grid
// per leg: one cell per day of each criterion's window, carrying the lowest
// fare when the service priced that day. Days before today stay empty. The
// leg index rides along because multi-city searches may repeat a city pair.
func LowFareResult(raw *model.RawLowFareResult, usePoints bool, now time.Time) *model.LowFareResult {
	if raw == nil {
		return nil
	}
	result := &model.LowFareResult{Search: raw.Search, Markets: []model.LowFareMarket{}}
	if raw.Data == nil {
		return result
	}

	today := startOfDay(now)
	for i, c := range raw.Search.Criteria {
		for date := startOfDay(c.BeginDate); !date.After(c.EndDate); date = date.AddDate(0, 0, 1) {
			cell := model.LowFareMarket{
				Origin:        c.Origin,
				Destination:   c.Destination,
				DepartureDate: date,
				TripIndex:     i,
			}
			if !date.Before(today) {
				if market := findMarket(raw.Data.Markets, c, date); market != nil {
					cell.HasFares = len(market.LowFares) > 0 || market.LowestFareAmount != nil
					cell.LowestFare = lowestFareForDay(market, usePoints)
				}
			}
			result.Markets = append(result.Markets, cell)
		}
	}
	return result
}

func findMarket(markets []model.RawLowFareMarket, c model.LowFareCriterion, day time.Time) *model.RawLowFareMarket {
	for i := range markets {
		m := &markets[i]
		if m.Origin == c.Origin && m.Destination == c.Destination && startOfDay(m.DepartureDate).Equal(day) {
			return m
		}
	}
	return nil
}

func lowestFareForDay(market *model.RawLowFareMarket, usePoints bool) *model.LowestFare {
	if usePoints {
		if market.LowestFareAmount == nil {
			return nil
		}
		return &model.LowestFare{
			FareAmount:           market.LowestFareAmount.FarePointAmount,
			FareAmountDifference: market.LowestFareAmount.FareAmountDifference,
		}
	}

	var lowest *model.LowestFare
	for _, lf := range market.LowFares {
		passenger, ok := lf.Passengers["ADT"]
		if !ok {
			passenger, ok = lf.Passengers["CHD"]
		}
		if !ok {
			continue
		}
		total := passenger.FareAmount + passenger.TaxesAndFeesAmount
		if lowest == nil || total < lowest.TotalFareAmount {
			diff := passenger.FareAmountDifference
			if diff == 0 && market.LowestFareAmount != nil {
				diff = market.LowestFareAmount.FareAmountDifference
			}
			lowest = &model.LowestFare{
				FareAmount:           passenger.FareAmount,
				TaxesAndFeesAmount:   passenger.TaxesAndFeesAmount,
				TotalFareAmount:      total,
				FareAmountDifference: diff,
			}
		}
	}
	return lowest
}

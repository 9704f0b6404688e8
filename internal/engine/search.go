package engine

import (
	"context"
	"log"
	"time"

	"github.com/cx-tal-miterani/fare-workflow/internal/confirm"
	"github.com/cx-tal-miterani/fare-workflow/internal/derive"
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

const lowFareWindowDays = 3

// combinationSearch builds the full search chain from the stored search
// input: clear errors and results, validate dates, check seasonal notices,
// then fan out into the low-fare calendar search, the fare search, routing,
// the points-cash mode and the caller's continuation.
func (e *Engine) combinationSearch(act intent.CombinationSearch) []intent.Intent {
	req := e.state.App.SearchInput.Flight
	if len(req.Criteria) == 0 {
		return nil
	}

	lowFare := model.LowFareSearchRequest{
		Criteria:   make([]model.LowFareCriterion, 0, len(req.Criteria)),
		Passengers: req.Passengers,
		UsePoints:  req.UsePoints,
	}
	for _, c := range req.Criteria {
		day := startOfDay(c.Date)
		lowFare.Criteria = append(lowFare.Criteria, model.LowFareCriterion{
			Origin:       c.Origin,
			Destination:  c.Destination,
			BeginDate:    day.AddDate(0, 0, -lowFareWindowDays),
			EndDate:      day.AddDate(0, 0, lowFareWindowDays),
			SelectedDate: c.Date,
		})
	}

	mode := model.PointsCashNone
	if req.OriginalBookingLocator != "" {
		if req.UsePoints && !req.OriginallyPointsOnlyBooking {
			mode = model.PointsAndCash
		} else {
			mode = model.PointsOnly
		}
	}

	fanOut := []intent.Intent{
		intent.LowFareSearch{Request: lowFare},
		intent.Search{Request: req},
		intent.Navigate{Source: intent.KindCombinationSearch},
		intent.SetPointsCashMode{Mode: mode},
	}
	fanOut = append(fanOut, act.Next...)

	return []intent.Intent{
		intent.ClearErrors{},
		intent.ClearSearchResults{},
		intent.ValidateSearchDates{Search: req, Next: []intent.Intent{
			intent.ValidateSeasonalService{Search: req, Next: fanOut},
		}},
	}
}

// validateSearchDates checks a multi-city request's leg dates are
// non-decreasing. Linear searches pass through untouched; their single or
// mirrored dates cannot conflict.
func (e *Engine) validateSearchDates(act intent.ValidateSearchDates) []intent.Intent {
	if e.state.App.SearchInput.SubType != model.SearchSubTypeMultiCity {
		return act.Next
	}

	next := act.Next
	var previous time.Time
	for _, c := range act.Search.Criteria {
		if !previous.IsZero() && c.Date.Before(previous) {
			next = []intent.Intent{intent.AddError{Key: ErrInvalidSearchDates}}
			break
		}
		previous = c.Date
	}
	return next
}

// validateSeasonalService abandons the chain behind a notice dialog when any
// leg falls inside a suspended seasonal window. The dialog is informational;
// nothing resumes the chain.
func (e *Engine) validateSeasonalService(ctx context.Context, act intent.ValidateSeasonalService) []intent.Intent {
	for _, notice := range e.state.App.SeasonalNotices {
		if notice.AppliesTo(act.Search) {
			if e.confirm != nil {
				if _, err := e.confirm.Open(ctx, confirm.DialogSeasonalService, confirm.Options{
					Fields: map[string]any{"message": notice.Message},
				}); err != nil {
					log.Printf("engine: seasonal notice dialog: %v", err)
				}
			}
			return nil
		}
	}
	return act.Next
}

// validateFareSelections re-checks the current selections before a sell.
// Pass 1 guards modify flows: the departures of the would-be booking (each
// leg's selection, or the already-booked journey where no selection exists)
// must strictly increase. Pass 2 walks the selections in leg order and
// verifies strictly increasing departures and that each selected journey and
// fare still exists in the latest result. The first violation replaces the
// continuation with one typed error.
func (e *Engine) validateFareSelections(act intent.ValidateFareSelections) []intent.Intent {
	sels := e.state.Flight.FareSelections
	result := e.state.Flight.SearchResult
	active := e.state.App.Booking.ActiveJourneys

	if len(active) > 0 {
		var previous time.Time
		for i, j := range active {
			departure := j.Designator.Departure
			if sel, ok := sels[i]; ok {
				departure = sel.Journey.Designator.Departure
			}
			if !previous.IsZero() && !departure.After(previous) {
				return []intent.Intent{intent.AddError{Key: ErrInvalidFareSelections}}
			}
			previous = departure
		}
	}

	var previous time.Time
	for _, i := range sels.SortedIndexes() {
		sel := sels[i]
		departure := sel.Journey.Designator.Departure
		if !previous.IsZero() && !departure.After(previous) {
			return []intent.Intent{intent.AddError{Key: ErrInvalidFareSelections}}
		}
		previous = departure

		if result == nil || result.Data == nil || findRawJourney(result.Data.Trips, sel.Journey.JourneyKey) == nil {
			return []intent.Intent{intent.AddError{Key: ErrJourneyNotFound}}
		}
		if !fareKeyExists(result.Data.Trips, sel.Fare.FareAvailabilityKey) {
			return []intent.Intent{intent.AddError{Key: ErrFareNotFound}}
		}
	}
	return act.Next
}

// validateAndUpdateFareSelection repairs the first round-trip selection whose
// fare key fell out of the latest result, re-resolving by journey key and
// re-selecting the club or standard fare to match the stale selection's
// product class. Only the first stale leg is fixed per pass.
func (e *Engine) validateAndUpdateFareSelection() []intent.Intent {
	input := e.state.App.SearchInput
	sels := e.state.Flight.FareSelections
	raw := e.state.Flight.SearchResult
	if input.SubType != model.SearchSubTypeRoundTrip || input.Flight.UsePoints ||
		len(sels) == 0 || raw == nil || raw.Data == nil {
		return nil
	}

	enriched := derive.SearchResult(raw)
	for _, i := range sels.SortedIndexes() {
		sel := sels[i]
		if fareKeyExists(raw.Data.Trips, sel.Fare.FareAvailabilityKey) {
			continue
		}
		journey := findEnrichedJourney(enriched.Trips, sel.Journey.JourneyKey)
		if journey == nil {
			return nil
		}
		fare := journey.StandardFare
		if sel.Fare.ProductClass == "RO" {
			fare = journey.ClubFare
		}
		if fare == nil {
			return nil
		}
		return []intent.Intent{intent.SetFareSelection{
			Index:       i,
			JourneyFare: &model.JourneyFare{Journey: *journey, Fare: *fare},
		}}
	}
	return nil
}

// search runs the availability call: a single cash request, or when points
// pricing is active a concurrent cash+points pair merged into one payload.
// The loading counter is balanced by construction: exactly one terminal
// intent decrements what the first intent incremented.
func (e *Engine) search(ctx context.Context, act intent.Search) []intent.Intent {
	if e.session != nil {
		e.session.SetSearchTimestamp(e.now())
	}

	hybrid := e.pointsAndCash && act.Request.UsePoints

	out := []intent.Intent{intent.SetSearchLoading{Loading: true}}

	var data *model.AvailabilityData
	var err error
	if hybrid {
		data, err = e.hybridSearch(ctx, act.Request)
	} else {
		data, err = e.availability.Search(ctx, act.Request, false)
	}
	if err != nil {
		log.Printf("engine: search failed: %v", err)
		return append(out,
			intent.SetSearchLoading{Loading: false},
			intent.AddError{Key: ErrSearchFailed},
		)
	}

	out = append(out,
		intent.SetSearchLoading{Loading: false},
		intent.SetSearchResult{Search: act.Request, Data: data},
	)
	if data != nil {
		out = append(out,
			intent.TrackUserDetails{KnownUser: e.state.App.User != nil},
			intent.TrackImpression{},
			intent.TrackFlightsAvailable{},
		)
	}
	return out
}

// hybridSearch issues the cash and points searches concurrently, waits for
// both, and copies every points fare into the matching cash journey's
// point-cash fare set. Either call failing fails the join.
func (e *Engine) hybridSearch(ctx context.Context, req model.SearchRequest) (*model.AvailabilityData, error) {
	type searchOutcome struct {
		data *model.AvailabilityData
		err  error
	}

	cashCh := make(chan searchOutcome, 1)
	pointsCh := make(chan searchOutcome, 1)
	go func() {
		d, err := e.availability.Search(ctx, req, false)
		cashCh <- searchOutcome{d, err}
	}()
	go func() {
		d, err := e.availability.Search(ctx, req, true)
		pointsCh <- searchOutcome{d, err}
	}()

	cash := <-cashCh
	points := <-pointsCh
	if cash.err != nil {
		return nil, cash.err
	}
	if points.err != nil {
		return nil, points.err
	}

	return MergePointsData(cash.data, points.data), nil
}

// MergePointsData copies every fare from the points payload into the
// corresponding journey of the cash payload as a point-cash fare. The cash
// fare sets are left untouched.
func MergePointsData(cash, points *model.AvailabilityData) *model.AvailabilityData {
	if cash == nil || points == nil {
		return cash
	}
	for ti := range points.Trips {
		if ti >= len(cash.Trips) {
			break
		}
		for ji := range points.Trips[ti].Journeys {
			if ji >= len(cash.Trips[ti].Journeys) {
				break
			}
			pointsJourney := points.Trips[ti].Journeys[ji]
			merged := make(map[string]model.RawFare, len(pointsJourney.Fares))
			for key, fare := range pointsJourney.Fares {
				fare.PointCash = true
				merged[key] = fare
			}
			cash.Trips[ti].Journeys[ji].PointCashFares = merged
		}
	}
	return cash
}

// lowFareSearch runs the calendar search. The continuation only survives
// success; failures surface one error alongside the counter decrement.
func (e *Engine) lowFareSearch(ctx context.Context, act intent.LowFareSearch) []intent.Intent {
	out := []intent.Intent{intent.SetLowFareSearchLoading{Loading: true}}

	data, err := e.availability.SearchLowFare(ctx, act.Request)
	if err != nil {
		log.Printf("engine: low-fare search failed: %v", err)
		return append(out,
			intent.SetLowFareSearchLoading{Loading: false},
			intent.AddError{Key: ErrLowFareSearchFailed},
		)
	}

	out = append(out,
		intent.SetLowFareSearchLoading{Loading: false},
		intent.SetLowFareSearchResult{Search: act.Request, Data: data},
	)
	return append(out, act.Next...)
}

// reselectAfterResult runs whenever a search result lands: every live
// selection is re-resolved against the fresh payload by city pair and
// journey key, keeping the club/standard facet and, in hybrid mode, pulling
// from the point-cash fare set.
func (e *Engine) reselectAfterResult() []intent.Intent {
	raw := e.state.Flight.SearchResult
	sels := e.state.Flight.FareSelections
	if raw == nil || raw.Data == nil || len(sels) == 0 {
		return nil
	}

	isAward := derive.IsAwardBooking(raw, e.state.App.Booking.AwardPointTotal)
	hybrid := isAward && e.state.Flight.PointsCashMode == model.PointsAndCash
	enriched := derive.SearchResult(raw)

	var out []intent.Intent
	for _, i := range sels.SortedIndexes() {
		sel := sels[i]
		tripIndex, journey := findJourneyByCityPair(enriched.Trips, sel.Journey.Designator, sel.Journey.JourneyKey)
		if journey == nil {
			if tripIndex < 0 {
				tripIndex = i
			}
			out = append(out, intent.SetFareSelection{Index: tripIndex, JourneyFare: nil})
			continue
		}

		fareSet := journey.Fares
		if hybrid {
			fareSet = journey.PointCashFares
		}
		fare := matchFareFacet(fareSet, sel.Fare.IsClubFare)
		if fare == nil {
			out = append(out, intent.SetFareSelection{Index: tripIndex, JourneyFare: nil})
			continue
		}
		out = append(out, intent.SetFareSelection{
			Index:       tripIndex,
			JourneyFare: &model.JourneyFare{Journey: *journey, Fare: *fare},
		})
	}
	return out
}

// changeUsePoints re-runs both active searches (when a prior low-fare search
// exists) with the new points flag, inside a session reset that also rewrites
// the stored search input.
func (e *Engine) changeUsePoints(act intent.ChangeUsePoints) []intent.Intent {
	var out []intent.Intent

	lowFare := e.state.Flight.LowFareSearchResult
	result := e.state.Flight.SearchResult
	if lowFare != nil && result != nil {
		input := e.state.App.SearchInput
		input.Flight.UsePoints = act.UsePoints

		lowFareReq := lowFare.Search
		lowFareReq.UsePoints = act.UsePoints
		searchReq := result.Search
		searchReq.UsePoints = act.UsePoints

		out = append(out,
			intent.SetSearchInput{Input: input},
			intent.ResetSession{Next: []intent.Intent{
				intent.LowFareSearch{Request: lowFareReq},
				intent.Search{Request: searchReq},
			}},
		)
	}

	if act.ClearSelections {
		out = append(out, intent.ClearFareSelections{})
	}
	return out
}

// selectLowestFares picks the cheapest eligible fare per leg. Eligible fares
// are the standard slot, the club slot for members, and the card-holder slot
// for card holders. Any leg without an eligible journey fails the whole
// selection.
func (e *Engine) selectLowestFares() []intent.Intent {
	raw := e.state.Flight.SearchResult
	if raw == nil || raw.Data == nil {
		return []intent.Intent{intent.SelectLowestFaresFailure{}}
	}

	user := e.state.App.User
	isClub := user.IsClubMember()
	isCardHolder := user.IsCardHolder()
	enriched := derive.SearchResult(raw)

	out := make([]intent.Intent, 0, len(enriched.Trips))
	for index, trip := range enriched.Trips {
		var bestJourney *model.Journey
		var bestFare *model.Fare
		for ji := range trip.Journeys {
			journey := &trip.Journeys[ji]
			if len(journey.Fares) == 0 {
				continue
			}
			candidates := make([]*model.Fare, 0, 3)
			if journey.StandardFare != nil {
				candidates = append(candidates, journey.StandardFare)
			}
			if isClub && journey.ClubFare != nil {
				candidates = append(candidates, journey.ClubFare)
			}
			if isCardHolder && journey.CardHolderFare != nil {
				candidates = append(candidates, journey.CardHolderFare)
			}
			var lowest *model.Fare
			for _, f := range candidates {
				if lowest == nil || f.Amount < lowest.Amount {
					lowest = f
				}
			}
			if lowest == nil {
				continue
			}
			if bestFare == nil || lowest.Amount < bestFare.Amount {
				bestJourney = journey
				bestFare = lowest
			}
		}
		if bestJourney == nil {
			return []intent.Intent{intent.SelectLowestFaresFailure{}}
		}
		out = append(out, intent.SetFareSelection{
			Index:       index,
			JourneyFare: &model.JourneyFare{Journey: *bestJourney, Fare: *bestFare},
		})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func findRawJourney(trips []model.RawTrip, journeyKey string) *model.RawJourney {
	for ti := range trips {
		for ji := range trips[ti].Journeys {
			if trips[ti].Journeys[ji].JourneyKey == journeyKey {
				return &trips[ti].Journeys[ji]
			}
		}
	}
	return nil
}

func fareKeyExists(trips []model.RawTrip, fareKey string) bool {
	for ti := range trips {
		for ji := range trips[ti].Journeys {
			j := trips[ti].Journeys[ji]
			if _, ok := j.Fares[fareKey]; ok {
				return true
			}
			if _, ok := j.PointCashFares[fareKey]; ok {
				return true
			}
		}
	}
	return false
}

func findEnrichedJourney(trips []model.Trip, journeyKey string) *model.Journey {
	for ti := range trips {
		for ji := range trips[ti].Journeys {
			if trips[ti].Journeys[ji].JourneyKey == journeyKey {
				return &trips[ti].Journeys[ji]
			}
		}
	}
	return nil
}

// findJourneyByCityPair locates the trip matching the selection's city pair
// and, inside it, the journey with the selection's key.
func findJourneyByCityPair(trips []model.Trip, d model.Designator, journeyKey string) (int, *model.Journey) {
	for ti := range trips {
		if trips[ti].Origin != d.Origin || trips[ti].Destination != d.Destination {
			continue
		}
		for ji := range trips[ti].Journeys {
			if trips[ti].Journeys[ji].JourneyKey == journeyKey {
				return ti, &trips[ti].Journeys[ji]
			}
		}
		return ti, nil
	}
	return -1, nil
}

// matchFareFacet picks the fare in the set whose club flag matches, in
// stable key order.
func matchFareFacet(fares map[string]model.Fare, isClub bool) *model.Fare {
	for _, key := range model.SortedFareKeys(fares) {
		if f := fares[key]; f.IsClubFare == isClub {
			return &f
		}
	}
	return nil
}

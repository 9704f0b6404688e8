package state

import (
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

func reduceFlight(s FlightState, it intent.Intent) FlightState {
	switch act := it.(type) {
	case intent.SetSearchResult:
		s.SearchResult = &model.RawSearchResult{Search: act.Search, Data: act.Data}
		return s

	case intent.SetLowFareSearchResult:
		s.LowFareSearchResult = &model.RawLowFareResult{Search: act.Search, Data: act.Data}
		return s

	case intent.ClearSearchResults:
		s.SearchResult = nil
		s.LowFareSearchResult = nil
		s.FareSelections = model.FareSelections{}
		s.LowFareViewSelections = model.LowFareViewSelections{}
		s.PointsCashMode = model.PointsCashNone
		return s

	case intent.ClearFareAndViewSelections:
		s.FareSelections = model.FareSelections{}
		s.LowFareViewSelections = model.LowFareViewSelections{}
		s.PointsCashMode = model.PointsCashNone
		return s

	case intent.ClearFareSelections:
		s.FareSelections = model.FareSelections{}
		s.PointsCashMode = model.PointsCashNone
		return s

	case intent.SetSearchLoading:
		if act.Loading {
			s.SearchLoading++
		} else {
			s.SearchLoading--
		}
		return s

	case intent.SetLowFareSearchLoading:
		if act.Loading {
			s.LowFareSearchLoading++
		} else {
			s.LowFareSearchLoading--
		}
		return s

	case intent.SetFareSelection:
		// The prior selections become the rollback shadow either way. A nil
		// journey/fare removes the index outright rather than storing a null.
		previous := s.PreviousFareSelections.Clone()
		for i, jf := range s.FareSelections {
			previous[i] = jf
		}
		next := s.FareSelections.Clone()
		if act.JourneyFare != nil {
			next[act.Index] = *act.JourneyFare
		} else {
			delete(next, act.Index)
		}
		s.FareSelections = next
		s.PreviousFareSelections = previous
		return s

	case intent.SetRedemptionFee:
		s.RedemptionFee = act.Amount
		return s

	case intent.ChangeLowFareView:
		views := model.LowFareViewSelections{act.Index: act.View}
		if s.SearchResult != nil && s.SearchResult.Data != nil && s.LowFareSearchResult != nil {
			for i := range s.LowFareSearchResult.Search.Criteria {
				views[i] = act.View
			}
		}
		s.LowFareViewSelections = views
		return s

	case intent.SelectStandardFares:
		next := make(model.FareSelections, len(s.FareSelections))
		for i, jf := range s.FareSelections {
			fare := jf.Journey.StandardFare
			if s.PointsCashMode == model.PointsAndCash {
				fare = jf.Journey.PointCash
			}
			if fare != nil {
				jf.Fare = *fare
			}
			next[i] = jf
		}
		s.FareSelections = next
		return s

	case intent.SelectClubFares:
		next := make(model.FareSelections, len(s.FareSelections))
		for i, jf := range s.FareSelections {
			var fare *model.Fare
			if s.PointsCashMode == model.PointsAndCash {
				fare = jf.Journey.PointCashClubFare
				if fare == nil {
					fare = jf.Journey.PointCash
				}
			} else {
				fare = jf.Journey.ClubFare
				if fare == nil {
					fare = jf.Journey.StandardFare
				}
			}
			if fare != nil {
				jf.Fare = *fare
			}
			next[i] = jf
		}
		s.FareSelections = next
		return s

	case intent.SetPointsCashMode:
		s.PointsCashMode = act.Mode
		return s
	}

	return s
}

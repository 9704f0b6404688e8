// Package state holds the workflow's single state snapshot and the pure
// reducers that produce the next snapshot from an intent. Reducers are the
// only writers; everything else reads snapshots.
package state

import (
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// FlightState is the fare-search slice: results, selections, pending
// counters, redemption mode and fee.
type FlightState struct {
	SearchResult           *model.RawSearchResult
	LowFareSearchResult    *model.RawLowFareResult
	FareSelections         model.FareSelections
	PreviousFareSelections model.FareSelections
	LowFareViewSelections  model.LowFareViewSelections
	SearchLoading          int
	LowFareSearchLoading   int
	PointsCashMode         model.PointsCashMode
	RedemptionFee          float64
}

// AppState is the ambient slice the scheduler reads: errors, session, user,
// navigation context, booking in progress, and external resource snapshots.
type AppState struct {
	Errors          []string
	User            *model.User
	LoggedIn        bool
	Flow            string
	SubFlow         string
	CurrentURL      string
	PendingStep     string
	SearchInput     model.SearchInput
	SeasonalNotices []model.SeasonalNotice
	Booking         model.BookingState
	PackageResult   *model.PackageResult
}

// State is the full immutable snapshot.
type State struct {
	Flight FlightState
	App    AppState
}

// Initial returns the zero snapshot.
func Initial() State {
	return State{
		Flight: FlightState{
			FareSelections:         model.FareSelections{},
			PreviousFareSelections: model.FareSelections{},
			LowFareViewSelections:  model.LowFareViewSelections{},
		},
	}
}

// Reduce applies one intent to the snapshot and returns the next snapshot.
// It is total: intents without a state transition return the snapshot
// unchanged.
func Reduce(s State, it intent.Intent) State {
	s.Flight = reduceFlight(s.Flight, it)
	s.App = reduceApp(s.App, it)
	return s
}

// Package engine is the continuation scheduler: a single-writer interpreter
// that consumes intents one at a time, applies the store reducer, runs the
// intent's handler against a coherent state snapshot, and queues whatever
// intents the handler returns. Handlers never touch state directly; every
// state change goes through the reducer.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cx-tal-miterani/fare-workflow/internal/availability"
	"github.com/cx-tal-miterani/fare-workflow/internal/confirm"
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
	"github.com/cx-tal-miterani/fare-workflow/internal/state"
)

// Error keys surfaced on the global error list.
const (
	ErrInvalidSearchDates    = "invalid-search-dates"
	ErrInvalidFareSelections = "invalid-fare-selections"
	ErrJourneyNotFound       = "invalid-fare-selection-journey-not-found"
	ErrFareNotFound          = "invalid-fare-selection-fare-not-found"
	ErrSearchFailed          = "search-failed"
	ErrLowFareSearchFailed   = "low-fare-search-failed"
	ErrSellFailed            = "sell-failed"
	ErrModifySellFailed      = "modify-sell-failed"
	ErrLowestFaresFailed     = "lowest-fares-unavailable"
)

const defaultLoyaltyProgramCode = "NK"

// BookingStore persists committed sell transactions.
type BookingStore interface {
	SaveBooking(ctx context.Context, data *model.BookingData) error
}

// Notifier receives a snapshot summary after every dispatch cycle.
type Notifier interface {
	Publish(snapshot Snapshot)
}

// SessionStore records session-scoped analytics timestamps.
type SessionStore interface {
	SetSearchTimestamp(t time.Time)
}

// Snapshot is the summary pushed to notifier subscribers.
type Snapshot struct {
	SearchLoading        int                  `json:"searchLoading"`
	LowFareSearchLoading int                  `json:"lowFareSearchLoading"`
	SelectionCount       int                  `json:"selectionCount"`
	PointsCashMode       model.PointsCashMode `json:"pointsCashMode"`
	Errors               []string             `json:"errors,omitempty"`
}

// Config wires the engine's collaborators. Bookings, Notifier and Session
// are optional.
type Config struct {
	Availability       availability.Client
	Confirm            confirm.Host
	Bookings           BookingStore
	Notifier           Notifier
	Session            SessionStore
	PointsAndCash      bool
	LoyaltyProgramCode string
	Now                func() time.Time
}

// Engine interprets intents against a single state snapshot.
type Engine struct {
	mu            sync.Mutex
	state         state.State
	availability  availability.Client
	confirm       confirm.Host
	bookings      BookingStore
	notifier      Notifier
	session       SessionStore
	pointsAndCash bool
	programCode   string
	now           func() time.Time
}

// New creates an engine with the initial snapshot.
func New(cfg Config) *Engine {
	e := &Engine{
		state:         state.Initial(),
		availability:  cfg.Availability,
		confirm:       cfg.Confirm,
		bookings:      cfg.Bookings,
		notifier:      cfg.Notifier,
		session:       cfg.Session,
		pointsAndCash: cfg.PointsAndCash,
		programCode:   cfg.LoyaltyProgramCode,
		now:           cfg.Now,
	}
	if e.programCode == "" {
		e.programCode = defaultLoyaltyProgramCode
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Dispatch runs the given intents and everything they spawn to quiescence,
// in strict FIFO order, and returns the full ordered list of intents
// processed. Processing is single-threaded: concurrent Dispatch calls
// serialize, which is what keeps the store single-writer.
func (e *Engine) Dispatch(ctx context.Context, intents ...intent.Intent) []intent.Intent {
	e.mu.Lock()
	defer e.mu.Unlock()

	queue := make([]intent.Intent, 0, len(intents))
	queue = append(queue, intents...)
	var processed []intent.Intent

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		e.state = state.Reduce(e.state, it)
		processed = append(processed, it)

		queue = append(queue, e.handle(ctx, it)...)
	}

	if e.notifier != nil {
		e.notifier.Publish(e.snapshotLocked())
	}
	return processed
}

// Snapshot returns a copy of the current state.
func (e *Engine) State() state.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Now returns the engine's clock reading.
func (e *Engine) Now() time.Time {
	return e.now()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		SearchLoading:        e.state.Flight.SearchLoading,
		LowFareSearchLoading: e.state.Flight.LowFareSearchLoading,
		SelectionCount:       len(e.state.Flight.FareSelections),
		PointsCashMode:       e.state.Flight.PointsCashMode,
		Errors:               e.state.App.Errors,
	}
}

// handle runs the effect for one intent. Intents with no effect here are
// either pure store transitions or boundary intents consumed elsewhere.
func (e *Engine) handle(ctx context.Context, it intent.Intent) []intent.Intent {
	switch act := it.(type) {
	case intent.CombinationSearch:
		return e.combinationSearch(act)
	case intent.ValidateSearchDates:
		return e.validateSearchDates(act)
	case intent.ValidateSeasonalService:
		return e.validateSeasonalService(ctx, act)
	case intent.ValidateFareSelections:
		return e.validateFareSelections(act)
	case intent.ValidateAndUpdateFareSelection:
		return e.validateAndUpdateFareSelection()
	case intent.Search:
		return e.search(ctx, act)
	case intent.LowFareSearch:
		return e.lowFareSearch(ctx, act)
	case intent.SetSearchResult:
		return e.reselectAfterResult()
	case intent.SetFareSelection:
		return e.refreshRedemptionFee(ctx, act)
	case intent.ChangeUsePoints:
		return e.changeUsePoints(act)
	case intent.GetEarlyFlightOk:
		return e.getEarlyFlightOk(ctx, act)
	case intent.SellTrip:
		return e.sellTrip(ctx, act)
	case intent.ModifySellTrip:
		return e.modifySellTrip(ctx, act)
	case intent.UpsellClubAndSellTrip:
		return e.upsellClubAndSellTrip(ctx)
	case intent.SelectStandardFaresAndSellTrip:
		return e.selectStandardFaresAndSellTrip()
	case intent.SelectClubFaresAndSellTrip:
		return e.selectClubFaresAndSellTrip(act)
	case intent.CheckForSufficientPointsAndSellTrip:
		return e.checkForSufficientPoints(ctx, act)
	case intent.SelectLowestFares:
		return e.selectLowestFares()
	case intent.SelectLowestFaresFailure:
		return []intent.Intent{intent.AddError{Key: ErrLowestFaresFailed}}
	case intent.Navigate:
		return e.navigate(act)
	case intent.ShowModifyFlightModal:
		return e.showModifyFlightModal(ctx)
	case intent.ResetSession:
		return act.Next
	case intent.AddClubMembership:
		return act.Next
	case intent.LoadExtrasAvailability:
		return act.Next
	case intent.ShowBundleOffer:
		return act.OnSelect
	case intent.SetBookingData:
		if e.bookings != nil && act.Data != nil {
			if err := e.bookings.SaveBooking(ctx, act.Data); err != nil {
				log.Printf("engine: persist booking %s: %v", act.Data.RecordLocator, err)
			}
		}
		return nil
	case intent.SetUser:
		return e.userChanged(ctx)
	case intent.AddError:
		log.Printf("engine: error surfaced: %s", act.Key)
		return nil
	}
	return nil
}

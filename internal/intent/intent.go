// Package intent defines the closed catalog of workflow intents. Each intent
// carries only its payload; intents that gate further work also carry a Next
// continuation, the ordered follow-up intents to dispatch once the step
// succeeds.
package intent

import "github.com/cx-tal-miterani/fare-workflow/internal/model"

// Kind tags an intent variant.
type Kind string

const (
	KindCombinationSearch              Kind = "flight.combination-search"
	KindValidateSearchDates            Kind = "flight.validate-search-dates"
	KindValidateSeasonalService        Kind = "flight.validate-seasonal-service"
	KindValidateFareSelections         Kind = "flight.validate-fare-selections"
	KindValidateAndUpdateFareSelection Kind = "flight.validate-and-update-fare-selection"
	KindSearch                         Kind = "flight.search"
	KindLowFareSearch                  Kind = "flight.low-fare-search"
	KindSetSearchResult                Kind = "flight.set-search-result"
	KindSetLowFareSearchResult         Kind = "flight.set-low-fare-search-result"
	KindClearSearchResults             Kind = "flight.clear-search-results"
	KindClearFareAndViewSelections     Kind = "flight.clear-fare-and-view-selections"
	KindClearFareSelections            Kind = "flight.clear-fare-selections"
	KindSetSearchLoading               Kind = "flight.set-search-loading"
	KindSetLowFareSearchLoading        Kind = "flight.set-low-fare-search-loading"
	KindSetFareSelection               Kind = "flight.set-fare-selection"
	KindSelectStandardFares            Kind = "flight.select-standard-fares"
	KindSelectClubFares                Kind = "flight.select-club-fares"
	KindSelectLowestFares              Kind = "flight.select-lowest-fares"
	KindSelectLowestFaresFailure       Kind = "flight.select-lowest-fares-failure"
	KindChangeLowFareView              Kind = "flight.change-low-fare-view"
	KindChangeUsePoints                Kind = "flight.change-use-points"
	KindGetEarlyFlightOk               Kind = "flight.get-early-flight-ok"
	KindSellTrip                       Kind = "flight.sell-trip"
	KindModifySellTrip                 Kind = "flight.modify-sell-trip"
	KindUpsellClubAndSellTrip          Kind = "flight.upsell-club-and-sell-trip"
	KindSelectStandardFaresAndSellTrip Kind = "flight.select-standard-fares-and-sell-trip"
	KindSelectClubFaresAndSellTrip     Kind = "flight.select-club-fares-and-sell-trip"
	KindCheckSufficientPointsAndSell   Kind = "flight.check-sufficient-points-and-sell-trip"
	KindNavigate                       Kind = "flight.navigate"
	KindShowModifyFlightModal          Kind = "flight.show-modify-flight-modal"
	KindSetPointsCashMode              Kind = "flight.set-points-cash-mode"
	KindSetRedemptionFee               Kind = "flight.set-redemption-fee"

	KindClearErrors             Kind = "app.clear-errors"
	KindAddError                Kind = "app.add-error"
	KindResetSession            Kind = "app.reset-session"
	KindSetSearchInput          Kind = "app.set-search-input"
	KindSetUser                 Kind = "app.set-user"
	KindSetSeasonalNotices      Kind = "app.set-seasonal-notices"
	KindUpdatePointBalance      Kind = "app.update-point-balance"
	KindSetBookingData          Kind = "booking.set-data"
	KindFetchBookingData        Kind = "booking.fetch-data"
	KindSetActiveJourneys       Kind = "booking.set-active-journeys"
	KindAddClubMembership       Kind = "booking.add-club-membership"
	KindRefreshConfiguration    Kind = "booking.refresh-configuration"
	KindRefreshPointMultipliers Kind = "booking.refresh-point-multipliers"
	KindLoadExtrasAvailability  Kind = "booking.load-extras-availability"
	KindRepriceBundles          Kind = "booking.reprice-bundles"
	KindShowBundleOffer         Kind = "booking.show-bundle-offer"
	KindNavigateTo              Kind = "nav.navigate-to"
	KindNavigateNext            Kind = "nav.go-next"
	KindSetPendingStep          Kind = "nav.set-pending-step"
	KindSetFlow                 Kind = "nav.set-flow"
	KindSetSubFlow              Kind = "nav.set-sub-flow"
	KindPackageNavigate         Kind = "package.navigate"
	KindTrackUserDetails        Kind = "analytics.user-details"
	KindTrackImpression         Kind = "analytics.impression"
	KindTrackFlightsAvailable   Kind = "analytics.flights-available"
)

// Intent is one unit of work for the continuation scheduler.
type Intent interface {
	Kind() Kind
}

// CombinationSearch kicks off the full search chain: clear state, validate
// dates and seasonal service, then fan out into low-fare search, fare search,
// navigation, points-cash mode selection, and the caller's continuation.
type CombinationSearch struct {
	Next []Intent
}

// ValidateSearchDates checks that a multi-city request's leg dates are
// non-decreasing; on the first violation the continuation is replaced by a
// single error intent.
type ValidateSearchDates struct {
	Search model.SearchRequest
	Next   []Intent
}

// ValidateSeasonalService blocks the chain with a notice dialog when any leg
// falls inside a seasonal suspension window.
type ValidateSeasonalService struct {
	Search model.SearchRequest
	Next   []Intent
}

// ValidateFareSelections re-checks every current selection against the
// latest search result before a sell.
type ValidateFareSelections struct {
	Next []Intent
}

// ValidateAndUpdateFareSelection repairs the first stale round-trip
// selection by re-resolving it against the latest result.
type ValidateAndUpdateFareSelection struct{}

// Search runs an availability search (cash, or the hybrid dual search when
// points pricing is active).
type Search struct {
	Request model.SearchRequest
}

// LowFareSearch runs a low-fare calendar search.
type LowFareSearch struct {
	Request model.LowFareSearchRequest
	Next    []Intent
}

// SetSearchResult stores a search payload.
type SetSearchResult struct {
	Search model.SearchRequest
	Data   *model.AvailabilityData
}

// SetLowFareSearchResult stores a low-fare payload.
type SetLowFareSearchResult struct {
	Search model.LowFareSearchRequest
	Data   *model.LowFareData
}

// ClearSearchResults wipes results, selections, views and points-cash mode.
type ClearSearchResults struct{}

// ClearFareAndViewSelections clears selections and views, keeping results.
type ClearFareAndViewSelections struct{}

// ClearFareSelections clears only the fare selections and points-cash mode.
type ClearFareSelections struct{}

// SetSearchLoading adjusts the fare-search pending counter.
type SetSearchLoading struct {
	Loading bool
}

// SetLowFareSearchLoading adjusts the low-fare pending counter.
type SetLowFareSearchLoading struct {
	Loading bool
}

// SetFareSelection stores (JourneyFare non-nil) or removes (nil) the
// selection for one leg.
type SetFareSelection struct {
	Index       int
	JourneyFare *model.JourneyFare
}

// SelectStandardFares rewrites every selection to its journey's standard
// fare (or point-cash fare in hybrid mode).
type SelectStandardFares struct{}

// SelectClubFares rewrites every selection to its journey's club fare,
// falling back to standard where no club fare exists.
type SelectClubFares struct{}

// SelectLowestFares picks the cheapest eligible fare per leg.
type SelectLowestFares struct{}

// SelectLowestFaresFailure reports that no complete lowest-fare selection
// could be built.
type SelectLowestFaresFailure struct{}

// ChangeLowFareView switches the calendar view for every leg.
type ChangeLowFareView struct {
	Index int
	View  model.LowFareView
}

// ChangeUsePoints toggles points pricing and re-runs the active searches.
type ChangeUsePoints struct {
	UsePoints       bool
	ClearSelections bool
}

// GetEarlyFlightOk asks the user to confirm a post-midnight departure before
// dispatching the continuation.
type GetEarlyFlightOk struct {
	Next []Intent
}

// SellTrip executes the purchase transaction for the current selections.
type SellTrip struct {
	AddClubMembership bool
}

// ModifySellTrip re-books an existing reservation with the current
// selections.
type ModifySellTrip struct {
	Signup       string
	EnrollInClub bool
}

// UpsellClubAndSellTrip routes the sell through the club-membership upsell.
type UpsellClubAndSellTrip struct{}

// SelectStandardFaresAndSellTrip selects standard fares and sells, via the
// early-flight confirmation.
type SelectStandardFaresAndSellTrip struct{}

// SelectClubFaresAndSellTrip selects club fares and sells, via the
// early-flight confirmation.
type SelectClubFaresAndSellTrip struct {
	Signup       string
	EnrollInClub bool
}

// CheckForSufficientPointsAndSellTrip verifies the user's point balance
// covers the selection before selling, offering recovery paths when it does
// not.
type CheckForSufficientPointsAndSellTrip struct {
	Signup       string
	EnrollInClub bool
}

// Navigate decides the next route from the intent that finished.
type Navigate struct {
	Source Kind
}

// ShowModifyFlightModal opens the modify-flight dialog and enters the modify
// sub-flow.
type ShowModifyFlightModal struct{}

// SetPointsCashMode stores the active redemption mode.
type SetPointsCashMode struct {
	Mode model.PointsCashMode
}

// SetRedemptionFee stores the award-booking redemption fee.
type SetRedemptionFee struct {
	Amount float64
}

func (CombinationSearch) Kind() Kind                   { return KindCombinationSearch }
func (ValidateSearchDates) Kind() Kind                 { return KindValidateSearchDates }
func (ValidateSeasonalService) Kind() Kind             { return KindValidateSeasonalService }
func (ValidateFareSelections) Kind() Kind              { return KindValidateFareSelections }
func (ValidateAndUpdateFareSelection) Kind() Kind      { return KindValidateAndUpdateFareSelection }
func (Search) Kind() Kind                              { return KindSearch }
func (LowFareSearch) Kind() Kind                       { return KindLowFareSearch }
func (SetSearchResult) Kind() Kind                     { return KindSetSearchResult }
func (SetLowFareSearchResult) Kind() Kind              { return KindSetLowFareSearchResult }
func (ClearSearchResults) Kind() Kind                  { return KindClearSearchResults }
func (ClearFareAndViewSelections) Kind() Kind          { return KindClearFareAndViewSelections }
func (ClearFareSelections) Kind() Kind                 { return KindClearFareSelections }
func (SetSearchLoading) Kind() Kind                    { return KindSetSearchLoading }
func (SetLowFareSearchLoading) Kind() Kind             { return KindSetLowFareSearchLoading }
func (SetFareSelection) Kind() Kind                    { return KindSetFareSelection }
func (SelectStandardFares) Kind() Kind                 { return KindSelectStandardFares }
func (SelectClubFares) Kind() Kind                     { return KindSelectClubFares }
func (SelectLowestFares) Kind() Kind                   { return KindSelectLowestFares }
func (SelectLowestFaresFailure) Kind() Kind            { return KindSelectLowestFaresFailure }
func (ChangeLowFareView) Kind() Kind                   { return KindChangeLowFareView }
func (ChangeUsePoints) Kind() Kind                     { return KindChangeUsePoints }
func (GetEarlyFlightOk) Kind() Kind                    { return KindGetEarlyFlightOk }
func (SellTrip) Kind() Kind                            { return KindSellTrip }
func (ModifySellTrip) Kind() Kind                      { return KindModifySellTrip }
func (UpsellClubAndSellTrip) Kind() Kind               { return KindUpsellClubAndSellTrip }
func (SelectStandardFaresAndSellTrip) Kind() Kind      { return KindSelectStandardFaresAndSellTrip }
func (SelectClubFaresAndSellTrip) Kind() Kind          { return KindSelectClubFaresAndSellTrip }
func (CheckForSufficientPointsAndSellTrip) Kind() Kind { return KindCheckSufficientPointsAndSell }
func (Navigate) Kind() Kind                            { return KindNavigate }
func (ShowModifyFlightModal) Kind() Kind               { return KindShowModifyFlightModal }
func (SetPointsCashMode) Kind() Kind                   { return KindSetPointsCashMode }
func (SetRedemptionFee) Kind() Kind                    { return KindSetRedemptionFee }

package intent

import "github.com/cx-tal-miterani/fare-workflow/internal/model"

// ClearErrors empties the global error list.
type ClearErrors struct{}

// AddError appends a typed error key to the global error list. Validation
// failures replace their continuation with exactly one of these.
type AddError struct {
	Key string
}

// ResetSession clears the in-progress booking session and then dispatches
// the wrapped continuation.
type ResetSession struct {
	Next []Intent
}

// SetSearchInput replaces the availability-form state.
type SetSearchInput struct {
	Input model.SearchInput
}

// SetUser replaces the active account.
type SetUser struct {
	User *model.User
}

// SetSeasonalNotices replaces the suspended seasonal route list.
type SetSeasonalNotices struct {
	Notices []model.SeasonalNotice
}

// UpdatePointBalance replaces the user's loyalty point balance.
type UpdatePointBalance struct {
	Amount float64
}

// SetBookingData commits a sell response to the booking slice.
type SetBookingData struct {
	Data *model.BookingData
}

// FetchBookingData asks the booking collaborator to reload the record.
type FetchBookingData struct{}

// SetActiveJourneys records the journeys already on the booking being
// modified, plus its award-point total.
type SetActiveJourneys struct {
	Journeys        []model.Journey
	AwardPointTotal float64
}

// AddClubMembership enrolls the account in the club program and then
// dispatches the continuation.
type AddClubMembership struct {
	Signup string
	Next   []Intent
}

// RefreshConfiguration reloads booking configuration after a sell.
type RefreshConfiguration struct{}

// RefreshPointMultipliers reloads the point accrual multipliers.
type RefreshPointMultipliers struct{}

// LoadExtrasAvailability loads ancillary-service availability for the new
// booking and then dispatches the continuation.
type LoadExtrasAvailability struct {
	Next []Intent
}

// RepriceBundles re-prices already-selected bundles after a modify-sell.
type RepriceBundles struct{}

// ShowBundleOffer presents the post-sell bundle offer.
type ShowBundleOffer struct {
	OnSelect []Intent
}

// NavigateTo routes to the given path segments.
type NavigateTo struct {
	Path []string
}

// NavigateNext advances to the flow's next configured step.
type NavigateNext struct{}

// SetPendingStep records the step to run after the next navigation.
type SetPendingStep struct {
	Step string
}

// SetFlow records the active top-level flow ("book", "my-trips", "check-in").
type SetFlow struct {
	Flow string
}

// SetSubFlow enters a named sub-flow.
type SetSubFlow struct {
	SubFlow string
}

// PackageNavigate hands routing over to the package workflow.
type PackageNavigate struct{}

// TrackUserDetails, TrackImpression and TrackFlightsAvailable are the
// analytics beacons emitted after a search lands with data, in that order.
type TrackUserDetails struct {
	KnownUser bool
}

type TrackImpression struct{}

type TrackFlightsAvailable struct{}

func (ClearErrors) Kind() Kind             { return KindClearErrors }
func (AddError) Kind() Kind                { return KindAddError }
func (ResetSession) Kind() Kind            { return KindResetSession }
func (SetSearchInput) Kind() Kind          { return KindSetSearchInput }
func (SetUser) Kind() Kind                 { return KindSetUser }
func (SetSeasonalNotices) Kind() Kind      { return KindSetSeasonalNotices }
func (UpdatePointBalance) Kind() Kind      { return KindUpdatePointBalance }
func (SetBookingData) Kind() Kind          { return KindSetBookingData }
func (FetchBookingData) Kind() Kind        { return KindFetchBookingData }
func (SetActiveJourneys) Kind() Kind       { return KindSetActiveJourneys }
func (AddClubMembership) Kind() Kind       { return KindAddClubMembership }
func (RefreshConfiguration) Kind() Kind    { return KindRefreshConfiguration }
func (RefreshPointMultipliers) Kind() Kind { return KindRefreshPointMultipliers }
func (LoadExtrasAvailability) Kind() Kind  { return KindLoadExtrasAvailability }
func (RepriceBundles) Kind() Kind          { return KindRepriceBundles }
func (ShowBundleOffer) Kind() Kind         { return KindShowBundleOffer }
func (NavigateTo) Kind() Kind              { return KindNavigateTo }
func (NavigateNext) Kind() Kind            { return KindNavigateNext }
func (SetPendingStep) Kind() Kind          { return KindSetPendingStep }
func (SetFlow) Kind() Kind                 { return KindSetFlow }
func (SetSubFlow) Kind() Kind              { return KindSetSubFlow }
func (PackageNavigate) Kind() Kind         { return KindPackageNavigate }
func (TrackUserDetails) Kind() Kind        { return KindTrackUserDetails }
func (TrackImpression) Kind() Kind         { return KindTrackImpression }
func (TrackFlightsAvailable) Kind() Kind   { return KindTrackFlightsAvailable }

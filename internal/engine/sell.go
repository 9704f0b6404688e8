package engine

import (
	"context"
	"log"

	"github.com/cx-tal-miterani/fare-workflow/internal/availability"
	"github.com/cx-tal-miterani/fare-workflow/internal/confirm"
	"github.com/cx-tal-miterani/fare-workflow/internal/derive"
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

const flowBook = "book"

// Loyalty kinds the redemption-fee endpoint distinguishes.
const (
	loyaltyPointsOnly        = "PointsOnly"
	loyaltyPointsAndMonetary = "PointsAndMonetary"
)

// getEarlyFlightOk gates the continuation behind an early-departure
// confirmation. Only the first early-flagged selection prompts; with no
// early selection the continuation passes straight through.
func (e *Engine) getEarlyFlightOk(ctx context.Context, act intent.GetEarlyFlightOk) []intent.Intent {
	sels := e.state.Flight.FareSelections
	var early *model.JourneyFare
	for _, i := range sels.SortedIndexes() {
		if sel := sels[i]; sel.Journey.IsEarly {
			early = &sel
			break
		}
	}
	if early == nil || e.confirm == nil {
		return act.Next
	}

	fields := map[string]any{"departDate": early.Journey.Designator.Departure}
	if len(early.Journey.Segments) > 0 {
		fields["flightNumber"] = early.Journey.Segments[0].FlightNumber
	}
	ch, err := e.confirm.Open(ctx, confirm.DialogEarlyFlight, confirm.Options{Fields: fields})
	if err != nil {
		log.Printf("engine: early flight dialog: %v", err)
		return nil
	}
	resp, ok := confirm.Await(ctx, ch)
	if !ok || !resp.Confirmed {
		return nil
	}
	return act.Next
}

// sellTrip executes the purchase with the current selections. Success
// commits the booking and chains extras loading, configuration and point
// multiplier refreshes, and routing; a requested club membership wraps those
// follow-ups. Failure emits one error and commits nothing.
func (e *Engine) sellTrip(ctx context.Context, act intent.SellTrip) []intent.Intent {
	input := e.state.App.SearchInput
	isAward := derive.IsAwardBooking(e.state.Flight.SearchResult, e.state.App.Booking.AwardPointTotal)

	resp, err := e.availability.SellTrip(ctx, availability.SellRequest{
		Selections: e.state.Flight.FareSelections,
		Passengers: input.Flight.Passengers,
		PromoCode:  input.Flight.PromoCode,
		IsAward:    isAward,
		Mode:       e.state.Flight.PointsCashMode,
	})
	if err != nil {
		log.Printf("engine: sell failed: %v", err)
		return []intent.Intent{intent.ClearErrors{}, intent.AddError{Key: ErrSellFailed}}
	}

	followUps := []intent.Intent{
		intent.RefreshConfiguration{},
		intent.RefreshPointMultipliers{},
		intent.Navigate{Source: intent.KindSellTrip},
	}
	var outer []intent.Intent
	if act.AddClubMembership {
		outer = []intent.Intent{intent.AddClubMembership{Next: followUps}}
	} else {
		outer = followUps
	}

	var data *model.BookingData
	if resp != nil {
		data = resp.Data
	}
	out := []intent.Intent{
		intent.ClearErrors{},
		intent.SetBookingData{Data: data},
		intent.LoadExtrasAvailability{},
	}
	return append(out, outer...)
}

// modifySellTrip re-books an existing reservation with the current
// selections. A club signup/enrollment wraps the follow-ups in the
// membership step, and already-selected bundles trigger a re-pricing pass.
func (e *Engine) modifySellTrip(ctx context.Context, act intent.ModifySellTrip) []intent.Intent {
	input := e.state.App.SearchInput
	isAward := derive.IsAwardBooking(e.state.Flight.SearchResult, e.state.App.Booking.AwardPointTotal)

	resp, err := e.availability.ModifySellTrip(ctx, availability.ModifySellRequest{
		Selections:          e.state.Flight.FareSelections,
		Passengers:          input.Flight.Passengers,
		OriginalJourneyKeys: input.OriginalJourneyKeys,
		IsAward:             isAward,
		Mode:                e.state.Flight.PointsCashMode,
	})
	if err != nil {
		log.Printf("engine: modify sell failed: %v", err)
		return []intent.Intent{intent.ClearErrors{}, intent.AddError{Key: ErrModifySellFailed}}
	}

	var followUps []intent.Intent
	if act.Signup != "" || act.EnrollInClub {
		followUps = []intent.Intent{intent.AddClubMembership{Signup: act.Signup, Next: []intent.Intent{
			intent.RefreshConfiguration{},
			intent.FetchBookingData{},
			intent.Navigate{Source: intent.KindModifySellTrip},
		}}}
	} else {
		followUps = []intent.Intent{
			intent.RefreshConfiguration{},
			intent.Navigate{Source: intent.KindModifySellTrip},
		}
	}

	var data *model.BookingData
	if resp != nil && resp.Data != nil {
		booking := resp.Data.NewBooking
		booking.SeatRemappingNeeded = resp.Data.SeatRemappingNeeded
		data = &booking
	}

	out := []intent.Intent{
		intent.ClearErrors{},
		intent.SetBookingData{Data: data},
		intent.LoadExtrasAvailability{Next: followUps},
	}
	if len(e.state.App.Booking.SelectedBundleCodes) > 0 {
		out = append(out, intent.RepriceBundles{})
	}
	return out
}

// upsellClubAndSellTrip routes a sell through the club upsell. Anonymous
// non-members outside the book flow get the upsell dialog; logged-in
// non-members outside the book flow are enrolled directly; everyone else
// sells club fares as-is.
func (e *Engine) upsellClubAndSellTrip(ctx context.Context) []intent.Intent {
	isClub := e.state.App.User.IsClubMember()
	loggedIn := e.state.App.LoggedIn
	flow := e.state.App.Flow

	switch {
	case !isClub && !loggedIn && flow != flowBook:
		if e.confirm == nil {
			return []intent.Intent{intent.SelectStandardFaresAndSellTrip{}}
		}
		ch, err := e.confirm.Open(ctx, confirm.DialogClubUpsell, confirm.Options{})
		if err != nil {
			log.Printf("engine: club upsell dialog: %v", err)
			return nil
		}
		resp, ok := confirm.Await(ctx, ch)
		if !ok {
			return nil
		}
		if resp.Password != "" || resp.LoggedInPersonOnBooking {
			return []intent.Intent{intent.SelectClubFaresAndSellTrip{
				Signup:       resp.Password,
				EnrollInClub: !resp.LoggedInAsClub,
			}}
		}
		if resp.Confirmed {
			return []intent.Intent{intent.SelectStandardFaresAndSellTrip{}}
		}
		return nil

	case !isClub && loggedIn && flow != flowBook:
		return []intent.Intent{intent.SelectClubFaresAndSellTrip{EnrollInClub: true}}

	default:
		return []intent.Intent{intent.SelectClubFaresAndSellTrip{}}
	}
}

// selectStandardFaresAndSellTrip selects standard fares and sells. In the
// book flow the sell runs inside a session reset; elsewhere it becomes a
// modify-sell.
func (e *Engine) selectStandardFaresAndSellTrip() []intent.Intent {
	if e.state.App.Flow == flowBook {
		return []intent.Intent{intent.GetEarlyFlightOk{Next: []intent.Intent{
			intent.ResetSession{Next: []intent.Intent{
				intent.SelectStandardFares{},
				intent.SellTrip{},
			}},
		}}}
	}
	return []intent.Intent{intent.GetEarlyFlightOk{Next: []intent.Intent{
		intent.SelectStandardFares{},
		intent.ModifySellTrip{},
	}}}
}

// selectClubFaresAndSellTrip selects club fares and sells, adding a club
// membership for non-members in the book flow.
func (e *Engine) selectClubFaresAndSellTrip(act intent.SelectClubFaresAndSellTrip) []intent.Intent {
	isClub := e.state.App.User.IsClubMember()

	if e.state.App.Flow == flowBook {
		return []intent.Intent{intent.GetEarlyFlightOk{Next: []intent.Intent{
			intent.ResetSession{Next: []intent.Intent{
				intent.SelectClubFares{},
				intent.SellTrip{AddClubMembership: !isClub},
			}},
		}}}
	}
	return []intent.Intent{intent.GetEarlyFlightOk{Next: []intent.Intent{
		intent.SelectClubFares{},
		intent.ModifySellTrip{Signup: act.Signup, EnrollInClub: act.EnrollInClub},
	}}}
}

// checkForSufficientPoints compares the required point total for the current
// selections against the user's program balance before selling. A shortfall
// opens the insufficient-points dialog and branches on the answer: refresh
// the balance, continue anyway, fall back to points+cash, or clear the
// selections.
func (e *Engine) checkForSufficientPoints(ctx context.Context, act intent.CheckForSufficientPointsAndSellTrip) []intent.Intent {
	user := e.state.App.User
	sels := e.state.Flight.FareSelections
	mode := e.state.Flight.PointsCashMode
	seats := e.state.App.SearchInput.PassengerSeatCount
	if seats == 0 {
		seats = 1
	}
	isClub := user.IsClubMember()
	balance := user.PointBalance(e.programCode)

	var required float64
	if mode == model.PointsAndCash {
		required = derive.PointsCashLoyaltyPointsTotal(sels, isClub) * float64(seats)
		if act.EnrollInClub {
			required -= derive.PointsCashLoyaltyPointsClubSavingTotal(sels, seats, isClub)
		}
	} else {
		required = derive.LoyaltyPointsTotal(sels, isClub) * float64(seats)
		if act.EnrollInClub {
			required -= derive.LoyaltyPointsClubSavingTotal(sels, seats, isClub)
		}
	}

	continueFlow := []intent.Intent{intent.UpsellClubAndSellTrip{}}
	if !act.EnrollInClub {
		if e.state.App.Flow == flowBook {
			continueFlow = []intent.Intent{intent.GetEarlyFlightOk{Next: []intent.Intent{
				intent.ResetSession{Next: []intent.Intent{intent.SellTrip{}}},
			}}}
		} else {
			continueFlow = []intent.Intent{intent.GetEarlyFlightOk{Next: []intent.Intent{
				intent.ModifySellTrip{},
			}}}
		}
	}

	if user == nil || required <= balance {
		return continueFlow
	}

	if e.confirm == nil {
		return continueFlow
	}
	pcRequired := derive.PointsCashLoyaltyPointsTotal(sels, isClub) * float64(seats)
	ch, err := e.confirm.Open(ctx, confirm.DialogInsufficientPoints, confirm.Options{Fields: map[string]any{
		"loyaltyTotal":    required,
		"pointBalance":    balance,
		"isPointPlusCash": mode == model.PointsAndCash,
		"isChangeFlight":  !(pcRequired <= balance && mode == model.PointsOnly),
	}})
	if err != nil {
		log.Printf("engine: insufficient points dialog: %v", err)
		return nil
	}
	resp, ok := confirm.Await(ctx, ch)
	if !ok {
		return []intent.Intent{intent.ClearFareAndViewSelections{}}
	}

	switch {
	case resp.UpdatedBalance > 0:
		return []intent.Intent{
			intent.ChangeUsePoints{UsePoints: true, ClearSelections: false},
			intent.UpdatePointBalance{Amount: resp.UpdatedBalance},
		}

	case resp.Continue:
		return continueFlow

	case resp.PointCash && len(sels) > 0:
		var out []intent.Intent
		for _, i := range sels.SortedIndexes() {
			sel := sels[i]
			fare := sel.Journey.PointCash
			if isClub && sel.Journey.PointCashClubFare != nil {
				fare = sel.Journey.PointCashClubFare
			}
			if fare == nil {
				continue
			}
			out = append(out, intent.SetFareSelection{
				Index:       i,
				JourneyFare: &model.JourneyFare{Journey: sel.Journey, Fare: *fare},
			})
		}
		out = append(out,
			intent.ValidateAndUpdateFareSelection{},
			intent.SetPointsCashMode{Mode: model.PointsAndCash},
		)
		return out

	case resp.Answered && e.state.Flight.SearchResult != nil && e.state.Flight.SearchResult.Data != nil:
		out := make([]intent.Intent, 0, len(e.state.Flight.SearchResult.Data.Trips)+1)
		for index := range e.state.Flight.SearchResult.Data.Trips {
			out = append(out, intent.SetFareSelection{Index: index, JourneyFare: nil})
		}
		out = append(out, intent.ChangeUsePoints{UsePoints: false, ClearSelections: false})
		return out
	}

	return []intent.Intent{intent.ClearFareAndViewSelections{}}
}

// showModifyFlightModal opens the modify-flight dialog and enters the
// modify sub-flow. The dialog drives its own follow-up dispatches.
func (e *Engine) showModifyFlightModal(ctx context.Context) []intent.Intent {
	if e.confirm != nil {
		if _, err := e.confirm.Open(ctx, confirm.DialogModifyFlight, confirm.Options{}); err != nil {
			log.Printf("engine: modify flight dialog: %v", err)
		}
	}
	return []intent.Intent{intent.SetSubFlow{SubFlow: "modify-flight"}}
}

// refreshRedemptionFee recomputes the award-booking redemption fee whenever
// the first leg's selection changes. Fee lookup failures zero the fee rather
// than surfacing an error.
func (e *Engine) refreshRedemptionFee(ctx context.Context, act intent.SetFareSelection) []intent.Intent {
	isAward := derive.IsAwardBooking(e.state.Flight.SearchResult, e.state.App.Booking.AwardPointTotal)
	if act.Index != 0 || !isAward || act.JourneyFare == nil {
		return nil
	}

	journey := act.JourneyFare.Journey
	kind := loyaltyPointsAndMonetary
	if journey.StandardFare != nil && act.JourneyFare.Fare.Amount == journey.StandardFare.Amount {
		kind = loyaltyPointsOnly
	}
	var tier string
	if e.state.App.User != nil {
		tier = e.state.App.User.Account.ProgramLevelCode
	}

	fee, err := e.availability.RedemptionFee(ctx, journey.Designator.Departure, kind, tier)
	if err != nil {
		log.Printf("engine: redemption fee lookup failed: %v", err)
		return []intent.Intent{intent.SetRedemptionFee{Amount: 0}}
	}
	return []intent.Intent{intent.SetRedemptionFee{Amount: fee}}
}

// userChanged reacts to a new account: refresh the redemption fee for the
// first-leg selection when the new user's fee is not waived, and re-point
// existing selections at club fares when the new user is a member on an
// award booking.
func (e *Engine) userChanged(ctx context.Context) []intent.Intent {
	user := e.state.App.User
	sels := e.state.Flight.FareSelections
	isAward := derive.IsAwardBooking(e.state.Flight.SearchResult, e.state.App.Booking.AwardPointTotal)
	mode := e.state.Flight.PointsCashMode

	var out []intent.Intent

	first, hasFirst := sels[0]
	if user != nil && !user.Account.RedemptionFeeWaived && hasFirst && isAward {
		kind := loyaltyPointsAndMonetary
		if first.Journey.StandardFare != nil && first.Fare.LoyaltyPoints == first.Journey.StandardFare.LoyaltyPoints {
			kind = loyaltyPointsOnly
		}
		fee, err := e.availability.RedemptionFee(ctx, first.Journey.Designator.Departure, kind, user.Account.ProgramLevelCode)
		if err != nil {
			log.Printf("engine: redemption fee lookup failed: %v", err)
			fee = 0
		}
		out = append(out, intent.SetRedemptionFee{Amount: fee})
	}

	if isAward && user.IsClubMember() && len(sels) > 0 {
		for _, i := range sels.SortedIndexes() {
			sel := sels[i]
			var fare *model.Fare
			if mode == model.PointsAndCash {
				fare = sel.Journey.PointCashClubFare
				if fare == nil {
					fare = sel.Journey.PointCash
				}
			} else {
				fare = sel.Journey.ClubFare
				if fare == nil {
					fare = sel.Journey.StandardFare
				}
			}
			if fare == nil {
				continue
			}
			out = append(out, intent.SetFareSelection{
				Index:       i,
				JourneyFare: &model.JourneyFare{Journey: sel.Journey, Fare: *fare},
			})
		}
	}
	return out
}

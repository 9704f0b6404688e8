package state

import (
	"strings"

	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

func reduceApp(s AppState, it intent.Intent) AppState {
	switch act := it.(type) {
	case intent.ClearErrors:
		s.Errors = nil
		return s

	case intent.AddError:
		errs := make([]string, 0, len(s.Errors)+1)
		errs = append(errs, s.Errors...)
		errs = append(errs, act.Key)
		s.Errors = errs
		return s

	case intent.SetSearchInput:
		s.SearchInput = act.Input
		return s

	case intent.SetUser:
		s.User = act.User
		s.LoggedIn = act.User != nil
		return s

	case intent.SetSeasonalNotices:
		s.SeasonalNotices = act.Notices
		return s

	case intent.UpdatePointBalance:
		if s.User == nil {
			return s
		}
		user := *s.User
		programs := make([]model.LoyaltyProgram, len(user.Programs))
		copy(programs, user.Programs)
		for i := range programs {
			programs[i].PointBalance = act.Amount
		}
		user.Programs = programs
		s.User = &user
		return s

	case intent.SetBookingData:
		s.Booking.Data = act.Data
		return s

	case intent.SetActiveJourneys:
		s.Booking.ActiveJourneys = act.Journeys
		s.Booking.AwardPointTotal = act.AwardPointTotal
		return s

	case intent.ResetSession:
		s.Booking = model.BookingState{}
		s.SubFlow = ""
		return s

	case intent.SetPendingStep:
		s.PendingStep = act.Step
		return s

	case intent.SetFlow:
		s.Flow = act.Flow
		return s

	case intent.SetSubFlow:
		s.SubFlow = act.SubFlow
		return s

	case intent.NavigateTo:
		s.CurrentURL = "/" + strings.Join(act.Path, "/")
		return s
	}

	return s
}

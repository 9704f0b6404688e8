package engine

import (
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// navigate is a pure routing decision keyed by the intent that finished,
// the active flow, the current URL, and the search type.
func (e *Engine) navigate(act intent.Navigate) []intent.Intent {
	input := e.state.App.SearchInput
	flow := e.state.App.Flow
	url := e.state.App.CurrentURL
	pkg := e.state.App.PackageResult

	switch act.Source {
	case intent.KindCombinationSearch:
		switch input.Type {
		case model.SearchTypeFlight:
			switch flow {
			case "my-trips", "check-in":
				return []intent.Intent{
					intent.SetPendingStep{Step: "upsell-bags"},
					intent.NavigateTo{Path: []string{flow, "flights"}},
				}
			default:
				if url != "/book/flights" {
					return []intent.Intent{intent.NavigateTo{Path: []string{"book", "flights"}}}
				}
				return nil
			}

		case model.SearchTypePackage:
			switch input.SubType {
			case model.SearchSubTypeFlightCar:
				if pkg != nil && pkg.Vehicles == 0 {
					return []intent.Intent{intent.NavigateTo{Path: []string{"book", "flights"}}}
				}
				return []intent.Intent{intent.NavigateTo{Path: []string{"book", "flights-cars"}}}

			case model.SearchSubTypeFlightHotel:
				if pkg == nil {
					return nil
				}
				if pkg.Hotels == 0 {
					return []intent.Intent{intent.NavigateTo{Path: []string{"book", "flights"}}}
				}
				return []intent.Intent{intent.NavigateTo{Path: []string{"book", "flights-hotels"}}}

			case model.SearchSubTypeFlightHotelCar:
				if pkg != nil && pkg.Hotels == 0 && pkg.Vehicles == 0 {
					return []intent.Intent{intent.NavigateTo{Path: []string{"book", "flights"}}}
				}
				return []intent.Intent{intent.PackageNavigate{}}
			}
		}

	case intent.KindSellTrip:
		if input.Type == model.SearchTypePackage && pkg != nil {
			return []intent.Intent{intent.PackageNavigate{}}
		}
		return []intent.Intent{intent.ShowBundleOffer{OnSelect: []intent.Intent{intent.FetchBookingData{}}}}

	case intent.KindModifySellTrip:
		return []intent.Intent{intent.NavigateNext{}}
	}
	return nil
}

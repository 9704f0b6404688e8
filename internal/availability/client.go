// Package availability is the boundary to the reservation system: fare and
// low-fare searches, sell/modify-sell transactions, and redemption fees.
package availability

import (
	"context"
	"time"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// SellRequest is the purchase payload built from the current selections.
type SellRequest struct {
	Selections model.FareSelections `json:"selections"`
	Passengers int                  `json:"passengers"`
	PromoCode  string               `json:"promoCode,omitempty"`
	IsAward    bool                 `json:"isAward"`
	Mode       model.PointsCashMode `json:"mode,omitempty"`
}

// ModifySellRequest re-books an existing reservation.
type ModifySellRequest struct {
	Selections          model.FareSelections `json:"selections"`
	Passengers          int                  `json:"passengers"`
	OriginalJourneyKeys []string             `json:"originalJourneyKeys"`
	IsAward             bool                 `json:"isAward"`
	Mode                model.PointsCashMode `json:"mode,omitempty"`
}

// Client is the availability service. Search is called once per pricing
// mode; hybrid searches issue two calls with different usePoints values.
type Client interface {
	Search(ctx context.Context, req model.SearchRequest, usePoints bool) (*model.AvailabilityData, error)
	SearchLowFare(ctx context.Context, req model.LowFareSearchRequest) (*model.LowFareData, error)
	SellTrip(ctx context.Context, req SellRequest) (*model.SellResponse, error)
	ModifySellTrip(ctx context.Context, req ModifySellRequest) (*model.ModifySellResponse, error)
	RedemptionFee(ctx context.Context, departure time.Time, loyaltyKind, tierCode string) (float64, error)
}

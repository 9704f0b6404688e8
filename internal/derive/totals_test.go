package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

func totalsSelections() model.FareSelections {
	std0 := model.Fare{FareAvailabilityKey: "F1", Amount: 100, LoyaltyPoints: 6000}
	club0 := model.Fare{FareAvailabilityKey: "C1", Amount: 80, LoyaltyPoints: 5000, IsClubFare: true}
	pc0 := model.Fare{FareAvailabilityKey: "PC1", Amount: 40, LoyaltyPoints: 3000}
	pcClub0 := model.Fare{FareAvailabilityKey: "PCC1", Amount: 30, LoyaltyPoints: 2500, IsClubFare: true}
	std1 := model.Fare{FareAvailabilityKey: "F2", Amount: 90, LoyaltyPoints: 5500}

	return model.FareSelections{
		0: {
			Journey: model.Journey{
				JourneyKey:        "J1",
				Designator:        model.Designator{Origin: "JFK", Destination: "LAX"},
				StandardFare:      &std0,
				ClubFare:          &club0,
				PointCash:         &pc0,
				PointCashClubFare: &pcClub0,
			},
			Fare: std0,
		},
		1: {
			Journey: model.Journey{
				JourneyKey:   "J2",
				Designator:   model.Designator{Origin: "LAX", Destination: "JFK"},
				StandardFare: &std1,
			},
			Fare: std1,
		},
	}
}

func TestFareTotals(t *testing.T) {
	sels := totalsSelections()

	assert.Equal(t, 190.0, StandardFareTotal(sels))
	assert.Equal(t, 190.0, FareSelectionTotal(sels))
	assert.Equal(t, 11500.0, LoyaltyPointsSelectionTotal(sels))
}

func TestLoyaltyPointsTotal(t *testing.T) {
	sels := totalsSelections()

	// Non-members price at the standard slot; members take the club slot
	// where one exists.
	assert.Equal(t, 11500.0, LoyaltyPointsTotal(sels, false))
	assert.Equal(t, 10500.0, LoyaltyPointsTotal(sels, true))
}

func TestPointCashTotals(t *testing.T) {
	sels := totalsSelections()

	assert.Equal(t, 40.0, PointCashFareTotal(sels, false))
	assert.Equal(t, 30.0, PointCashFareTotal(sels, true))
	assert.Equal(t, 3000.0, PointsCashLoyaltyPointsTotal(sels, false))
	assert.Equal(t, 2500.0, PointsCashLoyaltyPointsTotal(sels, true))
}

func TestClubSavings(t *testing.T) {
	sels := totalsSelections()

	assert.Equal(t, 20.0, ClubSavings(sels, 1))
	assert.Equal(t, 60.0, ClubSavings(sels, 3))
	// Zero seats still prices one traveller.
	assert.Equal(t, 20.0, ClubSavings(sels, 0))

	assert.Equal(t, 1000.0, LoyaltyPointsClubSavingTotal(sels, 1, false))
	assert.Equal(t, 0.0, LoyaltyPointsClubSavingTotal(sels, 1, true))
	assert.Equal(t, 500.0, PointsCashLoyaltyPointsClubSavingTotal(sels, 1, false))
	assert.Equal(t, 10.0, PointsCashFareClubSavingTotal(sels, 1, false))
	assert.Equal(t, 0.0, PointsCashFareClubSavingTotal(sels, 1, true))
	assert.Equal(t, 10.0, PointsCashFareSavingTotal(sels, 1))
}

func TestSelectionIsClubFare(t *testing.T) {
	sels := totalsSelections()
	assert.False(t, SelectionIsClubFare(sels))

	jf := sels[0]
	jf.Fare = *jf.Journey.ClubFare
	sels[0] = jf
	assert.True(t, SelectionIsClubFare(sels))
}

func TestIsAwardBooking(t *testing.T) {
	assert.False(t, IsAwardBooking(nil, 0))
	assert.True(t, IsAwardBooking(nil, 6000))
	assert.False(t, IsAwardBooking(&model.RawSearchResult{}, 0))
	assert.True(t, IsAwardBooking(&model.RawSearchResult{Search: model.SearchRequest{UsePoints: true}}, 0))
}

func TestAllFareSelectionMade(t *testing.T) {
	sels := totalsSelections()

	t.Run("no result means nothing to complete", func(t *testing.T) {
		assert.False(t, AllFareSelectionMade(sels, nil))
	})

	t.Run("every visible leg selected", func(t *testing.T) {
		result := &model.SearchResult{
			Search: model.SearchRequest{Criteria: []model.SearchCriterion{{}, {}}},
			Trips:  []model.Trip{{}, {}},
		}
		assert.True(t, AllFareSelectionMade(sels, result))
	})

	t.Run("hidden legs do not count", func(t *testing.T) {
		result := &model.SearchResult{
			Search: model.SearchRequest{Criteria: []model.SearchCriterion{{}, {HideResult: true}}},
			Trips:  []model.Trip{{}, {}},
		}
		single := model.FareSelections{0: sels[0]}
		assert.True(t, AllFareSelectionMade(single, result))
	})

	t.Run("missing leg fails", func(t *testing.T) {
		result := &model.SearchResult{
			Search: model.SearchRequest{Criteria: []model.SearchCriterion{{}, {}}},
			Trips:  []model.Trip{{}, {}},
		}
		single := model.FareSelections{0: sels[0]}
		assert.False(t, AllFareSelectionMade(single, result))
	})
}

func TestFareSelectionWithin24Hours(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	build := func(dep time.Time) model.FareSelections {
		return model.FareSelections{0: {
			Journey: model.Journey{Designator: model.Designator{Departure: dep}},
		}}
	}

	assert.False(t, FareSelectionWithin24Hours(model.FareSelections{}, now))
	assert.True(t, FareSelectionWithin24Hours(build(now.Add(6*time.Hour)), now))
	assert.False(t, FareSelectionWithin24Hours(build(now.Add(30*time.Hour)), now))
	assert.False(t, FareSelectionWithin24Hours(build(now.Add(-time.Hour)), now))
}

func TestFlightBreakdownTotal(t *testing.T) {
	sels := totalsSelections()

	t.Run("cash booking multiplies the selection total", func(t *testing.T) {
		assert.Equal(t, 380.0, FlightBreakdownTotal(sels, false, model.PointsCashNone, 0, 2))
	})

	t.Run("award booking on points uses the standard total plus the fee", func(t *testing.T) {
		assert.Equal(t, 215.0, FlightBreakdownTotal(sels, true, model.PointsOnly, 25, 1))
	})

	t.Run("award booking on points plus cash uses the selected total", func(t *testing.T) {
		hybrid := totalsSelections()
		jf := hybrid[0]
		jf.Fare = *jf.Journey.PointCash
		hybrid[0] = jf
		assert.Equal(t, 155.0, FlightBreakdownTotal(hybrid, true, model.PointsAndCash, 25, 1))
	})
}

func TestFlightsSectionBreakdownTotals(t *testing.T) {
	sels := totalsSelections()

	out := FlightsSectionBreakdownTotals(sels, 2)

	assert.Equal(t, []SectionBreakdown{
		{Origin: "JFK", Destination: "LAX", Total: 200, PointsTotal: 12000},
		{Origin: "LAX", Destination: "JFK", Total: 180, PointsTotal: 11000},
	}, out)
}

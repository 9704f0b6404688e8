// Package handlers exposes the workflow over HTTP: write endpoints dispatch
// intents into the engine, read endpoints serve the derived surface.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cx-tal-miterani/fare-workflow/internal/booking"
	"github.com/cx-tal-miterani/fare-workflow/internal/derive"
	"github.com/cx-tal-miterani/fare-workflow/internal/engine"
	"github.com/cx-tal-miterani/fare-workflow/internal/intent"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// BookingReader reads persisted bookings.
type BookingReader interface {
	GetBooking(ctx context.Context, recordLocator string) (*model.BookingData, error)
	ListRecentBookings(ctx context.Context, limit int) ([]model.BookingData, error)
}

// Handler contains HTTP handlers for the API
type Handler struct {
	engine   *engine.Engine
	bookings BookingReader
}

// NewHandler creates a new Handler instance. bookings may be nil when no
// database is configured.
func NewHandler(eng *engine.Engine, bookings BookingReader) *Handler {
	return &Handler{
		engine:   eng,
		bookings: bookings,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// dispatchResponse reports what an intent dispatch did.
type dispatchResponse struct {
	Processed []intent.Kind `json:"processed"`
	Errors    []string      `json:"errors,omitempty"`
}

func (h *Handler) respondDispatch(w http.ResponseWriter, processed []intent.Intent) {
	kinds := make([]intent.Kind, len(processed))
	for i, it := range processed {
		kinds[i] = it.Kind()
	}
	respondJSON(w, http.StatusOK, dispatchResponse{
		Processed: kinds,
		Errors:    h.engine.State().App.Errors,
	})
}

// SearchRequestBody wraps the combination-search input.
type SearchRequestBody struct {
	Type                model.SearchType    `json:"type"`
	SubType             model.SearchSubType `json:"subType"`
	Flight              model.SearchRequest `json:"flight"`
	OriginalJourneyKeys []string            `json:"originalJourneyKeys,omitempty"`
	PassengerSeatCount  int                 `json:"passengerSeatCount"`
	Flow                string              `json:"flow,omitempty"`
}

// CombinationSearch handles POST /api/search
func (h *Handler) CombinationSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Flight.Criteria) == 0 {
		respondError(w, http.StatusBadRequest, "At least one search criterion is required")
		return
	}
	if req.PassengerSeatCount == 0 {
		req.PassengerSeatCount = req.Flight.Passengers
	}

	intents := []intent.Intent{
		intent.SetSearchInput{Input: model.SearchInput{
			Type:                req.Type,
			SubType:             req.SubType,
			Flight:              req.Flight,
			OriginalJourneyKeys: req.OriginalJourneyKeys,
			PassengerSeatCount:  req.PassengerSeatCount,
		}},
	}
	if req.Flow != "" {
		intents = append(intents, intent.SetFlow{Flow: req.Flow})
	}
	intents = append(intents, intent.CombinationSearch{})

	processed := h.engine.Dispatch(r.Context(), intents...)
	h.respondDispatch(w, processed)
}

// ChangeUsePointsBody toggles points pricing. ClearSelections defaults to
// true when omitted.
type ChangeUsePointsBody struct {
	UsePoints       bool  `json:"usePoints"`
	ClearSelections *bool `json:"clearSelections,omitempty"`
}

// ChangeUsePoints handles POST /api/search/points
func (h *Handler) ChangeUsePoints(w http.ResponseWriter, r *http.Request) {
	var req ChangeUsePointsBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	clearSelections := true
	if req.ClearSelections != nil {
		clearSelections = *req.ClearSelections
	}
	processed := h.engine.Dispatch(r.Context(), intent.ChangeUsePoints{
		UsePoints:       req.UsePoints,
		ClearSelections: clearSelections,
	})
	h.respondDispatch(w, processed)
}

// ChangeLowFareViewBody switches the calendar view.
type ChangeLowFareViewBody struct {
	Index int               `json:"index"`
	View  model.LowFareView `json:"view"`
}

// ChangeLowFareView handles POST /api/search/lowfare-view
func (h *Handler) ChangeLowFareView(w http.ResponseWriter, r *http.Request) {
	var req ChangeLowFareViewBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	processed := h.engine.Dispatch(r.Context(), intent.ChangeLowFareView{Index: req.Index, View: req.View})
	h.respondDispatch(w, processed)
}

// FareSelectionBody sets or clears one leg's selection.
type FareSelectionBody struct {
	Index       int                `json:"index"`
	JourneyFare *model.JourneyFare `json:"journeyFare"`
}

// SetFareSelection handles POST /api/selections
func (h *Handler) SetFareSelection(w http.ResponseWriter, r *http.Request) {
	var req FareSelectionBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Index < 0 {
		respondError(w, http.StatusBadRequest, "Index must not be negative")
		return
	}
	processed := h.engine.Dispatch(r.Context(), intent.SetFareSelection{
		Index:       req.Index,
		JourneyFare: req.JourneyFare,
	})
	h.respondDispatch(w, processed)
}

// SelectLowestFares handles POST /api/selections/lowest
func (h *Handler) SelectLowestFares(w http.ResponseWriter, r *http.Request) {
	processed := h.engine.Dispatch(r.Context(), intent.SelectLowestFares{})
	h.respondDispatch(w, processed)
}

// ClearSelections handles DELETE /api/selections
func (h *Handler) ClearSelections(w http.ResponseWriter, r *http.Request) {
	processed := h.engine.Dispatch(r.Context(), intent.ClearFareAndViewSelections{})
	h.respondDispatch(w, processed)
}

// SellBody carries the sell options.
type SellBody struct {
	AddClubMembership bool   `json:"addClubMembership,omitempty"`
	Signup            string `json:"signup,omitempty"`
	EnrollInClub      bool   `json:"enrollInClub,omitempty"`
}

// SellTrip handles POST /api/sell
func (h *Handler) SellTrip(w http.ResponseWriter, r *http.Request) {
	var req SellBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	processed := h.engine.Dispatch(r.Context(), intent.ValidateFareSelections{Next: []intent.Intent{
		intent.SellTrip{AddClubMembership: req.AddClubMembership},
	}})
	h.respondDispatch(w, processed)
}

// ModifySellTrip handles POST /api/sell/modify
func (h *Handler) ModifySellTrip(w http.ResponseWriter, r *http.Request) {
	var req SellBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	processed := h.engine.Dispatch(r.Context(), intent.ValidateFareSelections{Next: []intent.Intent{
		intent.ModifySellTrip{Signup: req.Signup, EnrollInClub: req.EnrollInClub},
	}})
	h.respondDispatch(w, processed)
}

// SellWithPointsCheck handles POST /api/sell/points
func (h *Handler) SellWithPointsCheck(w http.ResponseWriter, r *http.Request) {
	var req SellBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	processed := h.engine.Dispatch(r.Context(), intent.CheckForSufficientPointsAndSellTrip{
		Signup:       req.Signup,
		EnrollInClub: req.EnrollInClub,
	})
	h.respondDispatch(w, processed)
}

// SetUser handles POST /api/user
func (h *Handler) SetUser(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	processed := h.engine.Dispatch(r.Context(), intent.SetUser{User: &user})
	h.respondDispatch(w, processed)
}

// StateResponse is the derived read surface.
type StateResponse struct {
	SearchResult         *model.SearchResult       `json:"searchResult,omitempty"`
	LowFareSearchResult  *model.LowFareResult      `json:"lowFareSearchResult,omitempty"`
	FareSelections       model.FareSelections      `json:"fareSelections"`
	SearchLoading        int                       `json:"searchLoading"`
	LowFareSearchLoading int                       `json:"lowFareSearchLoading"`
	PointsCashMode       model.PointsCashMode      `json:"pointsCashMode"`
	RedemptionFee        float64                   `json:"redemptionFee"`
	Errors               []string                  `json:"errors,omitempty"`
	Totals               TotalsResponse            `json:"totals"`
	SectionBreakdowns    []derive.SectionBreakdown `json:"sectionBreakdowns,omitempty"`
}

// TotalsResponse carries the derived totals for the current selections.
type TotalsResponse struct {
	StandardFareTotal    float64 `json:"standardFareTotal"`
	FareSelectionTotal   float64 `json:"fareSelectionTotal"`
	PointCashFareTotal   float64 `json:"pointCashFareTotal"`
	LoyaltyPointsTotal   float64 `json:"loyaltyPointsTotal"`
	ClubSavings          float64 `json:"clubSavings"`
	AllFareSelectionMade bool    `json:"allFareSelectionMade"`
	IsAwardBooking       bool    `json:"isAwardBooking"`
	FlightBreakdownTotal float64 `json:"flightBreakdownTotal"`
}

// GetState handles GET /api/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	s := h.engine.State()

	sels := s.Flight.FareSelections
	isClub := s.App.User.IsClubMember()
	seatCount := s.App.SearchInput.PassengerSeatCount
	isAward := derive.IsAwardBooking(s.Flight.SearchResult, s.App.Booking.AwardPointTotal)

	var enriched *model.SearchResult
	if s.Flight.SearchResult != nil {
		enriched = derive.SearchResult(s.Flight.SearchResult)
	}
	var lowFare *model.LowFareResult
	if s.Flight.LowFareSearchResult != nil {
		lowFare = derive.LowFareResult(s.Flight.LowFareSearchResult, s.Flight.LowFareSearchResult.Search.UsePoints, h.engine.Now())
	}

	resp := StateResponse{
		SearchResult:         enriched,
		LowFareSearchResult:  lowFare,
		FareSelections:       sels,
		SearchLoading:        s.Flight.SearchLoading,
		LowFareSearchLoading: s.Flight.LowFareSearchLoading,
		PointsCashMode:       s.Flight.PointsCashMode,
		RedemptionFee:        s.Flight.RedemptionFee,
		Errors:               s.App.Errors,
		Totals: TotalsResponse{
			StandardFareTotal:    derive.StandardFareTotal(sels),
			FareSelectionTotal:   derive.FareSelectionTotal(sels),
			PointCashFareTotal:   derive.PointCashFareTotal(sels, isClub),
			LoyaltyPointsTotal:   derive.LoyaltyPointsTotal(sels, isClub),
			ClubSavings:          derive.ClubSavings(sels, seatCount),
			AllFareSelectionMade: derive.AllFareSelectionMade(sels, enriched),
			IsAwardBooking:       isAward,
			FlightBreakdownTotal: derive.FlightBreakdownTotal(sels, isAward, s.Flight.PointsCashMode, s.Flight.RedemptionFee, seatCount),
		},
		SectionBreakdowns: derive.FlightsSectionBreakdownTotals(sels, seatCount),
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetBooking handles GET /api/bookings/{locator}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	if h.bookings == nil {
		respondError(w, http.StatusServiceUnavailable, "Booking store not configured")
		return
	}
	locator := mux.Vars(r)["locator"]
	b, err := h.bookings.GetBooking(r.Context(), locator)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// ListBookings handles GET /api/bookings
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	if h.bookings == nil {
		respondError(w, http.StatusServiceUnavailable, "Booking store not configured")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	bookings, err := h.bookings.ListRecentBookings(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

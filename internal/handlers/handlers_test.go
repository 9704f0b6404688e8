package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cx-tal-miterani/fare-workflow/internal/availability"
	"github.com/cx-tal-miterani/fare-workflow/internal/booking"
	"github.com/cx-tal-miterani/fare-workflow/internal/engine"
	"github.com/cx-tal-miterani/fare-workflow/internal/engine/mocks"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

type stubBookingReader struct {
	bookings map[string]model.BookingData
}

func (s *stubBookingReader) GetBooking(_ context.Context, recordLocator string) (*model.BookingData, error) {
	if b, ok := s.bookings[recordLocator]; ok {
		return &b, nil
	}
	return nil, booking.ErrNotFound
}

func (s *stubBookingReader) ListRecentBookings(_ context.Context, limit int) ([]model.BookingData, error) {
	out := make([]model.BookingData, 0, len(s.bookings))
	for _, b := range s.bookings {
		if len(out) == limit {
			break
		}
		out = append(out, b)
	}
	return out, nil
}

func setupTestRouter(avail availability.Client, reader BookingReader) *mux.Router {
	eng := engine.New(engine.Config{Availability: avail})
	h := NewHandler(eng, reader)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", h.CombinationSearch).Methods("POST")
	api.HandleFunc("/search/points", h.ChangeUsePoints).Methods("POST")
	api.HandleFunc("/search/lowfare-view", h.ChangeLowFareView).Methods("POST")
	api.HandleFunc("/selections", h.SetFareSelection).Methods("POST")
	api.HandleFunc("/selections/lowest", h.SelectLowestFares).Methods("POST")
	api.HandleFunc("/selections", h.ClearSelections).Methods("DELETE")
	api.HandleFunc("/sell", h.SellTrip).Methods("POST")
	api.HandleFunc("/user", h.SetUser).Methods("POST")
	api.HandleFunc("/state", h.GetState).Methods("GET")
	api.HandleFunc("/bookings", h.ListBookings).Methods("GET")
	api.HandleFunc("/bookings/{locator}", h.GetBooking).Methods("GET")
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	return r
}

func TestCombinationSearchEndpoint(t *testing.T) {
	dep := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	t.Run("valid search runs the full chain", func(t *testing.T) {
		avail := new(mocks.MockAvailabilityClient)
		avail.On("SearchLowFare", mock.Anything, mock.Anything).Return(&model.LowFareData{}, nil)
		avail.On("Search", mock.Anything, mock.Anything, false).Return(&model.AvailabilityData{
			Trips: []model.RawTrip{{Origin: "JFK", Destination: "LAX"}},
		}, nil)
		router := setupTestRouter(avail, nil)

		body := SearchRequestBody{
			Type:    model.SearchTypeFlight,
			SubType: model.SearchSubTypeOneWay,
			Flight: model.SearchRequest{
				Criteria:   []model.SearchCriterion{{Origin: "JFK", Destination: "LAX", Date: dep}},
				Passengers: 1,
			},
		}
		payload, _ := json.Marshal(body)

		req := httptest.NewRequest("POST", "/api/search", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dispatchResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Processed)
		assert.Empty(t, resp.Errors)
		avail.AssertExpectations(t)
	})

	t.Run("missing criteria is rejected", func(t *testing.T) {
		router := setupTestRouter(new(mocks.MockAvailabilityClient), nil)

		payload, _ := json.Marshal(SearchRequestBody{Type: model.SearchTypeFlight})
		req := httptest.NewRequest("POST", "/api/search", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body is rejected", func(t *testing.T) {
		router := setupTestRouter(new(mocks.MockAvailabilityClient), nil)

		req := httptest.NewRequest("POST", "/api/search", bytes.NewReader([]byte("not json")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("failed search surfaces the error key", func(t *testing.T) {
		avail := new(mocks.MockAvailabilityClient)
		avail.On("SearchLowFare", mock.Anything, mock.Anything).Return(&model.LowFareData{}, nil)
		avail.On("Search", mock.Anything, mock.Anything, false).Return(nil, assert.AnError)
		router := setupTestRouter(avail, nil)

		body := SearchRequestBody{
			Type:    model.SearchTypeFlight,
			SubType: model.SearchSubTypeOneWay,
			Flight: model.SearchRequest{
				Criteria:   []model.SearchCriterion{{Origin: "JFK", Destination: "LAX", Date: dep}},
				Passengers: 1,
			},
		}
		payload, _ := json.Marshal(body)

		req := httptest.NewRequest("POST", "/api/search", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dispatchResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Errors, engine.ErrSearchFailed)
	})
}

func TestSetFareSelectionEndpoint(t *testing.T) {
	t.Run("negative index is rejected", func(t *testing.T) {
		router := setupTestRouter(new(mocks.MockAvailabilityClient), nil)

		payload, _ := json.Marshal(FareSelectionBody{Index: -1})
		req := httptest.NewRequest("POST", "/api/selections", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("selection lands in the read surface", func(t *testing.T) {
		router := setupTestRouter(new(mocks.MockAvailabilityClient), nil)

		std := model.Fare{FareAvailabilityKey: "F1", Amount: 100}
		payload, _ := json.Marshal(FareSelectionBody{Index: 0, JourneyFare: &model.JourneyFare{
			Journey: model.Journey{JourneyKey: "J1", StandardFare: &std},
			Fare:    std,
		}})
		req := httptest.NewRequest("POST", "/api/selections", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		stateReq := httptest.NewRequest("GET", "/api/state", nil)
		stateW := httptest.NewRecorder()
		router.ServeHTTP(stateW, stateReq)
		require.Equal(t, http.StatusOK, stateW.Code)

		var state StateResponse
		require.NoError(t, json.NewDecoder(stateW.Body).Decode(&state))
		require.Contains(t, state.FareSelections, 0)
		assert.Equal(t, 100.0, state.Totals.FareSelectionTotal)
		assert.Equal(t, 100.0, state.Totals.StandardFareTotal)
	})
}

func TestSellEndpointSurfacesFailure(t *testing.T) {
	avail := new(mocks.MockAvailabilityClient)
	avail.On("SellTrip", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	router := setupTestRouter(avail, nil)

	payload, _ := json.Marshal(SellBody{})
	req := httptest.NewRequest("POST", "/api/sell", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dispatchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Errors, engine.ErrSellFailed)
}

func TestGetBookingEndpoint(t *testing.T) {
	reader := &stubBookingReader{bookings: map[string]model.BookingData{
		"ABC123": {RecordLocator: "ABC123", TotalAmount: 190},
	}}

	t.Run("known locator returns the booking", func(t *testing.T) {
		router := setupTestRouter(new(mocks.MockAvailabilityClient), reader)

		req := httptest.NewRequest("GET", "/api/bookings/ABC123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var b model.BookingData
		require.NoError(t, json.NewDecoder(w.Body).Decode(&b))
		assert.Equal(t, "ABC123", b.RecordLocator)
	})

	t.Run("unknown locator is a 404", func(t *testing.T) {
		router := setupTestRouter(new(mocks.MockAvailabilityClient), reader)

		req := httptest.NewRequest("GET", "/api/bookings/NOPE99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("without a store the endpoint is unavailable", func(t *testing.T) {
		router := setupTestRouter(new(mocks.MockAvailabilityClient), nil)

		req := httptest.NewRequest("GET", "/api/bookings/ABC123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	reader := &stubBookingReader{bookings: map[string]model.BookingData{
		"ABC123": {RecordLocator: "ABC123"},
		"DEF456": {RecordLocator: "DEF456"},
	}}
	router := setupTestRouter(new(mocks.MockAvailabilityClient), reader)

	req := httptest.NewRequest("GET", "/api/bookings?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out []model.BookingData
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Len(t, out, 1)
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(new(mocks.MockAvailabilityClient), nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

func TestHTTPClientSearch(t *testing.T) {
	dep := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/availability/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["usePoints"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": model.AvailabilityData{Trips: []model.RawTrip{{Origin: "JFK", Destination: "LAX"}}},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL, APIKey: "test-key"})

	data, err := client.Search(context.Background(), model.SearchRequest{
		Criteria:   []model.SearchCriterion{{Origin: "JFK", Destination: "LAX", Date: dep}},
		Passengers: 1,
	}, true)

	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data.Trips, 1)
	assert.Equal(t, "JFK", data.Trips[0].Origin)
}

func TestHTTPClientSearchLowFare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/availability/lowfares", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": model.LowFareData{Markets: []model.RawLowFareMarket{{Origin: "JFK", Destination: "LAX"}}},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL})

	data, err := client.SearchLowFare(context.Background(), model.LowFareSearchRequest{Passengers: 1})

	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Len(t, data.Markets, 1)
}

func TestHTTPClientSellTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/booking/sell", r.URL.Path)
		json.NewEncoder(w).Encode(model.SellResponse{
			Data: &model.BookingData{RecordLocator: "ABC123", TotalAmount: 190},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL})

	resp, err := client.SellTrip(context.Background(), SellRequest{Passengers: 1})

	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "ABC123", resp.Data.RecordLocator)
}

func TestHTTPClientRedemptionFee(t *testing.T) {
	dep := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/booking/redemption-fee", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, dep.Format(time.RFC3339), q.Get("departure"))
		assert.Equal(t, "PointsOnly", q.Get("loyalty"))
		assert.Equal(t, "GOLD", q.Get("tier"))
		json.NewEncoder(w).Encode(map[string]float64{"data": 25})
	}))
	defer srv.Close()

	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL})

	fee, err := client.RedemptionFee(context.Background(), dep, "PointsOnly", "GOLD")

	require.NoError(t, err)
	assert.Equal(t, 25.0, fee)
}

func TestHTTPClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL})

	_, err := client.Search(context.Background(), model.SearchRequest{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")

	_, err = client.ModifySellTrip(context.Background(), ModifySellRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

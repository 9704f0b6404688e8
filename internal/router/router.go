package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cx-tal-miterani/fare-workflow/internal/handlers"
	"github.com/cx-tal-miterani/fare-workflow/internal/ws"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *ws.Hub) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Search
	api.HandleFunc("/search", h.CombinationSearch).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/search/points", h.ChangeUsePoints).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/search/lowfare-view", h.ChangeLowFareView).Methods(http.MethodPost, http.MethodOptions)

	// Selections
	api.HandleFunc("/selections", h.SetFareSelection).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/selections", h.ClearSelections).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/selections/lowest", h.SelectLowestFares).Methods(http.MethodPost, http.MethodOptions)

	// Purchase
	api.HandleFunc("/sell", h.SellTrip).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sell/modify", h.ModifySellTrip).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sell/points", h.SellWithPointsCheck).Methods(http.MethodPost, http.MethodOptions)

	// Session
	api.HandleFunc("/user", h.SetUser).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/state", h.GetState).Methods(http.MethodGet, http.MethodOptions)

	// Bookings
	api.HandleFunc("/bookings", h.ListBookings).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings/{locator}", h.GetBooking).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for real-time snapshots
	if hub != nil {
		api.HandleFunc("/ws", hub.ServeWS)
	}

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/service"
	"github.com/gorilla/mux"
)

type ParkingHandler struct {
	Service *service.BookingService
}

func NewParkingHandler(svc *service.BookingService) *ParkingHandler {
	return &ParkingHandler{Service: svc}
}

func (h *ParkingHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	availableOnly := r.URL.Query().Get("available") == "true"
	spots, err := h.Service.ListSpots(availableOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"spots": spots})
}

func (h *ParkingHandler) AddSpot(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	var req AddSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Please fill in all fields and pin a location", http.StatusBadRequest)
		return
	}
	spot, err := h.Service.AddSpot(claims.UserID, req.Name, req.Address,
		req.TotalSlots, req.PricePerHour, db.Point{Lon: req.Lng, Lat: req.Lat})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"spot_id": spot.ID})
}

// Book creates a confirmed booking for the session user. startTime and
// endTime arrive as form fields.
func (h *ParkingHandler) Book(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	spotID, err := strconv.Atoi(mux.Vars(r)["spotId"])
	if err != nil {
		http.Error(w, "Invalid spot ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	start, err := parseTimestamp(r.PostFormValue("startTime"))
	if err != nil {
		http.Error(w, "Invalid dates provided", http.StatusBadRequest)
		return
	}
	end, err := parseTimestamp(r.PostFormValue("endTime"))
	if err != nil {
		http.Error(w, "Invalid dates provided", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.Book(r.Context(), claims.UserID, spotID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *ParkingHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	history, err := h.Service.History(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (h *ParkingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Cancel(id, claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
}

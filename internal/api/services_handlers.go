package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/service"
	"github.com/gorilla/mux"
)

// ServicesHandler covers the user-facing roadside-assistance surface:
// provider directory, service requests, appointments and saved providers.
type ServicesHandler struct {
	Providers    *service.ProviderService
	Requests     *service.RequestService
	Appointments *service.AppointmentService
}

func NewServicesHandler(providers *service.ProviderService, requests *service.RequestService, appointments *service.AppointmentService) *ServicesHandler {
	return &ServicesHandler{Providers: providers, Requests: requests, Appointments: appointments}
}

func (h *ServicesHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Providers.List(r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"providers": providers})
}

func (h *ServicesHandler) EmergencyContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Providers.EmergencyContacts()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"emergency_contacts": contacts})
}

func (h *ServicesHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	var req CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Please select a provider and provide your location", http.StatusBadRequest)
		return
	}
	var requestedAt *time.Time
	if req.RequestedAt != "" {
		t, err := parseTimestamp(req.RequestedAt)
		if err != nil {
			http.Error(w, "Invalid requested time", http.StatusBadRequest)
			return
		}
		requestedAt = &t
	}

	created, err := h.Requests.Submit(claims.UserID, req.ProviderID, req.IssueDescription,
		db.Point{Lon: req.UserLng, Lat: req.UserLat}, requestedAt, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"request_id": created.ID, "status": created.Status})
}

func (h *ServicesHandler) RequestHistory(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	history, err := h.Requests.History(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"requests": history})
}

func (h *ServicesHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	providerID, err := strconv.Atoi(mux.Vars(r)["providerId"])
	if err != nil {
		http.Error(w, "Invalid provider ID", http.StatusBadRequest)
		return
	}
	var req BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Please select a service type and time", http.StatusBadRequest)
		return
	}
	at, err := parseTimestamp(req.AppointmentTime)
	if err != nil {
		http.Error(w, "Invalid date provided", http.StatusBadRequest)
		return
	}

	appt, err := h.Appointments.Book(claims.UserID, providerID, at, req.ServiceType, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"appointment_id": appt.ID, "status": appt.Status})
}

func (h *ServicesHandler) AppointmentHistory(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	appointments, err := h.Appointments.History(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
}

func (h *ServicesHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}
	if err := h.Appointments.Cancel(id, claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Appointment cancelled successfully"})
}

// SaveToggle handles POST /api/services/save with a discriminated
// success/error envelope and stable error codes.
func (h *ServicesHandler) SaveToggle(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respondEnvelopeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	var req SaveProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondEnvelopeError(w, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondEnvelopeError(w, http.StatusBadRequest, CodeInvalidInput, "providerId and a save/unsave action are required")
		return
	}

	var result interface{}
	var err error
	if req.Action == "save" {
		result, err = h.Providers.Save(claims.UserID, req.ProviderID)
	} else {
		result, err = h.Providers.Unsave(claims.UserID, req.ProviderID)
	}
	if err != nil {
		switch apperrors.StatusOf(err) {
		case http.StatusNotFound:
			respondEnvelopeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		case http.StatusBadRequest:
			respondEnvelopeError(w, http.StatusBadRequest, CodeInvalidInput, err.Error())
		default:
			respondEnvelopeError(w, http.StatusInternalServerError, CodeServerError, "internal server error")
		}
		return
	}
	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: result})
}

func (h *ServicesHandler) SaveStatus(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respondEnvelopeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}
	providerID, err := strconv.Atoi(mux.Vars(r)["providerId"])
	if err != nil {
		respondEnvelopeError(w, http.StatusBadRequest, CodeInvalidInput, "invalid provider ID")
		return
	}
	status, err := h.Providers.CheckStatus(claims.UserID, providerID)
	if err != nil {
		respondEnvelopeError(w, http.StatusInternalServerError, CodeServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: status})
}

func (h *ServicesHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respondEnvelopeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}
	saved, err := h.Providers.ListSaved(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"saved": saved})
}

func respondEnvelopeError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, Envelope{
		Success: false,
		Error:   &EnvelopeError{Code: code, Message: message},
	})
}

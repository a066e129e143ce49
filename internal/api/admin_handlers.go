package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/service"
	"github.com/gorilla/mux"
)

// AdminHandler serves the moderation surface: the service-request approval
// workflow, traffic report verification, parking management, news publishing,
// analytics and feedback triage.
type AdminHandler struct {
	Requests *service.RequestService
	Traffic  *service.TrafficService
	Feedback *service.FeedbackService
	Parking  *service.BookingService
}

func NewAdminHandler(requests *service.RequestService, traffic *service.TrafficService, feedback *service.FeedbackService, parking *service.BookingService) *AdminHandler {
	return &AdminHandler{Requests: requests, Traffic: traffic, Feedback: feedback, Parking: parking}
}

func (h *AdminHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	sortBy := r.URL.Query().Get("sortBy")
	order := r.URL.Query().Get("order")

	result, err := h.Requests.ListPendingPage(page, sortBy, order)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	detail, err := h.Requests.GetDetail(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	// Optional notes ride along with the approval; an empty body is fine
	// but a malformed one is not.
	var body ApproveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Requests.Approve(id, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if body.Notes != "" {
		if err := h.Requests.UpdateNotes(id, body.Notes); err != nil {
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	var body RejectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(body); err != nil {
		http.Error(w, "A rejection reason is required", http.StatusBadRequest)
		return
	}

	result, err := h.Requests.Reject(id, body.RejectionReason, body.CustomReason, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) UpdateRequestNotes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	var body UpdateNotesBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Requests.UpdateNotes(id, body.Notes); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Notes updated"})
}

func (h *AdminHandler) ListPendingTrafficReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Traffic.PendingReports()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"pending_reports": reports})
}

func (h *AdminHandler) VerifyTrafficReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}
	if err := h.Traffic.Verify(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Report verified"})
}

func (h *AdminHandler) RejectTrafficReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}
	if err := h.Traffic.Reject(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Report rejected"})
}

func (h *AdminHandler) ListParkingSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Parking.AllSpots()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"spots": spots})
}

func (h *AdminHandler) UpdateParkingSpot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid spot ID", http.StatusBadRequest)
		return
	}
	var body UpdateSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(body); err != nil {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if err := h.Parking.UpdateSpot(id, body.Name, body.Address, body.TotalSlots,
		body.PricePerHour, body.IsAvailable); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Spot updated successfully"})
}

func (h *AdminHandler) DeleteParkingSpot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid spot ID", http.StatusBadRequest)
		return
	}
	if err := h.Parking.DeleteSpot(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Spot deleted successfully"})
}

func (h *AdminHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var body NewsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(body); err != nil {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}
	news, err := h.Traffic.AddNews(body.Title, body.Content, body.Source)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"news_id": news.ID})
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.Traffic.Analytics()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

func (h *AdminHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.Feedback.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"feedback": items})
}

func (h *AdminHandler) MarkFeedbackRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid feedback ID", http.StatusBadRequest)
		return
	}
	if err := h.Feedback.MarkRead(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Feedback marked as read"})
}

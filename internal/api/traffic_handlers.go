package api

import (
	"encoding/json"
	"net/http"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/service"
)

type TrafficHandler struct {
	Traffic  *service.TrafficService
	Feedback *service.FeedbackService
}

func NewTrafficHandler(traffic *service.TrafficService, feedback *service.FeedbackService) *TrafficHandler {
	return &TrafficHandler{Traffic: traffic, Feedback: feedback}
}

func (h *TrafficHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Traffic.VerifiedReports()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

func (h *TrafficHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	var req TrafficReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Please fill in all required fields", http.StatusBadRequest)
		return
	}
	report, err := h.Traffic.SubmitReport(claims.UserID, req.Status, req.Description,
		req.ImageURL, db.Point{Lon: req.Lng, Lat: req.Lat})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"report_id": report.ID})
}

func (h *TrafficHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Traffic.Summary()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *TrafficHandler) News(w http.ResponseWriter, r *http.Request) {
	news, err := h.Traffic.News()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"news": news})
}

// SubmitFeedback accepts feedback from guests and logged-in users alike.
func (h *TrafficHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "All feedback fields are required", http.StatusBadRequest)
		return
	}
	userID := ""
	if claims := auth.FromContext(r.Context()); claims != nil {
		userID = claims.UserID
	}
	fb, err := h.Feedback.Submit(userID, req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"feedback_id": fb.ID})
}

package service

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
)

const (
	// PendingPageSize is the fixed page size of the admin pending listing.
	PendingPageSize = 50
	maxPageSize     = 100
	defaultSortBy   = "submittedAt"
)

var rejectionReasons = map[string]bool{
	db.ReasonProviderUnavailable: true,
	db.ReasonIncompleteInfo:      true,
	db.ReasonUserUnresponsive:    true,
	db.ReasonOther:               true,
}

// RequestStore is the persistence surface of the service-request workflow.
type RequestStore interface {
	Create(req *db.ServiceRequest) error
	ListPending(q entities.PendingQuery) ([]entities.ServiceRequestListItem, error)
	CountPending() (int, error)
	GetDetail(id int) (*entities.ServiceRequestDetail, error)
	Approve(requestID int, adminID string) (time.Time, error)
	Reject(requestID int, reason, adminID string) (time.Time, error)
	UpdateNotes(requestID int, notes string) error
	ListByUser(userID string) ([]entities.RequestHistoryItem, error)
}

type RequestService struct {
	store    RequestStore
	notifier Notifier
}

func NewRequestService(store RequestStore, notifier Notifier) *RequestService {
	return &RequestService{store: store, notifier: notifier}
}

// Submit files a new request in Pending state on behalf of the session user.
func (s *RequestService) Submit(userID string, providerID *int, issue string, location db.Point, requestedAt *time.Time, notes string) (*db.ServiceRequest, error) {
	if issue == "" {
		return nil, apperrors.ErrValidation("issue description is required")
	}
	req := &db.ServiceRequest{
		UserID:           userID,
		IssueDescription: issue,
		Status:           db.RequestPending,
		UserLocation:     location,
	}
	if providerID != nil {
		req.ProviderID = sql.NullInt64{Int64: int64(*providerID), Valid: true}
	}
	if requestedAt != nil {
		req.RequestedDateTime = sql.NullTime{Time: *requestedAt, Valid: true}
	}
	if notes != "" {
		req.Notes = sql.NullString{String: notes, Valid: true}
	}
	if err := s.store.Create(req); err != nil {
		log.Printf("Error creating service request: %v", err)
		return nil, err
	}
	return req, nil
}

// Approve moves a pending request to Accepted, stamping the acting admin,
// then notifies the requester and, when one is attached, the provider.
// Notification outcomes are informational only; a failed notification never
// rolls the approval back.
func (s *RequestService) Approve(requestID int, adminID string) (*entities.ApprovalResult, error) {
	approvedAt, err := s.store.Approve(requestID, adminID)
	if err != nil {
		return nil, s.translateTransitionError(err, "approve")
	}

	result := &entities.ApprovalResult{
		RequestID:  requestID,
		NewStatus:  db.RequestAccepted,
		ApprovedAt: approvedAt,
	}

	detail, err := s.store.GetDetail(requestID)
	if err != nil {
		log.Printf("Approved request %d but could not load detail for notifications: %v", requestID, err)
		return result, nil
	}
	result.NotificationsSent.User = s.notifier.NotifyRequestApproved(detail.UserEmail, detail.UserName, requestID)
	if detail.ProviderID != nil {
		result.NotificationsSent.Provider = s.notifier.NotifyProviderAssigned(detail.ProviderContact, detail.ProviderName, requestID)
	}
	return result, nil
}

// Reject moves a pending request to Rejected. The reason must be one of the
// fixed categories; "Other" requires a non-empty custom reason, which is
// stored verbatim. Only the requesting user is notified.
func (s *RequestService) Reject(requestID int, reason, customReason, adminID string) (*entities.RejectionResult, error) {
	if !rejectionReasons[reason] {
		return nil, apperrors.ErrValidation("invalid rejection reason")
	}
	finalReason := reason
	if reason == db.ReasonOther {
		if customReason == "" {
			return nil, apperrors.ErrValidation("a custom rejection reason is required")
		}
		finalReason = customReason
	}

	rejectedAt, err := s.store.Reject(requestID, finalReason, adminID)
	if err != nil {
		return nil, s.translateTransitionError(err, "reject")
	}

	result := &entities.RejectionResult{
		RequestID:       requestID,
		NewStatus:       db.RequestRejected,
		RejectedAt:      rejectedAt,
		RejectionReason: finalReason,
	}

	detail, err := s.store.GetDetail(requestID)
	if err != nil {
		log.Printf("Rejected request %d but could not load detail for notifications: %v", requestID, err)
		return result, nil
	}
	result.NotificationsSent.User = s.notifier.NotifyRequestRejected(detail.UserEmail, detail.UserName, requestID, finalReason)
	return result, nil
}

// UpdateNotes overwrites the admin annotation; allowed in any state.
func (s *RequestService) UpdateNotes(requestID int, notes string) error {
	err := s.store.UpdateNotes(requestID, notes)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrNotFound("request not found")
	}
	return err
}

// ListPendingPage returns one page of the admin pending listing, newest
// first by default. Unknown sort keys fall back to submission time and the
// fixed page size keeps the limit under the hard cap.
func (s *RequestService) ListPendingPage(page int, sortBy, order string) (*entities.PendingPage, error) {
	if page < 1 {
		page = 1
	}
	q := NormalizePendingQuery(sortBy, order, PendingPageSize, (page-1)*PendingPageSize)

	requests, err := s.store.ListPending(q)
	if err != nil {
		log.Printf("Error listing pending requests: %v", err)
		return nil, err
	}
	total, err := s.store.CountPending()
	if err != nil {
		log.Printf("Error counting pending requests: %v", err)
		return nil, err
	}

	totalPages := (total + PendingPageSize - 1) / PendingPageSize
	return &entities.PendingPage{
		Requests:   requests,
		Total:      total,
		Page:       page,
		PageSize:   PendingPageSize,
		TotalPages: totalPages,
		SortBy:     q.SortBy,
		Order:      q.Order,
	}, nil
}

func (s *RequestService) GetDetail(requestID int) (*entities.ServiceRequestDetail, error) {
	detail, err := s.store.GetDetail(requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrNotFound("request not found")
	}
	return detail, err
}

func (s *RequestService) History(userID string) ([]entities.RequestHistoryItem, error) {
	return s.store.ListByUser(userID)
}

// NormalizePendingQuery clamps the listing parameters into their allowed
// ranges: sortBy falls back to submittedAt, order to desc, limit to at most
// the hard cap, offset to non-negative.
func NormalizePendingQuery(sortBy, order string, limit, offset int) entities.PendingQuery {
	switch sortBy {
	case "submittedAt", "serviceType", "providerName":
	default:
		sortBy = defaultSortBy
	}
	if order != "asc" {
		order = "desc"
	}
	if limit < 1 || limit > maxPageSize {
		limit = PendingPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return entities.PendingQuery{SortBy: sortBy, Order: order, Limit: limit, Offset: offset}
}

func (s *RequestService) translateTransitionError(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrNotFound("request not found")
	case errors.Is(err, repository.ErrNotPending):
		return apperrors.ErrConflict("cannot " + action + " a request that is not pending")
	default:
		log.Printf("Error during request %s: %v", action, err)
		return err
	}
}

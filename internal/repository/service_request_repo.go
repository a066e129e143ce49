package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
)

type ServiceRequestRepository struct {
	DB *sql.DB
}

func NewServiceRequestRepository(database *sql.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{DB: database}
}

func (r *ServiceRequestRepository) Create(req *db.ServiceRequest) error {
	query := `
		INSERT INTO service_requests
			(user_id, provider_id, issue_description, status, user_location, requested_date_time, notes)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		req.UserID, req.ProviderID, req.IssueDescription, req.Status,
		req.UserLocation.Lon, req.UserLocation.Lat, req.RequestedDateTime, req.Notes,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting service request: %w", err)
	}
	return nil
}

// sortColumns whitelists the ORDER BY targets for the pending listing.
// Anything else falls back to submission time.
var sortColumns = map[string]string{
	"submittedAt":  "r.created_at",
	"serviceType":  "p.type",
	"providerName": "p.name",
}

func (r *ServiceRequestRepository) ListPending(q entities.PendingQuery) ([]entities.ServiceRequestListItem, error) {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns["submittedAt"]
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.user_id, u.name, u.email,
		       COALESCE(p.type, ''), r.requested_date_time, r.created_at,
		       COALESCE(p.name, ''), COALESCE(p.type, ''),
		       COALESCE(r.notes, ''), r.status
		FROM service_requests r
		JOIN users u ON r.user_id = u.id
		LEFT JOIN service_providers p ON r.provider_id = p.id
		WHERE r.status = $1
		ORDER BY %s %s NULLS LAST
		LIMIT $2 OFFSET $3`, column, direction)

	rows, err := r.DB.Query(query, db.RequestPending, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("error querying pending requests: %w", err)
	}
	defer rows.Close()

	var items []entities.ServiceRequestListItem
	for rows.Next() {
		var item entities.ServiceRequestListItem
		var requestedAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserID, &item.UserName, &item.UserEmail,
			&item.ServiceType, &requestedAt, &item.SubmittedAt,
			&item.ProviderName, &item.ProviderType, &item.Notes, &item.Status); err != nil {
			return nil, fmt.Errorf("error scanning pending request: %w", err)
		}
		if requestedAt.Valid {
			t := requestedAt.Time
			item.RequestedDateTime = &t
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ServiceRequestRepository) CountPending() (int, error) {
	var total int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM service_requests WHERE status = $1`, db.RequestPending,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting pending requests: %w", err)
	}
	return total, nil
}

func (r *ServiceRequestRepository) GetDetail(id int) (*entities.ServiceRequestDetail, error) {
	query := `
		SELECT r.id, r.user_id, u.name, u.email,
		       ST_X(r.user_location::geometry), ST_Y(r.user_location::geometry),
		       COALESCE(p.type, ''), r.issue_description,
		       r.provider_id, COALESCE(p.name, ''), COALESCE(p.type, ''),
		       COALESCE(p.contact_info, ''), COALESCE(p.address, ''), COALESCE(p.rating, 0),
		       r.requested_date_time, COALESCE(r.notes, ''),
		       r.status, r.created_at, r.approved_at, r.rejected_at,
		       COALESCE(r.rejection_reason, ''), COALESCE(a.name, '')
		FROM service_requests r
		JOIN users u ON r.user_id = u.id
		LEFT JOIN service_providers p ON r.provider_id = p.id
		LEFT JOIN users a ON r.approved_by_admin_id = a.id
		WHERE r.id = $1`

	var d entities.ServiceRequestDetail
	var providerID sql.NullInt64
	var requestedAt, approvedAt, rejectedAt sql.NullTime
	err := r.DB.QueryRow(query, id).Scan(
		&d.ID, &d.UserID, &d.UserName, &d.UserEmail,
		&d.UserLocation.Lon, &d.UserLocation.Lat,
		&d.ServiceType, &d.IssueDescription,
		&providerID, &d.ProviderName, &d.ProviderType,
		&d.ProviderContact, &d.ProviderAddress, &d.ProviderRating,
		&requestedAt, &d.Notes,
		&d.Status, &d.SubmittedAt, &approvedAt, &rejectedAt,
		&d.RejectionReason, &d.ApprovedByAdmin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying request %d: %w", id, err)
	}
	if providerID.Valid {
		v := int(providerID.Int64)
		d.ProviderID = &v
	}
	if requestedAt.Valid {
		t := requestedAt.Time
		d.RequestedDateTime = &t
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		d.ApprovedAt = &t
	}
	if rejectedAt.Valid {
		t := rejectedAt.Time
		d.RejectedAt = &t
	}
	return &d, nil
}

// Approve flips a pending request to Accepted, stamping the acting admin and
// the approval time. The status guard is part of the UPDATE so a concurrent
// second approval loses instead of double-stamping.
func (r *ServiceRequestRepository) Approve(requestID int, adminID string) (time.Time, error) {
	var approvedAt time.Time
	err := r.DB.QueryRow(`
		UPDATE service_requests
		SET status = $1, approved_at = NOW(), approved_by_admin_id = $2
		WHERE id = $3 AND status = $4
		RETURNING approved_at`,
		db.RequestAccepted, adminID, requestID, db.RequestPending,
	).Scan(&approvedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, r.classifyMissedUpdate(requestID)
		}
		return time.Time{}, fmt.Errorf("error approving request %d: %w", requestID, err)
	}
	return approvedAt, nil
}

// Reject flips a pending request to Rejected with the final reason string.
// approved_by_admin_id records the rejecting admin as well.
func (r *ServiceRequestRepository) Reject(requestID int, reason, adminID string) (time.Time, error) {
	var rejectedAt time.Time
	err := r.DB.QueryRow(`
		UPDATE service_requests
		SET status = $1, rejected_at = NOW(), rejection_reason = $2, approved_by_admin_id = $3
		WHERE id = $4 AND status = $5
		RETURNING rejected_at`,
		db.RequestRejected, reason, adminID, requestID, db.RequestPending,
	).Scan(&rejectedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, r.classifyMissedUpdate(requestID)
		}
		return time.Time{}, fmt.Errorf("error rejecting request %d: %w", requestID, err)
	}
	return rejectedAt, nil
}

// classifyMissedUpdate distinguishes "no such request" from "request exists
// but is no longer pending" after a guarded UPDATE touched zero rows.
func (r *ServiceRequestRepository) classifyMissedUpdate(requestID int) error {
	var status string
	err := r.DB.QueryRow(
		`SELECT status FROM service_requests WHERE id = $1`, requestID,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error checking request %d: %w", requestID, err)
	}
	return ErrNotPending
}

func (r *ServiceRequestRepository) UpdateNotes(requestID int, notes string) error {
	result, err := r.DB.Exec(
		`UPDATE service_requests SET notes = $1 WHERE id = $2`, notes, requestID,
	)
	if err != nil {
		return fmt.Errorf("error updating notes for request %d: %w", requestID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading notes update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRequestRepository) ListByUser(userID string) ([]entities.RequestHistoryItem, error) {
	query := `
		SELECT r.id, r.issue_description, r.status,
		       COALESCE(p.name, ''), COALESCE(p.type, ''),
		       r.created_at, COALESCE(r.rejection_reason, ''), r.rejected_at, r.approved_at
		FROM service_requests r
		LEFT JOIN service_providers p ON r.provider_id = p.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying request history: %w", err)
	}
	defer rows.Close()

	var items []entities.RequestHistoryItem
	for rows.Next() {
		var item entities.RequestHistoryItem
		var rejectedAt, approvedAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.IssueDescription, &item.Status,
			&item.ProviderName, &item.ProviderType,
			&item.SubmittedAt, &item.RejectionReason, &rejectedAt, &approvedAt); err != nil {
			return nil, fmt.Errorf("error scanning request history row: %w", err)
		}
		if rejectedAt.Valid {
			t := rejectedAt.Time
			item.RejectedAt = &t
		}
		if approvedAt.Valid {
			t := approvedAt.Time
			item.ApprovedAt = &t
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

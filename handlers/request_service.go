package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/models"
	"p9e.in/sendreq/pkg/billing"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrEditLimitExceeded = errors.New("edit limit exceeded")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
)

// RequestService owns the payment request collection. It is the sole
// mutator of status, edit count and the derived amount field.
type RequestService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewRequestService creates a new request service instance
func NewRequestService() *RequestService {
	return &RequestService{
		db:            config.DB,
		notifications: NewNotificationService(),
	}
}

// RequestDraft is the payload for creating a request
type RequestDraft struct {
	VendorName               string              `json:"vendor_name"`
	PaymentDetails           string              `json:"payment_details"`
	Amount                   float64             `json:"amount"`
	Currency                 string              `json:"currency"`
	BillingProject           string              `json:"billing_project"`
	RequestSubject           string              `json:"request_subject"`
	Description              string              `json:"description"`
	BillingItems             models.BillingItems `json:"billing_items"`
	WithholdingTaxPercentage float64             `json:"withholding_tax_percentage"`
	Files                    models.RequestFiles `json:"files"`
	AuthorizerID             uuid.UUID           `json:"authorizer_id"`
	SignOff                  string              `json:"sign_off"`
}

// RequestUpdates is the partial payload for editing a request. Nil fields
// are left untouched.
type RequestUpdates struct {
	VendorName               *string              `json:"vendor_name,omitempty"`
	PaymentDetails           *string              `json:"payment_details,omitempty"`
	Amount                   *float64             `json:"amount,omitempty"`
	Currency                 *string              `json:"currency,omitempty"`
	BillingProject           *string              `json:"billing_project,omitempty"`
	RequestSubject           *string              `json:"request_subject,omitempty"`
	Description              *string              `json:"description,omitempty"`
	BillingItems             *models.BillingItems `json:"billing_items,omitempty"`
	WithholdingTaxPercentage *float64             `json:"withholding_tax_percentage,omitempty"`
	Files                    *models.RequestFiles `json:"files,omitempty"`
	AuthorizerID             *uuid.UUID           `json:"authorizer_id,omitempty"`
	SignOff                  *string              `json:"sign_off,omitempty"`
}

// CreateRequest validates the draft and records a new request in
// Pending Authorization, notifying the assigned authorizer.
func (rs *RequestService) CreateRequest(actor *models.User, draft RequestDraft) (*models.PaymentRequest, error) {
	if !actor.HasRole(models.RoleStaff) {
		return nil, fmt.Errorf("%w: only staff may submit requests", ErrForbidden)
	}
	if draft.VendorName == "" {
		return nil, fmt.Errorf("%w: vendor name is required", ErrValidation)
	}
	if draft.AuthorizerID == uuid.Nil {
		return nil, fmt.Errorf("%w: authorizer is required", ErrValidation)
	}
	if !strings.EqualFold(draft.SignOff, actor.Name) {
		return nil, fmt.Errorf("%w: sign-off must match your full name", ErrValidation)
	}

	// Amount is derived from line items when present; the legacy
	// single-amount mode takes the drafted value as given.
	amount := draft.Amount
	if len(draft.BillingItems) > 0 {
		amount = billing.ComputeTotals(draft.BillingItems, draft.WithholdingTaxPercentage).GrandTotal
	}

	request := &models.PaymentRequest{
		RequesterID:              actor.ID,
		RequesterName:            actor.Name,
		Department:               actor.Department,
		Position:                 actor.Position,
		VendorName:               draft.VendorName,
		PaymentDetails:           draft.PaymentDetails,
		Amount:                   amount,
		Currency:                 draft.Currency,
		BillingProject:           draft.BillingProject,
		RequestSubject:           draft.RequestSubject,
		Description:              draft.Description,
		BillingItems:             draft.BillingItems,
		WithholdingTaxPercentage: draft.WithholdingTaxPercentage,
		Files:                    draft.Files,
		AuthorizerID:             draft.AuthorizerID,
		Status:                   models.StatusPendingAuthorization,
		SignOff:                  draft.SignOff,
		EditCount:                0,
	}

	if err := rs.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.Printf("✅ Created payment request %s for %s (requester: %s)", request.ID, request.VendorName, request.RequesterName)

	rs.notifications.Notify(
		request.AuthorizerID,
		fmt.Sprintf("New payment request from %s for %s awaits your authorization.", request.RequesterName, request.VendorName),
		models.NotificationTypeInfo,
	)

	return request, nil
}

// applyUpdates merges the given updates into the request and applies the
// edit side effects: the amount is recomputed when line items change, the
// status always falls back to Pending Authorization, remarks are cleared
// and the edit count increments.
func applyUpdates(request *models.PaymentRequest, updates RequestUpdates, now time.Time) {
	if updates.VendorName != nil {
		request.VendorName = *updates.VendorName
	}
	if updates.PaymentDetails != nil {
		request.PaymentDetails = *updates.PaymentDetails
	}
	if updates.Amount != nil {
		request.Amount = *updates.Amount
	}
	if updates.Currency != nil {
		request.Currency = *updates.Currency
	}
	if updates.BillingProject != nil {
		request.BillingProject = *updates.BillingProject
	}
	if updates.RequestSubject != nil {
		request.RequestSubject = *updates.RequestSubject
	}
	if updates.Description != nil {
		request.Description = *updates.Description
	}
	if updates.BillingItems != nil {
		request.BillingItems = *updates.BillingItems
	}
	if updates.WithholdingTaxPercentage != nil {
		request.WithholdingTaxPercentage = *updates.WithholdingTaxPercentage
	}
	if updates.Files != nil {
		request.Files = *updates.Files
	}
	if updates.AuthorizerID != nil {
		request.AuthorizerID = *updates.AuthorizerID
	}
	if updates.SignOff != nil {
		request.SignOff = *updates.SignOff
	}

	if len(request.BillingItems) > 0 {
		request.Amount = billing.ComputeTotals(request.BillingItems, request.WithholdingTaxPercentage).GrandTotal
	}

	request.Status = models.StatusPendingAuthorization
	request.Remarks = ""
	request.EditCount++
	request.UpdatedAt = now
}

// EditRequest revises a request within the edit cap. Any successful edit
// resets the workflow to Pending Authorization and the authorizer is asked
// to review again.
func (rs *RequestService) EditRequest(actorID uuid.UUID, id uuid.UUID, updates RequestUpdates) (*models.PaymentRequest, error) {
	var request models.PaymentRequest

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to load request: %w", err)
		}

		if request.RequesterID != actorID {
			return fmt.Errorf("%w: only the requester may edit this request", ErrForbidden)
		}
		if request.Status == models.StatusApproved {
			return fmt.Errorf("%w: approved requests cannot be edited", ErrForbidden)
		}
		if request.EditCount >= models.MaxEditCount {
			return ErrEditLimitExceeded
		}
		if updates.SignOff != nil && !strings.EqualFold(*updates.SignOff, request.RequesterName) {
			return fmt.Errorf("%w: sign-off must match your full name", ErrValidation)
		}

		applyUpdates(&request, updates, time.Now())

		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Edited payment request %s (edit %d/%d)", request.ID, request.EditCount, models.MaxEditCount)

	rs.notifications.Notify(
		request.AuthorizerID,
		fmt.Sprintf("Update: %s has edited the request for %s. Please review again.", request.RequesterName, request.VendorName),
		models.NotificationTypeWarning,
	)

	return &request, nil
}

// UpdateStatus performs a workflow transition. The transition table and the
// actor gates are enforced here, not trusted to the caller.
func (rs *RequestService) UpdateStatus(actor *models.User, actorRole string, id uuid.UUID, newStatus models.RequestStatus, remarks string) (*models.PaymentRequest, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	var request models.PaymentRequest

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to load request: %w", err)
		}

		if !request.Status.CanTransition(newStatus) {
			return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, request.Status, newStatus)
		}

		switch request.Status {
		case models.StatusPendingAuthorization:
			if !actor.HasRole(models.RoleAuthorizer) || actor.ID != request.AuthorizerID {
				return fmt.Errorf("%w: only the assigned authorizer may act on a pending request", ErrForbidden)
			}
		case models.StatusAuthorized:
			if !actor.HasRole(models.RoleApprover) {
				return fmt.Errorf("%w: only an approver may act on an authorized request", ErrForbidden)
			}
		}

		previous := request.Status
		request.Status = newStatus
		if remarks != "" {
			request.Remarks = remarks
		}
		if newStatus == models.StatusApproved {
			request.ApproverID = &actor.ID
		}

		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}

		transition := models.RequestTransition{
			RequestID:      request.ID,
			FromStatus:     previous,
			ToStatus:       newStatus,
			ActorID:        actor.ID,
			ActorName:      actor.Name,
			ActorRole:      actorRole,
			Remarks:        remarks,
			TransitionedAt: time.Now(),
		}
		if err := tx.Create(&transition).Error; err != nil {
			return fmt.Errorf("failed to record transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Transitioned request %s to %s (actor: %s)", request.ID, newStatus, actor.Name)

	approverIDs, err := rs.approverIDs()
	if err != nil {
		log.Printf("⚠️  Failed to resolve approvers for fan-out: %v", err)
	}
	rs.notifications.NotifyAll(StatusNotifications(&request, newStatus, approverIDs))

	return &request, nil
}

// approverIDs returns the ids of every active user holding the APPROVER role
func (rs *RequestService) approverIDs() ([]uuid.UUID, error) {
	var users []models.User
	if err := rs.db.Where("is_active = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, u := range users {
		if u.HasRole(models.RoleApprover) {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

// NotificationDraft is one pending notification produced by a transition
type NotificationDraft struct {
	UserID  uuid.UUID
	Message string
	Type    models.NotificationType
}

// StatusNotifications derives the notification fan-out for a transition as
// a pure function of the request snapshot and the new status. All matching
// rules fire; authorizing a request notifies both the requester and every
// approver.
func StatusNotifications(request *models.PaymentRequest, newStatus models.RequestStatus, approverIDs []uuid.UUID) []NotificationDraft {
	var drafts []NotificationDraft

	switch newStatus {
	case models.StatusAuthorized:
		drafts = append(drafts, NotificationDraft{
			UserID:  request.RequesterID,
			Message: fmt.Sprintf("Your request to %s has been AUTHORIZED and sent to the Executive Director.", request.VendorName),
			Type:    models.NotificationTypeSuccess,
		})
		amount := strconv.FormatFloat(request.Amount, 'f', -1, 64)
		for _, approverID := range approverIDs {
			drafts = append(drafts, NotificationDraft{
				UserID:  approverID,
				Message: fmt.Sprintf("New Authorized request for %s (%s %s) requires your approval.", request.VendorName, request.Currency, amount),
				Type:    models.NotificationTypeInfo,
			})
		}

	case models.StatusApproved:
		drafts = append(drafts, NotificationDraft{
			UserID:  request.RequesterID,
			Message: fmt.Sprintf("Great news! Your request to %s has been fully APPROVED.", request.VendorName),
			Type:    models.NotificationTypeSuccess,
		})
		drafts = append(drafts, NotificationDraft{
			UserID:  request.AuthorizerID,
			Message: fmt.Sprintf("The request to %s you authorized has been APPROVED by the Executive Director.", request.VendorName),
			Type:    models.NotificationTypeSuccess,
		})

	case models.StatusRejectedByAuthorizer:
		drafts = append(drafts, NotificationDraft{
			UserID:  request.RequesterID,
			Message: fmt.Sprintf("Your request to %s was REJECTED by the Authorizer.", request.VendorName),
			Type:    models.NotificationTypeError,
		})

	case models.StatusRejectedByApprover:
		drafts = append(drafts, NotificationDraft{
			UserID:  request.RequesterID,
			Message: fmt.Sprintf("Your request to %s was REJECTED by the Executive Director.", request.VendorName),
			Type:    models.NotificationTypeError,
		})
		drafts = append(drafts, NotificationDraft{
			UserID:  request.AuthorizerID,
			Message: fmt.Sprintf("The request to %s you authorized was REJECTED by the Executive Director.", request.VendorName),
			Type:    models.NotificationTypeWarning,
		})

	case models.StatusFrozen:
		drafts = append(drafts, NotificationDraft{
			UserID:  request.RequesterID,
			Message: fmt.Sprintf("Your request to %s has been FROZEN. Please check remarks.", request.VendorName),
			Type:    models.NotificationTypeWarning,
		})
	}

	return drafts
}

// GetRequest retrieves a single request by id
func (rs *RequestService) GetRequest(id uuid.UUID) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	if err := rs.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load request: %w", err)
	}
	return &request, nil
}

// ListRequestsForRole returns the requests visible to the user under the
// given role: staff see their own, authorizers those assigned to them,
// approvers everything authorized plus what they acted on, auditors only
// fully approved requests and admins everything.
func (rs *RequestService) ListRequestsForRole(user *models.User, role string) ([]models.PaymentRequest, error) {
	if !user.HasRole(role) {
		return nil, fmt.Errorf("%w: role %q not assigned", ErrForbidden, role)
	}

	query := rs.db.Order("created_at DESC")

	switch role {
	case models.RoleStaff:
		query = query.Where("requester_id = ?", user.ID)
	case models.RoleAuthorizer:
		query = query.Where("authorizer_id = ?", user.ID)
	case models.RoleApprover:
		query = query.Where("status IN ?", []models.RequestStatus{
			models.StatusAuthorized,
			models.StatusApproved,
			models.StatusRejectedByApprover,
		})
	case models.RoleAuditor:
		query = query.Where("status = ?", models.StatusApproved)
	case models.RoleAdmin:
		// Admins see everything
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	var requests []models.PaymentRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}
	return requests, nil
}

// GetHistory retrieves the transition audit trail for a request
func (rs *RequestService) GetHistory(id uuid.UUID) ([]models.RequestTransition, error) {
	var transitions []models.RequestTransition
	if err := rs.db.
		Where("request_id = ?", id).
		Order("transitioned_at ASC").
		Find(&transitions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return transitions, nil
}

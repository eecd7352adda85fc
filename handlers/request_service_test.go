package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"p9e.in/sendreq/models"
)

func sampleRequest() *models.PaymentRequest {
	return &models.PaymentRequest{
		ID:            uuid.MustParse("7d3f9a52-1111-4a7c-9f10-000000000001"),
		RequesterID:   uuid.MustParse("7d3f9a52-1111-4a7c-9f10-000000000002"),
		RequesterName: "Alice Staff",
		VendorName:    "Print Masters Ltd",
		Currency:      "GHS",
		Amount:        1250,
		AuthorizerID:  uuid.MustParse("7d3f9a52-1111-4a7c-9f10-000000000003"),
		Status:        models.StatusPendingAuthorization,
	}
}

func TestStatusNotificationsFanOut(t *testing.T) {
	req := sampleRequest()
	approvers := []uuid.UUID{
		uuid.MustParse("7d3f9a52-1111-4a7c-9f10-000000000004"),
		uuid.MustParse("7d3f9a52-1111-4a7c-9f10-000000000005"),
	}

	tests := []struct {
		name      string
		newStatus models.RequestStatus
		// expected recipient -> type, in order
		want []struct {
			userID uuid.UUID
			typ    models.NotificationType
			substr string
		}
	}{
		{
			name:      "authorized notifies requester and every approver",
			newStatus: models.StatusAuthorized,
			want: []struct {
				userID uuid.UUID
				typ    models.NotificationType
				substr string
			}{
				{req.RequesterID, models.NotificationTypeSuccess, "AUTHORIZED and sent to the Executive Director"},
				{approvers[0], models.NotificationTypeInfo, "New Authorized request for Print Masters Ltd (GHS 1250) requires your approval."},
				{approvers[1], models.NotificationTypeInfo, "requires your approval"},
			},
		},
		{
			name:      "approved notifies requester and original authorizer",
			newStatus: models.StatusApproved,
			want: []struct {
				userID uuid.UUID
				typ    models.NotificationType
				substr string
			}{
				{req.RequesterID, models.NotificationTypeSuccess, "fully APPROVED"},
				{req.AuthorizerID, models.NotificationTypeSuccess, "you authorized has been APPROVED by the Executive Director"},
			},
		},
		{
			name:      "rejected by authorizer notifies requester only",
			newStatus: models.StatusRejectedByAuthorizer,
			want: []struct {
				userID uuid.UUID
				typ    models.NotificationType
				substr string
			}{
				{req.RequesterID, models.NotificationTypeError, "REJECTED by the Authorizer"},
			},
		},
		{
			name:      "rejected by approver notifies requester and authorizer",
			newStatus: models.StatusRejectedByApprover,
			want: []struct {
				userID uuid.UUID
				typ    models.NotificationType
				substr string
			}{
				{req.RequesterID, models.NotificationTypeError, "REJECTED by the Executive Director"},
				{req.AuthorizerID, models.NotificationTypeWarning, "you authorized was REJECTED by the Executive Director"},
			},
		},
		{
			name:      "frozen notifies requester only",
			newStatus: models.StatusFrozen,
			want: []struct {
				userID uuid.UUID
				typ    models.NotificationType
				substr string
			}{
				{req.RequesterID, models.NotificationTypeWarning, "FROZEN. Please check remarks."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts := StatusNotifications(req, tt.newStatus, approvers)
			if len(drafts) != len(tt.want) {
				t.Fatalf("got %d notifications, expected %d: %+v", len(drafts), len(tt.want), drafts)
			}
			for i, want := range tt.want {
				if drafts[i].UserID != want.userID {
					t.Errorf("draft %d recipient = %s, expected %s", i, drafts[i].UserID, want.userID)
				}
				if drafts[i].Type != want.typ {
					t.Errorf("draft %d type = %s, expected %s", i, drafts[i].Type, want.typ)
				}
				if !strings.Contains(drafts[i].Message, want.substr) {
					t.Errorf("draft %d message %q does not contain %q", i, drafts[i].Message, want.substr)
				}
				if !strings.Contains(drafts[i].Message, req.VendorName) {
					t.Errorf("draft %d message %q does not mention the vendor", i, drafts[i].Message)
				}
			}
		})
	}
}

func TestStatusNotificationsDeterministic(t *testing.T) {
	req := sampleRequest()
	approvers := []uuid.UUID{uuid.MustParse("7d3f9a52-1111-4a7c-9f10-000000000004")}

	first := StatusNotifications(req, models.StatusAuthorized, approvers)
	second := StatusNotifications(req, models.StatusAuthorized, approvers)
	if len(first) != len(second) {
		t.Fatalf("two identical calls produced %d vs %d drafts", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("draft %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestApplyUpdatesResetsWorkflow(t *testing.T) {
	now := time.Now()

	for _, status := range []models.RequestStatus{
		models.StatusAuthorized,
		models.StatusFrozen,
		models.StatusRejectedByAuthorizer,
		models.StatusRejectedByApprover,
	} {
		req := sampleRequest()
		req.Status = status
		req.Remarks = "needs another quote"
		req.EditCount = 1

		vendor := "New Vendor Ltd"
		applyUpdates(req, RequestUpdates{VendorName: &vendor}, now)

		if req.Status != models.StatusPendingAuthorization {
			t.Errorf("from %q: status = %q, expected Pending Authorization", status, req.Status)
		}
		if req.Remarks != "" {
			t.Errorf("from %q: remarks %q not cleared", status, req.Remarks)
		}
		if req.EditCount != 2 {
			t.Errorf("from %q: editCount = %d, expected 2", status, req.EditCount)
		}
		if req.VendorName != vendor {
			t.Errorf("from %q: vendor not merged", status)
		}
		if !req.UpdatedAt.Equal(now) {
			t.Errorf("from %q: updatedAt not set", status)
		}
	}
}

func TestApplyUpdatesRecomputesAmount(t *testing.T) {
	req := sampleRequest()
	items := models.BillingItems{
		{Description: "A", UnitCost: 100, Quantity: 2, Frequency: 1},
	}
	pct := 10.0

	applyUpdates(req, RequestUpdates{BillingItems: &items, WithholdingTaxPercentage: &pct}, time.Now())

	if req.Amount != 180 {
		t.Errorf("amount = %v, expected 180 (200 sub-total minus 10%% withholding)", req.Amount)
	}
}

func TestApplyUpdatesKeepsAmountWithoutItems(t *testing.T) {
	// Legacy single-amount mode: no line items, amount stays directly settable
	req := sampleRequest()
	req.BillingItems = nil
	amount := 999.5

	applyUpdates(req, RequestUpdates{Amount: &amount}, time.Now())

	if req.Amount != 999.5 {
		t.Errorf("amount = %v, expected 999.5", req.Amount)
	}
}

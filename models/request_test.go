package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     RequestStatus
		to       RequestStatus
		expected bool
	}{
		// From Pending Authorization
		{"pending to authorized", StatusPendingAuthorization, StatusAuthorized, true},
		{"pending to frozen", StatusPendingAuthorization, StatusFrozen, true},
		{"pending to rejected by authorizer", StatusPendingAuthorization, StatusRejectedByAuthorizer, true},
		{"pending straight to approved", StatusPendingAuthorization, StatusApproved, false},
		{"pending to rejected by approver", StatusPendingAuthorization, StatusRejectedByApprover, false},

		// From Authorized
		{"authorized to approved", StatusAuthorized, StatusApproved, true},
		{"authorized to rejected by approver", StatusAuthorized, StatusRejectedByApprover, true},
		{"authorized to frozen", StatusAuthorized, StatusFrozen, false},
		{"authorized back to pending", StatusAuthorized, StatusPendingAuthorization, false},

		// Terminal and dead-end states
		{"frozen has no outgoing transitions", StatusFrozen, StatusPendingAuthorization, false},
		{"frozen to authorized", StatusFrozen, StatusAuthorized, false},
		{"approved is terminal", StatusApproved, StatusPendingAuthorization, false},
		{"rejected by authorizer is terminal", StatusRejectedByAuthorizer, StatusAuthorized, false},
		{"rejected by approver is terminal", StatusRejectedByApprover, StatusApproved, false},

		// Self transitions are never legal
		{"pending to pending", StatusPendingAuthorization, StatusPendingAuthorization, false},
		{"authorized to authorized", StatusAuthorized, StatusAuthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.expected {
				t.Errorf("CanTransition(%q -> %q) = %v, expected %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status   RequestStatus
		expected bool
	}{
		{StatusPendingAuthorization, false},
		{StatusAuthorized, false},
		{StatusFrozen, true},
		{StatusRejectedByAuthorizer, true},
		{StatusApproved, true},
		{StatusRejectedByApprover, true},
	}

	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.expected {
			t.Errorf("IsTerminal(%q) = %v, expected %v", tt.status, got, tt.expected)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range []RequestStatus{
		StatusPendingAuthorization, StatusAuthorized, StatusFrozen,
		StatusRejectedByAuthorizer, StatusApproved, StatusRejectedByApprover,
	} {
		if !s.IsValid() {
			t.Errorf("IsValid(%q) = false, expected true", s)
		}
	}
	if RequestStatus("Shipped").IsValid() {
		t.Error("IsValid accepted an unknown status")
	}
}

func TestEditable(t *testing.T) {
	tests := []struct {
		name     string
		status   RequestStatus
		edits    int
		expected bool
	}{
		{"fresh pending request", StatusPendingAuthorization, 0, true},
		{"one edit left", StatusFrozen, 1, true},
		{"edit cap reached", StatusPendingAuthorization, 2, false},
		{"beyond cap", StatusRejectedByAuthorizer, 3, false},
		{"approved is immutable even with edits left", StatusApproved, 0, false},
		{"rejected by approver still editable", StatusRejectedByApprover, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PaymentRequest{Status: tt.status, EditCount: tt.edits}
			if got := r.Editable(); got != tt.expected {
				t.Errorf("Editable() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

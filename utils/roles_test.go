package utils

import "testing"

func TestHasRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		required string
		expected bool
	}{
		{"single role exact match", []string{"STAFF"}, "STAFF", true},
		{"single role no match", []string{"STAFF"}, "AUTHORIZER", false},
		{"multi role match first", []string{"AUTHORIZER", "STAFF"}, "AUTHORIZER", true},
		{"multi role match last", []string{"AUTHORIZER", "STAFF"}, "STAFF", true},
		{"approver does not imply authorizer", []string{"APPROVER"}, "AUTHORIZER", false},
		{"admin does not imply staff", []string{"ADMIN"}, "STAFF", false},
		{"empty role set", []string{}, "STAFF", false},
		{"nil role set", nil, "STAFF", false},
		{"empty required", []string{"STAFF"}, "", false},
		{"case sensitive", []string{"staff"}, "STAFF", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRole(tt.roles, tt.required); got != tt.expected {
				t.Errorf("HasRole(%v, %q) = %v, expected %v", tt.roles, tt.required, got, tt.expected)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		required []string
		expected bool
	}{
		{"one of several matches", []string{"STAFF"}, []string{"AUDITOR", "STAFF"}, true},
		{"none match", []string{"STAFF"}, []string{"AUDITOR", "ADMIN"}, false},
		{"empty required set", []string{"STAFF"}, []string{}, false},
		{"empty user set", []string{}, []string{"STAFF"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAnyRole(tt.roles, tt.required); got != tt.expected {
				t.Errorf("HasAnyRole(%v, %v) = %v, expected %v", tt.roles, tt.required, got, tt.expected)
			}
		})
	}
}

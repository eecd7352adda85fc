package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus defines the lifecycle state of a payment request
type RequestStatus string

const (
	StatusPendingAuthorization RequestStatus = "Pending Authorization"
	StatusAuthorized           RequestStatus = "Authorized"
	StatusFrozen               RequestStatus = "Frozen"
	StatusRejectedByAuthorizer RequestStatus = "Rejected (Auth)"
	StatusApproved             RequestStatus = "Approved"
	StatusRejectedByApprover   RequestStatus = "Rejected (ED)"
)

// MaxEditCount caps how many times a requester may revise a submitted
// request before it must run the full cycle again.
const MaxEditCount = 2

// statusTransitions is the authoritative transition table. A status that
// maps to an empty set is terminal. FROZEN currently has no outgoing
// transitions; if thawing back to Pending Authorization is ever wanted,
// add the edge here and every caller picks it up.
var statusTransitions = map[RequestStatus][]RequestStatus{
	StatusPendingAuthorization: {StatusAuthorized, StatusFrozen, StatusRejectedByAuthorizer},
	StatusAuthorized:           {StatusApproved, StatusRejectedByApprover},
	StatusFrozen:               {},
	StatusRejectedByAuthorizer: {},
	StatusApproved:             {},
	StatusRejectedByApprover:   {},
}

// IsValid reports whether the value is a known request status
func (s RequestStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether the status may move to the target status
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are defined
func (s RequestStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// FileType tags an attachment on a request
type FileType string

const (
	FileTypeMemo    FileType = "memo"
	FileTypeInvoice FileType = "invoice"
	FileTypeOther   FileType = "other"
)

// RequestFile is an attachment placeholder (name, type and serving URL)
type RequestFile struct {
	Name string   `json:"name"`
	Type FileType `json:"type"`
	URL  string   `json:"url"`
}

// RequestFiles stores attachments as a JSONB array
type RequestFiles []RequestFile

func (f *RequestFiles) Scan(value interface{}) error {
	if value == nil {
		*f = RequestFiles{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		*f = RequestFiles{}
		return nil
	}
	return json.Unmarshal(bytes, f)
}

func (f RequestFiles) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal([]RequestFile{})
	}
	return json.Marshal(f)
}

// GormDataType defines the data type for GORM
func (RequestFiles) GormDataType() string {
	return "jsonb"
}

// BillingItem is one line of a request's billing breakdown
type BillingItem struct {
	Description string  `json:"description"`
	UnitCost    float64 `json:"unit_cost"`
	Quantity    float64 `json:"quantity"`
	Frequency   float64 `json:"frequency"`
}

// BillingItems stores the line items as a JSONB array
type BillingItems []BillingItem

func (b *BillingItems) Scan(value interface{}) error {
	if value == nil {
		*b = BillingItems{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		*b = BillingItems{}
		return nil
	}
	return json.Unmarshal(bytes, b)
}

func (b BillingItems) Value() (driver.Value, error) {
	if b == nil {
		return json.Marshal([]BillingItem{})
	}
	return json.Marshal(b)
}

// GormDataType defines the data type for GORM
func (BillingItems) GormDataType() string {
	return "jsonb"
}

// PaymentRequest is the central workflow entity. Requester identity fields
// are snapshotted at creation time and never re-derived from the user row.
type PaymentRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Requester snapshot
	RequesterID   uuid.UUID `gorm:"type:uuid;not null;index" json:"requester_id"`
	RequesterName string    `gorm:"size:100;not null" json:"requester_name"`
	Department    string    `gorm:"size:100;not null" json:"department"`
	Position      string    `gorm:"size:100" json:"position"`

	// Business fields
	VendorName               string       `gorm:"size:200;not null" json:"vendor_name"`
	PaymentDetails           string       `gorm:"type:text" json:"payment_details"`
	Amount                   float64      `gorm:"not null" json:"amount"`
	Currency                 string       `gorm:"size:10;not null" json:"currency"`
	BillingProject           string       `gorm:"size:200" json:"billing_project"`
	RequestSubject           string       `gorm:"size:255" json:"request_subject"`
	Description              string       `gorm:"type:text" json:"description"`
	BillingItems             BillingItems `gorm:"type:jsonb;default:'[]'" json:"billing_items"`
	WithholdingTaxPercentage float64      `gorm:"default:0" json:"withholding_tax_percentage"`
	Files                    RequestFiles `gorm:"type:jsonb;default:'[]'" json:"files"`

	// Workflow fields
	AuthorizerID uuid.UUID     `gorm:"type:uuid;not null;index" json:"authorizer_id"`
	ApproverID   *uuid.UUID    `gorm:"type:uuid;index" json:"approver_id,omitempty"`
	Status       RequestStatus `gorm:"size:50;not null;index" json:"status"`
	Remarks      string        `gorm:"type:text" json:"remarks,omitempty"`
	SignOff      string        `gorm:"size:100;not null" json:"sign_off"`
	EditCount    int           `gorm:"default:0" json:"edit_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *PaymentRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// Editable reports whether the requester may still revise this request.
// Approved requests are immutable and the edit cap is hard.
func (r *PaymentRequest) Editable() bool {
	return r.Status != StatusApproved && r.EditCount < MaxEditCount
}

// TableName specifies the table name
func (PaymentRequest) TableName() string {
	return "payment_requests"
}

// RequestTransition records one status change for the audit trail
type RequestTransition struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"request_id"`
	FromStatus     RequestStatus `gorm:"size:50;not null" json:"from_status"`
	ToStatus       RequestStatus `gorm:"size:50;not null" json:"to_status"`
	ActorID        uuid.UUID     `gorm:"type:uuid;not null" json:"actor_id"`
	ActorName      string        `gorm:"size:100" json:"actor_name"`
	ActorRole      string        `gorm:"size:50" json:"actor_role"`
	Remarks        string        `gorm:"type:text" json:"remarks,omitempty"`
	TransitionedAt time.Time     `json:"transitioned_at"`

	Request *PaymentRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
}

func (t *RequestTransition) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// TableName specifies the table name
func (RequestTransition) TableName() string {
	return "request_transitions"
}

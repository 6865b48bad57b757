package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Update request statuses. A request starts PENDING and is resolved at most
// once, to APPROVED or REJECTED.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Update request types.
const (
	RequestProfileUpdate = "PROFILE_UPDATE"
	RequestServiceUpdate = "SERVICE_UPDATE"
	RequestChildUpdate   = "CHILD_UPDATE"
	RequestChildAdd      = "CHILD_ADD"
)

// ErrUnknownRequestType is returned when a payload carries a request type
// outside the closed enumeration.
var ErrUnknownRequestType = errors.New("unknown request type")

// UpdateRequest is a staged, admin-reviewable proposal to change a piece of
// account-owned data.
type UpdateRequest struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	RequestType  string          `json:"request_type"`
	RequestData  json.RawMessage `json:"request_data"`
	Status       string          `json:"status"`
	AdminComment *string         `json:"admin_comment"`
	CreatedAt    time.Time       `json:"created_at"`

	// Non-DB fields, populated via JOIN for display and notification
	OwnerName  string `json:"owner_name,omitempty"`
	OwnerEmail string `json:"owner_email,omitempty"`
}

// Resolved reports whether the request has reached a terminal status.
func (r *UpdateRequest) Resolved() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// Data decodes the raw payload into its typed variant.
func (r *UpdateRequest) Data() (RequestData, error) {
	return DecodeRequestData(r.RequestType, r.RequestData)
}

// RequestData is the typed payload of an update request. Exactly one
// concrete type exists per request type, so appliers can switch over the
// variants exhaustively instead of probing a free-form map.
type RequestData interface {
	RequestType() string
}

// ProfileUpdateData carries replacement profile fields.
type ProfileUpdateData struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	AdditionalInfo string `json:"additional_info"`
}

func (ProfileUpdateData) RequestType() string { return RequestProfileUpdate }

// ServiceUpdateData carries replacement service preference flags.
type ServiceUpdateData struct {
	Childcare         bool `json:"childcare"`
	MealPreparation   bool `json:"meal_preparation"`
	LightHousekeeping bool `json:"light_housekeeping"`
	Tutoring          bool `json:"tutoring"`
	PetMinding        bool `json:"pet_minding"`
}

func (ServiceUpdateData) RequestType() string { return RequestServiceUpdate }

// ChildUpdateData carries replacement fields for an existing child.
// Older clients submitted the target under "id" rather than "child_id";
// TargetChildID handles both. The legacy field is never written back
// when unset.
type ChildUpdateData struct {
	ChildID      uuid.UUID `json:"child_id"`
	ID           uuid.UUID `json:"id,omitzero"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Age          int       `json:"age"`
	SpecialNotes string    `json:"special_notes"`
}

func (ChildUpdateData) RequestType() string { return RequestChildUpdate }

// TargetChildID returns the child this update addresses.
func (d ChildUpdateData) TargetChildID() uuid.UUID {
	if d.ChildID != uuid.Nil {
		return d.ChildID
	}
	return d.ID
}

// ChildAddData carries the fields of a child to be created.
type ChildAddData struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Age          int    `json:"age"`
	SpecialNotes string `json:"special_notes"`
}

func (ChildAddData) RequestType() string { return RequestChildAdd }

// DecodeRequestData unmarshals a raw payload into the variant matching
// requestType. Unknown types return ErrUnknownRequestType.
func DecodeRequestData(requestType string, raw json.RawMessage) (RequestData, error) {
	decode := func(v RequestData) (RequestData, error) {
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", requestType, err)
		}
		return v, nil
	}

	switch requestType {
	case RequestProfileUpdate:
		data, err := decode(&ProfileUpdateData{})
		if err != nil {
			return nil, err
		}
		return *data.(*ProfileUpdateData), nil
	case RequestServiceUpdate:
		data, err := decode(&ServiceUpdateData{})
		if err != nil {
			return nil, err
		}
		return *data.(*ServiceUpdateData), nil
	case RequestChildUpdate:
		data, err := decode(&ChildUpdateData{})
		if err != nil {
			return nil, err
		}
		return *data.(*ChildUpdateData), nil
	case RequestChildAdd:
		data, err := decode(&ChildAddData{})
		if err != nil {
			return nil, err
		}
		return *data.(*ChildAddData), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequestType, requestType)
	}
}

// EncodeRequestData marshals a typed payload for storage.
func EncodeRequestData(data RequestData) (json.RawMessage, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", data.RequestType(), err)
	}
	return raw, nil
}

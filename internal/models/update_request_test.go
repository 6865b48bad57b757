package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestDecodeRequestData(t *testing.T) {
	tests := []struct {
		name        string
		requestType string
		raw         string
		want        RequestData
	}{
		{
			name:        "profile update",
			requestType: RequestProfileUpdate,
			raw:         `{"first_name":"Jane","last_name":"Doe","phone":"5551234567","address":"1 Main St","city":"Metropolis","postal_code":"00001"}`,
			want: ProfileUpdateData{
				FirstName:  "Jane",
				LastName:   "Doe",
				Phone:      "5551234567",
				Address:    "1 Main St",
				City:       "Metropolis",
				PostalCode: "00001",
			},
		},
		{
			name:        "service update",
			requestType: RequestServiceUpdate,
			raw:         `{"childcare":true,"tutoring":true}`,
			want:        ServiceUpdateData{Childcare: true, Tutoring: true},
		},
		{
			name:        "child add",
			requestType: RequestChildAdd,
			raw:         `{"first_name":"Sam","last_name":"Doe","age":7}`,
			want:        ChildAddData{FirstName: "Sam", LastName: "Doe", Age: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRequestData(tt.requestType, json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("DecodeRequestData() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeRequestData() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeRequestData_UnknownType(t *testing.T) {
	_, err := DecodeRequestData("ACCOUNT_DELETE", json.RawMessage(`{}`))
	if !errors.Is(err, ErrUnknownRequestType) {
		t.Errorf("DecodeRequestData() error = %v, want ErrUnknownRequestType", err)
	}
}

func TestDecodeRequestData_MalformedPayload(t *testing.T) {
	_, err := DecodeRequestData(RequestProfileUpdate, json.RawMessage(`{not json`))
	if err == nil {
		t.Error("DecodeRequestData() expected error for malformed payload")
	}
}

func TestChildUpdateData_TargetChildID(t *testing.T) {
	childID := uuid.New()
	legacyID := uuid.New()

	d := ChildUpdateData{ChildID: childID, ID: legacyID}
	if got := d.TargetChildID(); got != childID {
		t.Errorf("TargetChildID() = %v, want child_id %v", got, childID)
	}

	// Older clients only set "id"
	d = ChildUpdateData{ID: legacyID}
	if got := d.TargetChildID(); got != legacyID {
		t.Errorf("TargetChildID() = %v, want legacy id %v", got, legacyID)
	}
}

func TestEncodeRequestData_RoundTrip(t *testing.T) {
	childID := uuid.New()
	in := ChildUpdateData{ChildID: childID, FirstName: "Sam", Age: 8}

	raw, err := EncodeRequestData(in)
	if err != nil {
		t.Fatalf("EncodeRequestData() error = %v", err)
	}

	out, err := DecodeRequestData(RequestChildUpdate, raw)
	if err != nil {
		t.Fatalf("DecodeRequestData() error = %v", err)
	}
	if out.(ChildUpdateData).TargetChildID() != childID {
		t.Errorf("round trip lost child id")
	}
}

// The legacy "id" alias is accepted on decode but never persisted when
// unset, so stored payloads carry "child_id" alone.
func TestEncodeChildUpdateData_OmitsUnsetLegacyID(t *testing.T) {
	raw, err := EncodeRequestData(ChildUpdateData{ChildID: uuid.New(), FirstName: "Sam"})
	if err != nil {
		t.Fatalf("EncodeRequestData() error = %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal encoded payload: %v", err)
	}
	if _, ok := fields["id"]; ok {
		t.Errorf(`encoded payload carries a zero "id": %s`, raw)
	}
	if _, ok := fields["child_id"]; !ok {
		t.Errorf(`encoded payload missing "child_id": %s`, raw)
	}
}

func TestUpdateRequestResolved(t *testing.T) {
	req := &UpdateRequest{Status: StatusPending}
	if req.Resolved() {
		t.Error("Resolved() = true for PENDING")
	}
	req.Status = StatusApproved
	if !req.Resolved() {
		t.Error("Resolved() = false for APPROVED")
	}
	req.Status = StatusRejected
	if !req.Resolved() {
		t.Error("Resolved() = false for REJECTED")
	}
}

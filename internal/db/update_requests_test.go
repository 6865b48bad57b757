package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"familyservices/internal/models"
)

func TestApproveProfileUpdateAppliesToOwnerOnly(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "owner@example.com")
	bystander, _ := createTestFamily(t, database, "bystander@example.com")

	data := models.ProfileUpdateData{
		FirstName:      "Jane",
		LastName:       "Doe",
		Phone:          "5551234567",
		Address:        "1 Main St",
		City:           "Metropolis",
		PostalCode:     "00001",
		AdditionalInfo: "updated",
	}
	req, err := database.CreateUpdateRequest(ctx, owner.ID, data)
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}
	if req.Status != models.StatusPending {
		t.Fatalf("new request status = %q, want PENDING", req.Status)
	}

	if err := database.ApproveUpdateRequest(ctx, req.ID, "ok"); err != nil {
		t.Fatalf("ApproveUpdateRequest: %v", err)
	}

	got, err := database.GetUserByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.FirstName != "Jane" || got.LastName != "Doe" || got.Phone != "5551234567" ||
		got.Address != "1 Main St" || got.City != "Metropolis" || got.PostalCode != "00001" ||
		got.AdditionalInfo != "updated" {
		t.Errorf("profile fields not applied exactly: %+v", got)
	}

	other, _ := database.GetUserByID(ctx, bystander.ID)
	if other.FirstName != "Test" {
		t.Errorf("another account's profile changed: %+v", other)
	}

	resolved, _ := database.GetUpdateRequestByID(ctx, req.ID)
	if resolved.Status != models.StatusApproved {
		t.Errorf("status = %q, want APPROVED", resolved.Status)
	}
	if resolved.AdminComment == nil || *resolved.AdminComment != "ok" {
		t.Errorf("admin comment not stored")
	}
}

func TestApproveServiceUpdate(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "svc@example.com")

	req, err := database.CreateUpdateRequest(ctx, owner.ID, models.ServiceUpdateData{
		MealPreparation: true,
		PetMinding:      true,
	})
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}
	if err := database.ApproveUpdateRequest(ctx, req.ID, ""); err != nil {
		t.Fatalf("ApproveUpdateRequest: %v", err)
	}

	svc, err := database.GetServicesByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetServicesByUser: %v", err)
	}
	// Flags are replaced wholesale, not merged.
	if !svc.MealPreparation || !svc.PetMinding || svc.Childcare || svc.Tutoring {
		t.Errorf("service flags not replaced: %+v", svc)
	}
}

func TestApproveChildAddPreservesSiblings(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, existing := createTestFamily(t, database, "childadd@example.com")

	req, err := database.CreateUpdateRequest(ctx, owner.ID, models.ChildAddData{
		FirstName: "Sam", LastName: "Doe", Age: 7,
	})
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}
	if err := database.ApproveUpdateRequest(ctx, req.ID, ""); err != nil {
		t.Fatalf("ApproveUpdateRequest: %v", err)
	}

	kids, err := database.GetChildrenByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetChildrenByUser: %v", err)
	}
	if len(kids) != 2 {
		t.Fatalf("got %d children, want 2", len(kids))
	}
	for _, k := range kids {
		if k.ID == existing[0].ID {
			if k.FirstName != existing[0].FirstName || k.Age != existing[0].Age {
				t.Errorf("sibling mutated by CHILD_ADD: %+v", k)
			}
		} else if k.FirstName != "Sam" || k.Age != 7 {
			t.Errorf("new child fields wrong: %+v", k)
		}
	}
}

func TestApproveChildUpdate(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, kids := createTestFamily(t, database, "childupd@example.com")

	req, err := database.CreateUpdateRequest(ctx, owner.ID, models.ChildUpdateData{
		ChildID:      kids[0].ID,
		FirstName:    "Alexandra",
		LastName:     "Family",
		Age:          7,
		SpecialNotes: "no allergies anymore",
	})
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}
	if err := database.ApproveUpdateRequest(ctx, req.ID, ""); err != nil {
		t.Fatalf("ApproveUpdateRequest: %v", err)
	}

	child, err := database.GetChildByIDAndUser(ctx, kids[0].ID, owner.ID)
	if err != nil {
		t.Fatalf("GetChildByIDAndUser: %v", err)
	}
	if child.FirstName != "Alexandra" || child.Age != 7 || child.SpecialNotes != "no allergies anymore" {
		t.Errorf("child fields not applied: %+v", child)
	}
}

func TestApproveCrossAccountChildUpdateRollsBack(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	attacker, _ := createTestFamily(t, database, "attacker@example.com")
	victim, victimKids := createTestFamily(t, database, "victim@example.com")

	// A request owned by one account that targets another account's child.
	req, err := database.CreateUpdateRequest(ctx, attacker.ID, models.ChildUpdateData{
		ChildID:   victimKids[0].ID,
		FirstName: "Hijacked",
	})
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}

	err = database.ApproveUpdateRequest(ctx, req.ID, "")
	if !errors.Is(err, ErrChildNotFound) {
		t.Fatalf("err = %v, want ErrChildNotFound", err)
	}

	// The victim's child is untouched.
	child, _ := database.GetChildByIDAndUser(ctx, victimKids[0].ID, victim.ID)
	if child.FirstName == "Hijacked" {
		t.Error("cross-account update reached the wrong owner")
	}

	// The whole approval rolled back: the request is still pending and
	// can be rejected instead.
	got, _ := database.GetUpdateRequestByID(ctx, req.ID)
	if got.Status != models.StatusPending {
		t.Errorf("status = %q, want PENDING after rollback", got.Status)
	}
	if err := database.RejectUpdateRequest(ctx, req.ID, "invalid target"); err != nil {
		t.Errorf("rejecting the rolled-back request: %v", err)
	}
}

func TestApproveUndecodablePayloadCommitsWithoutApplying(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "garbage@example.com")

	req, err := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{
		FirstName: "Never", LastName: "Applied",
	})
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}

	// Simulate stored data that no longer matches any known payload shape.
	if _, err := database.Pool.Exec(ctx,
		`UPDATE update_requests SET request_data = '"garbage"'::jsonb WHERE id = $1`, req.ID); err != nil {
		t.Fatalf("corrupting payload: %v", err)
	}

	// Approval still commits; the apply step is a warned no-op.
	if err := database.ApproveUpdateRequest(ctx, req.ID, "approved anyway"); err != nil {
		t.Fatalf("ApproveUpdateRequest: %v", err)
	}

	resolved, _ := database.GetUpdateRequestByID(ctx, req.ID)
	if resolved.Status != models.StatusApproved {
		t.Errorf("status = %q, want APPROVED", resolved.Status)
	}

	got, _ := database.GetUserByID(ctx, owner.ID)
	if got.FirstName == "Never" {
		t.Error("undecodable payload mutated the owned entity")
	}
}

func TestRejectNeverApplies(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "reject@example.com")

	req, err := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{
		FirstName: "Never", LastName: "Applied",
	})
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}
	if err := database.RejectUpdateRequest(ctx, req.ID, "not today"); err != nil {
		t.Fatalf("RejectUpdateRequest: %v", err)
	}

	got, _ := database.GetUserByID(ctx, owner.ID)
	if got.FirstName == "Never" {
		t.Error("rejection mutated the owned entity")
	}

	resolved, _ := database.GetUpdateRequestByID(ctx, req.ID)
	if resolved.Status != models.StatusRejected {
		t.Errorf("status = %q, want REJECTED", resolved.Status)
	}
	if resolved.AdminComment == nil || *resolved.AdminComment != "not today" {
		t.Errorf("admin comment not stored")
	}
}

func TestProcessingIsAtMostOnce(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "once@example.com")

	req, err := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{
		FirstName: "Once", LastName: "Only",
	})
	if err != nil {
		t.Fatalf("CreateUpdateRequest: %v", err)
	}

	if err := database.ApproveUpdateRequest(ctx, req.ID, ""); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	// Status is terminal: neither a second approval nor a rejection can
	// touch a resolved request.
	if err := database.ApproveUpdateRequest(ctx, req.ID, ""); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("second approve: err = %v, want ErrRequestNotFound", err)
	}
	if err := database.RejectUpdateRequest(ctx, req.ID, ""); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("reject after approve: err = %v, want ErrRequestNotFound", err)
	}

	got, _ := database.GetUpdateRequestByID(ctx, req.ID)
	if got.Status != models.StatusApproved {
		t.Errorf("status flipped after terminal state: %q", got.Status)
	}
}

func TestGetAllUpdateRequestsNewestFirst(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "order@example.com")

	first, _ := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{FirstName: "A"})
	second, _ := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{FirstName: "B"})

	// Force distinct timestamps; inserts within a transaction-free burst
	// can share NOW() granularity.
	if _, err := database.Pool.Exec(ctx,
		"UPDATE update_requests SET created_at = created_at - INTERVAL '1 minute' WHERE id = $1", first.ID); err != nil {
		t.Fatalf("backdating request: %v", err)
	}

	all, err := database.GetAllUpdateRequests(ctx)
	if err != nil {
		t.Fatalf("GetAllUpdateRequests: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d requests, want 2", len(all))
	}
	if all[0].ID != second.ID {
		t.Errorf("newest request not first")
	}
	if all[0].OwnerEmail != "order@example.com" || all[0].OwnerName == "" {
		t.Errorf("owner fields not joined: %+v", all[0])
	}
}

func TestRecentRequestsWindow(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "window@example.com")

	oldPending, _ := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{FirstName: "OldPending"})
	oldResolved, _ := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{FirstName: "OldResolved"})
	fresh, _ := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{FirstName: "Fresh"})

	if err := database.RejectUpdateRequest(ctx, oldResolved.ID, ""); err != nil {
		t.Fatalf("RejectUpdateRequest: %v", err)
	}
	// Backdate both "old" requests past the seven-day window.
	for _, id := range []uuid.UUID{oldPending.ID, oldResolved.ID} {
		if _, err := database.Pool.Exec(ctx,
			"UPDATE update_requests SET created_at = NOW() - INTERVAL '10 days' WHERE id = $1", id); err != nil {
			t.Fatalf("backdating request: %v", err)
		}
	}

	recent, err := database.GetRecentRequestsByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetRecentRequestsByUser: %v", err)
	}

	ids := make(map[string]bool)
	for _, r := range recent {
		ids[r.ID.String()] = true
	}
	if !ids[fresh.ID.String()] {
		t.Error("fresh request missing from the window")
	}
	if !ids[oldPending.ID.String()] {
		t.Error("pending requests must be listed regardless of age")
	}
	if ids[oldResolved.ID.String()] {
		t.Error("resolved request older than seven days must drop out")
	}
}

func TestCountUpdateRequests(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	owner, _ := createTestFamily(t, database, "counts@example.com")

	a, _ := database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{FirstName: "A"})
	database.CreateUpdateRequest(ctx, owner.ID, models.ProfileUpdateData{FirstName: "B"})
	database.RejectUpdateRequest(ctx, a.ID, "")

	counts, err := database.CountUpdateRequests(ctx)
	if err != nil {
		t.Fatalf("CountUpdateRequests: %v", err)
	}

	got := make(map[string]int64)
	for _, c := range counts {
		got[c.RequestType+"/"+c.Status] = c.Count
	}
	if got[models.RequestProfileUpdate+"/"+models.StatusPending] != 1 {
		t.Errorf("pending count = %d, want 1", got[models.RequestProfileUpdate+"/"+models.StatusPending])
	}
	if got[models.RequestProfileUpdate+"/"+models.StatusRejected] != 1 {
		t.Errorf("rejected count = %d, want 1", got[models.RequestProfileUpdate+"/"+models.StatusRejected])
	}
}

//go:build unit

package persistence_inmemory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

func testShell(id, idShort string, created time.Time) *model.Shell {
	return &model.Shell{
		ID:       id,
		IdShort:  idShort,
		Created:  created,
		Modified: created,
		Submodels: []model.Submodel{
			{
				ID:      "urn:dpp:submodel:nameplate:1",
				IdShort: model.SubmodelNameplate,
				Elements: []model.SubmodelElement{
					{IdShort: "ManufacturerName", ValueType: model.ValueTypeString, Value: "ACME"},
				},
			},
		},
	}
}

func TestInsertAndGet(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := db.Insert(ctx, testShell("urn:dpp:aas:1", "pump-1", now)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := db.Get(ctx, "urn:dpp:aas:1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.IdShort != "pump-1" {
		t.Errorf("expected idShort 'pump-1', got %q", got.IdShort)
	}
	if len(got.Submodels) != 1 {
		t.Errorf("expected 1 submodel, got %d", len(got.Submodels))
	}
}

func TestInsertDuplicateIdentifier(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := db.Insert(ctx, testShell("urn:dpp:aas:1", "pump-1", now)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	err := db.Insert(ctx, testShell("urn:dpp:aas:1", "pump-2", now))
	if err == nil {
		t.Fatal("expected error on duplicate identifier")
	}
	if !common.IsErrBadRequest(err) {
		t.Errorf("expected bad request error, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	db := NewInMemoryShellDatabase()
	_, err := db.Get(context.Background(), "urn:dpp:aas:missing")
	if err == nil {
		t.Fatal("expected error for missing shell")
	}
	if !common.IsErrNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := db.Insert(ctx, testShell("urn:dpp:aas:1", "pump-1", now)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	first, _ := db.Get(ctx, "urn:dpp:aas:1")
	first.IdShort = "mutated"
	first.Submodels[0].Elements[0].Value = "mutated"

	second, _ := db.Get(ctx, "urn:dpp:aas:1")
	if second.IdShort != "pump-1" {
		t.Errorf("stored state was mutated via snapshot: idShort %q", second.IdShort)
	}
	if second.Submodels[0].Elements[0].Value != "ACME" {
		t.Errorf("stored element was mutated via snapshot: %v", second.Submodels[0].Elements[0].Value)
	}
}

func TestGetAllOrderedByCreation(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	base := time.Now().UTC()

	db.Insert(ctx, testShell("urn:dpp:aas:b", "second", base.Add(time.Second)))
	db.Insert(ctx, testShell("urn:dpp:aas:a", "first", base))
	db.Insert(ctx, testShell("urn:dpp:aas:c", "third", base.Add(2*time.Second)))

	all, err := db.GetAll(ctx)
	if err != nil {
		t.Fatalf("getAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 shells, got %d", len(all))
	}
	want := []string{"first", "second", "third"}
	for i, s := range all {
		if s.IdShort != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], s.IdShort)
		}
	}
}

func TestUpdateInstallsMutatedCopy(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	db.Insert(ctx, testShell("urn:dpp:aas:1", "pump-1", now))

	updated, err := db.Update(ctx, "urn:dpp:aas:1", func(s *model.Shell) error {
		s.Submodels[0].Elements[0].Value = "Globex"
		s.Touch(now.Add(time.Second))
		return nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Submodels[0].Elements[0].Value != "Globex" {
		t.Errorf("update result not applied: %v", updated.Submodels[0].Elements[0].Value)
	}

	stored, _ := db.Get(ctx, "urn:dpp:aas:1")
	if stored.Submodels[0].Elements[0].Value != "Globex" {
		t.Errorf("update not persisted: %v", stored.Submodels[0].Elements[0].Value)
	}
	if !stored.Modified.After(stored.Created) {
		t.Error("expected modified to advance past created")
	}
}

func TestUpdateMutateErrorLeavesStateUntouched(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	db.Insert(ctx, testShell("urn:dpp:aas:1", "pump-1", now))

	_, err := db.Update(ctx, "urn:dpp:aas:1", func(s *model.Shell) error {
		s.Submodels[0].Elements[0].Value = "discarded"
		return common.NewErrBadRequest("rejected")
	})
	if err == nil {
		t.Fatal("expected mutate error to propagate")
	}

	stored, _ := db.Get(ctx, "urn:dpp:aas:1")
	if stored.Submodels[0].Elements[0].Value != "ACME" {
		t.Errorf("failed update leaked into stored state: %v", stored.Submodels[0].Elements[0].Value)
	}
}

func TestDelete(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	db.Insert(ctx, testShell("urn:dpp:aas:1", "pump-1", now))
	if err := db.Delete(ctx, "urn:dpp:aas:1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := db.Get(ctx, "urn:dpp:aas:1"); !common.IsErrNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := db.Delete(ctx, "urn:dpp:aas:1"); !common.IsErrNotFound(err) {
		t.Errorf("expected not found on repeated delete, got %v", err)
	}
}

func TestExistsIdShortCaseInsensitive(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	db.Insert(ctx, testShell("urn:dpp:aas:1", "Pump-One", now))

	exists, err := db.ExistsIdShort(ctx, "pump-one")
	if err != nil {
		t.Fatalf("existsIdShort failed: %v", err)
	}
	if !exists {
		t.Error("expected case-insensitive match for 'pump-one'")
	}
	exists, _ = db.ExistsIdShort(ctx, "pump-two")
	if exists {
		t.Error("expected no match for 'pump-two'")
	}
}

func TestConcurrentUpdatesSameShell(t *testing.T) {
	db := NewInMemoryShellDatabase()
	ctx := context.Background()
	now := time.Now().UTC()

	shell := testShell("urn:dpp:aas:1", "pump-1", now)
	shell.Submodels[0].Elements[0].ValueType = model.ValueTypeInteger
	shell.Submodels[0].Elements[0].Value = int64(0)
	db.Insert(ctx, shell)

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			db.Update(ctx, "urn:dpp:aas:1", func(s *model.Shell) error {
				n := s.Submodels[0].Elements[0].Value.(int64)
				s.Submodels[0].Elements[0].Value = n + 1
				return nil
			})
		}()
	}
	wg.Wait()

	stored, _ := db.Get(ctx, "urn:dpp:aas:1")
	if got := stored.Submodels[0].Elements[0].Value.(int64); got != writers {
		t.Errorf("lost update: expected %d, got %d", writers, got)
	}
}

package store

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const epsilon = 1e-9

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNew_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestEnsureSchema_CreatesTable(t *testing.T) {
	s := newTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
		"object_detections",
	).Scan(&name)
	if err != nil {
		t.Errorf("object_detections table should exist after New: %v", err)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)

	// New already ran it once; a second explicit call must be a no-op.
	if err := s.EnsureSchema(); err != nil {
		t.Fatalf("second EnsureSchema() error = %v", err)
	}

	var count int
	err := s.DB().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='object_detections'",
	).Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Errorf("table count = %d, want exactly 1", count)
	}
}

func TestStore_Close(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("close should not return error: %v", err)
	}

	if _, err := s.DB().Exec("SELECT 1"); err == nil {
		t.Error("DB operations should fail after close")
	}
}

func TestAppendBatch_InsertsOneRowPerRecord(t *testing.T) {
	s := newTestStore(t)
	repo := s.Detections()

	before, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}

	records := []Detection{
		{ImageName: "image_0.jpg", Label: "bottle", Confidence: 0.91, XCenter: 10, YCenter: 20, Width: 5, Height: 8},
		{ImageName: "image_0.jpg", Label: "cup", Confidence: 0.55, XCenter: 30, YCenter: 40, Width: 6, Height: 6},
		{ImageName: "image_1.jpg", Label: "person", Confidence: 0.78, XCenter: 50, YCenter: 60, Width: 20, Height: 40},
	}

	if err := repo.AppendBatch(records); err != nil {
		t.Fatalf("AppendBatch() error = %v", err)
	}

	after, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if after != before+len(records) {
		t.Errorf("row count = %d, want %d", after, before+len(records))
	}
}

func TestAppendBatch_EmptyInputInsertsNothing(t *testing.T) {
	s := newTestStore(t)
	repo := s.Detections()

	if err := repo.AppendBatch(nil); err != nil {
		t.Fatalf("AppendBatch(nil) error = %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("row count = %d, want 0", count)
	}
}

func TestAppendBatch_RoundTripByPrimaryKey(t *testing.T) {
	s := newTestStore(t)
	repo := s.Detections()

	want := Detection{
		ImageName:  "image_3.jpg",
		Label:      "cream jar",
		Confidence: 0.87,
		XCenter:    120.5,
		YCenter:    64.0,
		Width:      40.0,
		Height:     30.0,
	}

	if err := repo.AppendBatch([]Detection{want}); err != nil {
		t.Fatalf("AppendBatch() error = %v", err)
	}

	var id int64
	if err := s.DB().QueryRow("SELECT id FROM object_detections").Scan(&id); err != nil {
		t.Fatalf("read back id: %v", err)
	}

	got, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.ImageName != want.ImageName {
		t.Errorf("ImageName = %q, want %q", got.ImageName, want.ImageName)
	}
	if got.Label != want.Label {
		t.Errorf("Label = %q, want %q", got.Label, want.Label)
	}
	floats := []struct {
		name      string
		got, want float64
	}{
		{"Confidence", got.Confidence, want.Confidence},
		{"XCenter", got.XCenter, want.XCenter},
		{"YCenter", got.YCenter, want.YCenter},
		{"Width", got.Width, want.Width},
		{"Height", got.Height, want.Height},
	}
	for _, f := range floats {
		if math.Abs(f.got-f.want) > epsilon {
			t.Errorf("%s = %v, want %v", f.name, f.got, f.want)
		}
	}
}

func TestAppendBatch_AfterCloseFailsWithPersistenceError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	repo := s.Detections()
	s.Close()

	err = repo.AppendBatch([]Detection{{ImageName: "image_0.jpg", Label: "cat"}})
	if err == nil {
		t.Fatal("expected error when appending after close")
	}

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Errorf("error type = %T, want *PersistenceError", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Detections().GetByID(12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestListByImage(t *testing.T) {
	s := newTestStore(t)
	repo := s.Detections()

	records := []Detection{
		{ImageName: "image_0.jpg", Label: "bottle", Confidence: 0.9},
		{ImageName: "image_1.jpg", Label: "cup", Confidence: 0.8},
		{ImageName: "image_0.jpg", Label: "vase", Confidence: 0.7},
	}
	if err := repo.AppendBatch(records); err != nil {
		t.Fatalf("AppendBatch() error = %v", err)
	}

	got, err := repo.ListByImage("image_0.jpg")
	if err != nil {
		t.Fatalf("ListByImage() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d detections, want 2", len(got))
	}
	if got[0].Label != "bottle" || got[1].Label != "vase" {
		t.Errorf("labels = %q, %q; want insertion order bottle, vase", got[0].Label, got[1].Label)
	}

	none, err := repo.ListByImage("image_9.jpg")
	if err != nil {
		t.Fatalf("ListByImage() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d detections for unknown image, want 0", len(none))
	}
}

func TestNew_FailsOnUnwritablePath(t *testing.T) {
	// A directory path cannot be opened as a database file.
	_, err := New(t.TempDir())
	if err == nil {
		t.Fatal("expected error for unusable database path")
	}

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Errorf("error type = %T, want *SchemaError", err)
	}
}

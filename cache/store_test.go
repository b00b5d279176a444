package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

type testSnapshot struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	original := testSnapshot{Temperature: 24.5, Humidity: 60}

	if err := s.Set("sensors", original); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, fresh, err := s.Get("sensors", time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !fresh {
		t.Error("expected fresh=true for recently written entry")
	}
	if raw == nil {
		t.Fatal("expected non-nil data")
	}

	var got testSnapshot
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != original {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, original)
	}
}

func TestTypedRoundTrip(t *testing.T) {
	s := newTestStore(t)

	original := testSnapshot{Temperature: 21.0, Humidity: 55}
	if err := SetTyped(s, "sensors", &original); err != nil {
		t.Fatalf("SetTyped: %v", err)
	}

	got, fresh, err := GetTyped[testSnapshot](s, "sensors", time.Hour)
	if err != nil {
		t.Fatalf("GetTyped: %v", err)
	}
	if !fresh {
		t.Error("expected fresh=true")
	}
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	if *got != original {
		t.Errorf("round-trip mismatch: got %+v, want %+v", *got, original)
	}
}

func TestTTLExpiry(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("sensors", testSnapshot{Temperature: 20}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Backdate the file so the entry reads as stale.
	old := time.Now().Add(-1 * time.Hour)
	path := filepath.Join(s.Dir(), "sensors.json")
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	raw, fresh, err := s.Get("sensors", 10*time.Second)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh {
		t.Error("expected fresh=false for backdated entry")
	}
	if raw == nil {
		t.Error("expected stale data to still be returned")
	}
}

func TestMissingKeyReturnsNil(t *testing.T) {
	s := newTestStore(t)

	raw, fresh, err := s.Get("devices", time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil || fresh {
		t.Errorf("expected nil, false for missing key, got %v, %v", raw, fresh)
	}
}

func TestCorruptedFileHandling(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.Dir(), "sensors.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raw, fresh, err := s.Get("sensors", time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil || fresh {
		t.Error("expected corrupted entry to read as a miss")
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected corrupted file to be removed")
	}
}

func TestTypedWrongShapeRemoved(t *testing.T) {
	s := newTestStore(t)

	// Valid JSON, wrong shape for the typed read.
	path := filepath.Join(s.Dir(), "history.json")
	if err := os.WriteFile(path, []byte(`"just a string"`), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, _, err := GetTyped[testSnapshot](s, "history", time.Hour)
	if err != nil {
		t.Fatalf("GetTyped: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for mismatched shape, got %+v", got)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected mismatched entry to be removed")
	}
}

func TestAtomicWriteConcurrency(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Set("sensors", testSnapshot{Temperature: float64(n)})
		}(i)
	}
	wg.Wait()

	raw, _, err := s.Get("sensors", time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !json.Valid(raw) {
		t.Error("expected valid JSON after concurrent writes")
	}
}

func TestAge(t *testing.T) {
	s := newTestStore(t)

	if age := s.Age("sensors"); age != 0 {
		t.Errorf("expected zero age for missing key, got %v", age)
	}

	if err := s.Set("sensors", testSnapshot{}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	old := time.Now().Add(-30 * time.Second)
	path := filepath.Join(s.Dir(), "sensors.json")
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	age := s.Age("sensors")
	if age < 29*time.Second || age > time.Minute {
		t.Errorf("expected age around 30s, got %v", age)
	}
}

func TestKeysSkipsTempFiles(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("sensors", testSnapshot{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("devices", []string{}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tmp := filepath.Join(s.Dir(), ".tmp-sensors-123.json")
	if err := os.WriteFile(tmp, []byte("{}"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	keys := s.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
	}
	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen["sensors"] || !seen["devices"] {
		t.Errorf("expected sensors and devices keys, got %v", keys)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("sensors", testSnapshot{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("expected no keys after clear, got %v", keys)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("sensors", testSnapshot{Temperature: 24.5}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	m, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if _, ok := m.LastUpdate["sensors"]; !ok {
		t.Error("expected sensors in last update map")
	}
	if size := m.Sizes["sensors"]; size <= 0 {
		t.Errorf("expected positive size for sensors entry, got %d", size)
	}
}

func TestFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes not enforced on windows")
	}

	s := newTestStore(t)
	if err := s.Set("sensors", testSnapshot{}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	info, err := os.Stat(filepath.Join(s.Dir(), "sensors.json"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected permissions 0600, got %o", perm)
	}
}

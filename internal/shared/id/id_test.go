package id

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	id := NewGenerator().GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestTypedIDGeneration(t *testing.T) {
	ids := map[string]string{
		"sess": NewSessionID().String(),
		"req":  NewRequestID().String(),
		"ntf":  NewNotificationID().String(),
	}

	for prefix, id := range ids {
		parts := strings.Split(id, "_")
		if len(parts) != 2 {
			t.Fatalf("ID should have format 'prefix_ulid', got: %s", id)
		}
		if parts[0] != prefix {
			t.Errorf("Expected prefix '%s', got '%s' in ID: %s", prefix, parts[0], id)
		}
		if !IsValid(id) {
			t.Errorf("prefixed ID should parse: %s", id)
		}
	}
}

func TestIsValid(t *testing.T) {
	invalidIDs := []string{
		"",
		"invalid",
		"sess_",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %q", id)
		}
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewGeneratorWithClock(bytes.NewReader(bytes.Repeat([]byte{7}, 4096)), func() time.Time { return fixed })

	var ids []string
	for i := 0; i < 50; i++ {
		ids = append(ids, gen.GenerateString())
	}

	if !sort.StringsAreSorted(ids) {
		t.Error("IDs from one millisecond should sort in creation order")
	}

	ts, err := Timestamp(ids[0])
	if err != nil {
		t.Fatalf("Failed to extract timestamp: %v", err)
	}
	if !ts.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", ts, fixed)
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const idsPerGoroutine = 100

	var wg sync.WaitGroup
	idChan := make(chan string, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- gen.GenerateString()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[string]bool)
	for id := range idChan {
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

package id

import (
	"regexp"
	"sync"
	"testing"
)

// --- Sequence Tests ---

func TestSequence_StartsAtOne(t *testing.T) {
	var s Sequence
	if got := s.Next(); got != 1 {
		t.Errorf("first Next() = %d, want 1", got)
	}
	if got := s.Next(); got != 2 {
		t.Errorf("second Next() = %d, want 2", got)
	}
}

func TestSequence_Peek(t *testing.T) {
	var s Sequence
	if got := s.Peek(); got != 1 {
		t.Errorf("Peek() on fresh sequence = %d, want 1", got)
	}
	s.Next()
	s.Next()
	if got := s.Peek(); got != 3 {
		t.Errorf("Peek() after two Next() = %d, want 3", got)
	}
	// Peek must not advance
	if got := s.Next(); got != 3 {
		t.Errorf("Next() after Peek() = %d, want 3", got)
	}
}

func TestSequence_Reset(t *testing.T) {
	var s Sequence
	s.Next()
	s.Next()
	s.Reset()
	if got := s.Next(); got != 1 {
		t.Errorf("Next() after Reset() = %d, want 1", got)
	}
}

func TestSequence_ConcurrentUnique(t *testing.T) {
	var s Sequence
	const goroutines = 50
	const perGoroutine = 100

	var mu sync.Mutex
	seen := make(map[int64]bool, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				n := s.Next()
				mu.Lock()
				if seen[n] {
					t.Errorf("duplicate identifier %d", n)
				}
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Errorf("got %d unique identifiers, want %d", len(seen), goroutines*perGoroutine)
	}
	if got := s.Peek(); got != goroutines*perGoroutine+1 {
		t.Errorf("Peek() = %d, want %d", got, goroutines*perGoroutine+1)
	}
}

// --- Parse Tests ---

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"999", 999, true},
		{"-3", -3, true},
		{"0", 0, true},

		// Rejected: anything that is not a plain integer
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"1.5", 0, false},
		{" 3", 0, false},
		{"3 ", 0, false},
		{"0x10", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, n := range []int64{1, 7, 1234567890} {
		got, ok := Parse(Format(n))
		if !ok || got != n {
			t.Errorf("Parse(Format(%d)) = %d, %v", n, got, ok)
		}
	}
}

// --- RequestID Tests ---

func TestRequestID_Format(t *testing.T) {
	uuidRegex := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	rid := RequestID()
	if !uuidRegex.MatchString(rid) {
		t.Errorf("RequestID() = %q, does not match UUID v4 format", rid)
	}
}

func TestRequestID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		rid := RequestID()
		if seen[rid] {
			t.Fatalf("duplicate request ID after %d iterations: %s", i, rid)
		}
		seen[rid] = true
	}
}

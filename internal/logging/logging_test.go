package logging

import "testing"

func TestNewLevels(t *testing.T) {
	t.Parallel()
	cases := []struct {
		level   string
		dev     bool
		debug   bool
		wantErr bool
	}{
		{level: "", debug: false},
		{level: "debug", debug: true},
		{level: "INFO", dev: true, debug: false},
		{level: "loud", wantErr: true},
	}
	for _, tc := range cases {
		l, err := New(tc.level, tc.dev)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("New(%q): expected error", tc.level)
			}
			continue
		}
		if err != nil {
			t.Fatalf("New(%q): %v", tc.level, err)
		}
		if got := l.Core().Enabled(-1); got != tc.debug {
			t.Fatalf("New(%q) debug enabled = %v, want %v", tc.level, got, tc.debug)
		}
	}
}

func TestMustFallsBack(t *testing.T) {
	t.Parallel()
	if Must("nope", false) == nil {
		t.Fatalf("Must returned nil")
	}
}

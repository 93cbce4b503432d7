package wodfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestParseLine verifies the one, two and three section forms.
func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		want Entry
	}{
		{"ft 100 du", Entry{Line: 1, Notation: "ft 100 du"}},
		{"ft 100 du|felt good", Entry{Line: 1, Notation: "ft 100 du", Comments: "felt good"}},
		{"ft 100 du||Skips", Entry{Line: 1, Notation: "ft 100 du", Name: "Skips"}},
		{`ft 100 du|a\nb|Skips`, Entry{Line: 1, Notation: "ft 100 du", Comments: "a\nb", Name: "Skips"}},
	}
	for _, tc := range cases {
		got, err := ParseLine(1, tc.in)
		if err != nil {
			t.Fatalf("ParseLine(%q): unexpected error: %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseLine(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

// TestReadSkipsBadLines verifies a malformed line is reported without
// stopping the batch, and blank or '#' lines are ignored.
func TestReadSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		"# weekly log",
		"ft 21-15-9 pull up, thruster @43/30kg|fast|Fran",
		"",
		"ft 10 burpee|a|b|c",
		"amrap-10 5 pull up",
	}, "\n")
	entries, errs, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[1].Line != 5 {
		t.Errorf("second entry line = %d, want 5", entries[1].Line)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %d, want 1", len(errs))
	}
	var le *LineError
	if !errors.As(errs[0], &le) {
		t.Fatalf("error = %v, want *LineError", errs[0])
	}
	if le.Line != 4 || le.Sections != 4 {
		t.Errorf("LineError = %+v, want line 4 with 4 sections", le)
	}
}

// TestReadFileMissing verifies a nonexistent batch file is an error.
func TestReadFileMissing(t *testing.T) {
	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.wod")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestHeader verifies the front matter layout.
func TestHeader(t *testing.T) {
	date := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	want := "---\ntitle: \"workouts\"\ndate: 2025-03-21\ndraft: false\n---\n"
	if got := Header("workouts", date); got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

// TestPaths verifies the first language keeps the plain file name.
func TestPaths(t *testing.T) {
	got := Paths("out/workouts.md", []string{"en", "es"})
	want := []string{"out/workouts.md", "out/workouts.es.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %q, want %q", got, want)
	}
	if got := Paths("workouts", nil); !reflect.DeepEqual(got, []string{"workouts.md"}) {
		t.Errorf("Paths(no languages) = %q", got)
	}
	if got := ParseLanguages(" en, ,es "); !reflect.DeepEqual(got, []string{"en", "es"}) {
		t.Errorf("ParseLanguages() = %q", got)
	}
}

// TestLogInitAndAppend verifies every language file gets the same header and
// sections, and the header is not rewritten without force.
func TestLogInitAndAppend(t *testing.T) {
	dir := t.TempDir()
	log := NewLog(filepath.Join(dir, "workouts.md"), []string{"en", "es"})
	date := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)

	n, err := log.Init(date, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if n != 2 {
		t.Errorf("Init wrote %d files, want 2", n)
	}
	if err := log.Append("---\n\n**For Time**\n\n"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Second init must keep existing content.
	if n, err := log.Init(date, false); err != nil || n != 0 {
		t.Fatalf("second Init = %d, %v; want 0, nil", n, err)
	}

	want := Header("workouts", date) + "---\n\n**For Time**\n\n"
	for _, p := range log.Paths {
		got, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("reading %s: %v", p, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", p, got, want)
		}
	}

	if n, err := log.Init(date, true); err != nil || n != 2 {
		t.Fatalf("forced Init = %d, %v; want 2, nil", n, err)
	}
	got, _ := os.ReadFile(log.Paths[0])
	if string(got) != Header("workouts", date) {
		t.Errorf("forced Init did not reset the file: %q", got)
	}
}

// TestAppendRequiresHeader verifies appending to a missing log fails.
func TestAppendRequiresHeader(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "missing.md"), nil)
	if err := log.Append("x"); err == nil {
		t.Fatal("expected error appending to a missing file")
	}
}

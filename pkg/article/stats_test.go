package article

import (
	"strings"
	"testing"
	"time"
)

func TestStats_Changed(t *testing.T) {
	s := NewStats()
	if s.Changed() {
		t.Error("empty stats should not report a change")
	}

	s.Images = 2
	s.ImagesRemote = 2
	if s.Changed() {
		t.Error("counting images without rewriting them is not a change")
	}

	s.EmbedsWrapped = 1
	if !s.Changed() {
		t.Error("a wrapped embed is a change")
	}
}

func TestStats_Add(t *testing.T) {
	total := NewStats()
	total.Add(&Stats{Images: 2, ImagesSized: 1, HeadingsAnchored: 3, TotalDuration: time.Millisecond})
	total.Add(&Stats{Images: 1, RegionFound: true, DuplicateIDs: 1, TotalDuration: time.Millisecond})
	total.Add(nil)

	if total.Images != 3 || total.ImagesSized != 1 || total.HeadingsAnchored != 3 || total.DuplicateIDs != 1 {
		t.Errorf("unexpected totals: %+v", total)
	}
	if !total.RegionFound {
		t.Error("RegionFound should be sticky")
	}
	if total.TotalDuration != 2*time.Millisecond {
		t.Errorf("TotalDuration = %v", total.TotalDuration)
	}
}

func TestStats_String(t *testing.T) {
	s := &Stats{InputBytes: 100, OutputBytes: 150, Images: 1, HeadingsFound: 2, HeadingsAnchored: 2}

	str := s.String()
	for _, want := range []string{"100 -> 150 bytes", "Article region: not found", "Headings: 2 anchored of 2"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() should contain %q, got:\n%s", want, str)
		}
	}
	if strings.Contains(str, "Duplicate") {
		t.Error("String() should not mention duplicates when there are none")
	}
}

func TestWarning_String(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Rule: "headings", Message: "duplicate heading id", Context: "heading-setup"}, "[headings] duplicate heading id (context: heading-setup)"},
		{Warning{Rule: "images", Message: "bad caption"}, "[images] bad caption"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResult_Warnings(t *testing.T) {
	r := &Result{Stats: NewStats()}
	if r.HasWarnings() {
		t.Error("new result should have no warnings")
	}
	r.AddWarning("embeds", "x", "")
	if !r.HasWarnings() || r.Warnings[0].Rule != "embeds" {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
}

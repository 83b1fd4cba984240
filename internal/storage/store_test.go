package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/figure"
)

func testFigure() *figure.Figure {
	fig := figure.New("test")
	p := fig.AddPanel("top", "x", "y")
	p.Line("a", []float64{0, 1, 2}, []float64{1, 2, 3})
	p.Line("b", []float64{0, 1}, []float64{-1, -2})
	q := fig.AddPanel("bottom", "x", "y")
	q.Line("c", []float64{5}, []float64{6})
	fig.Notef("peak at %d", 3)
	return fig
}

func fixedClock(s *Store, unix int64) {
	s.now = func() time.Time { return time.Unix(unix, 0).UTC() }
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "runs"))
	fixedClock(s, 1700000000)

	id, err := s.Save("blackbody", demo.Values{"T": 3000}, testFigure())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id != "blackbody_1700000000" {
		t.Errorf("id = %s", id)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Demo != "blackbody" || meta.Params["T"] != 3000 {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Points != 6 {
		t.Errorf("points = %d, want 6", meta.Points)
	}
	if len(meta.Notes) != 1 || meta.Notes[0] != "peak at 3" {
		t.Errorf("notes = %v", meta.Notes)
	}

	fig, err := s.LoadFigure(id)
	if err != nil {
		t.Fatalf("load figure: %v", err)
	}
	if fig.Title != "test" {
		t.Errorf("title = %q", fig.Title)
	}
	if len(fig.Panels) != 2 {
		t.Fatalf("panels = %d, want 2", len(fig.Panels))
	}
	if len(fig.Panels[0].Series) != 2 || len(fig.Panels[0].Series[0].X) != 3 {
		t.Errorf("first panel not restored")
	}
	if got := fig.Panels[1].Series[0].Y[0]; got != 6 {
		t.Errorf("c[0] = %g, want 6", got)
	}
}

func TestSaveSameSecond(t *testing.T) {
	s := New(t.TempDir())
	fixedClock(s, 42)

	first, err := s.Save("nmr", nil, testFigure())
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save("nmr", nil, testFigure())
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("both runs saved as %s", first)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("listed %d runs, want 2", len(runs))
	}
}

func TestListSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	fixedClock(s, 100)
	if _, err := s.Save("lorentz", demo.Values{"beta": 0.5}, testFigure()); err != nil {
		t.Fatal(err)
	}
	fixedClock(s, 200)
	if _, err := s.Save("filter", demo.Values{"fc": 20}, testFigure()); err != nil {
		t.Fatal(err)
	}

	if err := os.Mkdir(filepath.Join(dir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken")
	if err := os.Mkdir(broken, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(broken, metadataFile), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("listed %d runs, want 2", len(runs))
	}
	if runs[0].Demo != "filter" {
		t.Errorf("newest first: got %s", runs[0].Demo)
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissing(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("ghost_1"); err == nil {
		t.Error("expected error")
	}
	if _, err := s.LoadFigure("ghost_1"); err == nil {
		t.Error("expected error")
	}
}

func TestSaveRejectsInvalidFigure(t *testing.T) {
	s := New(t.TempDir())
	fig := figure.New("bad")
	fig.AddPanel("", "", "").Line("x", []float64{1, 2}, []float64{1})
	if _, err := s.Save("bad", nil, fig); err == nil {
		t.Error("expected mismatch error")
	}
}

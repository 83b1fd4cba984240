// Package storage archives computed figures on disk so they can be listed
// and replayed later.
//
// Each run lives in its own directory:
//
//	<base>/<demo>_<unix>/metadata.json
//	<base>/<demo>_<unix>/series.csv
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/export"
	"github.com/san-kum/physdemo/internal/figure"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string      `json:"id"`
	Demo      string      `json:"demo"`
	Title     string      `json:"title"`
	Timestamp time.Time   `json:"timestamp"`
	Params    demo.Values `json:"params"`
	Notes     []string    `json:"notes,omitempty"`
	Points    int         `json:"points"`
}

// Save writes fig and the values it was computed from, returning the run
// id. Runs of the same demo within one second get a numeric suffix.
func (s *Store) Save(name string, values demo.Values, fig *figure.Figure) (string, error) {
	if err := fig.Validate(); err != nil {
		return "", err
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	ts := s.now()
	runID, runDir, err := s.reserve(fmt.Sprintf("%s_%d", name, ts.Unix()))
	if err != nil {
		return "", err
	}

	points := 0
	for _, p := range fig.Panels {
		for _, sr := range p.Series {
			points += len(sr.X)
		}
	}

	meta := RunMetadata{
		ID:        runID,
		Demo:      name,
		Title:     fig.Title,
		Timestamp: ts,
		Params:    values,
		Notes:     fig.Notes,
		Points:    points,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteSeriesCSV(csvFile, fig); err != nil {
		return "", err
	}
	return runID, csvFile.Sync()
}

func (s *Store) reserve(base string) (string, string, error) {
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) || i > 100 {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

// List returns the archived runs, newest first. Entries without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]export.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := export.ReadSeriesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return points, nil
}

// LoadFigure rebuilds a figure from an archived run. Styling, markers and
// bars are not archived, only line series and notes.
func (s *Store) LoadFigure(runID string) (*figure.Figure, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	points, err := s.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	title := meta.Title
	if title == "" {
		title = meta.Demo
	}
	fig := export.FigureFromPoints(title, points)
	fig.Notes = append(fig.Notes, meta.Notes...)
	return fig, nil
}

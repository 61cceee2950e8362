package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/glyphfall/internal/rain"
)

type ExportData struct {
	Run    RunMetadata  `json:"run"`
	Frames []rain.Frame `json:"frames"`
}

// ExportJSON writes a run and its frames to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Frames: frames})
}

// ExportCSV copies a run's frames.csv to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(s.FramesPath(runID))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

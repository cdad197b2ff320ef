package storage

import (
	"encoding/json"
	"fmt"
	"io"
)

// Track is one body's sampled columns from a run.
type Track struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	VX   []float64 `json:"vx"`
	VY   []float64 `json:"vy"`
	AX   []float64 `json:"ax"`
	AY   []float64 `json:"ay"`
}

type ExportData struct {
	Run    *RunMetadata `json:"run"`
	Times  []float64    `json:"times"`
	Tracks []Track      `json:"bodies"`
}

// Tracks splits rows returned by LoadStates into one Track per body
// named in meta.
func Tracks(meta *RunMetadata, states [][]float64) []Track {
	tracks := make([]Track, len(meta.Bodies))
	for i, name := range meta.Bodies {
		tracks[i] = Track{
			Name: name,
			X:    BodyColumn(states, i, 0),
			Y:    BodyColumn(states, i, 1),
			VX:   BodyColumn(states, i, 2),
			VY:   BodyColumn(states, i, 3),
			AX:   BodyColumn(states, i, 4),
			AY:   BodyColumn(states, i, 5),
		}
	}
	return tracks
}

// LoadTracks loads a run's metadata and its states split per body.
func (s *Store) LoadTracks(runID string) (*RunMetadata, []float64, []Track, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	return meta, times, Tracks(meta, states), nil
}

// ExportJSON writes a run's metadata and per-body tracks to w. A run whose
// state went non-finite cannot be encoded; export it as CSV instead.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, times, tracks, err := s.LoadTracks(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ExportData{Run: meta, Times: times, Tracks: tracks}); err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}
	return nil
}

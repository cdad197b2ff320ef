package storage

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestTracks(t *testing.T) {
	meta := &RunMetadata{Bodies: []string{"a", "b"}}
	states := [][]float64{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24},
	}
	tracks := Tracks(meta, states)
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	b := tracks[1]
	if b.Name != "b" || b.X[0] != 7 || b.Y[1] != 20 || b.VX[0] != 9 || b.AY[1] != 24 {
		t.Errorf("unexpected track %+v", b)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Scenario: "earth-drop", Tick: 0.1}, testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if got.Run.ID != runID || len(got.Times) != 2 || len(got.Tracks) != 2 {
		t.Fatalf("unexpected export: %+v", got)
	}
	probe := got.Tracks[1]
	if probe.Name != "probe" || probe.VY[1] != -0.982 || probe.AY[1] != -9.82 {
		t.Errorf("unexpected probe track %+v", probe)
	}
}

func TestExportJSONMissingRun(t *testing.T) {
	if err := New(t.TempDir()).ExportJSON("nope", &bytes.Buffer{}); err == nil {
		t.Error("expected error")
	}
}

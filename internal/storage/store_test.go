package storage

import (
	"math"
	"testing"

	"github.com/san-kum/geotrace/internal/geodesic"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	meta := RunMetadata{
		Mass:      1.0,
		Spin:      0.5,
		Origin:    [3]float64{0, 0, 5},
		Direction: [3]float64{0, 0, -1},
		Model:     "kerr",
		Status:    "captured",
		Steps:     2,
	}
	lambdas := []float64{0, 0.01}
	states := []geodesic.State{
		{0, 5, math.Pi / 2, 0, 1, 0, 0, -1},
		{0.01, 4.99, math.Pi / 2, 0.002, 1, -0.01, 0, -1},
	}

	runID, err := st.Save(meta, lambdas, states)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Spin != 0.5 || loaded.Status != "captured" {
		t.Errorf("metadata mismatch: %+v", loaded)
	}

	gotLambdas, gotStates, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("trajectory load failed: %v", err)
	}
	if len(gotStates) != 2 {
		t.Fatalf("state count = %d, want 2", len(gotStates))
	}
	for i := range states {
		if gotLambdas[i] != lambdas[i] {
			t.Errorf("lambda %d = %v, want %v", i, gotLambdas[i], lambdas[i])
		}
		for j := range states[i] {
			if gotStates[i][j] != states[i][j] {
				t.Errorf("state %d[%d] = %v, want %v", i, j, gotStates[i][j], states[i][j])
			}
		}
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		_, err := st.Save(RunMetadata{Mass: float64(i)}, []float64{0}, []geodesic.State{
			{0, 5, 1, 0, 1, 0, 0, 0},
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("run count = %d, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Timestamp.After(runs[i-1].Timestamp) {
			t.Error("runs not ordered newest first")
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/never_created")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}

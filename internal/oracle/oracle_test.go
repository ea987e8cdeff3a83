package oracle

import (
	"errors"
	"testing"

	"bidrank/internal"
)

func TestLogisticSeparableData(t *testing.T) {
	// One feature, cleanly separable around zero.
	x := [][]float64{{-2}, {-1.5}, {-1}, {1}, {1.5}, {2}}
	y := []bool{false, false, false, true, true, true}

	model := NewLogistic()
	if err := model.Train(x, y); err != nil {
		t.Fatalf("Train: %v", err)
	}

	probs, labels, err := model.Predict(x)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := range y {
		if labels[i] != y[i] {
			t.Errorf("label[%d] = %v, want %v (p=%g)", i, labels[i], y[i], probs[i])
		}
	}
	if probs[0] >= probs[5] {
		t.Errorf("probabilities not ordered: %g vs %g", probs[0], probs[5])
	}
}

func TestLogisticDeterministic(t *testing.T) {
	x := [][]float64{{-1, 2}, {0, 1}, {1, -1}, {2, -2}}
	y := []bool{false, false, true, true}

	a, b := NewLogistic(), NewLogistic()
	if err := a.Train(x, y); err != nil {
		t.Fatal(err)
	}
	if err := b.Train(x, y); err != nil {
		t.Fatal(err)
	}

	pa, _, _ := a.Predict(x)
	pb, _, _ := b.Predict(x)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Errorf("training not deterministic: %g vs %g", pa[i], pb[i])
		}
	}
}

func TestLogisticPredictBeforeTrain(t *testing.T) {
	_, _, err := NewLogistic().Predict([][]float64{{1}})
	if !errors.Is(err, errNotTrained) {
		t.Fatalf("expected errNotTrained, got %v", err)
	}
}

func TestLogisticRowWidthMismatch(t *testing.T) {
	model := NewLogistic()
	if err := model.Train([][]float64{{1, 2}, {-1, -2}}, []bool{true, false}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := model.Predict([][]float64{{1}}); err == nil {
		t.Fatal("expected error for mismatched row width")
	}
}

func TestSyntheticDeterministicAndComplete(t *testing.T) {
	a := Synthetic(50)
	b := Synthetic(50)
	if len(a) != 50 {
		t.Fatalf("got %d records", len(a))
	}

	for i := range a {
		for _, f := range internal.RequiredFields() {
			if !a[i].Has(f) {
				t.Fatalf("record %d missing %s", i, f)
			}
			if a[i].Text(f) != b[i].Text(f) {
				t.Fatalf("record %d field %s differs between runs: %q vs %q",
					i, f, a[i].Text(f), b[i].Text(f))
			}
		}
	}
}

func TestSyntheticRanges(t *testing.T) {
	for _, r := range Synthetic(200) {
		d := r.Number(internal.FieldProjectDuration)
		if d < 6 || d > 60 {
			t.Fatalf("duration %g out of range", d)
		}
		rating := r.Number(internal.FieldClientRating)
		if rating < 1 || rating > 5 {
			t.Fatalf("rating %g out of range", rating)
		}
		bid := r.Number(internal.FieldBidAmount)
		if bid < 100_000 || bid > 5_000_000 {
			t.Fatalf("bid %g out of range", bid)
		}
		if s := r.Text(internal.FieldSafetyCertification); s != "Yes" && s != "No" {
			t.Fatalf("safety %q", s)
		}
	}
}

package simulate

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/abgo/pkg/errors"
)

func TestNormalMoments(t *testing.T) {
	obs, err := Normal(10, 2, 20000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 20000 {
		t.Fatalf("expected 20000 samples, got %d", len(obs))
	}

	mean := stat.Mean(obs, nil)
	sd := math.Sqrt(stat.Variance(obs, nil))
	if math.Abs(mean-10) > 0.1 {
		t.Errorf("mean = %.4f, want near 10", mean)
	}
	if math.Abs(sd-2) > 0.1 {
		t.Errorf("stddev = %.4f, want near 2", sd)
	}
}

func TestNormalDeterministic(t *testing.T) {
	a, err := Normal(0, 1, 100, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Normal(0, 1, 100, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at index %d: %v != %v", i, a[i], b[i])
		}
	}

	c, _ := Normal(0, 1, 100, 8)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical samples")
	}
}

func TestBernoulliRate(t *testing.T) {
	obs, err := Bernoulli(0.12, 20000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range obs {
		if v != 0 && v != 1 {
			t.Fatalf("non-binary value %v at index %d", v, i)
		}
	}
	rate := stat.Mean(obs, nil)
	if math.Abs(rate-0.12) > 0.01 {
		t.Errorf("rate = %.4f, want near 0.12", rate)
	}
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{name: "zero stddev", run: func() error { _, err := Normal(0, 0, 10, 1); return err }},
		{name: "negative stddev", run: func() error { _, err := Normal(0, -1, 10, 1); return err }},
		{name: "zero n normal", run: func() error { _, err := Normal(0, 1, 0, 1); return err }},
		{name: "p below zero", run: func() error { _, err := Bernoulli(-0.1, 10, 1); return err }},
		{name: "p above one", run: func() error { _, err := Bernoulli(1.1, 10, 1); return err }},
		{name: "zero n bernoulli", run: func() error { _, err := Bernoulli(0.5, 0, 1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var ipe *errors.InvalidParameterError
			if !errors.As(err, &ipe) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
		})
	}
}

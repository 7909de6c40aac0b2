package series

import (
	"testing"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name         string
		observations []Observation
		expectError  bool
	}{
		{
			name: "Valid quarterly series",
			observations: []Observation{
				{Period: "Q1 2024", Value: 225.60},
				{Period: "Q2 2024", Value: 228.97},
				{Period: "Q3 2024", Value: 234.24},
				{Period: "Q4 2024", Value: 234.71},
			},
			expectError: false,
		},
		{
			name:         "Valid - empty series is constructible",
			observations: nil,
			expectError:  false,
		},
		{
			name: "Valid - zero value is allowed",
			observations: []Observation{
				{Period: "Q1", Value: 0},
			},
			expectError: false,
		},
		{
			name: "Invalid - negative value",
			observations: []Observation{
				{Period: "Q1", Value: -12.50},
			},
			expectError: true,
		},
		{
			name: "Invalid - duplicate period label",
			observations: []Observation{
				{Period: "Q1", Value: 10},
				{Period: "Q1", Value: 20},
			},
			expectError: true,
		},
		{
			name: "Invalid - missing period label",
			observations: []Observation{
				{Period: "", Value: 10},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.observations...)

			if tt.expectError && err == nil {
				t.Errorf("Expected error for %s, got nil", tt.name)
			}

			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error for %s: %v", tt.name, err)
			}
		})
	}
}

func TestSeries_AccessorsReturnCopies(t *testing.T) {
	s, err := New(
		Observation{Period: "Q1", Value: 10},
		Observation{Period: "Q2", Value: 20},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := s.Values()
	values[0] = 999
	if s.At(0).Value != 10 {
		t.Errorf("mutating Values() copy changed the series: got %f", s.At(0).Value)
	}

	observations := s.Observations()
	observations[1].Value = 999
	if s.At(1).Value != 20 {
		t.Errorf("mutating Observations() copy changed the series: got %f", s.At(1).Value)
	}
}

func TestSeries_ConstructorCopiesInput(t *testing.T) {
	input := []Observation{
		{Period: "Q1", Value: 10},
		{Period: "Q2", Value: 20},
	}
	s, err := New(input...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input[0].Value = 999
	if s.At(0).Value != 10 {
		t.Errorf("mutating constructor input changed the series: got %f", s.At(0).Value)
	}
}

func TestSeries_Ordering(t *testing.T) {
	s, err := New(
		Observation{Period: "Q1", Value: 30},
		Observation{Period: "Q2", Value: 10},
		Observation{Period: "Q3", Value: 20},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	periods := s.Periods()
	want := []string{"Q1", "Q2", "Q3"}
	for i, p := range want {
		if periods[i] != p {
			t.Errorf("period %d: got %q, want %q", i, periods[i], p)
		}
	}

	first, ok := s.First()
	if !ok || first.Period != "Q1" {
		t.Errorf("First() = %v, %v", first, ok)
	}
	last, ok := s.Last()
	if !ok || last.Period != "Q3" {
		t.Errorf("Last() = %v, %v", last, ok)
	}
}

func TestSeries_FirstLastEmpty(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := s.First(); ok {
		t.Error("First() on empty series should report ok=false")
	}
	if _, ok := s.Last(); ok {
		t.Error("Last() on empty series should report ok=false")
	}
}

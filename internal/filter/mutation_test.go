package filter

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeMutation(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input string
		check func(t *testing.T, s State)
	}{
		{
			name:  "toggle skill",
			input: `{"op":"toggle","facet":"skills","value":"Go"}`,
			check: func(t *testing.T, s State) {
				if diff := cmp.Diff([]string{"Go"}, s.Skills); diff != "" {
					t.Fatalf("skills mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "set search",
			input: `{"op":"set","field":"search","value":"platform"}`,
			check: func(t *testing.T, s State) {
				if s.Search != "platform" {
					t.Fatalf("unexpected search %q", s.Search)
				}
			},
		},
		{
			name:  "set salary",
			input: `{"op":"set","field":"salaryRange","range":[50,150]}`,
			check: func(t *testing.T, s State) {
				if s.SalaryRange != (Range{Low: 50, High: 150}) {
					t.Fatalf("unexpected salary %+v", s.SalaryRange)
				}
			},
		},
		{
			name:  "set date start",
			input: `{"op":"set","field":"dateAdded","dates":["2024-01-02T00:00:00Z",null]}`,
			check: func(t *testing.T, s State) {
				if s.DateAdded.Start == nil || !s.DateAdded.Start.Equal(day) || s.DateAdded.End != nil {
					t.Fatalf("unexpected date range %+v", s.DateAdded)
				}
			},
		},
		{
			name:  "clear date",
			input: `{"op":"set","field":"dateAdded"}`,
			check: func(t *testing.T, s State) {
				if s.DateAdded.Present() {
					t.Fatalf("expected empty date range, got %+v", s.DateAdded)
				}
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := DecodeMutation([]byte(tc.input))
			if err != nil {
				t.Fatalf("DecodeMutation error: %v", err)
			}
			tc.check(t, st.Mutate(st.Default(), m))
		})
	}
}

func TestDecodeMutationRejectsUnknown(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"op":"rename","field":"search","value":"x"}`,
		`{"op":"toggle","facet":"hobbies","value":"chess"}`,
		`{"op":"toggle","facet":"skills"}`,
		`{"op":"set","field":"salaryRange","value":"50"}`,
		`{"op":"set","field":"favouriteColour","value":"red"}`,
		`{"op":"SET","field":"search","value":"x"}`,
		`{"op":" toggle","facet":"skills","value":"Go"}`,
		`{"op":"toggle","facet":"Skills","value":"Go"}`,
		`{"op":"set","field":"Search","value":"x"}`,
	}
	for _, in := range inputs {
		if _, err := DecodeMutation([]byte(in)); !errors.Is(err, ErrUnknownMutation) {
			t.Fatalf("%s: expected ErrUnknownMutation, got %v", in, err)
		}
	}
	if _, err := DecodeMutation([]byte(`{"op":"set","field":"salaryRange","range":[1]}`)); err == nil {
		t.Fatalf("expected error for single-bound range")
	}
}

func TestStateJSONShape(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	data, err := json.Marshal(st.Default())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if diff := cmp.Diff([]any{float64(0), float64(300)}, raw["salaryRange"]); diff != "" {
		t.Fatalf("salaryRange shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{nil, nil}, raw["dateAdded"]); diff != "" {
		t.Fatalf("dateAdded shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{}, raw["skills"]); diff != "" {
		t.Fatalf("skills shape mismatch (-want +got):\n%s", diff)
	}

	var back State
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("decode state error: %v", err)
	}
	if diff := cmp.Diff(st.Default(), back); diff != "" {
		t.Fatalf("decoded state mismatch (-want +got):\n%s", diff)
	}

	nulls := sampleState()
	if err := json.Unmarshal([]byte(`{"dateAdded":null,"salaryRange":null,"matchScore":null}`), &nulls); err != nil {
		t.Fatalf("null ranges should decode: %v", err)
	}
	if diff := cmp.Diff(sampleState(), nulls); diff != "" {
		t.Fatalf("null ranges changed state (-want +got):\n%s", diff)
	}
}

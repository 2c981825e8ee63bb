package filter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestStore() *Store {
	return NewStore(DefaultDomains())
}

func sampleState() State {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return State{
		Search:             "backend",
		Status:             []string{"active"},
		Location:           []string{"Remote", "Berlin"},
		Skills:             []string{"Go"},
		Availability:       []string{},
		JobTypes:           []string{"contract"},
		EducationLevel:     []string{},
		ClientTypes:        []string{"startup"},
		SalaryRange:        Range{Low: 80, High: 200},
		ExperienceRange:    Range{Low: 0, High: 20},
		MatchScore:         Range{Low: 60, High: 100},
		VerificationStatus: "verified",
		LastActivity:       All,
		DateAdded:          DateRange{Start: &start},
	}
}

func TestDefaultHasNoActiveFacets(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	if got := st.ActiveFacetCount(st.Default()); got != 0 {
		t.Fatalf("expected 0 active facets on default, got %d", got)
	}
}

func TestClearResetsToDefault(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	cleared := st.Clear(sampleState())
	if got := st.ActiveFacetCount(cleared); got != 0 {
		t.Fatalf("expected 0 active facets after clear, got %d", got)
	}
	if diff := cmp.Diff(st.Default(), cleared); diff != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}
}

func TestInitializeDeepCopies(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	seed := sampleState()
	draft := st.Initialize(seed)
	if diff := cmp.Diff(seed, draft); diff != "" {
		t.Fatalf("initialize mismatch (-want +got):\n%s", diff)
	}

	draft.Location[0] = "London"
	*draft.DateAdded.Start = draft.DateAdded.Start.AddDate(1, 0, 0)
	if seed.Location[0] != "Remote" {
		t.Fatalf("seed location mutated through draft: %v", seed.Location)
	}
	if seed.DateAdded.Start.Year() != 2024 {
		t.Fatalf("seed date mutated through draft: %v", seed.DateAdded.Start)
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	seed := sampleState()
	for _, facet := range SetFacets() {
		once := st.ToggleSetMember(seed, facet, "__absent__")
		if n := len(once.Set(facet)); n != len(seed.Set(facet))+1 {
			t.Fatalf("%s: expected value appended, got %v", facet, once.Set(facet))
		}
		twice := st.ToggleSetMember(once, facet, "__absent__")
		if diff := cmp.Diff(seed, twice); diff != "" {
			t.Fatalf("%s: toggle twice mismatch (-want +got):\n%s", facet, diff)
		}
	}
}

func TestNilSetsBecomeEmpty(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	seed := st.Default()
	seed.Skills = nil
	draft := st.Initialize(seed)
	if draft.Skills == nil || len(draft.Skills) != 0 {
		t.Fatalf("expected empty non-nil skills, got %#v", draft.Skills)
	}

	twice := st.ToggleSetMember(st.ToggleSetMember(draft, FacetSkills, "Go"), FacetSkills, "Go")
	if diff := cmp.Diff(draft, twice); diff != "" {
		t.Fatalf("toggle twice mismatch (-want +got):\n%s", diff)
	}
	if twice.Skills == nil {
		t.Fatalf("expected emptied skills to stay non-nil")
	}
}

func TestToggleNeverDuplicates(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	s := st.Default()
	for _, v := range []string{"Go", "React", "Go", "Go", "Rust", "React"} {
		s = st.ToggleSetMember(s, FacetSkills, v)
		seen := make(map[string]struct{})
		for _, member := range s.Skills {
			if _, dup := seen[member]; dup {
				t.Fatalf("duplicate member %q in %v", member, s.Skills)
			}
			seen[member] = struct{}{}
		}
	}
	if diff := cmp.Diff([]string{"Go", "Rust"}, s.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	s := st.Default()
	for _, v := range []string{"Berlin", "Remote", "London"} {
		s = st.ToggleSetMember(s, FacetLocation, v)
	}
	s = st.ToggleSetMember(s, FacetLocation, "Remote")
	s = st.ToggleSetMember(s, FacetLocation, "Remote")
	if diff := cmp.Diff([]string{"Berlin", "London", "Remote"}, s.Location); diff != "" {
		t.Fatalf("location order mismatch (-want +got):\n%s", diff)
	}
}

func TestMutateDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	base := st.Default()
	base.Skills = make([]string, 1, 8)
	base.Skills[0] = "Go"

	a := st.ToggleSetMember(base, FacetSkills, "React")
	b := st.ToggleSetMember(base, FacetSkills, "Python")
	if diff := cmp.Diff([]string{"Go", "React"}, a.Skills); diff != "" {
		t.Fatalf("first branch mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Go", "Python"}, b.Skills); diff != "" {
		t.Fatalf("second branch mismatch (-want +got):\n%s", diff)
	}
	if len(base.Skills) != 1 {
		t.Fatalf("input draft mutated: %v", base.Skills)
	}
}

func TestActiveFacetCountRules(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ms   []Mutation
		want int
	}{
		{name: "search", ms: []Mutation{SetSearch("go")}, want: 1},
		{name: "whitespace search counts", ms: []Mutation{SetSearch("  ")}, want: 1},
		{name: "set cardinality", ms: []Mutation{
			ToggleMember(FacetSkills, "Go"),
			ToggleMember(FacetSkills, "React"),
			ToggleMember(FacetSkills, "Python"),
		}, want: 3},
		{name: "sets across facets", ms: []Mutation{
			ToggleMember(FacetStatus, "active"),
			ToggleMember(FacetClientTypes, "agency"),
			ToggleMember(FacetEducationLevel, "phd"),
		}, want: 3},
		{name: "verification", ms: []Mutation{SetVerificationStatus("pending")}, want: 1},
		{name: "activity", ms: []Mutation{SetLastActivity("week")}, want: 1},
		{name: "salary low raised", ms: []Mutation{SetSalaryRange(1, 300)}, want: 1},
		{name: "salary both narrowed counts once", ms: []Mutation{SetSalaryRange(50, 150)}, want: 1},
		{name: "experience high lowered", ms: []Mutation{SetExperienceRange(0, 10)}, want: 1},
		{name: "match score", ms: []Mutation{SetMatchScore(70, 100)}, want: 1},
		{name: "full domain inactive", ms: []Mutation{SetMatchScore(0, 100)}, want: 0},
		{name: "wider than domain inactive", ms: []Mutation{SetSalaryRange(-10, 400)}, want: 0},
		{name: "date start only", ms: []Mutation{SetDateAdded(DateRange{Start: &day})}, want: 1},
		{name: "date end only", ms: []Mutation{SetDateAdded(DateRange{End: &day})}, want: 1},
		{name: "date both", ms: []Mutation{SetDateAdded(DateRange{Start: &day, End: &day})}, want: 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := st.Default()
			for _, m := range tc.ms {
				s = st.Mutate(s, m)
			}
			if got := st.ActiveFacetCount(s); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
			if again := st.ActiveFacetCount(s); again != tc.want {
				t.Fatalf("second count differs: %d", again)
			}
		})
	}
}

func TestScenarioBuildUpAndClear(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	s := st.Default()
	if got := st.ActiveFacetCount(s); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}

	s = st.ToggleSetMember(s, FacetSkills, "React")
	s = st.ToggleSetMember(s, FacetSkills, "Go")
	if got := st.ActiveFacetCount(s); got != 2 {
		t.Fatalf("expected 2 after skills, got %d", got)
	}

	s = st.Mutate(s, SetSalaryRange(50, 150))
	if got := st.ActiveFacetCount(s); got != 3 {
		t.Fatalf("expected 3 after salary, got %d", got)
	}

	s = st.Mutate(s, SetVerificationStatus("verified"))
	if got := st.ActiveFacetCount(s); got != 4 {
		t.Fatalf("expected 4 after verification, got %d", got)
	}

	s = st.Clear(s)
	if got := st.ActiveFacetCount(s); got != 0 {
		t.Fatalf("expected 0 after clear, got %d", got)
	}
	if diff := cmp.Diff(st.Default(), s); diff != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}
}

func TestLastActivityRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	draft := st.Mutate(st.Default(), ToggleMember(FacetSkills, "Go"))
	before := st.ActiveFacetCount(draft)

	week := st.Mutate(draft, SetLastActivity("week"))
	if got := st.ActiveFacetCount(week); got != before+1 {
		t.Fatalf("expected %d after week, got %d", before+1, got)
	}

	back := st.Mutate(week, SetLastActivity(All))
	if back.LastActivity != draft.LastActivity {
		t.Fatalf("expected lastActivity %q, got %q", draft.LastActivity, back.LastActivity)
	}
	if got := st.ActiveFacetCount(back); got != before {
		t.Fatalf("expected count to drop back to %d, got %d", before, got)
	}
}

func TestApplyIsIdentity(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	seed := sampleState()
	draft := st.Initialize(seed)
	if diff := cmp.Diff(seed, st.Apply(draft)); diff != "" {
		t.Fatalf("apply mismatch (-want +got):\n%s", diff)
	}
}

func TestRangesStoredAsSupplied(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	s := st.Mutate(st.Default(), SetSalaryRange(200, 100))
	if s.SalaryRange != (Range{Low: 200, High: 100}) {
		t.Fatalf("expected crossed bounds kept, got %+v", s.SalaryRange)
	}
	s = st.Mutate(s, SetExperienceRange(-5, 99))
	if s.ExperienceRange != (Range{Low: -5, High: 99}) {
		t.Fatalf("expected out-of-domain bounds kept, got %+v", s.ExperienceRange)
	}
}

func TestCustomDomains(t *testing.T) {
	t.Parallel()

	st := NewStore(Domains{
		Salary:     Range{Low: 20, High: 500},
		Experience: Range{Low: 0, High: 40},
		MatchScore: Range{Low: 0, High: 10},
	})
	def := st.Default()
	if def.SalaryRange != (Range{Low: 20, High: 500}) {
		t.Fatalf("unexpected default salary %+v", def.SalaryRange)
	}
	if got := st.ActiveFacetCount(st.Mutate(def, SetSalaryRange(0, 300))); got != 1 {
		t.Fatalf("expected narrowed high bound to count, got %d", got)
	}
}

package recommend

import (
	"reflect"
	"testing"
)

func TestParseListCell(t *testing.T) {
	cases := []struct {
		name string
		cell string
		want []string
	}{
		{"printed list", "['Balanced Diet', 'Low Sugar']", []string{"Balanced Diet", "Low Sugar"}},
		{"single item", "['Antibiotics']", []string{"Antibiotics"}},
		{"no brackets", "Rest, Fluids", []string{"Rest", "Fluids"}},
		{"nested brackets trimmed", "[['A', 'B']]", []string{"A", "B"}},
		{"double quotes kept", `["Mother's milk", 'Rice']`, []string{`"Mothers milk"`, "Rice"}},
		{"comma without space not split", "['a','b']", []string{"a,b"}},
		{"empty list", "[]", nil},
		{"empty cell", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseListCell(tc.cell)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseListCell(%q) = %#v, want %#v", tc.cell, got, tc.want)
			}
		})
	}
}

func sampleTables() *Tables {
	return NewTables(Dataset{
		Diets: []Row{
			{Disease: "Diabetes", Values: []string{"['Balanced Diet', 'Low Sugar']"}},
			{Disease: "Diabetes", Values: []string{"['Ignored']"}},
		},
		Medications: []Row{
			{Disease: "Diabetes", Values: []string{"['Metformin', 'Insulin']"}},
		},
		Precautions: []Row{
			{Disease: "Diabetes", Values: []string{"have balanced diet", "", "exercise", ""}},
		},
		Workouts: []Row{
			{Disease: "Diabetes", Values: []string{"Walk daily, 30 minutes"}},
			{Disease: "Diabetes", Values: []string{"Second row"}},
			{Disease: "Migraine", Values: []string{""}},
		},
	})
}

func TestLookupPopulated(t *testing.T) {
	sections := sampleTables().Lookup("Diabetes")
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	want := map[Category][]string{
		Diet:       {"Balanced Diet", "Low Sugar"},
		Medication: {"Metformin", "Insulin"},
		Precaution: {"have balanced diet", "exercise"},
		Workout:    {"Walk daily, 30 minutes"},
	}
	for i, s := range sections {
		if s.Category != Categories[i] {
			t.Fatalf("section %d out of order: %s", i, s.Category)
		}
		if !s.Available || s.Notice != "" {
			t.Fatalf("%s should be available: %+v", s.Category, s)
		}
		if !reflect.DeepEqual(s.Items, want[s.Category]) {
			t.Fatalf("%s items = %#v, want %#v", s.Category, s.Items, want[s.Category])
		}
	}
}

func TestLookupMissingDiseaseDegradesPerCategory(t *testing.T) {
	tables := sampleTables()
	for _, s := range tables.Lookup("Unknown Disease") {
		if s.Available {
			t.Fatalf("%s should be unavailable", s.Category)
		}
		if len(s.Items) != 0 || s.Items == nil {
			t.Fatalf("%s should carry an empty, non-nil item list", s.Category)
		}
		if s.Notice != s.Category.Notice() {
			t.Fatalf("unexpected notice %q", s.Notice)
		}
	}

	s := tables.Section(Precaution, "Migraine")
	if s.Available || s.Notice != "No precaution recommendations available." {
		t.Fatalf("unexpected precaution section %+v", s)
	}
}

func TestLookupIsExactMatch(t *testing.T) {
	tables := sampleTables()
	for _, name := range []string{"diabetes", "Diabetes ", " Diabetes"} {
		if got := tables.Diet(name); got != nil {
			t.Fatalf("Diet(%q) matched %v", name, got)
		}
	}
}

func TestEmptyWorkoutCellIsUnavailable(t *testing.T) {
	if _, ok := sampleTables().Workout("Migraine"); ok {
		t.Fatal("empty workout cell should not count as a suggestion")
	}
}

func TestLookupIsIdempotent(t *testing.T) {
	tables := sampleTables()
	a := tables.Lookup("Diabetes")
	b := tables.Lookup("Diabetes")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("lookups differ: %+v vs %+v", a, b)
	}
}

func TestSizes(t *testing.T) {
	sizes := sampleTables().Sizes()
	if sizes[Diet] != 1 || sizes[Workout] != 2 {
		t.Fatalf("unexpected sizes %v", sizes)
	}
}

func TestBlankRowsRenderNotices(t *testing.T) {
	tables := NewTables(Dataset{
		Diets:       []Row{{Disease: "Asthma", Values: []string{"[]"}}},
		Precautions: []Row{{Disease: "Asthma", Values: []string{"", "", "", ""}}},
	})

	diet := tables.Section(Diet, "Asthma")
	if diet.Available || diet.Notice != "No diet recommendations available." {
		t.Fatalf("empty diet list should show the notice, got %+v", diet)
	}
	prec := tables.Section(Precaution, "Asthma")
	if prec.Available || prec.Notice != "No precaution recommendations available." {
		t.Fatalf("row with four blank precautions should show the notice, got %+v", prec)
	}
}

package recommend

import "context"

// Row is one record of a reference table: the disease key plus the table's
// value columns in declared order.
type Row struct {
	Disease string
	Values  []string
}

// Dataset is the raw content of the four reference tables.
type Dataset struct {
	Diets       []Row
	Medications []Row
	Precautions []Row
	Workouts    []Row
}

// Source loads a Dataset once at startup.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}

// Tables indexes the reference data by disease name. Keys are matched by
// exact string equality; when a table repeats a disease the first row wins.
// Tables is read-only after NewTables returns.
type Tables struct {
	diets       map[string][]string
	medications map[string][]string
	precautions map[string][]string
	workouts    map[string][]string
}

// NewTables indexes d.
func NewTables(d Dataset) *Tables {
	return &Tables{
		diets:       index(d.Diets),
		medications: index(d.Medications),
		precautions: index(d.Precautions),
		workouts:    index(d.Workouts),
	}
}

// Load reads src and indexes the result.
func Load(ctx context.Context, src Source) (*Tables, error) {
	d, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewTables(d), nil
}

func index(rows []Row) map[string][]string {
	m := make(map[string][]string, len(rows))
	for _, r := range rows {
		if _, seen := m[r.Disease]; seen {
			continue
		}
		m[r.Disease] = r.Values
	}
	return m
}

// Diet returns the parsed diet items for disease.
func (t *Tables) Diet(disease string) []string {
	return firstCellList(t.diets, disease)
}

// Medications returns the parsed medication items for disease.
func (t *Tables) Medications(disease string) []string {
	return firstCellList(t.medications, disease)
}

// Precautions returns the non-empty precaution columns for disease.
func (t *Tables) Precautions(disease string) []string {
	return nonEmpty(t.precautions[disease])
}

// Workout returns the workout cell for disease verbatim.
func (t *Tables) Workout(disease string) (string, bool) {
	cells := t.workouts[disease]
	if len(cells) == 0 || cells[0] == "" {
		return "", false
	}
	return cells[0], true
}

// Section looks up one category.
func (t *Tables) Section(c Category, disease string) Section {
	var items []string
	switch c {
	case Diet:
		items = t.Diet(disease)
	case Medication:
		items = t.Medications(disease)
	case Precaution:
		items = t.Precautions(disease)
	case Workout:
		if w, ok := t.Workout(disease); ok {
			items = []string{w}
		}
	}
	return newSection(c, items)
}

// Lookup returns every category for disease in display order. Missing rows
// become unavailable sections; they never fail the whole lookup.
func (t *Tables) Lookup(disease string) []Section {
	out := make([]Section, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, t.Section(c, disease))
	}
	return out
}

// Sizes reports the number of distinct diseases per table.
func (t *Tables) Sizes() map[Category]int {
	return map[Category]int{
		Diet:       len(t.diets),
		Medication: len(t.medications),
		Precaution: len(t.precautions),
		Workout:    len(t.workouts),
	}
}

func firstCellList(m map[string][]string, disease string) []string {
	cells := m[disease]
	if len(cells) == 0 {
		return nil
	}
	return ParseListCell(cells[0])
}

package recommend

// tableSchema describes where a category lives and which columns carry it.
type tableSchema struct {
	category Category
	table    string
	file     string
	key      string
	columns  []string
}

var schemas = []tableSchema{
	{
		category: Diet,
		table:    "diets",
		file:     "Filtered_Diets_Dataset.csv",
		key:      "Disease",
		columns:  []string{"Diet"},
	},
	{
		category: Medication,
		table:    "medications",
		file:     "Filtered_Medications_Dataset.csv",
		key:      "Disease",
		columns:  []string{"Medication"},
	},
	{
		category: Precaution,
		table:    "precautions",
		file:     "Filtered_Precautions_Dataset.csv",
		key:      "Disease",
		columns:  []string{"Precaution_1", "Precaution_2", "Precaution_3", "Precaution_4"},
	},
	{
		category: Workout,
		table:    "workouts",
		file:     "Filtered_Workouts_Dataset.csv",
		key:      "disease",
		columns:  []string{"workout"},
	},
}

func (d *Dataset) rows(c Category) *[]Row {
	switch c {
	case Diet:
		return &d.Diets
	case Medication:
		return &d.Medications
	case Precaution:
		return &d.Precautions
	default:
		return &d.Workouts
	}
}

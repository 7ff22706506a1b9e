package recommend

// Category names one of the four reference tables.
type Category string

const (
	Diet       Category = "diet"
	Medication Category = "medication"
	Precaution Category = "precaution"
	Workout    Category = "workout"
)

// Categories lists every category in display order.
var Categories = []Category{Diet, Medication, Precaution, Workout}

// Title is the section heading shown to users.
func (c Category) Title() string {
	switch c {
	case Diet:
		return "Diet Recommendations"
	case Medication:
		return "Medications"
	case Precaution:
		return "Precautions"
	case Workout:
		return "Workout Suggestions"
	default:
		return string(c)
	}
}

// Notice is shown in place of a section that has no data.
func (c Category) Notice() string {
	switch c {
	case Diet:
		return "No diet recommendations available."
	case Medication:
		return "No medication recommendations available."
	case Precaution:
		return "No precaution recommendations available."
	case Workout:
		return "No workout suggestions available."
	default:
		return "No recommendations available."
	}
}

// Section is the lookup result for one category. Items is empty when the
// disease has no usable row in that table.
type Section struct {
	Category  Category `json:"category"`
	Title     string   `json:"title"`
	Items     []string `json:"items"`
	Available bool     `json:"available"`
	Notice    string   `json:"notice,omitempty"`
}

func newSection(c Category, items []string) Section {
	s := Section{
		Category:  c,
		Title:     c.Title(),
		Items:     items,
		Available: len(items) > 0,
	}
	if s.Items == nil {
		s.Items = []string{}
	}
	if !s.Available {
		s.Notice = c.Notice()
	}
	return s
}

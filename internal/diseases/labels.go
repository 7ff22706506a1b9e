package diseases

// Unknown is returned for labels the model emits outside the known table.
const Unknown = "Unknown Disease"

var labels = map[int]string{
	0:  "Dengue",
	1:  "Alcoholic hepatitis",
	2:  "(vertigo) Paroymsal Positional Vertigo",
	3:  "Diabetes",
	4:  "Hyperthyroidism",
	5:  "Paralysis (brain hemorrhage)",
	6:  "Urinary tract infection",
	7:  "Chicken pox",
	8:  "Allergy",
	9:  "Migraine",
	10: "Hepatitis A",
	11: "Osteoarthritis",
	12: "Cervical spondylosis",
	13: "Common Cold",
	14: "Jaundice",
	15: "Tuberculosis",
	16: "Fungal infection",
	17: "AIDS",
	18: "Peptic ulcer disease",
	19: "Psoriasis",
	20: "Malaria",
	21: "Hypertension",
	22: "Hepatitis C",
	23: "Acne",
	24: "Heart attack",
	25: "Hypoglycemia",
	26: "Impetigo",
	27: "Typhoid",
	28: "Bronchial Asthma",
	29: "Arthritis",
	30: "GERD",
	31: "Hepatitis E",
	32: "Hepatitis D",
	33: "Gastroenteritis",
	34: "Hepatitis B",
	35: "Pneumonia",
	36: "Dimorphic hemorrhoids (piles)",
	37: "Chronic cholestasis",
	38: "Drug Reaction",
	39: "Varicose veins",
	40: "Hypothyroidism",
}

// Resolve maps a classifier label to its disease name. It never fails.
func Resolve(label int) string {
	if name, ok := labels[label]; ok {
		return name
	}
	return Unknown
}

// Known reports whether label has an entry in the table.
func Known(label int) bool {
	_, ok := labels[label]
	return ok
}

// Count is the number of labels the table covers.
func Count() int {
	return len(labels)
}

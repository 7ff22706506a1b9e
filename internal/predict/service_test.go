package predict

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Skufu/GoPredict/internal/classifier"
	"github.com/Skufu/GoPredict/internal/diseases"
	"github.com/Skufu/GoPredict/internal/recommend"
	"github.com/Skufu/GoPredict/internal/symptoms"
)

// fakeModel records the vectors it sees and answers with a fixed label.
type fakeModel struct {
	label int
	err   error
	seen  []symptoms.FeatureVector
}

func (m *fakeModel) Predict(_ context.Context, vec symptoms.FeatureVector) (int, error) {
	m.seen = append(m.seen, vec)
	return m.label, m.err
}

func newService(t *testing.T, model classifier.Classifier) *Service {
	t.Helper()
	tables := recommend.NewTables(recommend.Dataset{
		Diets:       []recommend.Row{{Disease: "Diabetes", Values: []string{"['Balanced Diet', 'Low Sugar']"}}},
		Medications: []recommend.Row{{Disease: "Diabetes", Values: []string{"['Metformin']"}}},
		Workouts:    []recommend.Row{{Disease: "Diabetes", Values: []string{"Walk daily"}}},
	})
	return NewService(Deps{
		Vocabulary: symptoms.Default(),
		Classifier: model,
		Tables:     tables,
	})
}

func TestPredictEndToEnd(t *testing.T) {
	model := &fakeModel{label: 3}
	svc := newService(t, model)

	res, err := svc.Predict(context.Background(), []string{"high_fever", "headache", "nausea"})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Disease != "Diabetes" || !res.Known || res.Label != 3 {
		t.Fatalf("unexpected disease %+v", res)
	}
	if len(res.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(res.Sections))
	}
	for _, sec := range res.Sections {
		if sec.Available == (sec.Notice != "") {
			t.Fatalf("section %s must have either items or a notice: %+v", sec.Category, sec)
		}
	}
	if res.Sections[2].Available {
		t.Fatal("precautions should be unavailable for this fixture")
	}
	if res.Sections[2].Notice != "No precaution recommendations available." {
		t.Fatalf("unexpected notice %q", res.Sections[2].Notice)
	}

	if len(model.seen) != 1 {
		t.Fatalf("expected one classifier call, got %d", len(model.seen))
	}
	vec := model.seen[0]
	vocab := svc.Vocabulary()
	if len(vec) != vocab.Len() {
		t.Fatalf("vector length %d, want %d", len(vec), vocab.Len())
	}
	ones := 0
	for _, bit := range vec {
		ones += bit
	}
	if ones != 3 {
		t.Fatalf("expected 3 bits set, got %d", ones)
	}
}

func TestPredictRejectsEmptySelection(t *testing.T) {
	model := &fakeModel{}
	_, err := newService(t, model).Predict(context.Background(), nil)
	if !errors.Is(err, ErrNoSymptoms) {
		t.Fatalf("expected ErrNoSymptoms, got %v", err)
	}
	if len(model.seen) != 0 {
		t.Fatal("classifier must not run for an empty selection")
	}
}

func TestPredictUnknownLabel(t *testing.T) {
	res, err := newService(t, &fakeModel{label: 999}).Predict(context.Background(), []string{"itching"})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Disease != diseases.Unknown || res.Known {
		t.Fatalf("expected unknown disease, got %+v", res)
	}
	for _, sec := range res.Sections {
		if sec.Available {
			t.Fatalf("%s should be unavailable for an unknown disease", sec.Category)
		}
	}
}

func TestPredictReportsIgnoredSymptoms(t *testing.T) {
	res, err := newService(t, &fakeModel{label: 3}).Predict(context.Background(), []string{"itching", "tail_pain"})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !reflect.DeepEqual(res.Ignored, []string{"tail_pain"}) {
		t.Fatalf("unexpected ignored list %v", res.Ignored)
	}
}

func TestPredictWrapsClassifierError(t *testing.T) {
	boom := errors.New("session closed")
	_, err := newService(t, &fakeModel{err: boom}).Predict(context.Background(), []string{"itching"})
	if !errors.Is(err, ErrPrediction) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped prediction error, got %v", err)
	}
}

func TestPredictIsIdempotent(t *testing.T) {
	svc := newService(t, &fakeModel{label: 3})
	sel := []string{"chills", "itching"}
	a, _ := svc.Predict(context.Background(), sel)
	b, _ := svc.Predict(context.Background(), sel)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

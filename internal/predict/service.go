package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Skufu/GoPredict/internal/classifier"
	"github.com/Skufu/GoPredict/internal/diseases"
	"github.com/Skufu/GoPredict/internal/recommend"
	"github.com/Skufu/GoPredict/internal/symptoms"
)

// NoSymptomsMessage is shown when a prediction is requested without symptoms.
const NoSymptomsMessage = "Please select at least one symptom."

var (
	// ErrNoSymptoms rejects an empty selection before any work is done.
	ErrNoSymptoms = errors.New("no symptoms selected")
	// ErrPrediction wraps classifier failures for a single request.
	ErrPrediction = errors.New("prediction failed")
)

// Result is everything a presentation layer needs for one prediction.
type Result struct {
	Disease  string              `json:"disease"`
	Label    int                 `json:"label"`
	Known    bool                `json:"known"`
	Symptoms []string            `json:"symptoms"`
	Ignored  []string            `json:"ignored,omitempty"`
	Sections []recommend.Section `json:"sections"`
}

// Deps wires the read-only state shared by every request.
type Deps struct {
	Vocabulary *symptoms.Vocabulary
	Classifier classifier.Classifier
	Tables     *recommend.Tables
	Logger     *slog.Logger
}

// Service runs the encode, predict, resolve and lookup chain. It holds no
// mutable state and is safe for concurrent use when its classifier is.
type Service struct {
	vocab  *symptoms.Vocabulary
	model  classifier.Classifier
	tables *recommend.Tables
	logger *slog.Logger
}

// NewService builds the pipeline.
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		vocab:  deps.Vocabulary,
		model:  deps.Classifier,
		tables: deps.Tables,
		logger: logger,
	}
}

// Vocabulary exposes the symptom list for selection widgets.
func (s *Service) Vocabulary() *symptoms.Vocabulary {
	return s.vocab
}

// Predict classifies the selected symptoms and attaches recommendations.
// Unknown symptom names are ignored and reported in Result.Ignored.
func (s *Service) Predict(ctx context.Context, selected []string) (Result, error) {
	if len(selected) == 0 {
		return Result{}, ErrNoSymptoms
	}

	vec, ignored := s.vocab.Encode(selected)
	if len(ignored) > 0 {
		s.logger.Warn("ignoring unknown symptoms", "symptoms", ignored)
	}

	label, err := s.model.Predict(ctx, vec)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}

	disease := diseases.Resolve(label)
	known := diseases.Known(label)
	if !known {
		s.logger.Warn("classifier returned unmapped label", "label", label)
	}

	sections := s.tables.Lookup(disease)
	for _, sec := range sections {
		if !sec.Available && known {
			s.logger.Info("no reference data", "disease", disease, "category", sec.Category)
		}
	}

	return Result{
		Disease:  disease,
		Label:    label,
		Known:    known,
		Symptoms: append([]string(nil), selected...),
		Ignored:  ignored,
		Sections: sections,
	}, nil
}

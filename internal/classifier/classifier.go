// Package classifier adapts pre-trained disease models to a single Predict
// call. Model internals stay outside this module.
package classifier

import (
	"context"
	"errors"

	"github.com/Skufu/GoPredict/internal/symptoms"
)

// Classifier maps one encoded symptom row to an integer disease label.
type Classifier interface {
	Predict(ctx context.Context, vec symptoms.FeatureVector) (int, error)
}

// ErrNoLabel is returned when a model answers without a label.
var ErrNoLabel = errors.New("model returned no label")

// Func lets a plain function act as a Classifier.
type Func func(ctx context.Context, vec symptoms.FeatureVector) (int, error)

// Predict calls f.
func (f Func) Predict(ctx context.Context, vec symptoms.FeatureVector) (int, error) {
	return f(ctx, vec)
}

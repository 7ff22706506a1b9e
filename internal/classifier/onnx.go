package classifier

import (
	"context"
	"errors"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/Skufu/GoPredict/internal/symptoms"
)

// ONNXConfig points at an exported model and the ONNX Runtime library.
type ONNXConfig struct {
	ModelPath   string `yaml:"modelPath"`
	LibraryPath string `yaml:"libraryPath"`
	InputName   string `yaml:"inputName"`
	OutputName  string `yaml:"outputName"`
}

// ApplyDefaults fills the tensor names produced by skl2onnx.
func (c *ONNXConfig) ApplyDefaults() {
	if c.InputName == "" {
		c.InputName = "input"
	}
	if c.OutputName == "" {
		c.OutputName = "output_label"
	}
}

// ONNX runs the model in-process. The input is a float32 tensor shaped
// [1, width] and the output an int64 label tensor shaped [1].
type ONNX struct {
	session *ort.DynamicAdvancedSession
	width   int
	ownsEnv bool
}

var _ Classifier = (*ONNX)(nil)

// NewONNX loads the model. width must equal the vocabulary length the model
// was trained on.
func NewONNX(cfg ONNXConfig, width int) (*ONNX, error) {
	cfg.ApplyDefaults()
	if cfg.ModelPath == "" {
		return nil, errors.New("onnx: model path is empty")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("onnx: model: %w", err)
	}
	if width <= 0 {
		return nil, fmt.Errorf("onnx: invalid feature width %d", width)
	}

	ownsEnv, err := ensureEnvironment(cfg.LibraryPath)
	if err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName}, nil)
	if err != nil {
		if ownsEnv {
			_ = ort.DestroyEnvironment()
		}
		return nil, fmt.Errorf("onnx: create session: %w", err)
	}
	return &ONNX{session: session, width: width, ownsEnv: ownsEnv}, nil
}

// ensureEnvironment starts the runtime unless something else already did.
// It reports whether this call created the environment.
func ensureEnvironment(libraryPath string) (bool, error) {
	if ort.IsInitialized() {
		return false, nil
	}
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return false, fmt.Errorf("onnx: init runtime: %w", err)
	}
	return true, nil
}

// Predict runs a single-row inference.
func (o *ONNX) Predict(_ context.Context, vec symptoms.FeatureVector) (int, error) {
	if len(vec) != o.width {
		return 0, fmt.Errorf("onnx: feature width %d, model expects %d", len(vec), o.width)
	}

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(vec))), vec.Float32())
	if err != nil {
		return 0, fmt.Errorf("onnx: input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		return 0, fmt.Errorf("onnx: output tensor: %w", err)
	}
	defer output.Destroy()

	if err := o.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return 0, fmt.Errorf("onnx: run: %w", err)
	}
	labels := output.GetData()
	if len(labels) == 0 {
		return 0, ErrNoLabel
	}
	return int(labels[0]), nil
}

// Close releases the session, and the runtime environment when NewONNX
// started it.
func (o *ONNX) Close() error {
	if o == nil || o.session == nil {
		return nil
	}
	err := o.session.Destroy()
	o.session = nil
	if o.ownsEnv {
		o.ownsEnv = false
		if envErr := ort.DestroyEnvironment(); envErr != nil && err == nil {
			err = envErr
		}
	}
	return err
}

package symptoms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FeatureVector is the binary encoding of a symptom selection, one entry per
// vocabulary position.
type FeatureVector []int

// Float32 converts the vector into the float32 row expected by tensor runtimes.
func (v FeatureVector) Float32() []float32 {
	out := make([]float32, len(v))
	for i, bit := range v {
		out[i] = float32(bit)
	}
	return out
}

// Vocabulary is an ordered, duplicate-free list of symptom names. It is never
// mutated after construction.
type Vocabulary struct {
	names []string
	index map[string]int
}

// New builds a vocabulary from names, rejecting blanks and duplicates.
func New(names []string) (*Vocabulary, error) {
	if len(names) == 0 {
		return nil, errors.New("vocabulary is empty")
	}

	v := &Vocabulary{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("vocabulary entry %d is blank", i)
		}
		if prev, ok := v.index[name]; ok {
			return nil, fmt.Errorf("duplicate symptom %q at positions %d and %d", name, prev, i)
		}
		v.names[i] = name
		v.index[name] = i
	}
	return v, nil
}

// Default returns the vocabulary the bundled model was trained on.
func Default() *Vocabulary {
	v, err := New(defaultNames)
	if err != nil {
		panic(err)
	}
	return v
}

// LoadFile reads a newline-delimited vocabulary. Blank lines are skipped.
func LoadFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a newline-delimited vocabulary from r.
func Read(r io.Reader) (*Vocabulary, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan vocabulary: %w", err)
	}
	return New(names)
}

// Len is the feature vector dimensionality.
func (v *Vocabulary) Len() int {
	return len(v.names)
}

// Names returns a copy of the symptom names in feature order.
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Contains reports whether name is a known symptom.
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Encode maps a selection onto a vector aligned with the vocabulary: position
// i is 1 iff the i-th symptom was selected. Names outside the vocabulary are
// skipped and returned in ignored, in selection order.
func (v *Vocabulary) Encode(selected []string) (vec FeatureVector, ignored []string) {
	vec = make(FeatureVector, len(v.names))
	for _, name := range selected {
		i, ok := v.index[name]
		if !ok {
			ignored = append(ignored, name)
			continue
		}
		vec[i] = 1
	}
	return vec, ignored
}

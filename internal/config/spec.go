package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ChainSource names the transition matrix of an experiment: either literal
// rows or a builder fixture.
type ChainSource struct {
	Matrix  [][]float64  `mapstructure:"matrix" yaml:"matrix,omitempty" json:"matrix,omitempty"`
	Builder *BuilderSpec `mapstructure:"builder" yaml:"builder,omitempty" json:"builder,omitempty"`
}

// BuilderSpec selects a generated chain.
type BuilderSpec struct {
	// Kind is "random", "absorbing", "cycle", "ruin" or "identity".
	Kind    string  `mapstructure:"kind" yaml:"kind" json:"kind"`
	N       int     `mapstructure:"n" yaml:"n" json:"n"`
	K       int     `mapstructure:"k" yaml:"k,omitempty" json:"k,omitempty"`
	P       float64 `mapstructure:"p" yaml:"p,omitempty" json:"p,omitempty"`
	Density float64 `mapstructure:"density" yaml:"density,omitempty" json:"density,omitempty"`
	Hold    float64 `mapstructure:"hold" yaml:"hold,omitempty" json:"hold,omitempty"`
	Seed    uint64  `mapstructure:"seed" yaml:"seed,omitempty" json:"seed,omitempty"`
}

// AbsorbingSpec configures an absorption experiment.
type AbsorbingSpec struct {
	ChainSource `mapstructure:",squash" yaml:",inline"`
	// Starts lists start states; empty means every transient state.
	Starts []int `mapstructure:"starts" yaml:"starts,omitempty" json:"starts,omitempty"`
	// Absorbing overrides the target set; empty means M[i][i] == 1 states.
	Absorbing []int  `mapstructure:"absorbing" yaml:"absorbing,omitempty" json:"absorbing,omitempty"`
	Trials    int    `mapstructure:"trials" yaml:"trials,omitempty" json:"trials,omitempty"`
	MaxSteps  int    `mapstructure:"maxSteps" yaml:"maxSteps,omitempty" json:"maxSteps,omitempty"`
	Seed      uint64 `mapstructure:"seed" yaml:"seed,omitempty" json:"seed,omitempty"`
}

// ErgodicSpec configures a stationary-distribution experiment.
type ErgodicSpec struct {
	ChainSource `mapstructure:",squash" yaml:",inline"`
	// Initial is "ramp" (default), "uniform", "point:<i>" or empty when
	// InitialWeights is set.
	Initial        string    `mapstructure:"initial" yaml:"initial,omitempty" json:"initial,omitempty"`
	InitialWeights []float64 `mapstructure:"initialWeights" yaml:"initialWeights,omitempty" json:"initialWeights,omitempty"`
	Trials         int       `mapstructure:"trials" yaml:"trials,omitempty" json:"trials,omitempty"`
	Steps          int       `mapstructure:"steps" yaml:"steps,omitempty" json:"steps,omitempty"`
	MaxSteps       int       `mapstructure:"maxSteps" yaml:"maxSteps,omitempty" json:"maxSteps,omitempty"`
	Window         int       `mapstructure:"window" yaml:"window,omitempty" json:"window,omitempty"`
	Epsilon        float64   `mapstructure:"epsilon" yaml:"epsilon,omitempty" json:"epsilon,omitempty"`
	Power          int       `mapstructure:"power" yaml:"power,omitempty" json:"power,omitempty"`
	Seed           uint64    `mapstructure:"seed" yaml:"seed,omitempty" json:"seed,omitempty"`
}

// TraceSpec configures an occupation trace.
type TraceSpec struct {
	ChainSource    `mapstructure:",squash" yaml:",inline"`
	Initial        string    `mapstructure:"initial" yaml:"initial,omitempty" json:"initial,omitempty"`
	InitialWeights []float64 `mapstructure:"initialWeights" yaml:"initialWeights,omitempty" json:"initialWeights,omitempty"`
	Trials         int       `mapstructure:"trials" yaml:"trials,omitempty" json:"trials,omitempty"`
	Steps          int       `mapstructure:"steps" yaml:"steps,omitempty" json:"steps,omitempty"`
	// Every prints every Every-th step; 0 or 1 prints all.
	Every int    `mapstructure:"every" yaml:"every,omitempty" json:"every,omitempty"`
	Seed  uint64 `mapstructure:"seed" yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Absorbing decodes e.Spec as an AbsorbingSpec.
func (e Experiment) Absorbing() (AbsorbingSpec, error) {
	var s AbsorbingSpec
	if err := decodeSpec(e.Spec, &s); err != nil {
		return s, err
	}

	return s, s.ChainSource.check()
}

// Ergodic decodes e.Spec as an ErgodicSpec.
func (e Experiment) Ergodic() (ErgodicSpec, error) {
	var s ErgodicSpec
	if err := decodeSpec(e.Spec, &s); err != nil {
		return s, err
	}
	if s.Initial != "" && len(s.InitialWeights) > 0 {
		return s, fmt.Errorf("%w: initial and initialWeights are exclusive", ErrInvalidConfig)
	}

	return s, s.ChainSource.check()
}

// Trace decodes e.Spec as a TraceSpec.
func (e Experiment) Trace() (TraceSpec, error) {
	var s TraceSpec
	if err := decodeSpec(e.Spec, &s); err != nil {
		return s, err
	}
	if s.Initial != "" && len(s.InitialWeights) > 0 {
		return s, fmt.Errorf("%w: initial and initialWeights are exclusive", ErrInvalidConfig)
	}

	return s, s.ChainSource.check()
}

// check requires exactly one of Matrix and Builder.
func (c ChainSource) check() error {
	switch {
	case len(c.Matrix) == 0 && c.Builder == nil:
		return fmt.Errorf("%w: spec needs matrix or builder", ErrInvalidConfig)
	case len(c.Matrix) > 0 && c.Builder != nil:
		return fmt.Errorf("%w: matrix and builder are exclusive", ErrInvalidConfig)
	}

	return nil
}

// decodeSpec decodes in into out, rejecting unknown keys.
func decodeSpec(in map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("config: failed to create decoder: %w", err)
	}
	if err := decoder.Decode(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

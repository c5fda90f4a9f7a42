package domain

import (
	"fmt"
	"math"
)

// ModelCoefficients holds the weights of a fitted Cox model and the rate of
// the exponential baseline hazard. Values are shared read-only after load.
type ModelCoefficients struct {
	Age             float64 `json:"age" yaml:"age" mapstructure:"age"`
	BilirubinMedium float64 `json:"bilirubin_medium" yaml:"bilirubin_medium" mapstructure:"bilirubin_medium"`
	BilirubinHigh   float64 `json:"bilirubin_high" yaml:"bilirubin_high" mapstructure:"bilirubin_high"`
	SexMale         float64 `json:"sex_male" yaml:"sex_male" mapstructure:"sex_male"`
	Copper          float64 `json:"copper" yaml:"copper" mapstructure:"copper"`
	Stage           float64 `json:"stage" yaml:"stage" mapstructure:"stage"`
	Treatment       float64 `json:"treatment" yaml:"treatment" mapstructure:"treatment"`

	// Lambda is the baseline hazard rate per day. Its calibration against the
	// fitted baseline survival curve has not been verified.
	Lambda float64 `json:"lambda" yaml:"lambda" mapstructure:"lambda"`
}

// CoefficientSet is a named, versioned model fit.
type CoefficientSet struct {
	Name         string            `json:"name" yaml:"name" mapstructure:"name"`
	Version      string            `json:"version" yaml:"version" mapstructure:"version"`
	Coefficients ModelCoefficients `json:"coefficients" yaml:"coefficients" mapstructure:"coefficients"`
}

const ReferenceModelName = "pbc-cox-reference"

// ReferenceCoefficients returns the published fit used by the nomogram.
func ReferenceCoefficients() ModelCoefficients {
	return ModelCoefficients{
		Age:             0.032175,
		BilirubinMedium: 1.408395,
		BilirubinHigh:   1.811699,
		SexMale:         -0.258128,
		Copper:          0.003118,
		Stage:           0.543079,
		Treatment:       0.110627,
		Lambda:          0.0004,
	}
}

func ReferenceCoefficientSet() CoefficientSet {
	return CoefficientSet{
		Name:         ReferenceModelName,
		Version:      "1",
		Coefficients: ReferenceCoefficients(),
	}
}

// Validate rejects non-finite weights and a non-positive baseline hazard.
func (c ModelCoefficients) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"age", c.Age},
		{"bilirubin_medium", c.BilirubinMedium},
		{"bilirubin_high", c.BilirubinHigh},
		{"sex_male", c.SexMale},
		{"copper", c.Copper},
		{"stage", c.Stage},
		{"treatment", c.Treatment},
		{"lambda", c.Lambda},
	}
	for _, w := range weights {
		if math.IsNaN(w.value) || math.IsInf(w.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidCoefficients, w.name)
		}
	}
	if c.Lambda <= 0 {
		return fmt.Errorf("%w: lambda must be positive", ErrInvalidCoefficients)
	}
	return nil
}

// Validate checks the set carries a name and usable coefficients.
func (s CoefficientSet) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCoefficients)
	}
	return s.Coefficients.Validate()
}

// BilirubinCategory is the step encoding of serum bilirubin used by the model.
type BilirubinCategory int

const (
	BilirubinLow BilirubinCategory = iota
	BilirubinMedium
	BilirubinHigh
)

// Category breakpoints in mg/dL; each upper bound is inclusive.
const (
	BilirubinLowUpper    = 2.0
	BilirubinMediumUpper = 4.0
)

func CategorizeBilirubin(mgdl float64) BilirubinCategory {
	switch {
	case mgdl <= BilirubinLowUpper:
		return BilirubinLow
	case mgdl <= BilirubinMediumUpper:
		return BilirubinMedium
	default:
		return BilirubinHigh
	}
}

// Coefficient returns the indicator weight of the category. Low is the
// reference level.
func (b BilirubinCategory) Coefficient(c ModelCoefficients) float64 {
	switch b {
	case BilirubinMedium:
		return c.BilirubinMedium
	case BilirubinHigh:
		return c.BilirubinHigh
	default:
		return 0
	}
}

func (b BilirubinCategory) String() string {
	switch b {
	case BilirubinLow:
		return "low"
	case BilirubinMedium:
		return "medium"
	case BilirubinHigh:
		return "high"
	default:
		return fmt.Sprintf("BilirubinCategory(%d)", int(b))
	}
}

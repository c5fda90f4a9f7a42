// Package modelsource loads fitted Cox coefficient sets from files or
// in-memory documents.
package modelsource

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"nomogram-service/internal/core/domain"
)

// Decode parses a coefficient document. format is any viper config type
// ("yaml", "json", "toml").
//
//	name: pbc-cox-reference
//	version: "1"
//	coefficients:
//	  age: 0.032175
//	  bilirubin_medium: 1.408395
//	  ...
//	  lambda: 0.0004
func Decode(r io.Reader, format string) (*domain.CoefficientSet, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read %s coefficients: %w", format, err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*domain.CoefficientSet, error) {
	if !v.IsSet("coefficients") {
		return nil, fmt.Errorf("%w: coefficients section is missing", domain.ErrInvalidCoefficients)
	}
	var set domain.CoefficientSet
	if err := v.Unmarshal(&set); err != nil {
		return nil, fmt.Errorf("decode coefficients: %w", err)
	}
	return &set, nil
}

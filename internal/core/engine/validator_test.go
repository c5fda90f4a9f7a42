package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomogram-service/internal/core/domain"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func num(v int) *int         { return &v }

func validRaw() domain.RawCovariates {
	return domain.RawCovariates{
		Age:       f64(50),
		Sex:       str("f"),
		Bilirubin: f64(1.0),
		Copper:    f64(50),
		Stage:     num(2),
		Treatment: num(0),
	}
}

func TestValidate_Valid(t *testing.T) {
	cov, err := Validate(validRaw())
	require.NoError(t, err)
	assert.Equal(t, domain.PatientCovariates{
		Age: 50, Sex: domain.SexFemale, Bilirubin: 1.0, Copper: 50, Stage: 2, Treatment: 0,
	}, cov)
}

func TestValidate_BoundsAreClosed(t *testing.T) {
	raw := domain.RawCovariates{
		Age:       f64(120),
		Sex:       str("m"),
		Bilirubin: f64(0),
		Copper:    f64(1000),
		Stage:     num(4),
		Treatment: num(2),
	}
	_, err := Validate(raw)
	assert.NoError(t, err)

	raw.Age = f64(0)
	raw.Bilirubin = f64(50)
	raw.Copper = f64(0)
	_, err = Validate(raw)
	assert.NoError(t, err)
}

func TestValidate_MissingField(t *testing.T) {
	raw := validRaw()
	raw.Copper = nil

	_, err := Validate(raw)
	require.Error(t, err)

	var pre *domain.PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, []string{"copper"}, pre.Missing)
	assert.ErrorIs(t, err, domain.ErrMissingCovariate)
	assert.NotErrorIs(t, err, domain.ErrInvalidCovariate)
}

func TestValidate_MissingTakesPrecedence(t *testing.T) {
	raw := validRaw()
	raw.Sex = nil
	raw.Treatment = nil
	raw.Age = f64(-1)

	_, err := Validate(raw)

	var pre *domain.PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, []string{"sex", "treatment"}, pre.Missing)
}

func TestValidate_OutOfRange(t *testing.T) {
	raw := validRaw()
	raw.Bilirubin = f64(50.5)

	_, err := Validate(raw)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"bilirubin"}, verr.Fields())
	assert.Contains(t, verr.Errors[0].Message, "between 0 and 50")
	assert.ErrorIs(t, err, domain.ErrInvalidCovariate)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	raw := domain.RawCovariates{
		Age:       f64(math.NaN()),
		Sex:       str("x"),
		Bilirubin: f64(-0.1),
		Copper:    f64(1000.01),
		Stage:     num(0),
		Treatment: num(3),
	}

	_, err := Validate(raw)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"age", "sex", "bilirubin", "copper", "stage", "treatment"}, verr.Fields())
	for _, fe := range verr.Errors {
		assert.NotEmpty(t, fe.Message, fe.Field)
	}
}

func TestValidate_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		raw  func(r *domain.RawCovariates)
	}{
		{"nan age", func(r *domain.RawCovariates) { r.Age = f64(math.NaN()) }},
		{"inf copper", func(r *domain.RawCovariates) { r.Copper = f64(math.Inf(1)) }},
		{"nan bilirubin", func(r *domain.RawCovariates) { r.Bilirubin = f64(math.NaN()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.raw(&raw)
			_, err := Validate(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidCovariate)
		})
	}
}

func TestValidate_EmptySexIsInvalidNotMissing(t *testing.T) {
	raw := validRaw()
	raw.Sex = str("")

	_, err := Validate(raw)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"sex"}, verr.Fields())
}

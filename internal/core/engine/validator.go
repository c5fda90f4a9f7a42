package engine

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"nomogram-service/internal/core/domain"
)

// covariateValidate checks the tags declared on domain.RawCovariates.
// Field names in reported errors follow the json tags.
var covariateValidate *validator.Validate

func init() {
	covariateValidate = validator.New()
	covariateValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

var fieldMessages = map[string]string{
	"age":       fmt.Sprintf("age must be a number between %g and %g years", domain.AgeMin, domain.AgeMax),
	"sex":       fmt.Sprintf("sex must be one of %q or %q", domain.SexMale, domain.SexFemale),
	"bilirubin": fmt.Sprintf("bilirubin must be a number between %g and %g mg/dL", domain.BilirubinMin, domain.BilirubinMax),
	"copper":    fmt.Sprintf("copper must be a number between %g and %g μg/dL", domain.CopperMin, domain.CopperMax),
	"stage":     "stage must be one of " + joinInts(domain.Stages),
	"treatment": "treatment must be one of " + joinInts(domain.Treatments),
}

// Validate checks raw against the declared covariate domains. Every field is
// checked; structurally absent fields produce a *domain.PreconditionError and
// out-of-domain fields a *domain.ValidationError listing all of them.
func Validate(raw domain.RawCovariates) (domain.PatientCovariates, error) {
	err := covariateValidate.Struct(raw)
	if err == nil {
		return domain.PatientCovariates{
			Age:       *raw.Age,
			Sex:       domain.Sex(*raw.Sex),
			Bilirubin: *raw.Bilirubin,
			Copper:    *raw.Copper,
			Stage:     *raw.Stage,
			Treatment: *raw.Treatment,
		}, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.PatientCovariates{}, fmt.Errorf("validate covariates: %w", err)
	}

	var missing []string
	var invalid []domain.FieldError
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, domain.FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}

	if len(missing) > 0 {
		return domain.PatientCovariates{}, &domain.PreconditionError{Missing: missing}
	}
	return domain.PatientCovariates{}, &domain.ValidationError{Errors: invalid}
}

func describe(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func joinInts(vals []int) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ", ")
}

package dto

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"nomogram-service/internal/core/domain"
)

// CalculateRequest is the JSON body of POST /calculate. Values stay raw until
// ToDomain so a wrongly typed field is reported by validation together with
// every other problem. Omitted and null fields are reported as missing.
type CalculateRequest map[string]json.RawMessage

func (r CalculateRequest) ToDomain() domain.RawCovariates {
	return domain.RawCovariates{
		Age:       r.floatField("age"),
		Sex:       r.stringField("sex"),
		Bilirubin: r.floatField("bilirubin"),
		Copper:    r.floatField("copper"),
		Stage:     r.intField("stage"),
		Treatment: r.intField("treatment"),
	}
}

func (r CalculateRequest) value(key string) (json.RawMessage, bool) {
	v, ok := r[key]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

func (r CalculateRequest) floatField(key string) *float64 {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		f = math.NaN()
	}
	return &f
}

// stringField keeps a non-string value as its JSON text, which is never a valid code.
func (r CalculateRequest) stringField(key string) *string {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		s = string(v)
	}
	return &s
}

func (r CalculateRequest) intField(key string) *int {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	n := invalidOrdinal
	var f float64
	if err := json.Unmarshal(v, &f); err == nil && f == math.Trunc(f) && math.Abs(f) <= maxOrdinal {
		n = int(f)
	}
	return &n
}

// invalidOrdinal stands in for an ordinal value that is not an integer.
const invalidOrdinal = -1

// maxOrdinal bounds the numbers accepted as ordinals before conversion.
const maxOrdinal = 1 << 20

// FromForm reads covariates from form fields. A field that is present but
// not a number is kept as NaN (or an out-of-set ordinal) so validation
// reports it alongside every other problem.
func FromForm(values url.Values) domain.RawCovariates {
	return domain.RawCovariates{
		Age:       formFloat(values, "age"),
		Sex:       formString(values, "sex"),
		Bilirubin: formFloat(values, "bilirubin"),
		Copper:    formFloat(values, "copper"),
		Stage:     formInt(values, "stage"),
		Treatment: formInt(values, "treatment"),
	}
}

func formString(values url.Values, key string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	s := strings.TrimSpace(values.Get(key))
	return &s
}

func formFloat(values url.Values, key string) *float64 {
	s := formString(values, key)
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		f = math.NaN()
	}
	return &f
}

func formInt(values url.Values, key string) *int {
	s := formString(values, key)
	if s == nil {
		return nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		n = invalidOrdinal
	}
	return &n
}

type ModelRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type CalculateResponse struct {
	RecordID        string                   `json:"record_id,omitempty"`
	Model           ModelRef                 `json:"model"`
	Covariates      domain.PatientCovariates `json:"covariates"`
	LinearPredictor float64                  `json:"linear_predictor"`
	RiskScore       float64                  `json:"risk_score"`
	Survivals       map[string]float64       `json:"survivals"`
	SurvivalPercent map[string]string        `json:"survival_percent"`
	RiskCategory    string                   `json:"risk_category,omitempty"`
	Advice          string                   `json:"advice,omitempty"`
	Contributions   []domain.Contribution    `json:"contributions"`
}

func ToCalculateResponse(result *domain.Result, recordID string, model domain.CoefficientSet) CalculateResponse {
	percent := make(map[string]string, len(result.Survivals))
	for _, p := range result.Survivals {
		percent[p.Label] = FormatPercent(p.Probability)
	}

	return CalculateResponse{
		RecordID:        recordID,
		Model:           ModelRef{Name: model.Name, Version: model.Version},
		Covariates:      result.Covariates,
		LinearPredictor: result.LinearPredictor,
		RiskScore:       result.RiskScore,
		Survivals:       result.Survivals.Map(),
		SurvivalPercent: percent,
		RiskCategory:    string(result.RiskCategory),
		Advice:          result.RiskCategory.Advice(),
		Contributions:   result.Contributions,
	}
}

// FormatPercent renders a probability as a percentage with one decimal.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 1, 64) + "%"
}

type PreconditionErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Errors []domain.FieldError `json:"errors"`
}

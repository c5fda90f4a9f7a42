package domain

// Sex codes as submitted by the intake form. Female is the reference level
// of the model.
type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

// Declared covariate domains. Numeric bounds are closed intervals.
const (
	AgeMin       = 0.0
	AgeMax       = 120.0
	BilirubinMin = 0.0
	BilirubinMax = 50.0
	CopperMin    = 0.0
	CopperMax    = 1000.0
)

var (
	Stages     = []int{1, 2, 3, 4}
	Treatments = []int{0, 1, 2}
)

// RawCovariates is the unvalidated patient input. A nil field is structurally
// absent, which is distinct from a present but out-of-range value.
type RawCovariates struct {
	Age       *float64 `json:"age" validate:"required,gte=0,lte=120"`
	Sex       *string  `json:"sex" validate:"required,oneof=m f"`
	Bilirubin *float64 `json:"bilirubin" validate:"required,gte=0,lte=50"`
	Copper    *float64 `json:"copper" validate:"required,gte=0,lte=1000"`
	Stage     *int     `json:"stage" validate:"required,oneof=1 2 3 4"`
	Treatment *int     `json:"treatment" validate:"required,oneof=0 1 2"`
}

// PatientCovariates is a validated covariate record. Age is in years,
// bilirubin in mg/dL and copper in μg/dL.
type PatientCovariates struct {
	Age       float64 `json:"age"`
	Sex       Sex     `json:"sex"`
	Bilirubin float64 `json:"bilirubin"`
	Copper    float64 `json:"copper"`
	Stage     int     `json:"stage"`
	Treatment int     `json:"treatment"`
}

// Raw converts a validated record back into raw input form.
func (p PatientCovariates) Raw() RawCovariates {
	age, bili, copper := p.Age, p.Bilirubin, p.Copper
	sex := string(p.Sex)
	stage, trt := p.Stage, p.Treatment
	return RawCovariates{
		Age:       &age,
		Sex:       &sex,
		Bilirubin: &bili,
		Copper:    &copper,
		Stage:     &stage,
		Treatment: &trt,
	}
}

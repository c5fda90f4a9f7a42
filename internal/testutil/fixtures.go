package testutil

import "nomogram-service/internal/core/domain"

// ReferencePatient returns the worked example used across tests:
// a 50 year old woman, bilirubin 1.0, copper 50, stage 2, placebo.
func ReferencePatient() domain.RawCovariates {
	return domain.PatientCovariates{
		Age:       50,
		Sex:       domain.SexFemale,
		Bilirubin: 1.0,
		Copper:    50,
		Stage:     2,
		Treatment: 0,
	}.Raw()
}

package application

import (
	"fmt"

	"github.com/bnema/heihealth-cli/internal/domain"
)

const (
	ResourcePatient      = "Patient"
	ResourceCondition    = "Condition"
	ResourceObservation  = "Observation"
	ResourceImmunization = "Immunization"
	ResourceProcedure    = "Procedure"
	ResourceCarePlan     = "CarePlan"
)

// AuthError is returned by Login when the launch endpoint rejects the request or cannot be reached.
type AuthError struct {
	Detail string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("login failed: %s", e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("login failed: %v", e.Err)
	}
	return "login failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// LoadError is the single failure of a clinical load, built from the first fetch that failed.
type LoadError struct {
	PatientID domain.PatientID
	Resource  string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s for patient %s: %v", e.Resource, e.PatientID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type DirectoryLoadError struct {
	Err error
}

func (e *DirectoryLoadError) Error() string {
	return fmt.Sprintf("load patient directory: %v", e.Err)
}

func (e *DirectoryLoadError) Unwrap() error {
	return e.Err
}

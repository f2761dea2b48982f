package ports

import (
	"context"

	"github.com/bnema/heihealth-cli/internal/domain"
)

// ClinicalSource fetches the six per-patient FHIR collections. Each call is independent.
type ClinicalSource interface {
	Patient(ctx context.Context, id domain.PatientID) (domain.Patient, error)
	Conditions(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Condition], error)
	Observations(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Observation], error)
	Immunizations(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Immunization], error)
	Procedures(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Procedure], error)
	CarePlans(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.CarePlan], error)
}

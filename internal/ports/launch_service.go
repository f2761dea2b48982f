package ports

import (
	"context"

	"github.com/bnema/heihealth-cli/internal/domain"
)

type LaunchService interface {
	Launch(ctx context.Context, patientID domain.PatientID, org string) (domain.LaunchContext, error)
	ListPatients(ctx context.Context) ([]domain.DirectoryEntry, error)
}

package ports

import (
	"context"

	"github.com/bnema/heihealth-cli/internal/domain"
)

type SessionRecord struct {
	Session   domain.Session
	Directory domain.PatientDirectory
}

type SessionRepository interface {
	Load(ctx context.Context) (SessionRecord, error)
	Save(ctx context.Context, record SessionRecord) error
	Clear(ctx context.Context) error
}

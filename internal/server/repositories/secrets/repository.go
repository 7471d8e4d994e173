package secrets

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type Repository interface {
	GetSystemSecretByID(ctx context.Context, id string) (*models.StoredSecret, error)
}

package users

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type Repository interface {
	GetUserByLoginID(ctx context.Context, loginID string) (*models.User, error)
}

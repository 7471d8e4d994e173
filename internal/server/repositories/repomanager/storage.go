package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// StorageView is the read-only view of users and secrets consumed by the
// credential verifier.
type StorageView struct {
	db *sql.DB
	rm RepositoryManager
}

func NewStorageView(db *sql.DB, rm RepositoryManager) *StorageView {
	return &StorageView{db: db, rm: rm}
}

// GetUserByLoginID reads the user row and its app-token references from one
// read-only snapshot.
func (s *StorageView) GetUserByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	var user *models.User
	err := dbx.WithReadOnlyTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.rm.Users(tx).GetUserByLoginID(ctx, loginID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *StorageView) GetSystemSecretByID(ctx context.Context, id string) (*models.StoredSecret, error) {
	return s.rm.Secrets(s.db).GetSystemSecretByID(ctx, id)
}

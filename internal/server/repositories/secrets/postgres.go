// Package secrets reads hashed system secrets from PostgreSQL.
package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetSystemSecretByID(ctx context.Context, id string) (*models.StoredSecret, error) {
	query :=
		`SELECT id, secret FROM system_secrets
		 WHERE id = $1
		 `

	s := &models.StoredSecret{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// Package users reads user accounts and their secret references from
// PostgreSQL.
package users

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

// GetUserByLoginID loads the user with the given login id together with its
// app-token secret references in stored position order. It returns
// common.ErrorNotFound when no user has that login id.
func (r *PostgresRepository) GetUserByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	query :=
		`SELECT id, login_id, active, password_secret_id FROM users
		 WHERE login_id = $1
		 `

	user := &models.User{}
	var passwordSecretID sql.NullString

	err := r.db.QueryRowContext(ctx, query, loginID).Scan(&user.ID, &user.LoginID, &user.Active, &passwordSecretID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.PasswordSecretID = passwordSecretID.String

	refs, err := r.appTokenSecretIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.AppTokenSecretIDs = refs

	return user, nil
}

func (r *PostgresRepository) appTokenSecretIDs(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT secret_id FROM user_app_tokens
		 WHERE user_id = $1
		 ORDER BY position
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ids, nil
}

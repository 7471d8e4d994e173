// Package session keeps the current authctl session on disk between
// invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/authgate/internal/client/client"
	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/filex"
)

const fileName = "session.json"

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save replaces the stored session. The file is readable by the owner only
// since it holds a bearer token.
func (s *Store) Save(sess *client.Session) error {
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := filepath.Join(dir, fileName+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, filepath.Join(dir, fileName))
}

// Load returns the stored session or common.ErrorNotFound when there is none.
func (s *Store) Load() (*client.Session, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess client.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Token == nil || sess.URL == "" {
		return nil, common.ErrorNotFound
	}
	return &sess, nil
}

func (s *Store) Delete() error {
	err := os.Remove(filepath.Join(s.dir, fileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Package toml loads the pooled-account credentials file used to seed
// the session pool at startup.
package toml

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sit-kite/campus-agent/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int                `toml:"version"`
	Accounts []credentialSchema `toml:"accounts"`
}

type credentialSchema struct {
	Account  string `toml:"account"`
	Password string `toml:"password"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// LoadCredentials reads the accounts file. A missing file is not an
// error: the agent can run with an empty pool and fill it lazily from
// account-scoped requests.
func LoadCredentials(path string) ([]domain.Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode accounts file: %w", err)
	}
	file.applyDefaults()
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	credentials := make([]domain.Credential, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		account := strings.TrimSpace(entry.Account)
		if account == "" || entry.Password == "" {
			continue
		}
		credentials = append(credentials, domain.Credential{
			Account:  account,
			Password: entry.Password,
		})
	}

	return credentials, nil
}

package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Stuart-0728/cqnu/internal/config"
	"github.com/Stuart-0728/cqnu/internal/errors"
)

const credentialsFile = "credentials.json"

// Credentials is the persisted login state. The token is opaque; the
// username is kept only so `cqnu auth status` can say who is logged in
// without a round trip.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func credentialsPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credentialsFile), nil
}

// SaveCredentials writes the token to disk so later invocations start
// authenticated.
func SaveCredentials(creds Credentials) error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create config directory", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to encode credentials", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write credentials", err)
	}
	return nil
}

// LoadCredentials reads the persisted token. A missing file is not an
// error; it returns empty credentials and ok=false.
func LoadCredentials() (Credentials, bool, error) {
	path, err := credentialsPath()
	if err != nil {
		return Credentials{}, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, false, nil
		}
		return Credentials{}, false, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read credentials", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false, errors.Wrap(errors.ErrCodeFileReadFailed, "credentials file is corrupt", err)
	}
	if creds.Token == "" {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

// ClearCredentials removes the persisted token. Clearing an already
// missing file succeeds.
func ClearCredentials() error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to remove credentials", err)
	}
	return nil
}

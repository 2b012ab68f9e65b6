package filestate

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/everyedu/portal/storage/state"
)

const stateFileName = "session.json"

// Storage persists client state as a single JSON document in the state
// directory. Writes go through a temp file and rename so a crash mid-write
// never leaves a torn document behind.
type Storage struct {
	path string
}

var _ state.Storage = (*Storage)(nil)

func New(stateDir string) (*Storage, error) {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating state dir")
	}
	return &Storage{path: filepath.Join(stateDir, stateFileName)}, nil
}

func (s *Storage) ReadAll() (map[string]string, error) {
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, "reading state file")
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt state file is unrecoverable; start over empty.
		return map[string]string{}, nil
	}
	return values, nil
}

func (s *Storage) WriteAll(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}
	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing state file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replacing state file")
	}
	return nil
}

func (s *Storage) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing state file")
	}
	return nil
}

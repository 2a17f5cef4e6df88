package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"activity-hub/internal/utils"
)

// FileSnapshotStore writes each snapshot to <dir>/<key>.json.
type FileSnapshotStore struct {
	Dir string
}

func NewFileSnapshotStore(dir string) *FileSnapshotStore {
	return &FileSnapshotStore{Dir: dir}
}

func (f *FileSnapshotStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", utils.NewInvalidInputError(fmt.Sprintf("invalid snapshot key %q", key))
	}
	return filepath.Join(f.Dir, key+".json"), nil
}

func (f *FileSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, snapshotNotFound(key)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to read snapshot file", err)
	}
	return data, nil
}

// Save replaces the file atomically so a crash never leaves half a snapshot.
func (f *FileSnapshotStore) Save(_ context.Context, key string, data []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to create snapshot directory", err)
	}

	tmp, err := os.CreateTemp(f.Dir, key+"-*.tmp")
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to create snapshot file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return utils.NewAppError(utils.ErrDatabase, "failed to write snapshot file", err)
	}
	if err := tmp.Close(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to write snapshot file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to replace snapshot file", err)
	}
	return nil
}

func (f *FileSnapshotStore) Delete(_ context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete snapshot file", err)
	}
	return nil
}

func (f *FileSnapshotStore) Close(context.Context) error { return nil }

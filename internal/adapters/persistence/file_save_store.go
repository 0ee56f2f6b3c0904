package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
)

const saveFileExt = ".json"

// FileSaveStore implements simulation.SaveStore with one JSON file per slot
type FileSaveStore struct {
	dir string
}

// NewFileSaveStore creates the directory if needed and returns a store rooted there
func NewFileSaveStore(dir string) (*FileSaveStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileSaveStore{dir: dir}, nil
}

func (s *FileSaveStore) path(slot string) (string, error) {
	if slot == "" || strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return "", fmt.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(s.dir, slot+saveFileExt), nil
}

// Write replaces the slot file atomically via a temp file and rename
func (s *FileSaveStore) Write(ctx context.Context, slot string, data []byte, savedAt time.Time) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace save: %w", err)
	}
	_ = os.Chtimes(path, savedAt, savedAt)
	return nil
}

// Read returns the slot file's contents
func (s *FileSaveStore) Read(ctx context.Context, slot string) ([]byte, error) {
	path, err := s.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", simulation.ErrSaveNotFound, slot)
		}
		return nil, fmt.Errorf("failed to read save: %w", err)
	}
	return data, nil
}

// Delete removes the slot file
func (s *FileSaveStore) Delete(ctx context.Context, slot string) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", simulation.ErrSaveNotFound, slot)
		}
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// List describes every slot file, ordered by slot name. SavedAt is the
// file modification time.
func (s *FileSaveStore) List(ctx context.Context) ([]simulation.SaveInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	var infos []simulation.SaveInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != saveFileExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat save: %w", err)
		}
		infos = append(infos, simulation.SaveInfo{
			Slot:    strings.TrimSuffix(entry.Name(), saveFileExt),
			SavedAt: info.ModTime(),
			Size:    int(info.Size()),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Slot < infos[j].Slot })
	return infos, nil
}

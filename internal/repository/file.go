package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const slotFileExt = ".json"

// FileRepository хранит каждый слот отдельным JSON-документом в каталоге.
// Запись выполняется через временный файл и переименование.
type FileRepository struct {
	mu  sync.Mutex
	dir string
}

// NewFileRepository создаёт каталог при необходимости и возвращает хранилище.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(key string) string {
	return filepath.Join(r.dir, key+slotFileExt)
}

// Get читает слот.
func (r *FileRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, true, nil
}

// Put заменяет слот целиком.
func (r *FileRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), r.path(key)); err != nil {
		return fmt.Errorf("replace slot %s: %w", key, err)
	}
	return nil
}

// Delete удаляет слот; отсутствие файла ошибкой не считается.
func (r *FileRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// Clear удаляет файлы всех известных слотов.
func (r *FileRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, key := range Slots {
		if err := os.Remove(r.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close ничего не делает.
func (r *FileRepository) Close() error {
	return nil
}

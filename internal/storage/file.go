package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	dirPerm  = 0700
	filePerm = 0600
)

// ErrCorrupted означает, что файл хранилища не удалось разобрать.
// Следующая запись заменяет такой файл новым содержимым.
var ErrCorrupted = errors.New("файл хранилища поврежден")

// FileStore хранит пары ключ-значение в JSON-файле, токен лежит под TokenKey
type FileStore struct {
	mu   sync.Mutex
	path string
	opts options
}

func NewFileStore(path string, opts ...Option) *FileStore {
	return &FileStore{
		path: path,
		opts: newOptions(opts),
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.opts.report(OpSave, err)

		if !errors.Is(err, ErrCorrupted) {
			return
		}
	}

	values[TokenKey] = token

	s.opts.report(OpSave, s.write(values))
}

func (s *FileStore) Load() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.opts.report(OpLoad, err)
		}

		return ""
	}

	return values[TokenKey]
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	switch {
	case errors.Is(err, ErrCorrupted):
		s.opts.report(OpClear, err)
		s.opts.report(OpClear, s.write(values))

		return
	case err != nil:
		if !errors.Is(err, os.ErrNotExist) {
			s.opts.report(OpClear, err)
		}

		return
	}

	if _, ok := values[TokenKey]; !ok {
		return
	}

	delete(values, TokenKey)

	s.opts.report(OpClear, s.write(values))
}

func (s *FileStore) Close() error {
	return nil
}

// read всегда возвращает непустую map, даже вместе с ошибкой
func (s *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return values, err
	}

	if len(data) == 0 {
		return values, nil
	}

	if errUnmarshal := json.Unmarshal(data, &values); errUnmarshal != nil {
		return make(map[string]string), fmt.Errorf("%w: %s: %w", ErrCorrupted, s.path, errUnmarshal)
	}

	// null в файле обнуляет map без ошибки
	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("ошибка создания директории хранилища: %w", err)
	}

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if errWrite := os.WriteFile(tmp, data, filePerm); errWrite != nil {
		return fmt.Errorf("ошибка записи файла хранилища: %w", errWrite)
	}

	if errRename := os.Rename(tmp, s.path); errRename != nil {
		return fmt.Errorf("ошибка замены файла хранилища: %w", errRename)
	}

	return nil
}

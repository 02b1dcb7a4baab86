// Package storage хранит токен сессии. Все операции выполняются по принципу
// best effort: ошибки хранилища не возвращаются вызывающему коду, а
// передаются в необязательный обработчик ошибок.
package storage

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// TokenKey ключ, под которым хранится токен
const TokenKey = "ll_jwt"

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

const (
	OpOpen  = "open"
	OpSave  = "save"
	OpLoad  = "load"
	OpClear = "clear"
)

var ErrUnknownDriver = errors.New("неизвестный драйвер хранилища")

type TokenStore interface {
	Save(token string)
	Load() string
	Clear()
}

// Store хранилище токена, владеющее ресурсами, которые нужно освободить
type Store interface {
	TokenStore
	io.Closer
}

// ErrorHandler получает ошибки, которые хранилище не возвращает вызывающему
type ErrorHandler func(op string, err error)

type options struct {
	onError ErrorHandler
}

type Option func(*options)

func WithErrorHandler(handler ErrorHandler) Option {
	return func(o *options) {
		o.onError = handler
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) report(op string, err error) {
	if err != nil && o.onError != nil {
		o.onError(op, err)
	}
}

// Open создает хранилище для указанного драйвера. Если хранилище не удалось
// открыть, ошибка передается в обработчик и возвращается MemoryStore:
// клиент продолжает работу как неавторизованный.
func Open(driver, path string, opts ...Option) (Store, error) {
	o := newOptions(opts)

	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile, "":
		return NewFileStore(path, opts...), nil
	case DriverSQLite:
		store, err := OpenSQLite(path, opts...)
		if err != nil {
			o.report(OpOpen, err)

			return NewMemoryStore(), nil
		}

		return store, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

// MemoryStore хранит токен в памяти процесса
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

func (s *MemoryStore) Load() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *MemoryStore) Clear() {
	s.Save("")
}

func (s *MemoryStore) Close() error {
	return nil
}

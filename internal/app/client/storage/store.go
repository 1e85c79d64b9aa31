package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"
)

// Store - хранилище, в котором каждый ключ привязан к пользователю: "{key}_{userID}".
// Без пользователя используется ключ без суффикса и пишется предупреждение.
type Store struct {
	kv       KV
	log      *slog.Logger
	notifier *Notifier
	mu       sync.Mutex
}

func New(kv KV, log *slog.Logger) *Store {
	return &Store{
		kv:       kv,
		log:      log.With("component", "user_store"),
		notifier: NewNotifier(),
	}
}

// Key возвращает физический ключ для пользователя
func (s *Store) Key(userID, key string) string {
	if userID == "" {
		s.log.Warn("No user ID available, using unscoped key", "key", key)
		return key
	}
	return key + "_" + userID
}

// Load читает значение. Отсутствующее или битое значение заменяется на def
func Load[T any](s *Store, userID, key string, def T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return load(s, userID, key, def)
}

func load[T any](s *Store, userID, key string, def T) T {
	fullKey := s.Key(userID, key)

	raw, ok, err := s.kv.Get(fullKey)
	if err != nil {
		s.log.Error("failed to read key", "key", fullKey, "error", err)
		return def
	}
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.log.Error("failed to parse stored value", "key", fullKey, "error", err)
		return def
	}

	return value
}

func (s *Store) Set(userID, key string, value any) error {
	s.mu.Lock()
	err := s.put(userID, key, value)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.Notify(userID, key)
	return nil
}

func (s *Store) put(userID, key string, value any) error {
	fullKey := s.Key(userID, key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", fullKey, err)
	}

	if err := s.kv.Put(fullKey, string(data)); err != nil {
		s.log.Error("failed to write key", "key", fullKey, "error", err)
		return fmt.Errorf("write %s: %w", fullKey, err)
	}

	return nil
}

func (s *Store) Remove(userID, key string) error {
	fullKey := s.Key(userID, key)

	s.mu.Lock()
	err := s.kv.Delete(fullKey)
	s.mu.Unlock()

	if err != nil {
		s.log.Error("failed to remove key", "key", fullKey, "error", err)
		return fmt.Errorf("remove %s: %w", fullKey, err)
	}

	s.Notify(userID, key)
	return nil
}

// Update выполняет read-modify-write под блокировкой хранилища.
// Если fn возвращает ошибку, ничего не записывается. fn не должна обращаться к Store.
func Update[T any](s *Store, userID, key string, def T, fn func(T) (T, error)) error {
	s.mu.Lock()
	current := load(s, userID, key, def)

	next, err := fn(current)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	err = s.put(userID, key, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.Notify(userID, key)
	return nil
}

// Subscribe подписывает на изменения хранилища
func (s *Store) Subscribe() (<-chan Change, func()) {
	return s.notifier.Subscribe()
}

func (s *Store) Notify(userID, key string) {
	s.notifier.Publish(Change{Key: key, UserID: userID})
}

func (s *Store) Close() error {
	return s.kv.Close()
}

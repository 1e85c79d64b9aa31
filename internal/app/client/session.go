package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"shopkeeper/internal/domain/pos"
)

func loadSession(path string) (pos.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pos.Session{}, nil
		}
		return pos.Session{}, fmt.Errorf("read session: %w", err)
	}

	var sess pos.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return pos.Session{}, fmt.Errorf("parse session: %w", err)
	}

	return sess, nil
}

func saveSession(path string, sess pos.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func clearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

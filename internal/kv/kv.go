// Package kv is the string-keyed persistence substrate shared by every store.
//
// A Store is synchronous and operates on a single namespace. Values are
// opaque strings; GetJSON and SetJSON cover the common case of JSON payloads.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultQuotaBytes mirrors the per-origin budget browsers give local storage.
const DefaultQuotaBytes = 5 * 1024 * 1024

var (
	// ErrQuotaExceeded is returned (wrapped) when a write would push the
	// namespace above its byte quota. Nothing is written in that case.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrEmptyKey      = errors.New("key must not be empty")
)

type Store interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Remove(key string) error
}

// EntrySize is the number of bytes a key/value pair counts against the quota.
func EntrySize(key string, value string) int64 {
	return int64(len(key) + len(value))
}

// IsQuotaExceeded reports whether err was caused by a full namespace.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// GetJSON decodes the value stored under key into target. found is false when
// the key is absent; a decode failure is returned as an error and leaves
// target untouched.
func GetJSON(store Store, key string, target any) (bool, error) {
	raw, found, err := store.Get(key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(store Store, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(key, string(encoded))
}

// Package store provides the client-session key/value contract: JSON values
// addressed by string key, with no transactional guarantees across keys.
package store

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("store: key not found")

type KV interface {
	// Get unmarshals the value at key into v. Returns ErrKeyNotFound when absent.
	Get(ctx context.Context, key string, v interface{}) error
	// Set marshals v and stores it at key, overwriting any previous value.
	Set(ctx context.Context, key string, v interface{}) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Key builders for the session-scoped state the pipeline persists.

func ResumeKey(userID string) string {
	return "user:" + userID + ":resume"
}

func ResumeFileKey(userID string) string {
	return "user:" + userID + ":resume:file"
}

func LatestResultKey(userID string) string {
	return "user:" + userID + ":result:latest"
}

package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "devpanel"
	keyringUser    = "kernel-api-key"
)

// ErrNoAPIKey is returned when no Kernel API key is set in the environment or keyring.
var ErrNoAPIKey = errors.New("no Kernel API key found; set KERNEL_API_KEY or run 'devpanel login'")

// KernelAPIKeyOrKeyring prefers the environment and falls back to the OS keyring.
func (e *Env) KernelAPIKeyOrKeyring() (string, error) {
	if e != nil && e.KernelAPIKey != "" {
		return e.KernelAPIKey, nil
	}
	key, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return key, nil
}

// StoreKernelAPIKey saves the key in the OS keyring.
func StoreKernelAPIKey(key string) error {
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

// DeleteKernelAPIKey removes the key from the OS keyring. Deleting a missing key is not an error.
func DeleteKernelAPIKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete keyring entry: %w", err)
	}
	return nil
}

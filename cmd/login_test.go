package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeKeyStore struct {
	Stored   string
	Deleted  bool
	StoreErr error
}

func (f *FakeKeyStore) Store(key string) error {
	if f.StoreErr != nil {
		return f.StoreErr
	}
	f.Stored = key
	return nil
}

func (f *FakeKeyStore) Delete() error {
	f.Deleted = true
	return nil
}

func TestLogin_UsesFlagValue(t *testing.T) {
	setupStdoutCapture(t)

	store := &FakeKeyStore{}
	c := LoginCmd{store: store, prompt: func() (string, error) {
		t.Fatal("prompt must not run when a key is given")
		return "", nil
	}}
	require.NoError(t, c.Login(context.Background(), LoginInput{APIKey: " sk_live_123 "}))
	assert.Equal(t, "sk_live_123", store.Stored)
	assert.Contains(t, outBuf.String(), "saved to the system keyring")
}

func TestLogin_PromptsWhenMissing(t *testing.T) {
	setupStdoutCapture(t)

	store := &FakeKeyStore{}
	c := LoginCmd{store: store, prompt: func() (string, error) { return "sk_prompted", nil }}
	require.NoError(t, c.Login(context.Background(), LoginInput{}))
	assert.Equal(t, "sk_prompted", store.Stored)
}

func TestLogin_RejectsEmptyKey(t *testing.T) {
	store := &FakeKeyStore{}
	c := LoginCmd{store: store, prompt: func() (string, error) { return "  ", nil }}
	assert.Error(t, c.Login(context.Background(), LoginInput{}))
	assert.Empty(t, store.Stored)
}

func TestLogin_StoreError(t *testing.T) {
	store := &FakeKeyStore{StoreErr: errors.New("keyring locked")}
	c := LoginCmd{store: store}
	assert.EqualError(t, c.Login(context.Background(), LoginInput{APIKey: "k"}), "keyring locked")
}

func TestLogout(t *testing.T) {
	setupStdoutCapture(t)

	store := &FakeKeyStore{}
	c := LoginCmd{store: store}
	require.NoError(t, c.Logout(context.Background()))
	assert.True(t, store.Deleted)
}

package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/kernel/devpanel/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// KeyStore persists the Kernel API key.
type KeyStore interface {
	Store(key string) error
	Delete() error
}

type keyringStore struct{}

func (keyringStore) Store(key string) error { return config.StoreKernelAPIKey(key) }
func (keyringStore) Delete() error          { return config.DeleteKernelAPIKey() }

// LoginCmd stores and removes the Kernel API key with injectable dependencies.
type LoginCmd struct {
	store  KeyStore
	prompt func() (string, error)
}

type LoginInput struct {
	APIKey string
}

func (c LoginCmd) Login(ctx context.Context, in LoginInput) error {
	key := strings.TrimSpace(in.APIKey)
	if key == "" {
		entered, err := c.prompt()
		if err != nil {
			return err
		}
		key = strings.TrimSpace(entered)
	}
	if key == "" {
		return errors.New("an API key is required")
	}
	if err := c.store.Store(key); err != nil {
		return err
	}
	pterm.Success.Println("Kernel API key saved to the system keyring")
	return nil
}

func (c LoginCmd) Logout(ctx context.Context) error {
	if err := c.store.Delete(); err != nil {
		return err
	}
	pterm.Success.Println("Kernel API key removed from the system keyring")
	return nil
}

func promptAPIKey() (string, error) {
	return pterm.DefaultInteractiveTextInput.WithMask("*").Show("Kernel API key")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save a Kernel API key to the system keyring",
	Long: `Save a Kernel API key to the system keyring so the kernel driver can use it
without KERNEL_API_KEY being set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey, _ := cmd.Flags().GetString("api-key")
		c := LoginCmd{store: keyringStore{}, prompt: promptAPIKey}
		return c.Login(cmd.Context(), LoginInput{APIKey: apiKey})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the Kernel API key from the system keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := LoginCmd{store: keyringStore{}}
		return c.Logout(cmd.Context())
	},
}

func init() {
	loginCmd.Flags().String("api-key", "", "API key to store instead of prompting")
}

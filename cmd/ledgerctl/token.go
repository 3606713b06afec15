package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a user",
		Long: `Mint an HS256 access token signed with JWT_SECRET. Users are not stored by
the ledger, so any UUID names a user.`,
		Example: `  ledgerctl token --user-id 6f1c2a4e-8d7b-4c1a-9e2f-3b5d7a9c1e0f --ttl 24h`,
		RunE:    runToken,
	}

	cmd.Flags().String("user-id", "", "User ID to embed in the token (default: a new UUID)")
	cmd.Flags().Duration("ttl", 0, "Token lifetime (default: JWT_EXPIRY)")
	return cmd
}

func runToken(cmd *cobra.Command, args []string) error {
	userIDStr, _ := cmd.Flags().GetString("user-id")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	userID := uuid.New()
	if userIDStr != "" {
		parsed, err := uuid.Parse(userIDStr)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		userID = parsed
	}

	cfg := config.Load()
	if ttl <= 0 {
		ttl = cfg.JWT.AccessTokenExpiry
	}

	token, err := adapters.NewTokenService(cfg.JWT.Secret, ttl).GenerateAccessToken(cmd.Context(), userID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "user_id: %s\n", userID)
	fmt.Fprintf(out, "expires: %s\n", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	fmt.Fprintln(out, token)
	return nil
}

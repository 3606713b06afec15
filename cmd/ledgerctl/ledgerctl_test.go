package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "ledger.db"))
	t.Setenv("JWT_SECRET", "cli-secret")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateAndSeed(t *testing.T) {
	useSQLite(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created 7 categories")
	assert.Contains(t, out, string(entity.SystemKeyTransferOut))

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created 0 categories", "seeding is idempotent")
}

func TestAudit_ReportsDrift(t *testing.T) {
	useSQLite(t)
	_, err := run(t, "migrate")
	require.NoError(t, err)

	cfg, database, err := openDatabase()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Database.Driver)

	ctx := context.Background()
	accounts := persistence.NewAccountRepository(database.DB())
	account := entity.NewAccount(uuid.New(), "Checking", entity.AccountKindChecking, decimal.NewFromInt(100))
	require.NoError(t, accounts.Create(ctx, account))

	out, err := run(t, "audit", "--fail-on-drift")
	require.NoError(t, err)
	assert.Contains(t, out, "1 accounts, 0 drifted")

	// Corrupt the stored balance behind the ledger's back
	require.NoError(t, database.DB().Exec("UPDATE accounts SET balance = 90").Error)
	require.NoError(t, database.Close())

	out, err = run(t, "audit", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"drift": "-10.00"`)

	_, err = run(t, "audit", "--fail-on-drift")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 accounts drifted")
}

func TestToken(t *testing.T) {
	useSQLite(t)
	userID := uuid.New()

	out, err := run(t, "token", "--user-id", userID.String(), "--ttl", "1h")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "user_id: "+userID.String(), lines[0])

	claims, err := adapters.NewTokenService("cli-secret", 0).ValidateAccessToken(context.Background(), lines[2])
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	_, err = run(t, "token", "--user-id", "nope")
	require.Error(t, err)
}

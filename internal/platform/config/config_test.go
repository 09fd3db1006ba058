package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "bolt")
	t.Setenv("BOLT_PATH", "test.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageBolt, cfg.StorageDriver)
	assert.Equal(t, 10*time.Second, cfg.PersistenceTimeout)
	assert.Equal(t, 5*time.Minute, cfg.COACacheTTL)
	assert.Equal(t, domain.DefaultLowStockThreshold, cfg.LowStockThreshold)
	assert.Equal(t, domain.DefaultPostingAccounts(), cfg.PostingAccounts)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("PGSQL_URL", "postgres://localhost/pos")
	t.Setenv("PERSISTENCE_TIMEOUT", "2s")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("POSTING_CASH_ACCOUNT", "1-1000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 2*time.Second, cfg.PersistenceTimeout)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.Equal(t, "1-1000", cfg.PostingAccounts.Cash)
	assert.Equal(t, "1-1110", cfg.PostingAccounts.Bank)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "bolt")
		t.Setenv("PERSISTENCE_TIMEOUT", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("production needs a secret", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "bolt")
		t.Setenv("IS_PRODUCTION", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestParseChart(t *testing.T) {
	accounts, err := ParseChart([]byte(`
accounts:
  - code: 1-1100
    name: Kas
    type: asset
  - code: 4-1000
    name: Penjualan
    type: REVENUE
    description: Sales of goods
`))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, domain.Asset, accounts[0].AccountType)
	assert.Equal(t, "Sales of goods", accounts[1].Description)

	_, err = ParseChart([]byte("accounts:\n  - code: 9-9999\n    name: Mystery\n    type: INCOME\n"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = ParseChart([]byte("accounts:\n  - {code: A, name: A, type: ASSET}\n  - {code: A, name: B, type: ASSET}\n"))
	assert.Error(t, err)

	_, err = ParseChart([]byte("accounts: []"))
	assert.Error(t, err)
}

func TestLoadChart_DefaultWhenUnset(t *testing.T) {
	accounts, err := LoadChart("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChart(), accounts)
}

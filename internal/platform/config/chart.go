package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// chartFile is the YAML layout of a chart of accounts seed file:
//
//	accounts:
//	  - code: 1-1100
//	    name: Cash on Hand
//	    type: ASSET
type chartFile struct {
	Accounts []struct {
		Code        string `yaml:"code"`
		Name        string `yaml:"name"`
		Type        string `yaml:"type"`
		Description string `yaml:"description"`
	} `yaml:"accounts"`
}

// LoadChart reads a seed chart from path. An empty path returns the built-in
// default chart.
func LoadChart(path string) ([]domain.Account, error) {
	if path == "" {
		return domain.DefaultChart(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart file: %w", err)
	}
	return ParseChart(data)
}

// ParseChart decodes and validates a YAML seed chart.
func ParseChart(data []byte) ([]domain.Account, error) {
	var file chartFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse chart file: %w", err)
	}
	if len(file.Accounts) == 0 {
		return nil, fmt.Errorf("chart file has no accounts")
	}

	seen := make(map[string]struct{}, len(file.Accounts))
	accounts := make([]domain.Account, 0, len(file.Accounts))
	for i, row := range file.Accounts {
		acc, err := domain.NewAccount(row.Code, row.Name, domain.AccountType(row.Type), row.Description)
		if err != nil {
			return nil, fmt.Errorf("chart account %d: %w", i+1, err)
		}
		if _, dup := seen[acc.Code]; dup {
			return nil, fmt.Errorf("chart account %d: duplicate code %s", i+1, acc.Code)
		}
		seen[acc.Code] = struct{}{}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

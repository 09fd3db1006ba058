package main

import (
	"os"

	"github.com/SscSPs/pos_ledger/internal/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// @title POS Ledger API
// @version 1.0
// @description Point-of-sale backend with a double-entry ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}

package handlers

import (
	"strings"
	"sync"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("accounttype", validateAccountType)
		_ = v.RegisterValidation("paymentmethod", validatePaymentMethod)
	})
}

func validateAccountType(fl validator.FieldLevel) bool {
	return domain.AccountType(fl.Field().String()).IsValid()
}

// validatePaymentMethod accepts the methods and aliases the POS front end sends.
func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch strings.ToUpper(strings.TrimSpace(fl.Field().String())) {
	case "CASH", "BANK", "TRANSFER", "QRIS", "E-WALLET", "EWALLET":
		return true
	}
	return false
}

package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Form-boundary validation. These checks mirror what the backend enforces so
// obviously bad payloads fail before a network round trip.

const PasswordMinLength = 8

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[@$!%*?&]`)
)

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the account password policy: minimum length plus
// at least one lower, upper, digit, and special character.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	if !lowerPattern.MatchString(password) ||
		!upperPattern.MatchString(password) ||
		!digitPattern.MatchString(password) ||
		!specialPattern.MatchString(password) {
		return fmt.Errorf("password must contain uppercase, lowercase, number, and special character")
	}
	return nil
}

// Validate checks a registration payload.
func (r *RegisterRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return fmt.Errorf("first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("last name is required")
	}
	return nil
}

// Validate checks a password-change payload. The new password must differ
// from the current one; identical values are rejected before any network call.
func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return fmt.Errorf("current password is required")
	}
	if err := ValidatePassword(r.NewPassword); err != nil {
		return err
	}
	if r.CurrentPassword == r.NewPassword {
		return fmt.Errorf("new password must be different from current password")
	}
	return nil
}

// Validate checks a portfolio-creation payload.
func (r *CreatePortfolioRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("portfolio name is required")
	}
	return nil
}

// Validate checks an investment-creation payload, including the SIP
// cross-field invariant: when IsSIP is set, the SIP fields are required as
// a group.
func (r *CreateInvestmentRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("investment name is required")
	}
	if strings.TrimSpace(r.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("invalid investment type %q", r.Type)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if r.PurchasePrice <= 0 {
		return fmt.Errorf("purchase price must be positive")
	}
	if r.CurrentPrice < 0 {
		return fmt.Errorf("current price cannot be negative")
	}
	if r.PurchaseDate.IsZero() {
		return fmt.Errorf("purchase date is required")
	}
	if r.IsSIP {
		if r.SIPAmount <= 0 {
			return fmt.Errorf("SIP amount is required for SIP investments")
		}
		if r.SIPStartDate == nil || r.SIPStartDate.IsZero() {
			return fmt.Errorf("SIP start date is required for SIP investments")
		}
		if r.SIPDuration <= 0 {
			return fmt.Errorf("SIP duration is required for SIP investments")
		}
	}
	return nil
}

// Validate checks a transaction-creation payload.
func (r *CreateTransactionRequest) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("invalid transaction type %q", r.Type)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if r.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if r.TransactionDate.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}

package domain

import "fmt"

type FundingMethod string

const (
	FundingBank        FundingMethod = "bank"
	FundingCard        FundingMethod = "card"
	FundingCrypto      FundingMethod = "crypto"
	FundingMobileMoney FundingMethod = "mobile"
)

func (m FundingMethod) IsValid() bool {
	switch m {
	case FundingBank, FundingCard, FundingCrypto, FundingMobileMoney:
		return true
	}
	return false
}

// FundingDetails is the closed set of per-method deposit payloads. Each
// variant validates its own required fields and derives the display label
// stored on the resulting transaction; nothing beyond that label is retained.
type FundingDetails interface {
	// MethodLabel is the only part of the details that outlives the deposit.
	MethodLabel() string
	Validate() error

	fundingDetails()
}

type BankDetails struct {
	AccountNumber string
	RoutingNumber string
}

func (d BankDetails) MethodLabel() string { return "Bank Account" }

func (d BankDetails) Validate() error {
	if d.AccountNumber == "" {
		return fmt.Errorf("account_number: %w", ErrMissingField)
	}
	if d.RoutingNumber == "" {
		return fmt.Errorf("routing_number: %w", ErrMissingField)
	}
	return nil
}

type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

// MethodLabel masks all but the last four digits. The raw number, CVV and
// expiry never reach the ledger.
func (d CardDetails) MethodLabel() string {
	last4 := d.Number
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	return "Credit/Debit Card ****" + last4
}

func (d CardDetails) Validate() error {
	if d.Number == "" {
		return fmt.Errorf("card_number: %w", ErrMissingField)
	}
	if d.Expiry == "" {
		return fmt.Errorf("expiry_date: %w", ErrMissingField)
	}
	if d.CVV == "" {
		return fmt.Errorf("cvv: %w", ErrMissingField)
	}
	return nil
}

type CryptoDetails struct {
	Asset         string
	WalletAddress string
}

func (d CryptoDetails) MethodLabel() string { return d.Asset + " Wallet" }

func (d CryptoDetails) Validate() error {
	if d.Asset == "" {
		return fmt.Errorf("crypto_type: %w", ErrMissingField)
	}
	if d.WalletAddress == "" {
		return fmt.Errorf("wallet_address: %w", ErrMissingField)
	}
	return nil
}

type MobileMoneyDetails struct {
	Provider    string
	PhoneNumber string
}

func (d MobileMoneyDetails) MethodLabel() string { return d.Provider + " Mobile Money" }

func (d MobileMoneyDetails) Validate() error {
	if d.Provider == "" {
		return fmt.Errorf("mobile_provider: %w", ErrMissingField)
	}
	if d.PhoneNumber == "" {
		return fmt.Errorf("phone_number: %w", ErrMissingField)
	}
	return nil
}

func (BankDetails) fundingDetails()        {}
func (CardDetails) fundingDetails()        {}
func (CryptoDetails) fundingDetails()      {}
func (MobileMoneyDetails) fundingDetails() {}

package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// BigDecimal fields on the backend are plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberInactive  MemberStatus = "INACTIVE"
	MemberSuspended MemberStatus = "SUSPENDED"
)

// AccountStatus mirrors the backend enum. Values the console does not know
// are kept verbatim.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

type TransactionType string

const (
	TransactionTransfer   TransactionType = "TRANSFER"
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

type TransactionStatus string

const (
	TransactionSuccess   TransactionStatus = "SUCCESS"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// Settled treats SUCCESS and COMPLETED alike; the backend gives no finer meaning.
func (s TransactionStatus) Settled() bool {
	return s == TransactionSuccess || s == TransactionCompleted
}

type Member struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phoneNumber"`
	Status      MemberStatus `json:"status"`
	CreatedAt   string       `json:"createdAt"`
}

type MemberCreateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	OwnerName     string          `json:"ownerName"`
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
	CreatedAt     string          `json:"createdAt"`
}

type AccountCreateRequest struct {
	MemberID       int64           `json:"memberId"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// Transaction is a backend ledger entry. A nil FromAccountNumber means the
// funds came from outside the bank (deposit).
type Transaction struct {
	ID                int64             `json:"id"`
	FromAccountNumber *string           `json:"fromAccountNumber"`
	ToAccountNumber   string            `json:"toAccountNumber"`
	Amount            decimal.Decimal   `json:"amount"`
	Type              TransactionType   `json:"type"`
	Status            TransactionStatus `json:"status"`
	Description       string            `json:"description"`
	CreatedAt         string            `json:"createdAt"`
}

type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
}

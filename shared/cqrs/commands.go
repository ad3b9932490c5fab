package cqrs

import "github.com/shopspring/decimal"

type CreateMemberCommand struct {
	Name        string
	Email       string
	PhoneNumber string
}

type CreateAccountCommand struct {
	MemberID       int64
	InitialBalance decimal.Decimal
}

type TransferCommand struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Description       string
}

// TogglePageCommand flips a page between its list and form views.
type TogglePageCommand struct {
	Page string
}

package command

import (
	"fmt"
	"strconv"

	"github.com/eaglebank/console/shared/cqrs"
	"github.com/eaglebank/console/shared/models"
	"github.com/shopspring/decimal"
)

// The converters below expect forms that already passed validation.

func MemberCommand(f models.MemberForm) cqrs.CreateMemberCommand {
	f = f.Trimmed()
	return cqrs.CreateMemberCommand{
		Name:        f.Name,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
	}
}

func AccountCommand(f models.AccountForm) (cqrs.CreateAccountCommand, error) {
	f = f.Trimmed()
	memberID, err := strconv.ParseInt(f.MemberID, 10, 64)
	if err != nil {
		return cqrs.CreateAccountCommand{}, fmt.Errorf("member id: %w", err)
	}
	balance, err := decimal.NewFromString(f.InitialBalance)
	if err != nil {
		return cqrs.CreateAccountCommand{}, fmt.Errorf("initial balance: %w", err)
	}
	return cqrs.CreateAccountCommand{MemberID: memberID, InitialBalance: balance}, nil
}

func TransferCommand(f models.TransferForm) (cqrs.TransferCommand, error) {
	f = f.Trimmed()
	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return cqrs.TransferCommand{}, fmt.Errorf("amount: %w", err)
	}
	return cqrs.TransferCommand{
		FromAccountNumber: f.FromAccountNumber,
		ToAccountNumber:   f.ToAccountNumber,
		Amount:            amount,
		Description:       f.Description,
	}, nil
}

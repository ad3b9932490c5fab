package models

import "strings"

// MemberForm is the member registration form as posted by the browser.
type MemberForm struct {
	Name        string `form:"name" validate:"required,min=2"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phoneNumber" validate:"required,phone"`
}

// AccountForm keeps amounts as text so that a blank or malformed field comes
// back as a field message instead of a binding error.
type AccountForm struct {
	MemberID       string `form:"memberId" validate:"required,number,dmin=1"`
	InitialBalance string `form:"initialBalance" validate:"required,dmin=1000"`
}

type TransferForm struct {
	FromAccountNumber string `form:"fromAccountNumber" validate:"required"`
	ToAccountNumber   string `form:"toAccountNumber" validate:"required,nefield=FromAccountNumber"`
	Amount            string `form:"amount" validate:"required,dmin=1"`
	Description       string `form:"description" validate:"max=255"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
// Forms are trimmed before they are validated.
func (f MemberForm) Trimmed() MemberForm {
	return MemberForm{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
	}
}

func (f AccountForm) Trimmed() AccountForm {
	return AccountForm{
		MemberID:       strings.TrimSpace(f.MemberID),
		InitialBalance: strings.TrimSpace(f.InitialBalance),
	}
}

func (f TransferForm) Trimmed() TransferForm {
	return TransferForm{
		FromAccountNumber: strings.TrimSpace(f.FromAccountNumber),
		ToAccountNumber:   strings.TrimSpace(f.ToAccountNumber),
		Amount:            strings.TrimSpace(f.Amount),
		Description:       strings.TrimSpace(f.Description),
	}
}

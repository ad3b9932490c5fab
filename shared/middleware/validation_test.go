package middleware

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/eaglebank/console/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateForm_Member(t *testing.T) {
	tests := []struct {
		name       string
		form       models.MemberForm
		wantFields []string
	}{
		{
			name: "valid",
			form: models.MemberForm{Name: gofakeit.Name(), Email: gofakeit.Email(), PhoneNumber: "010-1234-5678"},
		},
		{
			name:       "name too short",
			form:       models.MemberForm{Name: "K", Email: "kim@example.com", PhoneNumber: "010-1234-5678"},
			wantFields: []string{"name"},
		},
		{
			name:       "bad email and phone",
			form:       models.MemberForm{Name: "Kim", Email: "not-an-email", PhoneNumber: "01012345678"},
			wantFields: []string{"email", "phoneNumber"},
		},
		{
			name:       "all empty",
			form:       models.MemberForm{},
			wantFields: []string{"name", "email", "phoneNumber"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateForm(&tt.form)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestValidateForm_MemberMessages(t *testing.T) {
	errs := ValidateForm(&models.MemberForm{Name: "K", Email: "x", PhoneNumber: "123"})

	assert.Equal(t, "Name must be at least 2 characters", errs["name"])
	assert.Equal(t, "Enter a valid email address", errs["email"])
	assert.Equal(t, "Use the 000-0000-0000 format", errs["phoneNumber"])
}

func TestValidateForm_Account(t *testing.T) {
	tests := []struct {
		name    string
		form    models.AccountForm
		wantErr map[string]string
	}{
		{name: "valid", form: models.AccountForm{MemberID: "3", InitialBalance: "1000"}},
		{name: "valid decimal balance", form: models.AccountForm{MemberID: "3", InitialBalance: "2500.50"}},
		{
			name:    "no member selected",
			form:    models.AccountForm{MemberID: "0", InitialBalance: "5000"},
			wantErr: map[string]string{"memberId": "Select a member"},
		},
		{
			name:    "blank member",
			form:    models.AccountForm{InitialBalance: "5000"},
			wantErr: map[string]string{"memberId": "Select a member"},
		},
		{
			name:    "balance below minimum",
			form:    models.AccountForm{MemberID: "1", InitialBalance: "999"},
			wantErr: map[string]string{"initialBalance": "Initial balance must be at least 1,000"},
		},
		{
			name:    "balance not a number",
			form:    models.AccountForm{MemberID: "1", InitialBalance: "lots"},
			wantErr: map[string]string{"initialBalance": "Initial balance must be at least 1,000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateForm(&tt.form)
			if tt.wantErr == nil {
				assert.Nil(t, errs)
				return
			}
			assert.Equal(t, FieldErrors(tt.wantErr), errs)
		})
	}
}

func TestValidateForm_Transfer(t *testing.T) {
	tests := []struct {
		name       string
		form       models.TransferForm
		wantFields []string
	}{
		{
			name: "valid without description",
			form: models.TransferForm{FromAccountNumber: "1001", ToAccountNumber: "1002", Amount: "1"},
		},
		{
			name:       "same account",
			form:       models.TransferForm{FromAccountNumber: "1001", ToAccountNumber: "1001", Amount: "10"},
			wantFields: []string{"toAccountNumber"},
		},
		{
			name:       "amount below one",
			form:       models.TransferForm{FromAccountNumber: "1001", ToAccountNumber: "1002", Amount: "0.5"},
			wantFields: []string{"amount"},
		},
		{
			name:       "missing accounts",
			form:       models.TransferForm{Amount: "10"},
			wantFields: []string{"fromAccountNumber", "toAccountNumber"},
		},
		{
			name: "description too long",
			form: models.TransferForm{
				FromAccountNumber: "1001", ToAccountNumber: "1002", Amount: "10",
				Description: strings.Repeat("x", 256),
			},
			wantFields: []string{"description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateForm(&tt.form)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestValidateRequest_ReportsTag(t *testing.T) {
	errs := ValidateRequest(&models.TransferForm{FromAccountNumber: "1", ToAccountNumber: "1", Amount: "5"})

	if assert.Len(t, errs, 1) {
		assert.Equal(t, "toAccountNumber", errs[0].Field)
		assert.Equal(t, "nefield", errs[0].Type)
	}
}

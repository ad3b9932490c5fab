package store

import "github.com/eaglebank/console/shared/models"

type AccountStore struct {
	*Collection[models.Account]
}

func NewAccountStore() *AccountStore {
	return &AccountStore{Collection: NewCollection(func(a models.Account) string {
		return a.AccountNumber
	})}
}

func (s *AccountStore) SetAccounts(accounts []models.Account) { s.Set(accounts) }

func (s *AccountStore) AddAccount(account models.Account) { s.Add(account) }

func (s *AccountStore) Accounts() []models.Account { return s.Items() }

func (s *AccountStore) SetSelectedAccount(account *models.Account) { s.SetSelected(account) }

func (s *AccountStore) AccountByNumber(accountNumber string) (models.Account, bool) {
	return s.Lookup(accountNumber)
}

package service

import (
	"context"
	"net/url"

	"github.com/eaglebank/console/shared/models"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	api Requester
}

func NewAccountService(api Requester) *AccountService {
	return &AccountService{api: api}
}

func (s *AccountService) List(ctx context.Context) (*models.Envelope[[]models.Account], error) {
	return get[[]models.Account](ctx, s.api, "/accounts", nil)
}

func (s *AccountService) GetByNumber(ctx context.Context, accountNumber string) (*models.Envelope[models.Account], error) {
	return get[models.Account](ctx, s.api, "/accounts/number/"+url.PathEscape(accountNumber), nil)
}

func (s *AccountService) Count(ctx context.Context) (*models.Envelope[int64], error) {
	return get[int64](ctx, s.api, "/accounts/count", nil)
}

func (s *AccountService) TotalBalance(ctx context.Context) (*models.Envelope[decimal.Decimal], error) {
	return get[decimal.Decimal](ctx, s.api, "/accounts/total-balance", nil)
}

func (s *AccountService) Create(ctx context.Context, req models.AccountCreateRequest) (*models.Envelope[models.Account], error) {
	return post[models.Account](ctx, s.api, "/accounts", req)
}

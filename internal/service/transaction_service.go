package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/eaglebank/console/shared/models"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 20
)

type TransactionService struct {
	api Requester
}

func NewTransactionService(api Requester) *TransactionService {
	return &TransactionService{api: api}
}

func (s *TransactionService) Transfer(ctx context.Context, req models.TransferRequest) (*models.Envelope[models.Transaction], error) {
	return post[models.Transaction](ctx, s.api, "/accounts/transfer", req)
}

// ListByAccount fetches one page of an account's history. page and size are
// sent as given.
func (s *TransactionService) ListByAccount(ctx context.Context, accountNumber string, page, size int) (*models.Envelope[models.Page[models.Transaction]], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return get[models.Page[models.Transaction]](ctx, s.api, "/accounts/"+url.PathEscape(accountNumber)+"/transactions", query)
}

func (s *TransactionService) Count(ctx context.Context) (*models.Envelope[int64], error) {
	return get[int64](ctx, s.api, "/accounts/transactions/count", nil)
}

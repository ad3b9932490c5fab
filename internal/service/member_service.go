package service

import (
	"context"
	"strconv"

	"github.com/eaglebank/console/shared/models"
)

type MemberService struct {
	api Requester
}

func NewMemberService(api Requester) *MemberService {
	return &MemberService{api: api}
}

func (s *MemberService) List(ctx context.Context) (*models.Envelope[[]models.Member], error) {
	return get[[]models.Member](ctx, s.api, "/members", nil)
}

func (s *MemberService) GetByID(ctx context.Context, id int64) (*models.Envelope[models.Member], error) {
	return get[models.Member](ctx, s.api, "/members/"+strconv.FormatInt(id, 10), nil)
}

func (s *MemberService) Count(ctx context.Context) (*models.Envelope[int64], error) {
	return get[int64](ctx, s.api, "/members/count", nil)
}

func (s *MemberService) Create(ctx context.Context, req models.MemberCreateRequest) (*models.Envelope[models.Member], error) {
	return post[models.Member](ctx, s.api, "/members", req)
}

// ListAccounts returns the accounts owned by one member.
func (s *MemberService) ListAccounts(ctx context.Context, id int64) (*models.Envelope[[]models.Account], error) {
	return get[[]models.Account](ctx, s.api, "/members/"+strconv.FormatInt(id, 10)+"/accounts", nil)
}

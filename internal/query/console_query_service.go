package query

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/eaglebank/console/internal/notify"
	"github.com/eaglebank/console/internal/service"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/shared/cqrs"
	"github.com/eaglebank/console/shared/events"
	"github.com/eaglebank/console/shared/models"
	"github.com/eaglebank/console/shared/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fixed operator-facing messages, one per read operation.
const (
	MsgLoadMembersFailed     = "Failed to load members."
	MsgLoadAccountsFailed    = "Failed to load accounts."
	MsgLoadHistoryFailed     = "Failed to load transaction history."
	MsgAccountNumberRequired = "Enter an account number."
	MsgLoadMemberFailed      = "Failed to load member."
	MsgLoadAccountFailed     = "Failed to load account."
)

// Dashboard stat names, as listed in DashboardStats.Failed.
const (
	StatMembers      = "members"
	StatAccounts     = "accounts"
	StatTransactions = "transactions"
	StatTotalBalance = "totalBalance"
)

const RecentActivityLimit = 10

var ErrAccountNumberRequired = errors.New("account number is required")

type MemberReader interface {
	List(ctx context.Context) (*models.Envelope[[]models.Member], error)
	GetByID(ctx context.Context, id int64) (*models.Envelope[models.Member], error)
	Count(ctx context.Context) (*models.Envelope[int64], error)
	ListAccounts(ctx context.Context, id int64) (*models.Envelope[[]models.Account], error)
}

type AccountReader interface {
	List(ctx context.Context) (*models.Envelope[[]models.Account], error)
	GetByNumber(ctx context.Context, accountNumber string) (*models.Envelope[models.Account], error)
	Count(ctx context.Context) (*models.Envelope[int64], error)
	TotalBalance(ctx context.Context) (*models.Envelope[decimal.Decimal], error)
}

type TransactionReader interface {
	ListByAccount(ctx context.Context, accountNumber string, page, size int) (*models.Envelope[models.Page[models.Transaction]], error)
	Count(ctx context.Context) (*models.Envelope[int64], error)
}

// ConsoleQueryService runs every read a page needs and writes the results
// into the session's stores.
type ConsoleQueryService struct {
	members      MemberReader
	accounts     AccountReader
	transactions TransactionReader
	notifier     notify.Notifier
	feed         events.Feed
	logger       *zap.Logger
}

func NewConsoleQueryService(
	members MemberReader,
	accounts AccountReader,
	transactions TransactionReader,
	notifier notify.Notifier,
	feed events.Feed,
	logger *zap.Logger,
) *ConsoleQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleQueryService{
		members:      members,
		accounts:     accounts,
		transactions: transactions,
		notifier:     notifier,
		feed:         feed,
		logger:       logger,
	}
}

// LoadMembers refreshes the member store. On failure the store keeps its
// previous contents and carries the error message.
func (s *ConsoleQueryService) LoadMembers(ctx context.Context, sess *store.Session) error {
	return load(ctx, s, sess, sess.Members.Collection, MsgLoadMembersFailed, func(ctx context.Context) ([]models.Member, error) {
		env, err := s.members.List(ctx)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	})
}

func (s *ConsoleQueryService) LoadAccounts(ctx context.Context, sess *store.Session) error {
	return load(ctx, s, sess, sess.Accounts.Collection, MsgLoadAccountsFailed, func(ctx context.Context) ([]models.Account, error) {
		env, err := s.accounts.List(ctx)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	})
}

// load is the list-view entry sequence shared by every collection.
func load[T any](
	ctx context.Context,
	s *ConsoleQueryService,
	sess *store.Session,
	c *store.Collection[T],
	failure string,
	fetch func(context.Context) ([]T, error),
) error {
	token := c.BeginLoad()
	c.SetLoading(true)
	defer func() {
		if c.IsLatest(token) {
			c.SetLoading(false)
		}
	}()

	items, err := fetch(ctx)
	if err != nil {
		if c.IsLatest(token) {
			c.SetError(failure)
			notify.Error(ctx, s.notifier, sess.ID, failure)
		}
		return err
	}
	if c.Apply(token, items) {
		c.ClearError()
	} else {
		s.logger.Debug("discarded superseded load", zap.String("session_id", sess.ID))
	}
	return nil
}

// MembersPage is the list-view entry of the members page. A list that a
// create just extended is shown as it is.
func (s *ConsoleQueryService) MembersPage(ctx context.Context, sess *store.Session) error {
	if sess.Members.ConsumeFresh() {
		return nil
	}
	return s.LoadMembers(ctx, sess)
}

// AccountsPage loads accounts and, for the owner selector, members. Both run
// concurrently; only the account load reports failure to the operator.
func (s *ConsoleQueryService) AccountsPage(ctx context.Context, sess *store.Session) error {
	var g errgroup.Group
	g.Go(func() error {
		if sess.Accounts.ConsumeFresh() {
			return nil
		}
		return s.LoadAccounts(ctx, sess)
	})
	g.Go(func() error {
		s.loadMembersQuietly(ctx, sess)
		return nil
	})
	return g.Wait()
}

func (s *ConsoleQueryService) loadMembersQuietly(ctx context.Context, sess *store.Session) {
	c := sess.Members
	token := c.BeginLoad()
	env, err := s.members.List(ctx)
	if err != nil {
		s.logger.Warn("member list for account form failed", zap.String("session_id", sess.ID), zap.Error(err))
		return
	}
	c.Apply(token, env.Data)
}

// TransactionsPage loads the accounts offered by the transfer form, unless
// a transfer has just reloaded them. A failure surfaces as the page banner.
func (s *ConsoleQueryService) TransactionsPage(ctx context.Context, sess *store.Session) error {
	if sess.Accounts.ConsumeFresh() {
		return nil
	}
	if err := s.LoadAccounts(ctx, sess); err != nil {
		sess.SetPageError(store.PageTransactions, MsgLoadAccountsFailed)
		return err
	}
	return nil
}

// Reload refetches a resource a mutation has made stale.
func (s *ConsoleQueryService) Reload(ctx context.Context, sess *store.Session, r store.Resource) error {
	switch r {
	case store.ResourceMembers:
		return s.LoadMembers(ctx, sess)
	case store.ResourceAccounts:
		return s.LoadAccounts(ctx, sess)
	}
	return fmt.Errorf("unknown resource %q", r)
}

// SearchHistory replaces the session's history with page q.Page of the
// account's transactions. A blank account number never reaches the backend.
func (s *ConsoleQueryService) SearchHistory(ctx context.Context, sess *store.Session, q cqrs.SearchTransactionsQuery) error {
	accountNumber := utils.NormalizeAccountNumber(q.AccountNumber)
	if accountNumber == "" {
		sess.SetPageError(store.PageTransactions, MsgAccountNumberRequired)
		return ErrAccountNumberRequired
	}
	if q.Size <= 0 {
		q.Size = service.DefaultPageSize
	}
	sess.SetHistoryQuery(store.HistoryQuery{AccountNumber: accountNumber, Page: q.Page, Searched: true})

	err := load(ctx, s, sess, sess.History, MsgLoadHistoryFailed, func(ctx context.Context) ([]models.Transaction, error) {
		env, err := s.transactions.ListByAccount(ctx, accountNumber, q.Page, q.Size)
		if err != nil {
			return nil, err
		}
		return env.Data.Items(), nil
	})
	if err != nil {
		sess.SetPageError(store.PageTransactions, MsgLoadHistoryFailed)
		return err
	}
	sess.ClearPageError(store.PageTransactions)
	return nil
}

// DashboardView is everything the dashboard renders.
type DashboardView struct {
	Stats          models.DashboardStats
	Activity       []events.Event
	ActivityFailed bool
}

// Dashboard fetches the four aggregates concurrently. Each one fails on its
// own; a failed stat is named in Stats.Failed and the rest still render.
func (s *ConsoleQueryService) Dashboard(ctx context.Context) DashboardView {
	var (
		view DashboardView
		mu   sync.Mutex
	)
	fail := func(name string, err error) {
		s.logger.Warn("dashboard stat failed", zap.String("stat", name), zap.Error(err))
		mu.Lock()
		defer mu.Unlock()
		view.Stats.Failed = append(view.Stats.Failed, name)
	}

	var g errgroup.Group
	g.Go(func() error {
		env, err := s.members.Count(ctx)
		if err != nil {
			fail(StatMembers, err)
			return nil
		}
		view.Stats.MemberCount = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.accounts.Count(ctx)
		if err != nil {
			fail(StatAccounts, err)
			return nil
		}
		view.Stats.AccountCount = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.transactions.Count(ctx)
		if err != nil {
			fail(StatTransactions, err)
			return nil
		}
		view.Stats.TransactionCount = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.accounts.TotalBalance(ctx)
		if err != nil {
			fail(StatTotalBalance, err)
			return nil
		}
		view.Stats.TotalBalance = env.Data
		return nil
	})
	g.Go(func() error {
		if s.feed == nil {
			return nil
		}
		activity, err := s.feed.Recent(ctx, RecentActivityLimit)
		if err != nil {
			s.logger.Warn("recent activity failed", zap.Error(err))
			view.ActivityFailed = true
			return nil
		}
		view.Activity = activity
		return nil
	})
	_ = g.Wait()
	return view
}

// MemberDetail is a member with the accounts it owns.
type MemberDetail struct {
	Member   models.Member
	Accounts []models.Account
}

func (s *ConsoleQueryService) MemberDetail(ctx context.Context, q cqrs.GetMemberQuery) (*MemberDetail, error) {
	var detail MemberDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := s.members.GetByID(gctx, q.MemberID)
		if err != nil {
			return err
		}
		detail.Member = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.members.ListAccounts(gctx, q.MemberID)
		if err != nil {
			return err
		}
		detail.Accounts = env.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if detail.Accounts == nil {
		detail.Accounts = []models.Account{}
	}
	return &detail, nil
}

// AccountDetail is an account with the first page of its history.
type AccountDetail struct {
	Account models.Account
	History models.Page[models.Transaction]
}

func (s *ConsoleQueryService) AccountDetail(ctx context.Context, q cqrs.GetAccountQuery) (*AccountDetail, error) {
	var detail AccountDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := s.accounts.GetByNumber(gctx, q.AccountNumber)
		if err != nil {
			return err
		}
		detail.Account = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.transactions.ListByAccount(gctx, q.AccountNumber, service.DefaultPage, service.DefaultPageSize)
		if err != nil {
			return err
		}
		detail.History = env.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	detail.History.Content = detail.History.Items()
	return &detail, nil
}

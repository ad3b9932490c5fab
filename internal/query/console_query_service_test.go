package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/eaglebank/console/internal/notify"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/shared/cqrs"
	"github.com/eaglebank/console/shared/events"
	"github.com/eaglebank/console/shared/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- mock implementations ----

type mockMembers struct {
	listFn     func(context.Context) (*models.Envelope[[]models.Member], error)
	getFn      func(context.Context, int64) (*models.Envelope[models.Member], error)
	countFn    func(context.Context) (*models.Envelope[int64], error)
	accountsFn func(context.Context, int64) (*models.Envelope[[]models.Account], error)
}

func (m *mockMembers) List(ctx context.Context) (*models.Envelope[[]models.Member], error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockMembers) GetByID(ctx context.Context, id int64) (*models.Envelope[models.Member], error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockMembers) Count(ctx context.Context) (*models.Envelope[int64], error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockMembers) ListAccounts(ctx context.Context, id int64) (*models.Envelope[[]models.Account], error) {
	if m.accountsFn != nil {
		return m.accountsFn(ctx, id)
	}
	return nil, fmt.Errorf("not configured")
}

type mockAccounts struct {
	listFn  func(context.Context) (*models.Envelope[[]models.Account], error)
	getFn   func(context.Context, string) (*models.Envelope[models.Account], error)
	countFn func(context.Context) (*models.Envelope[int64], error)
	totalFn func(context.Context) (*models.Envelope[decimal.Decimal], error)
}

func (m *mockAccounts) List(ctx context.Context) (*models.Envelope[[]models.Account], error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccounts) GetByNumber(ctx context.Context, n string) (*models.Envelope[models.Account], error) {
	if m.getFn != nil {
		return m.getFn(ctx, n)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccounts) Count(ctx context.Context) (*models.Envelope[int64], error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccounts) TotalBalance(ctx context.Context) (*models.Envelope[decimal.Decimal], error) {
	if m.totalFn != nil {
		return m.totalFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

type mockTransactions struct {
	listFn  func(context.Context, string, int, int) (*models.Envelope[models.Page[models.Transaction]], error)
	countFn func(context.Context) (*models.Envelope[int64], error)
}

func (m *mockTransactions) ListByAccount(ctx context.Context, n string, page, size int) (*models.Envelope[models.Page[models.Transaction]], error) {
	if m.listFn != nil {
		return m.listFn(ctx, n, page, size)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockTransactions) Count(ctx context.Context) (*models.Envelope[int64], error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

var errBackend = errors.New("backend unavailable")

func ok[T any](data T) *models.Envelope[T] {
	return &models.Envelope[T]{Success: true, Data: data}
}

type fixture struct {
	members      *mockMembers
	accounts     *mockAccounts
	transactions *mockTransactions
	notifier     *notify.MemoryNotifier
	feed         *events.MemoryFeed
	svc          *ConsoleQueryService
	sess         *store.Session
}

func newFixture() *fixture {
	f := &fixture{
		members:      &mockMembers{},
		accounts:     &mockAccounts{},
		transactions: &mockTransactions{},
		notifier:     notify.NewMemoryNotifier(),
		feed:         events.NewMemoryFeed(0),
		sess:         store.NewSession("sess-1"),
	}
	f.svc = NewConsoleQueryService(f.members, f.accounts, f.transactions, f.notifier, f.feed, nil)
	return f
}

func (f *fixture) drain() []models.Notification {
	return f.notifier.Drain(context.Background(), f.sess.ID)
}

var (
	testMembers  = []models.Member{{ID: 1, Name: "Kim"}, {ID: 2, Name: "Lee"}}
	testAccounts = []models.Account{
		{ID: 1, AccountNumber: "1001", OwnerName: "Kim", Balance: decimal.NewFromInt(50000), Status: models.AccountActive},
		{ID: 2, AccountNumber: "1002", OwnerName: "Lee", Balance: decimal.NewFromInt(1000), Status: models.AccountActive},
	}
)

// ---- tests ----

func TestLoadMembers(t *testing.T) {
	tests := []struct {
		name      string
		listFn    func(context.Context) (*models.Envelope[[]models.Member], error)
		wantErr   bool
		wantItems []models.Member
		wantMsg   string
	}{
		{
			name:      "success replaces collection and clears error",
			listFn:    func(context.Context) (*models.Envelope[[]models.Member], error) { return ok(testMembers), nil },
			wantItems: testMembers,
		},
		{
			name:      "failure keeps previous collection",
			listFn:    func(context.Context) (*models.Envelope[[]models.Member], error) { return nil, errBackend },
			wantErr:   true,
			wantItems: []models.Member{{ID: 99}},
			wantMsg:   MsgLoadMembersFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.sess.Members.SetMembers([]models.Member{{ID: 99}})
			f.sess.Members.SetError("old error")
			f.members.listFn = tt.listFn

			err := f.svc.LoadMembers(context.Background(), f.sess)

			assert.Equal(t, tt.wantErr, err != nil)
			snap := f.sess.Members.Snapshot()
			assert.Equal(t, tt.wantItems, snap.Items)
			assert.False(t, snap.Loading, "loading always reset")
			assert.Equal(t, tt.wantMsg, snap.Error)

			toasts := f.drain()
			if tt.wantErr {
				require.Len(t, toasts, 1)
				assert.Equal(t, notify.LevelError, toasts[0].Level)
				assert.Equal(t, MsgLoadMembersFailed, toasts[0].Message)
			} else {
				assert.Empty(t, toasts)
			}
		})
	}
}

func TestLoadMembers_LoadingDuringFetch(t *testing.T) {
	f := newFixture()
	f.members.listFn = func(context.Context) (*models.Envelope[[]models.Member], error) {
		assert.True(t, f.sess.Members.Loading())
		return ok(testMembers), nil
	}

	require.NoError(t, f.svc.LoadMembers(context.Background(), f.sess))
	assert.False(t, f.sess.Members.Loading())
}

func TestLoadAccounts_IsIdempotent(t *testing.T) {
	f := newFixture()
	f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) { return ok(testAccounts), nil }

	require.NoError(t, f.svc.LoadAccounts(context.Background(), f.sess))
	first := f.sess.Accounts.Snapshot()
	require.NoError(t, f.svc.LoadAccounts(context.Background(), f.sess))

	assert.Equal(t, first, f.sess.Accounts.Snapshot())
}

func TestLoadAccounts_SupersededResponseDiscarded(t *testing.T) {
	f := newFixture()
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int32
	f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return ok([]models.Account{{AccountNumber: "stale"}}), nil
		}
		return ok([]models.Account{{AccountNumber: "fresh"}}), nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.svc.LoadAccounts(context.Background(), f.sess)
	}()
	<-started

	require.NoError(t, f.svc.LoadAccounts(context.Background(), f.sess))
	close(release)
	wg.Wait()

	got := f.sess.Accounts.Accounts()
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].AccountNumber)
	assert.False(t, f.sess.Accounts.Loading())
}

func TestAccountsPage(t *testing.T) {
	t.Run("member failure is silent", func(t *testing.T) {
		f := newFixture()
		f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) { return ok(testAccounts), nil }
		f.members.listFn = func(context.Context) (*models.Envelope[[]models.Member], error) { return nil, errBackend }

		require.NoError(t, f.svc.AccountsPage(context.Background(), f.sess))

		assert.Len(t, f.sess.Accounts.Accounts(), 2)
		assert.Empty(t, f.sess.Members.ErrorMessage())
		assert.Empty(t, f.drain())
	})

	t.Run("loads both", func(t *testing.T) {
		f := newFixture()
		f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) { return ok(testAccounts), nil }
		f.members.listFn = func(context.Context) (*models.Envelope[[]models.Member], error) { return ok(testMembers), nil }

		require.NoError(t, f.svc.AccountsPage(context.Background(), f.sess))
		assert.Len(t, f.sess.Members.Members(), 2)
	})

	t.Run("account failure reported", func(t *testing.T) {
		f := newFixture()
		f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) { return nil, errBackend }
		f.members.listFn = func(context.Context) (*models.Envelope[[]models.Member], error) { return ok(testMembers), nil }

		assert.ErrorIs(t, f.svc.AccountsPage(context.Background(), f.sess), errBackend)
		assert.Equal(t, MsgLoadAccountsFailed, f.sess.Accounts.ErrorMessage())
		assert.Len(t, f.drain(), 1)
	})
}

func TestListEntry_SkipsFetchWhenFresh(t *testing.T) {
	f := newFixture()
	var memberCalls, accountCalls int
	f.members.listFn = func(context.Context) (*models.Envelope[[]models.Member], error) {
		memberCalls++
		return ok(testMembers), nil
	}
	f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) {
		accountCalls++
		return ok(testAccounts), nil
	}
	ctx := context.Background()

	require.NoError(t, f.svc.MembersPage(ctx, f.sess))
	f.sess.Members.MarkFresh()
	require.NoError(t, f.svc.MembersPage(ctx, f.sess))
	assert.Equal(t, 1, memberCalls, "fresh list is not refetched")
	require.NoError(t, f.svc.MembersPage(ctx, f.sess))
	assert.Equal(t, 2, memberCalls, "the mark is used once")

	require.NoError(t, f.svc.TransactionsPage(ctx, f.sess))
	f.sess.Accounts.MarkFresh()
	require.NoError(t, f.svc.TransactionsPage(ctx, f.sess))
	assert.Equal(t, 1, accountCalls)

	f.sess.Accounts.MarkFresh()
	require.NoError(t, f.svc.AccountsPage(ctx, f.sess))
	assert.Equal(t, 1, accountCalls)
	assert.Equal(t, 3, memberCalls, "member options still load")
}

func TestListEntry_StaleAlwaysFetches(t *testing.T) {
	f := newFixture()
	calls := 0
	f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) {
		calls++
		return ok(testAccounts), nil
	}
	f.sess.Accounts.SetAccounts(nil)
	f.sess.Accounts.MarkFresh()
	f.sess.Accounts.MarkStale()

	require.NoError(t, f.svc.TransactionsPage(context.Background(), f.sess))
	assert.Equal(t, 1, calls)
	assert.False(t, f.sess.Accounts.Stale())
}

func TestTransactionsPage_FailureSetsBanner(t *testing.T) {
	f := newFixture()
	f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) { return nil, errBackend }

	assert.Error(t, f.svc.TransactionsPage(context.Background(), f.sess))
	assert.Equal(t, MsgLoadAccountsFailed, f.sess.Page(store.PageTransactions).Error)
}

func TestReload(t *testing.T) {
	f := newFixture()
	var accountLoads int
	f.accounts.listFn = func(context.Context) (*models.Envelope[[]models.Account], error) {
		accountLoads++
		return ok(testAccounts), nil
	}
	f.members.listFn = func(context.Context) (*models.Envelope[[]models.Member], error) { return ok(testMembers), nil }

	require.NoError(t, f.svc.Reload(context.Background(), f.sess, store.ResourceAccounts))
	require.NoError(t, f.svc.Reload(context.Background(), f.sess, store.ResourceMembers))
	assert.Equal(t, 1, accountLoads)
	assert.Error(t, f.svc.Reload(context.Background(), f.sess, store.Resource("ledgers")))
}

func TestSearchHistory_BlankAccountNumber(t *testing.T) {
	f := newFixture()
	f.transactions.listFn = func(context.Context, string, int, int) (*models.Envelope[models.Page[models.Transaction]], error) {
		t.Fatal("no request expected")
		return nil, nil
	}

	err := f.svc.SearchHistory(context.Background(), f.sess, cqrs.SearchTransactionsQuery{AccountNumber: "   "})

	assert.ErrorIs(t, err, ErrAccountNumberRequired)
	assert.Equal(t, MsgAccountNumberRequired, f.sess.Page(store.PageTransactions).Error)
	assert.False(t, f.sess.HistoryQuery().Searched)
}

func TestSearchHistory_EmptyIsNotAnError(t *testing.T) {
	f := newFixture()
	f.sess.SetPageError(store.PageTransactions, "previous")
	f.transactions.listFn = func(_ context.Context, n string, page, size int) (*models.Envelope[models.Page[models.Transaction]], error) {
		assert.Equal(t, "1001", n)
		assert.Equal(t, 0, page)
		assert.Equal(t, 20, size)
		return ok(models.Page[models.Transaction]{}), nil
	}

	err := f.svc.SearchHistory(context.Background(), f.sess, cqrs.SearchTransactionsQuery{AccountNumber: " 1001 "})

	require.NoError(t, err)
	snap := f.sess.History.Snapshot()
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Error)
	assert.Empty(t, f.sess.Page(store.PageTransactions).Error)
	assert.Equal(t, store.HistoryQuery{AccountNumber: "1001", Searched: true}, f.sess.HistoryQuery())
}

func TestSearchHistory_ReplacesHistory(t *testing.T) {
	f := newFixture()
	f.sess.History.Set([]models.Transaction{{ID: 1}, {ID: 2}})
	f.transactions.listFn = func(_ context.Context, _ string, page, size int) (*models.Envelope[models.Page[models.Transaction]], error) {
		assert.Equal(t, 2, page)
		assert.Equal(t, 50, size)
		return ok(models.Page[models.Transaction]{Content: []models.Transaction{{ID: 7}}}), nil
	}

	require.NoError(t, f.svc.SearchHistory(context.Background(), f.sess, cqrs.SearchTransactionsQuery{AccountNumber: "1001", Page: 2, Size: 50}))

	got := f.sess.History.Items()
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
}

func TestSearchHistory_Failure(t *testing.T) {
	f := newFixture()
	f.transactions.listFn = func(context.Context, string, int, int) (*models.Envelope[models.Page[models.Transaction]], error) {
		return nil, errBackend
	}

	err := f.svc.SearchHistory(context.Background(), f.sess, cqrs.SearchTransactionsQuery{AccountNumber: "1001"})

	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, MsgLoadHistoryFailed, f.sess.Page(store.PageTransactions).Error)
	assert.Equal(t, MsgLoadHistoryFailed, f.sess.History.ErrorMessage())
	assert.False(t, f.sess.History.Loading())
}

func TestDashboard(t *testing.T) {
	f := newFixture()
	f.members.countFn = func(context.Context) (*models.Envelope[int64], error) { return ok(int64(12)), nil }
	f.accounts.countFn = func(context.Context) (*models.Envelope[int64], error) { return nil, errBackend }
	f.transactions.countFn = func(context.Context) (*models.Envelope[int64], error) { return ok(int64(340)), nil }
	f.accounts.totalFn = func(context.Context) (*models.Envelope[decimal.Decimal], error) {
		return ok(decimal.RequireFromString("98765432.10")), nil
	}
	for i := 0; i < 12; i++ {
		require.NoError(t, f.feed.Publish(context.Background(), events.MemberCreated, fmt.Sprintf("event %d", i), nil))
	}

	view := f.svc.Dashboard(context.Background())

	assert.Equal(t, int64(12), view.Stats.MemberCount)
	assert.Equal(t, int64(340), view.Stats.TransactionCount)
	assert.Equal(t, "98765432.1", view.Stats.TotalBalance.String())
	assert.Equal(t, []string{StatAccounts}, view.Stats.Failed)
	assert.True(t, view.Stats.HasFailed(StatAccounts))
	assert.False(t, view.Stats.HasFailed(StatMembers))
	require.Len(t, view.Activity, RecentActivityLimit)
	assert.Equal(t, "event 11", view.Activity[0].Summary)
	assert.False(t, view.ActivityFailed)
}

func TestDashboard_AllFail(t *testing.T) {
	f := newFixture()

	view := f.svc.Dashboard(context.Background())

	assert.ElementsMatch(t, []string{StatMembers, StatAccounts, StatTransactions, StatTotalBalance}, view.Stats.Failed)
	assert.Empty(t, view.Activity)
}

func TestMemberDetail(t *testing.T) {
	f := newFixture()
	f.members.getFn = func(_ context.Context, id int64) (*models.Envelope[models.Member], error) {
		return ok(models.Member{ID: id, Name: "Kim"}), nil
	}
	f.members.accountsFn = func(context.Context, int64) (*models.Envelope[[]models.Account], error) {
		return ok[[]models.Account](nil), nil
	}

	detail, err := f.svc.MemberDetail(context.Background(), cqrs.GetMemberQuery{MemberID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.Member.ID)
	assert.NotNil(t, detail.Accounts)

	f.members.accountsFn = func(context.Context, int64) (*models.Envelope[[]models.Account], error) { return nil, errBackend }
	_, err = f.svc.MemberDetail(context.Background(), cqrs.GetMemberQuery{MemberID: 3})
	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, f.sess.Members.Members(), "detail views do not touch the stores")
}

func TestAccountDetail(t *testing.T) {
	f := newFixture()
	f.accounts.getFn = func(_ context.Context, n string) (*models.Envelope[models.Account], error) {
		return ok(models.Account{AccountNumber: n}), nil
	}
	f.transactions.listFn = func(context.Context, string, int, int) (*models.Envelope[models.Page[models.Transaction]], error) {
		return ok(models.Page[models.Transaction]{Content: []models.Transaction{{ID: 1}}, TotalElements: 1}), nil
	}

	detail, err := f.svc.AccountDetail(context.Background(), cqrs.GetAccountQuery{AccountNumber: "1001"})
	require.NoError(t, err)
	assert.Equal(t, "1001", detail.Account.AccountNumber)
	assert.Len(t, detail.History.Content, 1)

	f.accounts.getFn = func(context.Context, string) (*models.Envelope[models.Account], error) { return nil, errBackend }
	_, err = f.svc.AccountDetail(context.Background(), cqrs.GetAccountQuery{AccountNumber: "1001"})
	assert.Error(t, err)
}

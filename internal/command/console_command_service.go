package command

import (
	"context"
	"fmt"

	"github.com/eaglebank/console/internal/notify"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/shared/cqrs"
	"github.com/eaglebank/console/shared/events"
	"github.com/eaglebank/console/shared/models"
	"github.com/eaglebank/console/shared/utils"
	"go.uber.org/zap"
)

// Fixed operator-facing messages, one pair per write operation.
const (
	MsgCreateMemberFailed  = "Failed to create member."
	MsgMemberCreated       = "Member created."
	MsgCreateAccountFailed = "Failed to create account."
	MsgAccountOpened       = "Account opened."
	MsgTransferFailed      = "Transfer failed."
	MsgTransferCompleted   = "Transfer completed."
)

type MemberCreator interface {
	Create(ctx context.Context, req models.MemberCreateRequest) (*models.Envelope[models.Member], error)
}

type AccountCreator interface {
	Create(ctx context.Context, req models.AccountCreateRequest) (*models.Envelope[models.Account], error)
}

type Transferer interface {
	Transfer(ctx context.Context, req models.TransferRequest) (*models.Envelope[models.Transaction], error)
}

// Reloader refetches a resource a mutation made stale.
type Reloader interface {
	Reload(ctx context.Context, sess *store.Session, r store.Resource) error
}

// ConsoleCommandService submits forms to the backend and applies the
// outcome to the session: store update, view switch and notification.
type ConsoleCommandService struct {
	members      MemberCreator
	accounts     AccountCreator
	transactions Transferer
	reloader     Reloader
	notifier     notify.Notifier
	feed         events.Feed
	logger       *zap.Logger
}

func NewConsoleCommandService(
	members MemberCreator,
	accounts AccountCreator,
	transactions Transferer,
	reloader Reloader,
	notifier notify.Notifier,
	feed events.Feed,
	logger *zap.Logger,
) *ConsoleCommandService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandService{
		members:      members,
		accounts:     accounts,
		transactions: transactions,
		reloader:     reloader,
		notifier:     notifier,
		feed:         feed,
		logger:       logger,
	}
}

// CreateMember appends the created member to the store and returns the
// members page to list view. On failure the page stays on the form with the
// operator's input kept.
func (s *ConsoleCommandService) CreateMember(ctx context.Context, sess *store.Session, cmd cqrs.CreateMemberCommand) (*models.Member, error) {
	env, err := s.members.Create(ctx, models.MemberCreateRequest{
		Name:        cmd.Name,
		Email:       cmd.Email,
		PhoneNumber: cmd.PhoneNumber,
	})
	if err != nil {
		sess.SetMemberDraft(models.MemberForm{Name: cmd.Name, Email: cmd.Email, PhoneNumber: cmd.PhoneNumber})
		s.fail(ctx, sess, store.PageMembers, sess.Members, MsgCreateMemberFailed, false)
		return nil, err
	}

	member := env.Data
	sess.Members.AddMember(member)
	sess.Invalidate(store.MemberCreated)
	sess.Members.MarkFresh()
	sess.ResetMemberDraft()
	s.succeed(ctx, sess, store.PageMembers, sess.Members, MsgMemberCreated)

	s.publish(ctx, events.MemberCreated, fmt.Sprintf("Member %s registered", member.Name), events.MemberCreatedEvent{
		MemberID: member.ID,
		Name:     member.Name,
		Email:    member.Email,
	})
	return &member, nil
}

func (s *ConsoleCommandService) CreateAccount(ctx context.Context, sess *store.Session, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	env, err := s.accounts.Create(ctx, models.AccountCreateRequest{
		MemberID:       cmd.MemberID,
		InitialBalance: cmd.InitialBalance,
	})
	if err != nil {
		s.fail(ctx, sess, store.PageAccounts, sess.Accounts, MsgCreateAccountFailed, false)
		return nil, err
	}

	account := env.Data
	sess.Accounts.AddAccount(account)
	sess.Invalidate(store.AccountCreated)
	sess.Accounts.MarkFresh()
	s.succeed(ctx, sess, store.PageAccounts, sess.Accounts, MsgAccountOpened)

	owner := account.OwnerName
	if owner == "" {
		if m, ok := sess.Members.MemberByID(cmd.MemberID); ok {
			owner = m.Name
		}
	}
	s.publish(ctx, events.AccountCreated, fmt.Sprintf("Account %s opened for %s", account.AccountNumber, owner), events.AccountCreatedEvent{
		AccountNumber:  account.AccountNumber,
		OwnerName:      owner,
		InitialBalance: cmd.InitialBalance.String(),
	})
	return &account, nil
}

// Transfer moves money between two accounts. Balances are computed by the
// backend, so success reloads the account list instead of patching it; a
// failed transfer leaves the list as it was and the source account selected.
func (s *ConsoleCommandService) Transfer(ctx context.Context, sess *store.Session, cmd cqrs.TransferCommand) (*models.Transaction, error) {
	if from, ok := sess.Accounts.AccountByNumber(cmd.FromAccountNumber); ok {
		sess.Accounts.SetSelectedAccount(&from)
	}

	env, err := s.transactions.Transfer(ctx, models.TransferRequest{
		FromAccountNumber: cmd.FromAccountNumber,
		ToAccountNumber:   cmd.ToAccountNumber,
		Amount:            cmd.Amount,
		Description:       cmd.Description,
	})
	if err != nil {
		s.fail(ctx, sess, store.PageTransactions, sess.Accounts, MsgTransferFailed, true)
		return nil, err
	}

	tx := env.Data
	sess.Accounts.SetSelectedAccount(nil)
	s.succeed(ctx, sess, store.PageTransactions, sess.Accounts, MsgTransferCompleted)

	// A resource whose reload failed stays stale and is fetched again on the
	// next visit.
	for _, r := range sess.Invalidate(store.TransferCompleted) {
		if err := s.reloader.Reload(ctx, sess, r); err != nil {
			s.logger.Warn("reload after transfer failed",
				zap.String("session_id", sess.ID),
				zap.String("resource", string(r)),
				zap.Error(err),
			)
			continue
		}
		switch r {
		case store.ResourceMembers:
			sess.Members.MarkFresh()
		case store.ResourceAccounts:
			sess.Accounts.MarkFresh()
		}
	}

	s.publish(ctx, events.TransferCompleted,
		fmt.Sprintf("Transferred %s from %s to %s", utils.FormatAmount(cmd.Amount), cmd.FromAccountNumber, cmd.ToAccountNumber),
		events.TransferCompletedEvent{
			FromAccountNumber: cmd.FromAccountNumber,
			ToAccountNumber:   cmd.ToAccountNumber,
			Amount:            cmd.Amount.String(),
		})
	return &tx, nil
}

// Toggle flips a page between list and form view.
func (s *ConsoleCommandService) Toggle(sess *store.Session, cmd cqrs.TogglePageCommand) (store.Mode, error) {
	page, ok := store.ParsePage(cmd.Page)
	if !ok {
		return "", fmt.Errorf("unknown page %q", cmd.Page)
	}
	return sess.Toggle(page), nil
}

// errorFlag is the error state of a store collection.
type errorFlag interface {
	SetError(msg string)
	ClearError()
}

// fail keeps the page on its form, records msg on the store and, when
// banner is set, on the page as well.
func (s *ConsoleCommandService) fail(ctx context.Context, sess *store.Session, page store.Page, c errorFlag, msg string, banner bool) {
	sess.SetMode(page, store.ModeForm)
	c.SetError(msg)
	if banner {
		sess.SetPageError(page, msg)
	}
	notify.Error(ctx, s.notifier, sess.ID, msg)
}

func (s *ConsoleCommandService) succeed(ctx context.Context, sess *store.Session, page store.Page, c errorFlag, msg string) {
	sess.SetMode(page, store.ModeList)
	c.ClearError()
	sess.ClearPageError(page)
	notify.Success(ctx, s.notifier, sess.ID, msg)
}

// publish records activity. The mutation already happened, so a feed
// failure is only logged.
func (s *ConsoleCommandService) publish(ctx context.Context, eventType, summary string, data any) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, eventType, summary, data); err != nil {
		s.logger.Warn("failed to publish activity", zap.String("type", eventType), zap.Error(err))
	}
}

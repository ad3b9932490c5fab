package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/eaglebank/console/shared/models"
)

// Resource names a remote collection the console mirrors.
type Resource string

const (
	ResourceMembers  Resource = "members"
	ResourceAccounts Resource = "accounts"
)

// Mutation names a successful remote write.
type Mutation string

const (
	MemberCreated     Mutation = "member.created"
	AccountCreated    Mutation = "account.created"
	TransferCompleted Mutation = "transfer.completed"
)

// invalidationRules lists what each mutation makes stale. Creations are
// appended to the store directly; a transfer moves balances on two accounts
// the console cannot compute itself.
var invalidationRules = map[Mutation][]Resource{
	MemberCreated:     nil,
	AccountCreated:    nil,
	TransferCompleted: {ResourceAccounts},
}

type Page string

const (
	PageMembers      Page = "members"
	PageAccounts     Page = "accounts"
	PageTransactions Page = "transactions"
)

// ParsePage maps a route name to a Page.
func ParsePage(name string) (Page, bool) {
	switch p := Page(name); p {
	case PageMembers, PageAccounts, PageTransactions:
		return p, true
	}
	return "", false
}

type Mode string

const (
	ModeList Mode = "list"
	ModeForm Mode = "form"
)

// PageState is the view a page is showing and its banner error.
type PageState struct {
	Mode  Mode   `json:"mode"`
	Error string `json:"error,omitempty"`
}

// HistoryQuery is the last transaction-history search of a session.
type HistoryQuery struct {
	AccountNumber string `json:"accountNumber"`
	Page          int    `json:"page"`
	Searched      bool   `json:"searched"`
}

// Session is the client state of one browser.
type Session struct {
	ID       string
	Members  *MemberStore
	Accounts *AccountStore
	History  *Collection[models.Transaction]

	mu          sync.Mutex
	pages       map[Page]PageState
	memberDraft models.MemberForm
	history     HistoryQuery
	lastSeen    time.Time
}

func NewSession(id string) *Session {
	s := &Session{
		ID:       id,
		Members:  NewMemberStore(),
		Accounts: NewAccountStore(),
		History: NewCollection(func(tx models.Transaction) string {
			return strconv.FormatInt(tx.ID, 10)
		}),
	}
	s.resetLocked()
	return s
}

func (s *Session) Page(p Page) PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[p]
}

func (s *Session) SetMode(p Page, mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.pages[p]
	st.Mode = mode
	s.pages[p] = st
}

// Toggle flips p between list and form view and returns the new mode.
func (s *Session) Toggle(p Page) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.pages[p]
	if st.Mode == ModeForm {
		st.Mode = ModeList
	} else {
		st.Mode = ModeForm
	}
	s.pages[p] = st
	return st.Mode
}

func (s *Session) SetPageError(p Page, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.pages[p]
	st.Error = msg
	s.pages[p] = st
}

func (s *Session) ClearPageError(p Page) {
	s.SetPageError(p, "")
}

func (s *Session) MemberDraft() models.MemberForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberDraft
}

func (s *Session) SetMemberDraft(form models.MemberForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberDraft = form
}

func (s *Session) ResetMemberDraft() {
	s.SetMemberDraft(models.MemberForm{})
}

func (s *Session) HistoryQuery() HistoryQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

func (s *Session) SetHistoryQuery(q HistoryQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = q
}

// Invalidate marks the resources m makes stale and returns them so the
// caller can reload exactly those.
func (s *Session) Invalidate(m Mutation) []Resource {
	resources := invalidationRules[m]
	for _, r := range resources {
		switch r {
		case ResourceMembers:
			s.Members.MarkStale()
		case ResourceAccounts:
			s.Accounts.MarkStale()
		}
	}
	return append([]Resource(nil), resources...)
}

// Reset returns the session to its initial state: empty stores, list views,
// no draft and no history search.
func (s *Session) Reset() {
	s.Members.Reset()
	s.Accounts.Reset()
	s.History.Reset()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.pages = map[Page]PageState{
		PageMembers:      {Mode: ModeList},
		PageAccounts:     {Mode: ModeList},
		PageTransactions: {Mode: ModeList},
	}
	s.memberDraft = models.MemberForm{}
	s.history = HistoryQuery{}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionSnapshot is the JSON view of a session served on /state.
type SessionSnapshot struct {
	ID       string                       `json:"id"`
	Members  Snapshot[models.Member]      `json:"members"`
	Accounts Snapshot[models.Account]     `json:"accounts"`
	History  Snapshot[models.Transaction] `json:"history"`
	Query    HistoryQuery                 `json:"historyQuery"`
	Pages    map[Page]PageState           `json:"pages"`
}

func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		ID:       s.ID,
		Members:  s.Members.Snapshot(),
		Accounts: s.Accounts.Snapshot(),
		History:  s.History.Snapshot(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap.Query = s.history
	snap.Pages = make(map[Page]PageState, len(s.pages))
	for p, st := range s.pages {
		snap.Pages[p] = st
	}
	return snap
}

// Package handler binds the console's page controllers to HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/console/internal/notify"
	"github.com/eaglebank/console/internal/query"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/internal/view"
	"github.com/eaglebank/console/shared/cqrs"
	"github.com/eaglebank/console/shared/middleware"
	"github.com/eaglebank/console/shared/models"
	"github.com/gin-gonic/gin"
)

// ConsoleCommander defines the write-side operations used by Handler.
type ConsoleCommander interface {
	CreateMember(ctx context.Context, sess *store.Session, cmd cqrs.CreateMemberCommand) (*models.Member, error)
	CreateAccount(ctx context.Context, sess *store.Session, cmd cqrs.CreateAccountCommand) (*models.Account, error)
	Transfer(ctx context.Context, sess *store.Session, cmd cqrs.TransferCommand) (*models.Transaction, error)
	Toggle(sess *store.Session, cmd cqrs.TogglePageCommand) (store.Mode, error)
}

// ConsoleQuerier defines the read-side operations used by Handler.
type ConsoleQuerier interface {
	MembersPage(ctx context.Context, sess *store.Session) error
	AccountsPage(ctx context.Context, sess *store.Session) error
	TransactionsPage(ctx context.Context, sess *store.Session) error
	SearchHistory(ctx context.Context, sess *store.Session, q cqrs.SearchTransactionsQuery) error
	Dashboard(ctx context.Context) query.DashboardView
	MemberDetail(ctx context.Context, q cqrs.GetMemberQuery) (*query.MemberDetail, error)
	AccountDetail(ctx context.Context, q cqrs.GetAccountQuery) (*query.AccountDetail, error)
}

// Sessions hands out the state of the browser behind a request.
type Sessions interface {
	Session(id string) *store.Session
	Reset(id string)
}

// Handler serves every console page.
type Handler struct {
	commands ConsoleCommander
	queries  ConsoleQuerier
	sessions Sessions
	notifier notify.Notifier
}

func NewHandler(commands ConsoleCommander, queries ConsoleQuerier, sessions Sessions, notifier notify.Notifier) *Handler {
	return &Handler{commands: commands, queries: queries, sessions: sessions, notifier: notifier}
}

// Register mounts the console routes on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/dashboard", h.Dashboard)

	members := r.Group("/members")
	{
		members.GET("", h.ListMembers)
		members.POST("", h.CreateMember)
		members.POST("/toggle", h.toggle(store.PageMembers, "/members"))
		members.GET("/:id", h.GetMember)
	}

	accounts := r.Group("/accounts")
	{
		accounts.GET("", h.ListAccounts)
		accounts.POST("", h.CreateAccount)
		accounts.POST("/toggle", h.toggle(store.PageAccounts, "/accounts"))
		accounts.GET("/:number", h.GetAccount)
	}

	transactions := r.Group("/transactions")
	{
		transactions.GET("", h.Transactions)
		transactions.POST("/transfer", h.Transfer)
		transactions.POST("/toggle", h.toggle(store.PageTransactions, "/transactions"))
	}

	r.POST("/session/reset", h.ResetSession)
	r.GET("/state", h.State)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "console"})
	})
	r.NoRoute(h.NotFound)
}

func (h *Handler) session(c *gin.Context) *store.Session {
	id, _ := middleware.GetSessionID(c)
	return h.sessions.Session(id)
}

// layout drains the session's pending toasts; each one is shown once.
func (h *Handler) layout(c *gin.Context, sess *store.Session, title, active, banner string) view.Layout {
	return view.Layout{
		Title:  title,
		Active: active,
		Toasts: h.notifier.Drain(c.Request.Context(), sess.ID),
		Banner: banner,
	}
}

// banner picks the message for the persistent error strip: the page's own
// error first, then the store's.
func banner(messages ...string) string {
	for _, m := range messages {
		if m != "" {
			return m
		}
	}
	return ""
}

// toggle flips a page between list and form view. The redirect lands on the
// page again, which runs the list-view loads when list view was entered.
func (h *Handler) toggle(page store.Page, target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := h.session(c)
		if _, err := h.commands.Toggle(sess, cqrs.TogglePageCommand{Page: string(page)}); err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "Unknown page")
			return
		}
		c.Redirect(http.StatusSeeOther, target)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	sess := h.session(c)
	dashboard := h.queries.Dashboard(c.Request.Context())
	c.HTML(http.StatusOK, view.Dashboard, view.DashboardPage{
		Layout:        h.layout(c, sess, "Dashboard", "dashboard", ""),
		DashboardView: dashboard,
	})
}

// ResetSession returns the browser's state to how a fresh visit starts.
func (h *Handler) ResetSession(c *gin.Context) {
	id, _ := middleware.GetSessionID(c)
	h.sessions.Reset(id)
	h.notifier.Drain(c.Request.Context(), id)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// State exposes the session's stores as JSON.
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Snapshot())
}

func (h *Handler) NotFound(c *gin.Context) {
	sess := h.session(c)
	c.HTML(http.StatusNotFound, view.NotFound, h.layout(c, sess, "Not found", "", ""))
}

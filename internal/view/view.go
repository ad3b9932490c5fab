// Package view renders the console's HTML pages from embedded templates.
package view

import (
	"embed"
	"html/template"

	"github.com/eaglebank/console/internal/query"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/shared/middleware"
	"github.com/eaglebank/console/shared/models"
	"github.com/eaglebank/console/shared/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	Dashboard     = "dashboard.html"
	Members       = "members.html"
	MemberDetail  = "member_detail.html"
	Accounts      = "accounts.html"
	AccountDetail = "account_detail.html"
	Transactions  = "transactions.html"
	NotFound      = "not_found.html"
)

// Load parses every page template with the console's helper funcs.
func Load() (*template.Template, error) {
	return template.New("console").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatAmount": utils.FormatAmount,
		"formatCount":  utils.FormatCount,
		"formatDate":   utils.FormatDate,
		"statusClass":  StatusClass,
		"originLabel":  OriginLabel,
		"fieldError":   FieldError,
		"placeholder":  func() string { return utils.Placeholder },
	}
}

// StatusClass maps an entity status to its badge colour.
func StatusClass(status any) string {
	switch s := status.(type) {
	case models.AccountStatus:
		if s == models.AccountActive {
			return "badge-green"
		}
		return "badge-grey"
	case models.MemberStatus:
		if s == models.MemberActive {
			return "badge-green"
		}
		return "badge-grey"
	case models.TransactionStatus:
		switch {
		case s.Settled():
			return "badge-green"
		case s == models.TransactionFailed:
			return "badge-red"
		default:
			return "badge-yellow"
		}
	}
	return "badge-grey"
}

// OriginLabel names where a transaction's money came from.
func OriginLabel(from *string) string {
	if from == nil || *from == "" {
		return "External"
	}
	return *from
}

func FieldError(errs middleware.FieldErrors, field string) string {
	return errs[field]
}

// Layout is shared by every page.
type Layout struct {
	Title  string
	Active string
	Toasts []models.Notification
	Banner string
}

type DashboardPage struct {
	Layout
	query.DashboardView
}

type MembersPage struct {
	Layout
	Mode    store.Mode
	Members store.Snapshot[models.Member]
	Form    models.MemberForm
	Errors  middleware.FieldErrors
}

type AccountsPage struct {
	Layout
	Mode     store.Mode
	Accounts store.Snapshot[models.Account]
	Members  []models.Member
	Form     models.AccountForm
	Errors   middleware.FieldErrors
}

type TransactionsPage struct {
	Layout
	Mode      store.Mode
	Accounts  []models.Account
	History   store.Snapshot[models.Transaction]
	Query     store.HistoryQuery
	Form      models.TransferForm
	Errors    middleware.FieldErrors
	// Available is the balance of the selected source account, when known.
	Available *models.Account
}

type MemberDetailPage struct {
	Layout
	Detail *query.MemberDetail
}

type AccountDetailPage struct {
	Layout
	Detail *query.AccountDetail
}

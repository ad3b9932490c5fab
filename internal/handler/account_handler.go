package handler

import (
	"net/http"

	"github.com/eaglebank/console/internal/apiclient"
	"github.com/eaglebank/console/internal/command"
	"github.com/eaglebank/console/internal/query"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/internal/view"
	"github.com/eaglebank/console/shared/cqrs"
	"github.com/eaglebank/console/shared/middleware"
	"github.com/eaglebank/console/shared/models"
	"github.com/eaglebank/console/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListAccounts loads accounts and the member list the account form offers.
func (h *Handler) ListAccounts(c *gin.Context) {
	sess := h.session(c)
	_ = h.queries.AccountsPage(c.Request.Context(), sess)
	h.renderAccounts(c, sess, http.StatusOK, models.AccountForm{}, nil)
}

func (h *Handler) CreateAccount(c *gin.Context) {
	sess := h.session(c)

	var form models.AccountForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.GetLogger(c).Warn("form binding failed", zap.Error(err))
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid form submission")
		return
	}
	form = form.Trimmed()
	if errs := middleware.ValidateForm(form); errs != nil {
		sess.SetMode(store.PageAccounts, store.ModeForm)
		h.renderAccounts(c, sess, http.StatusUnprocessableEntity, form, errs)
		return
	}

	cmd, err := command.AccountCommand(form)
	if err != nil {
		h.renderAccounts(c, sess, http.StatusUnprocessableEntity, form, nil)
		return
	}
	if _, err := h.commands.CreateAccount(c.Request.Context(), sess, cmd); err != nil {
		h.renderAccounts(c, sess, http.StatusBadGateway, form, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, "/accounts")
}

func (h *Handler) renderAccounts(c *gin.Context, sess *store.Session, status int, form models.AccountForm, errs middleware.FieldErrors) {
	state := sess.Page(store.PageAccounts)
	c.HTML(status, view.Accounts, view.AccountsPage{
		Layout:   h.layout(c, sess, "Accounts", "accounts", banner(state.Error, sess.Accounts.ErrorMessage())),
		Mode:     state.Mode,
		Accounts: sess.Accounts.Snapshot(),
		Members:  sess.Members.Members(),
		Form:     form,
		Errors:   errs,
	})
}

// GetAccount shows one account with the first page of its history.
func (h *Handler) GetAccount(c *gin.Context) {
	sess := h.session(c)
	accountNumber := utils.NormalizeAccountNumber(c.Param("number"))

	detail, err := h.queries.AccountDetail(c.Request.Context(), cqrs.GetAccountQuery{AccountNumber: accountNumber})
	if err != nil {
		middleware.GetLogger(c).Warn("account detail failed", zap.Error(err))
		status := http.StatusBadGateway
		if apiclient.IsNotFound(err) {
			status = http.StatusNotFound
		}
		c.HTML(status, view.AccountDetail, view.AccountDetailPage{
			Layout: h.layout(c, sess, "Account", "accounts", query.MsgLoadAccountFailed),
		})
		return
	}
	c.HTML(http.StatusOK, view.AccountDetail, view.AccountDetailPage{
		Layout: h.layout(c, sess, detail.Account.AccountNumber, "accounts", ""),
		Detail: detail,
	})
}

package handler

import (
	"net/http"

	"github.com/eaglebank/console/internal/command"
	"github.com/eaglebank/console/internal/service"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/internal/view"
	"github.com/eaglebank/console/shared/cqrs"
	"github.com/eaglebank/console/shared/middleware"
	"github.com/eaglebank/console/shared/models"
	"github.com/eaglebank/console/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Transactions loads the accounts the transfer form offers and, when the
// request carries an account query, searches that account's history.
func (h *Handler) Transactions(c *gin.Context) {
	sess := h.session(c)
	ctx := c.Request.Context()

	sess.ClearPageError(store.PageTransactions)
	_ = h.queries.TransactionsPage(ctx, sess)

	if account, ok := c.GetQuery("account"); ok {
		_ = h.queries.SearchHistory(ctx, sess, cqrs.SearchTransactionsQuery{
			AccountNumber: account,
			Page:          utils.ParseNonNegative(c.Query("page"), service.DefaultPage),
			Size:          service.DefaultPageSize,
		})
	}
	h.renderTransactions(c, sess, http.StatusOK, models.TransferForm{}, nil)
}

// Transfer submits the transfer form. Balances are never patched locally;
// on success the account list is refetched by the command service.
func (h *Handler) Transfer(c *gin.Context) {
	sess := h.session(c)

	var form models.TransferForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.GetLogger(c).Warn("form binding failed", zap.Error(err))
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid form submission")
		return
	}
	form = form.Trimmed()
	if errs := middleware.ValidateForm(form); errs != nil {
		sess.SetMode(store.PageTransactions, store.ModeForm)
		h.renderTransactions(c, sess, http.StatusUnprocessableEntity, form, errs)
		return
	}

	cmd, err := command.TransferCommand(form)
	if err != nil {
		h.renderTransactions(c, sess, http.StatusUnprocessableEntity, form, nil)
		return
	}
	if _, err := h.commands.Transfer(c.Request.Context(), sess, cmd); err != nil {
		h.renderTransactions(c, sess, http.StatusBadGateway, form, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, "/transactions")
}

func (h *Handler) renderTransactions(c *gin.Context, sess *store.Session, status int, form models.TransferForm, errs middleware.FieldErrors) {
	state := sess.Page(store.PageTransactions)
	page := view.TransactionsPage{
		Layout:   h.layout(c, sess, "Transactions", "transactions", banner(state.Error, sess.Accounts.ErrorMessage(), sess.History.ErrorMessage())),
		Mode:     state.Mode,
		Accounts: sess.Accounts.Accounts(),
		History:  sess.History.Snapshot(),
		Query:    sess.HistoryQuery(),
		Form:     form,
		Errors:   errs,
	}
	if from, ok := sess.Accounts.AccountByNumber(form.FromAccountNumber); ok && form.FromAccountNumber != "" {
		page.Available = &from
	}
	c.HTML(status, view.Transactions, page)
}

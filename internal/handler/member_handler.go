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

func (h *Handler) ListMembers(c *gin.Context) {
	sess := h.session(c)
	if sess.Page(store.PageMembers).Mode == store.ModeList {
		// The failure is already recorded on the store and rendered as the banner.
		_ = h.queries.MembersPage(c.Request.Context(), sess)
	}
	h.renderMembers(c, sess, http.StatusOK, nil)
}

// CreateMember registers a member. Invalid input is sent back with
// per-field messages and never reaches the backend.
func (h *Handler) CreateMember(c *gin.Context) {
	sess := h.session(c)

	var form models.MemberForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.GetLogger(c).Warn("form binding failed", zap.Error(err))
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid form submission")
		return
	}
	form = form.Trimmed()
	sess.SetMemberDraft(form)

	if errs := middleware.ValidateForm(form); errs != nil {
		sess.SetMode(store.PageMembers, store.ModeForm)
		h.renderMembers(c, sess, http.StatusUnprocessableEntity, errs)
		return
	}

	if _, err := h.commands.CreateMember(c.Request.Context(), sess, command.MemberCommand(form)); err != nil {
		h.renderMembers(c, sess, http.StatusBadGateway, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, "/members")
}

func (h *Handler) renderMembers(c *gin.Context, sess *store.Session, status int, errs middleware.FieldErrors) {
	state := sess.Page(store.PageMembers)
	c.HTML(status, view.Members, view.MembersPage{
		Layout:  h.layout(c, sess, "Members", "members", banner(state.Error, sess.Members.ErrorMessage())),
		Mode:    state.Mode,
		Members: sess.Members.Snapshot(),
		Form:    sess.MemberDraft(),
		Errors:  errs,
	})
}

// GetMember shows one member and the accounts they own.
func (h *Handler) GetMember(c *gin.Context) {
	sess := h.session(c)
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		h.NotFound(c)
		return
	}

	detail, err := h.queries.MemberDetail(c.Request.Context(), cqrs.GetMemberQuery{MemberID: id})
	if err != nil {
		middleware.GetLogger(c).Warn("member detail failed", zap.Error(err))
		status := http.StatusBadGateway
		if apiclient.IsNotFound(err) {
			status = http.StatusNotFound
		}
		c.HTML(status, view.MemberDetail, view.MemberDetailPage{
			Layout: h.layout(c, sess, "Member", "members", query.MsgLoadMemberFailed),
		})
		return
	}
	c.HTML(http.StatusOK, view.MemberDetail, view.MemberDetailPage{
		Layout: h.layout(c, sess, detail.Member.Name, "members", ""),
		Detail: detail,
	})
}

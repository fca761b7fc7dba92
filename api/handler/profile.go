package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
)

type ProfileHandler struct {
	baseHandler
}

func NewProfileHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
	}
}

// @Summary Get the authenticated account
// @Tags profile
// @Router /api/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	account, ok := httpcontext.AccountFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrMissingToken)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.ProfileResponse{
		Account: transport.NewAccount(account),
		Status:  true,
		Msg:     "Profile found successfully..",
	})
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	RespondJSON(ctx, status, payload)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	RespondError(ctx, h.logger, err)
}

// decode reads a JSON body. A body that does not decode yields ErrInvalidPayload.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) error {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err)
	}
	return nil
}

// RespondJSON writes payload with the given status.
func RespondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(transport.NewError(domain.MessageOf(nil)))
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// RespondError writes the {status:false, msg} body for err. Internal failures are
// logged with the request id and never expose their cause.
func RespondError(ctx *fasthttp.RequestCtx, logger *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Error(err),
		)
	}
	RespondJSON(ctx, status, transport.NewError(domain.MessageOf(err)))
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	switch domain.CodeOf(err) {
	case domain.ErrCodeInvalid,
		domain.ErrCodeConflict,
		domain.ErrCodeNotFound,
		domain.ErrCodeUnauthorized,
		domain.ErrCodeMissingToken:
		return http.StatusBadRequest
	case domain.ErrCodeInvalidToken, domain.ErrCodeUnknownAccount:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func isTypeMismatch(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

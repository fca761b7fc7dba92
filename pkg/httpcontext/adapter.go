package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskboard/domain"
	appLogger "github.com/fastygo/taskboard/pkg/logger"
)

const (
	userValueAccount   = "account"
	userValueRequestID = "request_id"
	headerRequestID    = "X-Request-ID"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	stdCtx = appLogger.ContextWithRequestID(stdCtx, RequestID(ctx))

	var remoteAddr string
	if addr := ctx.RemoteAddr(); addr != nil {
		remoteAddr = addr.String()
	}
	stdCtx = appLogger.ContextWithClient(stdCtx, remoteAddr, string(ctx.Request.Header.UserAgent()))

	return stdCtx, cancel
}

// RequestID returns the id of the request, taking it from the X-Request-ID header or
// generating one. The id is echoed in the response and stable for the request's lifetime.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if id, ok := ctx.UserValue(userValueRequestID).(string); ok && id != "" {
		return id
	}
	id := strings.TrimSpace(string(ctx.Request.Header.Peek(headerRequestID)))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.SetUserValue(userValueRequestID, id)
	ctx.Response.Header.Set(headerRequestID, id)
	return id
}

// WithAccount attaches the authenticated account to the request.
func WithAccount(ctx *fasthttp.RequestCtx, account *domain.Account) {
	ctx.SetUserValue(userValueAccount, account)
}

// AccountFrom returns the account attached by the access guard.
func AccountFrom(ctx *fasthttp.RequestCtx) (*domain.Account, bool) {
	account, ok := ctx.UserValue(userValueAccount).(*domain.Account)
	return account, ok && account != nil
}

// BearerToken returns the Authorization header value with an optional "Bearer " scheme removed.
func BearerToken(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

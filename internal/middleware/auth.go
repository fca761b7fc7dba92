package middleware

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskboard/api/handler"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
)

// Authenticator resolves a bearer token to an account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}

// AccessGuard rejects requests without a valid token for an existing account and
// attaches the account to the request otherwise.
func AccessGuard(auth Authenticator, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	adapter := httpcontext.NewAdapter(timeout)

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			stdCtx, cancel := adapter.Attach(ctx)
			account, err := auth.Authenticate(stdCtx, httpcontext.BearerToken(ctx))
			cancel()

			if err != nil {
				if code := domain.CodeOf(err); code == domain.ErrCodeInvalidToken || code == domain.ErrCodeUnknownAccount {
					logger.Warn("access denied",
						zap.String("request_id", httpcontext.RequestID(ctx)),
						zap.String("reason", string(code)),
						zap.Error(err),
					)
				}
				apiHandler.RespondError(ctx, logger, err)
				return
			}

			httpcontext.WithAccount(ctx, account)
			next(ctx)
		}
	}
}

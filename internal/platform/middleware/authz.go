// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/stockmanager/internal/platform/constants"
	"github.com/taibuivan/stockmanager/internal/platform/ctxutil"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
)

// # Identity Contracts

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// IdentityResolver loads the current identity for a token subject.
// The resolved identity reflects the credential store, not the token,
// so role changes take effect without waiting for token expiry.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, username string) (*sec.Identity, error)
}

// # Authentication Filter

/*
Authenticate establishes the request identity from a bearer token.

The filter is strictly best-effort: it enriches the context when a valid
token is present and otherwise leaves the request anonymous. It never
rejects a request itself.

Behavior:

 1. Extract the token from the Authorization header. A missing header or
    a scheme other than "Bearer " means no token; proceed anonymously.
 2. Verify the token. Malformed, tampered, or expired tokens are logged
    and the request proceeds anonymously.
 3. Resolve the subject against the credential store. An unknown or
    deleted subject also proceeds anonymously.

Enforcement is the job of RequireAuth and RequireRole, applied on the
routes that need it.
*/
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			ctx := request.Context()

			// 1. Extract the bearer token from the Authorization header
			tokenString := extractBearerToken(request)
			if tokenString == "" {
				next.ServeHTTP(writer, request)
				return
			}

			logger := ctxutil.GetLogger(ctx)

			// 2. Verify signature, structure, and expiry
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				logger.WarnContext(ctx, "token_rejected", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Resolve the subject to a live identity
			identity, err := resolver.ResolveIdentity(ctx, claims.Subject)
			if err != nil {
				logger.WarnContext(ctx, "identity_resolution_failed",
					slog.String("subject", claims.Subject),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Attach the principal to the request context
			ctx = ctxutil.WithIdentity(ctx, identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractBearerToken returns the token portion of the Authorization
// header, or "" when the header is absent or uses another scheme.
func extractBearerToken(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return ""
	}
	return header[len(constants.BearerPrefix):]
}

// # Authorization Guards

// RequireAuth rejects anonymous requests with 401 Unauthorized.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if ctxutil.GetIdentity(request.Context()) == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRole rejects requests whose identity does not hold at least the
// given role. Anonymous requests receive 401; authenticated requests
// without sufficient privileges receive 403.
func RequireRole(minimum sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			identity := ctxutil.GetIdentity(request.Context())
			if identity == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			if !identity.HasRole(minimum) {
				writeError(writer, http.StatusForbidden, "FORBIDDEN", "Insufficient privileges")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

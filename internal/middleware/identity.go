package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/vendas/internal/domain"
)

// UserIDHeader carries the caller identity set by the upstream gateway.
const UserIDHeader = "X-User-ID"

// RequireUserID parses X-User-ID as a positive integer and stores it in the
// request context. Missing or malformed values are rejected with 401; there
// is no anonymous cart.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseUserID(r.Header.Get(UserIDHeader))
		if !ok {
			respondWithError(w, r, domain.WithOp(domain.ErrInvalidUser, "identity.require"))
			return
		}

		ctx := domain.NewContextWithUserID(r.Context(), userID)
		logger := GetLogger(ctx).With(slog.Int64("user_id", userID))
		next.ServeHTTP(w, r.WithContext(withLogger(ctx, logger)))
	})
}

func parseUserID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

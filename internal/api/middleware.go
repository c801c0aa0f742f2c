package api

import (
	"context"
	"fmt"
	"net/http"

	app_errors "membox/backend/internal/errors"
	"membox/backend/internal/interfaces"
	"membox/backend/internal/model"
)

// userCookieName carries the acting user id so a handler can resolve the user
// without a request body. It is a convenience partition key, not an auth
// token.
const userCookieName = "membox_user"

// userCookieMaxAge keeps the cookie short-lived; logging in refreshes it.
const userCookieMaxAge = 24 * 60 * 60

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext extracts the acting user loaded by RequireUser.
func UserFromContext(ctx context.Context) *model.User {
	u, ok := ctx.Value(userKey).(*model.User)
	if !ok {
		return nil
	}
	return u
}

// RequireUser resolves the acting user from the cookie once per request and
// stashes it in the context. Requests without a resolvable user get a 401.
func RequireUser(users interfaces.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(userCookieName)
			if err != nil || cookie.Value == "" {
				respondWithError(w, app_errors.ErrUnauthenticated)
				return
			}

			user, err := users.Get(r.Context(), cookie.Value)
			if err != nil {
				// A stale cookie for a user that no longer exists.
				respondWithError(w, fmt.Errorf("%w: unknown user %q", app_errors.ErrUnauthenticated, cookie.Value))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setUserCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     userCookieName,
		Value:    userID,
		Path:     "/",
		MaxAge:   userCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearUserCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     userCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

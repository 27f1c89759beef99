package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/http/response"
)

// AdminMiddleware пропускает только пользователей с ролью admin.
// Запрос без пользователя в контексте получает 401, без роли — 403.
func AdminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user not found in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Detail("unauthorized"))
				return
			}
			if !user.IsAdmin() {
				log.Warn("admin access denied", slog.String("user_id", user.ID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Detail("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package academy

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/continental-academy/academy-api/internal/config"
	"github.com/continental-academy/academy-api/internal/http/handlers/admin"
	"github.com/continental-academy/academy-api/internal/http/handlers/auth/login"
	"github.com/continental-academy/academy-api/internal/http/handlers/auth/me"
	"github.com/continental-academy/academy-api/internal/http/handlers/auth/register"
	"github.com/continental-academy/academy-api/internal/http/handlers/course/accessible"
	"github.com/continental-academy/academy-api/internal/http/handlers/course/lesson"
	"github.com/continental-academy/academy-api/internal/http/handlers/course/view"
	"github.com/continental-academy/academy-api/internal/http/handlers/payment/checkout"
	"github.com/continental-academy/academy-api/internal/http/handlers/payment/status"
	"github.com/continental-academy/academy-api/internal/http/handlers/payment/webhook"
	"github.com/continental-academy/academy-api/internal/http/handlers/publiccatalog"
	"github.com/continental-academy/academy-api/internal/http/middlewarectx"
	authservice "github.com/continental-academy/academy-api/internal/services/auth"
	catalogservice "github.com/continental-academy/academy-api/internal/services/catalog"
	entitlementservice "github.com/continental-academy/academy-api/internal/services/entitlement"
	paymentservice "github.com/continental-academy/academy-api/internal/services/payment"
	usersservice "github.com/continental-academy/academy-api/internal/services/users"
)

// Services собирает сервисы, которыми пользуются обработчики маршрутов.
type Services struct {
	Auth        *authservice.Service
	Entitlement *entitlementservice.Service
	Catalog     *catalogservice.Service
	Users       *usersservice.Service
	Payment     *paymentservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{cfg.PublicClientURL}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	public := publiccatalog.New(logger, svc.Catalog)
	adminHandler := admin.New(logger, svc.Catalog, svc.Users)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", public.Health)
		r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)

		r.Get("/programs", public.Programs)
		r.Get("/courses", public.Courses)
		r.Get("/shop/products", public.ShopProducts)
		r.Get("/faqs", public.FAQs)
		r.Get("/results", public.Results)
		r.Get("/settings", public.Settings)
		r.Post("/analytics/event", public.AnalyticsEvent)

		// Webhook endpoint (без аутентификации)
		r.Post("/payments/webhook", webhook.New(logger, svc.Payment).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/me", me.New(logger).ServeHTTP)
			r.Get("/me/courses", accessible.New(logger, svc.Entitlement).ServeHTTP)
			r.Get("/courses/{id}", view.New(logger, svc.Entitlement).ServeHTTP)
			r.Get("/lessons/{id}", lesson.New(logger, svc.Entitlement).ServeHTTP)

			checkoutHandler := checkout.New(logger, svc.Payment)
			r.Post("/payments/checkout/subscription", checkoutHandler.Subscription)
			r.Post("/payments/checkout/product", checkoutHandler.Product)
			r.Get("/payments/status/{sessionID}", status.New(logger, svc.Payment).ServeHTTP)
		})

		// Группа администратора
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.AdminMiddleware(logger))

			r.Get("/users", adminHandler.Users)
			r.Put("/users/{id}/role", adminHandler.SetUserRole)
			r.Get("/users/{id}/courses", adminHandler.UserCourses)
			r.Put("/users/{id}/courses", adminHandler.ReplaceUserCourses)
			r.Post("/users/{id}/courses/add", adminHandler.AddUserCourse)
			r.Post("/users/{id}/courses/remove", adminHandler.RemoveUserCourse)
			r.Put("/users/{id}/subscriptions", adminHandler.ReplaceUserSubscriptions)

			r.Get("/programs", adminHandler.Programs)
			r.Post("/programs", adminHandler.CreateProgram)
			r.Put("/programs/{id}", adminHandler.UpdateProgram)
			r.Delete("/programs/{id}", adminHandler.DeleteProgram)

			r.Get("/courses", adminHandler.Courses)
			r.Post("/courses", adminHandler.CreateCourse)
			r.Put("/courses/{id}", adminHandler.UpdateCourse)
			r.Delete("/courses/{id}", adminHandler.DeleteCourse)

			r.Post("/lessons", adminHandler.CreateLesson)
			r.Put("/lessons/reorder", adminHandler.ReorderLessons)
			r.Put("/lessons/{id}", adminHandler.UpdateLesson)
			r.Delete("/lessons/{id}", adminHandler.DeleteLesson)

			r.Get("/shop-products", adminHandler.ShopProducts)
			r.Post("/shop-products", adminHandler.CreateShopProduct)
			r.Put("/shop-products/{id}", adminHandler.UpdateShopProduct)
			r.Delete("/shop-products/{id}", adminHandler.DeleteShopProduct)

			r.Get("/faqs", adminHandler.FAQs)
			r.Post("/faqs", adminHandler.CreateFAQ)
			r.Put("/faqs/{id}", adminHandler.UpdateFAQ)
			r.Delete("/faqs/{id}", adminHandler.DeleteFAQ)

			r.Get("/results", adminHandler.Results)
			r.Post("/results", adminHandler.CreateResult)
			r.Delete("/results/{id}", adminHandler.DeleteResult)

			r.Put("/settings", adminHandler.UpdateSettings)
			r.Get("/analytics", adminHandler.Analytics)
			r.Post("/seed", adminHandler.Seed)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

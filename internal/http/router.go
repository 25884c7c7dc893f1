package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterDeps struct {
	Cart      *CartHandler
	Orders    *OrderHandler
	Products  *ProductHandler
	Users     *UserHandler
	Bookmarks *BookmarkHandler

	RequestTimeout time.Duration
	SessionTTL     time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "marketplace")
	})
	r.Use(SessionKeyMiddleware(deps.SessionTTL))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", deps.Products.List)
		r.Post("/", deps.Products.Create)
		r.Get("/{slug}", deps.Products.Get)
		r.Patch("/{slug}", deps.Products.Update)
		r.Delete("/{slug}", deps.Products.Delete)
		r.Post("/{slug}/comments", deps.Products.Comment)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", deps.Cart.Get)
		r.Delete("/", deps.Cart.Clear)
		r.Post("/{slug}", deps.Cart.AddItem)
		r.Delete("/{slug}", deps.Cart.RemoveItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", deps.Orders.Checkout)
		r.Get("/", deps.Orders.List)
		r.Get("/{id}", deps.Orders.Get)
		r.Get("/{id}/payment", deps.Orders.PaymentStatus)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", deps.Users.Register)
		r.Get("/", deps.Users.List)
		r.Get("/{id}", deps.Users.Profile)
		r.Patch("/{email}/profile", deps.Users.UpdateProfile)
		r.Put("/{email}/password", deps.Users.ChangePassword)
		r.Put("/{email}/role", deps.Users.ChangeRole)
	})

	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", deps.Bookmarks.List)
		r.Post("/{slug}", deps.Bookmarks.Toggle)
	})

	return r
}

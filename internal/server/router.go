package server

import (
	"net/http"

	"karkhana/internal/auth"
	authcontroller "karkhana/internal/auth/controller"
	"karkhana/internal/auth/service"
	bookingcontroller "karkhana/internal/booking/controller"
	"karkhana/internal/catalog"
	checkoutcontroller "karkhana/internal/checkout/controller"
	"karkhana/internal/domain"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Controllers struct {
	Auth     *authcontroller.AuthController
	Catalog  *catalog.Controller
	Booking  *bookingcontroller.BookingController
	Checkout *checkoutcontroller.CheckoutController
	Tokens   *service.TokenService
}

func NewRouter(c Controllers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", c.Auth.HandleSignup)
		r.Post("/auth/login", c.Auth.HandleLogin)
		r.Get("/auth/reauthorize", c.Auth.HandleReauthorize)

		r.Get("/makerspaces", c.Catalog.HandleListMakerspaces)
		r.Get("/makerspaces/{name}", c.Catalog.HandleGetMakerspace)
		r.Get("/machines", c.Catalog.HandleListMachines)
		r.Get("/events", c.Catalog.HandleListEvents)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(c.Tokens))
			r.Use(auth.RequireRole(domain.RoleOperator))

			r.Post("/listings", c.Catalog.HandleCreateListing)
			r.Put("/listings/{id}", c.Catalog.HandleUpdateListing)
			r.Post("/bookings/{id}/approve", c.Checkout.HandleApprove)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(c.Tokens))

			r.Post("/makerspaces", c.Catalog.HandleCreateMakerspace)
			r.Put("/makerspaces/{id}", c.Catalog.HandleUpdateMakerspace)
			r.Post("/bookings", c.Booking.HandleSubmitBooking)
			r.Get("/bookings/{id}", c.Booking.HandleGetBooking)
			r.Post("/bookings/{id}/checkout", c.Checkout.HandleCheckout)
		})
	})

	return r
}

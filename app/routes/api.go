// Package routes assembles the chi router. The surface is split into
// three bands: public browsing, member routes behind the session cookie,
// and Admin routes behind the role check.
package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pawhaven/pawhaven/app/controllers"
	"github.com/pawhaven/pawhaven/app/repositories"
	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/metrics"
	"github.com/pawhaven/pawhaven/pkg/middleware"
	"github.com/pawhaven/pawhaven/pkg/payment"
	"github.com/pawhaven/pawhaven/pkg/rbac"
	"github.com/pawhaven/pawhaven/pkg/reqid"
	"github.com/pawhaven/pawhaven/pkg/response"
)

// New wires repositories and controllers over the given store and
// payment gateway and returns the ready router.
func New(s store.Store, gw payment.Gateway) *chi.Mux {
	users := repositories.NewUserRepository(s)
	pets := repositories.NewPetRepository(s)
	campaigns := repositories.NewCampaignRepository(s)
	adoptions := repositories.NewAdoptionRepository(s)
	payments := repositories.NewPaymentRepository(s)
	categories := repositories.NewCategoryRepository(s)

	authCtl := controllers.NewAuthController(users)
	userCtl := controllers.NewUserController(users)
	petCtl := controllers.NewPetController(pets, categories, s)
	campCtl := controllers.NewCampaignController(campaigns)
	adoptCtl := controllers.NewAdoptionController(adoptions)
	payCtl := controllers.NewPaymentController(payments, gw)
	adminCtl := controllers.NewAdminController(s, pets, users, payments, adoptions)
	uploadCtl := controllers.NewUploadController()

	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))
	r.Use(middleware.RateLimit(300, time.Minute))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pawhaven is running"))
	})
	r.Get("/metrics", metrics.Handler())

	// session routes sit in a tighter rate band: they are the only ones
	// worth brute-forcing
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(20, time.Minute))

		r.Post("/jwt", authCtl.IssueToken)
		r.Post("/admin/login", authCtl.AdminLogin)
		r.Post("/logout", authCtl.Logout)
	})

	// public browsing
	r.Get("/PetCategory", petCtl.Categories)
	r.Get("/pets", petCtl.All)
	r.Get("/pets/{id}", petCtl.Show)
	r.Get("/petbycategory/{category}", petCtl.ByCategory)
	r.Get("/adddonationcamp", campCtl.All)
	r.Get("/adddonationcamp/{id}", campCtl.Show)

	// registration is open: it runs before a session exists
	r.Post("/users", userCtl.Register)

	// member routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/pets", petCtl.Create)
		r.Get("/mypets", petCtl.Mine)
		r.Put("/pets/{id}", petCtl.Update)
		r.Patch("/pets/{id}", petCtl.MarkAdopted)
		r.Delete("/pets/{id}", petCtl.Delete)

		r.Post("/adddonationcamp", campCtl.Create)
		r.Put("/updatedonationcamp/{id}", campCtl.Update)
		r.Delete("/adddonationcamp/{id}", campCtl.Delete)

		r.Post("/addtoadopt", adoptCtl.Create)
		r.Get("/addtoadopt", adoptCtl.All)

		r.Post("/create-payment-intent", payCtl.CreateIntent)
		r.Post("/payments", payCtl.Create)
		r.Get("/payments/{ownerEmail}", payCtl.ByOwner)

		r.Post("/upload-image", uploadCtl.UploadImage)
	})

	// admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(rbac.RequireAdmin)

		r.Get("/users", userCtl.All)
		r.Patch("/users/admin/{id}", adminCtl.Promote)
		r.Get("/payments", payCtl.All)
		r.Delete("/payments/{id}", payCtl.Delete)
		r.Patch("/admin/{action}/{id}", adminCtl.Transition)
		r.Get("/admin/dashboard", adminCtl.Dashboard)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})

	return r
}

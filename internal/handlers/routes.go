package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/identity"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/middleware"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

// RouterConfig carries the dependencies of every route. Metrics is optional.
type RouterConfig struct {
	Verifier     identity.Verifier
	Users        UserService
	Scholarships ScholarshipService
	Applications ApplicationService
	Reviews      ReviewService
	Checkout     CheckoutService
	Metrics      *middleware.Metrics
}

// NewRouter builds the HTTP API. Role checks resolve roles through the
// user service.
func NewRouter(cfg RouterConfig) *mux.Router {
	userHandler := NewUserHandler(cfg.Users)
	scholarshipHandler := NewScholarshipHandler(cfg.Scholarships)
	applicationHandler := NewApplicationHandler(cfg.Applications)
	reviewHandler := NewReviewHandler(cfg.Reviews)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout)

	verified := middleware.Authenticate(cfg.Verifier)
	admin := middleware.RequireRole(cfg.Users, models.RoleAdmin)
	moderator := middleware.RequireRole(cfg.Users, models.RoleModerator)

	public := func(h http.HandlerFunc) http.Handler { return h }
	authed := func(h http.HandlerFunc) http.Handler { return middleware.Chain(h, verified) }
	adminOnly := func(h http.HandlerFunc) http.Handler { return middleware.Chain(h, verified, admin) }
	moderatorOnly := func(h http.HandlerFunc) http.Handler { return middleware.Chain(h, verified, moderator) }

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger, middleware.Recover)
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware)
		router.Handle("/metrics", cfg.Metrics.Handler()).Methods("GET")
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
	})

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	// users
	router.Handle("/users", authed(userHandler.GetUsers)).Methods("GET")
	router.Handle("/users/{email}/role", public(userHandler.GetUserRole)).Methods("GET")
	router.Handle("/users", public(userHandler.CreateUser)).Methods("POST")
	router.Handle("/users/{id}", adminOnly(userHandler.DeleteUser)).Methods("DELETE")
	router.Handle("/users/{id}", adminOnly(userHandler.UpdateUserRole)).Methods("PATCH")

	// applications
	router.Handle("/applications", public(applicationHandler.GetApplications)).Methods("GET")
	router.Handle("/applications", authed(applicationHandler.CreateApplication)).Methods("POST")
	router.Handle("/applications/payment-done/{id}", authed(applicationHandler.MarkPaymentDone)).Methods("PATCH")
	router.Handle("/applications/{id}", authed(applicationHandler.GetApplication)).Methods("GET")
	router.Handle("/applications/{id}", authed(applicationHandler.DeleteApplication)).Methods("DELETE")
	router.Handle("/applications/{id}", moderatorOnly(applicationHandler.UpdateApplication)).Methods("PATCH")

	// reviews
	router.Handle("/reviews", public(reviewHandler.GetReviews)).Methods("GET")
	router.Handle("/reviews", authed(reviewHandler.CreateReview)).Methods("POST")
	router.Handle("/reviews/{id}", authed(reviewHandler.DeleteReview)).Methods("DELETE")
	router.Handle("/reviews/{id}", authed(reviewHandler.UpdateReview)).Methods("PATCH")

	// scholarships
	router.Handle("/scholarships", public(scholarshipHandler.GetScholarships)).Methods("GET")
	router.Handle("/scholarships", adminOnly(scholarshipHandler.CreateScholarship)).Methods("POST")
	router.Handle("/scholarships/{id}", authed(scholarshipHandler.GetScholarship)).Methods("GET")
	router.Handle("/scholarships/{id}", adminOnly(scholarshipHandler.DeleteScholarship)).Methods("DELETE")
	router.Handle("/scholarships/{id}", adminOnly(scholarshipHandler.UpdateScholarship)).Methods("PATCH")

	// payments
	router.Handle("/create-checkout-sessions", authed(checkoutHandler.CreateCheckoutSession)).Methods("POST")

	return router
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rahulthapa9024/basic-app/internal/api/http/cookie"
	"github.com/rahulthapa9024/basic-app/internal/api/http/handler"
	"github.com/rahulthapa9024/basic-app/internal/api/http/middleware"
	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	// Production enables secure cookies and hides error details.
	Production bool
	Cookies    *cookie.Manager
}

// Router wires the session endpoints onto a chi mux.
type Router struct {
	authService    handler.AuthService
	avatarService  handler.AvatarService
	contextManager model.ContextManager
	opts           Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	avatarService handler.AvatarService,
	contextManager model.ContextManager,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		avatarService:  avatarService,
		contextManager: contextManager,
		opts:           opts,
		logger:         logger,
	}
}

// Register builds the handler tree with the common middleware chain.
func (r *Router) Register() http.Handler {
	verbose := !r.opts.Production
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, verbose, r.logger)
	h := handler.NewAuth(r.authService, r.avatarService, r.contextManager, r.opts.Cookies, verbose, r.logger)

	mux := chi.NewRouter()
	mux.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		logging.Handle,
		chimiddleware.Recoverer,
		middleware.Metrics,
		middleware.SecureHeaders,
		cors.Handler(cors.Options{
			AllowedOrigins:   r.opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	mux.Method(http.MethodGet, "/metrics", promhttp.Handler())

	mux.Route("/user", func(ur chi.Router) {
		ur.Post("/googleLogin", h.GoogleLogin)
		ur.Post("/generateOTP", h.GenerateOTP)
		ur.Post("/verifyOTP", h.VerifyOTP)
		ur.Get("/check", h.Check)
		ur.Post("/logout", h.Logout)

		ur.Group(func(ar chi.Router) {
			ar.Use(authenticate.Handle)
			ar.Get("/getImage", h.GetImage)
			ar.Get("/image", h.Image)
		})
	})

	return mux
}

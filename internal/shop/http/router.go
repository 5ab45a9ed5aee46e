package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/internal/shop/store"
	"github.com/aussiebroadwan/tradepost/pkg/httpx"
	"github.com/aussiebroadwan/tradepost/pkg/jwtx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"

	_ "github.com/aussiebroadwan/tradepost/api/shop" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService    *service.AuthService
	ProductService *service.ProductService
	CartService    *service.CartService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerShop()
	r.registerHistory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tradepost Shop API
//	@version		0.1.0
//	@description	A small marketplace backend: signup/login with JWT access and
//	@description	refresh tokens, product listings, and a cart checkout flow.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tradepost
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /signup and /login - strict rate limit by IP (credential endpoints)
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(&SignupHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate rate limit by IP (rotation is cheap but bounded)
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(&RefreshHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /account - password change, requires a valid bearer token
	r.Mux.Handle("POST /api/auth/account",
		httpx.Chain(&AccountHandler{AuthService: r.AuthService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerShop() {
	products := &ProductsHandler{ProductService: r.ProductService}
	item := &ProductItemHandler{ProductService: r.ProductService}

	// GET /items - browsing works with or without a token, but a presented
	// invalid token still fails closed
	r.Mux.Handle("GET /api/shop/items",
		httpx.Chain(http.HandlerFunc(products.HandleList),
			httpx.AllowAnonMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /api/shop/items",
		httpx.Chain(http.HandlerFunc(products.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Checkout before /{id} so "cart" is never treated as a product id
	r.Mux.Handle("POST /api/shop/items/cart",
		httpx.Chain(&CartHandler{CartService: r.CartService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	for method, handler := range map[string]http.HandlerFunc{
		"GET":    item.HandleGet,
		"PUT":    item.HandleReplace,
		"PATCH":  item.HandlePatch,
		"DELETE": item.HandleDelete,
	} {
		r.Mux.Handle(method+" /api/shop/items/{id}",
			httpx.Chain(handler,
				httpx.AuthnMiddleware(r.verifier),
				httpx.RateLimitByUser(httpx.LenientLimit),
			),
		)
	}
}

func (r *Router) registerHistory() {
	h := &HistoryHandler{ProductService: r.ProductService}

	for path, handler := range map[string]http.HandlerFunc{
		"sale":      h.HandleForSale,
		"sold":      h.HandleSold,
		"purchased": h.HandlePurchased,
	} {
		r.Mux.Handle("GET /api/shop/history/"+path,
			httpx.Chain(handler,
				httpx.AuthnMiddleware(r.verifier),
				httpx.RateLimitByUser(httpx.LenientLimit),
			),
		)
	}
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

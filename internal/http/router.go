package http

import (
	nethttp "net/http"

	"github.com/go-chi/cors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/http/handlers"
)

// Routes groups the handlers mounted on the public router. Admin and WS are optional.
type Routes struct {
	Handler *handlers.Handler
	Admin   *handlers.AdminHandler
	WS      nethttp.Handler
	Origins []string
}

// NewRouter registers HTTP routes on a ServeMux wrapped in CORS.
func NewRouter(routes Routes) nethttp.Handler {
	mux := nethttp.NewServeMux()
	routes.Handler.Register(mux)
	if routes.Admin != nil {
		mux.HandleFunc("/admin/refresh", routes.Admin.Refresh)
	}
	if routes.WS != nil {
		mux.Handle("/ws", routes.WS)
	}

	origins := routes.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})(mux)
}

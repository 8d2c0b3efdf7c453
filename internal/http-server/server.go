package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sytallax/pizzaparser/internal/domain/models"
	"github.com/sytallax/pizzaparser/internal/http-server/handlers/menu"
	"github.com/sytallax/pizzaparser/internal/http-server/handlers/stores"
	"github.com/sytallax/pizzaparser/internal/http-server/middleware"
)

type Server struct {
	log *slog.Logger
	mux *http.ServeMux
}

func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{log: log, mux: http.NewServeMux()}
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = middleware.WithRequestID(h)
	h = middleware.RecoverPanic(s.log, h)
	h = middleware.AccessLog(s.log, h)
	return h
}

type Deps struct {
	Stores        stores.Lister
	Menu          menu.Getter
	Nearest       menu.NearestGetter
	DefaultPickup models.PickupMode
	Timeout       time.Duration
}

func (s *Server) RegisterRoutes(dep Deps) {

	s.mux.HandleFunc("/stores", stores.NewGetHandler(stores.Options{
		Log:           s.log,
		Stores:        dep.Stores,
		DefaultPickup: dep.DefaultPickup,
		Timeout:       dep.Timeout,
	}))

	s.mux.HandleFunc("/menu", menu.NewGetHandler(menu.Options{
		Log:     s.log,
		Menu:    dep.Menu,
		Timeout: dep.Timeout,
	}))

	s.mux.HandleFunc("/menu-near", menu.NewNearestHandler(menu.Options{
		Log:           s.log,
		Nearest:       dep.Nearest,
		DefaultPickup: dep.DefaultPickup,
		Timeout:       dep.Timeout,
	}))
}

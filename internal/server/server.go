package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET Method = "GET"
)

type Handler func(r *http.Request) ([]byte, int, error)

type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

type Server struct {
	name   string
	port   int
	debug  bool
	routes []Route
	extra  map[string]http.Handler
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		routes: make([]Route, 0),
		extra:  make(map[string]http.Handler),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Mount serves the given handler on the path as is.
func (s *Server) Mount(path string, handler http.Handler) *Server {
	s.extra[path] = handler
	return s
}

func (s *Server) handle(method Method, handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		if Method(r.Method) != method {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		b, code, err := handler(r)
		switch {
		case err != nil:
			s.error(w, code, err)
		case code != http.StatusOK:
			s.code(w, b, code)
		default:
			s.respond(w, b)
		}
		if s.debug {
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("code", code).
				Dur("duration", time.Since(t0)).
				Msg("served request")
		}
	}
}

// Handler returns the http handler of all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		if route.Path != "" {
			mux.HandleFunc(fmt.Sprintf("/%s/%s", route.Action, route.Path), s.handle(route.Method, route.Exec))
		} else {
			mux.HandleFunc(fmt.Sprintf("/%s", route.Action), s.handle(route.Method, route.Exec))
		}
	}
	for path, h := range s.extra {
		mux.Handle(path, h)
	}
	return mux
}

// Run starts the server
func (s *Server) Run() error {
	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Handler()); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, code int, err error) {
	log.Error().Err(err).Msg("error for http request")
	if code == 0 || code == http.StatusOK {
		code = http.StatusInternalServerError
	}
	s.code(w, []byte(err.Error()), code)
}

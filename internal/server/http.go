package http

import (
	"context"
	"net/http"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/api"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/pagecache"
)

const defaultRequestTimeout = 5 * time.Second

type Server struct {
	api     *api.API
	mux     *http.ServeMux
	pages   pagecache.PageCache // nil disables page caching
	origin  string
	timeout time.Duration
}

func New(a *api.API, origin string, pages pagecache.PageCache, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	s := &Server{api: a, mux: http.NewServeMux(), pages: pages, origin: origin, timeout: timeout}
	s.routes()
	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.origin, s.mux)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		_ = httpSrv.Shutdown(context.Background())
	}()
	return httpSrv.ListenAndServe()
}

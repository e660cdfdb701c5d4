package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/recapkit/recap"
	"github.com/recapkit/recap/server"
)

type httpServer struct {
	options server.Options
	app     *recap.App
	server  *http.Server
}

func (s *httpServer) Run() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mostly for tests.
func (s *httpServer) Handler() http.Handler {
	return s.server.Handler
}

func NewServer(app *recap.App, opts ...server.Option) *httpServer {
	options := server.NewOptions(opts...)

	s := &httpServer{
		options: options,
		app:     app,
	}

	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate-summary", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/save-summary", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/save-summary", s.handleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/summaries/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/send-email", s.handleSend).Methods(http.MethodPost)
	api.HandleFunc("/upload-transcript", s.handleUpload).Methods(http.MethodPost)
	api.HandleFunc("/templates", s.handleTemplates).Methods(http.MethodGet)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	var handler http.Handler = router
	if ms, ok := MiddlewareFrom(options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	s.server = &http.Server{
		Addr:    options.Address,
		Handler: handler,
	}

	return s
}

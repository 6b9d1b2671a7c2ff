// Package server implements the live-reload development server: it
// watches a source file, reruns the pipeline on every change, and
// pushes the rendered page (or rendered diagnostics) to connected
// browsers over a websocket.
package server

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rjeczalik/notify"
	"golang.org/x/sync/errgroup"

	"github.com/rchuk/markerml/internal/diagfmt"
	"github.com/rchuk/markerml/internal/driver"
)

//go:embed web/index.html web/style.css web/script.js
var webFS embed.FS

// Update is one websocket frame: either a rendered page or the
// rendered diagnostics of a failed compile.
type Update struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Options configures a Server.
type Options struct {
	Addr           string
	MaxDiagnostics int
	// Cache, when set, is handed through to the compile pipeline.
	Cache *driver.DiskCache
}

// Server watches one source file and serves its live preview.
type Server struct {
	path string
	opts Options

	mu      sync.Mutex
	current Update
	clients map[chan Update]struct{}

	quit     chan struct{}
	upgrader websocket.Upgrader
}

// New creates a server for the given source file. The path must be
// absolute or relative to the current working directory.
func New(path string, opts Options) *Server {
	return &Server{
		path:    path,
		opts:    opts,
		clients: make(map[chan Update]struct{}),
		quit:    make(chan struct{}),
	}
}

// Run compiles once, then serves and watches until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	s.path = abs

	s.recompile()

	// Watch the directory rather than the file itself: editors often
	// replace the file on save, which would drop an inode watch.
	events := make(chan notify.EventInfo, 16)
	if err := notify.Watch(filepath.Dir(s.path), events, notify.Write, notify.Create, notify.Rename); err != nil {
		return fmt.Errorf("watch %s: %w", s.path, err)
	}
	defer notify.Stop(events)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/style.css", s.handleAsset("web/style.css", "text/css; charset=utf-8"))
	mux.HandleFunc("/script.js", s.handleAsset("web/script.js", "text/javascript; charset=utf-8"))
	mux.HandleFunc("/listen", s.handleListen)

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		close(s.quit)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				if ev.Path() != s.path {
					continue
				}
				s.recompile()
			}
		}
	})
	return g.Wait()
}

// recompile runs the pipeline and broadcasts the outcome to every
// connected client.
func (s *Server) recompile() {
	upd := s.compileUpdate()

	s.mu.Lock()
	s.current = upd
	chans := make([]chan Update, 0, len(s.clients))
	for ch := range s.clients {
		chans = append(chans, ch)
	}
	s.mu.Unlock()

	for _, ch := range chans {
		// Slow clients miss intermediate updates; they will catch the
		// next one.
		select {
		case ch <- upd:
		default:
		}
	}
}

func (s *Server) compileUpdate() Update {
	res, err := driver.Compile(s.path, driver.CompileOptions{
		MaxDiagnostics: s.opts.MaxDiagnostics,
		Cache:          s.opts.Cache,
	})
	if err != nil {
		return Update{Error: err.Error()}
	}
	if res.Bag.HasErrors() {
		var b strings.Builder
		res.Bag.Sort()
		diagfmt.Pretty(&b, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			PathMode:  diagfmt.PathModeBasename,
			ShowNotes: true,
		})
		return Update{Error: b.String()}
	}
	return Update{Code: res.HTML}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.handleAsset("web/index.html", "text/html; charset=utf-8")(w, r)
}

func (s *Server) handleAsset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		data, err := webFS.ReadFile(name)
		if err != nil {
			http.Error(w, "asset not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}

// handleListen upgrades the connection, sends the latest compile
// outcome immediately, then forwards every subsequent update until the
// client disconnects or the server shuts down.
func (s *Server) handleListen(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	ch := make(chan Update, 8)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	current := s.current
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
	}()

	if err := conn.WriteJSON(current); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case upd := <-ch:
			if err := conn.WriteJSON(upd); err != nil {
				return
			}
		case <-done:
			return
		case <-s.quit:
			return
		}
	}
}

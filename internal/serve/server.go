// Package serve hosts the browser preview: a local HTTP server that
// renders the currently selected file on each request.
package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// RenderFunc produces the HTML document for the current selection.
// It is called on every request so a refresh always shows the latest
// content and theme.
type RenderFunc func() string

// Server is the preview HTTP server. It binds a loopback port chosen
// by the OS and lives until Close.
type Server struct {
	ln   net.Listener
	srv  *http.Server
	addr string
}

// Start binds addr (typically "127.0.0.1:0") and begins serving.
func Start(addr string, render RenderFunc) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind preview server: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		fmt.Fprint(w, render())
	})

	s := &Server{
		ln:   ln,
		srv:  &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		addr: ln.Addr().String(),
	}
	go s.srv.Serve(ln)
	return s, nil
}

// URL returns the address to open in a browser.
func (s *Server) URL() string {
	return "http://" + s.addr
}

// Close shuts the server down, waiting briefly for in-flight
// requests.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

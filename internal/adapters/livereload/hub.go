// Package livereload pushes reload, stylesheet-inject and notification
// messages to browsers over Server-Sent Events.
package livereload

import (
	"bufio"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
)

const (
	clientBuffer      = 8
	heartbeatInterval = 30 * time.Second
)

// Hub manages SSE clients and implements ports.Reloader.
type Hub struct {
	mu      sync.RWMutex
	nextID  int
	clients map[int]*client
	closed  bool

	logger  ports.Logger
	metrics *hubMetrics
}

type client struct {
	id   int
	ch   chan []byte
	done chan struct{}
}

// NewHub creates a Hub. Metrics are registered on reg when it is non-nil.
func NewHub(logger ports.Logger, reg prometheus.Registerer) *Hub {
	return &Hub{
		clients: map[int]*client{},
		logger:  logger,
		metrics: newHubMetrics(reg),
	}
}

// Reload asks every browser to reload the page.
func (h *Hub) Reload() {
	h.broadcast(domain.ReloadEvent{Kind: domain.ReloadFull})
}

// Inject asks every browser to swap the stylesheets served at paths.
func (h *Hub) Inject(paths []string) {
	if len(paths) == 0 {
		return
	}
	h.broadcast(domain.ReloadEvent{Kind: domain.ReloadInject, Paths: paths})
}

// Notify shows message in every browser.
func (h *Hub) Notify(message string) {
	h.broadcast(domain.ReloadEvent{Kind: domain.ReloadNotify, Message: message})
}

// ClientCount returns the number of connected browsers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP implements the SSE endpoint.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	c := &client{ch: make(chan []byte, clientBuffer), done: make(chan struct{})}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		http.Error(w, "livereload shutting down", http.StatusServiceUnavailable)
		return
	}
	c.id = h.nextID
	h.nextID++
	h.clients[c.id] = c
	h.metrics.clients.Set(float64(len(h.clients)))
	h.mu.Unlock()
	defer h.removeClient(c.id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	bw := bufio.NewWriter(w)
	send := func(s string) bool {
		if _, err := bw.WriteString(s); err != nil {
			return false
		}
		if err := bw.Flush(); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(": connected\n\n") {
		return
	}

	hb := time.NewTicker(heartbeatInterval)
	defer hb.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-c.done:
			return
		case <-hb.C:
			if !send(": ping\n\n") {
				return
			}
		case payload := <-c.ch:
			if !send("data: " + string(payload) + "\n\n") {
				return
			}
		}
	}
}

func (h *Hub) removeClient(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.done)
		h.metrics.clients.Set(float64(len(h.clients)))
	}
}

// broadcast delivers ev to every client, dropping clients whose buffers are full.
func (h *Hub) broadcast(ev domain.ReloadEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error(err)
		return
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return
	}
	snapshot := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.RUnlock()

	for _, c := range snapshot {
		select {
		case c.ch <- payload:
		default:
			h.metrics.dropped.Inc()
			h.removeClient(c.id)
		}
	}

	h.metrics.broadcasts.WithLabelValues(string(ev.Kind)).Inc()
	if len(snapshot) > 0 {
		h.logger.Debug("livereload " + string(ev.Kind) + " sent to browsers")
	}
}

// Shutdown disconnects all clients and stops future broadcasts.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.done)
	}
	h.metrics.clients.Set(0)
}

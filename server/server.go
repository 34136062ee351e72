package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/crfchain/crfcore/objective"
	"github.com/crfchain/crfcore/tagger"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds how long a single websocket write may block.
	writeWait = 5 * time.Second
	// pongWait bounds how long to wait for a pong before considering the
	// peer gone.
	pongWait = 30 * time.Second
	// pingPeriod must be less than pongWait; pings are sent at this
	// cadence to keep the connection's liveness check active.
	pingPeriod = (pongWait * 9) / 10
	// closeGracePeriod bounds how long Server waits after sending a close
	// frame before forcing the connection shut.
	closeGracePeriod = 2 * time.Second
)

var upgrader = websocket.Upgrader{}

// Server exposes a tagger.Tagger over HTTP and websocket. Theta and the
// underlying Encoder are treated as immutable for the Server's lifetime:
// many concurrent requests may read them without synchronization. Each
// request builds its own tagger.Tagger, since a Tagger's Kernel carries
// scratch buffers that are not safe to share across goroutines.
type Server struct {
	addr    string
	encoder objective.WeightsEncoder
	theta   []float64
	logger  *log.Logger
}

// New returns a Server that will tag requests via tg's Encoder using
// theta, once started with ListenAndServe.
func New(addr string, tg *tagger.Tagger, theta []float64) *Server {
	return &Server{
		addr:    addr,
		encoder: tg.Encoder,
		theta:   theta,
		logger:  log.New(os.Stdout, "crftagd: ", log.LstdFlags),
	}
}

// Router builds the gorilla/mux route table: GET /healthz, POST /tag,
// and the /tag/stream websocket upgrade.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/tag", s.handleTag).Methods(http.MethodPost)
	r.HandleFunc("/tag/stream", s.handleTagStream)
	return r
}

// ListenAndServe blocks serving Router() on addr until an unrecoverable
// error occurs.
func (s *Server) ListenAndServe() error {
	s.logger.Printf("listening on %s", s.addr)
	if err := http.ListenAndServe(s.addr, s.Router()); err != nil {
		return fmt.Errorf("server.ListenAndServe: %w", err)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}

	path, err := s.tag(tagger.New(s.encoder), req)
	if err != nil {
		s.writeTagError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TagResponse{Path: path}); err != nil {
		s.logger.Printf("encoding response: %v", err)
	}
}

// handleTagStream upgrades to a websocket and tags one example per inbound
// JSON message: a background reader drives pong handling while the main
// loop alternates between pings and tag requests.
func (s *Server) handleTagStream(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v", err)
		return
	}
	defer s.closeWebsocket(ws)

	// One Tagger per connection: all tag calls below run sequentially in
	// this goroutine, so its Kernel's scratch buffers are reused safely
	// across every message on this connection.
	tg := tagger.New(s.encoder)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	requests := make(chan TagRequest)
	go func() {
		defer close(requests)
		for {
			var req TagRequest
			if err := ws.ReadJSON(&req); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Printf("tag/stream read: %v", err)
				}
				cancel()
				return
			}
			select {
			case requests <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.logger.Printf("tag/stream ping: %v", err)
				return
			}
		case req, ok := <-requests:
			if !ok {
				return
			}
			path, err := s.tag(tg, req)
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err != nil {
				if writeErr := ws.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
					s.logger.Printf("tag/stream write error response: %v", writeErr)
					return
				}
				continue
			}
			if err := ws.WriteJSON(TagResponse{Path: path}); err != nil {
				s.logger.Printf("tag/stream write: %v", err)
				return
			}
		}
	}
}

func (s *Server) closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	_ = ws.Close()
}

// tag decodes req's Mode and runs BestGuess against the Server's theta
// using tg, which the caller owns for the lifetime of one request or one
// websocket connection.
func (s *Server) tag(tg *tagger.Tagger, req TagRequest) ([]int, error) {
	mode, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	return tg.BestGuess(s.theta, req.toIndexedExample(), mode)
}

func parseMode(raw string) (tagger.Mode, error) {
	switch raw {
	case "", "viterbi":
		return tagger.ModeViterbi, nil
	case "maxtoken":
		return tagger.ModeMaxToken, nil
	default:
		return 0, fmt.Errorf("server: %w: %q", ErrUnknownDecodeMode, raw)
	}
}

// writeTagError maps a tag failure to an HTTP status: caller errors (bad
// predicates producing an illegal or infeasible example) are 400s; an
// unknown mode string is also a 400; everything else is a 500.
func (s *Server) writeTagError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrUnknownDecodeMode) || isClientCausedTagError(err) {
		status = http.StatusBadRequest
	} else {
		s.logger.Printf("tag: %v", err)
	}
	http.Error(w, err.Error(), status)
}

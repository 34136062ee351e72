// Package server exposes a tagger.Tagger over HTTP: GET /healthz for
// liveness, POST /tag for a single request/response tagging call, and
// /tag/stream, a websocket endpoint that tags one example per inbound
// message for long-lived sessions without reconnecting. Routing follows
// gorilla/mux, with the usual websocket ping/pong liveness discipline and
// write-deadline handling. None of this changes forward-backward or
// Viterbi semantics; it is presentation-layer convenience around
// tagger.BestGuess.
package server

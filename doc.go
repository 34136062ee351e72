// Package crfcore is a linear-chain conditional random field engine: a
// dense-integer-indexed state space, a log-domain forward-backward kernel,
// Viterbi and max-token decoding, and a gradient-based training objective,
// plus the ambient stack (configuration, a map-reduce training
// orchestrator, and an HTTP/websocket tagging server) needed to actually
// run it.
//
// Subpackages:
//
//	indexer/         — bijection between labels and dense integer indices
//	statespace/       — the declared, validated label transition graph
//	forwardbackward/  — the numerical core: forward/backward, marginals, Viterbi
//	objective/        — log-likelihood and its gradient against a parameter vector
//	tagger/           — BestGuess: Viterbi or max-token decoding for a caller
//	orchestrator/     — parallel batch training over a sharded example set
//	config/           — YAML+env configuration for the two cmd/ binaries
//	modelio/          — persists a trained parameter vector between cmd/ binaries
//	server/           — HTTP/websocket front-end for online tagging
//	cmd/crftrain/     — fits a parameter vector against a labeled training set
//	cmd/crftagd/      — serves a trained model for online tagging
package crfcore

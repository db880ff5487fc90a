package server

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry *prometheus.Registry

	// Counters
	nextConnectionID    prometheus.CounterFunc
	proofsGenerated     prometheus.Counter
	proofsRejected      prometheus.Counter
	proofCacheHits      prometheus.Counter
	verificationsPassed prometheus.Counter
	verificationsFailed prometheus.Counter
	lemmaRequests       prometheus.Counter

	// Gauges
	openConnections prometheus.GaugeFunc

	// Summaries
	proveLatency  prometheus.Summary
	verifyLatency prometheus.Summary
	proofLines    prometheus.Summary
}

func newMetrics(svc *Service) *metrics {
	m := &metrics{
		nextConnectionID: prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "next_connection_id",
				Help: "number of connections to this server over its lifetime",
			},
			func() float64 {
				svc.mu.Lock()
				defer svc.mu.Unlock()
				return float64(svc.nextConnectionID)
			},
		),
		openConnections: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "open_connections",
				Help: "number of connections currently open",
			},
			func() float64 {
				svc.mu.Lock()
				defer svc.mu.Unlock()
				return float64(len(svc.connections))
			},
		),
		proofsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proofs_generated",
			Help: "proofs synthesized and stored",
		}),
		proofsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proofs_rejected",
			Help: "prove requests that ended in an error",
		}),
		proofCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proof_cache_hits",
			Help: "prove requests answered from the archive",
		}),
		verificationsPassed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verifications_passed",
			Help: "listings the verifier accepted",
		}),
		verificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verifications_failed",
			Help: "listings the verifier rejected",
		}),
		lemmaRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lemma_requests",
			Help: "fallback lemma requests made by the prover",
		}),
		proveLatency: prometheus.NewSummary(prometheus.SummaryOpts{
			Name: "prove_latency_ns",
			Help: "latency to synthesize, serialize and store a proof",
		}),
		verifyLatency: prometheus.NewSummary(prometheus.SummaryOpts{
			Name: "verify_latency_ns",
			Help: "latency to verify a listing",
		}),
		proofLines: prometheus.NewSummary(prometheus.SummaryOpts{
			Name: "proof_lines",
			Help: "number of lines in generated proofs",
		}),
	}
	m.registry = prometheus.NewPedanticRegistry()
	reg := m.registry

	reg.MustRegister(prometheus.NewProcessCollector(os.Getpid(), ""))
	reg.MustRegister(prometheus.NewGoCollector())

	reg.MustRegister(m.nextConnectionID)
	reg.MustRegister(m.openConnections)
	reg.MustRegister(m.proofsGenerated)
	reg.MustRegister(m.proofsRejected)
	reg.MustRegister(m.proofCacheHits)
	reg.MustRegister(m.verificationsPassed)
	reg.MustRegister(m.verificationsFailed)
	reg.MustRegister(m.lemmaRequests)
	reg.MustRegister(m.proveLatency)
	reg.MustRegister(m.verifyLatency)
	reg.MustRegister(m.proofLines)
	return m
}

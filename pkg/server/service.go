package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/oracle"
	"github.com/vilterp/hilbert/pkg/proof"
	"github.com/vilterp/hilbert/pkg/store"
	"github.com/vilterp/hilbert/pkg/verify"
)

// Request is one client message. Op is "prove" or "verify".
type Request struct {
	ID      int               `json:"id"`
	Op      string            `json:"op"`
	Formula string            `json:"formula,omitempty"`
	Listing string            `json:"listing,omitempty"`
	Lemmas  map[string]string `json:"lemmas,omitempty"`
}

type Response struct {
	ID      int    `json:"id"`
	ProofID string `json:"proof_id,omitempty"`
	Listing string `json:"listing,omitempty"`
	Valid   bool   `json:"valid"`
	Cached  bool   `json:"cached,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service proves and verifies on behalf of websocket connections, backed
// by an archive of stored proofs and lemmas.
type Service struct {
	archive *store.Archive
	metrics *metrics
	ctx     context.Context

	mu               sync.Mutex
	connections      map[connectionID]*connection
	nextConnectionID int
}

func NewService(dataFile string) (*Service, error) {
	archive, err := store.Open(dataFile)
	if err != nil {
		return nil, err
	}
	svc := &Service{
		archive:     archive,
		ctx:         context.Background(),
		connections: make(map[connectionID]*connection),
	}
	svc.metrics = newMetrics(svc)
	return svc, nil
}

func (svc *Service) Close() error {
	return svc.archive.Close()
}

// addConnection serves wsConn until it closes.
func (svc *Service) addConnection(wsConn *websocket.Conn) {
	svc.mu.Lock()
	conn := newConnection(wsConn, svc, svc.nextConnectionID)
	svc.nextConnectionID++
	svc.connections[conn.id] = conn
	svc.mu.Unlock()

	conn.handleRequests()
}

func (svc *Service) removeConn(conn *connection) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.connections, conn.id)
}

func (svc *Service) handle(req *Request) *Response {
	switch req.Op {
	case "prove":
		return svc.prove(req)
	case "verify":
		return svc.verify(req)
	default:
		return &Response{ID: req.ID, Error: "unknown op: " + req.Op}
	}
}

func (svc *Service) prove(req *Request) *Response {
	resp, err := svc.proveInternal(req)
	if err != nil {
		svc.metrics.proofsRejected.Inc()
		return &Response{ID: req.ID, Error: err.Error()}
	}
	return resp
}

func (svc *Service) proveInternal(req *Request) (*Response, error) {
	start := time.Now()
	target, err := formula.Parse(req.Formula)
	if err != nil {
		return nil, err
	}

	if id, lines, err := svc.archive.FindProof(target); err == nil {
		svc.metrics.proofCacheHits.Inc()
		return &Response{
			ID:      req.ID,
			ProofID: id.String(),
			Listing: verify.FormatListing(lines),
			Valid:   true,
			Cached:  true,
		}, nil
	} else if _, ok := errors.Cause(err).(*store.NoSuchProof); !ok {
		return nil, err
	}

	table := oracle.Table{}
	for targetText, witnessText := range req.Lemmas {
		lemmaTarget, err := formula.Parse(targetText)
		if err != nil {
			return nil, errors.Wrap(err, "lemma target")
		}
		witness, err := formula.Parse(witnessText)
		if err != nil {
			return nil, errors.Wrap(err, "lemma witness")
		}
		table[lemmaTarget.String()] = witness
	}
	// Witnesses taken from the request are kept aside; they reach the
	// archive only if the proof that used them gets stored.
	used := oracle.Table{}
	lemmas := oracle.Chain(oracle.Record(table, used), svc.archive)

	prover := proof.NewProver(lemmas)
	step, err := prover.Prove(proof.EmptyContext, target)
	svc.metrics.lemmaRequests.Add(float64(prover.Stats().LemmaRequests))
	if err != nil {
		return nil, err
	}
	lines := proof.Serialize(step).Lines()
	id, err := svc.archive.SaveProof(target, lines)
	if err != nil {
		return nil, err
	}
	if err := svc.archive.PutLemmas(used); err != nil {
		return nil, errors.Wrap(err, "storing lemmas")
	}

	svc.metrics.proofsGenerated.Inc()
	svc.metrics.proofLines.Observe(float64(len(lines)))
	svc.metrics.proveLatency.Observe(float64(time.Since(start).Nanoseconds()))
	return &Response{
		ID:      req.ID,
		ProofID: id.String(),
		Listing: verify.FormatListing(lines),
		Valid:   true,
	}, nil
}

func (svc *Service) verify(req *Request) *Response {
	start := time.Now()
	defer func() {
		svc.metrics.verifyLatency.Observe(float64(time.Since(start).Nanoseconds()))
	}()

	lines, err := verify.ReadListing(strings.NewReader(req.Listing))
	if err == nil {
		err = verify.Verify(lines)
	}
	if err != nil {
		svc.metrics.verificationsFailed.Inc()
		return &Response{ID: req.ID, Valid: false, Error: err.Error()}
	}
	svc.metrics.verificationsPassed.Inc()
	return &Response{ID: req.ID, Valid: true}
}

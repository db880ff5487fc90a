// Package store keeps verified proofs and the lemma table in a bolt file.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/proof"
	"github.com/vilterp/hilbert/pkg/verify"
)

var (
	lemmasBucket   = []byte("lemmas")
	proofsBucket   = []byte("proofs")
	theoremsBucket = []byte("theorems")
)

type NoSuchProof struct {
	ID string
}

func (e *NoSuchProof) Error() string {
	return fmt.Sprintf("no such proof: %s", e.ID)
}

type Archive struct {
	boltDB *bolt.DB
}

var _ proof.LemmaOracle = &Archive{}

func Open(path string) (*Archive, error) {
	boltDB, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	updateErr := boltDB.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{lemmasBucket, proofsBucket, theoremsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if updateErr != nil {
		boltDB.Close()
		return nil, errors.Wrap(updateErr, "creating buckets")
	}
	return &Archive{boltDB: boltDB}, nil
}

func (a *Archive) Close() error {
	return a.boltDB.Close()
}

// lemmas

func (a *Archive) PutLemma(target *formula.Formula, witness *formula.Formula) error {
	return a.boltDB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(lemmasBucket).Put([]byte(target.String()), []byte(witness.String()))
	})
}

// PutLemmas stores every entry of lemmas in one transaction. Callers pass
// only witnesses a stored proof actually used, so a replaced entry is
// never worse than the one it replaces.
func (a *Archive) PutLemmas(lemmas map[string]*formula.Formula) error {
	if len(lemmas) == 0 {
		return nil
	}
	return a.boltDB.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(lemmasBucket)
		for target, witness := range lemmas {
			if err := bucket.Put([]byte(target), []byte(witness.String())); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetLemma returns nil if no witness is stored for target.
func (a *Archive) GetLemma(target *formula.Formula) (*formula.Formula, error) {
	var witness *formula.Formula
	err := a.boltDB.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(lemmasBucket).Get([]byte(target.String()))
		if raw == nil {
			return nil
		}
		parsed, err := formula.Parse(string(raw))
		if err != nil {
			return errors.Wrapf(err, "stored lemma for %s", target)
		}
		witness = parsed
		return nil
	})
	return witness, err
}

func (a *Archive) Lemmas() (map[string]*formula.Formula, error) {
	lemmas := map[string]*formula.Formula{}
	err := a.boltDB.View(func(tx *bolt.Tx) error {
		return tx.Bucket(lemmasBucket).ForEach(func(k, v []byte) error {
			witness, err := formula.Parse(string(v))
			if err != nil {
				return errors.Wrapf(err, "stored lemma for %s", k)
			}
			lemmas[string(k)] = witness
			return nil
		})
	})
	return lemmas, err
}

// Lemma serves the stored table to the prover.
func (a *Archive) Lemma(ctx proof.Context, target *formula.Formula) (*formula.Formula, error) {
	witness, err := a.GetLemma(target)
	if err != nil {
		return nil, err
	}
	if witness == nil {
		return nil, &proof.UnderivableWithoutHint{Context: ctx, Target: target, Reason: "no stored lemma"}
	}
	return witness, nil
}

// proofs

// SaveProof stores lines as the proof of target. The listing is checked
// again first; the archive never holds a proof that doesn't verify.
func (a *Archive) SaveProof(target *formula.Formula, lines []verify.Line) (uuid.UUID, error) {
	if err := verify.Verify(lines); err != nil {
		return uuid.UUID{}, errors.Wrap(err, "refusing to store proof")
	}
	if conclusion := lastLine(lines); conclusion.Formula != target.String() {
		return uuid.UUID{}, errors.Errorf("refusing to store proof: concludes %s, not %s", conclusion.Formula, target)
	}

	id := uuid.New()
	err := a.boltDB.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(proofsBucket).Put([]byte(id.String()), []byte(verify.FormatListing(lines))); err != nil {
			return err
		}
		return tx.Bucket(theoremsBucket).Put([]byte(target.String()), []byte(id.String()))
	})
	if err != nil {
		return uuid.UUID{}, errors.Wrap(err, "saving proof")
	}
	return id, nil
}

func (a *Archive) LoadProof(id uuid.UUID) ([]verify.Line, error) {
	var lines []verify.Line
	err := a.boltDB.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(proofsBucket).Get([]byte(id.String()))
		if raw == nil {
			return &NoSuchProof{ID: id.String()}
		}
		parsed, err := verify.ReadListing(strings.NewReader(string(raw)))
		if err != nil {
			return errors.Wrapf(err, "stored proof %s", id)
		}
		lines = parsed
		return nil
	})
	return lines, err
}

// FindProof looks up the latest stored proof of target.
func (a *Archive) FindProof(target *formula.Formula) (uuid.UUID, []verify.Line, error) {
	var raw []byte
	viewErr := a.boltDB.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(theoremsBucket).Get([]byte(target.String())); v != nil {
			// bolt values are only valid inside the transaction
			raw = append([]byte{}, v...)
		}
		return nil
	})
	if viewErr != nil {
		return uuid.UUID{}, nil, viewErr
	}
	if raw == nil {
		return uuid.UUID{}, nil, &NoSuchProof{ID: target.String()}
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.UUID{}, nil, errors.Wrapf(err, "theorem index for %s", target)
	}
	lines, err := a.LoadProof(id)
	return id, lines, err
}

func lastLine(lines []verify.Line) verify.Line {
	last := lines[0]
	for _, line := range lines[1:] {
		if line.Position > last.Position {
			last = line
		}
	}
	return last
}

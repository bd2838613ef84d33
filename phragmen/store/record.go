package store

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
	"github.com/xxfoundation/wallet.xx.network/phragmen"
)

// Entry is a ranked validator with its decimals in text form
type Entry struct {
	ValidatorID string
	Elected     bool
	BackedStake string
	Score       string
}

// Support is the weight a nominator puts on one of its targets
type Support struct {
	ValidatorID string
	Weight      string
}

// Backing lists the final edge weights of a nominator
type Backing struct {
	NominatorID string
	Budget      string
	Edges       []Support
}

// Record is the storable form of a predicted election
type Record struct {
	Count      int
	Winners    []string
	Ranked     []Entry
	Nominators []Backing
	Created    time.Time
}

// NewRecord captures the result of an election
func NewRecord(count int, res *phragmen.Result) (rec *Record) {
	rec = &Record{
		Count:   count,
		Winners: res.Winners,
		Ranked:  make([]Entry, 0, len(res.Ranked)),
		Created: time.Now().UTC(),
	}

	for _, vi := range res.Ranked {
		rec.Ranked = append(rec.Ranked, Entry{
			ValidatorID: vi.ValidatorID,
			Elected:     vi.Elected,
			BackedStake: vi.BackedStake.String(),
			Score:       vi.Score.String(),
		})
	}

	for _, n := range res.Nominators {
		b := Backing{NominatorID: n.ID, Budget: n.Budget.String()}
		for _, e := range n.Edges {
			b.Edges = append(b.Edges, Support{
				ValidatorID: res.Candidates[e.Candidate].ID,
				Weight:      e.Weight.String(),
			})
		}

		rec.Nominators = append(rec.Nominators, b)
	}

	return
}

// Prediction rounds the recorded outcome to whole base units
func (rec *Record) Prediction(c *apd.Context) (pred phragmen.Prediction, err error) {
	pred = make(phragmen.Prediction, len(rec.Ranked))
	for _, e := range rec.Ranked {
		d, _, err := apd.NewFromString(e.BackedStake)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse stake of '%s'", e.ValidatorID)
		}

		stake, err := phragmen.RoundStake(c, d)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to round stake of '%s'", e.ValidatorID)
		}

		pred[e.ValidatorID] = phragmen.Stake{Elected: e.Elected, BackedStake: stake}
	}

	return pred, nil
}

func encode(rec *Record) (d []byte, err error) {
	buf := bytes.NewBuffer(nil)
	if err = gob.NewEncoder(buf).Encode(rec); err != nil {
		return nil, errors.Wrap(err, "failed to encode record")
	}

	return buf.Bytes(), nil
}

func decode(d []byte) (rec *Record, err error) {
	rec = &Record{}
	if err = gob.NewDecoder(bytes.NewReader(d)).Decode(rec); err != nil {
		return nil, errors.Wrap(err, "failed to decode record")
	}

	return rec, nil
}

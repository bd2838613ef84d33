package phragmen

import (
	"math/big"

	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
)

// Stake is the predicted outcome for a single validator
type Stake struct {
	Elected     bool
	BackedStake *big.Int //in base units, rounded half up
}

// Prediction maps validator ids to their predicted outcome
type Prediction map[string]Stake

// Predict runs the election and returns the outcome per validator
func Predict(p *Params, voters []Voter, count int) (pred Prediction, err error) {
	res, err := SeqPhragmen(p, voters, count)
	if err != nil {
		return nil, err
	}

	return res.Prediction(p)
}

// Prediction rounds the ranked outcome to whole base units
func (res *Result) Prediction(p *Params) (pred Prediction, err error) {
	pred = make(Prediction, len(res.Ranked))
	for _, vi := range res.Ranked {
		stake, err := RoundStake(p.DecimalContext, vi.BackedStake)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to round stake of '%s'", vi.ValidatorID)
		}

		pred[vi.ValidatorID] = Stake{Elected: vi.Elected, BackedStake: stake}
	}

	return pred, nil
}

// RoundStake rounds a decimal stake half up to an integer amount. Rounding
// noise below zero is reported as zero.
func RoundStake(c *apd.Context, d *apd.Decimal) (stake *big.Int, err error) {
	rc := *c
	rc.Rounding = apd.RoundHalfUp

	q := new(apd.Decimal)
	if _, err = rc.Quantize(q, d, 0); err != nil {
		return nil, err
	}

	stake = new(big.Int).Set(&q.Coeff)
	if q.Negative {
		return new(big.Int), nil
	}

	return stake, nil
}

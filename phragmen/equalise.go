package phragmen

import (
	"sort"

	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
)

// Equalise rebalances, for the given number of passes, the budget of every
// nominator that backs more than one elected candidate. Each pass the
// nominator withdraws its weight and spreads its budget over its lowest backed
// elected targets such that they end up with equal backing.
func Equalise(p *Params, g *Graph, iterations int) (err error) {
	if iterations < 0 {
		return &InvalidInputError{Err: ErrNegativeIterations}
	}

	ed := apd.MakeErrDecimal(p.DecimalContext)
	for it := 0; it < iterations; it++ {
		for i := range g.Nominators {
			g.equalise(&ed, &g.Nominators[i])
		}

		if err = ed.Err(); err != nil {
			return errors.Wrapf(err, "failed to equalise in pass %d", it)
		}
	}

	return nil
}

func (g *Graph) equalise(ed *apd.ErrDecimal, n *Nominator) {
	var elected []int
	for j, e := range n.Edges {
		if g.Candidates[e.Candidate].Elected {
			elected = append(elected, j)
		}
	}

	if len(elected) < 2 {
		return
	}

	backed := func(j int) *apd.Decimal { return g.Candidates[n.Edges[j].Candidate].BackedStake }

	//withdraw all of the nominator's support
	for _, j := range elected {
		e := &n.Edges[j]
		c := &g.Candidates[e.Candidate]
		c.BackedStake = ed.Sub(new(apd.Decimal), c.BackedStake, e.Weight)
		e.Weight = new(apd.Decimal)
	}

	sort.SliceStable(elected, func(a, b int) bool {
		return backed(elected[a]).Cmp(backed(elected[b])) < 0
	})

	//find how many of the lowest backed targets can be topped up to the same
	//level with the budget: the largest k for which b[k-1]*k - sum(b[:k]) <= budget
	k := len(elected)
	total := new(apd.Decimal)
	for idx, j := range elected {
		need := ed.Mul(new(apd.Decimal), backed(j), apd.New(int64(idx), 0))
		need = ed.Sub(new(apd.Decimal), need, total)
		if need.Cmp(n.Budget) > 0 {
			k = idx
			break
		}

		total = ed.Add(new(apd.Decimal), total, backed(j))
	}

	ways := apd.New(int64(k), 0)
	last := new(apd.Decimal).Set(backed(elected[k-1]))

	excess := ed.Add(new(apd.Decimal), n.Budget, total)
	excess = ed.Sub(new(apd.Decimal), excess, ed.Mul(new(apd.Decimal), last, ways))
	share := ed.Quo(new(apd.Decimal), excess, ways)

	//top up in order, each target sees the backing of the ones before it
	for _, j := range elected[:k] {
		e := &n.Edges[j]
		c := &g.Candidates[e.Candidate]

		w := ed.Add(new(apd.Decimal), share, last)
		e.Weight = ed.Sub(new(apd.Decimal), w, c.BackedStake)
		c.BackedStake = ed.Add(new(apd.Decimal), c.BackedStake, e.Weight)
	}
}

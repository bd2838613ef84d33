package phragmen

import (
	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
)

// Elect runs sequential Phragmén on the graph, electing min(count, candidates)
// candidates one round at a time. It returns the indices of the winners in the
// order they were elected. Afterwards every edge carries its initial weight
// and every elected candidate the sum of those weights as its backed stake.
func Elect(p *Params, g *Graph, count int) (winners []int, err error) {
	if count < 0 {
		return nil, &InvalidInputError{Err: ErrNegativeCount}
	}

	rounds := count
	if rounds > len(g.Candidates) {
		rounds = len(g.Candidates)
	}

	ed := apd.MakeErrDecimal(p.DecimalContext)
	one := apd.New(1, 0)
	for round := 0; round < rounds; round++ {

		//score of a candidate without any load on its voters
		for i := range g.Candidates {
			c := &g.Candidates[i]
			if c.Elected {
				continue
			}

			if c.ApprovalStake.Sign() > 0 {
				c.Score = ed.Quo(new(apd.Decimal), one, c.ApprovalStake)
			} else {
				c.Score = new(apd.Decimal).Set(p.UnreachableScore)
			}
		}

		//add the load already carried by each of its voters
		for i := range g.Nominators {
			n := &g.Nominators[i]
			if n.Load.IsZero() {
				continue //would only add zeros
			}

			for _, e := range n.Edges {
				c := &g.Candidates[e.Candidate]
				if c.Elected || c.ApprovalStake.Sign() <= 0 {
					continue
				}

				inc := ed.Mul(new(apd.Decimal), n.Load, n.Budget)
				inc = ed.Quo(new(apd.Decimal), inc, c.ApprovalStake)
				c.Score = ed.Add(new(apd.Decimal), c.Score, inc)
			}
		}

		if err = ed.Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to score candidates in round %d", round)
		}

		w := g.lowestScore()
		if w < 0 {
			break //nothing left to elect
		}

		winner := &g.Candidates[w]
		winner.Elected = true
		winners = append(winners, w)

		//voters of the winner now carry its score as their load
		for i := range g.Nominators {
			n := &g.Nominators[i]
			for j := range n.Edges {
				e := &n.Edges[j]
				if e.Candidate != w {
					continue
				}

				e.Load = ed.Sub(new(apd.Decimal), winner.Score, n.Load)
				n.Load = new(apd.Decimal).Set(winner.Score)
			}
		}

		if err = ed.Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to propagate load in round %d", round)
		}
	}

	//turn the loads into weights: each voter splits its budget over the elected
	//targets proportional to the load the edge carries
	for i := range g.Nominators {
		n := &g.Nominators[i]
		for j := range n.Edges {
			e := &n.Edges[j]
			c := &g.Candidates[e.Candidate]
			if !c.Elected || n.Load.IsZero() {
				e.Weight = new(apd.Decimal)
				continue
			}

			share := ed.Quo(new(apd.Decimal), e.Load, n.Load)
			e.Weight = ed.Mul(new(apd.Decimal), share, n.Budget)
			c.BackedStake = ed.Add(new(apd.Decimal), c.BackedStake, e.Weight)
		}
	}

	if err = ed.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to compute edge weights")
	}

	return winners, nil
}

//lowestScore returns the index of the unelected candidate with the lowest
//score, the candidate that was targeted first wins a tie. It returns -1 when
//every candidate is elected.
func (g *Graph) lowestScore() (idx int) {
	idx = -1
	for i := range g.Candidates {
		c := &g.Candidates[i]
		if c.Elected {
			continue
		}

		if idx < 0 || c.Score.Cmp(g.Candidates[idx].Score) < 0 {
			idx = i
		}
	}

	return
}

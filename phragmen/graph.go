// Package phragmen predicts the outcome of a Nominated Proof-of-Stake election
// with sequential Phragmén followed by a fixed number of equalise passes. All
// stake and score arithmetic is done with arbitrary precision decimals.
package phragmen

import (
	"math/big"

	"github.com/cockroachdb/apd"
)

// Voter is a nominator as read from chain storage: it approves of the
// candidates listed in targets with all of its stake
type Voter struct {
	NominatorID string   `json:"nominatorId"` //stash account
	Stake       string   `json:"stake"`       //balance in base units, base-10 integer
	Targets     []string `json:"targets"`     //approved candidates, in nomination order
}

// Candidate is a validator that was targeted by at least one voter
type Candidate struct {
	ID            string
	ApprovalStake *apd.Decimal //sum of the stake of every voter that targets it
	BackedStake   *apd.Decimal //sum of the weight of every edge towards it
	Score         *apd.Decimal //load the candidate would put on its voters
	Elected       bool
}

// Edge connects a nominator to one of its targets
type Edge struct {
	Candidate int //index into the graph's candidates
	Load      *apd.Decimal
	Weight    *apd.Decimal
}

// Nominator is the working state of a single voter
type Nominator struct {
	ID     string
	Budget *apd.Decimal
	Load   *apd.Decimal
	Edges  []Edge
}

// Graph holds the bipartite nominator/candidate graph of a single election.
// Candidates are kept in the order they were first targeted, edges refer to
// them by index so the election never depends on map iteration order.
type Graph struct {
	Candidates []Candidate
	Nominators []Nominator

	index map[string]int
}

// ParseStake parses a base-10, non-negative integer balance
func ParseStake(s string) (stake *big.Int, err error) {
	stake, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrMalformedStake
	}

	if stake.Sign() < 0 {
		return nil, ErrNegativeStake
	}

	return stake, nil
}

// Build a fresh graph from the voter list. Duplicate targets of a single voter
// are counted once, voters without targets end up as nominators without edges.
func Build(voters []Voter) (g *Graph, err error) {
	g = &Graph{
		Nominators: make([]Nominator, 0, len(voters)),
		index:      make(map[string]int),
	}

	//approval is summed as integers and converted once all voters are seen
	var approvals []*big.Int
	for _, v := range voters {
		stake, err := ParseStake(v.Stake)
		if err != nil {
			return nil, &InvalidInputError{NominatorID: v.NominatorID, Err: err}
		}

		n := Nominator{
			ID:     v.NominatorID,
			Budget: apd.NewWithBigInt(stake, 0),
			Load:   new(apd.Decimal),
			Edges:  make([]Edge, 0, len(v.Targets)),
		}

		seen := make(map[int]struct{}, len(v.Targets))
		for _, id := range v.Targets {
			ci, ok := g.index[id]
			if !ok {
				ci = len(g.Candidates)
				g.index[id] = ci
				g.Candidates = append(g.Candidates, Candidate{
					ID:          id,
					BackedStake: new(apd.Decimal),
					Score:       new(apd.Decimal),
				})

				approvals = append(approvals, new(big.Int))
			}

			if _, ok = seen[ci]; ok {
				continue //already targeted by this voter
			}

			seen[ci] = struct{}{}
			approvals[ci].Add(approvals[ci], stake)
			n.Edges = append(n.Edges, Edge{
				Candidate: ci,
				Load:      new(apd.Decimal),
				Weight:    new(apd.Decimal),
			})
		}

		g.Nominators = append(g.Nominators, n)
	}

	for i, a := range approvals {
		g.Candidates[i].ApprovalStake = apd.NewWithBigInt(a, 0)
	}

	return g, nil
}

// Lookup returns the index of the candidate with the given id
func (g *Graph) Lookup(id string) (idx int, ok bool) {
	idx, ok = g.index[id]
	return
}

// Candidate returns the candidate with the given id
func (g *Graph) Candidate(id string) (c *Candidate, ok bool) {
	idx, ok := g.Lookup(id)
	if !ok {
		return nil, false
	}

	return &g.Candidates[idx], true
}

// NumElected returns how many candidates are currently marked as elected
func (g *Graph) NumElected() (n int) {
	for _, c := range g.Candidates {
		if c.Elected {
			n++
		}
	}

	return
}

// Committed returns the sum of the weights on all edges of the nominator
func (n *Nominator) Committed(c *apd.Context) (total *apd.Decimal, err error) {
	ed := apd.MakeErrDecimal(c)
	total = new(apd.Decimal)
	for _, e := range n.Edges {
		total = ed.Add(new(apd.Decimal), total, e.Weight)
	}

	return total, ed.Err()
}

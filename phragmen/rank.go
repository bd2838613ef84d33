package phragmen

import (
	"sort"

	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
)

// ValidatorInfo is a single entry in the ranked election outcome
type ValidatorInfo struct {
	ValidatorID string
	Elected     bool
	BackedStake *apd.Decimal
	Score       *apd.Decimal
}

// Result of a predicted election
type Result struct {

	//Ranked holds every candidate, sorted by backed stake descending
	Ranked []ValidatorInfo

	//Winners holds the elected candidate ids in the order they were elected
	Winners []string

	//Nominators hold the final edge weights of every voter, edges refer to
	//the entries in Candidates by index
	Nominators []Nominator
	Candidates []Candidate
}

// SeqPhragmen builds the graph for the voters, elects count candidates,
// equalises the backing and ranks the outcome.
func SeqPhragmen(p *Params, voters []Voter, count int) (res *Result, err error) {
	g, err := Build(voters)
	if err != nil {
		return nil, err
	}

	winners, err := Elect(p, g, count)
	if err != nil {
		return nil, err
	}

	err = Equalise(p, g, p.Iterations)
	if err != nil {
		return nil, err
	}

	ranked, err := Rank(p, g)
	if err != nil {
		return nil, err
	}

	res = &Result{
		Ranked:     ranked,
		Nominators: g.Nominators,
		Candidates: g.Candidates,
	}

	for _, w := range winners {
		res.Winners = append(res.Winners, g.Candidates[w].ID)
	}

	return res, nil
}

// Rank lists every candidate of the graph by backed stake, descending.
// Unelected candidates are listed with the inverse of their score so they
// order among themselves, a zero score lists as zero.
func Rank(p *Params, g *Graph) (ranked []ValidatorInfo, err error) {
	ed := apd.MakeErrDecimal(p.DecimalContext)
	one := apd.New(1, 0)

	ranked = make([]ValidatorInfo, 0, len(g.Candidates))
	for _, c := range g.Candidates {
		vi := ValidatorInfo{
			ValidatorID: c.ID,
			Elected:     c.Elected,
			Score:       new(apd.Decimal).Set(c.Score),
		}

		switch {
		case c.Elected:
			vi.BackedStake = new(apd.Decimal).Set(c.BackedStake)
		case c.Score.IsZero():
			vi.BackedStake = new(apd.Decimal)
		default:
			vi.BackedStake = ed.Quo(new(apd.Decimal), one, c.Score)
		}

		ranked = append(ranked, vi)
	}

	if err = ed.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to compute display stake")
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if cmp := ranked[i].BackedStake.Cmp(ranked[j].BackedStake); cmp != 0 {
			return cmp > 0
		}

		return ranked[i].Elected && !ranked[j].Elected
	})

	return ranked, nil
}

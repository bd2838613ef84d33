package phragmen

import (
	"errors"
	"testing"

	"github.com/advanderveer/go-test"
	"github.com/cockroachdb/apd"
)

func TestEqualiseSplitsEvenly(t *testing.T) {
	p := DefaultParams()
	g := mustBuild(t,
		Voter{NominatorID: "n1", Stake: "100", Targets: []string{"A", "B"}},
		Voter{NominatorID: "n2", Stake: "10", Targets: []string{"A"}},
		Voter{NominatorID: "n3", Stake: "10", Targets: []string{"B"}},
	)

	_, err := Elect(p, g, 2)
	test.Ok(t, err)

	//sequential phragmen leaves A with a bit more backing: 110/210 of n1
	a, _ := g.Candidate("A")
	b, _ := g.Candidate("B")
	test.Assert(t, a.BackedStake.Cmp(b.BackedStake) > 0, "A should be backed more before equalising")

	test.Ok(t, Equalise(p, g, 1))
	decAbout(t, "60", a.BackedStake)
	decAbout(t, "60", b.BackedStake)
	decAbout(t, "50", g.Nominators[0].Edges[0].Weight)
	decAbout(t, "50", g.Nominators[0].Edges[1].Weight)

	//single edge nominators are left alone
	decAbout(t, "10", g.Nominators[1].Edges[0].Weight)
	decAbout(t, "10", g.Nominators[2].Edges[0].Weight)
}

func TestEqualiseWithdrawsFromHighestBacked(t *testing.T) {
	p := DefaultParams()
	g := mustBuild(t,
		Voter{NominatorID: "n", Stake: "10", Targets: []string{"B", "A"}},
		Voter{NominatorID: "m", Stake: "100", Targets: []string{"B"}},
	)

	//setup an outcome in which n splits its budget evenly
	a, _ := g.Candidate("A")
	b, _ := g.Candidate("B")
	a.Elected, b.Elected = true, true
	g.Nominators[0].Edges[0].Weight = apd.New(5, 0)
	g.Nominators[0].Edges[1].Weight = apd.New(5, 0)
	g.Nominators[1].Edges[0].Weight = apd.New(100, 0)
	a.BackedStake = apd.New(5, 0)
	b.BackedStake = apd.New(105, 0)

	test.Ok(t, Equalise(p, g, 1))

	//topping up B to A's level would take more than n's budget, so all of it
	//goes to A instead
	decEquals(t, "0", g.Nominators[0].Edges[0].Weight)
	decEquals(t, "10", g.Nominators[0].Edges[1].Weight)
	decEquals(t, "10", a.BackedStake)
	decEquals(t, "100", b.BackedStake)
	decEquals(t, "100", g.Nominators[1].Edges[0].Weight)
}

func TestEqualisePartialTopUp(t *testing.T) {
	p := DefaultParams()
	g := mustBuild(t,
		Voter{NominatorID: "n", Stake: "30", Targets: []string{"A", "B", "C"}},
		Voter{NominatorID: "x", Stake: "10", Targets: []string{"A"}},
		Voter{NominatorID: "y", Stake: "20", Targets: []string{"B"}},
		Voter{NominatorID: "z", Stake: "100", Targets: []string{"C"}},
	)

	for i := range g.Candidates {
		g.Candidates[i].Elected = true
	}

	//others: A=10, B=20, C=100, n puts everything on C
	g.Nominators[0].Edges[2].Weight = apd.New(30, 0)
	g.Nominators[1].Edges[0].Weight = apd.New(10, 0)
	g.Nominators[2].Edges[0].Weight = apd.New(20, 0)
	g.Nominators[3].Edges[0].Weight = apd.New(100, 0)
	g.Candidates[0].BackedStake = apd.New(10, 0)
	g.Candidates[1].BackedStake = apd.New(20, 0)
	g.Candidates[2].BackedStake = apd.New(130, 0)

	test.Ok(t, Equalise(p, g, 1))

	//A and B are both raised to (30+10+20)/2 = 30, C gets nothing
	decEquals(t, "20", g.Nominators[0].Edges[0].Weight)
	decEquals(t, "10", g.Nominators[0].Edges[1].Weight)
	decEquals(t, "0", g.Nominators[0].Edges[2].Weight)
	decEquals(t, "30", g.Candidates[0].BackedStake)
	decEquals(t, "30", g.Candidates[1].BackedStake)
	decEquals(t, "100", g.Candidates[2].BackedStake)

	committed, err := g.Nominators[0].Committed(p.DecimalContext)
	test.Ok(t, err)
	decEquals(t, "30", committed)
}

func TestEqualiseSkipsUnelectedEdges(t *testing.T) {
	p := DefaultParams()
	g := mustBuild(t,
		Voter{NominatorID: "n1", Stake: "100", Targets: []string{"A", "B", "C"}},
		Voter{NominatorID: "n2", Stake: "500", Targets: []string{"C"}},
	)

	_, err := Elect(p, g, 1)
	test.Ok(t, err)

	c, _ := g.Candidate("C")
	test.Equals(t, true, c.Elected)

	test.Ok(t, Equalise(p, g, 10))

	//n1 has just one elected edge and is untouched
	decEquals(t, "100", g.Nominators[0].Edges[2].Weight)
	decEquals(t, "0", g.Nominators[0].Edges[0].Weight)
	decEquals(t, "0", g.Nominators[0].Edges[1].Weight)
	decEquals(t, "600", c.BackedStake)
}

func TestEqualiseZeroIterations(t *testing.T) {
	p := DefaultParams()
	g := mustBuild(t,
		Voter{NominatorID: "n1", Stake: "100", Targets: []string{"A", "B"}},
		Voter{NominatorID: "n2", Stake: "10", Targets: []string{"A"}},
		Voter{NominatorID: "n3", Stake: "10", Targets: []string{"B"}},
	)

	_, err := Elect(p, g, 2)
	test.Ok(t, err)

	a, _ := g.Candidate("A")
	before := new(apd.Decimal).Set(a.BackedStake)

	test.Ok(t, Equalise(p, g, 0))
	test.Equals(t, 0, before.Cmp(a.BackedStake))
}

func TestEqualiseNegativeIterations(t *testing.T) {
	g := mustBuild(t, Voter{NominatorID: "n1", Stake: "100", Targets: []string{"A"}})
	err := Equalise(DefaultParams(), g, -1)
	test.Equals(t, true, errors.Is(err, ErrNegativeIterations))
}

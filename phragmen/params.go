package phragmen

import (
	"github.com/cockroachdb/apd"
)

// Params configures the election prediction
type Params struct {

	//DecimalContext is used for all stake and score arithmetic
	DecimalContext *apd.Context

	//Iterations is the number of equalise passes that run after the election
	Iterations int

	//UnreachableScore is assigned to unelected candidates without any approval
	//stake, it keeps them orderable while they can never beat a backed candidate
	UnreachableScore *apd.Decimal
}

//DefaultParams returns 60 digit decimals and 10 equalise passes
func DefaultParams() *Params {
	return &Params{
		DecimalContext:   apd.BaseContext.WithPrecision(60),
		Iterations:       10,
		UnreachableScore: apd.New(1000, 0),
	}
}

package voters

import "errors"

var (
	ErrLedgerNotFound   = errors.New("no staking ledger for stash")
	ErrBalanceMalformed = errors.New("balance is not a base-10 unsigned integer")
	ErrBalanceOverflow  = errors.New("balance doesn't fit in 256 bits")
)

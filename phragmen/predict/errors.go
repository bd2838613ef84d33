package main

import "errors"

var (
	ErrInputAmbiguous  = errors.New("exactly one of --voters, --chain or --snapshot must be given")
	ErrUnknownStore    = errors.New("unknown store kind")
	ErrNoDBDir         = errors.New("store needs a database directory")
	ErrOwnWithoutChain = errors.New("--own can only be used with --chain")
)

package voters

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

//chainJSON is the file representation of chain data, balances are decimal
//strings since they commonly exceed the range of JSON numbers
type chainJSON struct {
	Controllers        map[string]string       `json:"controllers"`
	Ledgers            map[string]string       `json:"ledgers"`
	Validators         []string                `json:"validators"`
	Nominators         map[string]*Nominations `json:"nominators"`
	LastNonZeroSlashes map[string]uint32       `json:"lastNonZeroSlashes"`
}

type snapshotJSON struct {
	Voters []struct {
		ID      string   `json:"id"`
		Stake   string   `json:"stake"`
		Targets []string `json:"targets"`
	} `json:"voters"`
	Targets []string `json:"targets"`
}

// ParseBalance parses a base-10 unsigned integer balance
func ParseBalance(s string) (b *uint256.Int, err error) {
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok || bi.Sign() < 0 {
		return nil, ErrBalanceMalformed
	}

	b, overflow := uint256.FromBig(bi)
	if overflow {
		return nil, ErrBalanceOverflow
	}

	return b, nil
}

// ReadChainData decodes chain data from JSON
func ReadChainData(r io.Reader) (d *ChainData, err error) {
	var cj chainJSON
	if err = json.NewDecoder(r).Decode(&cj); err != nil {
		return nil, errors.Wrap(err, "failed to decode chain data")
	}

	d = &ChainData{
		Controllers:        cj.Controllers,
		Ledgers:            make(map[string]*uint256.Int, len(cj.Ledgers)),
		Validators:         make(map[string]struct{}, len(cj.Validators)),
		Nominators:         cj.Nominators,
		LastNonZeroSlashes: cj.LastNonZeroSlashes,
	}

	for ctrl, s := range cj.Ledgers {
		d.Ledgers[ctrl], err = ParseBalance(s)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse ledger of '%s'", ctrl)
		}
	}

	for _, v := range cj.Validators {
		d.Validators[v] = struct{}{}
	}

	for stash, noms := range d.Nominators {
		if noms == nil {
			delete(d.Nominators, stash)
		}
	}

	return d, nil
}

// ReadSnapshot decodes an election snapshot from JSON
func ReadSnapshot(r io.Reader) (snap *Snapshot, err error) {
	var sj snapshotJSON
	if err = json.NewDecoder(r).Decode(&sj); err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot")
	}

	snap = &Snapshot{Targets: sj.Targets}
	for _, v := range sj.Voters {
		stake, err := ParseBalance(v.Stake)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse stake of '%s'", v.ID)
		}

		snap.Voters = append(snap.Voters, SnapshotVoter{ID: v.ID, Stake: stake, Targets: v.Targets})
	}

	return snap, nil
}

// ReadOwnTargets decodes a JSON object of stash to targets, used to replace the
// on-chain nominations of those stashes
func ReadOwnTargets(r io.Reader) (own map[string][]string, err error) {
	if err = json.NewDecoder(r).Decode(&own); err != nil {
		return nil, errors.Wrap(err, "failed to decode own targets")
	}

	return own, nil
}

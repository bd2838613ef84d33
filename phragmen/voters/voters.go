// Package voters assembles the election voter list from staking storage, either
// from the snapshot taken while an election is ongoing or from the current
// staking ledgers.
package voters

import (
	"sort"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/xxfoundation/wallet.xx.network/phragmen"
)

// Nominations as stored for a nominating stash
type Nominations struct {
	Targets     []string
	SubmittedIn uint32 //era in which the nominations were submitted
}

// ChainData holds the staking storage needed to build voters
type ChainData struct {
	Controllers        map[string]string       //stash to controller
	Ledgers            map[string]*uint256.Int //controller to active bonded balance
	Validators         map[string]struct{}     //stashes that intend to validate
	Nominators         map[string]*Nominations //nominating stashes
	LastNonZeroSlashes map[string]uint32       //validator to era of its last slash
}

// SnapshotVoter is a voter as recorded in an election snapshot
type SnapshotVoter struct {
	ID      string
	Stake   *uint256.Int
	Targets []string
}

// Snapshot of the voters and targets taken by the election provider
type Snapshot struct {
	Voters  []SnapshotVoter
	Targets []string
}

// Assemble builds voters from the snapshot if there is one and from the chain
// data otherwise. The own map replaces the targets of the given stashes. No
// voters are returned while the chain data is incomplete, not even from a
// snapshot.
func Assemble(d *ChainData, snap *Snapshot, own map[string][]string) (voters []phragmen.Voter, err error) {
	if d == nil || len(d.Controllers) < 1 || len(d.Ledgers) < 1 || len(d.Validators) < 1 {
		return nil, nil
	}

	if snap != nil {
		return FromSnapshot(snap), nil
	}

	return FromChain(d, own)
}

// FromSnapshot only keeps targets that are part of the snapshot, voters that
// end up without any target are left out
func FromSnapshot(snap *Snapshot) (voters []phragmen.Voter) {
	targets := make(map[string]struct{}, len(snap.Targets))
	for _, t := range snap.Targets {
		targets[t] = struct{}{}
	}

	for _, sv := range snap.Voters {
		filtered := uniq(sv.Targets, func(t string) bool {
			_, ok := targets[t]
			return ok
		})

		if len(filtered) < 1 {
			continue
		}

		voters = append(voters, phragmen.Voter{
			NominatorID: sv.ID,
			Stake:       balance(sv.Stake),
			Targets:     filtered,
		})
	}

	return
}

// FromChain builds voters from the staking ledgers: every nominator with at
// least one valid target followed by a self vote of every validator. A target
// is valid if it is a validator that wasn't slashed after the nominations were
// submitted. Stashes are visited in sorted order.
func FromChain(d *ChainData, own map[string][]string) (voters []phragmen.Voter, err error) {
	for _, stash := range sortedKeys(d.Nominators) {
		noms := d.Nominators[stash]
		targets := noms.Targets
		if ot, ok := own[stash]; ok && len(ot) > 0 {
			targets = ot
		}

		filtered := uniq(targets, func(t string) bool {
			if _, ok := d.Validators[t]; !ok {
				return false
			}

			return noms.SubmittedIn >= d.LastNonZeroSlashes[t]
		})

		if len(filtered) < 1 {
			continue
		}

		active, err := d.active(stash)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read stake of nominator '%s'", stash)
		}

		voters = append(voters, phragmen.Voter{
			NominatorID: stash,
			Stake:       balance(active),
			Targets:     filtered,
		})
	}

	for _, stash := range sortedKeys(d.Validators) {
		active, err := d.active(stash)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read stake of validator '%s'", stash)
		}

		voters = append(voters, phragmen.Voter{
			NominatorID: stash,
			Stake:       balance(active),
			Targets:     []string{stash},
		})
	}

	return voters, nil
}

func (d *ChainData) active(stash string) (active *uint256.Int, err error) {
	ctrl, ok := d.Controllers[stash]
	if !ok {
		return nil, ErrLedgerNotFound
	}

	active, ok = d.Ledgers[ctrl]
	if !ok || active == nil {
		return nil, ErrLedgerNotFound
	}

	return active, nil
}

//uniq returns the targets that pass the filter, without duplicates
func uniq(targets []string, keep func(t string) bool) (res []string) {
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if _, ok := seen[t]; ok || !keep(t) {
			continue
		}

		seen[t] = struct{}{}
		res = append(res, t)
	}

	return
}

func balance(b *uint256.Int) string {
	if b == nil {
		return "0"
	}

	return b.ToBig().String()
}

func sortedKeys[V any](m map[string]V) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return
}

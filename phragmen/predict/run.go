package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/xxfoundation/wallet.xx.network/phragmen"
	"github.com/xxfoundation/wallet.xx.network/phragmen/store"
	"github.com/xxfoundation/wallet.xx.network/phragmen/voters"
)

//Input names the files voters are read from, exactly one must be set
type Input struct {
	Voters   string //json list of voters
	Chain    string //json staking storage
	Snapshot string //json election snapshot

	//Own optionally replaces the targets of some stashes, chain input only
	Own string
}

//readVoters loads the voter list from whichever input file is given
func readVoters(in Input) (vs []phragmen.Voter, err error) {
	var n int
	for _, p := range []string{in.Voters, in.Chain, in.Snapshot} {
		if p != "" {
			n++
		}
	}

	if n != 1 {
		return nil, ErrInputAmbiguous
	}

	if in.Own != "" && in.Chain == "" {
		return nil, ErrOwnWithoutChain
	}

	open := func(p string) (*os.File, error) {
		f, err := os.Open(p)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open input")
		}

		return f, nil
	}

	switch {
	case in.Voters != "":
		f, err := open(in.Voters)
		if err != nil {
			return nil, err
		}

		defer f.Close()
		if err = json.NewDecoder(f).Decode(&vs); err != nil {
			return nil, errors.Wrap(err, "failed to decode voters")
		}

		return vs, nil
	case in.Chain != "":
		f, err := open(in.Chain)
		if err != nil {
			return nil, err
		}

		defer f.Close()
		d, err := voters.ReadChainData(f)
		if err != nil {
			return nil, err
		}

		var own map[string][]string
		if in.Own != "" {
			of, err := open(in.Own)
			if err != nil {
				return nil, err
			}

			defer of.Close()
			own, err = voters.ReadOwnTargets(of)
			if err != nil {
				return nil, err
			}
		}

		return voters.Assemble(d, nil, own)
	default:
		f, err := open(in.Snapshot)
		if err != nil {
			return nil, err
		}

		defer f.Close()
		snap, err := voters.ReadSnapshot(f)
		if err != nil {
			return nil, err
		}

		return voters.FromSnapshot(snap), nil
	}
}

//openStore returns the configured store, or nil when predictions aren't kept
func openStore(conf *Conf) (s store.Store, err error) {
	switch conf.Store {
	case "", "none":
		return nil, nil
	case "bolt", "badger":
	default:
		return nil, errors.Wrapf(ErrUnknownStore, "'%s'", conf.Store)
	}

	if conf.DBDir == "" {
		return nil, ErrNoDBDir
	}

	err = os.MkdirAll(conf.DBDir, 0700)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create database dir")
	}

	if conf.Store == "bolt" {
		return store.NewBolt(conf.DBDir)
	}

	return store.NewBadger(conf.DBDir)
}

//run predicts the election and writes the outcome to w
func run(conf *Conf, in Input, asJSON bool, w io.Writer) (err error) {
	logs := log.New(conf.LogWriter, "", 0)

	vs, err := readVoters(in)
	if err != nil {
		return err
	}

	logs.Printf("[INFO] read %d voters, predicting %d seats", len(vs), conf.Count)

	s, err := openStore(conf)
	if err != nil {
		return err
	}

	if s != nil {
		defer func() {
			if cerr := s.Close(); cerr != nil {
				logs.Printf("[ERRO] failed to close store: %v", cerr)
			}
		}()
	}

	p := conf.Params()
	rec, err := store.NewCache(conf.LogWriter, p, s).Predict(vs, conf.Count)
	if err != nil {
		return errors.Wrap(err, "failed to predict election")
	}

	pred, err := rec.Prediction(p.DecimalContext)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(w, rec, pred)
	}

	return writeTable(w, rec, pred)
}

type jsonEntry struct {
	ValidatorID string `json:"validatorId"`
	Elected     bool   `json:"elected"`
	BackedStake string `json:"backedStake"`
}

func writeJSON(w io.Writer, rec *store.Record, pred phragmen.Prediction) (err error) {
	entries := make([]jsonEntry, 0, len(rec.Ranked))
	for _, e := range rec.Ranked {
		entries = append(entries, jsonEntry{
			ValidatorID: e.ValidatorID,
			Elected:     e.Elected,
			BackedStake: pred[e.ValidatorID].BackedStake.String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeTable(w io.Writer, rec *store.Record, pred phragmen.Prediction) (err error) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Validator", "Elected", "Backed stake"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, e := range rec.Ranked {
		elected := ""
		if e.Elected {
			elected = "yes"
		}

		table.Append([]string{
			strconv.Itoa(i + 1),
			e.ValidatorID,
			elected,
			pred[e.ValidatorID].BackedStake.String(),
		})
	}

	table.SetFooter([]string{"", "", fmt.Sprintf("%d/%d", len(rec.Winners), len(rec.Ranked)), ""})
	table.Render()
	return nil
}

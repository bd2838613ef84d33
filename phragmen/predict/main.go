package main

import (
	"log"
	"os"

	"gopkg.in/urfave/cli.v1"
)

func main() {
	logs := log.New(os.Stderr, "", 0)

	app := cli.NewApp()
	app.Name = "predict"
	app.Usage = "predict the validator election from a nominator voter list"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "TOML configuration file"},
		cli.StringFlag{Name: "voters", Usage: "JSON file with the voter list"},
		cli.StringFlag{Name: "chain", Usage: "JSON file with staking storage"},
		cli.StringFlag{Name: "snapshot", Usage: "JSON file with an election snapshot"},
		cli.StringFlag{Name: "own", Usage: "JSON file of stash to targets that replace their nominations"},
		cli.IntFlag{Name: "count, n", Usage: "number of validator seats"},
		cli.StringFlag{Name: "store", Usage: "keep predictions in 'bolt', 'badger' or 'none'"},
		cli.StringFlag{Name: "db", Usage: "database directory for the store"},
		cli.BoolFlag{Name: "json", Usage: "print the outcome as JSON"},
	}

	app.Action = func(ctx *cli.Context) error {
		conf, err := LoadConf(ctx.String("config"))
		if err != nil {
			return err
		}

		if ctx.IsSet("count") {
			conf.Count = ctx.Int("count")
		}

		if ctx.IsSet("store") {
			conf.Store = ctx.String("store")
		}

		if ctx.IsSet("db") {
			conf.DBDir = ctx.String("db")
		}

		return run(conf, Input{
			Voters:   ctx.String("voters"),
			Chain:    ctx.String("chain"),
			Snapshot: ctx.String("snapshot"),
			Own:      ctx.String("own"),
		}, ctx.Bool("json"), os.Stdout)
	}

	if err := app.Run(os.Args); err != nil {
		logs.Fatalf("[ERRO] %v", err)
	}
}

package main

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/cockroachdb/apd"
	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"github.com/xxfoundation/wallet.xx.network/phragmen"
)

//Conf configures a prediction run
type Conf struct {
	//Logs will be written to the writer
	LogWriter io.Writer `toml:"-"`

	//Count is the number of validator seats up for election
	Count int `toml:"count"`

	//Iterations of the equalise step
	Iterations int `toml:"iterations"`

	//Precision in significant digits of the decimal arithmetic
	Precision uint32 `toml:"precision"`

	//Store selects where predictions are kept: "bolt", "badger" or "none"
	Store string `toml:"store"`

	//DBDir is the directory of the bolt or badger database
	DBDir string `toml:"db_dir"`
}

//DefaultConf returns sensible defaults
func DefaultConf() *Conf {
	p := phragmen.DefaultParams()
	return &Conf{
		LogWriter:  os.Stderr,
		Count:      0,
		Iterations: p.Iterations,
		Precision:  p.DecimalContext.Precision,
		Store:      "none",
	}
}

//LoadConf overwrites the defaults with the settings from a TOML file
func LoadConf(path string) (conf *Conf, err error) {
	conf = DefaultConf()
	if path == "" {
		return conf, nil
	}

	d, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	err = toml.Unmarshal(d, conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	return conf, nil
}

//Params returns the election params for this configuration
func (conf *Conf) Params() *phragmen.Params {
	p := phragmen.DefaultParams()
	p.Iterations = conf.Iterations
	if conf.Precision > 0 {
		p.DecimalContext = apd.BaseContext.WithPrecision(conf.Precision)
	}

	return p
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/cmd/govlockd/app"
	"github.com/iov-one/govlock/commands/server"
	"github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

const usage = `govlockd: multisig timelock governance node

Usage: govlockd [-home dir] [-log_level level] <command> [args]

Commands:
  init      write the app state into the genesis file
            -signers addr1,addr2 -approvals n -delay seconds
  start     serve the application over the abci socket
            -bind tcp://localhost:26658 -debug
  version   print the version
  help      print this message

Flags:
`

type command func(logger log.Logger, home string, args []string) error

var commands = map[string]command{
	"init": func(logger log.Logger, home string, args []string) error {
		return server.InitCmd(app.GenInitOptions, logger, home, args)
	},
	"start": func(logger log.Logger, home string, args []string) error {
		return server.StartCmd(app.GenerateApp, logger, home, args)
	},
	"version": func(log.Logger, string, []string) error {
		fmt.Println(govlock.Version())
		return nil
	},
	"help": func(log.Logger, string, []string) error {
		flag.Usage()
		return nil
	},
}

func main() {
	home := flag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".govlock"), "directory to store files under")
	level := flag.String("log_level", "info", "log level, for example info or govlock:debug,*:error")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	logger, err := flags.ParseLogLevel(*level, log.NewTMLogger(log.NewSyncWriter(os.Stdout)), "info")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
	if err := cmd(logger.With("module", "govlock"), *home, flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

package server

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/govlock/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

func parseFlags(args []string) (string, bool, error) {
	var addr string
	var debug bool
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&addr, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&debug, flagDebug, false, "call stack returned on error")
	err := startFlags.Parse(args)
	return addr, debug, err
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(string, log.Logger, bool) (abci.Application, error)

// StartCmd initializes the application, and serves it over the abci socket
// until the process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	addr, debug, err := parseFlags(args)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	app, err := gen(home, logger, debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start server")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	logger.Info("Stopping ABCI app", "signal", <-sig)
	return svr.Stop()
}

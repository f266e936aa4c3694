/*
Package app links together all the various components
to construct the govlockd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/app"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/store/iavl"
	"github.com/iov-one/govlock/x"
	"github.com/iov-one/govlock/x/eventlog"
	"github.com/iov-one/govlock/x/sigs"
	"github.com/iov-one/govlock/x/timelock"
	"github.com/iov-one/govlock/x/upgrade"
	"github.com/iov-one/govlock/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported through the abci Info call.
const Name = "govlockd"

// Authenticator returns the authentication used by all handlers. Signatures
// authenticate the transaction signers, the timelock authenticates itself
// while delivering the call of an executed proposal.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, timelock.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the message
		// fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// CallRegistry returns the registry of every message that can be encoded
// as a call.
func CallRegistry() *govlock.CallRegistry {
	r := govlock.NewCallRegistry()
	timelock.RegisterCalls(r)
	upgrade.RegisterCalls(r)
	return r
}

// Dispatcher returns the handler that routes transactions and inner calls
// to all registered extensions.
func Dispatcher(authFn x.Authenticator, calls *govlock.CallRegistry) *app.Dispatcher {
	r := app.NewRouter()
	d := app.NewDispatcher(r, calls)
	timelock.RegisterRoutes(r, authFn, d)
	upgrade.RegisterRoutes(r, authFn)
	return d
}

// QueryRouter returns a default query router,
// allowing access to "/auth", "/proposals", "/contracts", "/events" and
// "/timelock/config"
func QueryRouter() govlock.QueryRouter {
	r := govlock.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		timelock.RegisterQuery,
		upgrade.RegisterQuery,
		eventlog.RegisterQuery,
	)
	return r
}

// Stack wires up a standard dispatcher with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(calls *govlock.CallRegistry) govlock.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Dispatcher(authFn, calls))
}

// Initializers returns all extensions that read the genesis.
func Initializers() govlock.Initializer {
	return app.ChainInitializers(
		&timelock.Initializer{},
		&upgrade.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h govlock.Handler,
	tx govlock.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path keeps the data in memory.
func CommitKVStore(dbPath string) (govlock.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStore("", Name), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "govlock.db")
	}

	calls := CallRegistry()
	application, err := Application(Name, Stack(calls), app.NewTxDecoder(calls), dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())
	application.WithLogger(logger)
	return application, nil
}

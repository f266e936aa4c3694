package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the ABCI calls that do not process transactions:
// handshake, genesis, queries and commits. BaseApp embeds it.
//
// ABCI calls that do not carry user input panic on failure, as there is no
// way to report an error to tendermint.
type StoreApp struct {
	name        string
	state       *state
	logger      log.Logger
	initializer govlock.Initializer
	queryRouter govlock.QueryRouter
	debug       bool

	// chainID is empty until the genesis is loaded.
	chainID string
	// baseContext holds values valid for the lifetime of the app.
	baseContext govlock.Context
	// blockContext extends baseContext with the current block.
	blockContext govlock.Context
}

// NewStoreApp loads the latest state of the store. The chain id is
// restored when the genesis was loaded before.
func NewStoreApp(name string, kv govlock.CommitKVStore, qr govlock.QueryRouter, ctx govlock.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		state:       loadState(kv),
		queryRouter: qr,
		baseContext: ctx,
	}
	s = s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(s.DeliverStore())
	if err != nil {
		panic(err)
	}
	if chainID != "" {
		s.setChainID(chainID)
	}

	info, err := s.state.latest()
	if err != nil {
		panic(err)
	}
	s.blockContext = govlock.WithHeight(s.baseContext, info.Version)
	return s
}

func (s *StoreApp) WithInit(init govlock.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug exposes internal error messages in responses.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = govlock.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger                     { return s.logger }
func (s *StoreApp) GetChainID() string                     { return s.chainID }
func (s *StoreApp) BlockContext() govlock.Context          { return s.blockContext }
func (s *StoreApp) DeliverStore() govlock.CacheableKVStore { return s.state.deliver }
func (s *StoreApp) CheckStore() govlock.CacheableKVStore   { return s.state.check }

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.baseContext = govlock.WithChainID(s.baseContext, chainID)
}

// loadGenesis initializes all extensions from the app state. It runs once
// per chain.
func (s *StoreApp) loadGenesis(appState []byte, params govlock.GenesisParams) error {
	switch {
	case s.chainID != "":
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain %s", s.chainID)
	case len(appState) == 0:
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json")
	case s.initializer == nil:
		return errors.Wrap(errors.ErrHuman, "initializer not set")
	}

	var opts govlock.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(s.DeliverStore(), params.ChainID); err != nil {
		return err
	}
	s.setChainID(params.ChainID)
	return s.initializer.FromGenesis(opts, params, s.DeliverStore())
}

// Info reports the last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.state.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          govlock.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query reads the last committed state. The path selects the handler,
// "/<bucket>" or "/<bucket>/<index>", optionally followed by "?prefix" for
// a prefix query. Key and Value of the response are ResultSets of the same
// length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return govlock.QueryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", req.Path), s.debug)
	}

	info, err := s.state.latest()
	if err != nil {
		return govlock.QueryError(err, s.debug)
	}
	models, err := qh.Query(s.state.queryable(), mod, req.Data)
	if err != nil {
		return govlock.QueryError(err, s.debug)
	}
	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return govlock.QueryError(err, s.debug)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return govlock.QueryError(err, s.debug)
	}
	return res
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	params := govlock.GenesisParams{
		ChainID: req.ChainId,
		Time:    govlock.AsUnixTime(req.Time),
	}
	if err := s.loadGenesis(req.AppStateBytes, params); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock starts a new block context from the header.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := govlock.WithHeader(s.baseContext, req.Header)
	s.blockContext = govlock.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

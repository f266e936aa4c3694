package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/govlock/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// GenesisFile returns the path of the genesis file under given home.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state generated by gen into the genesis file under
// home. A genesis file with a random chain id is created if none exists
// yet, otherwise only its app_state is replaced.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := GenesisFile(home)
	if !fileExists(genFile) {
		if err := os.MkdirAll(filepath.Dir(genFile), 0755); err != nil {
			return errors.Wrap(err, "create config dir")
		}
		doc := GenesisDoc{}
		chainID, _ := json.Marshal(fmt.Sprintf("test-chain-%v", cmn.RandStr(6)))
		genTime, _ := json.Marshal(time.Now().UTC())
		doc["chain_id"] = chainID
		doc["genesis_time"] = genTime
		if err := writeGenesis(genFile, doc); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile)
	} else {
		logger.Info("Found genesis file", "path", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options); err != nil {
		return err
	}
	logger.Info("App state initialized", "path", genFile)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "read genesis")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	doc["app_state"] = options
	return writeGenesis(filename, doc)
}

func writeGenesis(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal genesis")
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	return nil
}

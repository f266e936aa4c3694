package app

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/crypto"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/x/timelock"
	"github.com/iov-one/govlock/x/upgrade"
)

// defaultDelay is used by the development genesis when no delay is given.
const defaultDelay = 600

// GenInitOptions produces the app state of a new chain. The timelock signer
// set is read from the arguments:
//
//   -signers addr1,addr2,...  signer addresses, hex or bech32 encoded
//   -approvals n              required approvals (default: all signers)
//   -delay seconds            execution delay
//   -seed hex -path path      derive the development signer instead of
//                             generating a random one
//
// If no signer is given, a development key is created and printed out so the
// chain can be used right away.
func GenInitOptions(args []string) (json.RawMessage, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	signersFlag := fs.String("signers", "", "comma separated timelock signer addresses")
	approvals := fs.Uint("approvals", 0, "required approvals, all signers if zero")
	delay := fs.Int64("delay", defaultDelay, "delay in seconds between proposal creation and execution")
	seed := fs.String("seed", "", "hex encoded master seed of the development signer")
	path := fs.String("path", crypto.DefaultPath, "derivation path of the development signer")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	var signers []govlock.Address
	if *signersFlag == "" {
		key, err := devSigner(*seed, *path)
		if err != nil {
			return nil, err
		}
		addr, keys, err := describeKey(key)
		if err != nil {
			return nil, err
		}
		fmt.Println(keys)
		signers = append(signers, addr)
	} else {
		for _, raw := range strings.Split(*signersFlag, ",") {
			addr, err := govlock.ParseAddress(strings.TrimSpace(raw))
			if err != nil {
				return nil, errors.Wrapf(err, "signer %q", raw)
			}
			signers = append(signers, addr)
		}
	}
	required := uint32(*approvals)
	if required == 0 {
		required = uint32(len(signers))
	}

	conf := timelock.Configuration{
		Metadata:          &govlock.Metadata{Schema: 1},
		Signers:           signers,
		RequiredApprovals: required,
		DelaySeconds:      *delay,
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "timelock configuration")
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			timelock.ConfigPackage: conf,
		},
		"upgrade": map[string]interface{}{
			"contracts": []upgrade.GenesisContract{},
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// devSigner derives the development signer key from a hex seed, or
// generates a random one when no seed is given.
func devSigner(seed, path string) (*crypto.PrivateKey, error) {
	if seed == "" {
		return crypto.GenPrivKeyEd25519(), nil
	}
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "seed: %s", err)
	}
	return crypto.DeriveEd25519(raw, path)
}

// describeKey returns the address of the key together with its json
// representation.
func describeKey(key *crypto.PrivateKey) (govlock.Address, string, error) {
	pub := key.PublicKey()
	keys, err := json.MarshalIndent(output{Pubkey: pub, Secret: key}, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "marshal keys")
	}
	return pub.Address(), string(keys), nil
}

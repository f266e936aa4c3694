package timelock

import (
	"time"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/gconf"
)

// ConfigPackage is the gconf package name the configuration is stored under.
const ConfigPackage = "timelock"

const maxSigners = 100

var _ gconf.Configuration = (*Configuration)(nil)

// Validate checks the signer set.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())

	switch n := len(c.Signers); {
	case n == 0:
		errs = errors.AppendField(errs, "Signers", errors.Wrap(errors.ErrEmpty, "required"))
	case n > maxSigners:
		errs = errors.AppendField(errs, "Signers", errors.Wrapf(errors.ErrInput, "more than %d", maxSigners))
	}
	seen := make(map[string]struct{}, len(c.Signers))
	for i, s := range c.Signers {
		if err := s.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Signers", err, "signer %d", i))
			continue
		}
		if _, ok := seen[string(s)]; ok {
			errs = errors.Append(errs, errors.Field("Signers", errors.ErrDuplicate, "signer %s", s))
		}
		seen[string(s)] = struct{}{}
	}
	if c.RequiredApprovals < 1 || int(c.RequiredApprovals) > len(c.Signers) {
		errs = errors.AppendField(errs, "RequiredApprovals",
			errors.Wrapf(errors.ErrInput, "must be between 1 and %d", len(c.Signers)))
	}
	if c.DelaySeconds < 0 {
		errs = errors.AppendField(errs, "DelaySeconds", errors.Wrap(errors.ErrInput, "negative"))
	}
	return errs
}

// IsSigner returns true if given address belongs to the signer set.
func (c *Configuration) IsSigner(addr govlock.Address) bool {
	for _, s := range c.Signers {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

// Delay returns the minimum time between a proposal creation and its
// execution.
func (c *Configuration) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigPackage, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

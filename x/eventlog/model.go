package eventlog

import (
	"regexp"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/orm"
)

const (
	// BucketName is where the events are stored.
	BucketName = "events"

	indexNameContract = "contract"
)

var isKind = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Payload is implemented by every event declared by an extension. Kind must
// be unique across the application, "<extension>/<name>" is the expected
// format.
type Payload interface {
	govlock.Marshaller
	Kind() string
}

var _ orm.CloneableData = (*Event)(nil)

// Validate ensures the event is complete.
func (e *Event) Validate() error {
	if err := e.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if !isKind(e.Kind) {
		return errors.Wrapf(errors.ErrModel, "invalid kind %q", e.Kind)
	}
	if e.Height < 0 {
		return errors.Wrap(errors.ErrModel, "negative height")
	}
	if e.Contract != nil {
		if err := e.Contract.Validate(); err != nil {
			return errors.Wrap(err, "contract")
		}
	}
	return nil
}

// Copy makes a deep copy of the event.
func (e *Event) Copy() orm.CloneableData {
	return &Event{
		Metadata: e.Metadata.Copy(),
		Height:   e.Height,
		Time:     e.Time,
		Contract: append(govlock.Address(nil), e.Contract...),
		Kind:     e.Kind,
		Data:     append([]byte(nil), e.Data...),
	}
}

// Load deserializes the event payload into given destination.
func (e *Event) Load(dst govlock.Persistent) error {
	if err := dst.Unmarshal(e.Data); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s event: %s", e.Kind, err)
	}
	return nil
}

// Bucket stores events under an increasing sequence key.
type Bucket struct {
	orm.IDGenBucket
}

// NewBucket returns a bucket for appending events.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Event{})).
		WithIndex(indexNameContract, contractIndexer, false)
	return Bucket{
		IDGenBucket: orm.WithSeqIDGenerator(b, orm.SeqID),
	}
}

func contractIndexer(obj orm.Object) ([]byte, error) {
	e, err := asEvent(obj)
	if err != nil {
		return nil, err
	}
	if len(e.Contract) == 0 {
		return nil, nil
	}
	return e.Contract, nil
}

func asEvent(obj orm.Object) (*Event, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no event")
	}
	e, ok := obj.Value().(*Event)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return e, nil
}

// ByContract returns all events emitted by given contract, oldest first.
func (b Bucket) ByContract(db govlock.ReadOnlyKVStore, contract govlock.Address) ([]*Event, error) {
	objs, err := b.GetIndexed(db, indexNameContract, contract)
	if err != nil {
		return nil, errors.Wrap(err, "contract index")
	}
	return asEvents(objs)
}

// All returns every event stored in the log, oldest first.
func (b Bucket) All(db govlock.ReadOnlyKVStore) ([]*Event, error) {
	models, err := b.Query(db, govlock.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	events := make([]*Event, 0, len(models))
	for _, m := range models {
		var e Event
		if err := e.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrapf(errors.ErrState, "corrupted event: %s", err)
		}
		events = append(events, &e)
	}
	return events, nil
}

func asEvents(objs []orm.Object) ([]*Event, error) {
	events := make([]*Event, 0, len(objs))
	for _, o := range objs {
		e, err := asEvent(o)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Emit appends given payload to the log. The event is attributed to the
// contract currently called and stamped with the block height and time.
// Returns the key of the created event.
func Emit(ctx govlock.Context, db govlock.KVStore, payload Payload) ([]byte, error) {
	raw, err := payload.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s", payload.Kind())
	}
	now, err := govlock.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "event time")
	}
	height, _ := govlock.GetHeight(ctx)
	contract, _ := govlock.GetContract(ctx)

	event := &Event{
		Metadata: &govlock.Metadata{Schema: 1},
		Height:   height,
		Time:     govlock.AsUnixTime(now),
		Contract: contract,
		Kind:     payload.Kind(),
		Data:     raw,
	}
	obj, err := NewBucket().Create(db, event)
	if err != nil {
		return nil, errors.Wrapf(err, "append %s", payload.Kind())
	}
	govlock.GetLogger(ctx).Debug("event emitted", "kind", event.Kind, "contract", contract)
	return obj.Key(), nil
}

// RegisterQuery exposes the log at /events and /events/contract.
func RegisterQuery(qr govlock.QueryRouter) {
	NewBucket().Register("events", qr)
}

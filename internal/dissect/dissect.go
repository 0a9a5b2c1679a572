package dissect

import (
	"errors"
	"fmt"
	"time"

	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/config"
	"github.com/KilimcininKorOglu/berx/internal/dap"
	"github.com/KilimcininKorOglu/berx/internal/ldap"
	"github.com/KilimcininKorOglu/berx/internal/logging"
	"github.com/KilimcininKorOglu/berx/internal/metrics"
	"github.com/KilimcininKorOglu/berx/internal/rose"
)

// Errors returned by New.
var (
	ErrInvalidConfig   = errors.New("dissect: invalid configuration")
	ErrDuplicateModule = errors.New("dissect: duplicate module")
	ErrUnknownModule   = errors.New("dissect: enabled protocol has no module")
)

// Module contributes types, extensions and a protocol registration.
type Module interface {
	Name() string
	Register(cb *codec.Builder, rb *rose.Builder) error
}

// Builtin returns the bundled protocol modules.
func Builtin() []Module {
	return []Module{ldap.Module{}, dap.Module{}}
}

// Dissector decodes messages of the registered protocols. It is safe for
// concurrent use.
type Dissector struct {
	types     *codec.Registry
	protocols *rose.Registry
	opts      codec.Options
	logger    logging.Logger
	metrics   *metrics.Recorder
}

// Option customizes a Dissector.
type Option func(*Dissector)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(d *Dissector) { d.logger = l }
}

// WithMetrics sets the metrics recorder, overriding metrics.enabled.
func WithMetrics(r *metrics.Recorder) Option {
	return func(d *Dissector) { d.metrics = r }
}

// New registers the modules enabled in cfg and freezes the registries.
// A nil cfg means config.DefaultConfig().
func New(cfg *config.Config, modules []Module, opts ...Option) (*Dissector, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	d := &Dissector{
		opts: codec.Options{
			MaxDepth:       cfg.Decoder.MaxDepth,
			StrictTrailing: cfg.Decoder.TrailingData == config.TrailingStrict,
		},
		logger: logging.NewNop(),
	}
	if cfg.Metrics.Enabled {
		d.metrics = metrics.NewRecorder(cfg.Metrics.Namespace)
	}
	for _, opt := range opts {
		opt(d)
	}

	byName := make(map[string]Module, len(modules))
	for _, m := range modules {
		if _, dup := byName[m.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModule, m.Name())
		}
		byName[m.Name()] = m
	}

	cb := codec.NewBuilder()
	rb := rose.NewBuilder()
	for _, name := range cfg.Protocols.Enabled {
		m, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
		}
		if err := m.Register(cb, rb); err != nil {
			return nil, fmt.Errorf("dissect: register %s: %w", name, err)
		}
		d.logger.Debug("registered protocol module", "module", name)
	}

	var err error
	if d.types, err = cb.Build(); err != nil {
		return nil, fmt.Errorf("dissect: build types: %w", err)
	}
	if d.protocols, err = rb.Build(d.types); err != nil {
		return nil, fmt.Errorf("dissect: build protocols: %w", err)
	}

	d.logger.Info("dissector ready",
		"protocols", len(d.protocols.Protocols()),
		"types", len(d.types.Types()),
		"extensions", len(d.types.Extensions()),
	)
	return d, nil
}

// Decode decodes one message of the protocol named by id (registration
// name or context OID) starting at offset.
func (d *Dissector) Decode(id string, buf []byte, offset int) *codec.Result {
	protocol := rose.GenericContext
	if p, ok := d.protocols.Lookup(id); ok {
		protocol = p.Name()
	}

	start := time.Now()
	res := d.protocols.Decode(id, buf, offset, d.opts)
	d.observe(protocol, offset, res, time.Since(start))
	return res
}

// DecodeAll decodes consecutive messages from buf, as read from a stream.
// It stops at the end of buf or after a message that consumed nothing or
// ran past the end of the capture.
func (d *Dissector) DecodeAll(id string, buf []byte) []*codec.Result {
	var results []*codec.Result
	for offset := 0; offset < len(buf); {
		res := d.Decode(id, buf, offset)
		results = append(results, res)
		if res.Consumed <= 0 || res.Has(codec.InsufficientData) {
			break
		}
		offset += res.Consumed
	}
	return results
}

// DecodeType decodes one value of a registered type.
func (d *Dissector) DecodeType(name string, buf []byte, offset int) (*codec.Result, error) {
	start := time.Now()
	res, err := d.types.DecodeType(name, buf, offset, d.opts)
	if err != nil {
		return nil, err
	}
	d.observe(name, offset, res, time.Since(start))
	return res, nil
}

func (d *Dissector) observe(protocol string, offset int, res *codec.Result, elapsed time.Duration) {
	d.metrics.Observe(protocol, res)

	log := d.logger.WithRequestID(logging.GenerateRequestID()).WithFields("protocol", protocol)
	log.Debug("decoded message",
		"offset", offset,
		"consumed", res.Consumed,
		"anomalies", len(res.Anomalies),
		"status", metrics.Status(res),
		"duration_us", elapsed.Microseconds(),
	)
	for _, a := range res.Anomalies {
		if a.Node == res.Root.Name {
			log.Warn("root anomaly", "kind", a.Kind.String(), "offset", a.Offset, "fatal", a.Fatal, "detail", a.Detail)
		}
	}
}

// Protocols returns the registered protocols sorted by name.
func (d *Dissector) Protocols() []*rose.Protocol {
	return d.protocols.Protocols()
}

// Types returns the type registry.
func (d *Dissector) Types() *codec.Registry {
	return d.types
}

// Metrics returns the recorder, or nil when metrics are disabled.
func (d *Dissector) Metrics() *metrics.Recorder {
	return d.metrics
}

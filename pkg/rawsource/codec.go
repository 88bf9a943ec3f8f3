package rawsource

import (
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/example/radio-source-codec/pkg/formatver"
)

// Codec binds a board and a document format version so tokens from one
// document can be converted without repeating them on every call. A Codec
// is immutable and safe for concurrent use.
type Codec struct {
	caps    Capabilities
	version formatver.Version
	legacy  bool
	limits  Limits
	gate    formatver.Gate
	logger  *zap.Logger
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithLimits overrides the default capacities.
func WithLimits(l Limits) CodecOption {
	return func(c *Codec) {
		c.limits = l
	}
}

// WithLogger makes the codec log which decode rule matched each token.
func WithLogger(logger *zap.Logger) CodecOption {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGate replaces the legacy-spelling threshold.
func WithGate(g formatver.Gate) CodecOption {
	return func(c *Codec) {
		c.gate = g
	}
}

// NewCodec returns a codec for board b reading documents written at version.
func NewCodec(b Capabilities, version formatver.Version, opts ...CodecOption) *Codec {
	c := &Codec{
		caps:    b,
		version: version,
		limits:  DefaultLimits(),
		gate:    formatver.DefaultGate(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.legacy = c.gate.IsLegacy(version)
	return c
}

// Version is the format version tokens are decoded against.
func (c *Codec) Version() formatver.Version { return c.version }

// Legacy reports whether the old stick, trim and timer spellings are accepted.
func (c *Codec) Legacy() bool { return c.legacy }

// Limits returns the capacities checked during decode.
func (c *Codec) Limits() Limits { return c.limits }

// Encode renders v in the current grammar.
func (c *Codec) Encode(v Value) string {
	return Encode(v, c.caps)
}

// Decode parses a token. It never fails; see the package-level Decode.
func (c *Codec) Decode(s string) Value {
	d := decoder{caps: c.caps, limits: c.limits, legacy: c.legacy}
	v, name := d.decode(s)
	if name == "" {
		c.logger.Debug("no decode rule matched", zap.String("token", s), zap.Bool("legacy", c.legacy))
	} else {
		c.logger.Debug("decoded source", zap.String("token", s), zap.String("rule", name), zap.Stringer("value", v))
	}
	return v
}

// WithVersion returns a copy of c reading documents written at version.
func (c *Codec) WithVersion(version formatver.Version) *Codec {
	cp := *c
	cp.version = version
	cp.legacy = cp.gate.IsLegacy(version)
	return &cp
}

// EncodeNode renders v as a plain YAML scalar.
func (c *Codec) EncodeNode(v Value) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Encode(v)}
}

// DecodeNode decodes a YAML scalar. Any other node kind is None.
func (c *Codec) DecodeNode(n *yaml.Node) Value {
	if n == nil {
		return NoneValue
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return NoneValue
	}
	return c.Decode(n.Value)
}

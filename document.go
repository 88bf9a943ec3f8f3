package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/example/radio-source-codec/pkg/board"
	"github.com/example/radio-source-codec/pkg/formatver"
	"github.com/example/radio-source-codec/pkg/rawsource"
)

// Document is a model or radio settings file. Only the keys needed to
// convert source tokens are interpreted; everything else is carried through
// unchanged, including comments and key order.
type Document struct {
	// Path is where the document was read from. Empty for parsed data.
	Path string

	// Semver is the format version string as written in the document, either
	// at the top level or under header. Empty when the document has none.
	Semver string

	// Version is the parsed Semver. Unknown when Semver is empty or invalid,
	// which makes every legacy spelling acceptable on decode.
	Version formatver.Version

	// Board names the hardware variant the document was written for, when
	// the document records it.
	Board string

	root *yaml.Node
}

// documentMeta is the subset of a document read during load.
type documentMeta struct {
	Semver string `yaml:"semver,omitempty"`
	Board  string `yaml:"board,omitempty"`
	Header *struct {
		Name   string `yaml:"name,omitempty"`
		Semver string `yaml:"semver,omitempty"`
	} `yaml:"header,omitempty"`
}

// FieldIssue locates one source field in a document.
type FieldIssue struct {
	// Path is a dotted key path, with sequence positions in brackets, e.g.
	// "mixData[2].srcRaw".
	Path string
	// Old is the token as read.
	Old string
	// New is the token written back. Equal to Old for unchanged and unknown
	// fields.
	New string
	// Value is what Old decoded to.
	Value rawsource.Value
}

// Report summarises a migration.
type Report struct {
	From      formatver.Version
	To        formatver.Version
	Converted []FieldIssue
	Unchanged []FieldIssue
	Unknown   []FieldIssue
}

// LoadDocument reads and parses a document from path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// ParseDocument parses a document held in memory.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping")
	}

	var meta documentMeta
	if err := root.Content[0].Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to read document header: %w", err)
	}

	doc := &Document{root: &root, Board: meta.Board, Semver: meta.Semver}
	if doc.Semver == "" && meta.Header != nil {
		doc.Semver = meta.Header.Semver
	}
	doc.Version = formatver.ParseOrUnknown(doc.Semver)
	return doc, nil
}

// Validate checks the parts of the document this tool relies on.
func (d *Document) Validate() error {
	if d.root == nil {
		return fmt.Errorf("document is empty")
	}
	if d.Semver != "" {
		if _, err := formatver.Parse(d.Semver); err != nil {
			return fmt.Errorf("semver: %w", err)
		}
	}
	if d.Board != "" {
		if err := board.ValidateName(d.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}
	return nil
}

// Bytes renders the document as YAML.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// String returns a human-readable representation of the document.
func (d *Document) String() string {
	name := d.Path
	if name == "" {
		name = "<memory>"
	}
	version := d.Semver
	if version == "" {
		version = "unknown"
	}
	boardName := d.Board
	if boardName == "" {
		boardName = "unspecified"
	}
	return fmt.Sprintf("Document %s (format %s, board %s)", name, version, boardName)
}

// sourceField is one scalar found under a source key.
type sourceField struct {
	path string
	node *yaml.Node
}

// SourceFields returns the dotted paths of every scalar under a key in
// fields, in document order.
func (d *Document) SourceFields(fields []string) []string {
	found := d.collect(fields)
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths
}

func (d *Document) collect(fields []string) []sourceField {
	if d.root == nil || len(d.root.Content) == 0 {
		return nil
	}
	var out []sourceField
	var walk func(n *yaml.Node, path string)
	walk = func(n *yaml.Node, path string) {
		switch n.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				key, val := n.Content[i], n.Content[i+1]
				p := joinPath(path, key.Value)
				if val.Kind == yaml.ScalarNode && slices.Contains(fields, key.Value) {
					out = append(out, sourceField{path: p, node: val})
					continue
				}
				walk(val, p)
			}
		case yaml.SequenceNode:
			for i, child := range n.Content {
				walk(child, path+"["+strconv.Itoa(i)+"]")
			}
		}
	}
	walk(d.root.Content[0], "")
	return out
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// setSemver rewrites the format version where the document keeps it. A
// document without one gets a top-level key.
func (d *Document) setSemver(v formatver.Version) {
	top := d.root.Content[0]
	if n := mappingValue(top, "semver"); n != nil && n.Kind == yaml.ScalarNode {
		n.Value = v.String()
	} else if header := mappingValue(top, "header"); header != nil && header.Kind == yaml.MappingNode && mappingValue(header, "semver") != nil {
		mappingValue(header, "semver").Value = v.String()
	} else {
		top.Content = append([]*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "semver"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()},
		}, top.Content...)
	}
	d.Semver = v.String()
	d.Version = v
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// Migrator rewrites source tokens from a document's own format version to
// the current grammar.
type Migrator struct {
	// Codec supplies the board. Its version is replaced by the document's.
	Codec *rawsource.Codec
	// Fields are the keys whose scalar values are source tokens.
	Fields []string
	// Workers bounds decode parallelism.
	Workers int
	Logger  *zap.Logger
}

// Migrate converts every source field in doc in place and stamps it with the
// current format version. Tokens that do not decode, other than NONE itself,
// are left as written and listed in Report.Unknown.
func (m *Migrator) Migrate(ctx context.Context, doc *Document) (*Report, error) {
	logger := m.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := doc.collect(m.Fields)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = f.node.Value
	}

	reader := m.Codec.WithVersion(doc.Version)
	values, err := rawsource.DecodeAll(ctx, reader, tokens, m.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}

	current := formatver.CurrentVersion()
	report := &Report{From: doc.Version, To: current}
	for i, f := range fields {
		issue := FieldIssue{Path: f.path, Old: tokens[i], New: tokens[i], Value: values[i]}

		if values[i].IsNone() && tokens[i] != "NONE" {
			logger.Warn("unrecognised source left unchanged",
				zap.String("field", f.path),
				zap.String("value", tokens[i]))
			report.Unknown = append(report.Unknown, issue)
			continue
		}

		issue.New = reader.Encode(values[i])
		if issue.New == issue.Old {
			report.Unchanged = append(report.Unchanged, issue)
			continue
		}
		f.node.Value = issue.New
		f.node.Style = 0
		report.Converted = append(report.Converted, issue)
	}

	doc.setSemver(current)
	logger.Debug("document migrated",
		zap.Stringer("from", report.From),
		zap.Stringer("to", report.To),
		zap.Int("converted", len(report.Converted)),
		zap.Int("unknown", len(report.Unknown)))
	return report, nil
}

// Total is the number of source fields examined.
func (r *Report) Total() int {
	return len(r.Converted) + len(r.Unchanged) + len(r.Unknown)
}

// String returns a human-readable summary of the migration.
func (r *Report) String() string {
	from := r.From.String()
	if r.From.IsUnknown() {
		from = "unknown"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Format %s -> %s: %d sources, %d converted, %d unchanged, %d unrecognised\n",
		from, r.To, r.Total(), len(r.Converted), len(r.Unchanged), len(r.Unknown))
	for _, f := range r.Converted {
		fmt.Fprintf(&sb, "  %s: %s -> %s\n", f.Path, f.Old, f.New)
	}
	for _, f := range r.Unknown {
		fmt.Fprintf(&sb, "  %s: %s (unrecognised)\n", f.Path, f.Old)
	}
	return sb.String()
}

package catalog

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/workstation.toml
var workstationCatalog []byte

// DefaultSource names the embedded catalog in logs and listings
const DefaultSource = "built-in workstation catalog"

// Format of a catalog document
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Catalog is an ordered, validated list of entries
type Catalog struct {
	Source  string
	Entries []Entry
}

type document struct {
	Tasks []Entry `toml:"task" yaml:"tasks"`
}

// FormatFor picks the document format from a file extension
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Default returns the embedded workstation catalog
func Default() *Catalog {
	c, err := Parse(workstationCatalog, FormatTOML, DefaultSource)
	if err != nil {
		panic("embedded catalog is invalid: " + err.Error())
	}
	return c
}

// Load reads and validates the catalog at path. An empty path selects the
// embedded catalog.
func Load(path string) (*Catalog, error) {
	logger := logging.GetLogger("catalog")
	if path == "" {
		logger.Debug().Str("source", DefaultSource).Msg("Using embedded catalog")
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "cannot read catalog %s", path)
	}
	c, err := Parse(data, FormatFor(path), path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("source", path).Int("tasks", len(c.Entries)).Msg("Loaded catalog")
	return c, nil
}

// Parse decodes and validates a catalog document. Unknown keys are rejected
// so that typos do not silently drop a probe or guard.
func Parse(data []byte, format Format, source string) (*Catalog, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "cannot parse YAML catalog %s", source)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "cannot parse TOML catalog %s", source)
		}
	default:
		return nil, errors.Newf(errors.ErrCatalogLoad, "unsupported catalog format %q", format)
	}

	c := &Catalog{Source: source, Entries: doc.Tasks}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every entry and reports the first problem with its index
// and name
func (c *Catalog) Validate() error {
	if len(c.Entries) == 0 {
		return errors.Newf(errors.ErrCatalogInvalid, "catalog %s has no tasks", c.Source)
	}

	seen := make(map[string]int, len(c.Entries))
	for i, e := range c.Entries {
		if err := validateEntry(e); err != nil {
			return errors.Newf(errors.ErrCatalogInvalid, "task %d (%s): %s", i+1, displayName(e), err).
				WithDetail("index", i).
				WithDetail("task", e.Name)
		}
		key := strings.ToLower(e.Name)
		if prev, dup := seen[key]; dup {
			return errors.Newf(errors.ErrCatalogInvalid, "task %d (%s): duplicate name, first used by task %d", i+1, e.Name, prev+1).
				WithDetail("index", i).
				WithDetail("task", e.Name)
		}
		seen[key] = i
	}
	return nil
}

func displayName(e Entry) string {
	if e.Name == "" {
		return "unnamed"
	}
	return e.Name
}

func validateEntry(e Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return stderrors.New("name is required")
	}

	switch k := e.Probe.kinds(); len(k) {
	case 0:
		return stderrors.New("a probe is required")
	case 1:
	default:
		return fmt.Errorf("probe has more than one kind: %s", strings.Join(k, ", "))
	}
	if s := e.Probe.Setting; s != nil && (s.Schema == "" || s.Key == "") {
		return stderrors.New("setting probe needs schema and key")
	}

	switch k := e.Action.kinds(); len(k) {
	case 0:
		if e.Probe.Setting == nil {
			return stderrors.New("an action is required")
		}
	case 1:
	default:
		return fmt.Errorf("action has more than one kind: %s", strings.Join(k, ", "))
	}
	if e.Action.AptUpdate && len(e.Action.Apt) == 0 {
		return stderrors.New("apt_update needs apt packages")
	}
	if s := e.Action.Setting; s != nil && (s.Schema == "" || s.Key == "") {
		return stderrors.New("setting action needs schema and key")
	}
	if d := e.Action.Download; d != nil {
		if d.URL == "" {
			return stderrors.New("download needs a url")
		}
		if len(d.Then) == 0 {
			return stderrors.New("download needs a then command")
		}
	}
	return nil
}

// Filter keeps the entries named in only (all when empty) and drops those
// named in skip. Names match case-insensitively; unknown names are an error.
func (c *Catalog) Filter(only, skip []string) (*Catalog, error) {
	index := make(map[string]bool, len(c.Entries))
	for _, e := range c.Entries {
		index[strings.ToLower(e.Name)] = true
	}

	want, err := nameSet(only, index)
	if err != nil {
		return nil, err
	}
	drop, err := nameSet(skip, index)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("catalog")
	out := &Catalog{Source: c.Source}
	for _, e := range c.Entries {
		key := strings.ToLower(e.Name)
		if (len(want) > 0 && !want[key]) || drop[key] {
			if e.Prerequisite {
				logger.Warn().Str("task", e.Name).Msg("Filter removed a prerequisite, later tasks run without it")
			}
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

func nameSet(names []string, index map[string]bool) (map[string]bool, error) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if !index[key] {
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown task %q", n).WithDetail("task", n)
		}
		set[key] = true
	}
	return set, nil
}

// Names lists entry names in order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}

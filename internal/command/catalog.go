package command

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlCatalogFile is the top-level YAML structure for command catalog files.
type yamlCatalogFile struct {
	Commands []yamlCommand `yaml:"commands"`
}

// yamlCommand is the YAML representation of one command definition.
type yamlCommand struct {
	Name        string            `yaml:"name"`
	Usage       string            `yaml:"usage"`
	Description string            `yaml:"description"`
	ArgCount    int               `yaml:"arg_count"`
	AnyFlags    bool              `yaml:"any_flags"`
	Flags       []string          `yaml:"flags"`
	Options     map[string]string `yaml:"options"`
	Behaviors   []string          `yaml:"behaviors"`
	Scope       string            `yaml:"scope"`
	Aliases     []string          `yaml:"aliases"`
}

// CatalogEntry is one loaded command definition together with its
// registration scopes and alias names.
type CatalogEntry struct {
	Definition *Definition
	Scopes     []Scope
	Aliases    []string
}

// LoadCatalogFromFile reads and validates a command catalog YAML file.
//
// Precondition: path must point to a valid YAML catalog file.
// Postcondition: Returns the validated entries or a non-nil error.
func LoadCatalogFromFile(path string) ([]CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	entries, err := LoadCatalogFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file %s: %w", path, err)
	}
	return entries, nil
}

// LoadCatalogFromBytes parses and validates a command catalog from YAML bytes.
//
// Postcondition: Returns the validated entries or a non-nil error.
func LoadCatalogFromBytes(data []byte) ([]CatalogEntry, error) {
	var file yamlCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	entries := make([]CatalogEntry, 0, len(file.Commands))
	for i, yc := range file.Commands {
		entry, err := convertYAMLCommand(yc)
		if err != nil {
			return nil, fmt.Errorf("command %d (%q): %w", i, yc.Name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RegisterCatalog adds all catalog entries, including their alias copies, to
// the registry.
//
// Postcondition: Returns nil, or the first registration error encountered.
func RegisterCatalog(reg *Registry, entries []CatalogEntry) error {
	for _, entry := range entries {
		if err := reg.Register(entry.Definition, entry.Scopes...); err != nil {
			return err
		}
		for _, alias := range entry.Aliases {
			if err := reg.Register(entry.Definition.CopyNamed(alias), entry.Scopes...); err != nil {
				return err
			}
		}
	}
	return nil
}

func convertYAMLCommand(yc yamlCommand) (CatalogEntry, error) {
	if yc.Name == "" {
		return CatalogEntry{}, fmt.Errorf("name must not be empty")
	}
	if yc.ArgCount < 0 {
		return CatalogEntry{}, fmt.Errorf("arg_count must be >= 0, got %d", yc.ArgCount)
	}
	if yc.AnyFlags && len(yc.Flags) > 0 {
		return CatalogEntry{}, fmt.Errorf("any_flags excludes an explicit flag list")
	}

	def := &Definition{
		Name:        yc.Name,
		Usage:       yc.Usage,
		Description: yc.Description,
		ArgCount:    yc.ArgCount,
		Options:     make(map[string]ValueType, len(yc.Options)),
	}

	if !yc.AnyFlags {
		def.Flags = make(map[string]bool, len(yc.Flags))
		for _, flag := range yc.Flags {
			if flag == "" {
				return CatalogEntry{}, fmt.Errorf("flag names must not be empty")
			}
			if def.Flags[flag] {
				return CatalogEntry{}, fmt.Errorf("duplicate flag %q", flag)
			}
			def.Flags[flag] = true
		}
	}

	for option, typeName := range yc.Options {
		if option == "" {
			return CatalogEntry{}, fmt.Errorf("option names must not be empty")
		}
		if def.Flags != nil && def.Flags[option] {
			return CatalogEntry{}, fmt.Errorf("%q declared as both flag and option", option)
		}
		valueType, err := ParseValueType(typeName)
		if err != nil {
			return CatalogEntry{}, fmt.Errorf("option %q: %w", option, err)
		}
		def.Options[option] = valueType
	}

	for _, behavior := range yc.Behaviors {
		switch behavior {
		case "no_argument_parsing":
			def.Behaviors.NoArgumentParsing = true
		case "rest_as_args":
			def.Behaviors.RestAsArgs = true
		case "accept_from_bots":
			def.Behaviors.AcceptFromBots = true
		case "allow_preceding_quote":
			def.Behaviors.AllowPrecedingQuote = true
		default:
			return CatalogEntry{}, fmt.Errorf("unknown behavior %q", behavior)
		}
	}

	scopes, err := parseScope(yc.Scope)
	if err != nil {
		return CatalogEntry{}, err
	}

	return CatalogEntry{
		Definition: def,
		Scopes:     scopes,
		Aliases:    append([]string(nil), yc.Aliases...),
	}, nil
}

func parseScope(name string) ([]Scope, error) {
	switch name {
	case "channel":
		return []Scope{ScopeChannel}, nil
	case "private":
		return []Scope{ScopePrivate}, nil
	case "", "both":
		return []Scope{ScopeChannel, ScopePrivate}, nil
	default:
		return nil, fmt.Errorf("unknown scope %q", name)
	}
}

package spec

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml commands.schema.json
var embeddedFS embed.FS

// Spec describes the CLI command tree. The app builder turns it into
// urfave/cli commands and binds each leaf to a registered handler.
type Spec struct {
	Version     int       `yaml:"version"`
	App         AppSpec   `yaml:"app"`
	GlobalFlags []Flag    `yaml:"global_flags"`
	Commands    []Command `yaml:"commands"`
}

type AppSpec struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
	// LayoutShorthand turns `splitpanes NAME` into `splitpanes view NAME`.
	LayoutShorthand bool `yaml:"layout_shorthand"`
}

type Flag struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required"`
	Default     any      `yaml:"default"`
	Enum        []string `yaml:"enum"`
	Description string   `yaml:"description"`
	Env         string   `yaml:"env"`
	Hidden      bool     `yaml:"hidden"`
}

type Arg struct {
	Name        string `yaml:"name"`
	Required    bool   `yaml:"required"`
	Variadic    bool   `yaml:"variadic"`
	Description string `yaml:"description"`
}

// Constraint is a rule across flags and args, e.g. exactly_one.
type Constraint struct {
	Type   string   `yaml:"type"`
	Fields []string `yaml:"fields"`
}

type Command struct {
	Name        string       `yaml:"name"`
	ID          string       `yaml:"id"`
	Summary     string       `yaml:"summary"`
	Description string       `yaml:"description"`
	Aliases     []string     `yaml:"aliases"`
	Flags       []Flag       `yaml:"flags"`
	Args        []Arg        `yaml:"args"`
	Constraints []Constraint `yaml:"constraints"`
	JSON        bool         `yaml:"json"`
	Hidden      bool         `yaml:"hidden"`
	Subcommands []Command    `yaml:"subcommands"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// LoadDefault loads the embedded command tree.
func LoadDefault() (*Spec, error) {
	data, err := embeddedFS.ReadFile("commands.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded commands: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the embedded schema and decodes it.
func Parse(data []byte) (*Spec, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	out := &Spec{}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("parse commands yaml: %w", err)
	}
	if err := out.checkIDs(); err != nil {
		return nil, err
	}
	return out, nil
}

func Validate(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("commands spec is empty")
	}
	compiled, err := compiledSchema()
	if err != nil {
		return err
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	normalized, err := normalizeYAML(raw)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("parse commands json: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("commands schema validation: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := embeddedFS.ReadFile("commands.schema.json")
		if err != nil {
			schemaErr = fmt.Errorf("read embedded schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			schemaErr = fmt.Errorf("parse schema json: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("commands.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("load schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("commands.schema.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

func normalizeYAML(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			normalized, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			strKey, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("invalid yaml map key: %T", key)
			}
			normalized, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[strKey] = normalized
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			normalized, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	default:
		return value, nil
	}
}

func (s *Spec) checkIDs() error {
	seen := make(map[string]struct{})
	for _, cmd := range s.AllCommands() {
		if _, dup := seen[cmd.ID]; dup {
			return fmt.Errorf("duplicate command id %q", cmd.ID)
		}
		seen[cmd.ID] = struct{}{}
	}
	return nil
}

// AllCommands returns every command, parents before children.
func (s *Spec) AllCommands() []Command {
	if s == nil {
		return nil
	}
	var out []Command
	for _, cmd := range s.Commands {
		appendCommands(&out, cmd)
	}
	return out
}

func appendCommands(out *[]Command, cmd Command) {
	*out = append(*out, cmd)
	for _, sub := range cmd.Subcommands {
		appendCommands(out, sub)
	}
}

func (s *Spec) FindByID(id string) *Command {
	id = strings.TrimSpace(id)
	if id == "" || s == nil {
		return nil
	}
	for _, cmd := range s.AllCommands() {
		if cmd.ID == id {
			found := cmd
			return &found
		}
	}
	return nil
}

// IsTopLevel reports whether name is a top-level command or alias.
func (s *Spec) IsTopLevel(name string) bool {
	if s == nil {
		return false
	}
	name = strings.TrimSpace(name)
	for _, cmd := range s.Commands {
		if strings.EqualFold(cmd.Name, name) {
			return true
		}
		for _, alias := range cmd.Aliases {
			if strings.EqualFold(alias, name) {
				return true
			}
		}
	}
	return false
}

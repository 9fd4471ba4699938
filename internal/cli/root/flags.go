package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/spec"
)

// buildFlags converts flag specs to urfave/cli flags.
func buildFlags(flags []spec.Flag) ([]cli.Flag, error) {
	out := make([]cli.Flag, 0, len(flags))
	for _, flag := range flags {
		built, err := buildFlag(flag)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

func buildFlag(flag spec.Flag) (cli.Flag, error) {
	name := strings.TrimSpace(flag.Name)
	if name == "" {
		return nil, fmt.Errorf("flag name is required")
	}
	var sources cli.ValueSourceChain
	if env := strings.TrimSpace(flag.Env); env != "" {
		sources = cli.EnvVars(env)
	}
	usage := flag.Description
	switch kind := strings.TrimSpace(flag.Type); kind {
	case "bool":
		value, _ := flag.Default.(bool)
		return &cli.BoolFlag{Name: name, Aliases: flag.Aliases, Usage: usage, Required: flag.Required, Hidden: flag.Hidden, Sources: sources, Value: value}, nil
	case "string", "path", "enum":
		value, _ := flag.Default.(string)
		fl := &cli.StringFlag{Name: name, Aliases: flag.Aliases, Usage: usage, Required: flag.Required, Hidden: flag.Hidden, Sources: sources, Value: value}
		fl.TakesFile = kind == "path"
		if len(flag.Enum) > 0 {
			fl.Usage = strings.TrimSpace(usage + " (" + strings.Join(flag.Enum, "|") + ")")
			fl.Validator = enumValidator(flag.Enum)
		}
		return fl, nil
	case "int":
		value, err := numberDefault[int](name, flag.Default)
		if err != nil {
			return nil, err
		}
		return &cli.IntFlag{Name: name, Aliases: flag.Aliases, Usage: usage, Required: flag.Required, Hidden: flag.Hidden, Sources: sources, Value: value}, nil
	case "float":
		value, err := numberDefault[float64](name, flag.Default)
		if err != nil {
			return nil, err
		}
		return &cli.FloatFlag{Name: name, Aliases: flag.Aliases, Usage: usage, Required: flag.Required, Hidden: flag.Hidden, Sources: sources, Value: value}, nil
	case "duration":
		value, err := durationDefault(name, flag.Default)
		if err != nil {
			return nil, err
		}
		return &cli.DurationFlag{Name: name, Aliases: flag.Aliases, Usage: usage, Required: flag.Required, Hidden: flag.Hidden, Sources: sources, Value: value}, nil
	case "float_list":
		value, err := floatListDefault(name, flag.Default)
		if err != nil {
			return nil, err
		}
		return &cli.FloatSliceFlag{Name: name, Aliases: flag.Aliases, Usage: usage, Required: flag.Required, Hidden: flag.Hidden, Sources: sources, Value: value}, nil
	default:
		return nil, fmt.Errorf("unsupported flag type %q for %s", flag.Type, name)
	}
}

func enumValidator(values []string) func(string) error {
	return func(val string) error {
		for _, allowed := range values {
			if val == allowed {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q (allowed: %s)", val, strings.Join(values, ", "))
	}
}

// numberDefault converts a YAML default, which decodes as int or float64.
func numberDefault[T int | float64](name string, value any) (T, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return T(v), nil
	case float64:
		return T(v), nil
	default:
		return 0, fmt.Errorf("flag %s: default %v is not a number", name, value)
	}
}

func durationDefault(name string, value any) (time.Duration, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("flag %s: %w", name, err)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("flag %s: default %v is not a duration", name, value)
	}
}

func floatListDefault(name string, value any) ([]float64, error) {
	if value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("flag %s: default %v is not a list", name, value)
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		f, err := numberDefault[float64](name, item)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

package root

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/spec"
)

func buildArguments(args []spec.Arg) []cli.Argument {
	if len(args) == 0 {
		return nil
	}
	out := make([]cli.Argument, 0, len(args))
	for _, arg := range args {
		name := strings.TrimSpace(arg.Name)
		if arg.Variadic {
			min := 0
			if arg.Required {
				min = 1
			}
			out = append(out, &cli.StringArgs{Name: name, Min: min, Max: -1, UsageText: arg.Description})
			continue
		}
		out = append(out, &cli.StringArg{Name: name, UsageText: arg.Description})
	}
	return out
}

func argsUsage(args []spec.Arg) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		name := strings.ToUpper(arg.Name)
		if arg.Variadic {
			name += "..."
		}
		if !arg.Required {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

func positionalArgs(cmdSpec spec.Command, cmd *cli.Command) []string {
	if cmd == nil {
		return nil
	}
	var out []string
	for _, arg := range cmdSpec.Args {
		if arg.Variadic {
			out = append(out, cmd.StringArgs(arg.Name)...)
			continue
		}
		if value := cmd.StringArg(arg.Name); value != "" {
			out = append(out, value)
		}
	}
	return out
}

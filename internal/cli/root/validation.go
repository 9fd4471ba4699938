package root

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/spec"
)

// UsageError reports a command line that parsed but does not satisfy the
// command's declared args or flag constraints.
type UsageError struct {
	Command string
	Msg     string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usagef(cmdSpec spec.Command, format string, args ...any) error {
	return &UsageError{Command: cmdSpec.ID, Msg: fmt.Sprintf(format, args...)}
}

// validateInvocation checks required args first, then flag constraints.
func validateInvocation(cmdSpec spec.Command, cmd *cli.Command) error {
	if err := validateArgs(cmdSpec, cmd); err != nil {
		return err
	}
	return validateConstraints(cmdSpec, cmd)
}

func validateArgs(cmdSpec spec.Command, cmd *cli.Command) error {
	for _, argSpec := range cmdSpec.Args {
		name := strings.TrimSpace(argSpec.Name)
		if !argSpec.Required || name == "" {
			continue
		}
		if !argPresent(argSpec, cmd) {
			return usagef(cmdSpec, "missing argument %q", argSpec.Name)
		}
	}
	return nil
}

func validateConstraints(cmdSpec spec.Command, cmd *cli.Command) error {
	for _, constraint := range cmdSpec.Constraints {
		if err := checkConstraint(constraint, cmdSpec, cmd); err != nil {
			return err
		}
	}
	return nil
}

func checkConstraint(constraint spec.Constraint, cmdSpec spec.Command, cmd *cli.Command) error {
	fields := constraint.Fields
	if len(fields) == 0 {
		return nil
	}
	var set []string
	for _, field := range fields {
		if fieldPresent(field, cmdSpec, cmd) {
			set = append(set, field)
		}
	}
	names := fieldLabels(cmdSpec, fields)
	switch strings.TrimSpace(constraint.Type) {
	case "exactly_one":
		if len(set) != 1 {
			return usagef(cmdSpec, "exactly one of %s is required", names)
		}
	case "at_least_one":
		if len(set) == 0 {
			return usagef(cmdSpec, "at least one of %s is required", names)
		}
	case "requires":
		if len(set) > 0 && set[0] == fields[0] && len(set) != len(fields) {
			return usagef(cmdSpec, "%s requires %s", fieldLabel(cmdSpec, fields[0]), fieldLabels(cmdSpec, fields[1:]))
		}
	case "excludes":
		if len(set) > 1 {
			return usagef(cmdSpec, "%s cannot be combined", fieldLabels(cmdSpec, set))
		}
	}
	return nil
}

// fieldLabel renders a flag as --name and an arg as NAME.
func fieldLabel(cmdSpec spec.Command, field string) string {
	field = strings.TrimSpace(field)
	for _, arg := range cmdSpec.Args {
		if arg.Name == field {
			return strings.ToUpper(field)
		}
	}
	return "--" + field
}

func fieldLabels(cmdSpec spec.Command, fields []string) string {
	labels := make([]string, 0, len(fields))
	for _, field := range fields {
		labels = append(labels, fieldLabel(cmdSpec, field))
	}
	return strings.Join(labels, ", ")
}

func argPresent(argSpec spec.Arg, cmd *cli.Command) bool {
	if !argSpec.Variadic {
		return strings.TrimSpace(cmd.StringArg(argSpec.Name)) != ""
	}
	for _, value := range cmd.StringArgs(argSpec.Name) {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

func fieldPresent(field string, cmdSpec spec.Command, cmd *cli.Command) bool {
	field = strings.TrimSpace(field)
	if field == "" {
		return false
	}
	for _, arg := range cmdSpec.Args {
		if arg.Name == field {
			return argPresent(arg, cmd)
		}
	}
	return cmd.IsSet(field)
}

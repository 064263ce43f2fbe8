// Package flagx helps several independent pflag sets share one argument list.
package flagx

import (
	"strings"

	"github.com/spf13/pflag"
)

// FilterArgs returns the arguments from args that belong to flags defined in
// fs, keeping their values. Everything else (unknown flags, positionals) is
// dropped, so fs can be parsed with ContinueOnError without tripping over
// flags owned by another component.
//
// Supported forms, for a flag defined as ("config", "c"):
//
//	--config path   --config=path   -c path   -c=path
//
// Boolean flags never consume the following argument.
func FilterArgs(args []string, fs *pflag.FlagSet) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		f, inline := lookup(fs, arg)
		if f == nil {
			continue
		}

		// pflag reads "-config" as a shorthand cluster
		if !strings.HasPrefix(arg, "--") && len(strings.SplitN(arg[1:], "=", 2)[0]) > 1 {
			arg = "-" + arg
		}

		filtered = append(filtered, arg)
		if inline || f.NoOptDefVal != "" {
			continue
		}

		// the value follows as a separate argument
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// lookup resolves arg to a flag in fs. inline reports whether the value was
// attached with '='.
func lookup(fs *pflag.FlagSet, arg string) (f *pflag.Flag, inline bool) {
	var name string
	switch {
	case strings.HasPrefix(arg, "--"):
		name = arg[2:]
	case strings.HasPrefix(arg, "-") && len(arg) > 1:
		name = arg[1:]
	default:
		return nil, false
	}

	if before, _, found := strings.Cut(name, "="); found {
		name, inline = before, true
	}

	if strings.HasPrefix(arg, "--") {
		return fs.Lookup(name), inline
	}
	if len(name) == 1 {
		return fs.ShorthandLookup(name), inline
	}
	// single-dash long form, accepted for compatibility with the stdlib flag style
	return fs.Lookup(name), inline
}

// ConfigPath extracts the config file path given with -c or --config.
// It returns an empty string when neither is present.
func ConfigPath(args []string) string {
	var config string

	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&config, "config", "c", "", "path to config file")
	_ = fs.Parse(FilterArgs(args, fs))

	return config
}

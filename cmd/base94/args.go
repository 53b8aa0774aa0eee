package main

import (
	"fmt"
	"strings"
)

// Flags that take a value, with their short aliases.
var valueFlags = map[string]string{
	"base":   "base",
	"b":      "base",
	"config": "config",
	"op":     "op",
	"jobs":   "jobs",
	"j":      "jobs",
	"out":    "out",
	"o":      "out",
}

// normalizeArgs moves the flags of a subcommand in front of its positional
// arguments, so "encode in out --base 16" parses like
// "encode -base 16 in out". Short aliases are expanded. Everything after
// "--" is positional.
func normalizeArgs(args []string) ([]string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return args, nil
	}

	var flags, positional []string
	for i := 1; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		long, ok := valueFlags[name]
		if !ok {
			// Left for the flag parser to accept or reject.
			flags = append(flags, arg)
			continue
		}

		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag %s needs a value", arg)
			}
			i++
			value = args[i]
		}
		flags = append(flags, "-"+long, value)
	}

	out := make([]string, 0, len(args)+2)
	out = append(out, args[0])
	out = append(out, flags...)
	if len(positional) > 0 {
		out = append(out, "--")
		out = append(out, positional...)
	}
	return out, nil
}

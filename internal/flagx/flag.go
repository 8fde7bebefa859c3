// Package flagx lets several loaders share os.Args without tripping over each
// other's flags: each loader keeps only the flags it owns before parsing.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments whose flag name is listed in allowed, along
// with their values. Both "-f value" and "-f=value" forms are recognised. A
// token starting with "-" is never consumed as a value.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	kept := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := known[name]; ok {
				kept = append(kept, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			kept = append(kept, args[i+1])
			i++
		}
	}

	return kept
}

// stringFlag extracts one string value registered under several aliases.
// The last occurrence wins.
func stringFlag(args []string, names ...string) string {
	var value string

	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(discard{})
	for _, n := range names {
		fs.StringVar(&value, n, "", "")
	}

	allowed := make([]string, 0, len(names))
	for _, n := range names {
		allowed = append(allowed, "-"+n)
	}
	_ = fs.Parse(FilterArgs(args, allowed))

	return value
}

// ConfigFileFlag returns the JSON config path given with -c or -config.
func ConfigFileFlag(args []string) string {
	return stringFlag(args, "c", "config")
}

// EnvFileFlag returns the dotenv path given with -env, if any.
func EnvFileFlag(args []string) string {
	return stringFlag(args, "env")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

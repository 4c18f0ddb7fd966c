package config

import (
	"flag"
	"fmt"
	"strings"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type assignment struct{ key, value string }

// Flags collects command-line settings until Resolve layers them over the
// file and environment.
type Flags struct {
	ConfigPath string
	EnvFile    string
	overrides  kvList
	assigned   []assignment
}

// Bind registers -config, -env, -set and one flag per config key on fs.
func Bind(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file")
	fs.StringVar(&f.EnvFile, "env", ".env", "dotenv file with "+EnvPrefix+"* overrides")
	fs.Var(&f.overrides, "set", "config override in key=value form (repeatable)")
	for _, key := range Keys() {
		key := key
		record := func(v string) error {
			f.assigned = append(f.assigned, assignment{key, v})
			return nil
		}
		if key == "smooth" {
			fs.BoolFunc(key, setters[key].usage, record)
			continue
		}
		fs.Func(key, setters[key].usage, record)
	}
	return f
}

// Resolve builds the effective Config: defaults, then the YAML file, then the
// environment, then explicit flags in command-line order, then -set overrides.
func (f *Flags) Resolve() (Config, error) {
	c := Default()
	if f.ConfigPath != "" {
		loaded, err := LoadFile(f.ConfigPath)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	if err := c.ApplyEnv(f.EnvFile); err != nil {
		return c, err
	}
	for _, a := range f.assigned {
		if err := c.Set(a.key, a.value); err != nil {
			return c, err
		}
	}
	for _, kv := range f.overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return c, fmt.Errorf("override %q is not key=value", kv)
		}
		if err := c.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return c, err
		}
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

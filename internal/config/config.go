// Package config loads static connection defaults from a TOML file, for
// callers that want to keep Host/Nick/User/Real out of source.
package config

import "github.com/BurntSushi/toml"

// StaticOptions mirrors the fields of irc.Options that make sense to store
// statically; callers copy these into irc.Options themselves, since
// Options also carries channels and callbacks that have no TOML form.
type StaticOptions struct {
	Host string `toml:"host"`
	Port uint16 `toml:"port"`
	Nick string `toml:"nick"`
	User string `toml:"user"`
	Real string `toml:"real"`
}

// Load parses a TOML file at path into a StaticOptions.
func Load(path string) (StaticOptions, error) {
	var opts StaticOptions
	_, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return StaticOptions{}, err
	}
	return opts, nil
}

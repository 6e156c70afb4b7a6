// Copyright 2020 The Serenity Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/edrochenski/serenity/pkg/libc"
)

// config is the senlibc configuration, loadable from a TOML file.
type config struct {
	// LogLevel is a logrus level name.
	LogLevel string `toml:"log-level"`

	// Path is the executable search path used when no PATH variable is
	// set in the environment.
	Path string `toml:"path"`

	// AllowExec lets the exec command actually replace the process.
	AllowExec bool `toml:"allow-exec"`
}

func defaultConfig() config {
	return config{
		LogLevel: "info",
		Path:     libc.DefaultPath,
	}
}

// loadConfig reads a TOML config file, with unset fields keeping their
// defaults. An empty path yields the defaults.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("config %q has unknown keys: %v", path, undecoded)
	}
	return c, nil
}

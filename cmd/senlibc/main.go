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

// Binary senlibc exercises the trampoline library against the host-backed
// kernel. It is a development tool, not part of the library proper.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"

	"github.com/edrochenski/serenity/pkg/hostkernel"
	"github.com/edrochenski/serenity/pkg/libc"
)

var (
	configPath = flag.String("config", "", "path to a TOML configuration file")
	logLevel   = flag.String("log-level", "", "override the configured log level")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(infoCmd), "")
	subcommands.Register(new(cwdCmd), "")
	subcommands.Register(new(statCmd), "")
	subcommands.Register(new(execCmd), "")
	subcommands.Register(new(pledgeCmd), "")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("bad log level %q: %v", cfg.LogLevel, err)
	}
	log.SetLevel(lvl)

	os.Exit(int(subcommands.Execute(context.Background(), cfg)))
}

// newTask builds a Task over a host kernel per the configuration.
func newTask(cfg config) (*libc.Task, *hostkernel.Kernel) {
	k := hostkernel.New()
	k.AllowExec = cfg.AllowExec
	env := os.Environ()
	if !hasPath(env) && cfg.Path != "" {
		env = append(env, "PATH="+cfg.Path)
	}
	return libc.NewTask(k, env), k
}

func hasPath(env []string) bool {
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			return true
		}
	}
	return false
}

// cstring returns the bytes of buf up to the first terminator.
func cstring(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

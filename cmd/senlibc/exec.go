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
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// execCmd runs a program through the exec family. Unless the configuration
// sets allow-exec, the kernel validates the candidate without replacing the
// process, which makes this a dry-run resolver for PATH searches.
type execCmd struct {
	search bool
}

// Name implements subcommands.Command.
func (*execCmd) Name() string {
	return "exec"
}

// Synopsis implements subcommands.Command.
func (*execCmd) Synopsis() string {
	return "run a program through the exec family"
}

// Usage implements subcommands.Command.
func (*execCmd) Usage() string {
	return "exec [-p] <program> [arg]... - run a program through the exec family\n"
}

// SetFlags implements subcommands.Command.
func (c *execCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.search, "p", false, "search the executable path for the program")
}

// Execute implements subcommands.Command.
func (c *execCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	t, _ := newTask(args[0].(config))

	argv := f.Args()
	var err error
	if c.search {
		err = t.Execvp(argv[0], argv)
	} else {
		err = t.Execve(argv[0], argv, t.Environ())
	}
	if err != nil {
		log.Errorf("exec %q: %v", argv[0], err)
		return subcommands.ExitFailure
	}
	// Only reachable on a dry run; a real exec never returns on success.
	fmt.Printf("%s: accepted\n", argv[0])
	return subcommands.ExitSuccess
}

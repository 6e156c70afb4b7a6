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

// cwdCmd prints the working directory, optionally changing it first.
type cwdCmd struct{}

// Name implements subcommands.Command.
func (*cwdCmd) Name() string {
	return "cwd"
}

// Synopsis implements subcommands.Command.
func (*cwdCmd) Synopsis() string {
	return "print the working directory"
}

// Usage implements subcommands.Command.
func (*cwdCmd) Usage() string {
	return "cwd [dir] - print the working directory, after changing to dir if given\n"
}

// SetFlags implements subcommands.Command.
func (*cwdCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.
func (*cwdCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	t, _ := newTask(args[0].(config))

	if f.NArg() > 0 {
		if err := t.Chdir(f.Arg(0)); err != nil {
			log.Errorf("chdir %q: %v", f.Arg(0), err)
			return subcommands.ExitFailure
		}
	}
	wd, err := t.Getwd()
	if err != nil {
		log.Errorf("getwd: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Println(wd)
	return subcommands.ExitSuccess
}

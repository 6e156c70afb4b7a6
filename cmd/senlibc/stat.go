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

// statCmd prints stat records for the given paths.
type statCmd struct {
	follow bool
}

// Name implements subcommands.Command.
func (*statCmd) Name() string {
	return "stat"
}

// Synopsis implements subcommands.Command.
func (*statCmd) Synopsis() string {
	return "print stat records for the given paths"
}

// Usage implements subcommands.Command.
func (*statCmd) Usage() string {
	return "stat [-L] <path>... - print stat records for the given paths\n"
}

// SetFlags implements subcommands.Command.
func (c *statCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.follow, "L", false, "follow symlinks")
}

// Execute implements subcommands.Command.
func (c *statCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	t, _ := newTask(args[0].(config))

	status := subcommands.ExitSuccess
	for _, path := range f.Args() {
		st, err := t.Lstat(path)
		if c.follow {
			st, err = t.Stat(path)
		}
		if err != nil {
			log.Errorf("stat %q: %v", path, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s: mode %04o size %d uid %d gid %d inode %d links %d\n",
			path, st.Mode, st.Size, st.UID, st.GID, st.Ino, st.NLink)
	}
	return status
}

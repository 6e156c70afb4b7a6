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

// infoCmd prints process identity as seen through the library.
type infoCmd struct{}

// Name implements subcommands.Command.
func (*infoCmd) Name() string {
	return "info"
}

// Synopsis implements subcommands.Command.
func (*infoCmd) Synopsis() string {
	return "print process identity and environment"
}

// Usage implements subcommands.Command.
func (*infoCmd) Usage() string {
	return "info - print process identity and environment\n"
}

// SetFlags implements subcommands.Command.
func (*infoCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.
func (*infoCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...any) subcommands.ExitStatus {
	t, _ := newTask(args[0].(config))

	fmt.Printf("pid:\t%d\n", t.Getpid())
	fmt.Printf("ppid:\t%d\n", t.Getppid())
	fmt.Printf("tid:\t%d\n", t.Gettid())
	fmt.Printf("uid:\t%d (effective %d)\n", t.Getuid(), t.Geteuid())
	fmt.Printf("gid:\t%d (effective %d)\n", t.Getgid(), t.Getegid())

	if pgrp, err := t.Getpgrp(); err == nil {
		fmt.Printf("pgrp:\t%d\n", pgrp)
	}
	if wd, err := t.Getwd(); err != nil {
		log.Errorf("getwd: %v", err)
		return subcommands.ExitFailure
	} else {
		fmt.Printf("cwd:\t%s\n", wd)
	}

	buf := make([]byte, 256)
	if err := t.Gethostname(buf); err != nil {
		log.Errorf("gethostname: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("host:\t%s\n", cstring(buf))

	fmt.Printf("tty:\t%t\n", t.Isatty(0))
	return subcommands.ExitSuccess
}

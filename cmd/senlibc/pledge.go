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
	"strings"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// pledgeCmd submits pledge and unveil requests and reports what the kernel
// recorded. The host kernel does not enforce either; this command exists to
// exercise the boundary.
type pledgeCmd struct {
	execPromises string
	unveils      stringList
}

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Name implements subcommands.Command.
func (*pledgeCmd) Name() string {
	return "pledge"
}

// Synopsis implements subcommands.Command.
func (*pledgeCmd) Synopsis() string {
	return "submit pledge and unveil requests"
}

// Usage implements subcommands.Command.
func (*pledgeCmd) Usage() string {
	return "pledge [-exec-promises p] [-unveil path:perms]... [promises] - submit pledge and unveil requests\n"
}

// SetFlags implements subcommands.Command.
func (c *pledgeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.execPromises, "exec-promises", "", "promises applied across exec")
	f.Var(&c.unveils, "unveil", "path:permissions pair to unveil, repeatable")
}

// Execute implements subcommands.Command.
func (c *pledgeCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	t, k := newTask(args[0].(config))

	promises := strings.Join(f.Args(), " ")
	if err := t.Pledge(promises, c.execPromises); err != nil {
		log.Errorf("pledge: %v", err)
		return subcommands.ExitFailure
	}
	for _, u := range c.unveils {
		path, perms, ok := strings.Cut(u, ":")
		if !ok {
			log.Errorf("bad unveil %q, want path:permissions", u)
			return subcommands.ExitUsageError
		}
		if err := t.Unveil(path, perms); err != nil {
			log.Errorf("unveil %q: %v", path, err)
			return subcommands.ExitFailure
		}
	}

	if p, ep, ok := k.Pledged(); ok {
		fmt.Printf("pledged:\t%q (exec %q)\n", p, ep)
	}
	for _, u := range k.Unveils() {
		fmt.Printf("unveiled:\t%s (%s)\n", u.Path, u.Permissions)
	}
	return subcommands.ExitSuccess
}

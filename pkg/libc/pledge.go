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

package libc

import (
	"github.com/edrochenski/serenity/pkg/abi/serenity"
	"github.com/edrochenski/serenity/pkg/errors/sererr"
	"github.com/edrochenski/serenity/pkg/sencall"
)

// Pledge irreversibly restricts the caller to the named promise sets.
// Absent strings are packed as zero-length views rather than rejected; the
// kernel owns the policy semantics.
func (t *Task) Pledge(promises, execPromises string) error {
	var b sencall.Builder
	params := serenity.PledgeParams{
		Promises:     b.String(promises),
		ExecPromises: b.String(execPromises),
	}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_PLEDGE, &sencall.Args{Record: rec}))
}

// Unveil irreversibly restricts filesystem visibility to path with the
// given permissions. Like Pledge, absent strings travel as zero-length
// views.
func (t *Task) Unveil(path, permissions string) error {
	var b sencall.Builder
	params := serenity.UnveilParams{
		Path:        b.String(path),
		Permissions: b.String(permissions),
	}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_UNVEIL, &sencall.Args{Record: rec}))
}

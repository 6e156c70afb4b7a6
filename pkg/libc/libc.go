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

// Package libc is the user-space trampoline layer over the kernel syscall
// boundary. Every entry point validates trivial arguments, packs them into
// the kernel's parameter shape, issues one syscall through the Task's
// Invoker, and translates the raw negative-errno result into the library
// convention: a sentinel value plus an error recorded in the Task's errno
// slot.
//
// The layer holds no locks and adds no ordering beyond what the kernel
// serializes. A Task mirrors a calling thread and must not be shared across
// goroutines.
package libc

import (
	"strings"

	"github.com/edrochenski/serenity/pkg/errors"
	"github.com/edrochenski/serenity/pkg/errors/sererr"
	"github.com/edrochenski/serenity/pkg/sencall"
)

// DefaultPath is the executable search path used when PATH is unset or
// empty.
const DefaultPath = "/bin:/usr/bin"

// Task is one thread of execution's handle to the kernel. It carries the
// thread-private state of the layer: the errno slot, the ambient
// environment, and the cached thread id.
//
// The errno slot is only meaningful immediately after a call that reported
// failure; successful calls leave it untouched.
type Task struct {
	k   sencall.Invoker
	env []string

	errno *errors.Error

	// tid caches the thread id; zero means not yet queried. tidGen records
	// the fork generation the cache was computed under so a Task that finds
	// itself on the child side of a fork re-derives instead of inheriting.
	tid     int32
	tidGen  uint64
	forkGen uint64
}

// NewTask returns a Task bound to the given kernel with the given ambient
// environment ("KEY=value" entries).
func NewTask(k sencall.Invoker, env []string) *Task {
	return &Task{k: k, env: env}
}

// Errno returns the error recorded by the most recent failing call, or nil
// if no call has failed yet.
func (t *Task) Errno() *errors.Error {
	return t.errno
}

// Environ returns the Task's ambient environment.
func (t *Task) Environ() []string {
	return t.env
}

// Getenv returns the value of the named environment variable, or "".
func (t *Task) Getenv(name string) string {
	prefix := name + "="
	for _, kv := range t.env {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):]
		}
	}
	return ""
}

// ret applies the uniform result translation: a negative raw result records
// the error and returns the -1 sentinel alongside it; anything else is the
// success value.
func (t *Task) ret(rc int64) (int64, error) {
	if err := sererr.ErrorFromResult(rc); err != nil {
		t.errno = err
		return -1, err
	}
	return rc, nil
}

// retErr is ret for callers that only care about success.
func (t *Task) retErr(rc int64) error {
	_, err := t.ret(rc)
	return err
}

// fail records a pre-syscall validation failure.
func (t *Task) fail(err *errors.Error) error {
	t.errno = err
	return err
}

// errnoRollback restores the errno slot to a snapshot on scope exit unless
// deliberately overridden with the error being returned.
type errnoRollback struct {
	t     *Task
	value *errors.Error
}

func (t *Task) saveErrno() *errnoRollback {
	return &errnoRollback{t: t, value: t.errno}
}

func (r *errnoRollback) override(err *errors.Error) {
	r.value = err
}

func (r *errnoRollback) apply() {
	r.t.errno = r.value
}

// cstring cuts a kernel-written buffer at its terminator.
func cstring(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

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
	"encoding/binary"

	"github.com/edrochenski/serenity/pkg/abi/serenity"
	"github.com/edrochenski/serenity/pkg/sencall"
)

// The identity getters are direct syscalls that cannot fail; they return
// the raw value without errno translation.

// Getuid returns the real user id.
func (t *Task) Getuid() uint32 {
	return uint32(t.k.Syscall(serenity.SC_GETUID, &sencall.Args{}))
}

// Getgid returns the real group id.
func (t *Task) Getgid() uint32 {
	return uint32(t.k.Syscall(serenity.SC_GETGID, &sencall.Args{}))
}

// Geteuid returns the effective user id.
func (t *Task) Geteuid() uint32 {
	return uint32(t.k.Syscall(serenity.SC_GETEUID, &sencall.Args{}))
}

// Getegid returns the effective group id.
func (t *Task) Getegid() uint32 {
	return uint32(t.k.Syscall(serenity.SC_GETEGID, &sencall.Args{}))
}

// Getpid returns the process id.
func (t *Task) Getpid() int32 {
	return int32(t.k.Syscall(serenity.SC_GETPID, &sencall.Args{}))
}

// Getppid returns the parent process id.
func (t *Task) Getppid() int32 {
	return int32(t.k.Syscall(serenity.SC_GETPPID, &sencall.Args{}))
}

// Setuid sets the user id.
func (t *Task) Setuid(uid uint32) error {
	return t.retErr(t.k.Syscall(serenity.SC_SETUID, &sencall.Args{Arg0: uint64(uid)}))
}

// Setgid sets the group id.
func (t *Task) Setgid(gid uint32) error {
	return t.retErr(t.k.Syscall(serenity.SC_SETGID, &sencall.Args{Arg0: uint64(gid)}))
}

// Getsid returns the session id of pid (0 for the caller).
func (t *Task) Getsid(pid int32) (int32, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_GETSID, &sencall.Args{Arg0: uint64(pid)}))
	return int32(rc), err
}

// Setsid creates a new session with the caller as leader.
func (t *Task) Setsid() (int32, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_SETSID, &sencall.Args{}))
	return int32(rc), err
}

// Getpgid returns the process group of pid (0 for the caller).
func (t *Task) Getpgid(pid int32) (int32, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_GETPGID, &sencall.Args{Arg0: uint64(pid)}))
	return int32(rc), err
}

// Setpgid moves pid into the process group pgid.
func (t *Task) Setpgid(pid, pgid int32) error {
	return t.retErr(t.k.Syscall(serenity.SC_SETPGID, &sencall.Args{
		Arg0: uint64(pid),
		Arg1: uint64(pgid),
	}))
}

// Getpgrp returns the caller's process group.
func (t *Task) Getpgrp() (int32, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_GETPGRP, &sencall.Args{}))
	return int32(rc), err
}

// Setgroups replaces the supplementary group list.
func (t *Task) Setgroups(groups []uint32) error {
	buf := make([]byte, 4*len(groups))
	for i, g := range groups {
		binary.LittleEndian.PutUint32(buf[4*i:], g)
	}
	return t.retErr(t.k.Syscall(serenity.SC_SETGROUPS, &sencall.Args{
		Arg0: uint64(len(groups)),
		In:   buf,
	}))
}

// Getgroups fills groups with the supplementary group list and returns the
// number of entries. With an empty slice it returns the count alone.
func (t *Task) Getgroups(groups []uint32) (int, error) {
	buf := make([]byte, 4*len(groups))
	rc, err := t.ret(t.k.Syscall(serenity.SC_GETGROUPS, &sencall.Args{
		Arg0: uint64(len(groups)),
		Out:  buf,
	}))
	if err != nil {
		return -1, err
	}
	n := int(rc)
	for i := 0; i < n && i < len(groups); i++ {
		groups[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return n, nil
}

// Gettid returns the caller's thread id. The first call queries the kernel
// and caches the value; later calls on the same Task answer from the cache.
// The cache records the fork generation it was computed under, so a Task
// that has since observed the child side of a Fork re-derives the id instead
// of inheriting the parent's.
func (t *Task) Gettid() int32 {
	if t.tid == 0 || t.tidGen != t.forkGen {
		t.tid = int32(t.k.Syscall(serenity.SC_GETTID, &sencall.Args{}))
		t.tidGen = t.forkGen
	}
	return t.tid
}

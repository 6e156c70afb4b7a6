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
	"github.com/edrochenski/serenity/pkg/errors/sererr"
	"github.com/edrochenski/serenity/pkg/sencall"
)

// Read reads up to len(buf) bytes from fd into buf.
func (t *Task) Read(fd int, buf []byte) (int, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_READ, &sencall.Args{
		Arg0: uint64(fd),
		Arg1: uint64(len(buf)),
		Out:  buf,
	}))
	return int(rc), err
}

// Write writes len(buf) bytes from buf to fd.
func (t *Task) Write(fd int, buf []byte) (int, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_WRITE, &sencall.Args{
		Arg0: uint64(fd),
		Arg1: uint64(len(buf)),
		In:   buf,
	}))
	return int(rc), err
}

// Close closes fd.
func (t *Task) Close(fd int) error {
	return t.retErr(t.k.Syscall(serenity.SC_CLOSE, &sencall.Args{Arg0: uint64(fd)}))
}

// Dup duplicates fd onto the lowest free descriptor.
func (t *Task) Dup(oldFD int) (int, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_DUP, &sencall.Args{Arg0: uint64(oldFD)}))
	return int(rc), err
}

// Dup2 duplicates oldFD onto newFD.
func (t *Task) Dup2(oldFD, newFD int) (int, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_DUP2, &sencall.Args{
		Arg0: uint64(oldFD),
		Arg1: uint64(newFD),
	}))
	return int(rc), err
}

// Lseek repositions the offset of fd.
func (t *Task) Lseek(fd int, offset int64, whence int) (int64, error) {
	return t.ret(t.k.Syscall(serenity.SC_LSEEK, &sencall.Args{
		Arg0: uint64(fd),
		Arg1: uint64(offset),
		Arg2: uint64(whence),
	}))
}

// Ftruncate truncates the file referenced by fd to length.
func (t *Task) Ftruncate(fd int, length int64) error {
	return t.retErr(t.k.Syscall(serenity.SC_FTRUNCATE, &sencall.Args{
		Arg0: uint64(fd),
		Arg1: uint64(length),
	}))
}

// Pread reads from fd at offset without the caller repositioning it.
//
// Not thread safe: it saves the current offset, seeks, reads, and restores,
// so another thread sharing the descriptor can observe or perturb the offset
// during that window. Callers sharing a descriptor must serialize.
func (t *Task) Pread(fd int, buf []byte, offset int64) (int, error) {
	old, err := t.Lseek(fd, 0, serenity.SEEK_CUR)
	if err != nil {
		return -1, err
	}
	if _, err := t.Lseek(fd, offset, serenity.SEEK_SET); err != nil {
		return -1, err
	}
	n, readErr := t.Read(fd, buf)
	t.Lseek(fd, old, serenity.SEEK_SET)
	return n, readErr
}

// Pipe creates a pipe, returning the read end and the write end.
func (t *Task) Pipe() ([2]int32, error) {
	return t.Pipe2(0)
}

// Pipe2 creates a pipe with the given flags. fds[0] is open for reading,
// fds[1] for writing.
func (t *Task) Pipe2(flags int) ([2]int32, error) {
	var out [8]byte
	if err := t.retErr(t.k.Syscall(serenity.SC_PIPE, &sencall.Args{
		Arg0: uint64(flags),
		Out:  out[:],
	})); err != nil {
		return [2]int32{-1, -1}, err
	}
	return [2]int32{
		int32(binary.LittleEndian.Uint32(out[0:])),
		int32(binary.LittleEndian.Uint32(out[4:])),
	}, nil
}

// Ioctl issues a device control request. Requests that produce a record
// write it into out; requests that produce a scalar return it as the raw
// result.
func (t *Task) Ioctl(fd int, request uint32, arg uint64, out []byte) (int64, error) {
	return t.ret(t.k.Syscall(serenity.SC_IOCTL, &sencall.Args{
		Arg0: uint64(fd),
		Arg1: uint64(request),
		Arg2: arg,
		Out:  out,
	}))
}

// Tcgetattr queries the terminal attributes of fd.
func (t *Task) Tcgetattr(fd int) (serenity.Termios, error) {
	var tio serenity.Termios
	size, err := sencall.Sizeof(&tio)
	if err != nil {
		return tio, t.fail(sererr.EFAULT)
	}
	buf := make([]byte, size)
	if _, err := t.Ioctl(fd, serenity.TCGETS, 0, buf); err != nil {
		return tio, err
	}
	if err := sencall.Unpack(buf, &tio); err != nil {
		return tio, t.fail(sererr.EFAULT)
	}
	return tio, nil
}

// Tcgetpgrp returns the foreground process group of the terminal on fd.
func (t *Task) Tcgetpgrp(fd int) (int32, error) {
	rc, err := t.Ioctl(fd, serenity.TIOCGPGRP, 0, nil)
	return int32(rc), err
}

// Tcsetpgrp sets the foreground process group of the terminal on fd.
func (t *Task) Tcsetpgrp(fd int, pgid int32) error {
	_, err := t.Ioctl(fd, serenity.TIOCSPGRP, uint64(pgid), nil)
	return err
}

// Isatty reports whether fd refers to a terminal. It is derived: it holds
// exactly when the terminal attribute query on fd succeeds, with no syscall
// of its own.
func (t *Task) Isatty(fd int) bool {
	_, err := t.Tcgetattr(fd)
	return err == nil
}

// TtynameR writes the name of the terminal on fd into buf.
func (t *Task) TtynameR(fd int, buf []byte) error {
	return t.retErr(t.k.Syscall(serenity.SC_TTYNAME_R, &sencall.Args{
		Arg0: uint64(fd),
		Arg1: uint64(len(buf)),
		Out:  buf,
	}))
}

// Ttyname returns the name of the terminal on fd.
func (t *Task) Ttyname(fd int) (string, error) {
	var buf [32]byte
	if err := t.TtynameR(fd, buf[:]); err != nil {
		return "", err
	}
	return cstring(buf[:]), nil
}

// Getdtablesize returns the descriptor table size.
func (t *Task) Getdtablesize() (int, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_GETDTABLESIZE, &sencall.Args{}))
	return int(rc), err
}

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

// doStat is the shared body of Stat and Lstat, parameterized on symlink
// resolution. The kernel writes the stat record into the output buffer.
func (t *Task) doStat(path string, followSymlinks bool) (serenity.Stat, error) {
	var stat serenity.Stat
	if path == "" {
		return stat, t.fail(sererr.EFAULT)
	}
	var b sencall.Builder
	params := serenity.StatParams{Path: b.String(path)}
	if followSymlinks {
		params.FollowSymlinks = 1
	}
	rec, err := b.Encode(&params)
	if err != nil {
		return stat, t.fail(sererr.EFAULT)
	}
	size, err := sencall.Sizeof(&stat)
	if err != nil {
		return stat, t.fail(sererr.EFAULT)
	}
	out := make([]byte, size)
	if err := t.retErr(t.k.Syscall(serenity.SC_STAT, &sencall.Args{Record: rec, Out: out})); err != nil {
		return stat, err
	}
	if err := sencall.Unpack(out, &stat); err != nil {
		return stat, t.fail(sererr.EFAULT)
	}
	return stat, nil
}

// Stat returns metadata for the file at path, following symlinks.
func (t *Task) Stat(path string) (serenity.Stat, error) {
	return t.doStat(path, true)
}

// Lstat returns metadata for the file at path without following a final
// symlink.
func (t *Task) Lstat(path string) (serenity.Stat, error) {
	return t.doStat(path, false)
}

// Fstat returns metadata for the open descriptor fd.
func (t *Task) Fstat(fd int) (serenity.Stat, error) {
	var stat serenity.Stat
	size, err := sencall.Sizeof(&stat)
	if err != nil {
		return stat, t.fail(sererr.EFAULT)
	}
	out := make([]byte, size)
	if err := t.retErr(t.k.Syscall(serenity.SC_FSTAT, &sencall.Args{
		Arg0: uint64(fd),
		Out:  out,
	})); err != nil {
		return stat, err
	}
	if err := sencall.Unpack(out, &stat); err != nil {
		return stat, t.fail(sererr.EFAULT)
	}
	return stat, nil
}

// Chown changes the ownership of the file at path.
func (t *Task) Chown(path string, uid, gid uint32) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	var b sencall.Builder
	params := serenity.ChownParams{Path: b.String(path), UID: uid, GID: gid}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_CHOWN, &sencall.Args{Record: rec}))
}

// Fchown changes the ownership of the file referenced by fd.
func (t *Task) Fchown(fd int, uid, gid uint32) error {
	return t.retErr(t.k.Syscall(serenity.SC_FCHOWN, &sencall.Args{
		Arg0: uint64(fd),
		Arg1: uint64(uid),
		Arg2: uint64(gid),
	}))
}

// Link creates a hard link at newPath referring to oldPath.
func (t *Task) Link(oldPath, newPath string) error {
	if oldPath == "" || newPath == "" {
		return t.fail(sererr.EFAULT)
	}
	var b sencall.Builder
	params := serenity.LinkParams{OldPath: b.String(oldPath), NewPath: b.String(newPath)}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_LINK, &sencall.Args{Record: rec}))
}

// Symlink creates a symbolic link at linkpath pointing at target.
func (t *Task) Symlink(target, linkpath string) error {
	if target == "" || linkpath == "" {
		return t.fail(sererr.EFAULT)
	}
	var b sencall.Builder
	params := serenity.SymlinkParams{Target: b.String(target), Linkpath: b.String(linkpath)}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_SYMLINK, &sencall.Args{Record: rec}))
}

// Readlink reads the target of the symlink at path into buf and returns the
// number of bytes written.
func (t *Task) Readlink(path string, buf []byte) (int, error) {
	var b sencall.Builder
	params := serenity.ReadlinkParams{Path: b.String(path), BufferSize: uint32(len(buf))}
	rec, err := b.Encode(&params)
	if err != nil {
		return -1, t.fail(sererr.EFAULT)
	}
	rc, err := t.ret(t.k.Syscall(serenity.SC_READLINK, &sencall.Args{Record: rec, Out: buf}))
	return int(rc), err
}

// Unlink removes the directory entry at path.
func (t *Task) Unlink(path string) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_UNLINK, &sencall.Args{
		Str:  path,
		Arg1: uint64(len(path)),
	}))
}

// Rmdir removes the empty directory at path.
func (t *Task) Rmdir(path string) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_RMDIR, &sencall.Args{
		Str:  path,
		Arg1: uint64(len(path)),
	}))
}

// Mknod creates a filesystem node at path.
func (t *Task) Mknod(path string, mode uint32, dev uint32) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	var b sencall.Builder
	params := serenity.MknodParams{Path: b.String(path), Mode: mode, Dev: dev}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_MKNOD, &sencall.Args{Record: rec}))
}

// Access checks whether the caller may reach path with the given mode.
func (t *Task) Access(path string, mode int) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_ACCESS, &sencall.Args{
		Str:  path,
		Arg1: uint64(len(path)),
		Arg2: uint64(mode),
	}))
}

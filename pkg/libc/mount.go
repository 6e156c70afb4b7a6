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

// Mount mounts the filesystem on sourceFD of type fsType at target.
func (t *Task) Mount(sourceFD int32, target, fsType string, flags int32) error {
	if target == "" || fsType == "" {
		return t.fail(sererr.EFAULT)
	}
	var b sencall.Builder
	params := serenity.MountParams{
		SourceFD: sourceFD,
		Target:   b.String(target),
		FSType:   b.String(fsType),
		Flags:    flags,
	}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_MOUNT, &sencall.Args{Record: rec}))
}

// Umount unmounts the filesystem at mountpoint.
func (t *Task) Umount(mountpoint string) error {
	if mountpoint == "" {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_UMOUNT, &sencall.Args{
		Str:  mountpoint,
		Arg1: uint64(len(mountpoint)),
	}))
}

// Chroot changes the caller's filesystem root to path.
func (t *Task) Chroot(path string) error {
	return t.ChrootWithMountFlags(path, -1)
}

// ChrootWithMountFlags changes the root and remounts it with the given
// mount flags; -1 keeps the existing flags.
func (t *Task) ChrootWithMountFlags(path string, mountFlags int32) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_CHROOT, &sencall.Args{
		Str:  path,
		Arg1: uint64(len(path)),
		Arg2: uint64(uint32(mountFlags)),
	}))
}

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

// Package serenity contains the kernel ABI shared between the library and
// the kernel: syscall numbers, parameter record shapes, and flag constants.
// Field order and widths are the ABI contract; they must match the kernel
// side exactly and never change independently of it.
package serenity

// StringArgument is a length-prefixed view of a string in a parameter
// record's arena. Offset is relative to the arena start. A zero value is an
// absent string. The kernel never scans for a terminator; Length is
// authoritative.
type StringArgument struct {
	Offset uint32
	Length uint32
}

// StringListArgument locates a packed array of StringArgument in the arena.
type StringListArgument struct {
	Length uint32 // number of views
	Offset uint32 // arena offset of the packed view array
}

// ChownParams is the parameter record of chown.
type ChownParams struct {
	Path StringArgument
	UID  uint32
	GID  uint32
}

// StatParams is the parameter record of stat. The stat record is written to
// the caller's output buffer.
type StatParams struct {
	Path           StringArgument
	FollowSymlinks uint8
}

// ReadlinkParams is the parameter record of readlink. The link target is
// written to the caller's output buffer, whose capacity rides here.
type ReadlinkParams struct {
	Path       StringArgument
	BufferSize uint32
}

// LinkParams is the parameter record of link.
type LinkParams struct {
	OldPath StringArgument
	NewPath StringArgument
}

// SymlinkParams is the parameter record of symlink.
type SymlinkParams struct {
	Target   StringArgument
	Linkpath StringArgument
}

// MknodParams is the parameter record of mknod.
type MknodParams struct {
	Path StringArgument
	Mode uint32
	Dev  uint32
}

// MountParams is the parameter record of mount.
type MountParams struct {
	SourceFD int32
	Target   StringArgument
	FSType   StringArgument
	Flags    int32
}

// ExecveParams is the parameter record of execve.
type ExecveParams struct {
	Path        StringArgument
	Arguments   StringListArgument
	Environment StringListArgument
}

// PledgeParams is the parameter record of pledge. Absent promise strings are
// zero-length views, not errors.
type PledgeParams struct {
	Promises     StringArgument
	ExecPromises StringArgument
}

// UnveilParams is the parameter record of unveil.
type UnveilParams struct {
	Path        StringArgument
	Permissions StringArgument
}

// SchedParams is the parameter record of sched_setparam and sched_getparam.
// Priority is opaque to the library; the scheduler owns its meaning.
type SchedParams struct {
	PID      int32
	Priority int32
}

// Stat is the wire form of a stat record.
type Stat struct {
	Dev       uint32
	Ino       uint32
	Mode      uint32
	NLink     uint32
	UID       uint32
	GID       uint32
	Rdev      uint32
	Size      int64
	BlockSize int32
	Blocks    int32
	Atime     int64
	Mtime     int64
	Ctime     int64
}

// Termios is the wire form of a terminal attribute record.
type Termios struct {
	Iflag  uint32
	Oflag  uint32
	Cflag  uint32
	Lflag  uint32
	Cc     []byte `struc:"[32]byte"`
	Ispeed uint32
	Ospeed uint32
}

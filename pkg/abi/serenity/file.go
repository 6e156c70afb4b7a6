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

package serenity

// Limits.
const (
	PathMax = 4096
	PipeBuf = 4096
)

// Constants for lseek.
const (
	SEEK_SET = 0
	SEEK_CUR = 1
	SEEK_END = 2
)

// Constants for access.
const (
	F_OK = 0
	X_OK = 1
	W_OK = 2
	R_OK = 4
)

// Constants for pipe2 flags.
const (
	O_CLOEXEC = 0o2000000
)

// Constants for mount.
const (
	MS_NODEV   = 0x1
	MS_NOEXEC  = 0x2
	MS_NOSUID  = 0x4
	MS_BIND    = 0x8
	MS_RDONLY  = 0x10
	MS_REMOUNT = 0x20
)

// Ioctl request selectors.
const (
	TCGETS = iota
	TCSETS
	TIOCGPGRP
	TIOCSPGRP
)

// Name selectors for pathconf and fpathconf.
const (
	PC_LINK_MAX = iota
	PC_PATH_MAX
	PC_PIPE_BUF
	PC_VDISABLE
)

// POSIX_VDISABLE disables special terminal characters.
const POSIX_VDISABLE = 0

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

import "fmt"

// Sysno is a syscall selector.
type Sysno uintptr

// Syscall numbers. The enumeration is the kernel ABI; entries are only ever
// appended, never reordered.
const (
	SC_FORK Sysno = iota
	SC_EXECVE
	SC_EXIT
	SC_READ
	SC_WRITE
	SC_CLOSE
	SC_DUP
	SC_DUP2
	SC_LSEEK
	SC_FTRUNCATE
	SC_PIPE
	SC_IOCTL
	SC_TTYNAME_R
	SC_STAT
	SC_FSTAT
	SC_CHOWN
	SC_FCHOWN
	SC_LINK
	SC_UNLINK
	SC_SYMLINK
	SC_READLINK
	SC_RMDIR
	SC_MKNOD
	SC_ACCESS
	SC_CHDIR
	SC_FCHDIR
	SC_GETCWD
	SC_GETUID
	SC_GETGID
	SC_GETEUID
	SC_GETEGID
	SC_GETPID
	SC_GETPPID
	SC_GETTID
	SC_SETUID
	SC_SETGID
	SC_GETSID
	SC_SETSID
	SC_GETPGID
	SC_SETPGID
	SC_GETPGRP
	SC_GETGROUPS
	SC_SETGROUPS
	SC_GETDTABLESIZE
	SC_GETHOSTNAME
	SC_GET_PROCESS_NAME
	SC_SET_PROCESS_ICON
	SC_SLEEP
	SC_USLEEP
	SC_ALARM
	SC_YIELD
	SC_SCHED_SETPARAM
	SC_SCHED_GETPARAM
	SC_DONATE
	SC_SYNC
	SC_FSYNC
	SC_MOUNT
	SC_UMOUNT
	SC_CHROOT
	SC_PLEDGE
	SC_UNVEIL
	SC_HALT
	SC_REBOOT
	SC_BEEP
	SC_DUMP_BACKTRACE

	maxSysno
)

var sysnoNames = [maxSysno]string{
	SC_FORK:             "fork",
	SC_EXECVE:           "execve",
	SC_EXIT:             "exit",
	SC_READ:             "read",
	SC_WRITE:            "write",
	SC_CLOSE:            "close",
	SC_DUP:              "dup",
	SC_DUP2:             "dup2",
	SC_LSEEK:            "lseek",
	SC_FTRUNCATE:        "ftruncate",
	SC_PIPE:             "pipe",
	SC_IOCTL:            "ioctl",
	SC_TTYNAME_R:        "ttyname_r",
	SC_STAT:             "stat",
	SC_FSTAT:            "fstat",
	SC_CHOWN:            "chown",
	SC_FCHOWN:           "fchown",
	SC_LINK:             "link",
	SC_UNLINK:           "unlink",
	SC_SYMLINK:          "symlink",
	SC_READLINK:         "readlink",
	SC_RMDIR:            "rmdir",
	SC_MKNOD:            "mknod",
	SC_ACCESS:           "access",
	SC_CHDIR:            "chdir",
	SC_FCHDIR:           "fchdir",
	SC_GETCWD:           "getcwd",
	SC_GETUID:           "getuid",
	SC_GETGID:           "getgid",
	SC_GETEUID:          "geteuid",
	SC_GETEGID:          "getegid",
	SC_GETPID:           "getpid",
	SC_GETPPID:          "getppid",
	SC_GETTID:           "gettid",
	SC_SETUID:           "setuid",
	SC_SETGID:           "setgid",
	SC_GETSID:           "getsid",
	SC_SETSID:           "setsid",
	SC_GETPGID:          "getpgid",
	SC_SETPGID:          "setpgid",
	SC_GETPGRP:          "getpgrp",
	SC_GETGROUPS:        "getgroups",
	SC_SETGROUPS:        "setgroups",
	SC_GETDTABLESIZE:    "getdtablesize",
	SC_GETHOSTNAME:      "gethostname",
	SC_GET_PROCESS_NAME: "get_process_name",
	SC_SET_PROCESS_ICON: "set_process_icon",
	SC_SLEEP:            "sleep",
	SC_USLEEP:           "usleep",
	SC_ALARM:            "alarm",
	SC_YIELD:            "yield",
	SC_SCHED_SETPARAM:   "sched_setparam",
	SC_SCHED_GETPARAM:   "sched_getparam",
	SC_DONATE:           "donate",
	SC_SYNC:             "sync",
	SC_FSYNC:            "fsync",
	SC_MOUNT:            "mount",
	SC_UMOUNT:           "umount",
	SC_CHROOT:           "chroot",
	SC_PLEDGE:           "pledge",
	SC_UNVEIL:           "unveil",
	SC_HALT:             "halt",
	SC_REBOOT:           "reboot",
	SC_BEEP:             "beep",
	SC_DUMP_BACKTRACE:   "dump_backtrace",
}

// String implements fmt.Stringer.
func (s Sysno) String() string {
	if s < maxSysno && sysnoNames[s] != "" {
		return sysnoNames[s]
	}
	return fmt.Sprintf("sysno(%d)", uintptr(s))
}

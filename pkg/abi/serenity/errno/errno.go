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

// Package errno holds the numeric error values returned across the kernel
// syscall boundary. The values are part of the kernel ABI and must not be
// renumbered.
package errno

// Errno represents a kernel error number.
type Errno uint32

// Error numbers. A raw syscall result of -n reports the error numbered n.
const (
	NOERRNO Errno = iota
	EPERM
	ENOENT
	ESRCH
	EINTR
	EIO
	ENXIO
	E2BIG
	ENOEXEC
	EBADF
	ECHILD // 10
	EAGAIN
	ENOMEM
	EACCES
	EFAULT
	ENOTBLK
	EBUSY
	EEXIST
	EXDEV
	ENODEV
	ENOTDIR // 20
	EISDIR
	EINVAL
	ENFILE
	EMFILE
	ENOTTY
	ETXTBSY
	EFBIG
	ENOSPC
	ESPIPE
	EROFS // 30
	EMLINK
	EPIPE
	ERANGE
	ENAMETOOLONG
	ELOOP
	EOVERFLOW
	EOPNOTSUPP
	ENOSYS
	ENOTIMPL
	EAFNOSUPPORT // 40
	ENOTSOCK
	EADDRINUSE
	EWHYTHO
	ENOTEMPTY
	EDOM
	ECONNREFUSED
	EADDRNOTAVAIL
	EISCONN
	ECONNABORTED
	EALREADY // 50
	ECONNRESET
	EDESTADDRREQ
	EHOSTUNREACH
	EILSEQ
	EMSGSIZE
	ENETDOWN
	ENETUNREACH
	ENETRESET
	ENOBUFS
	ENOLCK // 60
	ENOMSG
	ENOPROTOOPT
	ENOTCONN
	ESHUTDOWN
	ETOOMANYREFS
	ESOCKTNOSUPPORT
	EPROTONOSUPPORT
	EDEADLK
	ETIMEDOUT
	EPROTOTYPE // 70
	EINPROGRESS
	ENOTHREAD
	EPROTO
	ENOTSUP
	EPFNOSUPPORT
	EDQUOT
	EMAXERRNO
)

// EWOULDBLOCK is the same as EAGAIN.
const EWOULDBLOCK = EAGAIN

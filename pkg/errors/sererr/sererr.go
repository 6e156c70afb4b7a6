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

// Package sererr contains kernel error codes exported as error interface
// pointers. This allows for fast comparison and return operations comparable
// to raw errno constants.
package sererr

import (
	"fmt"

	"github.com/edrochenski/serenity/pkg/abi/serenity/errno"
	"github.com/edrochenski/serenity/pkg/errors"
)

// The following errors carry the kernel's errno values. Since the type is
// *errors.Error the values are directly comparable; the Errno method recovers
// the raw number for the syscall boundary.
var (
	noError *errors.Error = nil
	EPERM                 = errors.New(errno.EPERM, "operation not permitted")
	ENOENT                = errors.New(errno.ENOENT, "no such file or directory")
	ESRCH                 = errors.New(errno.ESRCH, "no such process")
	EINTR                 = errors.New(errno.EINTR, "interrupted syscall")
	EIO                   = errors.New(errno.EIO, "I/O error")
	ENXIO                 = errors.New(errno.ENXIO, "no such device or address")
	E2BIG                 = errors.New(errno.E2BIG, "argument list too long")
	ENOEXEC               = errors.New(errno.ENOEXEC, "exec format error")
	EBADF                 = errors.New(errno.EBADF, "bad fd number")
	ECHILD                = errors.New(errno.ECHILD, "no child processes")
	EAGAIN                = errors.New(errno.EAGAIN, "try again")
	ENOMEM                = errors.New(errno.ENOMEM, "out of memory")
	EACCES                = errors.New(errno.EACCES, "permission denied")
	EFAULT                = errors.New(errno.EFAULT, "bad address")
	ENOTBLK               = errors.New(errno.ENOTBLK, "block device required")
	EBUSY                 = errors.New(errno.EBUSY, "device or resource busy")
	EEXIST                = errors.New(errno.EEXIST, "file already exists")
	EXDEV                 = errors.New(errno.EXDEV, "cross-device link")
	ENODEV                = errors.New(errno.ENODEV, "no such device")
	ENOTDIR               = errors.New(errno.ENOTDIR, "not a directory")
	EISDIR                = errors.New(errno.EISDIR, "is a directory")
	EINVAL                = errors.New(errno.EINVAL, "invalid argument")
	ENFILE                = errors.New(errno.ENFILE, "file table overflow")
	EMFILE                = errors.New(errno.EMFILE, "too many open files")
	ENOTTY                = errors.New(errno.ENOTTY, "not a TTY")
	ETXTBSY               = errors.New(errno.ETXTBSY, "text file busy")
	EFBIG                 = errors.New(errno.EFBIG, "file too large")
	ENOSPC                = errors.New(errno.ENOSPC, "no space left on device")
	ESPIPE                = errors.New(errno.ESPIPE, "invalid seek")
	EROFS                 = errors.New(errno.EROFS, "read-only filesystem")
	EMLINK                = errors.New(errno.EMLINK, "too many links")
	EPIPE                 = errors.New(errno.EPIPE, "broken pipe")
	ERANGE                = errors.New(errno.ERANGE, "out of range")
	ENAMETOOLONG          = errors.New(errno.ENAMETOOLONG, "name too long")
	ELOOP                 = errors.New(errno.ELOOP, "too many symlinks")
	EOVERFLOW             = errors.New(errno.EOVERFLOW, "overflow")
	EOPNOTSUPP            = errors.New(errno.EOPNOTSUPP, "operation not supported")
	ENOSYS                = errors.New(errno.ENOSYS, "no such syscall")
	ENOTIMPL              = errors.New(errno.ENOTIMPL, "not implemented")
	EAFNOSUPPORT          = errors.New(errno.EAFNOSUPPORT, "address family not supported")
	ENOTSOCK              = errors.New(errno.ENOTSOCK, "not a socket")
	EADDRINUSE            = errors.New(errno.EADDRINUSE, "address in use")
	EWHYTHO               = errors.New(errno.EWHYTHO, "failed without setting an error code (bug!)")
	ENOTEMPTY             = errors.New(errno.ENOTEMPTY, "directory not empty")
	EDOM                  = errors.New(errno.EDOM, "math argument out of domain")
	ECONNREFUSED          = errors.New(errno.ECONNREFUSED, "connection refused")
	EADDRNOTAVAIL         = errors.New(errno.EADDRNOTAVAIL, "address not available")
	EISCONN               = errors.New(errno.EISCONN, "already connected")
	ECONNABORTED          = errors.New(errno.ECONNABORTED, "connection aborted")
	EALREADY              = errors.New(errno.EALREADY, "connection already in progress")
	ECONNRESET            = errors.New(errno.ECONNRESET, "connection reset")
	EDESTADDRREQ          = errors.New(errno.EDESTADDRREQ, "destination address required")
	EHOSTUNREACH          = errors.New(errno.EHOSTUNREACH, "host unreachable")
	EILSEQ                = errors.New(errno.EILSEQ, "illegal byte sequence")
	EMSGSIZE              = errors.New(errno.EMSGSIZE, "message size")
	ENETDOWN              = errors.New(errno.ENETDOWN, "network down")
	ENETUNREACH           = errors.New(errno.ENETUNREACH, "network unreachable")
	ENETRESET             = errors.New(errno.ENETRESET, "network reset")
	ENOBUFS               = errors.New(errno.ENOBUFS, "no buffer space")
	ENOLCK                = errors.New(errno.ENOLCK, "no lock available")
	ENOMSG                = errors.New(errno.ENOMSG, "no message")
	ENOPROTOOPT           = errors.New(errno.ENOPROTOOPT, "no protocol option")
	ENOTCONN              = errors.New(errno.ENOTCONN, "not connected")
	ESHUTDOWN             = errors.New(errno.ESHUTDOWN, "transport endpoint has shutdown")
	ETOOMANYREFS          = errors.New(errno.ETOOMANYREFS, "too many references")
	ESOCKTNOSUPPORT       = errors.New(errno.ESOCKTNOSUPPORT, "socket type not supported")
	EPROTONOSUPPORT       = errors.New(errno.EPROTONOSUPPORT, "protocol not supported")
	EDEADLK               = errors.New(errno.EDEADLK, "resource deadlock would occur")
	ETIMEDOUT             = errors.New(errno.ETIMEDOUT, "timed out")
	EPROTOTYPE            = errors.New(errno.EPROTOTYPE, "wrong protocol type")
	EINPROGRESS           = errors.New(errno.EINPROGRESS, "operation in progress")
	ENOTHREAD             = errors.New(errno.ENOTHREAD, "no such thread")
	EPROTO                = errors.New(errno.EPROTO, "protocol error")
	ENOTSUP               = errors.New(errno.ENOTSUP, "not supported")
	EPFNOSUPPORT          = errors.New(errno.EPFNOSUPPORT, "protocol family not supported")
	EDQUOT                = errors.New(errno.EDQUOT, "quota exceeded")

	// EWOULDBLOCK is the same error as EAGAIN.
	EWOULDBLOCK = EAGAIN
)

// errorSlice holds errors indexed by errno for fast translation between raw
// error numbers and *errors.Error. A nil entry at index 0 denotes success.
var errorSlice = []*errors.Error{
	errno.NOERRNO:         noError,
	errno.EPERM:           EPERM,
	errno.ENOENT:          ENOENT,
	errno.ESRCH:           ESRCH,
	errno.EINTR:           EINTR,
	errno.EIO:             EIO,
	errno.ENXIO:           ENXIO,
	errno.E2BIG:           E2BIG,
	errno.ENOEXEC:         ENOEXEC,
	errno.EBADF:           EBADF,
	errno.ECHILD:          ECHILD,
	errno.EAGAIN:          EAGAIN,
	errno.ENOMEM:          ENOMEM,
	errno.EACCES:          EACCES,
	errno.EFAULT:          EFAULT,
	errno.ENOTBLK:         ENOTBLK,
	errno.EBUSY:           EBUSY,
	errno.EEXIST:          EEXIST,
	errno.EXDEV:           EXDEV,
	errno.ENODEV:          ENODEV,
	errno.ENOTDIR:         ENOTDIR,
	errno.EISDIR:          EISDIR,
	errno.EINVAL:          EINVAL,
	errno.ENFILE:          ENFILE,
	errno.EMFILE:          EMFILE,
	errno.ENOTTY:          ENOTTY,
	errno.ETXTBSY:         ETXTBSY,
	errno.EFBIG:           EFBIG,
	errno.ENOSPC:          ENOSPC,
	errno.ESPIPE:          ESPIPE,
	errno.EROFS:           EROFS,
	errno.EMLINK:          EMLINK,
	errno.EPIPE:           EPIPE,
	errno.ERANGE:          ERANGE,
	errno.ENAMETOOLONG:    ENAMETOOLONG,
	errno.ELOOP:           ELOOP,
	errno.EOVERFLOW:       EOVERFLOW,
	errno.EOPNOTSUPP:      EOPNOTSUPP,
	errno.ENOSYS:          ENOSYS,
	errno.ENOTIMPL:        ENOTIMPL,
	errno.EAFNOSUPPORT:    EAFNOSUPPORT,
	errno.ENOTSOCK:        ENOTSOCK,
	errno.EADDRINUSE:      EADDRINUSE,
	errno.EWHYTHO:         EWHYTHO,
	errno.ENOTEMPTY:       ENOTEMPTY,
	errno.EDOM:            EDOM,
	errno.ECONNREFUSED:    ECONNREFUSED,
	errno.EADDRNOTAVAIL:   EADDRNOTAVAIL,
	errno.EISCONN:         EISCONN,
	errno.ECONNABORTED:    ECONNABORTED,
	errno.EALREADY:        EALREADY,
	errno.ECONNRESET:      ECONNRESET,
	errno.EDESTADDRREQ:    EDESTADDRREQ,
	errno.EHOSTUNREACH:    EHOSTUNREACH,
	errno.EILSEQ:          EILSEQ,
	errno.EMSGSIZE:        EMSGSIZE,
	errno.ENETDOWN:        ENETDOWN,
	errno.ENETUNREACH:     ENETUNREACH,
	errno.ENETRESET:       ENETRESET,
	errno.ENOBUFS:         ENOBUFS,
	errno.ENOLCK:          ENOLCK,
	errno.ENOMSG:          ENOMSG,
	errno.ENOPROTOOPT:     ENOPROTOOPT,
	errno.ENOTCONN:        ENOTCONN,
	errno.ESHUTDOWN:       ESHUTDOWN,
	errno.ETOOMANYREFS:    ETOOMANYREFS,
	errno.ESOCKTNOSUPPORT: ESOCKTNOSUPPORT,
	errno.EPROTONOSUPPORT: EPROTONOSUPPORT,
	errno.EDEADLK:         EDEADLK,
	errno.ETIMEDOUT:       ETIMEDOUT,
	errno.EPROTOTYPE:      EPROTOTYPE,
	errno.EINPROGRESS:     EINPROGRESS,
	errno.ENOTHREAD:       ENOTHREAD,
	errno.EPROTO:          EPROTO,
	errno.ENOTSUP:         ENOTSUP,
	errno.EPFNOSUPPORT:    EPFNOSUPPORT,
	errno.EDQUOT:          EDQUOT,
}

// ErrorFromErrno returns the *errors.Error for a raw error number.
func ErrorFromErrno(e errno.Errno) *errors.Error {
	if e == errno.NOERRNO {
		return noError
	}
	if e >= errno.EMAXERRNO {
		panic(fmt.Sprintf("invalid error requested with errno: %d", e))
	}
	return errorSlice[e]
}

// ErrorFromResult translates a raw syscall result into an error. Results
// below zero report the error numbered by their magnitude; everything else
// is success.
func ErrorFromResult(rc int64) *errors.Error {
	if rc >= 0 {
		return noError
	}
	return ErrorFromErrno(errno.Errno(-rc))
}

// ToErrno converts a sererr to its raw error number. A nil error is success.
func ToErrno(e *errors.Error) errno.Errno {
	if e == noError {
		return errno.NOERRNO
	}
	return e.Errno()
}

// ToResult converts a sererr to the raw negative result convention.
func ToResult(e *errors.Error) int64 {
	return -int64(ToErrno(e))
}

// Equals compares a sererr to a given error.
func Equals(e *errors.Error, err error) bool {
	if err == nil {
		return e == noError
	}
	return e == err
}

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

//go:build linux

package hostkernel

import (
	"golang.org/x/sys/unix"

	"github.com/edrochenski/serenity/pkg/abi/serenity/errno"
)

// hostErrnos maps host error numbers onto the kernel ABI's numbering.
var hostErrnos = map[unix.Errno]errno.Errno{
	unix.EPERM:        errno.EPERM,
	unix.ENOENT:       errno.ENOENT,
	unix.ESRCH:        errno.ESRCH,
	unix.EINTR:        errno.EINTR,
	unix.EIO:          errno.EIO,
	unix.ENXIO:        errno.ENXIO,
	unix.E2BIG:        errno.E2BIG,
	unix.ENOEXEC:      errno.ENOEXEC,
	unix.EBADF:        errno.EBADF,
	unix.ECHILD:       errno.ECHILD,
	unix.EAGAIN:       errno.EAGAIN,
	unix.ENOMEM:       errno.ENOMEM,
	unix.EACCES:       errno.EACCES,
	unix.EFAULT:       errno.EFAULT,
	unix.ENOTBLK:      errno.ENOTBLK,
	unix.EBUSY:        errno.EBUSY,
	unix.EEXIST:       errno.EEXIST,
	unix.EXDEV:        errno.EXDEV,
	unix.ENODEV:       errno.ENODEV,
	unix.ENOTDIR:      errno.ENOTDIR,
	unix.EISDIR:       errno.EISDIR,
	unix.EINVAL:       errno.EINVAL,
	unix.ENFILE:       errno.ENFILE,
	unix.EMFILE:       errno.EMFILE,
	unix.ENOTTY:       errno.ENOTTY,
	unix.ETXTBSY:      errno.ETXTBSY,
	unix.EFBIG:        errno.EFBIG,
	unix.ENOSPC:       errno.ENOSPC,
	unix.ESPIPE:       errno.ESPIPE,
	unix.EROFS:        errno.EROFS,
	unix.EMLINK:       errno.EMLINK,
	unix.EPIPE:        errno.EPIPE,
	unix.ERANGE:       errno.ERANGE,
	unix.ENAMETOOLONG: errno.ENAMETOOLONG,
	unix.ELOOP:        errno.ELOOP,
	unix.EOVERFLOW:    errno.EOVERFLOW,
	unix.EOPNOTSUPP:   errno.EOPNOTSUPP,
	unix.ENOSYS:       errno.ENOSYS,
	unix.ENOTEMPTY:    errno.ENOTEMPTY,
	unix.EDOM:         errno.EDOM,
	unix.EDEADLK:      errno.EDEADLK,
	unix.ENOLCK:       errno.ENOLCK,
	unix.ETIMEDOUT:    errno.ETIMEDOUT,
	unix.EDQUOT:       errno.EDQUOT,
}

// errnoResult translates a host error into the raw negative result
// convention. Host errors outside the mapped set degrade to EIO.
func errnoResult(err error) int64 {
	if err == nil {
		return 0
	}
	if e, ok := err.(unix.Errno); ok {
		if mapped, ok := hostErrnos[e]; ok {
			return -int64(mapped)
		}
	}
	return -int64(errno.EIO)
}

// result collapses a (value, host error) pair into one raw result.
func result(v int, err error) int64 {
	if err != nil {
		return errnoResult(err)
	}
	return int64(v)
}

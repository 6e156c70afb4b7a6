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

// Package hostkernel implements the syscall boundary on top of the host OS.
// Each selector decodes its parameter record, performs the matching host
// operation, and reports the raw negative-errno convention. It exists so
// code written against the trampoline layer runs, and can be tested,
// without the real kernel.
//
// Host-less selectors (mount, halt, reboot) are refused with EPERM; pledge
// and unveil are accepted and recorded but not enforced.
package hostkernel

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/edrochenski/serenity/pkg/abi/serenity"
	"github.com/edrochenski/serenity/pkg/abi/serenity/errno"
	"github.com/edrochenski/serenity/pkg/sencall"
)

// Unveil is one recorded unveil entry.
type Unveil struct {
	Path        string
	Permissions string
}

// Kernel is a sencall.Invoker backed by the host OS.
type Kernel struct {
	// AllowExec lets execve actually replace the process image. When false
	// a viable candidate reports success without replacing anything, which
	// is what tests and dry runs want.
	AllowExec bool

	// OnExit handles the exit syscall. Defaults to os.Exit.
	OnExit func(status int)

	mu           sync.Mutex
	priorities   map[int32]int32
	pledged      bool
	promises     string
	execPromises string
	unveils      []Unveil

	log *log.Entry
}

// New returns a host-backed kernel.
func New() *Kernel {
	return &Kernel{
		OnExit:     os.Exit,
		priorities: make(map[int32]int32),
		log:        log.WithField("subsys", "hostkernel"),
	}
}

// Pledged returns the promise sets recorded by the last pledge.
func (k *Kernel) Pledged() (promises, execPromises string, ok bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.promises, k.execPromises, k.pledged
}

// Unveils returns the recorded unveil entries.
func (k *Kernel) Unveils() []Unveil {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]Unveil(nil), k.unveils...)
}

// Syscall implements sencall.Invoker.
func (k *Kernel) Syscall(no serenity.Sysno, args *sencall.Args) int64 {
	rc := k.dispatch(no, args)
	k.log.Tracef("%v = %d", no, rc)
	return rc
}

func (k *Kernel) dispatch(no serenity.Sysno, args *sencall.Args) int64 {
	switch no {
	case serenity.SC_READ:
		return result(unix.Read(int(args.Arg0), args.Out))
	case serenity.SC_WRITE:
		return result(unix.Write(int(args.Arg0), args.In))
	case serenity.SC_CLOSE:
		return result(0, unix.Close(int(args.Arg0)))
	case serenity.SC_DUP:
		return result(unix.Dup(int(args.Arg0)))
	case serenity.SC_DUP2:
		return k.dup2(int(args.Arg0), int(args.Arg1))
	case serenity.SC_LSEEK:
		off, err := unix.Seek(int(args.Arg0), int64(args.Arg1), int(args.Arg2))
		if err != nil {
			return errnoResult(err)
		}
		return off
	case serenity.SC_FTRUNCATE:
		return result(0, unix.Ftruncate(int(args.Arg0), int64(args.Arg1)))
	case serenity.SC_PIPE:
		return k.pipe(args)
	case serenity.SC_IOCTL:
		return k.ioctl(args)
	case serenity.SC_TTYNAME_R:
		return k.ttyname(args)

	case serenity.SC_STAT:
		return k.stat(args)
	case serenity.SC_FSTAT:
		return k.fstat(args)
	case serenity.SC_CHOWN:
		return k.chown(args)
	case serenity.SC_FCHOWN:
		return result(0, unix.Fchown(int(args.Arg0), int(args.Arg1), int(args.Arg2)))
	case serenity.SC_LINK:
		return k.link(args)
	case serenity.SC_SYMLINK:
		return k.symlink(args)
	case serenity.SC_READLINK:
		return k.readlink(args)
	case serenity.SC_UNLINK:
		return result(0, unix.Unlink(args.Str))
	case serenity.SC_RMDIR:
		return result(0, unix.Rmdir(args.Str))
	case serenity.SC_MKNOD:
		return k.mknod(args)
	case serenity.SC_ACCESS:
		return result(0, unix.Access(args.Str, uint32(args.Arg2)))

	case serenity.SC_CHDIR:
		return result(0, unix.Chdir(args.Str))
	case serenity.SC_FCHDIR:
		return result(0, unix.Fchdir(int(args.Arg0)))
	case serenity.SC_GETCWD:
		if _, err := unix.Getcwd(args.Out); err != nil {
			return errnoResult(err)
		}
		return 0

	case serenity.SC_GETUID:
		return int64(unix.Getuid())
	case serenity.SC_GETGID:
		return int64(unix.Getgid())
	case serenity.SC_GETEUID:
		return int64(unix.Geteuid())
	case serenity.SC_GETEGID:
		return int64(unix.Getegid())
	case serenity.SC_GETPID:
		return int64(unix.Getpid())
	case serenity.SC_GETPPID:
		return int64(unix.Getppid())
	case serenity.SC_GETTID:
		return int64(unix.Gettid())
	case serenity.SC_SETUID:
		return result(0, unix.Setuid(int(args.Arg0)))
	case serenity.SC_SETGID:
		return result(0, unix.Setgid(int(args.Arg0)))
	case serenity.SC_GETSID:
		return result(unix.Getsid(int(args.Arg0)))
	case serenity.SC_SETSID:
		return result(unix.Setsid())
	case serenity.SC_GETPGID:
		return result(unix.Getpgid(int(args.Arg0)))
	case serenity.SC_SETPGID:
		return result(0, unix.Setpgid(int(args.Arg0), int(args.Arg1)))
	case serenity.SC_GETPGRP:
		return int64(unix.Getpgrp())
	case serenity.SC_GETGROUPS:
		return k.getgroups(args)
	case serenity.SC_SETGROUPS:
		return k.setgroups(args)

	case serenity.SC_GETDTABLESIZE:
		var rl unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
			return errnoResult(err)
		}
		return int64(rl.Cur)
	case serenity.SC_GETHOSTNAME:
		name, err := os.Hostname()
		if err != nil {
			return -int64(errno.EIO)
		}
		return copyOut(args.Out, name)
	case serenity.SC_GET_PROCESS_NAME:
		return copyOut(args.Out, filepath.Base(os.Args[0]))
	case serenity.SC_SET_PROCESS_ICON:
		return -int64(errno.ENOTSUP)

	case serenity.SC_FORK:
		// A Go process cannot be duplicated from under its runtime.
		return -int64(errno.ENOSYS)
	case serenity.SC_EXECVE:
		return k.execve(args)
	case serenity.SC_EXIT:
		k.OnExit(int(args.Arg0))
		return 0

	case serenity.SC_SLEEP:
		time.Sleep(time.Duration(args.Arg0) * time.Second)
		return 0
	case serenity.SC_USLEEP:
		time.Sleep(time.Duration(args.Arg0) * time.Microsecond)
		return 0
	case serenity.SC_ALARM:
		k.log.Debug("alarm is not supported on the host")
		return 0
	case serenity.SC_YIELD, serenity.SC_DONATE:
		runtime.Gosched()
		return 0
	case serenity.SC_SCHED_SETPARAM:
		return k.schedSetparam(args)
	case serenity.SC_SCHED_GETPARAM:
		return k.schedGetparam(args)

	case serenity.SC_SYNC:
		unix.Sync()
		return 0
	case serenity.SC_FSYNC:
		return result(0, unix.Fsync(int(args.Arg0)))

	case serenity.SC_MOUNT, serenity.SC_UMOUNT, serenity.SC_HALT, serenity.SC_REBOOT:
		return -int64(errno.EPERM)
	case serenity.SC_CHROOT:
		return result(0, unix.Chroot(args.Str))

	case serenity.SC_PLEDGE:
		return k.pledge(args)
	case serenity.SC_UNVEIL:
		return k.unveil(args)

	case serenity.SC_BEEP:
		k.log.Debug("beep")
		return 0
	case serenity.SC_DUMP_BACKTRACE:
		buf := make([]byte, 8192)
		buf = buf[:runtime.Stack(buf, false)]
		k.log.Debugf("backtrace:\n%s", buf)
		return 0
	}
	return -int64(errno.ENOSYS)
}

// dup2 has no direct host equivalent on every architecture; dup3 refuses
// equal descriptors, which dup2 treats as a no-op.
func (k *Kernel) dup2(oldFD, newFD int) int64 {
	if oldFD == newFD {
		if _, err := unix.FcntlInt(uintptr(oldFD), unix.F_GETFD, 0); err != nil {
			return errnoResult(err)
		}
		return int64(newFD)
	}
	if err := unix.Dup3(oldFD, newFD, 0); err != nil {
		return errnoResult(err)
	}
	return int64(newFD)
}

func (k *Kernel) pipe(args *sencall.Args) int64 {
	var fds [2]int
	if err := unix.Pipe2(fds[:], int(args.Arg0)); err != nil {
		return errnoResult(err)
	}
	binary.LittleEndian.PutUint32(args.Out[0:], uint32(fds[0]))
	binary.LittleEndian.PutUint32(args.Out[4:], uint32(fds[1]))
	return 0
}

func (k *Kernel) ioctl(args *sencall.Args) int64 {
	fd := int(args.Arg0)
	switch uint32(args.Arg1) {
	case serenity.TCGETS:
		tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
		if err != nil {
			return errnoResult(err)
		}
		wire := serenity.Termios{
			Iflag:  tio.Iflag,
			Oflag:  tio.Oflag,
			Cflag:  tio.Cflag,
			Lflag:  tio.Lflag,
			Cc:     make([]byte, 32),
			Ispeed: tio.Ispeed,
			Ospeed: tio.Ospeed,
		}
		copy(wire.Cc, tio.Cc[:])
		if _, err := sencall.Pack(args.Out, &wire); err != nil {
			return -int64(errno.EFAULT)
		}
		return 0
	case serenity.TIOCGPGRP:
		return result(unix.IoctlGetInt(fd, unix.TIOCGPGRP))
	case serenity.TIOCSPGRP:
		return result(0, unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, int(args.Arg2)))
	}
	return -int64(errno.EINVAL)
}

func (k *Kernel) ttyname(args *sencall.Args) int64 {
	fd := int(args.Arg0)
	if _, err := unix.IoctlGetTermios(fd, unix.TCGETS); err != nil {
		return -int64(errno.ENOTTY)
	}
	buf := make([]byte, serenity.PathMax)
	n, err := unix.Readlink("/proc/self/fd/"+strconv.Itoa(fd), buf)
	if err != nil {
		return errnoResult(err)
	}
	return copyOut(args.Out, string(buf[:n]))
}

func (k *Kernel) stat(args *sencall.Args) int64 {
	var params serenity.StatParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	path, err := rec.View(&params, params.Path)
	if err != nil {
		return -int64(errno.EFAULT)
	}
	var st unix.Stat_t
	if params.FollowSymlinks != 0 {
		err = unix.Stat(path, &st)
	} else {
		err = unix.Lstat(path, &st)
	}
	if err != nil {
		return errnoResult(err)
	}
	return packStat(args.Out, &st)
}

func (k *Kernel) fstat(args *sencall.Args) int64 {
	var st unix.Stat_t
	if err := unix.Fstat(int(args.Arg0), &st); err != nil {
		return errnoResult(err)
	}
	return packStat(args.Out, &st)
}

func packStat(out []byte, st *unix.Stat_t) int64 {
	wire := serenity.Stat{
		Dev:       uint32(st.Dev),
		Ino:       uint32(st.Ino),
		Mode:      uint32(st.Mode),
		NLink:     uint32(st.Nlink),
		UID:       st.Uid,
		GID:       st.Gid,
		Rdev:      uint32(st.Rdev),
		Size:      st.Size,
		BlockSize: int32(st.Blksize),
		Blocks:    int32(st.Blocks),
		Atime:     st.Atim.Sec,
		Mtime:     st.Mtim.Sec,
		Ctime:     st.Ctim.Sec,
	}
	if _, err := sencall.Pack(out, &wire); err != nil {
		return -int64(errno.EFAULT)
	}
	return 0
}

func (k *Kernel) chown(args *sencall.Args) int64 {
	var params serenity.ChownParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	path, err := rec.View(&params, params.Path)
	if err != nil {
		return -int64(errno.EFAULT)
	}
	return result(0, unix.Chown(path, int(params.UID), int(params.GID)))
}

func (k *Kernel) link(args *sencall.Args) int64 {
	var params serenity.LinkParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	oldPath, err1 := rec.View(&params, params.OldPath)
	newPath, err2 := rec.View(&params, params.NewPath)
	if err1 != nil || err2 != nil {
		return -int64(errno.EFAULT)
	}
	return result(0, unix.Link(oldPath, newPath))
}

func (k *Kernel) symlink(args *sencall.Args) int64 {
	var params serenity.SymlinkParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	target, err1 := rec.View(&params, params.Target)
	linkpath, err2 := rec.View(&params, params.Linkpath)
	if err1 != nil || err2 != nil {
		return -int64(errno.EFAULT)
	}
	return result(0, unix.Symlink(target, linkpath))
}

func (k *Kernel) readlink(args *sencall.Args) int64 {
	var params serenity.ReadlinkParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	path, err := rec.View(&params, params.Path)
	if err != nil {
		return -int64(errno.EFAULT)
	}
	n := int(params.BufferSize)
	if n > len(args.Out) {
		n = len(args.Out)
	}
	return result(unix.Readlink(path, args.Out[:n]))
}

func (k *Kernel) mknod(args *sencall.Args) int64 {
	var params serenity.MknodParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	path, err := rec.View(&params, params.Path)
	if err != nil {
		return -int64(errno.EFAULT)
	}
	return result(0, unix.Mknod(path, params.Mode, int(params.Dev)))
}

func (k *Kernel) getgroups(args *sencall.Args) int64 {
	gids, err := unix.Getgroups()
	if err != nil {
		return errnoResult(err)
	}
	want := int(args.Arg0)
	if want > 0 {
		if want < len(gids) {
			return -int64(errno.EINVAL)
		}
		for i, g := range gids {
			binary.LittleEndian.PutUint32(args.Out[4*i:], uint32(g))
		}
	}
	return int64(len(gids))
}

func (k *Kernel) setgroups(args *sencall.Args) int64 {
	n := int(args.Arg0)
	gids := make([]int, n)
	for i := range gids {
		gids[i] = int(binary.LittleEndian.Uint32(args.In[4*i:]))
	}
	return result(0, unix.Setgroups(gids))
}

func (k *Kernel) execve(args *sencall.Args) int64 {
	var params serenity.ExecveParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	path, err := rec.View(&params, params.Path)
	if err != nil {
		return -int64(errno.EFAULT)
	}
	argv, err := rec.Views(&params, params.Arguments)
	if err != nil {
		return -int64(errno.EFAULT)
	}
	envp, err := rec.Views(&params, params.Environment)
	if err != nil {
		return -int64(errno.EFAULT)
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return errnoResult(err)
	}
	if !k.AllowExec {
		k.log.WithField("path", path).Info("execve accepted (dry run)")
		return 0
	}
	return errnoResult(unix.Exec(path, argv, envp))
}

func (k *Kernel) schedSetparam(args *sencall.Args) int64 {
	var params serenity.SchedParams
	if err := sencall.Record(args.Record).Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.priorities[params.PID] = params.Priority
	return 0
}

func (k *Kernel) schedGetparam(args *sencall.Args) int64 {
	pid := int32(args.Arg0)
	k.mu.Lock()
	prio := k.priorities[pid]
	k.mu.Unlock()
	wire := serenity.SchedParams{PID: pid, Priority: prio}
	if _, err := sencall.Pack(args.Out, &wire); err != nil {
		return -int64(errno.EFAULT)
	}
	return 0
}

func (k *Kernel) pledge(args *sencall.Args) int64 {
	var params serenity.PledgeParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	promises, err1 := rec.View(&params, params.Promises)
	execPromises, err2 := rec.View(&params, params.ExecPromises)
	if err1 != nil || err2 != nil {
		return -int64(errno.EFAULT)
	}
	k.mu.Lock()
	k.pledged = true
	k.promises = promises
	k.execPromises = execPromises
	k.mu.Unlock()
	k.log.WithFields(log.Fields{
		"promises":      promises,
		"exec_promises": execPromises,
	}).Info("pledge recorded (not enforced on the host)")
	return 0
}

func (k *Kernel) unveil(args *sencall.Args) int64 {
	var params serenity.UnveilParams
	rec := sencall.Record(args.Record)
	if err := rec.Decode(&params); err != nil {
		return -int64(errno.EFAULT)
	}
	path, err1 := rec.View(&params, params.Path)
	perms, err2 := rec.View(&params, params.Permissions)
	if err1 != nil || err2 != nil {
		return -int64(errno.EFAULT)
	}
	k.mu.Lock()
	k.unveils = append(k.unveils, Unveil{Path: path, Permissions: perms})
	k.mu.Unlock()
	k.log.WithFields(log.Fields{
		"path":        path,
		"permissions": perms,
	}).Info("unveil recorded (not enforced on the host)")
	return 0
}

// copyOut writes s into out with a terminator, failing when it cannot fit.
func copyOut(out []byte, s string) int64 {
	if len(s)+1 > len(out) {
		return -int64(errno.ENAMETOOLONG)
	}
	copy(out, s)
	out[len(s)] = 0
	return 0
}

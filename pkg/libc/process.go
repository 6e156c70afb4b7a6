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
	"github.com/edrochenski/serenity/pkg/sencall"
)

// Fork duplicates the calling process. The parent receives the child's pid;
// the child receives 0. A Task on the child side drops inherited per-thread
// caches. Failure leaves the caller as the original process.
func (t *Task) Fork() (int32, error) {
	rc, err := t.ret(t.k.Syscall(serenity.SC_FORK, &sencall.Args{}))
	if err != nil {
		return -1, err
	}
	if rc == 0 {
		t.forkGen++
	}
	return int32(rc), nil
}

// Exit terminates the process with the given status. It does not return.
func (t *Task) Exit(status int) {
	t.k.Syscall(serenity.SC_EXIT, &sencall.Args{Arg0: uint64(status)})
	panic("exit returned")
}

// Sleep suspends the caller for the given number of seconds, returning the
// unslept remainder if interrupted. The raw result is passed through.
func (t *Task) Sleep(seconds uint32) uint32 {
	return uint32(t.k.Syscall(serenity.SC_SLEEP, &sencall.Args{Arg0: uint64(seconds)}))
}

// Usleep suspends the caller for the given number of microseconds.
func (t *Task) Usleep(usec uint32) int {
	return int(t.k.Syscall(serenity.SC_USLEEP, &sencall.Args{Arg0: uint64(usec)}))
}

// Alarm arms the process alarm timer and returns the seconds remaining on
// any previously armed timer.
func (t *Task) Alarm(seconds uint32) uint32 {
	return uint32(t.k.Syscall(serenity.SC_ALARM, &sencall.Args{Arg0: uint64(seconds)}))
}

// Sync flushes filesystem caches.
func (t *Task) Sync() {
	t.k.Syscall(serenity.SC_SYNC, &sencall.Args{})
}

// Fsync flushes completed writes on fd to stable storage.
func (t *Task) Fsync(fd int) error {
	return t.retErr(t.k.Syscall(serenity.SC_FSYNC, &sencall.Args{Arg0: uint64(fd)}))
}

// Gethostname writes the hostname into buf.
func (t *Task) Gethostname(buf []byte) error {
	return t.retErr(t.k.Syscall(serenity.SC_GETHOSTNAME, &sencall.Args{
		Arg0: uint64(len(buf)),
		Out:  buf,
	}))
}

// GetProcessName writes the process name into buf.
func (t *Task) GetProcessName(buf []byte) error {
	return t.retErr(t.k.Syscall(serenity.SC_GET_PROCESS_NAME, &sencall.Args{
		Arg0: uint64(len(buf)),
		Out:  buf,
	}))
}

// SetProcessIcon assigns the icon shown for the process.
func (t *Task) SetProcessIcon(iconID int) error {
	return t.retErr(t.k.Syscall(serenity.SC_SET_PROCESS_ICON, &sencall.Args{Arg0: uint64(iconID)}))
}

// Donate donates the rest of the caller's timeslice to the given thread.
func (t *Task) Donate(tid int32) error {
	return t.retErr(t.k.Syscall(serenity.SC_DONATE, &sencall.Args{Arg0: uint64(tid)}))
}

// Sysbeep sounds the PC speaker.
func (t *Task) Sysbeep() {
	t.k.Syscall(serenity.SC_BEEP, &sencall.Args{})
}

// DumpBacktrace asks the kernel to log the caller's backtrace.
func (t *Task) DumpBacktrace() {
	t.k.Syscall(serenity.SC_DUMP_BACKTRACE, &sencall.Args{})
}

// Halt stops the machine.
func (t *Task) Halt() error {
	return t.retErr(t.k.Syscall(serenity.SC_HALT, &sencall.Args{}))
}

// Reboot restarts the machine.
func (t *Task) Reboot() error {
	return t.retErr(t.k.Syscall(serenity.SC_REBOOT, &sencall.Args{}))
}

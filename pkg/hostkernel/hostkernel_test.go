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
	"os"
	"path/filepath"
	"testing"

	"github.com/edrochenski/serenity/pkg/errors/sererr"
	"github.com/edrochenski/serenity/pkg/libc"
)

func newTask(t *testing.T) *libc.Task {
	t.Helper()
	return libc.NewTask(New(), os.Environ())
}

func TestPipeRoundTrip(t *testing.T) {
	task := newTask(t)

	fds, err := task.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer task.Close(int(fds[0]))
	defer task.Close(int(fds[1]))

	msg := []byte("hello")
	n, err := task.Write(int(fds[1]), msg)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(msg) {
		t.Fatalf("Write wrote %d bytes, wanted %d", n, len(msg))
	}

	buf := make([]byte, 16)
	n, err = task.Read(int(fds[0]), buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := string(buf[:n]); got != "hello" {
		t.Errorf("Read read %q, wanted %q", got, "hello")
	}
}

func TestGetcwd(t *testing.T) {
	task := newTask(t)

	want, err := os.Getwd()
	if err != nil {
		t.Fatalf("os.Getwd failed: %v", err)
	}
	if got, err := task.Getwd(); err != nil || got != want {
		t.Errorf("Getwd is (%q, %v), wanted (%q, nil)", got, err, want)
	}

	// A buffer too small for the path reports ERANGE.
	if _, err := task.Getcwd(make([]byte, 1)); !sererr.Equals(sererr.ERANGE, err) {
		t.Errorf("short Getcwd returned %v, wanted ERANGE", err)
	}
}

func TestChdir(t *testing.T) {
	task := newTask(t)

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("os.Getwd failed: %v", err)
	}
	defer os.Chdir(orig)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	if err := task.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	if got, err := task.Getwd(); err != nil || got != dir {
		t.Errorf("Getwd is (%q, %v) after Chdir, wanted (%q, nil)", got, err, dir)
	}

	if err := task.Chdir(filepath.Join(dir, "missing")); !sererr.Equals(sererr.ENOENT, err) {
		t.Errorf("Chdir to a missing directory returned %v, wanted ENOENT", err)
	}
}

func TestPread(t *testing.T) {
	task := newTask(t)

	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("hello, friends"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	fd := int(f.Fd())

	buf := make([]byte, 7)
	n, err := task.Pread(fd, buf, 7)
	if err != nil {
		t.Fatalf("Pread failed: %v", err)
	}
	if got := string(buf[:n]); got != "friends" {
		t.Errorf("Pread read %q, wanted %q", got, "friends")
	}

	// The descriptor offset is back where it started.
	n, err = task.Read(fd, buf[:5])
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := string(buf[:n]); got != "hello" {
		t.Errorf("Read after Pread read %q, wanted %q", got, "hello")
	}
}

func TestStat(t *testing.T) {
	task := newTask(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, []byte("0123456789"), 0o640); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	st, err := task.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if st.Size != 10 {
		t.Errorf("stat size is %d, wanted 10", st.Size)
	}
	if got := st.Mode & 0o777; got != 0o640 {
		t.Errorf("stat mode is %o, wanted 640", got)
	}
	if st.UID != uint32(os.Getuid()) {
		t.Errorf("stat uid is %d, wanted %d", st.UID, os.Getuid())
	}

	if _, err := task.Stat(filepath.Join(dir, "missing")); !sererr.Equals(sererr.ENOENT, err) {
		t.Errorf("Stat of a missing file returned %v, wanted ENOENT", err)
	}
}

func TestSymlinkReadlinkUnlink(t *testing.T) {
	task := newTask(t)

	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	if err := task.Symlink("/etc/motd", link); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	// Lstat sees the link itself.
	st, err := task.Lstat(link)
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if got := st.Mode & 0o170000; got != 0o120000 {
		t.Errorf("Lstat mode is %o, wanted a symlink", got)
	}

	buf := make([]byte, 64)
	n, err := task.Readlink(link, buf)
	if err != nil {
		t.Fatalf("Readlink failed: %v", err)
	}
	if got := string(buf[:n]); got != "/etc/motd" {
		t.Errorf("Readlink read %q, wanted %q", got, "/etc/motd")
	}

	if err := task.Unlink(link); err != nil {
		t.Fatalf("Unlink failed: %v", err)
	}
	if _, err := task.Lstat(link); !sererr.Equals(sererr.ENOENT, err) {
		t.Errorf("Lstat after Unlink returned %v, wanted ENOENT", err)
	}
}

func TestFstat(t *testing.T) {
	task := newTask(t)

	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	st, err := task.Fstat(int(f.Fd()))
	if err != nil {
		t.Fatalf("Fstat failed: %v", err)
	}
	if st.Size != 3 {
		t.Errorf("fstat size is %d, wanted 3", st.Size)
	}
}

func TestDup2(t *testing.T) {
	task := newTask(t)

	fds, err := task.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer task.Close(int(fds[0]))
	defer task.Close(int(fds[1]))

	dup, err := task.Dup(int(fds[1]))
	if err != nil {
		t.Fatalf("Dup failed: %v", err)
	}
	defer task.Close(dup)

	// Writing through the duplicate lands in the same pipe.
	if _, err := task.Write(dup, []byte("x")); err != nil {
		t.Fatalf("Write through duplicate failed: %v", err)
	}
	buf := make([]byte, 4)
	n, err := task.Read(int(fds[0]), buf)
	if err != nil || string(buf[:n]) != "x" {
		t.Errorf("Read is (%q, %v), wanted (x, nil)", buf[:n], err)
	}

	// dup2 onto itself is a no-op returning the descriptor.
	if got, err := task.Dup2(dup, dup); err != nil || got != dup {
		t.Errorf("Dup2(fd, fd) is (%d, %v), wanted (%d, nil)", got, err, dup)
	}

	if err := task.Close(dup); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := task.Dup2(dup, dup); !sererr.Equals(sererr.EBADF, err) {
		t.Errorf("Dup2 on a closed descriptor returned %v, wanted EBADF", err)
	}
}

func TestIsattyFalseOnPipe(t *testing.T) {
	task := newTask(t)

	fds, err := task.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer task.Close(int(fds[0]))
	defer task.Close(int(fds[1]))

	if task.Isatty(int(fds[0])) {
		t.Errorf("Isatty is true for a pipe")
	}
	if _, err := task.Ttyname(int(fds[0])); !sererr.Equals(sererr.ENOTTY, err) {
		t.Errorf("Ttyname on a pipe returned %v, wanted ENOTTY", err)
	}
}

func TestAccess(t *testing.T) {
	task := newTask(t)

	if err := task.Access("/", 0); err != nil {
		t.Errorf("Access(/) failed: %v", err)
	}
	if err := task.Access("/definitely/not/here", 0); !sererr.Equals(sererr.ENOENT, err) {
		t.Errorf("Access of a missing path returned %v, wanted ENOENT", err)
	}
}

func TestIdentity(t *testing.T) {
	task := newTask(t)

	if got, want := task.Getuid(), uint32(os.Getuid()); got != want {
		t.Errorf("Getuid is %d, wanted %d", got, want)
	}
	if got, want := task.Getpid(), int32(os.Getpid()); got != want {
		t.Errorf("Getpid is %d, wanted %d", got, want)
	}
	if got := task.Gettid(); got == 0 {
		t.Errorf("Gettid is 0")
	}
}

func TestGethostname(t *testing.T) {
	task := newTask(t)

	want, err := os.Hostname()
	if err != nil {
		t.Fatalf("os.Hostname failed: %v", err)
	}
	buf := make([]byte, 256)
	if err := task.Gethostname(buf); err != nil {
		t.Fatalf("Gethostname failed: %v", err)
	}
	got := buf[:]
	for i, b := range got {
		if b == 0 {
			got = got[:i]
			break
		}
	}
	if string(got) != want {
		t.Errorf("Gethostname is %q, wanted %q", got, want)
	}
}

func TestGetdtablesize(t *testing.T) {
	task := newTask(t)
	n, err := task.Getdtablesize()
	if err != nil {
		t.Fatalf("Getdtablesize failed: %v", err)
	}
	if n <= 0 {
		t.Errorf("Getdtablesize is %d, wanted a positive table size", n)
	}
}

func TestForkRefused(t *testing.T) {
	task := newTask(t)
	if _, err := task.Fork(); !sererr.Equals(sererr.ENOSYS, err) {
		t.Errorf("Fork returned %v, wanted ENOSYS", err)
	}
}

func TestMountRefused(t *testing.T) {
	task := newTask(t)
	if err := task.Mount(-1, "/mnt", "ext2", 0); !sererr.Equals(sererr.EPERM, err) {
		t.Errorf("Mount returned %v, wanted EPERM", err)
	}
	if err := task.Umount("/mnt"); !sererr.Equals(sererr.EPERM, err) {
		t.Errorf("Umount returned %v, wanted EPERM", err)
	}
	if err := task.Halt(); !sererr.Equals(sererr.EPERM, err) {
		t.Errorf("Halt returned %v, wanted EPERM", err)
	}
	if err := task.Reboot(); !sererr.Equals(sererr.EPERM, err) {
		t.Errorf("Reboot returned %v, wanted EPERM", err)
	}
}

func TestPledgeUnveilRecorded(t *testing.T) {
	k := New()
	task := libc.NewTask(k, nil)

	if err := task.Pledge("stdio rpath", "stdio"); err != nil {
		t.Fatalf("Pledge failed: %v", err)
	}
	promises, execPromises, ok := k.Pledged()
	if !ok || promises != "stdio rpath" || execPromises != "stdio" {
		t.Errorf("Pledged is (%q, %q, %t), wanted (stdio rpath, stdio, true)", promises, execPromises, ok)
	}

	if err := task.Unveil("/etc", "r"); err != nil {
		t.Fatalf("Unveil failed: %v", err)
	}
	unveils := k.Unveils()
	if len(unveils) != 1 || unveils[0] != (Unveil{Path: "/etc", Permissions: "r"}) {
		t.Errorf("Unveils is %v, wanted [{/etc r}]", unveils)
	}
}

func TestExecveDryRun(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skipf("no /bin/sh: %v", err)
	}
	task := newTask(t)

	// Without AllowExec a viable candidate reports success and returns.
	if err := task.Execve("/bin/sh", []string{"sh", "-c", "true"}, nil); err != nil {
		t.Fatalf("Execve dry run failed: %v", err)
	}

	if err := task.Execve("/definitely/not/here", nil, nil); !sererr.Equals(sererr.ENOENT, err) {
		t.Errorf("Execve of a missing program returned %v, wanted ENOENT", err)
	}
}

func TestExecvpSearchesHostPath(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skipf("no /bin/sh: %v", err)
	}
	task := libc.NewTask(New(), []string{"PATH=/nonexistent:/bin"})

	if err := task.Execvp("sh", []string{"sh"}); err != nil {
		t.Fatalf("Execvp failed: %v", err)
	}
	if err := task.Execvp("definitely-not-a-program", nil); !sererr.Equals(sererr.ENOENT, err) {
		t.Errorf("Execvp of a missing program returned %v, wanted ENOENT", err)
	}
}

func TestSchedParamRoundTrip(t *testing.T) {
	task := newTask(t)

	if err := task.SchedSetparam(0, 2); err != nil {
		t.Fatalf("SchedSetparam failed: %v", err)
	}
	got, err := task.SchedGetparam(0)
	if err != nil {
		t.Fatalf("SchedGetparam failed: %v", err)
	}
	if got != 2 {
		t.Errorf("priority is %d, wanted 2", got)
	}
}

func TestExitHandler(t *testing.T) {
	k := New()
	status := -1
	k.OnExit = func(s int) { status = s }
	task := libc.NewTask(k, nil)

	defer func() {
		if recover() == nil {
			t.Errorf("Exit returned without panicking")
		}
		if status != 3 {
			t.Errorf("exit status is %d, wanted 3", status)
		}
	}()
	task.Exit(3)
}

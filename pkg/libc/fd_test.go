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
	"encoding/binary"
	"testing"

	"github.com/edrochenski/serenity/pkg/abi/serenity"
	"github.com/edrochenski/serenity/pkg/errors/sererr"
	"github.com/edrochenski/serenity/pkg/sencall"
)

func TestPipeDecodesDescriptors(t *testing.T) {
	k := &fakeKernel{handler: func(no serenity.Sysno, args *sencall.Args) int64 {
		if no != serenity.SC_PIPE {
			t.Errorf("unexpected syscall %v", no)
			return sererr.ToResult(sererr.ENOSYS)
		}
		binary.LittleEndian.PutUint32(args.Out[0:], 3)
		binary.LittleEndian.PutUint32(args.Out[4:], 4)
		return 0
	}}
	task := NewTask(k, nil)

	fds, err := task.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	if fds != [2]int32{3, 4} {
		t.Errorf("Pipe returned %v, wanted [3 4]", fds)
	}
}

func TestPipeFailure(t *testing.T) {
	k := &fakeKernel{handler: refuse(sererr.ToResult(sererr.EMFILE))}
	task := NewTask(k, nil)

	fds, err := task.Pipe()
	if !sererr.Equals(sererr.EMFILE, err) {
		t.Fatalf("Pipe returned %v, wanted EMFILE", err)
	}
	if fds != [2]int32{-1, -1} {
		t.Errorf("failed Pipe returned fds %v, wanted [-1 -1]", fds)
	}
}

// seekableFile emulates an offset-carrying descriptor for the fake kernel.
type seekableFile struct {
	data   []byte
	offset int64
}

func (f *seekableFile) handle(no serenity.Sysno, args *sencall.Args) int64 {
	switch no {
	case serenity.SC_LSEEK:
		switch int(args.Arg2) {
		case serenity.SEEK_SET:
			f.offset = int64(args.Arg1)
		case serenity.SEEK_CUR:
			f.offset += int64(args.Arg1)
		case serenity.SEEK_END:
			f.offset = int64(len(f.data)) + int64(args.Arg1)
		}
		return f.offset
	case serenity.SC_READ:
		if f.offset >= int64(len(f.data)) {
			return 0
		}
		n := copy(args.Out, f.data[f.offset:])
		f.offset += int64(n)
		return int64(n)
	}
	return sererr.ToResult(sererr.ENOSYS)
}

func TestPreadRestoresOffset(t *testing.T) {
	f := &seekableFile{data: []byte("hello, friends"), offset: 5}
	k := &fakeKernel{handler: f.handle}
	task := NewTask(k, nil)

	buf := make([]byte, 7)
	n, err := task.Pread(3, buf, 7)
	if err != nil {
		t.Fatalf("Pread failed: %v", err)
	}
	if got := string(buf[:n]); got != "friends" {
		t.Errorf("Pread read %q, wanted %q", got, "friends")
	}
	if f.offset != 5 {
		t.Errorf("offset is %d after Pread, wanted the original 5", f.offset)
	}
}

func TestIsatty(t *testing.T) {
	k := &fakeKernel{handler: refuse(sererr.ToResult(sererr.ENOTTY))}
	task := NewTask(k, nil)
	if task.Isatty(3) {
		t.Errorf("Isatty is true for a non-terminal")
	}
	// The query failure lands in the errno slot like any other failure.
	if got := task.Errno(); got != sererr.ENOTTY {
		t.Errorf("errno slot holds %v, wanted ENOTTY", got)
	}

	k.handler = func(no serenity.Sysno, args *sencall.Args) int64 {
		tio := serenity.Termios{Cc: make([]byte, 32)}
		if _, err := sencall.Pack(args.Out, &tio); err != nil {
			t.Fatalf("packing termios: %v", err)
		}
		return 0
	}
	if !task.Isatty(3) {
		t.Errorf("Isatty is false for a terminal")
	}
}

func TestTtyname(t *testing.T) {
	k := &fakeKernel{handler: func(no serenity.Sysno, args *sencall.Args) int64 {
		if no != serenity.SC_TTYNAME_R {
			t.Errorf("unexpected syscall %v", no)
			return sererr.ToResult(sererr.ENOSYS)
		}
		copy(args.Out, "/dev/pts/0\x00")
		return 0
	}}
	task := NewTask(k, nil)

	name, err := task.Ttyname(0)
	if err != nil {
		t.Fatalf("Ttyname failed: %v", err)
	}
	if name != "/dev/pts/0" {
		t.Errorf("Ttyname is %q, wanted %q", name, "/dev/pts/0")
	}
}

func TestGetcwd(t *testing.T) {
	const wd = "/home/anon"
	k := &fakeKernel{handler: func(no serenity.Sysno, args *sencall.Args) int64 {
		if no != serenity.SC_GETCWD {
			t.Errorf("unexpected syscall %v", no)
			return sererr.ToResult(sererr.ENOSYS)
		}
		if len(args.Out) < len(wd)+1 {
			return sererr.ToResult(sererr.ERANGE)
		}
		copy(args.Out, wd+"\x00")
		return 0
	}}
	task := NewTask(k, nil)

	// A nil buffer allocates one of PathMax capacity.
	buf, err := task.Getcwd(nil)
	if err != nil {
		t.Fatalf("Getcwd(nil) failed: %v", err)
	}
	if len(buf) != serenity.PathMax {
		t.Errorf("allocated buffer holds %d bytes, wanted %d", len(buf), serenity.PathMax)
	}
	if got := cstring(buf); got != wd {
		t.Errorf("Getcwd wrote %q, wanted %q", got, wd)
	}

	if got, err := task.Getwd(); err != nil || got != wd {
		t.Errorf("Getwd is (%q, %v), wanted (%q, nil)", got, err, wd)
	}

	// A buffer too small for the path fails with ERANGE.
	if _, err := task.Getcwd(make([]byte, 4)); !sererr.Equals(sererr.ERANGE, err) {
		t.Errorf("short Getcwd returned %v, wanted ERANGE", err)
	}
}

func TestReadlinkRecord(t *testing.T) {
	k := &fakeKernel{handler: func(no serenity.Sysno, args *sencall.Args) int64 {
		var params serenity.ReadlinkParams
		rec := sencall.Record(args.Record)
		if err := rec.Decode(&params); err != nil {
			return sererr.ToResult(sererr.EFAULT)
		}
		path, err := rec.View(&params, params.Path)
		if err != nil {
			return sererr.ToResult(sererr.EFAULT)
		}
		if path != "/tmp/link" {
			return sererr.ToResult(sererr.ENOENT)
		}
		if params.BufferSize != uint32(len(args.Out)) {
			return sererr.ToResult(sererr.EINVAL)
		}
		return int64(copy(args.Out, "/tmp/target"))
	}}
	task := NewTask(k, nil)

	buf := make([]byte, 64)
	n, err := task.Readlink("/tmp/link", buf)
	if err != nil {
		t.Fatalf("Readlink failed: %v", err)
	}
	if got := string(buf[:n]); got != "/tmp/target" {
		t.Errorf("Readlink read %q, wanted %q", got, "/tmp/target")
	}
}

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
	"github.com/edrochenski/serenity/pkg/errors/sererr"
	"github.com/edrochenski/serenity/pkg/sencall"
)

// Chdir changes the working directory to path.
func (t *Task) Chdir(path string) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_CHDIR, &sencall.Args{
		Str:  path,
		Arg1: uint64(len(path)),
	}))
}

// Fchdir changes the working directory to the directory open on fd.
func (t *Task) Fchdir(fd int) error {
	return t.retErr(t.k.Syscall(serenity.SC_FCHDIR, &sencall.Args{Arg0: uint64(fd)}))
}

// Getcwd writes the working directory into buf and returns it. A nil buf
// allocates one of PathMax capacity. A buffer too small for the path fails
// with ERANGE from the kernel; the allocated buffer is then not returned and
// is the caller's to track.
func (t *Task) Getcwd(buf []byte) ([]byte, error) {
	if buf == nil {
		buf = make([]byte, serenity.PathMax)
	}
	if err := t.retErr(t.k.Syscall(serenity.SC_GETCWD, &sencall.Args{
		Arg0: uint64(len(buf)),
		Out:  buf,
	})); err != nil {
		return nil, err
	}
	return buf, nil
}

// Getwd returns the working directory as a string.
func (t *Task) Getwd() (string, error) {
	buf, err := t.Getcwd(nil)
	if err != nil {
		return "", err
	}
	return cstring(buf), nil
}

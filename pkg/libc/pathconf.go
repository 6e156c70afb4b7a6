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
)

// Pathconf returns the value of the named configuration limit for path.
// Unrecognized names fail with EINVAL.
func (t *Task) Pathconf(path string, name int) (int64, error) {
	switch name {
	case serenity.PC_PATH_MAX:
		return serenity.PathMax, nil
	case serenity.PC_PIPE_BUF:
		return serenity.PipeBuf, nil
	}
	return -1, t.fail(sererr.EINVAL)
}

// Fpathconf returns the value of the named configuration limit for fd.
// Unrecognized names fail with EINVAL.
func (t *Task) Fpathconf(fd int, name int) (int64, error) {
	switch name {
	case serenity.PC_PATH_MAX:
		return serenity.PathMax, nil
	case serenity.PC_VDISABLE:
		return serenity.POSIX_VDISABLE, nil
	}
	return -1, t.fail(sererr.EINVAL)
}

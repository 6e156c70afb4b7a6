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

// Scheduler priority bounds. The values are opaque pass-through; the
// scheduler owns their meaning.
const (
	SchedPriorityMin = 0
	SchedPriorityMax = 3
)

// SchedYield gives up the rest of the caller's timeslice.
func (t *Task) SchedYield() error {
	return t.retErr(t.k.Syscall(serenity.SC_YIELD, &sencall.Args{}))
}

// SchedGetPriorityMin returns the lowest priority for a policy.
func (t *Task) SchedGetPriorityMin(policy int) (int, error) {
	return SchedPriorityMin, nil
}

// SchedGetPriorityMax returns the highest priority for a policy.
func (t *Task) SchedGetPriorityMax(policy int) (int, error) {
	return SchedPriorityMax, nil
}

// SchedSetparam sets the scheduling priority of pid.
func (t *Task) SchedSetparam(pid int32, priority int32) error {
	var b sencall.Builder
	params := serenity.SchedParams{PID: pid, Priority: priority}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_SCHED_SETPARAM, &sencall.Args{Record: rec}))
}

// SchedGetparam returns the scheduling priority of pid.
func (t *Task) SchedGetparam(pid int32) (int32, error) {
	var params serenity.SchedParams
	size, err := sencall.Sizeof(&params)
	if err != nil {
		return -1, t.fail(sererr.EFAULT)
	}
	out := make([]byte, size)
	if err := t.retErr(t.k.Syscall(serenity.SC_SCHED_GETPARAM, &sencall.Args{
		Arg0: uint64(pid),
		Out:  out,
	})); err != nil {
		return -1, err
	}
	if err := sencall.Unpack(out, &params); err != nil {
		return -1, t.fail(sererr.EFAULT)
	}
	return params.Priority, nil
}

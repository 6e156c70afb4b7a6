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

// Package sencall defines the syscall boundary between the library and the
// kernel: the raw argument shape, the invocation interface, and the wire
// codec for parameter records.
//
// The return convention is a single int64 where a negative value -n reports
// the error numbered n and anything else is the success value.
package sencall

import (
	"github.com/edrochenski/serenity/pkg/abi/serenity"
)

// Args carries the raw arguments of one syscall.
//
// Arg0 through Arg2 are the register arguments. For syscalls whose C shape
// passes a single anonymous (pointer, length) string, the string travels in
// Str with its length in a register. In and Out are the caller memory the
// kernel reads from or writes into. Record, when non-nil, is the encoded
// parameter record whose address would occupy the first register.
type Args struct {
	Arg0 uint64
	Arg1 uint64
	Arg2 uint64

	Str    string
	In     []byte
	Out    []byte
	Record []byte
}

// Invoker is the kernel entry point. Implementations block the calling
// thread until the kernel returns.
type Invoker interface {
	Syscall(no serenity.Sysno, args *Args) int64
}

// InvokerFunc adapts a function to an Invoker.
type InvokerFunc func(no serenity.Sysno, args *Args) int64

// Syscall implements Invoker.
func (f InvokerFunc) Syscall(no serenity.Sysno, args *Args) int64 {
	return f(no, args)
}

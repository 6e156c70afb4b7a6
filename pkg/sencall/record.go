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

package sencall

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lunixbochs/struc"

	"github.com/edrochenski/serenity/pkg/abi/serenity"
)

// wireOrder fixes the wire layout of records: little-endian, natural field
// order, no alignment padding.
var wireOrder = binary.LittleEndian

// stringArgumentSize is the packed size of one serenity.StringArgument.
const stringArgumentSize = 8

// Builder assembles one parameter record: a struc-packed header followed by
// a string arena. StringArgument offsets are relative to the arena start.
// A Builder is used for a single record and then discarded.
type Builder struct {
	arena bytes.Buffer
}

// String appends s to the arena and returns its view. The empty string
// yields a zero-length view, which the kernel treats as absent.
func (b *Builder) String(s string) serenity.StringArgument {
	if len(s) == 0 {
		return serenity.StringArgument{}
	}
	off := b.arena.Len()
	b.arena.WriteString(s)
	return serenity.StringArgument{Offset: uint32(off), Length: uint32(len(s))}
}

// Strings appends every string of ss to the arena, then appends the packed
// array of their views, and returns the list argument locating that array.
func (b *Builder) Strings(ss []string) serenity.StringListArgument {
	views := make([]serenity.StringArgument, len(ss))
	for i, s := range ss {
		views[i] = b.String(s)
	}
	off := b.arena.Len()
	var scratch [stringArgumentSize]byte
	for _, v := range views {
		binary.LittleEndian.PutUint32(scratch[0:], v.Offset)
		binary.LittleEndian.PutUint32(scratch[4:], v.Length)
		b.arena.Write(scratch[:])
	}
	return serenity.StringListArgument{Length: uint32(len(ss)), Offset: uint32(off)}
}

// Encode packs the header and appends the arena, producing the record bytes
// handed to the kernel. header must be a pointer to one of the parameter
// record structs.
func (b *Builder) Encode(header any) ([]byte, error) {
	var buf bytes.Buffer
	if err := struc.PackWithOrder(&buf, header, wireOrder); err != nil {
		return nil, fmt.Errorf("packing record header %T: %w", header, err)
	}
	buf.Write(b.arena.Bytes())
	return buf.Bytes(), nil
}

// Record is an encoded parameter record as received by the kernel side.
type Record []byte

// Decode unpacks the record header into header, which must be a pointer to
// the parameter record struct the syscall expects.
func (r Record) Decode(header any) error {
	if err := struc.UnpackWithOrder(bytes.NewReader(r), header, wireOrder); err != nil {
		return fmt.Errorf("unpacking record header %T: %w", header, err)
	}
	return nil
}

// arena returns the string arena following the packed header.
func (r Record) arena(header any) ([]byte, error) {
	n, err := struc.Sizeof(header)
	if err != nil {
		return nil, fmt.Errorf("sizing record header %T: %w", header, err)
	}
	if n > len(r) {
		return nil, fmt.Errorf("record too short: header %d bytes, record %d", n, len(r))
	}
	return r[n:], nil
}

// View resolves a string view against the record's arena. header must be the
// same struct the record was decoded into.
func (r Record) View(header any, sa serenity.StringArgument) (string, error) {
	if sa.Length == 0 {
		return "", nil
	}
	arena, err := r.arena(header)
	if err != nil {
		return "", err
	}
	end := uint64(sa.Offset) + uint64(sa.Length)
	if end > uint64(len(arena)) {
		return "", fmt.Errorf("string view [%d, %d) outside arena of %d bytes", sa.Offset, end, len(arena))
	}
	return string(arena[sa.Offset:end]), nil
}

// Views resolves a string list against the record's arena.
func (r Record) Views(header any, sla serenity.StringListArgument) ([]string, error) {
	arena, err := r.arena(header)
	if err != nil {
		return nil, err
	}
	end := uint64(sla.Offset) + uint64(sla.Length)*stringArgumentSize
	if end > uint64(len(arena)) {
		return nil, fmt.Errorf("view array [%d, %d) outside arena of %d bytes", sla.Offset, end, len(arena))
	}
	out := make([]string, sla.Length)
	for i := range out {
		p := arena[uint64(sla.Offset)+uint64(i)*stringArgumentSize:]
		sa := serenity.StringArgument{
			Offset: binary.LittleEndian.Uint32(p[0:]),
			Length: binary.LittleEndian.Uint32(p[4:]),
		}
		s, err := r.View(header, sa)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Pack encodes a wire struct (stat, termios, sched params) into out using
// the record byte layout. It is used for kernel results delivered through
// caller buffers.
func Pack(out []byte, v any) (int, error) {
	var buf bytes.Buffer
	if err := struc.PackWithOrder(&buf, v, wireOrder); err != nil {
		return 0, fmt.Errorf("packing %T: %w", v, err)
	}
	if buf.Len() > len(out) {
		return 0, fmt.Errorf("packed %T is %d bytes, buffer holds %d", v, buf.Len(), len(out))
	}
	return copy(out, buf.Bytes()), nil
}

// Unpack decodes a wire struct previously written with Pack.
func Unpack(in []byte, v any) error {
	if err := struc.UnpackWithOrder(bytes.NewReader(in), v, wireOrder); err != nil {
		return fmt.Errorf("unpacking %T: %w", v, err)
	}
	return nil
}

// Sizeof returns the packed size of a wire struct.
func Sizeof(v any) (int, error) {
	return struc.Sizeof(v)
}

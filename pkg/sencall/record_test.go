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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edrochenski/serenity/pkg/abi/serenity"
)

func TestBuilderEmptyStringIsAbsent(t *testing.T) {
	var b Builder
	if got := b.String(""); got != (serenity.StringArgument{}) {
		t.Errorf("String(\"\") is %+v, wanted the zero view", got)
	}
	if b.arena.Len() != 0 {
		t.Errorf("empty string grew the arena to %d bytes", b.arena.Len())
	}
}

func TestRecordRoundTrip(t *testing.T) {
	argv := []string{"ls", "-l", "/tmp"}
	envp := []string{"PATH=/bin", "TERM=dumb"}

	var b Builder
	in := serenity.ExecveParams{
		Path:        b.String("/bin/ls"),
		Arguments:   b.Strings(argv),
		Environment: b.Strings(envp),
	}
	rec, err := b.Encode(&in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var out serenity.ExecveParams
	r := Record(rec)
	if err := r.Decode(&out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("decoded header mismatch (-want +got):\n%s", diff)
	}

	path, err := r.View(&out, out.Path)
	if err != nil {
		t.Fatalf("View(Path) failed: %v", err)
	}
	if path != "/bin/ls" {
		t.Errorf("path is %q, wanted %q", path, "/bin/ls")
	}
	gotArgv, err := r.Views(&out, out.Arguments)
	if err != nil {
		t.Fatalf("Views(Arguments) failed: %v", err)
	}
	if diff := cmp.Diff(argv, gotArgv); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
	gotEnvp, err := r.Views(&out, out.Environment)
	if err != nil {
		t.Fatalf("Views(Environment) failed: %v", err)
	}
	if diff := cmp.Diff(envp, gotEnvp); diff != "" {
		t.Errorf("envp mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordEmptyStringList(t *testing.T) {
	var b Builder
	in := serenity.ExecveParams{
		Path:      b.String("/bin/true"),
		Arguments: b.Strings(nil),
	}
	rec, err := b.Encode(&in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var out serenity.ExecveParams
	r := Record(rec)
	if err := r.Decode(&out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, err := r.Views(&out, out.Arguments)
	if err != nil {
		t.Fatalf("Views failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty list resolved to %v", got)
	}
}

func TestViewOutsideArena(t *testing.T) {
	var b Builder
	in := serenity.UnveilParams{Path: b.String("/etc")}
	rec, err := b.Encode(&in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var out serenity.UnveilParams
	r := Record(rec)
	if err := r.Decode(&out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	bogus := serenity.StringArgument{Offset: 100, Length: 100}
	if _, err := r.View(&out, bogus); err == nil {
		t.Errorf("View outside the arena succeeded")
	}
}

func TestPackUnpackStat(t *testing.T) {
	in := serenity.Stat{
		Dev:   8,
		Ino:   42,
		Mode:  0o100644,
		NLink: 1,
		UID:   100,
		GID:   100,
		Size:  4096,
		Atime: 1577836800,
	}
	size, err := Sizeof(&in)
	if err != nil {
		t.Fatalf("Sizeof failed: %v", err)
	}
	buf := make([]byte, size)
	if _, err := Pack(buf, &in); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	var out serenity.Stat
	if err := Unpack(buf, &out); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("stat mismatch (-want +got):\n%s", diff)
	}

	if _, err := Pack(buf[:size-1], &in); err == nil {
		t.Errorf("Pack into a short buffer succeeded")
	}
}

// TestPackedSizes pins the wire sizes of the parameter records. These are
// part of the kernel contract; a change here is an ABI break.
func TestPackedSizes(t *testing.T) {
	for _, tc := range []struct {
		v    any
		want int
	}{
		{v: new(serenity.StringArgument), want: 8},
		{v: new(serenity.StringListArgument), want: 8},
		{v: new(serenity.ChownParams), want: 16},
		{v: new(serenity.StatParams), want: 9},
		{v: new(serenity.ReadlinkParams), want: 12},
		{v: new(serenity.LinkParams), want: 16},
		{v: new(serenity.SymlinkParams), want: 16},
		{v: new(serenity.MknodParams), want: 16},
		{v: new(serenity.MountParams), want: 24},
		{v: new(serenity.ExecveParams), want: 24},
		{v: new(serenity.PledgeParams), want: 16},
		{v: new(serenity.UnveilParams), want: 16},
		{v: new(serenity.SchedParams), want: 8},
		{v: new(serenity.Stat), want: 68},
		{v: new(serenity.Termios), want: 56},
	} {
		got, err := Sizeof(tc.v)
		if err != nil {
			t.Errorf("Sizeof(%T) failed: %v", tc.v, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Sizeof(%T) is %d, wanted %d", tc.v, got, tc.want)
		}
	}
}

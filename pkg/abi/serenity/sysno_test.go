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

package serenity

import "testing"

func TestSysnoNamesComplete(t *testing.T) {
	for s := Sysno(0); s < maxSysno; s++ {
		if sysnoNames[s] == "" {
			t.Errorf("sysno %d has no name", s)
		}
	}
}

func TestSysnoString(t *testing.T) {
	if got, want := SC_EXECVE.String(), "execve"; got != want {
		t.Errorf("SC_EXECVE.String() is %q, wanted %q", got, want)
	}
	if got, want := maxSysno.String(), "sysno(65)"; got != want {
		t.Errorf("maxSysno.String() is %q, wanted %q", got, want)
	}
}

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
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/edrochenski/serenity/pkg/abi/serenity"
	"github.com/edrochenski/serenity/pkg/errors/sererr"
	"github.com/edrochenski/serenity/pkg/sencall"
)

// Execve replaces the calling image with the program at path. On success it
// does not return to the caller; it returns only on failure, with the
// original image intact. argv and envp travel as arrays of length-prefixed
// views.
func (t *Task) Execve(path string, argv, envp []string) error {
	if path == "" {
		return t.fail(sererr.EFAULT)
	}
	var b sencall.Builder
	params := serenity.ExecveParams{
		Path:        b.String(path),
		Arguments:   b.Strings(argv),
		Environment: b.Strings(envp),
	}
	rec, err := b.Encode(&params)
	if err != nil {
		return t.fail(sererr.EFAULT)
	}
	return t.retErr(t.k.Syscall(serenity.SC_EXECVE, &sencall.Args{Record: rec}))
}

// Execv is Execve with the Task's ambient environment.
func (t *Task) Execv(path string, argv []string) error {
	return t.Execve(path, argv, t.env)
}

// Execl builds argv from its trailing arguments and delegates to Execve
// with the ambient environment.
func (t *Task) Execl(path, arg0 string, args ...string) error {
	argv := append([]string{arg0}, args...)
	return t.Execve(path, argv, t.env)
}

// Execlp is Execl with PATH search.
func (t *Task) Execlp(name, arg0 string, args ...string) error {
	argv := append([]string{arg0}, args...)
	return t.Execvpe(name, argv, t.env)
}

// Execvp is Execvpe with the Task's ambient environment.
func (t *Task) Execvp(name string, argv []string) error {
	return t.Execvpe(name, argv, t.env)
}

// Execvpe executes name, searching PATH when the name carries no path
// separator. A candidate failing with anything other than ENOENT stops the
// search and propagates; exhausting all candidates fails with ENOENT. The
// errno slot is restored to its pre-call value unless the function is
// returning a failure.
func (t *Task) Execvpe(name string, argv, envp []string) error {
	if strings.ContainsRune(name, '/') {
		return t.Execve(name, argv, envp)
	}

	rollback := t.saveErrno()
	defer rollback.apply()

	path := t.Getenv("PATH")
	if path == "" {
		path = DefaultPath
	}
	for _, dir := range strings.Split(path, ":") {
		candidate := dir + "/" + name
		if err := t.Execve(candidate, argv, envp); err != nil {
			if !sererr.Equals(sererr.ENOENT, err) {
				rollback.override(t.errno)
				log.Debugf("execvpe: attempt %q failed: %v", candidate, err)
				return err
			}
			continue
		}
		// Only a kernel that did not actually replace the image returns
		// success here; leave the snapshot errno in place either way.
		return nil
	}
	rollback.override(sererr.ENOENT)
	return sererr.ENOENT
}

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package gdbmi

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/varsnap/pkg/errors"
)

// Runner issues one MI command and returns its parsed result record.
// The Target reads through a Runner; the Session adds execution control
// on top of the same command channel.
type Runner interface {
	Exec(ctx context.Context, cmd string) (*Result, error)
}

// StopEvent describes why the debuggee stopped running.
type StopEvent struct {
	// Reason is the MI stop reason, e.g. "breakpoint-hit" or
	// "exited-normally".
	Reason string

	// Exited reports whether the debuggee has terminated.
	Exited bool

	// ExitCode is the debuggee exit code when Exited and reported.
	ExitCode int
}

// SessionConfig configures a gdb process session.
type SessionConfig struct {
	// GDBPath is the gdb executable. Defaults to "gdb" on PATH.
	GDBPath string

	// Program is the debuggee executable path.
	Program string

	// Args are the debuggee arguments.
	Args []string
}

// Session drives one gdb process over the MI2 interpreter: it pumps and
// parses output, correlates result records with commands, and surfaces
// stop events. A Session is also a Runner, so a Target can read variables
// through it while the operator loop controls execution.
type Session struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	eg      *errgroup.Group
	results chan record
	stops   chan StopEvent

	// execMu serializes commands so console output correlates with the
	// command that produced it.
	execMu sync.Mutex

	consoleMu sync.Mutex
	console   []string

	token int
}

// Start launches gdb with the configured debuggee and waits for the first
// prompt. The debuggee is loaded but not running.
func Start(ctx context.Context, cfg SessionConfig) (*Session, error) {
	gdbPath := cfg.GDBPath
	if gdbPath == "" {
		gdbPath = "gdb"
	}
	if strings.TrimSpace(cfg.Program) == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "debuggee program is required")
	}

	args := []string{"--interpreter=mi2", "--quiet", "-nx", "--args", cfg.Program}
	args = append(args, cfg.Args...)

	cmd := exec.CommandContext(ctx, gdbPath, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to open gdb stdin", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to open gdb stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to open gdb stderr", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to start gdb", err, map[string]any{"gdb": gdbPath})
	}

	s := &Session{
		cmd:     cmd,
		stdin:   stdin,
		results: make(chan record, 4),
		stops:   make(chan StopEvent, 4),
	}

	s.eg, _ = errgroup.WithContext(ctx)
	s.eg.Go(func() error { return s.pump(stdout) })
	s.eg.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			slog.Debug("gdb stderr", "line", scanner.Text())
		}
		return nil
	})

	slog.Info("gdb session started", "gdb", gdbPath, "program", cfg.Program)
	return s, nil
}

// pump reads and routes MI output until gdb closes its stdout.
func (s *Session) pump(stdout io.Reader) error {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		rec := parseLine(scanner.Text())
		switch rec.kind {
		case recordResult:
			s.results <- rec
		case recordAsync:
			if rec.class == "stopped" {
				s.stops <- stopEventFrom(rec)
			}
		case recordConsole:
			s.consoleMu.Lock()
			s.console = append(s.console, rec.text)
			s.consoleMu.Unlock()
		case recordLog:
			slog.Debug("gdb log", "text", strings.TrimSpace(rec.text))
		default:
			// Prompts, notifies, and target output need no handling.
		}
	}
	close(s.results)
	close(s.stops)
	return scanner.Err()
}

func stopEventFrom(rec record) StopEvent {
	ev := StopEvent{Reason: rec.fields["reason"]}
	ev.Exited = strings.HasPrefix(ev.Reason, "exited")
	if code, ok := rec.fields["exit-code"]; ok {
		// gdb reports exit codes in octal.
		if n, err := strconv.ParseInt(code, 8, 32); err == nil {
			ev.ExitCode = int(n)
		}
	}
	return ev
}

// Exec sends one MI command and waits for its result record. Console
// stream output emitted before the result is attached to it. Transport
// failures are errors; an MI ^error comes back as a Result with Class
// "error" for the caller to interpret.
func (s *Session) Exec(ctx context.Context, cmd string) (*Result, error) {
	s.execMu.Lock()
	defer s.execMu.Unlock()

	s.consoleMu.Lock()
	s.console = nil
	s.consoleMu.Unlock()

	s.token++
	token := strconv.Itoa(s.token)
	if _, err := fmt.Fprintf(s.stdin, "%s%s\n", token, cmd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to write to gdb", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case rec, ok := <-s.results:
			if !ok {
				return nil, errors.New(errors.ErrCodeInternal, "gdb session closed")
			}
			if rec.token != "" && rec.token != token {
				continue
			}
			s.consoleMu.Lock()
			console := s.console
			s.console = nil
			s.consoleMu.Unlock()
			return &Result{Class: rec.class, Fields: rec.fields, Console: console}, nil
		}
	}
}

// Break inserts a breakpoint at an operator-supplied location
// (file:line, function, or *address).
func (s *Session) Break(ctx context.Context, location string) error {
	res, err := s.Exec(ctx, "-break-insert "+location)
	if err != nil {
		return err
	}
	if res.Class != "done" {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"failed to insert breakpoint",
			map[string]any{"location": location, "msg": res.ErrorMsg()})
	}
	slog.Info("breakpoint inserted", "location", location)
	return nil
}

// Run starts the debuggee and blocks until the first stop event.
func (s *Session) Run(ctx context.Context) (StopEvent, error) {
	return s.resume(ctx, "-exec-run")
}

// Continue resumes the debuggee and blocks until the next stop event.
func (s *Session) Continue(ctx context.Context) (StopEvent, error) {
	return s.resume(ctx, "-exec-continue")
}

func (s *Session) resume(ctx context.Context, cmd string) (StopEvent, error) {
	res, err := s.Exec(ctx, cmd)
	if err != nil {
		return StopEvent{}, err
	}
	if res.Class == "error" {
		return StopEvent{}, errors.NewWithContext(errors.ErrCodeInternal,
			"failed to resume debuggee", map[string]any{"msg": res.ErrorMsg()})
	}

	select {
	case <-ctx.Done():
		return StopEvent{}, ctx.Err()
	case ev, ok := <-s.stops:
		if !ok {
			// gdb went away; treat as debuggee exit.
			return StopEvent{Reason: "exited", Exited: true}, nil
		}
		slog.Debug("debuggee stopped", "reason", ev.Reason, "exited", ev.Exited)
		return ev, nil
	}
}

// Close terminates the gdb process and waits for the output pump to
// drain.
func (s *Session) Close() error {
	// Best effort: ask gdb to exit cleanly before tearing the pipe down.
	_, _ = fmt.Fprintln(s.stdin, "-gdb-exit")
	_ = s.stdin.Close()
	pumpErr := s.eg.Wait()
	waitErr := s.cmd.Wait()
	if pumpErr != nil {
		return pumpErr
	}
	return waitErr
}

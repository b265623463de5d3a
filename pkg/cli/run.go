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

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/export"
	"github.com/NVIDIA/varsnap/pkg/probe"
	"github.com/NVIDIA/varsnap/pkg/probe/gdbmi"
	"github.com/NVIDIA/varsnap/pkg/serializer"
	"github.com/NVIDIA/varsnap/pkg/session"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Launch a program under gdb and sample variables at breakpoints",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "exec",
				Aliases:  []string{"e"},
				Usage:    "Debuggee executable path",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "arg",
				Usage: "Debuggee argument (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:    "break",
				Aliases: []string{"b"},
				Usage:   "Breakpoint location, e.g. main.c:42 (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "var",
				Usage: "Variable to track (repeatable)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"f"},
				Usage:   "YAML file declaring tracked variables",
			},
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "Collect at every stop until the debuggee exits, then export",
			},
			&cli.StringFlag{
				Name:  "gdb",
				Usage: "gdb executable",
				Value: "gdb",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "File path for serialized status output (default: stdout)",
			},
			outputDirFlag,
			layoutFlag,
			formatFlag,
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	layout := export.Layout(cmd.String("layout"))
	if layout.IsUnknown() {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown layout %q (supported values: %s)",
				cmd.String("layout"), strings.Join(export.SupportedLayouts(), ", ")))
	}

	gdbSess, err := gdbmi.Start(ctx, gdbmi.SessionConfig{
		GDBPath: cmd.String("gdb"),
		Program: cmd.String("exec"),
		Args:    cmd.StringSlice("arg"),
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := gdbSess.Close(); cerr != nil {
			slog.Warn("closing gdb session", "error", cerr)
		}
	}()

	for _, loc := range cmd.StringSlice("break") {
		if err := gdbSess.Break(ctx, loc); err != nil {
			return err
		}
	}

	st := session.New(probe.NewReader(gdbmi.NewTarget(gdbSess)))
	if path := cmd.String("config"); path != "" {
		cfg, err := loadRunConfig(path)
		if err != nil {
			return err
		}
		cfg.apply(st)
	}
	for _, n := range cmd.StringSlice("var") {
		st.Track(n)
	}
	if len(st.TrackedNames()) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			"no variables to track (use --var or --config)")
	}

	exp := &export.Exporter{
		Layout:  layout,
		Dir:     cmd.String("output-dir"),
		Version: version,
	}
	out := serializer.NewFileWriterOrStdout(
		serializer.Format(cmd.String("format")), cmd.String("output"))
	defer func() {
		if cerr := out.Close(); cerr != nil {
			slog.Warn("closing output writer", "error", cerr)
		}
	}()

	if cmd.Bool("auto") {
		return autoRun(ctx, gdbSess, st, exp, out)
	}
	return interact(ctx, os.Stdin, os.Stdout, gdbSess, st, exp, out)
}

// driver is the execution-control surface the collect loops need.
// *gdbmi.Session satisfies it.
type driver interface {
	Run(ctx context.Context) (gdbmi.StopEvent, error)
	Continue(ctx context.Context) (gdbmi.StopEvent, error)
}

// autoRun resumes the debuggee, samples every tracked variable at each
// stop, and exports once the debuggee exits.
func autoRun(ctx context.Context, d driver, st *session.Session, exp *export.Exporter, out *serializer.Writer) error {
	ev, err := d.Run(ctx)
	for {
		if err != nil {
			return err
		}
		if ev.Exited {
			break
		}
		res := st.Collect(ctx, st.TrackedNames())
		logCollect(res)
		ev, err = d.Continue(ctx)
	}
	slog.Info("debuggee exited",
		"code", ev.ExitCode,
		"iterations", st.Iteration())

	res, err := exp.Export(ctx, st)
	if err != nil {
		return err
	}
	return out.Serialize(ctx, res)
}

func logCollect(res *session.CollectResult) {
	slog.Info("collected",
		"iteration", res.Iteration,
		"appended", len(res.Appended),
		"failed", len(res.Failures))
	for _, f := range res.Failures {
		slog.Warn("sample failed",
			"iteration", res.Iteration,
			"name", f.Name,
			"error", f.Err)
	}
}

const interactHelp = "commands: run, continue, collect [name ...], export [dir], status, quit"

// interact drives the session from a line-oriented prompt. Exported
// documents and status summaries are serialized through out's writer.
func interact(ctx context.Context, in io.Reader, term io.Writer, d driver, st *session.Session, exp *export.Exporter, out *serializer.Writer) error {
	fmt.Fprintln(term, interactHelp)
	var (
		sc      = bufio.NewScanner(in)
		running bool
		exited  bool
	)
	for {
		fmt.Fprint(term, "varsnap> ")
		if !sc.Scan() {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "run", "r", "continue", "c":
			if exited {
				fmt.Fprintln(term, "debuggee has exited")
				continue
			}
			var (
				ev  gdbmi.StopEvent
				err error
			)
			if running {
				ev, err = d.Continue(ctx)
			} else {
				ev, err = d.Run(ctx)
				running = true
			}
			if err != nil {
				fmt.Fprintln(term, "error:", err)
				continue
			}
			if ev.Exited {
				exited = true
				fmt.Fprintf(term, "debuggee exited (code %d)\n", ev.ExitCode)
				continue
			}
			fmt.Fprintln(term, "stopped:", ev.Reason)

		case "collect":
			names := fields[1:]
			if len(names) == 0 {
				names = st.TrackedNames()
			}
			res := st.Collect(ctx, names)
			fmt.Fprintf(term, "iteration %d: %d appended, %d failed\n",
				res.Iteration, len(res.Appended), len(res.Failures))
			for _, f := range res.Failures {
				fmt.Fprintf(term, "  %s: %v\n", f.Name, f.Err)
			}

		case "export":
			e := *exp
			if len(fields) > 1 {
				e.Dir = fields[1]
			}
			res, err := e.Export(ctx, st)
			if err != nil {
				fmt.Fprintln(term, "error:", err)
				continue
			}
			if err := out.Serialize(ctx, res); err != nil {
				fmt.Fprintln(term, "error:", err)
			}

		case "status":
			if err := out.Serialize(ctx, st.Summary(version)); err != nil {
				fmt.Fprintln(term, "error:", err)
			}

		case "help", "?":
			fmt.Fprintln(term, interactHelp)

		case "quit", "exit", "q":
			return nil

		default:
			fmt.Fprintf(term, "unknown command %q\n", fields[0])
		}
	}
	return sc.Err()
}

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
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/varsnap/pkg/export"
	"github.com/NVIDIA/varsnap/pkg/logging"
	"github.com/NVIDIA/varsnap/pkg/serializer"
)

const name = "varsnap"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Shared flags across commands.
var (
	outputDirFlag = &cli.StringFlag{
		Name:    "output-dir",
		Aliases: []string{"o"},
		Usage:   "Directory for exported CSV files",
		Sources: cli.EnvVars("VARSNAP_OUTPUT_DIR"),
		Value:   ".",
	}

	layoutFlag = &cli.StringFlag{
		Name: "layout",
		Usage: fmt.Sprintf("CSV layout (supported values: %s)",
			strings.Join(export.SupportedLayouts(), ", ")),
		Sources: cli.EnvVars("VARSNAP_LAYOUT"),
		Value:   string(export.LayoutSplit),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage: fmt.Sprintf("Status output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
		Value: string(serializer.FormatYAML),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
		Value:   "info",
	}
)

// Run executes the varsnap CLI with the given process arguments.
func Run(ctx context.Context, args []string) error {
	root := &cli.Command{
		Name:    name,
		Usage:   "Sample debuggee variables at breakpoints and export CSV time series",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Flags: []cli.Flag{
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit)
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCmd(),
			versionCmd(),
		},
	}
	return root.Run(ctx, args)
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build metadata",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintf(cmd.Writer, "%s version %s (commit: %s, built: %s)\n",
				name, version, commit, date)
			return nil
		},
	}
}

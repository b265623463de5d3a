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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/varsnap/pkg/errors"
)

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := versionCmd()
	cmd.Writer = &buf

	require.NoError(t, cmd.Run(context.Background(), []string{"version"}))
	assert.Contains(t, buf.String(), "varsnap version")
	assert.Contains(t, buf.String(), "commit:")
}

func TestRunRequiresExec(t *testing.T) {
	err := Run(context.Background(), []string{name, "run"})
	require.Error(t, err)
}

func TestRunRejectsUnknownLayout(t *testing.T) {
	// layout validation happens before any debugger process is started
	err := Run(context.Background(), []string{
		name, "run", "--exec", "/bin/true", "--layout", "bogus",
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "bogus")
}

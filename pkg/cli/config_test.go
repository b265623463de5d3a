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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/probe"
	"github.com/NVIDIA/varsnap/pkg/probe/probetest"
	"github.com/NVIDIA/varsnap/pkg/session"
	"github.com/NVIDIA/varsnap/pkg/value"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestLoadRunConfig(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "names only",
			doc: `vars:
  - name: counter
  - name: res
`,
		},
		{
			name: "declared kinds",
			doc: `vars:
  - name: counter
    kind: int
  - name: res
    kind: float[]
    length: 3
`,
		},
		{
			name:    "missing name",
			doc:     "vars:\n  - kind: int\n",
			wantErr: true,
		},
		{
			name:    "unknown kind",
			doc:     "vars:\n  - name: x\n    kind: complex\n",
			wantErr: true,
		},
		{
			name:    "array kind without length",
			doc:     "vars:\n  - name: x\n    kind: int[]\n",
			wantErr: true,
		},
		{
			name:    "scalar kind with length",
			doc:     "vars:\n  - name: x\n    kind: float\n    length: 3\n",
			wantErr: true,
		},
		{
			name:    "length without kind",
			doc:     "vars:\n  - name: x\n    length: 3\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			doc:     "vars: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadRunConfig(writeConfig(t, tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Vars)
		})
	}
}

func TestLoadRunConfigMissingFile(t *testing.T) {
	_, err := loadRunConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestRunConfigApply(t *testing.T) {
	target := probetest.New()
	target.SetInt("counter", 7)
	st := session.New(probe.NewReader(target))

	cfg := &runConfig{Vars: []varSpec{
		{Name: "counter"},
		{Name: "res", Kind: "float[]", Length: 3},
	}}
	cfg.apply(st)

	assert.Equal(t, []string{"counter", "res"}, st.TrackedNames())

	// the declared series carries its kind before any observation
	ser, ok := st.Series("res")
	require.True(t, ok)
	assert.Equal(t, value.KindFloatArray, ser.Kind)
	assert.Equal(t, 3, ser.Length)
}

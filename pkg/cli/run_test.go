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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/varsnap/pkg/export"
	"github.com/NVIDIA/varsnap/pkg/probe"
	"github.com/NVIDIA/varsnap/pkg/probe/gdbmi"
	"github.com/NVIDIA/varsnap/pkg/probe/probetest"
	"github.com/NVIDIA/varsnap/pkg/serializer"
	"github.com/NVIDIA/varsnap/pkg/session"
)

// fakeDriver replays a scripted sequence of stop events and mutates the
// target between stops so successive snapshots differ.
type fakeDriver struct {
	events []gdbmi.StopEvent
	next   int
	onStop func(iteration int)
}

func (d *fakeDriver) step() (gdbmi.StopEvent, error) {
	if d.next >= len(d.events) {
		return gdbmi.StopEvent{Reason: "exited-normally", Exited: true}, nil
	}
	ev := d.events[d.next]
	d.next++
	if d.onStop != nil && !ev.Exited {
		d.onStop(d.next)
	}
	return ev, nil
}

func (d *fakeDriver) Run(_ context.Context) (gdbmi.StopEvent, error) {
	return d.step()
}

func (d *fakeDriver) Continue(_ context.Context) (gdbmi.StopEvent, error) {
	return d.step()
}

func hit() gdbmi.StopEvent {
	return gdbmi.StopEvent{Reason: "breakpoint-hit"}
}

func exited(code int) gdbmi.StopEvent {
	return gdbmi.StopEvent{Reason: "exited-normally", Exited: true, ExitCode: code}
}

func TestAutoRun(t *testing.T) {
	target := probetest.New()
	d := &fakeDriver{
		events: []gdbmi.StopEvent{hit(), hit(), hit(), exited(0)},
		onStop: func(i int) {
			target.SetInt("counter", int64(i))
			target.SetFloats("res", []float64{float64(i), float64(i) + 0.5})
		},
	}

	st := session.New(probe.NewReader(target))
	st.Track("counter")
	st.Track("res")

	dir := t.TempDir()
	exp := &export.Exporter{Layout: export.LayoutSplit, Dir: dir}

	var buf bytes.Buffer
	out := serializer.NewWriter(serializer.FormatJSON, &buf)

	require.NoError(t, autoRun(context.Background(), d, st, exp, out))
	assert.Equal(t, 3, st.Iteration())

	b, err := os.ReadFile(filepath.Join(dir, "counter_varsnap.csv"))
	require.NoError(t, err)
	assert.Equal(t, "iteration,counter\n1,1\n2,2\n3,3\n", string(b))

	b, err = os.ReadFile(filepath.Join(dir, "res_varsnap.csv"))
	require.NoError(t, err)
	assert.Equal(t, "iteration,res[0],res[1]\n1,1,1.5\n2,2,2.5\n3,3,3.5\n", string(b))

	// the export result is serialized to the status writer
	assert.Contains(t, buf.String(), "counter_varsnap.csv")
	assert.Contains(t, buf.String(), `"layout"`)
}

func TestAutoRunNoStops(t *testing.T) {
	target := probetest.New()
	target.SetInt("counter", 1)

	st := session.New(probe.NewReader(target))
	st.Track("counter")

	d := &fakeDriver{events: []gdbmi.StopEvent{exited(0)}}
	exp := &export.Exporter{Layout: export.LayoutCombined, Dir: t.TempDir()}

	var buf bytes.Buffer
	require.NoError(t, autoRun(context.Background(), d, st, exp, serializer.NewWriter(serializer.FormatYAML, &buf)))
	assert.Equal(t, 0, st.Iteration())

	// combined layout still produces its header-only file
	b, err := os.ReadFile(filepath.Join(exp.Dir, "varsnap.csv"))
	require.NoError(t, err)
	assert.Equal(t, "iteration,counter\n", string(b))
}

func TestInteract(t *testing.T) {
	target := probetest.New()
	target.SetInt("counter", 10)

	st := session.New(probe.NewReader(target))
	st.Track("counter")

	d := &fakeDriver{
		events: []gdbmi.StopEvent{hit(), hit(), exited(3)},
		onStop: func(i int) { target.SetInt("counter", int64(10+i)) },
	}

	dir := t.TempDir()
	exp := &export.Exporter{Layout: export.LayoutSplit, Dir: dir}

	script := strings.Join([]string{
		"run",
		"collect",
		"continue",
		"collect",
		"status",
		"export",
		"continue",
		"continue",
		"bogus",
		"quit",
	}, "\n") + "\n"

	var term bytes.Buffer
	out := serializer.NewWriter(serializer.FormatYAML, &term)

	err := interact(context.Background(), strings.NewReader(script), &term, d, st, exp, out)
	require.NoError(t, err)

	got := term.String()
	assert.Contains(t, got, "stopped: breakpoint-hit")
	assert.Contains(t, got, "iteration 1: 1 appended, 0 failed")
	assert.Contains(t, got, "iteration 2: 1 appended, 0 failed")
	assert.Contains(t, got, "snapshots: 2")
	assert.Contains(t, got, "debuggee exited (code 3)")
	assert.Contains(t, got, "debuggee has exited")
	assert.Contains(t, got, `unknown command "bogus"`)

	b, err := os.ReadFile(filepath.Join(dir, "counter_varsnap.csv"))
	require.NoError(t, err)
	assert.Equal(t, "iteration,counter\n1,11\n2,12\n", string(b))
}

func TestInteractCollectFailure(t *testing.T) {
	target := probetest.New()
	target.SetInt("counter", 1)

	st := session.New(probe.NewReader(target))
	st.Track("counter")
	st.Track("ghost")

	d := &fakeDriver{events: []gdbmi.StopEvent{hit(), exited(0)}}

	var term bytes.Buffer
	out := serializer.NewWriter(serializer.FormatYAML, &term)
	exp := &export.Exporter{Layout: export.LayoutSplit, Dir: t.TempDir()}

	script := "run\ncollect\nquit\n"
	require.NoError(t, interact(context.Background(), strings.NewReader(script), &term, d, st, exp, out))

	got := term.String()
	assert.Contains(t, got, "iteration 1: 1 appended, 1 failed")
	assert.Contains(t, got, "ghost: ")
	assert.Contains(t, got, "NAME_NOT_FOUND")
}

func TestInteractEOF(t *testing.T) {
	st := session.New(probe.NewReader(probetest.New()))
	d := &fakeDriver{}
	var term bytes.Buffer
	out := serializer.NewWriter(serializer.FormatYAML, &term)
	exp := &export.Exporter{Layout: export.LayoutSplit, Dir: t.TempDir()}

	// an EOF on the prompt is a clean shutdown
	require.NoError(t, interact(context.Background(), strings.NewReader(""), &term, d, st, exp, out))
}

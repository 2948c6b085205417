package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPatch = `
nodes:
  - id: osc
    type: phasor
  - id: half
    type: linear
    params:
      m: {re: 0.5}
  - id: out
    type: output
wires:
  - from: {node: osc, socket: 0}
    to: {node: half, socket: 0}
  - from: {node: half, socket: 0}
    to: {node: out, socket: 0}
`

func writePatch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPatch), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit(t *testing.T) {
	// check if commands are registered
	assert.Len(t, newRootCmd().Commands(), 4)
}

func TestNodes(t *testing.T) {
	out, err := execute(t, "nodes")
	require.NoError(t, err)
	assert.Contains(t, out, "phasor")
	assert.Contains(t, out, "re-im-split")
	assert.Contains(t, out, "Re,Im")
}

func TestInspect(t *testing.T) {
	path := writePatch(t)
	out, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 nodes, 2 wires")
	assert.Contains(t, out, "linear in[In] out[Out]")

	out, err = execute(t, "inspect", "--yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "type: phasor")

	_, err = execute(t, "inspect", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	path := writePatch(t)
	wavPath := filepath.Join(t.TempDir(), "out.wav")
	_, err := execute(t, "render", path,
		"--out", wavPath,
		"--seconds", "0.5",
		"--sample-rate", "8000",
		"--channels", "2",
		"--block-size", "128",
	)
	require.NoError(t, err)

	f, err := os.Open(wavPath)
	require.NoError(t, err)
	defer f.Close()
	buf, err := gowav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Format.NumChannels)
	require.Len(t, buf.Data, 8000)
	for _, v := range buf.Data {
		assert.LessOrEqual(t, v, 16384)
		assert.GreaterOrEqual(t, v, -16384)
	}
}

func TestRenderBadBitDepth(t *testing.T) {
	_, err := execute(t, "render", writePatch(t), "--bit-depth", "12")
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/mie"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func TestProps_JSON(t *testing.T) {
	out, _, err := run(t, "props", "--m", "1.5+0.5i", "--x", "2.5", "--json")
	require.NoError(t, err)

	var got propertiesJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "homogeneous", got.Variant)
	assert.Equal(t, 10, got.NMax)
	assert.InEpsilon(t, 2.562873497454734, got.Qext, 1e-12)
	assert.InEpsilon(t, 1.0970718190883924, got.Qsca, 1e-12)
	require.NotNil(t, got.Asy)
	assert.InEpsilon(t, 0.74890597894850719, *got.Asy, 1e-12)
}

func TestProps_Table(t *testing.T) {
	out, _, err := run(t, "props", "--m", "1.5+0.5i", "--m2", "1.2+0.2i", "--x", "1.5", "--y", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "coated")
	assert.Contains(t, out, "2.07654529281008")
}

func TestProps_ZeroSizeIsNull(t *testing.T) {
	out, _, err := run(t, "props", "--m", "1.5", "--x", "0", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"asy": null`)
	assert.Contains(t, out, `"qratio": null`)
}

func TestProps_Errors(t *testing.T) {
	_, _, err := run(t, "props", "--m", "1.5")
	assert.Equal(t, mie.CodeMissingParameter, mie.CodeOf(err))

	_, _, err = run(t, "props", "--m", "1.5", "--x", "-1")
	assert.Equal(t, mie.CodeInvalidParameter, mie.CodeOf(err))

	_, _, err = run(t, "props", "--m", "oops", "--x", "1")
	assert.Error(t, err)
}

func TestS12(t *testing.T) {
	out, _, err := run(t, "s12", "--m", "1.5+0.5i", "--x", "2.5", "--u=-0.6", "--u", "1", "--json")
	require.NoError(t, err)

	var rows []amplitudeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, -0.6, rows[0].U)
	assert.InEpsilon(t, -0.49958438416709694, rows[0].S1.Re, 1e-12)
	assert.InEpsilon(t, 0.051661382367147853, rows[0].S2.Im, 1e-12)
	assert.InEpsilon(t, rows[1].S1.Re, rows[1].S2.Re, 1e-12, "forward amplitudes agree")

	_, _, err = run(t, "s12", "--m", "1.5", "--x", "1", "--u", "3")
	assert.Equal(t, mie.CodeInvalidAngle, mie.CodeOf(err))
}

const sweepTOML = `
name = "demo"
fractions = [0.0, 0.5, 1.0]
angles = [-1.0]

[core]
m = "1.7844+1.4773e-4i"

[shell]
m = "8.3355+2.2173i"

[sizes]
start = 0.5
stop = 2.0
count = 3
`

func TestSweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte(sweepTOML), 0o600))

	out, logs, err := run(t, "sweep", "--file", path, "--json")
	require.NoError(t, err)

	var rows []sweepRowJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 9)
	for i, row := range rows {
		assert.Equal(t, i, row.Index)
		require.NotNil(t, row.Y)
		assert.Len(t, row.Amplitudes, 1)
	}
	assert.Equal(t, "empty-core", rows[0].Variant)
	assert.Equal(t, "uniform-shell", rows[8].Variant)

	assert.Contains(t, logs, "run_id")
	assert.Contains(t, logs, "sweep complete")

	table, _, err := run(t, "sweep", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(table, "\n"), "header plus one line per point")
}

func TestSweep_RequiresFile(t *testing.T) {
	_, _, err := run(t, "sweep")
	assert.Error(t, err)
}

func TestRoot_BadEnvironment(t *testing.T) {
	t.Setenv("MIE_WORKERS", "-2")
	_, _, err := run(t, "props", "--m", "1.5", "--x", "1")
	assert.Error(t, err)
}

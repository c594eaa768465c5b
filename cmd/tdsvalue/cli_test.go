package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisenkom/go-tdsvalue/internal/mstype"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand(strings.NewReader(stdin), &out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeIntN(t *testing.T) {
	out, err := run(t, "", "decode", "--type", "IntN", "04 01000000")
	require.NoError(t, err)
	assert.Equal(t, "int\t1\n", out)
}

func TestDecodeFromStdin(t *testing.T) {
	out, err := run(t, "0x0102\n", "decode", "--type", "0x34")
	require.NoError(t, err)
	assert.Equal(t, "int\t513\n", out)
}

func TestDecodeCount(t *testing.T) {
	out, err := run(t, "", "decode", "-t", "BitN", "-n", "3", "0101", "00", "0100")
	require.NoError(t, err)
	assert.Equal(t, "bool\ttrue\nnull\tNULL\nbool\tfalse\n", out)
}

func TestDecodePackets(t *testing.T) {
	// one packet of type 4 carrying smallint 0x0201
	out, err := run(t, "", "decode", "--type", "SmallInt", "--packets", "0401000a00000100", "0102")
	require.NoError(t, err)
	assert.Equal(t, "int\t513\n", out)
}

func TestDecodeGuidCase(t *testing.T) {
	payload := "10 78563412 3412 7856 0102030405060708"
	out, err := run(t, "", "decode", "--type", "UniqueIdentifier", payload)
	require.NoError(t, err)
	assert.Equal(t, "string\t12345678-1234-5678-0102-030405060708\n", out)

	out, err = run(t, "", "--dsn", "lowercaseguids=true", "decode", "--type", "UniqueIdentifier", "10", "efcdab89674523011032547698badcfe")
	require.NoError(t, err)
	assert.Equal(t, "string\t89abcdef-4567-0123-1032-547698badcfe\n", out)
}

func TestDecodeVarCharCollation(t *testing.T) {
	// "é" in code page 1252 under the Latin1_General collation
	out, err := run(t, "", "decode", "--type", "VarChar", "--length", "10", "--lcid", "0x00d00409", "--sort-id", "52", "0100e9")
	require.NoError(t, err)
	assert.Equal(t, "string\té\n", out)
}

func TestDecodeErrors(t *testing.T) {
	_, err := run(t, "", "decode", "--type", "NoSuchType", "00")
	assert.Error(t, err)

	_, err = run(t, "", "decode", "--type", "IntN", "zz")
	assert.Error(t, err)

	_, err = run(t, "", "decode", "--type", "IntN", "03010203")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid TDS stream")

	_, err = run(t, "", "--dsn", "useutc=maybe", "decode", "--type", "IntN", "00")
	assert.Error(t, err)
}

func TestTypes(t *testing.T) {
	out, err := run(t, "", "types")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(mstype.All()))
	assert.Contains(t, out, "0x26\tIntN\n")
	assert.Contains(t, out, "0x62\tVariant\n")
}

func TestDecodeTraceAndDebug(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCommand(strings.NewReader(""), &out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--trace", "--debug", "decode", "--type", "IntN", "0405000000"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "int\t5\n", out.String())
	assert.Contains(t, errOut.String(), "R input 0")
	assert.Contains(t, errOut.String(), "decoded IntN (5 bytes): 5")
}

package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmdText(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Core Version: vunknown\n")
	assert.Contains(t, out.String(), "Vulnerable Ceiling: <= 2.1.3\n")
}

func TestVersionCmdJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})
	t.Cleanup(func() { versionOutputJSON = false })

	require.NoError(t, cmd.Execute())

	var got CoreVersions
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, Current(), got)
}

func TestVersionCmdRejectsArgs(t *testing.T) {
	cmd := NewVersionCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}

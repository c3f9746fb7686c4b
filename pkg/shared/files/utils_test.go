package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFileFullPath(t *testing.T) {
	type testCase struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
		setup        func(t *testing.T) (inputPath, expectFile, expectFolder string)
	}

	tmpDir := t.TempDir()

	tests := []testCase{
		{
			name:         "Directory path with name template",
			inputPath:    tmpDir,
			nameTemplate: "authz-guard-report.json",
			expectFile:   filepath.Join(tmpDir, "authz-guard-report.json"),
			expectFolder: tmpDir,
		},
		{
			name:         "Existing file path with extension",
			nameTemplate: "ignored.sarif",
			setup: func(t *testing.T) (string, string, string) {
				f := filepath.Join(tmpDir, "report.sarif")
				require.NoError(t, os.WriteFile(f, []byte("{}"), 0644))
				return f, f, tmpDir
			},
		},
		{
			name:         "Path with no extension, treat as folder",
			inputPath:    filepath.Join(tmpDir, "reports"),
			nameTemplate: "authz-guard-report.txt",
			expectFile:   filepath.Join(tmpDir, "reports", "authz-guard-report.txt"),
			expectFolder: filepath.Join(tmpDir, "reports"),
		},
		{
			name:         "Non-existent file with extension",
			inputPath:    filepath.Join(tmpDir, "nested", "result.json"),
			nameTemplate: "ignored.json",
			expectFile:   filepath.Join(tmpDir, "nested", "result.json"),
			expectFolder: filepath.Join(tmpDir, "nested"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualPath := tt.inputPath
			expectFile := tt.expectFile
			expectFolder := tt.expectFolder

			if tt.setup != nil {
				actualPath, expectFile, expectFolder = tt.setup(t)
			}

			filePath, folderPath, err := DetermineFileFullPath(actualPath, tt.nameTemplate)
			require.NoError(t, err)
			assert.Equal(t, expectFile, filePath)
			assert.Equal(t, expectFolder, folderPath)
		})
	}
}

func TestValidateDirPath(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "plugin.php")
	require.NoError(t, os.WriteFile(file, []byte("<?php"), 0644))

	assert.NoError(t, ValidateDirPath(tmpDir))
	assert.EqualError(t, ValidateDirPath(file), `path "`+file+`" is not a directory`)
	assert.Error(t, ValidateDirPath(filepath.Join(tmpDir, "missing")))
}

func TestWriteFileCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "report.json")

	require.NoError(t, WriteFile(target, []byte(`{"high_risk": true}`)))
	require.NoError(t, WriteFile(target, []byte(`{}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/reports")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports"), expanded)

	unchanged, err := ExpandPath("/tmp/reports")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports", unchanged)
}

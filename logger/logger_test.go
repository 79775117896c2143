package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogger(dir))
	defer func() { _ = InitLogger("") }()

	Info.Println("hello ballpark")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: ")
	assert.Contains(t, string(data), "hello ballpark")
}

func TestSetLogLevel_ProductionDiscardsDebug(t *testing.T) {
	require.NoError(t, InitLogger(""))
	defer func() { _ = InitLogger("") }()

	var buf bytes.Buffer
	Debug.SetOutput(&buf)
	SetLogLevel("production")
	Debug.Println("should vanish")
	assert.Empty(t, buf.String())
}

func TestSetLogLevel_DevelopmentKeepsDebug(t *testing.T) {
	require.NoError(t, InitLogger(""))
	defer func() { _ = InitLogger("") }()

	var buf bytes.Buffer
	Debug.SetOutput(&buf)
	SetLogLevel("development")
	Debug.Println("kept")
	assert.Contains(t, buf.String(), "kept")
}

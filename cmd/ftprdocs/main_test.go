package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentcourt/ftpr/internal/pkg/documents"
)

func TestSelectTemplates(t *testing.T) {
	all, err := selectTemplates(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := selectTemplates([]string{documents.DocFirmbook})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, documents.DocFirmbook, one[0].Key)

	_, err = selectTemplates([]string{"nope"})
	assert.ErrorIs(t, err, documents.ErrUnknownTemplate)
}

func TestRenderWritesBlankPDFs(t *testing.T) {
	dir := t.TempDir()
	cmd := renderCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--out", dir, documents.DocFinalNotice})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, documents.FinalNotice.BlankFilename))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Contains(t, out.String(), "wrote")
}

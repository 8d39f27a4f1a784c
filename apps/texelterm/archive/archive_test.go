// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/archive/archive_test.go
// Summary: Archive persistence and search, including engine eviction wiring.

package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/framegrace/texelsession/apps/texelterm/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLine(s string) engine.Line {
	var l engine.Line
	for _, r := range s {
		l = append(l, engine.Cell{Rune: r})
	}
	return l
}

func TestArchive_StoreAndSearch(t *testing.T) {
	a, err := Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	fixed := time.Unix(1700000000, 0)
	a.now = func() time.Time { return fixed }

	require.NoError(t, a.ArchiveLines([]engine.Line{
		makeLine("ls -la   "),
		makeLine("docker ps"),
		makeLine("docker images"),
	}))
	require.NoError(t, a.ArchiveLines(nil))

	n, err := a.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	results, err := a.Search("docker", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "docker images", results[0].Content)
	assert.Equal(t, "docker ps", results[1].Content)
	assert.True(t, results[0].ArchivedAt.Equal(fixed))

	results, err = a.Search("ls", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ls -la", results[0].Content, "trailing blanks are trimmed")

	results, err = a.Search("docker", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestArchive_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	a, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, a.ArchiveLines([]engine.Line{makeLine("kept")}))
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	_, err = a.Count()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, a.ArchiveLines([]engine.Line{makeLine("x")}), ErrClosed)

	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()
	results, err := b.Search("kept", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestArchive_OpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestArchive_ReceivesEngineEvictions(t *testing.T) {
	a, err := Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	opts := engine.DefaultOptions()
	opts.ScrollbackLimit = 2
	e, err := engine.New(opts)
	require.NoError(t, err)
	e.SetEvictionSink(a)

	e.Feed(parser.New().Parse([]byte("one\ntwo\nthree\nfour\n")))

	n, err := a.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	results, err := a.Search("one", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, e.ScrollbackLen())
}

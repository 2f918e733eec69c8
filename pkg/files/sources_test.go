// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"templet.dev/templet/pkg/files"
)

func TestBytesSource(t *testing.T) {
	src := files.NewBytesSource("tpl.txt", []byte("data"))

	relPath, err := src.RelativePath()
	require.NoError(t, err)
	assert.Equal(t, "tpl.txt", relPath)

	bs, err := src.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), bs)
}

func TestLocalSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.txt")
	require.NoError(t, os.WriteFile(path, []byte("local data"), 0600))

	src := files.NewSource(path)
	require.IsType(t, files.LocalSource{}, src)

	relPath, err := src.RelativePath()
	require.NoError(t, err)
	assert.Equal(t, "tpl.txt", relPath)

	bs, err := src.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("local data"), bs)
}

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote data"))
	}))
	defer server.Close()

	src := files.NewSource(server.URL + "/tpl.txt")
	require.IsType(t, files.HTTPSource{}, src)

	bs, err := src.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("remote data"), bs)
}

func TestHTTPSourceNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := files.NewSource(server.URL + "/missing.txt").Bytes()
	require.Error(t, err)
}

func TestOutputFileCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.txt")

	err := files.NewOutputFile(path, []byte("rendered")).Create()
	require.NoError(t, err)

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), bs)
}

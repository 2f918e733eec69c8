// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// Source is an opaque producer of template (or data values) text; the
// engine does not care whether bytes came from a file, stdin, a literal
// or a network call.
type Source interface {
	Description() string
	RelativePath() (string, error)
	Bytes() ([]byte, error)
}

var _ = []Source{BytesSource{}, StdinSource{}, LocalSource{}, HTTPSource{}}

// NewSource picks a source implementation for a CLI path argument:
// '-' reads stdin, http(s) URLs are fetched, anything else is a local file.
func NewSource(pathArg string) Source {
	switch {
	case pathArg == "-":
		return NewStdinSource()
	case isURL(pathArg):
		return NewHTTPSource(pathArg)
	default:
		return NewLocalSource(pathArg)
	}
}

type BytesSource struct {
	path string
	data []byte
}

func NewBytesSource(path string, data []byte) BytesSource { return BytesSource{path, data} }

func (s BytesSource) Description() string           { return s.path }
func (s BytesSource) RelativePath() (string, error) { return s.path, nil }
func (s BytesSource) Bytes() ([]byte, error)        { return s.data, nil }

type StdinSource struct {
	bytes []byte
	err   error
}

func NewStdinSource() StdinSource {
	bs, err := ReadStdin()
	return StdinSource{bs, err}
}

func (s StdinSource) Description() string           { return "stdin" }
func (s StdinSource) RelativePath() (string, error) { return "stdin", nil }
func (s StdinSource) Bytes() ([]byte, error)        { return s.bytes, s.err }

type LocalSource struct {
	path string
}

func NewLocalSource(path string) LocalSource { return LocalSource{path} }

func (s LocalSource) Description() string           { return fmt.Sprintf("file '%s'", s.path) }
func (s LocalSource) RelativePath() (string, error) { return filepath.Base(s.path), nil }
func (s LocalSource) Bytes() ([]byte, error)        { return os.ReadFile(s.path) }

type HTTPSource struct {
	url string
}

func NewHTTPSource(url string) HTTPSource { return HTTPSource{url} }

func (s HTTPSource) Description() string           { return fmt.Sprintf("HTTP URL '%s'", s.url) }
func (s HTTPSource) RelativePath() (string, error) { return path.Base(s.url), nil }

func (s HTTPSource) Bytes() ([]byte, error) {
	resp, err := http.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func isURL(pathArg string) bool {
	return len(pathArg) > 7 && (pathArg[:7] == "http://" || (len(pathArg) > 8 && pathArg[:8] == "https://"))
}

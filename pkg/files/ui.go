// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"io"
)

type UI interface {
	Printf(str string, args ...interface{})
	Debugf(str string, args ...interface{})
	DebugWriter() io.Writer
}

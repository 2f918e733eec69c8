// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is the semver of this build of templet.
const Version = "0.3.0"

// RequireAtLeast errors when this build does not satisfy the given
// minimum version (used by the render command's --required-version flag).
func RequireAtLeast(minimum string) error {
	constraint, err := goversion.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("Parsing required version '%s': %s", minimum, err)
	}

	current, err := goversion.NewVersion(Version)
	if err != nil {
		return err
	}

	if !constraint.Check(current) {
		return fmt.Errorf("templet version %s does not meet the minimum required version %s", Version, minimum)
	}

	return nil
}

// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

// Package orderedmap provides a map that maintains item order.
package orderedmap

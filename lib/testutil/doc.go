// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers: short socket
// directories and timeout-guarded channel operations.
package testutil

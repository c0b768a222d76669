// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config holds the plugin configuration and the rules for
// building it.
//
// A [Config] is always produced by merging caller-supplied [Options]
// over [Default]: only keys the caller sets are replaced, and the
// nested tier tables merge key by key, so setting
// undo_count.hard leaves undo_count.light and undo_count.medium at
// their defaults.
//
// Options come either from code (the host's setup call) or from a
// file loaded with [LoadFile]. YAML files are decoded with
// gopkg.in/yaml.v3; files ending in .json or .jsonc have comments and
// trailing commas stripped before JSON decoding. [Load] reads the path
// from SMACK_CONFIG and returns [ErrNoConfig] when it is unset.
//
// Unknown keys in a file are rejected. The only expansion performed
// is ${HOME}-style variable expansion in socket_path.
//
// This package depends on no other smack packages.
package config

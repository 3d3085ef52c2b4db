// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"embed"
	"fmt"
)

// builtinMessages holds the standard message packages, laid out as
// msg/<package>/<Type>.msg.
//
//go:embed msg
var builtinMessages embed.FS

// BuiltinPackages lists the packages [Builtin] preloads.
var BuiltinPackages = []string{
	"geometry_msgs",
	"sensor_msgs",
	"shape_msgs",
	"std_msgs",
	"trajectory_msgs",
}

// Builtin returns a new registry preloaded with the standard message
// packages. Each call returns an independent registry that callers may
// extend.
func Builtin() *Registry {
	registry := New()
	if err := registry.LoadFS(builtinMessages, "msg"); err != nil {
		panic(fmt.Sprintf("registry: loading builtin messages: %v", err))
	}
	return registry
}

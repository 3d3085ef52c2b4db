// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for msgconv.
//
// Configuration is optional. [Load] reads the file named by the
// MSGCONV_CONFIG environment variable and returns [Default] when the
// variable is unset; [LoadFile] reads an explicit path (the --config
// flag). There is no automatic file search, so the configuration in
// effect is always the one named on the command line or in the
// environment.
//
// A configuration file looks like:
//
//	schema:
//	  builtin: true
//	  paths:
//	    - ${HOME}/ros/src/my_msgs
//	    - /etc/msgconv/vendor-types.yaml
//	output:
//	  indent: 2
//	  format: json
//	  color: auto
//	log:
//	  level: warn
//	  format: auto
//	exit_codes: distinct
//
// Variable expansion is performed on schema paths after loading:
// ${VAR} and ${VAR:-default} patterns are expanded from the
// environment. Unknown keys are rejected so a misspelled option fails
// loudly instead of being ignored.
//
// This package depends on no other msgconv packages.
package config

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// schemaFile is the YAML schema file layout:
//
//	packages:
//	  nav_msgs:
//	    Path: |
//	      Header header
//	      geometry_msgs/PoseStamped[] poses
type schemaFile struct {
	Packages map[string]map[string]string `yaml:"packages"`
}

// LoadFile registers every definition in a YAML schema file.
func (r *Registry) LoadFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return msgerr.IOError(filePath, err)
	}
	return r.loadYAML(filePath, data)
}

func (r *Registry) loadYAML(source string, data []byte) error {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing schema file %s: %w", source, err)
	}
	if len(file.Packages) == 0 {
		return fmt.Errorf("schema file %s: no packages defined", source)
	}

	for _, pkg := range sortedKeys(file.Packages) {
		types := file.Packages[pkg]
		for _, name := range sortedKeys(types) {
			if err := r.RegisterText(pkg, name, types[name]); err != nil {
				return fmt.Errorf("schema file %s: %w", source, err)
			}
		}
	}
	return nil
}

// LoadDir registers every .msg file under root. A file's package is
// the name of its directory, or of the directory above when that
// directory is named "msg" (the ROS layout <package>/msg/<Type>.msg).
func (r *Registry) LoadDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return msgerr.IOError(root, err)
	}
	if !info.IsDir() {
		return msgerr.IOError(root, fmt.Errorf("not a directory"))
	}
	absolute, err := filepath.Abs(root)
	if err != nil {
		return msgerr.IOError(root, err)
	}
	rootName := filepath.Base(absolute)
	if rootName == "msg" {
		rootName = filepath.Base(filepath.Dir(absolute))
	}
	return r.loadFS(os.DirFS(absolute), ".", rootName)
}

// LoadFS registers every .msg file under dir in fsys, using the same
// package layout rules as [Registry.LoadDir].
func (r *Registry) LoadFS(fsys fs.FS, dir string) error {
	return r.loadFS(fsys, dir, "")
}

// loadFS walks dir. rootName names dir itself, for .msg files that sit
// directly in the walked root.
func (r *Registry) loadFS(fsys fs.FS, dir, rootName string) error {
	loaded := 0
	err := fs.WalkDir(fsys, dir, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return msgerr.IOError(filePath, err)
		}
		if entry.IsDir() || path.Ext(filePath) != ".msg" {
			return nil
		}
		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return msgerr.IOError(filePath, err)
		}

		pkg := packageForPath(filePath, rootName)
		name := strings.TrimSuffix(path.Base(filePath), ".msg")
		if err := r.RegisterText(pkg, name, string(data)); err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}
		loaded++
		return nil
	})
	if err != nil {
		return err
	}
	if loaded == 0 {
		return fmt.Errorf("no .msg files found under %s", dir)
	}
	return nil
}

// packageForPath derives the package of a slash-separated .msg path.
// rootName stands in for the walked root directory.
func packageForPath(filePath, rootName string) string {
	parent := path.Dir(filePath)
	if path.Base(parent) == "msg" {
		parent = path.Dir(parent)
	}
	if parent == "." {
		return rootName
	}
	return path.Base(parent)
}

// LoadPaths loads each path: directories with [Registry.LoadDir],
// .msg files individually, and anything else as a YAML schema file.
func (r *Registry) LoadPaths(paths []string) error {
	for _, filePath := range paths {
		info, err := os.Stat(filePath)
		if err != nil {
			return msgerr.IOError(filePath, err)
		}
		switch {
		case info.IsDir():
			err = r.LoadDir(filePath)
		case filepath.Ext(filePath) == ".msg":
			err = r.loadMsgFile(filePath)
		default:
			err = r.LoadFile(filePath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) loadMsgFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return msgerr.IOError(filePath, err)
	}
	absolute, err := filepath.Abs(filePath)
	if err != nil {
		return msgerr.IOError(filePath, err)
	}
	pkg := packageForPath(filepath.ToSlash(absolute), "")
	name := strings.TrimSuffix(filepath.Base(filePath), ".msg")
	if err := r.RegisterText(pkg, name, string(data)); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

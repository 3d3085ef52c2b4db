// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"

	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// RequireKind fails the test unless err is non-nil and classified as
// kind.
//
//	testutil.RequireKind(t, err, msgerr.MalformedInput)
func RequireKind(t testing.TB, err error, kind msgerr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := msgerr.KindOf(err); got != kind {
		t.Fatalf("error kind = %s, want %s: %v", got, kind, err)
	}
}

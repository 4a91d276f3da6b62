// SPDX-License-Identifier: EPL-2.0

package format_test

import (
	"testing"

	"github.com/wen501271303/sox/format"
	"github.com/wen501271303/sox/internal/formattest"
)

func TestRegister_VersionGate(t *testing.T) {
	t.Parallel()

	c := format.NewContext()
	rec := &formattest.Recorder{}

	ok := rec.NewHandler("ok")
	c.Register(ok)

	wrongMajor := rec.NewHandler("wrong")
	wrongMajor.Version = "2.0.0"
	c.Register(wrongMajor)

	malformed := rec.NewHandler("bad")
	malformed.Version = "not-a-version"
	c.Register(malformed)

	missing := rec.NewHandler("none")
	missing.Version = ""
	c.Register(missing)

	if c.FindByName("ok") == nil {
		t.Error("FindByName(ok) = nil, want registered handler")
	}
	for _, name := range []string{"wrong", "bad", "none"} {
		if c.FindByName(name) != nil {
			t.Errorf("FindByName(%s) != nil, want version-gated rejection", name)
		}
	}

	// Same major, newer minor: accepted.
	newer := rec.NewHandler("newer")
	newer.Version = "1.9.3"
	c.Register(newer)
	if c.FindByName("newer") == nil {
		t.Error("FindByName(newer) = nil, want accepted minor bump")
	}
}

func TestFind_NameVersusExtension(t *testing.T) {
	t.Parallel()

	c := format.NewContext()
	h := format.Handler{
		Names:      []string{"sphere", "nist"},
		Extensions: []string{"sph"},
		Version:    format.Version,
		StartRead:  func(f *format.Stream) error { return nil },
	}
	c.Register(h)

	if c.FindByName("nist") == nil {
		t.Error("FindByName(nist) = nil, want handler")
	}
	// Type names are exact and case-sensitive.
	if c.FindByName("NIST") != nil {
		t.Error("FindByName(NIST) != nil, want case-sensitive miss")
	}
	// A name is not automatically an extension.
	if c.FindByExtension("sphere") != nil {
		t.Error("FindByExtension(sphere) != nil, want nil")
	}
	// Extensions compare case-insensitively.
	if c.FindByExtension("SPH") == nil {
		t.Error("FindByExtension(SPH) = nil, want handler")
	}

	if c.FindFormat("sph", true) == nil || c.FindFormat("sphere", false) == nil {
		t.Error("FindFormat() lookups failed")
	}
}

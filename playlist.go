// SPDX-License-Identifier: EPL-2.0

package sox

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsPlaylist reports whether path names a playlist rather than audio, by
// extension: .m3u and .pls, case-insensitively.
func IsPlaylist(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".pls":
		return true
	}
	return false
}

// ParsePlaylist reads the playlist at path and calls fn once per entry,
// in order. Entries that are themselves playlists are expanded in place.
// Relative entries are resolved against the playlist's directory; URIs
// and absolute paths pass through untouched. fn returning false stops the
// walk without error.
func ParsePlaylist(path string, fn func(entry string) bool) error {
	_, err := parsePlaylist(path, fn)
	return err
}

func parsePlaylist(path string, fn func(entry string) bool) (stopped bool, err error) {
	fp, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("can't open playlist file %q: %w", path, err)
	}
	defer fp.Close()

	pls := strings.EqualFold(filepath.Ext(path), ".pls")
	dir := filepath.Dir(path)

	sc := bufio.NewScanner(fp)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if pls {
			// PLS is an INI-style file; only FileN= keys carry entries.
			entry, ok := plsEntry(line)
			if !ok {
				continue
			}
			line = entry
		} else if line[0] == '#' {
			continue
		}
		if !filepath.IsAbs(line) && !isURI(line) {
			line = filepath.Join(dir, line)
		}
		if IsPlaylist(line) {
			stopped, err = parsePlaylist(line, fn)
			if stopped || err != nil {
				return stopped, err
			}
			continue
		}
		if !fn(line) {
			return true, nil
		}
	}
	if err := sc.Err(); err != nil {
		return false, fmt.Errorf("reading playlist file %q: %w", path, err)
	}
	return false, nil
}

func plsEntry(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "File")
	if !ok {
		return "", false
	}
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(rest) || rest[i] != '=' {
		return "", false
	}
	entry := strings.TrimSpace(rest[i+1:])
	return entry, entry != ""
}

// isURI matches scheme:... per RFC 3986: a letter followed by letters,
// digits, '+', '-' or '.', then a colon.
func isURI(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == ':' {
			return true
		}
		if !isAlpha(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

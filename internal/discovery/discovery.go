// Package discovery finds template documents matching the project glob.
package discovery

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/logfields"
)

// DocFile is a discovered template document.
type DocFile struct {
	Path         string // root joined with RelativePath
	RelativePath string // slash separated, relative to the discovery root
}

// Matcher matches slash separated paths against a glob where ** spans
// directories, including none.
type Matcher struct {
	pattern  string
	variants []glob.Glob
}

// Compile prepares pattern. A leading "./" is ignored.
func Compile(pattern string) (*Matcher, error) {
	p := normalize(pattern)
	m := &Matcher{pattern: p}
	for _, src := range collapsed(p) {
		g, err := glob.Compile(src, '/')
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid templates glob").
				WithContext("templates", pattern).
				Build()
		}
		m.variants = append(m.variants, g)
	}
	return m, nil
}

// collapsed lists p plus one variant for every subset of its "**"
// directory segments removed, so each "**" can also match zero directories.
// A trailing "**" is kept since it already matches an empty remainder.
func collapsed(p string) []string {
	segments := strings.Split(p, "/")
	var stars []int
	for i, seg := range segments[:len(segments)-1] {
		if seg == "**" {
			stars = append(stars, i)
		}
	}

	out := make([]string, 0, 1<<len(stars))
	for mask := 0; mask < 1<<len(stars); mask++ {
		drop := make(map[int]bool, len(stars))
		for bit, idx := range stars {
			if mask&(1<<bit) != 0 {
				drop[idx] = true
			}
		}
		kept := make([]string, 0, len(segments))
		for i, seg := range segments {
			if !drop[i] {
				kept = append(kept, seg)
			}
		}
		out = append(out, strings.Join(kept, "/"))
	}
	return out
}

// Match reports whether the slash separated path rel matches.
func (m *Matcher) Match(rel string) bool {
	for _, g := range m.variants {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Base is the longest leading directory of the pattern without glob syntax.
func (m *Matcher) Base() string {
	segments := strings.Split(m.pattern, "/")
	var fixed []string
	for _, seg := range segments[:len(segments)-1] {
		if strings.ContainsAny(seg, `*?[]{}\`) {
			break
		}
		fixed = append(fixed, seg)
	}
	if len(fixed) == 0 {
		return "."
	}
	return path.Join(fixed...)
}

func normalize(pattern string) string {
	p := filepath.ToSlash(strings.TrimSpace(pattern))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// Discover returns the files under root matching pattern, sorted by
// relative path. Hidden directories below the pattern base are skipped. A
// base directory that does not exist yields no files.
func Discover(root, pattern string) ([]DocFile, error) {
	m, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(root, filepath.FromSlash(m.Base()))
	if _, err := os.Stat(base); os.IsNotExist(err) {
		slog.Debug("Template directory does not exist", logfields.Path(base))
		return nil, nil
	}

	var files []DocFile
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != base && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !m.Match(rel) {
			return nil
		}
		files = append(files, DocFile{Path: p, RelativePath: rel})
		slog.Debug("Discovered template document", logfields.Path(rel))
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to discover template documents").
			WithContext("path", base).
			Build()
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelativePath < files[j].RelativePath })
	return files, nil
}

// Paths returns the file system paths of files, in order.
func Paths(files []DocFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

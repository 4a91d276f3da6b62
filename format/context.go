// SPDX-License-Identifier: EPL-2.0

package format

import (
	"fmt"
	"strings"
	"sync"

	"github.com/coreos/go-semver/semver"
	"go.uber.org/zap"
)

// Context owns the handler registry, the stdin/stdout claim tags and the
// diagnostic logger. Registration is expected to happen up front, before
// streams are opened; the claim tags are guarded by a mutex so open/close
// may be called from multiple goroutines.
type Context struct {
	log      *zap.Logger
	bufSize  int
	handlers []Handler

	mu         sync.Mutex
	stdinUser  string
	stdoutUser string
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger used for negotiation and override warnings.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) ContextOption {
	return func(c *Context) { c.log = log }
}

// WithBufferSize sets the transport buffer size in bytes.
func WithBufferSize(n int) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.bufSize = n
		}
	}
}

const defaultBufSize = 8192

func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		log:     zap.NewNop(),
		bufSize: defaultBufSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var libVersion = semver.Must(semver.NewVersion(Version))

// Register appends a handler to the registry. Handlers whose ABI version
// tag is missing, malformed, or has a different major component than the
// library's are skipped with a logged warning; Register never fails.
func (c *Context) Register(h Handler) {
	v, err := semver.NewVersion(h.Version)
	if err != nil || v.Major != libVersion.Major {
		c.log.Warn("skipping format handler with incompatible version",
			zap.String("handler", h.name()),
			zap.String("version", h.Version))
		return
	}
	c.handlers = append(c.handlers, h)
}

// FindByName returns the handler answering to the given type name, or nil.
func (c *Context) FindByName(name string) *Handler {
	for i := range c.handlers {
		for _, n := range c.handlers[i].Names {
			if n == name {
				return &c.handlers[i]
			}
		}
	}
	return nil
}

// FindByExtension returns the handler that auto-matches the given file
// extension (compared case-insensitively), or nil. This is narrower than
// FindByName: a handler may answer to names that are not extensions it
// auto-matches.
func (c *Context) FindByExtension(ext string) *Handler {
	for i := range c.handlers {
		for _, e := range c.handlers[i].Extensions {
			if strings.EqualFold(e, ext) {
				return &c.handlers[i]
			}
		}
	}
	return nil
}

// FindFormat looks a handler up by type name or, if isExtension is set, by
// file extension.
func (c *Context) FindFormat(name string, isExtension bool) *Handler {
	if isExtension {
		return c.FindByExtension(name)
	}
	return c.FindByName(name)
}

func (c *Context) claimStdin(user string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stdinUser != "" {
		return fmt.Errorf("`-' (stdin) already in use by %s: %w", c.stdinUser, ErrAlreadyInUse)
	}
	c.stdinUser = user
	return nil
}

func (c *Context) releaseStdin() {
	c.mu.Lock()
	c.stdinUser = ""
	c.mu.Unlock()
}

func (c *Context) claimStdout(user string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stdoutUser != "" {
		return fmt.Errorf("`-' (stdout) already in use by %s: %w", c.stdoutUser, ErrAlreadyInUse)
	}
	c.stdoutUser = user
	return nil
}

func (c *Context) releaseStdout() {
	c.mu.Lock()
	c.stdoutUser = ""
	c.mu.Unlock()
}

// Package store persists the committed roster state and the UI session
// in a per-installation diskv cache. Documents are JSON under stable
// namespaced keys and are reloaded verbatim at startup; a document that
// fails to parse is treated as absent, never as a crash.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/senryoku/pkg/draft"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/roster"
)

// Storage keys. The first dash-separated segment becomes a directory.
const (
	keyUsers        = "roster-users"
	keySeriesPoints = "roster-seriespoints"
	keyUnusedPoints = "roster-unusedpoints"
	keySession      = "ui-session"
)

// Session is the persisted UI convenience state: selection, filters,
// scroll positions of the scrollable panels, and uncommitted drafts
// (kept only so an accidental restart does not lose a half-typed edit).
type Session struct {
	SelectedUser string         `json:"selectedUser,omitempty"`
	UserQuery    string         `json:"userQuery,omitempty"`
	ShipQuery    string         `json:"shipQuery,omitempty"`
	Group        fleet.Group    `json:"group,omitempty"`
	Scroll       map[string]int `json:"scroll,omitempty"`
	Drafts       []draft.Entry  `json:"drafts,omitempty"`
}

// Persistence is the local cache contract.
type Persistence interface {
	LoadState(ctx context.Context) *roster.State
	SaveState(ctx context.Context, s *roster.State) error
	LoadSession(ctx context.Context) *Session
	SaveSession(ctx context.Context, s *Session) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv rooted at cfg.Path.
func Load(cfg *Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return Open(cfg.Path), nil
}

// Open creates a Persistence rooted at an explicit base path.
func Open(basePath string) Persistence {
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// readDoc unmarshals the document under key into out. Missing documents
// and malformed documents both leave out untouched; malformed ones are
// logged so a bad cache is visible without being fatal.
func (p *persistence) readDoc(key string, out any) bool {
	data, err := p.d.Read(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		fmt.Fprintf(os.Stderr, "store: %s: %v\n", key, err)
		return false
	}
	return true
}

func (p *persistence) writeDoc(key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// LoadState reloads the committed state. Each sub-record lives under
// its own key; anything missing or unreadable falls back to empty.
func (p *persistence) LoadState(ctx context.Context) *roster.State {
	s := roster.NewState()
	p.readDoc(keyUsers, &s.Users)
	p.readDoc(keySeriesPoints, &s.SeriesPoints)
	p.readDoc(keyUnusedPoints, &s.UnusedPoints)
	return s
}

func (p *persistence) SaveState(ctx context.Context, s *roster.State) error {
	if err := p.writeDoc(keyUsers, s.Users); err != nil {
		return err
	}
	if err := p.writeDoc(keySeriesPoints, s.SeriesPoints); err != nil {
		return err
	}
	return p.writeDoc(keyUnusedPoints, s.UnusedPoints)
}

func (p *persistence) LoadSession(ctx context.Context) *Session {
	s := &Session{}
	p.readDoc(keySession, s)
	return s
}

func (p *persistence) SaveSession(ctx context.Context, s *Session) error {
	return p.writeDoc(keySession, s)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

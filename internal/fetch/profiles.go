package fetch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bogdanfinn/tls-client/profiles"
)

// Short aliases accepted next to tls-client's own profile names.
var browserAliases = map[string]profiles.ClientProfile{
	// Chrome profiles
	"chrome133": profiles.Chrome_133,
	"chrome124": profiles.Chrome_124,
	"chrome120": profiles.Chrome_120,
	"chrome117": profiles.Chrome_117,
	"chrome110": profiles.Chrome_110,

	// Firefox profiles
	"firefox117": profiles.Firefox_117,
	"firefox110": profiles.Firefox_110,

	// Safari profiles
	"safari16_0":      profiles.Safari_16_0,
	"safari_ios_18_0": profiles.Safari_IOS_18_0,
	"safari_ios_17_0": profiles.Safari_IOS_17_0,

	// Opera profiles
	"opera91": profiles.Opera_91,
}

// ProfileSource produces a fresh copy of the browser signature table.
type ProfileSource func(ctx context.Context) (map[string]profiles.ClientProfile, error)

// BuiltinProfiles merges tls-client's mapped profiles with the short aliases.
func BuiltinProfiles(ctx context.Context) (map[string]profiles.ClientProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table := make(map[string]profiles.ClientProfile, len(profiles.MappedTLSClients)+len(browserAliases))
	for name, p := range profiles.MappedTLSClients {
		table[strings.ToLower(name)] = p
	}
	for name, p := range browserAliases {
		table[name] = p
	}
	return table, nil
}

// ProfileTable caches browser TLS/HTTP signatures and reloads them when they
// are absent or older than TTL.
type ProfileTable struct {
	TTL    time.Duration
	Source ProfileSource

	mu       sync.Mutex
	entries  map[string]profiles.ClientProfile
	loadedAt time.Time
	now      func() time.Time
}

// NewProfileTable returns an empty table; the first RefreshIfNeeded loads it.
func NewProfileTable(ttl time.Duration, source ProfileSource) *ProfileTable {
	if source == nil {
		source = BuiltinProfiles
	}
	return &ProfileTable{TTL: ttl, Source: source, now: time.Now}
}

// RefreshIfNeeded reloads the table when stale. It reports whether a reload
// happened.
func (t *ProfileTable) RefreshIfNeeded(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entries != nil && t.now().Sub(t.loadedAt) < t.TTL {
		return false, nil
	}

	entries, err := t.Source(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: refresh profiles: %v", ErrEmulationUnavailable, err)
	}
	if len(entries) == 0 {
		return false, fmt.Errorf("%w: profile source returned no profiles", ErrEmulationUnavailable)
	}

	t.entries = entries
	t.loadedAt = t.now()
	return true, nil
}

// Lookup resolves a profile name case-insensitively.
func (t *ProfileTable) Lookup(name string) (profiles.ClientProfile, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entries == nil {
		return profiles.ClientProfile{}, fmt.Errorf("%w: profile table not loaded", ErrEmulationUnavailable)
	}
	p, ok := t.entries[strings.ToLower(name)]
	if !ok {
		return profiles.ClientProfile{}, fmt.Errorf("%w: unknown browser profile %q", ErrEmulationUnavailable, name)
	}
	return p, nil
}

// ABOUTME: Mode-transition governor: per-user current mode with minimum dwell time
// ABOUTME: Suppresses flapping; a mode must hold its dwell before another may replace it

package engine

import (
	"sync"
	"time"

	"github.com/mauromedda/intent-router-go/internal/registry"
)

type modeState struct {
	current string
	since   time.Time
}

// governor serializes mode transitions per user. A freshly entered mode
// holds the display for at least its dwell time; transition events that
// arrive earlier are suppressed, not queued.
type governor struct {
	reg          *registry.Registry
	defaultDwell time.Duration
	now          func() time.Time

	mu    sync.Mutex
	users map[string]*modeState
}

func newGovernor(reg *registry.Registry, defaultDwell time.Duration) *governor {
	return &governor{
		reg:          reg,
		defaultDwell: defaultDwell,
		now:          time.Now,
		users:        make(map[string]*modeState),
	}
}

// admit attempts the transition to mode `to` for the user. Returns the
// previous mode and whether the transition took effect. Re-entering the
// current mode refreshes nothing and reports no change.
func (g *governor) admit(userID, to string) (from string, changed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.users[userID]
	if !ok {
		g.users[userID] = &modeState{current: to, since: g.now()}
		return "", true
	}
	if st.current == to {
		return st.current, false
	}
	if g.now().Sub(st.since) < g.dwell(st.current) {
		return st.current, false
	}
	from = st.current
	st.current = to
	st.since = g.now()
	return from, true
}

// current returns the user's active mode, or "".
func (g *governor) current(userID string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if st, ok := g.users[userID]; ok {
		return st.current
	}
	return ""
}

func (g *governor) dwell(modeID string) time.Duration {
	if m, ok := g.reg.Mode(modeID); ok && m.Dwell > 0 {
		return m.Dwell
	}
	return g.defaultDwell
}

// ABOUTME: Feedback store: records outcomes and nudges bounded per-user weight multipliers
// ABOUTME: Writes are serialized per user; persistence is async and never blocks classification

package learning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mauromedda/intent-router-go/internal/config"
	"github.com/mauromedda/intent-router-go/internal/log"
	"github.com/mauromedda/intent-router-go/internal/profile"
	"github.com/mauromedda/intent-router-go/internal/registry"
)

// Outcome labels the user's response to a classification.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeCorrected Outcome = "corrected"
	OutcomeRejected  Outcome = "rejected"
)

// ErrClosed reports feedback recorded after Close.
var ErrClosed = errors.New("learning store closed")

// userState is one user's mutable profile plus its writer lock. The lock
// keeps the weight-bound invariant intact under concurrent feedback.
type userState struct {
	mu sync.Mutex
	p  *profile.Profile
}

// Store owns the mutable per-user profiles. Classification reads
// snapshots; feedback mutates through RecordOutcome only.
type Store struct {
	cfg     config.Learning
	reg     *registry.Registry
	backend profile.Store // nil degrades to in-memory-only learning

	mu     sync.Mutex
	users  map[string]*userState
	closed bool

	flush chan *profile.Profile
	done  chan struct{}
}

// NewStore builds the feedback store and starts its flush worker.
// backend may be nil; learning then survives only for the process
// lifetime, which must not fail classification.
func NewStore(cfg config.Learning, reg *registry.Registry, backend profile.Store) *Store {
	s := &Store{
		cfg:     cfg,
		reg:     reg,
		backend: backend,
		users:   make(map[string]*userState),
		flush:   make(chan *profile.Profile, cfg.FlushQueue),
		done:    make(chan struct{}),
	}
	go s.flusher()
	return s
}

// Snapshot returns a clone of the user's current profile for scorers to
// read. First-time users get an empty profile.
func (s *Store) Snapshot(ctx context.Context, userID string) *profile.Profile {
	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.p.Clone()
}

// ObserveLanguage records the language of a successful classification;
// the detector uses it to break ties on the user's next request.
func (s *Store) ObserveLanguage(ctx context.Context, userID, language string) {
	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.p.LastLanguage == language {
		return
	}
	st.p.LastLanguage = language
	s.commit(st.p)
}

// RecordOutcome applies one piece of user feedback. correctedTo is
// required for OutcomeCorrected and ignored otherwise. requestID names
// the classification this feedback answers: replaying the identical
// outcome for the same request is a no-op, so retried feedback calls
// cannot double-count, while distinct requests keep adjusting inside
// the multiplier bounds.
func (s *Store) RecordOutcome(ctx context.Context, userID, requestID string, ns registry.Namespace, candidateID string, outcome Outcome, correctedTo string) error {
	switch outcome {
	case OutcomeAccepted, OutcomeRejected:
		correctedTo = ""
	case OutcomeCorrected:
		if correctedTo == "" {
			return fmt.Errorf("outcome %s requires a corrected-to candidate", outcome)
		}
	default:
		return fmt.Errorf("unknown outcome %q", outcome)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mu.Unlock()

	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	rec := profile.Record{
		RequestID:   requestID,
		Namespace:   ns,
		CandidateID: candidateID,
		Outcome:     string(outcome),
		CorrectedTo: correctedTo,
	}
	if s.duplicate(st.p, rec) {
		return nil
	}

	switch outcome {
	case OutcomeAccepted:
		s.nudge(st.p, ns, candidateID, s.cfg.AcceptStep)
		for _, sib := range s.reg.Siblings(ns, candidateID) {
			s.nudge(st.p, ns, sib, -s.cfg.SiblingStep)
		}
		st.p.Usage[profile.Key(ns, candidateID)]++
	case OutcomeCorrected:
		s.nudge(st.p, ns, candidateID, -s.cfg.AcceptStep)
		s.nudge(st.p, ns, correctedTo, s.cfg.AcceptStep)
		st.p.Usage[profile.Key(ns, correctedTo)]++
	case OutcomeRejected:
		s.nudge(st.p, ns, candidateID, -s.cfg.RejectStep)
	}

	rec.At = time.Now().UTC()
	st.p.Recent = append(st.p.Recent, rec)
	if limit := s.cfg.HistoryLimit; limit > 0 && len(st.p.Recent) > limit {
		st.p.Recent = st.p.Recent[len(st.p.Recent)-limit:]
	}
	s.commit(st.p)
	return nil
}

// duplicate reports whether rec replays the most recent ledger entry.
// Only feedback carrying the same request id counts as a replay; a
// blank request id never dedupes.
func (s *Store) duplicate(p *profile.Profile, rec profile.Record) bool {
	if rec.RequestID == "" || len(p.Recent) == 0 {
		return false
	}
	last := p.Recent[len(p.Recent)-1]
	return last.RequestID == rec.RequestID &&
		last.Namespace == rec.Namespace &&
		last.CandidateID == rec.CandidateID &&
		last.Outcome == rec.Outcome &&
		last.CorrectedTo == rec.CorrectedTo
}

// nudge shifts a candidate's multiplier by delta, clamped to the
// configured bounds. The clamp holds no matter how long the feedback
// history grows.
func (s *Store) nudge(p *profile.Profile, ns registry.Namespace, id string, delta float64) {
	w := p.Multiplier(ns, id) + delta
	if w < s.cfg.MinMultiplier {
		w = s.cfg.MinMultiplier
	}
	if w > s.cfg.MaxMultiplier {
		w = s.cfg.MaxMultiplier
	}
	p.Weights[profile.Key(ns, id)] = w
}

// commit stamps the profile and hands a clone to the flush worker. A full
// queue drops the write with a warning; the in-memory state is already
// updated and a later commit will persist it. Sends are serialized with
// Close under s.mu so feedback racing shutdown is dropped, not a panic.
func (s *Store) commit(p *profile.Profile) {
	p.Version++
	p.UpdatedAt = time.Now().UTC()
	if s.backend == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.flush <- p.Clone():
	default:
		log.Warn("profile flush queue full, dropping write user=%s version=%d", p.UserID, p.Version)
	}
}

// state returns the user's writer state, loading from the backend on
// first sight. Backend failures degrade to a fresh in-memory profile.
func (s *Store) state(ctx context.Context, userID string) *userState {
	s.mu.Lock()
	if st, ok := s.users[userID]; ok {
		s.mu.Unlock()
		return st
	}
	s.mu.Unlock()

	p := s.load(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have loaded the same user meanwhile.
	if st, ok := s.users[userID]; ok {
		return st
	}
	st := &userState{p: p}
	s.users[userID] = st
	return st
}

func (s *Store) load(ctx context.Context, userID string) *profile.Profile {
	if s.backend == nil {
		return profile.New(userID)
	}
	p, err := s.backend.Load(ctx, userID)
	switch {
	case err == nil:
		if p.Usage == nil {
			p.Usage = make(map[string]int)
		}
		if p.Weights == nil {
			p.Weights = make(map[string]float64)
		}
		return p
	case errors.Is(err, profile.ErrNotFound):
		return profile.New(userID)
	default:
		log.Warn("profile load failed, starting fresh user=%s err=%v", userID, err)
		return profile.New(userID)
	}
}

// flusher persists queued profiles. Save errors are logged and dropped;
// durability is best-effort by contract.
func (s *Store) flusher() {
	defer close(s.done)
	for p := range s.flush {
		if err := s.backend.Save(context.Background(), p); err != nil {
			log.Warn("profile save failed user=%s version=%d err=%v", p.UserID, p.Version, err)
		}
	}
}

// Close stops accepting feedback, drains the flush queue, and waits for
// the worker to finish. It does not close the backend; the owner does.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	// Closing under the lock excludes a concurrent commit send.
	close(s.flush)
	s.mu.Unlock()
	<-s.done
}

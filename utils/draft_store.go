package utils

import (
	"errors"
	"sync"
	"time"

	"storefront-admin/preview"
	"storefront-admin/variantform"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound    = errors.New("product draft not found")
	ErrSubmitInProgress = errors.New("product draft is already being submitted")
)

// DefaultDraftTTL is how long an untouched draft survives.
const DefaultDraftTTL = time.Hour

// Draft is a product form in progress, owned by one admin session.
type Draft struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	Tree       variantform.Tree
	Submitting bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DraftStore keeps product drafts in memory. Edits to one draft are applied
// one at a time under the store lock.
type DraftStore struct {
	drafts map[uuid.UUID]*Draft
	mu     sync.RWMutex
	ttl    time.Duration
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftStore{
		drafts: make(map[uuid.UUID]*Draft),
		ttl:    ttl,
	}
}

// CleanupIdle drops drafts untouched for longer than the TTL and releases
// their previews. Drafts mid-submit are kept.
func (ds *DraftStore) CleanupIdle() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	cutoff := time.Now().Add(-ds.ttl)
	removed := 0
	for id, d := range ds.drafts {
		if !d.Submitting && d.UpdatedAt.Before(cutoff) {
			d.Tree.Release()
			delete(ds.drafts, id)
			removed++
		}
	}
	return removed
}

// Create stores a new draft for the session
func (ds *DraftStore) Create(sessionID uuid.UUID, tree variantform.Tree) Draft {
	// Clean up idle drafts on each new creation
	ds.CleanupIdle()

	ds.mu.Lock()
	defer ds.mu.Unlock()

	now := time.Now()
	d := &Draft{
		ID:        uuid.New(),
		SessionID: sessionID,
		Tree:      tree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ds.drafts[d.ID] = d
	return *d
}

func (ds *DraftStore) lookup(id, sessionID uuid.UUID) (*Draft, error) {
	d, ok := ds.drafts[id]
	if !ok || d.SessionID != sessionID {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// Get returns a snapshot of the draft.
func (ds *DraftStore) Get(id, sessionID uuid.UUID) (Draft, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	d, err := ds.lookup(id, sessionID)
	if err != nil {
		return Draft{}, err
	}
	return *d, nil
}

// Preview finds a live preview held by one of the session's drafts.
func (ds *DraftStore) Preview(sessionID, previewID uuid.UUID) (*preview.Handle, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	for _, d := range ds.drafts {
		if d.SessionID != sessionID {
			continue
		}
		for _, h := range d.Tree.Previews() {
			if h.ID == previewID {
				return h, true
			}
		}
	}
	return nil, false
}

// Update applies edit to the draft's tree. Edits are refused while the draft
// is being submitted.
func (ds *DraftStore) Update(id, sessionID uuid.UUID, edit func(variantform.Tree) variantform.Tree) (Draft, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d, err := ds.lookup(id, sessionID)
	if err != nil {
		return Draft{}, err
	}
	if d.Submitting {
		return Draft{}, ErrSubmitInProgress
	}

	d.Tree = edit(d.Tree)
	d.UpdatedAt = time.Now()
	return *d, nil
}

// BeginSubmit marks the draft as in flight and returns the snapshot to send.
// A second call before EndSubmit fails with ErrSubmitInProgress.
func (ds *DraftStore) BeginSubmit(id, sessionID uuid.UUID) (Draft, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d, err := ds.lookup(id, sessionID)
	if err != nil {
		return Draft{}, err
	}
	if d.Submitting {
		return Draft{}, ErrSubmitInProgress
	}

	d.Submitting = true
	d.UpdatedAt = time.Now()
	return *d, nil
}

// EndSubmit finishes a submission. A successful one discards the draft and
// its previews; a failed one leaves it editable.
func (ds *DraftStore) EndSubmit(id uuid.UUID, succeeded bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d, exists := ds.drafts[id]
	if !exists {
		return
	}
	if succeeded {
		d.Tree.Release()
		delete(ds.drafts, id)
		return
	}
	d.Submitting = false
	d.UpdatedAt = time.Now()
}

// Discard drops the draft and releases its previews.
func (ds *DraftStore) Discard(id, sessionID uuid.UUID) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d, err := ds.lookup(id, sessionID)
	if err != nil {
		return err
	}
	d.Tree.Release()
	delete(ds.drafts, id)
	return nil
}

// DiscardSession drops every draft owned by the session, used on logout.
func (ds *DraftStore) DiscardSession(sessionID uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for id, d := range ds.drafts {
		if d.SessionID == sessionID {
			d.Tree.Release()
			delete(ds.drafts, id)
		}
	}
}

// DiscardAll drops every draft, used on shutdown.
func (ds *DraftStore) DiscardAll() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for id, d := range ds.drafts {
		d.Tree.Release()
		delete(ds.drafts, id)
	}
}

func (ds *DraftStore) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.drafts)
}

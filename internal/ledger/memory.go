package ledger

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/MKhiriev/go-gene-consent/models"
)

// MemoryStore is a StateStore held in process memory. Atomically works on a
// copy of the state and swaps it in only when fn succeeds.
type MemoryStore struct {
	mu    sync.RWMutex
	state memState
}

type memState struct {
	registrations map[models.Address]models.Registration
	requests      map[int64]models.AnalysisRequest
	grants        map[int64]models.ConsentGrant
	signers       map[models.Address]models.SignerBinding
	events        []models.LedgerEvent
	lastRequestID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: memState{
		registrations: make(map[models.Address]models.Registration),
		requests:      make(map[int64]models.AnalysisRequest),
		grants:        make(map[int64]models.ConsentGrant),
		signers:       make(map[models.Address]models.SignerBinding),
	}}
}

// NewMemoryLedger is a complete ledger in memory, for tests and local runs.
func NewMemoryLedger(verifier Verifier, opts ...Option) *Processor {
	return NewProcessor(NewMemoryStore(), verifier, opts...)
}

func (s memState) clone() memState {
	return memState{
		registrations: maps.Clone(s.registrations),
		requests:      maps.Clone(s.requests),
		grants:        maps.Clone(s.grants),
		signers:       maps.Clone(s.signers),
		events:        slices.Clone(s.events),
		lastRequestID: s.lastRequestID,
	}
}

func (m *MemoryStore) Atomically(ctx context.Context, fn func(tx StateTx) error) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{state: m.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

func (m *MemoryStore) Registration(_ context.Context, addr models.Address) (models.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.registration(addr)
}

func (m *MemoryStore) Request(_ context.Context, requestID int64) (models.AnalysisRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.request(requestID)
}

func (m *MemoryStore) Grant(_ context.Context, requestID int64) (models.ConsentGrant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.grant(requestID)
}

func (m *MemoryStore) RequestsByAddress(_ context.Context, addr models.Address) ([]models.AnalysisRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.AnalysisRequest
	for _, req := range m.state.requests {
		if req.Involves(addr) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID < out[j].RequestID })
	return out, nil
}

func (m *MemoryStore) Events(_ context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.LedgerEvent
	for _, ev := range m.state.events {
		if ev.Seq <= afterSeq {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s memState) registration(addr models.Address) (models.Registration, error) {
	reg, ok := s.registrations[addr]
	if !ok {
		return models.Registration{}, ErrNotFound
	}
	return reg, nil
}

func (s memState) request(id int64) (models.AnalysisRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return models.AnalysisRequest{}, ErrNotFound
	}
	return req, nil
}

func (s memState) grant(id int64) (models.ConsentGrant, error) {
	g, ok := s.grants[id]
	if !ok {
		return models.ConsentGrant{}, ErrNotFound
	}
	return g, nil
}

type memTx struct {
	state memState
}

func (t *memTx) Head(context.Context) (models.LedgerEvent, error) {
	if len(t.state.events) == 0 {
		return models.LedgerEvent{}, nil
	}
	return t.state.events[len(t.state.events)-1], nil
}

func (t *memTx) AppendEvent(_ context.Context, event models.LedgerEvent) error {
	t.state.events = append(t.state.events, event)
	return nil
}

func (t *memTx) Registration(_ context.Context, addr models.Address) (models.Registration, error) {
	return t.state.registration(addr)
}

func (t *memTx) InsertRegistration(_ context.Context, reg models.Registration) error {
	if _, ok := t.state.registrations[reg.Address]; ok {
		return ErrAlreadyRegistered
	}
	t.state.registrations[reg.Address] = reg
	return nil
}

func (t *memTx) UpdateRegistration(_ context.Context, reg models.Registration) error {
	if _, ok := t.state.registrations[reg.Address]; !ok {
		return ErrNotFound
	}
	t.state.registrations[reg.Address] = reg
	return nil
}

func (t *memTx) InsertRequest(_ context.Context, req models.AnalysisRequest) (int64, error) {
	t.state.lastRequestID++
	req.RequestID = t.state.lastRequestID
	t.state.requests[req.RequestID] = req
	return req.RequestID, nil
}

func (t *memTx) Request(_ context.Context, requestID int64) (models.AnalysisRequest, error) {
	return t.state.request(requestID)
}

func (t *memTx) UpdateRequest(_ context.Context, req models.AnalysisRequest) error {
	if _, ok := t.state.requests[req.RequestID]; !ok {
		return ErrNotFound
	}
	t.state.requests[req.RequestID] = req
	return nil
}

func (t *memTx) Grant(_ context.Context, requestID int64) (models.ConsentGrant, error) {
	return t.state.grant(requestID)
}

func (t *memTx) InsertGrant(_ context.Context, grant models.ConsentGrant) error {
	if _, ok := t.state.grants[grant.RequestID]; ok {
		return ErrAlreadyGranted
	}
	t.state.grants[grant.RequestID] = grant
	return nil
}

func (t *memTx) SignerBinding(_ context.Context, addr models.Address) (models.SignerBinding, error) {
	b, ok := t.state.signers[addr]
	if !ok {
		return models.SignerBinding{}, ErrNotFound
	}
	return b, nil
}

func (t *memTx) BindSigner(_ context.Context, binding models.SignerBinding) error {
	if _, ok := t.state.signers[binding.Address]; ok {
		return ErrSignerBound
	}
	t.state.signers[binding.Address] = binding
	return nil
}

var (
	_ StateStore = (*MemoryStore)(nil)
	_ StateTx    = (*memTx)(nil)
)

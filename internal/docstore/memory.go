package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"freebusy/internal/domain"
)

// DocumentPath returns the hierarchical store path for an event document.
func DocumentPath(eventID string) string {
	return "event/" + eventID
}

// MemoryStore is one replica of the event document store. All local mutations
// go through Update, which stamps the whole mutation with a single Lamport
// clock value; ExportState and MergeState exchange raw CRDT state between
// replicas and converge regardless of delivery order.
//
// When a DocumentSnapshotRepository is provided, every update and merge
// persists a snapshot, and documents absent from memory are lazily reloaded
// from snapshots.
type MemoryStore struct {
	mu        sync.Mutex
	replicaID string
	clock     int64
	docs      map[string]*document
	subs      map[string]map[int]chan *domain.EventDocument
	nextSub   int
	snapshots domain.DocumentSnapshotRepository
}

// NewMemoryStore returns a replica with the given ID (a random UUID when
// empty). snapshots may be nil for memory-only operation.
func NewMemoryStore(replicaID string, snapshots domain.DocumentSnapshotRepository) *MemoryStore {
	if replicaID == "" {
		replicaID = uuid.NewString()
	}
	return &MemoryStore{
		replicaID: replicaID,
		docs:      make(map[string]*document),
		subs:      make(map[string]map[int]chan *domain.EventDocument),
		snapshots: snapshots,
	}
}

// ReplicaID returns this replica's identity used for LWW tie-breaks.
func (s *MemoryStore) ReplicaID() string {
	return s.replicaID
}

// Get implements domain.EventDocumentStore.
func (s *MemoryStore) Get(ctx context.Context, eventID string) (*domain.EventDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx, DocumentPath(eventID))
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.empty() {
		return nil, domain.ErrNotFound
	}
	return doc.decode()
}

// Update implements domain.EventDocumentStore. The mutation is applied to a
// copy; if mutate returns an error, no state changes. Every field and map
// entry the mutation touched is stamped with one fresh clock value.
func (s *MemoryStore) Update(ctx context.Context, eventID string, mutate func(*domain.EventDocument) error) (*domain.EventDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := DocumentPath(eventID)
	doc, err := s.loadLocked(ctx, path)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = newDocument()
	}

	before, err := doc.decode()
	if err != nil {
		return nil, err
	}
	after := before.Clone()
	if err := mutate(after); err != nil {
		return nil, err
	}

	s.clock++
	if err := doc.applyChanges(before, after, s.clock, s.replicaID); err != nil {
		return nil, err
	}
	s.docs[path] = doc

	if err := s.persistLocked(ctx, path, doc); err != nil {
		return nil, err
	}
	s.notifyLocked(path, after)
	return after, nil
}

// Subscribe implements domain.EventDocumentStore.
func (s *MemoryStore) Subscribe(ctx context.Context, eventID string) (<-chan *domain.EventDocument, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := DocumentPath(eventID)
	ch := make(chan *domain.EventDocument, 1)
	if s.subs[path] == nil {
		s.subs[path] = make(map[int]chan *domain.EventDocument)
	}
	id := s.nextSub
	s.nextSub++
	s.subs[path][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs[path], id)
			s.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel, nil
}

// ExportState returns the raw replicated state of a document for shipping to
// another replica.
func (s *MemoryStore) ExportState(ctx context.Context, eventID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[DocumentPath(eventID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return json.Marshal(doc)
}

// MergeState folds raw state from another replica into the local document and
// advances the local clock past everything merged.
func (s *MemoryStore) MergeState(ctx context.Context, eventID string, state []byte) error {
	var remote document
	if err := json.Unmarshal(state, &remote); err != nil {
		return fmt.Errorf("decode remote state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := DocumentPath(eventID)
	doc, err := s.loadLocked(ctx, path)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = newDocument()
	}
	doc.merge(&remote)
	if max := doc.maxClock(); max > s.clock {
		s.clock = max
	}
	s.docs[path] = doc

	if err := s.persistLocked(ctx, path, doc); err != nil {
		return err
	}
	decoded, err := doc.decode()
	if err != nil {
		return err
	}
	s.notifyLocked(path, decoded)
	return nil
}

// loadLocked returns the document for path from memory, falling back to the
// snapshot repository. nil means the path has never been written.
func (s *MemoryStore) loadLocked(ctx context.Context, path string) (*document, error) {
	if doc, ok := s.docs[path]; ok {
		return doc, nil
	}
	if s.snapshots == nil {
		return nil, nil
	}
	raw, clock, err := s.snapshots.Load(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	doc := newDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if clock > s.clock {
		s.clock = clock
	}
	s.docs[path] = doc
	return doc, nil
}

func (s *MemoryStore) persistLocked(ctx context.Context, path string, doc *document) error {
	if s.snapshots == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}
	if err := s.snapshots.Save(ctx, path, raw, s.clock); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

// notifyLocked delivers the new state to subscribers, coalescing: a pending
// undelivered state is replaced rather than queued behind.
func (s *MemoryStore) notifyLocked(path string, doc *domain.EventDocument) {
	for _, ch := range s.subs[path] {
		select {
		case ch <- doc:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- doc:
			default:
			}
		}
	}
}

var _ domain.EventDocumentStore = (*MemoryStore)(nil)

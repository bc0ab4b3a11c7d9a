// Package collection implements dlite's triple store and collection
// (spec.md §4.H): a labelled (subject, predicate, object) relation store
// with stable ids, insertion-order traversal and an iterator that guards
// against concurrent mutation.
package collection

import (
	"sync/atomic"

	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/uuid"
)

// Predicates used internally to encode instance membership, mirroring the
// original's reserved relation vocabulary.
const (
	PredicateIsA       = "_is-a"
	PredicateHasUUID   = "_has-uuid"
	PredicateHasMeta   = "_has-meta"
	PredicateHasDimMap = "_has-dimmap"

	ObjectInstance = "Instance"
)

// Triple is a single labelled relation, carrying the stable id it was
// assigned on insertion.
type Triple struct {
	ID        int64
	Subject   string
	Predicate string
	Object    string
}

// Collection owns a triple store. It records member instances only as
// triples and keeps no dimension names or sizes of its own.
type Collection struct {
	UUID string
	URI  string

	nextID     int64
	triples    []Triple
	byID       map[int64]int // id -> index into triples
	generation int64         // bumped on every mutation; iterators detect drift
	iterating  int           // count of live iterators; >0 forbids mutation
}

// Create allocates a new, empty collection. id follows the same uuid
// derivation rule as instances (spec.md §3): empty generates a random uuid,
// a well-formed uuid passes through, anything else is hashed.
func Create(id string) *Collection {
	u, version := uuid.Derive(id)
	c := &Collection{
		UUID: u,
		byID: make(map[int64]int),
	}
	if version == 5 {
		c.URI = id
	}
	return c
}

func (c *Collection) checkMutable() error {
	if c.iterating > 0 {
		return errors.WrapWithCode(errors.New("collection"), errors.ErrUnsupportedOp,
			"cannot mutate a collection while an iterator is live")
	}
	return nil
}

// AddRelation appends a new triple, returning its stable id.
func (c *Collection) AddRelation(subject, predicate, object string) (int64, error) {
	if err := c.checkMutable(); err != nil {
		return 0, err
	}
	id := atomic.AddInt64(&c.nextID, 1)
	c.triples = append(c.triples, Triple{ID: id, Subject: subject, Predicate: predicate, Object: object})
	c.byID[id] = len(c.triples) - 1
	c.generation++
	return id, nil
}

// matches reports whether t satisfies the given filters, where a nil filter
// is a wildcard.
func matches(t Triple, subject, predicate, object *string) bool {
	if subject != nil && t.Subject != *subject {
		return false
	}
	if predicate != nil && t.Predicate != *predicate {
		return false
	}
	if object != nil && t.Object != *object {
		return false
	}
	return true
}

// RemoveRelations removes every triple matching the given filters (nil
// means "any") and returns the number removed.
func (c *Collection) RemoveRelations(subject, predicate, object *string) (int, error) {
	if err := c.checkMutable(); err != nil {
		return 0, err
	}
	kept := c.triples[:0]
	removed := 0
	for _, t := range c.triples {
		if matches(t, subject, predicate, object) {
			delete(c.byID, t.ID)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	c.triples = kept
	c.reindex()
	if removed > 0 {
		c.generation++
	}
	return removed, nil
}

// RemoveByID removes a single triple by its stable id.
func (c *Collection) RemoveByID(id int64) error {
	if err := c.checkMutable(); err != nil {
		return err
	}
	idx, ok := c.byID[id]
	if !ok {
		return errors.WrapWithCode(errors.New("id"), errors.ErrNotFound, "triple %d not found", id)
	}
	c.triples = append(c.triples[:idx], c.triples[idx+1:]...)
	c.reindex()
	c.generation++
	return nil
}

func (c *Collection) reindex() {
	c.byID = make(map[int64]int, len(c.triples))
	for i, t := range c.triples {
		c.byID[t.ID] = i
	}
}

// AddInstance asserts the reserved triples recording that label names an
// instance of the given uuid conforming to metaURI.
func (c *Collection) AddInstance(label, instUUID, metaURI string) error {
	if _, err := c.AddRelation(label, PredicateIsA, ObjectInstance); err != nil {
		return err
	}
	if _, err := c.AddRelation(label, PredicateHasUUID, instUUID); err != nil {
		return err
	}
	if _, err := c.AddRelation(label, PredicateHasMeta, metaURI); err != nil {
		return err
	}
	return nil
}

// RemoveInstance removes every reserved triple recording label's instance
// membership, if label is in fact recorded as an instance.
func (c *Collection) RemoveInstance(label string) error {
	isA := PredicateIsA
	obj := ObjectInstance
	labelPtr := &label

	var found bool
	for _, t := range c.triples {
		if matches(t, labelPtr, &isA, &obj) {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	for _, pred := range []string{PredicateIsA, PredicateHasUUID, PredicateHasMeta} {
		p := pred
		if _, err := c.RemoveRelations(labelPtr, &p, nil); err != nil {
			return err
		}
	}

	// _has-dimmap triples have a triple (not a plain string) as their
	// object, so they're addressed and removed by id rather than by value.
	dimmap := PredicateHasDimMap
	var toRemove []int64
	for _, t := range c.triples {
		if matches(t, labelPtr, &dimmap, nil) {
			toRemove = append(toRemove, t.ID)
		}
	}
	for _, id := range toRemove {
		if err := c.RemoveByID(id); err != nil {
			return err
		}
	}
	return nil
}

// Iterator walks a live view of the collection's triples in insertion
// order, filtered by the given (possibly wildcard) components. It detects
// concurrent mutation via the collection's generation counter.
type Iterator struct {
	c          *Collection
	subject    *string
	predicate  *string
	object     *string
	generation int64
	pos        int
}

// InitState begins a find over the collection, matching triples against
// the given filters (nil for any field means wildcard).
func (c *Collection) InitState(subject, predicate, object *string) *Iterator {
	c.iterating++
	return &Iterator{c: c, subject: subject, predicate: predicate, object: object, generation: c.generation}
}

// Find advances the iterator, returning the next matching triple. ok is
// false once exhausted. Find reports an error if the collection was
// mutated since InitState or since the previous Find call.
func (it *Iterator) Find() (t Triple, ok bool, err error) {
	if it.generation != it.c.generation {
		return Triple{}, false, errors.WrapWithCode(errors.New("collection"), errors.ErrUnsupportedOp,
			"collection mutated during iteration")
	}
	for it.pos < len(it.c.triples) {
		candidate := it.c.triples[it.pos]
		it.pos++
		if matches(candidate, it.subject, it.predicate, it.object) {
			return candidate, true, nil
		}
	}
	return Triple{}, false, nil
}

// Free ends the iteration, re-enabling mutation of the collection.
func (it *Iterator) Free() {
	if it.c.iterating > 0 {
		it.c.iterating--
	}
}

/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/store/store.go
*/
package store

import (
	"errors"
)

// Value kind tags for store entries.
const (
	STRING_KIND = "string"
	LIST_KIND   = "list"
	SET_KIND    = "set"
)

// ErrWrongType is returned by any list/set operation applied to a key
// whose entry holds a different kind of value. Handlers translate it
// into the WRONGTYPE error reply.
var ErrWrongType = errors.New("wrong type")

// Entry is the value half of the store: a tagged variant holding
// exactly one of the three supported kinds.
//
// Fields:
//   - Kind: STRING_KIND, LIST_KIND or SET_KIND
//   - Str: the bytes of a string value
//   - List: the elements of a list value, head first
//   - Set: the members of a set value, keyed by raw member bytes
type Entry struct {
	Kind string

	Str  []byte
	List *deque
	Set  map[string]struct{}
}

// Store is the per-shard owner of the key → value map.
//
// Ownership: exactly one shard worker owns a Store and is the only
// goroutine that ever touches it, so there are no locks anywhere.
// Concurrency comes from running many shards in parallel, not from
// synchronizing inside one.
//
// Keys are arbitrary byte strings; the map key is the raw bytes
// converted to a Go string, so equality and hashing are byte-exact and
// non-UTF-8 keys work unchanged.
//
// Lifecycle of an entry: created lazily on first write, mutated only by
// the owning shard, and removed either explicitly (DEL, SET overwrite)
// or automatically when a pop empties its list/set. An external
// observer never sees an existing key bound to an empty container.
type Store struct {
	entries map[string]*Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Entry),
	}
}

// Len returns the number of live keys.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get returns the entry bound to key, or (nil, false) when absent.
// The entry is returned by reference; callers on the owning shard may
// read it but must go through store operations to mutate.
func (s *Store) Get(key []byte) (*Entry, bool) {
	e, ok := s.entries[string(key)]
	return e, ok
}

// Set binds key to a string value, replacing any existing value of any
// kind.
func (s *Store) Set(key []byte, value []byte) {
	s.entries[string(key)] = &Entry{
		Kind: STRING_KIND,
		Str:  value,
	}
}

// Del removes key and reports whether it was present.
func (s *Store) Del(key []byte) bool {
	k := string(key)
	if _, ok := s.entries[k]; !ok {
		return false
	}
	delete(s.entries, k)
	return true
}

// LPush pushes values onto the head of the list at key, creating the
// list if the key is absent. Values are pushed one at a time, so the
// last argument ends up at the head: LPush(k, a, b, c) yields [c,b,a].
// Returns the new list length.
func (s *Store) LPush(key []byte, values ...[]byte) (int64, error) {
	list, err := s.listEntry(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		list.pushFront(v)
	}
	return int64(list.len()), nil
}

// RPush pushes values onto the tail of the list at key, creating the
// list if the key is absent: RPush(k, a, b, c) yields [a,b,c].
// Returns the new list length.
func (s *Store) RPush(key []byte, values ...[]byte) (int64, error) {
	list, err := s.listEntry(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		list.pushBack(v)
	}
	return int64(list.len()), nil
}

// LPop drains min(count, length) elements from the head of the list at
// key, in head order. A missing key yields an empty result. If the pop
// empties the list the key is removed in the same step.
func (s *Store) LPop(key []byte, count int64) ([][]byte, error) {
	return s.pop(key, count, func(list *deque) ([]byte, bool) {
		return list.popFront()
	})
}

// RPop drains min(count, length) elements from the tail of the list at
// key, tail first. Same removal rule as LPop.
func (s *Store) RPop(key []byte, count int64) ([][]byte, error) {
	return s.pop(key, count, func(list *deque) ([]byte, bool) {
		return list.popBack()
	})
}

// LRange returns the elements of the list at key between start and
// stop, both inclusive, after index normalization: negative indices
// count from the tail, start is clamped to [0, length], stop to
// [0, length-1]. An empty or missing list, or start > stop after
// clamping, yields an empty result.
func (s *Store) LRange(key []byte, start, stop int64) ([][]byte, error) {
	e, ok := s.entries[string(key)]
	if !ok {
		return nil, nil
	}
	if e.Kind != LIST_KIND {
		return nil, ErrWrongType
	}

	lo, hi, empty := resolveRange(start, stop, e.List.len())
	if empty {
		return nil, nil
	}

	out := make([][]byte, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, e.List.at(i))
	}
	return out, nil
}

// SAdd inserts values into the set at key, creating the set if the key
// is absent. Returns the number of members that were newly inserted,
// not counting members already present.
func (s *Store) SAdd(key []byte, values ...[]byte) (int64, error) {
	k := string(key)
	e, ok := s.entries[k]
	if !ok {
		e = &Entry{
			Kind: SET_KIND,
			Set:  make(map[string]struct{}),
		}
		s.entries[k] = e
	} else if e.Kind != SET_KIND {
		return 0, ErrWrongType
	}

	added := int64(0)
	for _, v := range values {
		m := string(v)
		if _, present := e.Set[m]; !present {
			e.Set[m] = struct{}{}
			added++
		}
	}
	return added, nil
}

// SPop removes and returns min(count, cardinality) members of the set
// at key. Selection order is whatever the map iteration yields and is
// deliberately unspecified; no member is returned twice in one call.
// If the pop empties the set the key is removed in the same step.
func (s *Store) SPop(key []byte, count int64) ([][]byte, error) {
	k := string(key)
	e, ok := s.entries[k]
	if !ok {
		return nil, nil
	}
	if e.Kind != SET_KIND {
		return nil, ErrWrongType
	}

	n := count
	if m := int64(len(e.Set)); m < n {
		n = m
	}
	popped := make([][]byte, 0, n)
	for member := range e.Set {
		if int64(len(popped)) >= n {
			break
		}
		delete(e.Set, member)
		popped = append(popped, []byte(member))
	}

	if len(e.Set) == 0 {
		delete(s.entries, k)
	}
	return popped, nil
}

// SMembers returns every member of the set at key, in unspecified
// order. A missing key yields an empty result.
func (s *Store) SMembers(key []byte) ([][]byte, error) {
	e, ok := s.entries[string(key)]
	if !ok {
		return nil, nil
	}
	if e.Kind != SET_KIND {
		return nil, ErrWrongType
	}

	members := make([][]byte, 0, len(e.Set))
	for member := range e.Set {
		members = append(members, []byte(member))
	}
	return members, nil
}

// listEntry fetches the list at key, creating it when absent. A key
// holding a non-list is never converted: create-on-push must not create
// an entry of the wrong kind.
func (s *Store) listEntry(key []byte) (*deque, error) {
	k := string(key)
	e, ok := s.entries[k]
	if !ok {
		e = &Entry{
			Kind: LIST_KIND,
			List: newDeque(),
		}
		s.entries[k] = e
	} else if e.Kind != LIST_KIND {
		return nil, ErrWrongType
	}
	return e.List, nil
}

// pop implements the shared LPop/RPop drain-and-maybe-remove step.
func (s *Store) pop(key []byte, count int64, next func(*deque) ([]byte, bool)) ([][]byte, error) {
	k := string(key)
	e, ok := s.entries[k]
	if !ok {
		return nil, nil
	}
	if e.Kind != LIST_KIND {
		return nil, ErrWrongType
	}

	n := count
	if l := int64(e.List.len()); l < n {
		n = l
	}
	popped := make([][]byte, 0, n)
	for i := int64(0); i < n; i++ {
		v, _ := next(e.List)
		popped = append(popped, v)
	}

	if e.List.len() == 0 {
		delete(s.entries, k)
	}
	return popped, nil
}

// resolveRange normalizes LRANGE indices over a list of length l.
// Returns the inclusive bounds, or empty=true when the range selects
// nothing.
func resolveRange(start, stop int64, l int) (int, int, bool) {
	length := int64(l)
	if length == 0 {
		return 0, 0, true
	}

	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}

	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if stop < 0 {
		stop = 0
	}
	if stop > length-1 {
		stop = length - 1
	}

	if start > stop {
		return 0, 0, true
	}
	return int(start), int(stop), false
}

package evaluator

import "sort"

// Persistent Hash Array Mapped Trie (HAMT) implementation
// Provides efficient immutable map operations keyed by Symbol.
// Every update returns a new map sharing untouched nodes with the old one,
// so a map may be read from any number of goroutines without locking.

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits // 32
	hamtMask = hamtSize - 1
)

// PersistentMap is an immutable hash map from symbols to V.
// The zero value and a nil *PersistentMap are both empty maps.
type PersistentMap[V any] struct {
	root  *hamtNode[V]
	count int
}

// hamtNode is a node in the HAMT
type hamtNode[V any] struct {
	bitmap uint32 // which indices are populated
	nodes  []any  // hamtEntry[V] or *hamtNode[V]
}

// hamtEntry holds a key-value pair
type hamtEntry[V any] struct {
	hash  uint32
	key   Symbol
	value V
}

// Item is a key-value pair read out of a PersistentMap.
type Item[V any] struct {
	Key   Symbol
	Value V
}

// EmptyMap returns an empty persistent map
func EmptyMap[V any]() *PersistentMap[V] {
	return &PersistentMap[V]{}
}

// Len returns the number of entries
func (m *PersistentMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// Get returns the value for a key
func (m *PersistentMap[V]) Get(key Symbol) (V, bool) {
	if m == nil || m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.get(hashSymbol(key), key, 0)
}

// Contains checks if a key exists
func (m *PersistentMap[V]) Contains(key Symbol) bool {
	_, ok := m.Get(key)
	return ok
}

// Put returns a new map with the key-value pair added/updated
func (m *PersistentMap[V]) Put(key Symbol, value V) *PersistentMap[V] {
	hash := hashSymbol(key)

	root := &hamtNode[V]{}
	count := 0
	if m != nil {
		if m.root != nil {
			root = m.root
		}
		count = m.count
	}

	newRoot, added := root.put(hash, key, value, 0)
	if added {
		count++
	}

	return &PersistentMap[V]{
		root:  newRoot,
		count: count,
	}
}

// Remove returns a new map with the key removed
func (m *PersistentMap[V]) Remove(key Symbol) *PersistentMap[V] {
	if m == nil || m.root == nil {
		return m
	}

	newRoot, removed := m.root.remove(hashSymbol(key), key, 0)
	if !removed {
		return m
	}

	return &PersistentMap[V]{
		root:  newRoot,
		count: m.count - 1,
	}
}

// Keys returns all keys, sorted
func (m *PersistentMap[V]) Keys() []Symbol {
	items := m.Items()
	keys := make([]Symbol, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	return keys
}

// Items returns all key-value pairs, sorted by key
func (m *PersistentMap[V]) Items() []Item[V] {
	if m == nil || m.root == nil {
		return nil
	}
	items := make([]Item[V], 0, m.count)
	m.root.collectItems(&items)
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items
}

// --- hamtNode methods ---

func (n *hamtNode[V]) get(hash uint32, key Symbol, shift uint) (V, bool) {
	var zero V
	if shift >= 32 {
		// Collision bucket search
		for _, node := range n.nodes {
			if entry, ok := node.(hamtEntry[V]); ok && entry.key == key {
				return entry.value, true
			}
		}
		return zero, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		return zero, false // not present
	}

	pos := popcount(n.bitmap & (bit - 1))

	switch v := n.nodes[pos].(type) {
	case hamtEntry[V]:
		if v.hash == hash && v.key == key {
			return v.value, true
		}
		return zero, false
	case *hamtNode[V]:
		return v.get(hash, key, shift+hamtBits)
	}

	return zero, false
}

func (n *hamtNode[V]) clone() *hamtNode[V] {
	newNode := &hamtNode[V]{
		bitmap: n.bitmap,
		nodes:  make([]any, len(n.nodes)),
	}
	copy(newNode.nodes, n.nodes)
	return newNode
}

func (n *hamtNode[V]) put(hash uint32, key Symbol, value V, shift uint) (*hamtNode[V], bool) {
	// If we exhausted the hash bits, we store multiple entries in a collision bucket.
	if shift >= 32 {
		newNode := n.clone()
		for i, node := range newNode.nodes {
			if entry, ok := node.(hamtEntry[V]); ok && entry.key == key {
				newNode.nodes[i] = hamtEntry[V]{hash: hash, key: key, value: value}
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, hamtEntry[V]{hash: hash, key: key, value: value})
		return newNode, true
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	newNode := n.clone()

	if n.bitmap&bit == 0 {
		// New entry
		newNode.bitmap |= bit
		pos := popcount(newNode.bitmap & (bit - 1))

		// Insert at position
		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = hamtEntry[V]{hash: hash, key: key, value: value}

		return newNode, true
	}

	pos := popcount(n.bitmap & (bit - 1))

	switch v := newNode.nodes[pos].(type) {
	case hamtEntry[V]:
		if v.hash == hash && v.key == key {
			// Update existing value
			newNode.nodes[pos] = hamtEntry[V]{hash: hash, key: key, value: value}
			return newNode, false
		}

		// Collision - create child node and push both entries down
		child := &hamtNode[V]{}
		child, _ = child.put(v.hash, v.key, v.value, shift+hamtBits)
		child, _ = child.put(hash, key, value, shift+hamtBits)

		newNode.nodes[pos] = child
		return newNode, true

	case *hamtNode[V]:
		newChild, added := v.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}

	return newNode, false
}

func (n *hamtNode[V]) remove(hash uint32, key Symbol, shift uint) (*hamtNode[V], bool) {
	if shift >= 32 {
		// Collision bucket remove
		for i, node := range n.nodes {
			if entry, ok := node.(hamtEntry[V]); ok && entry.key == key {
				newNode := &hamtNode[V]{
					bitmap: n.bitmap,
					nodes:  make([]any, len(n.nodes)-1),
				}
				copy(newNode.nodes[:i], n.nodes[:i])
				copy(newNode.nodes[i:], n.nodes[i+1:])
				return newNode, true
			}
		}
		return n, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		return n, false // not present
	}

	pos := popcount(n.bitmap & (bit - 1))

	switch v := n.nodes[pos].(type) {
	case hamtEntry[V]:
		if v.hash != hash || v.key != key {
			return n, false
		}
		return n.without(pos, bit), true

	case *hamtNode[V]:
		newChild, removed := v.remove(hash, key, shift+hamtBits)
		if !removed {
			return n, false
		}

		if len(newChild.nodes) == 0 {
			return n.without(pos, bit), true
		}

		// A child left with a single entry is pulled up into this node.
		newNode := n.clone()
		if entry, ok := newChild.nodes[0].(hamtEntry[V]); ok && len(newChild.nodes) == 1 {
			newNode.nodes[pos] = entry
		} else {
			newNode.nodes[pos] = newChild
		}
		return newNode, true
	}

	return n, false
}

// without drops the slot at pos and clears its bitmap bit.
func (n *hamtNode[V]) without(pos int, bit uint32) *hamtNode[V] {
	newNode := &hamtNode[V]{
		bitmap: n.bitmap &^ bit,
		nodes:  make([]any, len(n.nodes)-1),
	}
	copy(newNode.nodes[:pos], n.nodes[:pos])
	copy(newNode.nodes[pos:], n.nodes[pos+1:])
	return newNode
}

func (n *hamtNode[V]) collectItems(items *[]Item[V]) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case hamtEntry[V]:
			*items = append(*items, Item[V]{Key: v.key, Value: v.value})
		case *hamtNode[V]:
			v.collectItems(items)
		}
	}
}

// --- Helper functions ---

func hashSymbol(s Symbol) uint32 {
	return hashString(string(s))
}

// popcount counts set bits
func popcount(x uint32) int {
	x = x - ((x >> 1) & 0x55555555)
	x = (x & 0x33333333) + ((x >> 2) & 0x33333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f
	x = x + (x >> 8)
	x = x + (x >> 16)
	return int(x & 0x3f)
}

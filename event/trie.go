package event

import (
	"sort"
)

// trie is a prefix tree keyed by kind then target, not goroutine safe. An
// empty key at any level matches everything at that level.
type trie struct {
	counter uint64
	root    *trieNode
}

type trieNode struct {
	subtrees map[string]*trieNode
	handlers map[uint64]Handler
}

type registered struct {
	id      uint64
	handler Handler
}

func newTrie() *trie {
	return &trie{
		root: newTrieNode(),
	}
}

func newTrieNode() *trieNode {
	return &trieNode{
		subtrees: make(map[string]*trieNode),
	}
}

func (t *trie) register(kind, target string, handler Handler) uint64 {
	return t.insert(t.root, []string{kind, target}, handler)
}

func (t *trie) insert(node *trieNode, toInsert []string, handler Handler) uint64 {
	insert := toInsert[0]

	nextNode, ok := node.subtrees[insert]
	if !ok {
		nextNode = newTrieNode()
		node.subtrees[insert] = nextNode
	}

	if len(toInsert) == 1 {
		if nextNode.handlers == nil {
			nextNode.handlers = make(map[uint64]Handler)
		}
		t.counter++
		nextNode.handlers[t.counter] = handler
		return t.counter
	}

	return t.insert(nextNode, toInsert[1:], handler)
}

// handlers returns everything registered for the kind and target in the
// order it was registered.
func (t *trie) handlers(kind, target string) []registered {
	var list []registered
	t.find(t.root, []string{kind, target}, &list)
	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })
	return list
}

func (t *trie) find(node *trieNode, toFind []string, list *[]registered) {
	if len(toFind) == 0 {
		for id, h := range node.handlers {
			*list = append(*list, registered{id: id, handler: h})
		}
		return
	}

	find := toFind[0]

	if nextNode, ok := node.subtrees[""]; ok {
		t.find(nextNode, toFind[1:], list)
	}

	// Untargeted events would otherwise find the wildcard twice.
	if len(find) == 0 {
		return
	}
	if nextNode, ok := node.subtrees[find]; ok {
		t.find(nextNode, toFind[1:], list)
	}
}

// count returns the number of handlers below the kind for any target.
func (t *trie) count(kind string) int {
	node, ok := t.root.subtrees[kind]
	if !ok {
		return 0
	}
	n := 0
	for _, sub := range node.subtrees {
		n += len(sub.handlers)
	}
	return n
}

func (t *trie) unregister(id uint64) bool {
	found, _ := t.unregisterHelper(t.root, id)
	return found
}

func (t *trie) unregisterHelper(node *trieNode, toFind uint64) (found, empty bool) {
	if _, ok := node.handlers[toFind]; ok {
		delete(node.handlers, toFind)
		return true, len(node.handlers) == 0 && len(node.subtrees) == 0
	}

	for k, n := range node.subtrees {
		f, e := t.unregisterHelper(n, toFind)
		if f {
			if e {
				delete(node.subtrees, k)
			}
			return true, len(node.subtrees) == 0 && len(node.handlers) == 0
		}
	}

	return false, false
}

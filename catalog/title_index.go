package catalog

import (
	"iter"
	"strings"
)

type titleNode struct {
	title string
	isbn  ISBNString
	left  *titleNode
	right *titleNode
}

// TitleIndex is an unbalanced binary search tree ordered by title.
//
// Nodes only hold the title and the ISBN of a book, the Book itself is always
// resolved through the BookIndex. Equal titles are routed to the right subtree,
// so several books with the same title (and different ISBNs) are kept.
type TitleIndex struct {
	root  *titleNode
	count int
}

// NewTitleIndex creates an empty TitleIndex.
func NewTitleIndex() *TitleIndex {
	return &TitleIndex{}
}

// Insert adds a (title, isbn) node. Ties are treated as greater-than.
func (ti *TitleIndex) Insert(title string, isbn ISBNString) {
	newNode := &titleNode{title: title, isbn: isbn}
	ti.count++

	if ti.root == nil {
		ti.root = newNode
		return
	}

	current := ti.root

	for {
		if strings.Compare(title, current.title) < 0 {
			if current.left == nil {
				current.left = newNode
				return
			}
			current = current.left
		} else {
			if current.right == nil {
				current.right = newNode
				return
			}
			current = current.right
		}
	}
}

// FindExact descends by comparison and returns the ISBN of the first node with exactly this title.
func (ti *TitleIndex) FindExact(title string) (ISBNString, bool) {
	current := ti.root

	for current != nil {
		switch cmp := strings.Compare(title, current.title); {
		case cmp == 0:
			return current.isbn, true
		case cmp < 0:
			current = current.left
		default:
			current = current.right
		}
	}

	return "", false
}

// Remove deletes the node holding exactly this title and ISBN.
// It returns false if no such node exists.
func (ti *TitleIndex) Remove(title string, isbn ISBNString) bool {
	var parent *titleNode
	current := ti.root

	// Equal titles live in the right subtree, so the search continues right on a title match with another ISBN.
	for current != nil && !(current.title == title && current.isbn == isbn) {
		parent = current
		if strings.Compare(title, current.title) < 0 {
			current = current.left
		} else {
			current = current.right
		}
	}

	if current == nil {
		return false
	}

	if current.left != nil && current.right != nil {
		// Replace with the in-order successor, then unlink the successor which has no left child.
		successorParent := current
		successor := current.right
		for successor.left != nil {
			successorParent = successor
			successor = successor.left
		}

		current.title = successor.title
		current.isbn = successor.isbn

		if successorParent == current {
			successorParent.right = successor.right
		} else {
			successorParent.left = successor.right
		}

		ti.count--

		return true
	}

	child := current.left
	if child == nil {
		child = current.right
	}

	switch {
	case parent == nil:
		ti.root = child
	case parent.left == current:
		parent.left = child
	default:
		parent.right = child
	}

	ti.count--

	return true
}

// InOrder yields the ISBNs in ascending title order. Books with equal titles appear in insertion order.
func (ti *TitleIndex) InOrder() iter.Seq[ISBNString] {
	return func(yield func(ISBNString) bool) {
		walkInOrder(ti.root, yield)
	}
}

func walkInOrder(node *titleNode, yield func(ISBNString) bool) bool {
	if node == nil {
		return true
	}

	if !walkInOrder(node.left, yield) {
		return false
	}

	if !yield(node.isbn) {
		return false
	}

	return walkInOrder(node.right, yield)
}

// Len returns the number of nodes.
func (ti *TitleIndex) Len() int {
	return ti.count
}

package catalog

import (
	"iter"
)

type userNode struct {
	user *User
	next *userNode
}

// UserRegistry is a singly linked list of users. New users are prepended,
// so the natural order is most recently registered first.
type UserRegistry struct {
	head   *userNode
	tail   *userNode
	count  int
	nextID UserIDInt
}

// NewUserRegistry creates an empty UserRegistry which will assign FirstUserID to the first user.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{nextID: FirstUserID}
}

// Add registers a new user under the next free id and prepends it to the list.
func (ur *UserRegistry) Add(name string) *User {
	user := &User{ID: ur.nextID, Name: name}
	ur.nextID++

	ur.head = &userNode{user: user, next: ur.head}
	if ur.tail == nil {
		ur.tail = ur.head
	}
	ur.count++

	return user
}

// Append adds an already identified user at the end of the list.
// It is used to restore users in their persisted order.
func (ur *UserRegistry) Append(user *User) error {
	if _, found := ur.Find(user.ID); found {
		return ErrDuplicateUserID
	}

	node := &userNode{user: user}
	if ur.tail == nil {
		ur.head = node
	} else {
		ur.tail.next = node
	}
	ur.tail = node
	ur.count++

	if user.ID >= ur.nextID {
		ur.nextID = user.ID + 1
	}

	return nil
}

// Find scans the list for the id.
func (ur *UserRegistry) Find(id UserIDInt) (*User, bool) {
	for node := ur.head; node != nil; node = node.next {
		if node.user.ID == id {
			return node.user, true
		}
	}

	return nil, false
}

// Remove unlinks the user.
//
// Errors:
//   - ErrUserNotFound if the id is not registered
//   - ErrHasBorrowedBooks if the user still holds at least one book
func (ur *UserRegistry) Remove(id UserIDInt) (*User, error) {
	var prev *userNode
	node := ur.head

	for node != nil && node.user.ID != id {
		prev = node
		node = node.next
	}

	if node == nil {
		return nil, ErrUserNotFound
	}

	if node.user.BorrowedCount() > 0 {
		return nil, ErrHasBorrowedBooks
	}

	if prev == nil {
		ur.head = node.next
	} else {
		prev.next = node.next
	}

	if ur.tail == node {
		ur.tail = prev
	}

	ur.count--

	return node.user, nil
}

// All yields the users in list order.
func (ur *UserRegistry) All() iter.Seq[*User] {
	return func(yield func(*User) bool) {
		for node := ur.head; node != nil; node = node.next {
			if !yield(node.user) {
				return
			}
		}
	}
}

// NextID returns the id the next registered user will get.
func (ur *UserRegistry) NextID() UserIDInt {
	return ur.nextID
}

// Len returns the number of users.
func (ur *UserRegistry) Len() int {
	return ur.count
}

package journal

import (
	"cmp"
	"slices"
)

type (
	FilterEntryTypeString = string
	FilterKeyString       = string
	FilterValString       = string
)

// Filter selects journal entries. An empty Filter matches every entry.
//
// The items of a Filter are combined with OR. Within an item, entry types are combined with OR
// and the result is combined with the predicates using AND. Predicates are combined with OR
// or AND depending on how the item was built.
type Filter struct {
	items              []FilterItem
	fromSequenceNumber SequenceNumberUint
}

// Items returns the items of the Filter.
func (f Filter) Items() []FilterItem {
	return f.items
}

// FromSequenceNumber returns the lowest sequence number an entry must have to match, zero means no bound.
func (f Filter) FromSequenceNumber() SequenceNumberUint {
	return f.fromSequenceNumber
}

// FilterItem is one OR branch of a Filter.
type FilterItem struct {
	entryTypes             []FilterEntryTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EntryTypes() []FilterEntryTypeString {
	return fi.entryTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) isEmpty() bool {
	return len(fi.entryTypes) == 0 && len(fi.predicates) == 0
}

// FilterPredicate matches a top-level string field of the payload.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P creates a FilterPredicate.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

// FilterBuilder builds a Filter item by item. The zero value is not usable, call BuildFilter.
type FilterBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildFilter starts a new Filter with one empty item.
func BuildFilter() *FilterBuilder {
	return &FilterBuilder{}
}

// MatchingAll returns the empty Filter.
func MatchingAll() Filter {
	return Filter{}
}

// OfTypes adds entry types to the current item. Empty types are dropped, the rest is sorted and deduplicated.
func (b *FilterBuilder) OfTypes(entryType FilterEntryTypeString, entryTypes ...FilterEntryTypeString) *FilterBuilder {
	all := append(slices.Clone(b.current.entryTypes), entryType)
	all = append(all, entryTypes...)
	all = slices.DeleteFunc(all, func(t FilterEntryTypeString) bool { return t == "" })
	slices.Sort(all)
	b.current.entryTypes = slices.Clip(slices.Compact(all))

	return b
}

// WithAnyPredicateOf adds predicates to the current item, any of them must match.
func (b *FilterBuilder) WithAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) *FilterBuilder {
	b.current.allPredicatesMustMatch = false
	b.current.predicates = sanitizePredicates(b.current.predicates, predicate, predicates...)

	return b
}

// WithAllPredicatesOf adds predicates to the current item, all of them must match.
func (b *FilterBuilder) WithAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) *FilterBuilder {
	b.current.allPredicatesMustMatch = true
	b.current.predicates = sanitizePredicates(b.current.predicates, predicate, predicates...)

	return b
}

// FromSequenceNumber restricts the whole Filter to entries at or after this sequence number.
func (b *FilterBuilder) FromSequenceNumber(sequenceNumber SequenceNumberUint) *FilterBuilder {
	b.filter.fromSequenceNumber = sequenceNumber

	return b
}

// Or closes the current item and starts a new one.
func (b *FilterBuilder) Or() *FilterBuilder {
	b.closeCurrent()

	return b
}

// Build closes the current item and returns the Filter. Items without types and predicates are dropped.
func (b *FilterBuilder) Build() Filter {
	b.closeCurrent()

	return Filter{
		items:              slices.Clone(b.filter.items),
		fromSequenceNumber: b.filter.fromSequenceNumber,
	}
}

func (b *FilterBuilder) closeCurrent() {
	if !b.current.isEmpty() {
		b.filter.items = append(b.filter.items, b.current)
	}

	b.current = FilterItem{}
}

func sanitizePredicates(existing []FilterPredicate, predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	all := append(slices.Clone(existing), predicate)
	all = append(all, predicates...)
	all = slices.DeleteFunc(all, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(all, func(a, b FilterPredicate) int {
		return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.val, b.val))
	})

	return slices.Clip(slices.Compact(all))
}

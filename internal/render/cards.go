package render

// Cards tracks the expanded state of each claim card. Cards start collapsed.
type Cards struct {
	expanded []bool
}

// NewCards returns collapsed state for n claim cards
func NewCards(n int) *Cards {
	return &Cards{expanded: make([]bool, n)}
}

// ExpandedCards returns state for n claim cards with every card expanded
func ExpandedCards(n int) *Cards {
	c := NewCards(n)
	for i := range c.expanded {
		c.expanded[i] = true
	}
	return c
}

// Toggle flips card i and returns its new state. Out of range indexes are ignored.
func (c *Cards) Toggle(i int) bool {
	if i < 0 || i >= len(c.expanded) {
		return false
	}
	c.expanded[i] = !c.expanded[i]
	return c.expanded[i]
}

// Expanded reports whether card i is expanded
func (c *Cards) Expanded(i int) bool {
	if c == nil || i < 0 || i >= len(c.expanded) {
		return false
	}
	return c.expanded[i]
}

// Len returns the number of cards
func (c *Cards) Len() int {
	if c == nil {
		return 0
	}
	return len(c.expanded)
}

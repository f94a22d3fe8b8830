// stack.go implements the tag-ancestry stack used to label output lines.
package flattag

// entry is one open tag: the name it was opened with and the label that
// is printed for it.
type entry struct {
	name  string
	label string
}

// tagStack holds the open tags, outermost first.
type tagStack struct {
	entries   []entry
	autoClose map[string]struct{}
}

func newTagStack(autoClose map[string]struct{}) *tagStack {
	return &tagStack{autoClose: autoClose}
}

// push opens a tag. An auto-close tag that is already open somewhere in
// the stack is closed first, along with everything opened after it.
// It reports how many entries were evicted that way.
func (s *tagStack) push(name, label string) int {
	evicted := 0
	if _, ok := s.autoClose[name]; ok && s.contains(name) {
		evicted, _ = s.popUntilMatch(name)
	}
	s.entries = append(s.entries, entry{name: name, label: label})
	return evicted
}

// popUntilMatch removes entries from the top down to and including the
// first one named name. Without a match the stack ends up empty; this is
// not an error. It returns the number of removed entries and whether a
// match was found.
func (s *tagStack) popUntilMatch(name string) (int, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].name == name {
			removed := len(s.entries) - i
			s.entries = s.entries[:i]
			return removed, true
		}
	}
	removed := len(s.entries)
	s.entries = s.entries[:0]
	return removed, false
}

func (s *tagStack) contains(name string) bool {
	for _, e := range s.entries {
		if e.name == name {
			return true
		}
	}
	return false
}

// labels returns the printed labels, outermost first.
func (s *tagStack) labels() []string {
	labels := make([]string, len(s.entries))
	for i, e := range s.entries {
		labels[i] = e.label
	}
	return labels
}

// names returns the open tag names, outermost first.
func (s *tagStack) names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

func (s *tagStack) len() int {
	return len(s.entries)
}

func (s *tagStack) reset() {
	s.entries = s.entries[:0]
}

package interactive

// IDStack shadows the toolkit's ID stack so that each value is drawn under
// the path of the backend that owns it, however the traversal interleaves
// backends of different depths. Frame i holds the name (and series entry, or
// -1) pushed for depth i.
//
// The root backend owns the stack and hands it to every child, so separate
// windows keep separate stacks.
type IDStack struct {
	tk      Toolkit
	names   []string
	entries []int
}

func newIDStack(tk Toolkit) *IDStack { return &IDStack{tk: tk} }

// Depth returns the number of frames on the stack.
func (s *IDStack) Depth() int { return len(s.names) }

// Path returns the frames as display strings, outermost first.
func (s *IDStack) Path() []string {
	out := make([]string, 0, len(s.names)*2)
	for i, n := range s.names {
		out = append(out, n)
		if s.entries[i] != noEntry {
			out = append(out, itoa(s.entries[i]))
		}
	}
	return out
}

func (s *IDStack) pushFrame(name string, entry int) {
	s.tk.PushID(name)
	if entry != noEntry {
		s.tk.PushIntID(entry)
	}
	s.names = append(s.names, name)
	s.entries = append(s.entries, entry)
}

func (s *IDStack) popFrame() {
	n := len(s.names) - 1
	if s.entries[n] != noEntry {
		s.tk.PopID()
	}
	s.tk.PopID()
	s.names = s.names[:n]
	s.entries = s.entries[:n]
}

// enter makes the frame at depth match (name, entry), popping anything deeper
// and replacing what differs.
func (s *IDStack) enter(depth int, name string, entry int) {
	for len(s.names) > depth+1 {
		s.popFrame()
	}
	switch {
	case len(s.names) == depth+1:
		if s.names[depth] != name {
			s.popFrame()
			s.pushFrame(name, entry)
			return
		}
		if s.entries[depth] != entry {
			if s.entries[depth] != noEntry {
				s.tk.PopID()
			}
			if entry != noEntry {
				s.tk.PushIntID(entry)
			}
			s.entries[depth] = entry
		}
	default:
		// Parents always enter before their children, so at most one frame
		// is missing.
		for len(s.names) < depth {
			s.pushFrame("", noEntry)
		}
		s.pushFrame(name, entry)
	}
}

func (s *IDStack) clear() {
	for len(s.names) > 0 {
		s.popFrame()
	}
}

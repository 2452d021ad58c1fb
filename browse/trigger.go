package browse

// Trigger watches the sentinel at the end of the rendered list and asks the
// List for the next page when the sentinel becomes visible. It reacts to
// edges only: a sentinel that stays visible does not fire again until it has
// been reported hidden.
type Trigger struct {
	attached bool
	visible  bool
}

// NewTrigger returns an attached Trigger.
func NewTrigger() *Trigger {
	return &Trigger{attached: true}
}

// Observe reports the current sentinel visibility. On a hidden→visible
// transition it requests the next page, provided the session is a listing
// with more pages and nothing in flight.
func (t *Trigger) Observe(visible bool, l *List) (PageRequest, bool) {
	if !t.attached || l == nil {
		return PageRequest{}, false
	}
	was := t.visible
	t.visible = visible
	if !visible || was {
		return PageRequest{}, false
	}
	if !l.HasMore() || l.Loading() || l.Mode().IsSearch() {
		return PageRequest{}, false
	}
	return l.LoadNext()
}

// Reset forgets the last visibility so the next visible report counts as a
// new edge. Call it after the list content was replaced.
func (t *Trigger) Reset() { t.visible = false }

// Detach stops observation; Observe is a no-op until Attach.
func (t *Trigger) Detach() {
	t.attached = false
	t.visible = false
}

// Attach resumes observation.
func (t *Trigger) Attach() { t.attached = true }

// Attached reports whether the trigger is observing.
func (t *Trigger) Attached() bool { return t.attached }

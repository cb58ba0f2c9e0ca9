package state

// Cursor movement never rests on a disabled entry when an enabled one is
// reachable: a placeholder like "No checkpoints" or the greyed
// "Trusted Notebook" is shown but cannot be chosen.

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// settle returns the enabled index nearest to pos, searching in the
// direction of dir first. It returns pos when every item is disabled.
func (l *Level) settle(pos, dir int) int {
	if dir == 0 {
		dir = 1
	}
	for _, step := range []int{dir, -dir} {
		for i := pos; i >= 0 && i < len(l.Items); i += step {
			if !l.Items[i].Disabled {
				return i
			}
		}
	}
	return pos
}

// jump moves the cursor to target, settled onto an enabled item, and
// reports whether it moved.
func (l *Level) jump(target, dir int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	next := l.settle(clamp(target, 0, len(l.Items)-1), dir)
	if next == l.Cursor {
		return false
	}
	l.Cursor = next
	return true
}

// MoveCursorHome moves the cursor to the first enabled item.
func (l *Level) MoveCursorHome() bool {
	return l.jump(0, 1)
}

// MoveCursorEnd moves the cursor to the last enabled item.
func (l *Level) MoveCursorEnd() bool {
	return l.jump(len(l.Items)-1, -1)
}

// MoveCursor steps delta enabled items up or down. The cursor stays put
// when no enabled item lies in that direction.
func (l *Level) MoveCursor(delta int) bool {
	if len(l.Items) == 0 || delta == 0 {
		l.Cursor = 0
		return false
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	target := -1
	pos := clamp(l.Cursor, 0, len(l.Items)-1)
	for remaining := delta * step; remaining > 0; {
		pos += step
		if pos < 0 || pos >= len(l.Items) {
			break
		}
		if !l.Items[pos].Disabled {
			target = pos
			remaining--
		}
	}
	if target < 0 || target == l.Cursor {
		return false
	}
	l.Cursor = target
	return true
}

// MoveCursorPageUp moves the cursor up one page of maxVisible rows.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.jump(clamp(l.Cursor, 0, len(l.Items))-l.pageSize(maxVisible), -1)
}

// MoveCursorPageDown moves the cursor down one page of maxVisible rows.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.jump(clamp(l.Cursor, 0, len(l.Items))+l.pageSize(maxVisible), 1)
}

func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		maxVisible = len(l.Items)
	}
	return clamp(maxVisible, 1, maxVisible)
}

// EnsureCursorVisible scrolls the viewport the least amount that keeps
// the cursor inside a window of maxVisible rows.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, n-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := clamp(l.ViewportOffset, 0, maxOffset)
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+maxVisible:
		offset = l.Cursor - maxVisible + 1
	}
	l.ViewportOffset = clamp(offset, 0, maxOffset)
}

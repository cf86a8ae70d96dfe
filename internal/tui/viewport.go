package tui

import "fmt"

// viewport is the scroll window of a list view. It is rebuilt per render
// from the terminal height and clamps itself around the cursor, so the
// selected row is always on screen.
type viewport struct {
	offset int
	height int
}

// listViewport sizes a viewport for the main list area, leaving room for
// the header, content border, status line and breadcrumb.
func (m Model) listViewport() viewport {
	h := m.height - 12
	if h < 10 {
		h = 10
	}
	return viewport{height: h}
}

// window clamps the offset to keep the selected index visible and returns
// the half-open range of rows to draw.
func (v *viewport) window(selected, listLength int) (int, int) {
	if listLength == 0 || v.height <= 0 {
		return 0, 0
	}
	if selected < v.offset {
		v.offset = selected
	} else if selected >= v.offset+v.height {
		v.offset = selected - v.height + 1
	}
	maxOffset := listLength - v.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}

	end := v.offset + v.height
	if end > listLength {
		end = listLength
	}
	return v.offset, end
}

// indicator returns the scroll position line, or "" when the whole list is
// already on screen.
func (v viewport) indicator(start, end, listLength int) string {
	if start == 0 && end == listLength {
		return ""
	}
	return dimStyle.Render(fmt.Sprintf("\n[Showing %d-%d of %d]", start+1, end, listLength))
}

// truncate shortens a string to the given width with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

package list

// Cursor tracks the selected row of a list and the window of rows on screen.
type Cursor struct {
	selected int
	offset   int
	count    int
	visible  int
}

// NewCursor creates a cursor showing visible rows at a time.
func NewCursor(visible int) *Cursor {
	c := &Cursor{}
	c.SetVisible(visible)
	return c
}

// Reset points the cursor at the first of count rows.
func (c *Cursor) Reset(count int) {
	c.count = count
	c.selected = 0
	c.offset = 0
}

// SetCount changes the row count, keeping the selection in range.
func (c *Cursor) SetCount(count int) {
	c.count = count
	if c.selected >= count {
		c.selected = count - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
	c.follow()
}

// SetVisible sets how many rows fit on screen.
func (c *Cursor) SetVisible(visible int) {
	if visible < 1 {
		visible = 1
	}
	c.visible = visible
	c.follow()
}

func (c *Cursor) Up() {
	if c.selected > 0 {
		c.selected--
		c.follow()
	}
}

func (c *Cursor) Down() {
	if c.selected < c.count-1 {
		c.selected++
		c.follow()
	}
}

// Select moves to index when it is in range.
func (c *Cursor) Select(index int) {
	if index >= 0 && index < c.count {
		c.selected = index
		c.follow()
	}
}

func (c *Cursor) Selected() int { return c.selected }

// Window returns the half-open range of rows to draw.
func (c *Cursor) Window() (start, end int) {
	end = c.offset + c.visible
	if end > c.count {
		end = c.count
	}
	return c.offset, end
}

// follow scrolls the window so the selection stays on screen.
func (c *Cursor) follow() {
	if c.selected < c.offset {
		c.offset = c.selected
	} else if c.selected >= c.offset+c.visible {
		c.offset = c.selected - c.visible + 1
	}
}

package state

// Cursor tracks the selected row of a list and the first row shown on screen.
type Cursor struct {
	Index  int
	Offset int
}

// Reset moves the cursor back to the top of the list.
func (c *Cursor) Reset() {
	c.Index = 0
	c.Offset = 0
}

// MoveUp moves the cursor one row up.
func (c *Cursor) MoveUp() bool {
	if c.Index <= 0 {
		c.Index = 0
		return false
	}
	c.Index--
	return true
}

// MoveDown moves the cursor one row down within a list of n items.
func (c *Cursor) MoveDown(n int) bool {
	return c.moveBy(1, n)
}

// MoveHome moves the cursor to the first item.
func (c *Cursor) MoveHome() bool {
	old := c.Index
	c.Index = 0
	return old != c.Index
}

// MoveEnd moves the cursor to the last of n items.
func (c *Cursor) MoveEnd(n int) bool {
	if n <= 0 {
		c.Index = 0
		return false
	}
	old := c.Index
	c.Index = n - 1
	return old != c.Index
}

// MovePageUp moves the cursor up by one page of visible rows.
func (c *Cursor) MovePageUp(n, visible int) bool {
	return c.moveBy(-pageSize(n, visible), n)
}

// MovePageDown moves the cursor down by one page of visible rows.
func (c *Cursor) MovePageDown(n, visible int) bool {
	return c.moveBy(pageSize(n, visible), n)
}

func (c *Cursor) moveBy(delta, n int) bool {
	if n <= 0 {
		c.Index = 0
		return false
	}
	old := c.Index
	c.Index += delta
	c.Clamp(n)
	return c.Index != old
}

func pageSize(n, visible int) int {
	if n <= 0 {
		return 0
	}
	size := visible
	if size <= 0 || size > n {
		size = n
	}
	return size
}

// Clamp keeps the index inside [0, n). An empty list pins it to 0.
func (c *Cursor) Clamp(n int) {
	if n <= 0 {
		c.Index = 0
		c.Offset = 0
		return
	}
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index >= n {
		c.Index = n - 1
	}
}

// EnsureVisible clamps the cursor to n items and adjusts the offset so that
// Offset <= Index < Offset+visible.
func (c *Cursor) EnsureVisible(n, visible int) {
	c.Clamp(n)
	if n <= 0 || visible <= 0 {
		c.Offset = 0
		return
	}
	maxOffset := n - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.Offset > maxOffset {
		c.Offset = maxOffset
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	if c.Index < c.Offset {
		c.Offset = c.Index
	}
	if c.Index >= c.Offset+visible {
		c.Offset = c.Index - visible + 1
	}
}

// Window returns the half-open range of rows to draw for n items.
func (c Cursor) Window(n, visible int) (start, end int) {
	if n <= 0 || visible <= 0 {
		return 0, 0
	}
	start = c.Offset
	if start > n {
		start = n
	}
	end = start + visible
	if end > n {
		end = n
	}
	return start, end
}

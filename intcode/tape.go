package intcode

// MaxMemory is the largest tape a machine may grow to, in cells. It bounds
// machines created without WithMemoryLimit and caps larger limits.
const MaxMemory = 1 << 28

// tape is the machine's growable memory. Reads and writes past the end
// zero-extend it to the requested address; it never shrinks.
type tape struct {
	cells []int64
	limit int64 // maximum number of cells, 0 for MaxMemory
}

func newTape(program []int64, limit int64) tape {
	cells := make([]int64, len(program))
	copy(cells, program)
	return tape{cells: cells, limit: limit}
}

func (t *tape) len() int64 {
	return int64(len(t.cells))
}

// ensure grows the tape so that addr is a valid index.
func (t *tape) ensure(addr int64) error {
	if addr < 0 {
		return ErrNegativeAddress
	}
	if addr < int64(len(t.cells)) {
		return nil
	}
	limit := t.limit
	if limit <= 0 || limit > MaxMemory {
		limit = MaxMemory
	}
	if addr >= limit {
		return ErrMemoryLimit
	}
	n := int(addr) + 1
	if n <= cap(t.cells) {
		// Cells between len and cap were never written, so they are still zero.
		t.cells = t.cells[:n]
		return nil
	}
	grown := make([]int64, n, growCap(cap(t.cells), n))
	copy(grown, t.cells)
	t.cells = grown
	return nil
}

func (t *tape) read(addr int64) (int64, error) {
	if err := t.ensure(addr); err != nil {
		return 0, err
	}
	return t.cells[addr], nil
}

func (t *tape) write(addr, value int64) error {
	if err := t.ensure(addr); err != nil {
		return err
	}
	t.cells[addr] = value
	return nil
}

// peek reads without growing; cells past the end read as zero.
func (t *tape) peek(addr int64) (int64, error) {
	if addr < 0 {
		return 0, ErrNegativeAddress
	}
	if addr >= int64(len(t.cells)) {
		return 0, nil
	}
	return t.cells[addr], nil
}

func (t *tape) clone() tape {
	cells := make([]int64, len(t.cells))
	copy(cells, t.cells)
	return tape{cells: cells, limit: t.limit}
}

// growCap doubles small tapes and grows large ones by a quarter.
func growCap(old, need int) int {
	c := old
	if c < 64 {
		c = 64
	}
	for c < need {
		if c < 4096 {
			c *= 2
		} else {
			c += c / 4
		}
	}
	return c
}

package layout

// Shift moves every block from block From onwards by Delta rows. It
// records template irregularities, such as a hidden row inserted between
// two project sections.
type Shift struct {
	From  int
	Delta int
}

// SectionLayout describes a section that repeats once per project (or per
// indicator) at a fixed stride down a sheet.
type SectionLayout struct {
	// Start is the 0-based grid row of the first block.
	Start int

	// Stride is the number of rows between two blocks.
	Stride int

	// Count is the capacity of the section in the template. Zero means
	// the number of blocks is given by the data, usually the number of
	// projects.
	Count int

	// Shifts are irregular offsets applied on top of the stride.
	Shifts []Shift
}

// Block returns the 0-based grid row where block n (0-based) starts.
func (s SectionLayout) Block(n int) int {
	row := s.Start + s.Stride*n
	for _, sh := range s.Shifts {
		if n >= sh.From {
			row += sh.Delta
		}
	}
	return row
}

// Number returns the 1-based number of the block that contains the given
// 1-based spreadsheet row. Rows above the first block give 0.
func (s SectionLayout) Number(row int) int {
	grid := row - 1
	if s.Stride <= 0 || grid < s.Block(0) {
		return 0
	}
	n := 0
	for s.Count == 0 || n+1 < s.Count {
		if s.Block(n+1) > grid {
			break
		}
		n++
	}
	return n + 1
}

// Rows returns grid rows of n blocks.
func (s SectionLayout) Rows(n int) []int {
	res := make([]int, n)
	for i := range n {
		res[i] = s.Block(i)
	}
	return res
}

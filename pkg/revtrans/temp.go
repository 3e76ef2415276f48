package revtrans

import "fmt"

// TempAllocator hands out "tempN" names from a monotonic counter, reusing
// the lowest-numbered freed slot first (asm_translator.py's TempManager:
// "monotonic pool, first-fit free-slot reuse").
type TempAllocator struct {
	next int
	free []int
}

// NewTempAllocator creates an empty allocator.
func NewTempAllocator() *TempAllocator { return &TempAllocator{} }

// Alloc returns a fresh temp name, reusing a freed slot when one exists.
func (a *TempAllocator) Alloc() string {
	if len(a.free) > 0 {
		// first-fit: always reuse the smallest freed index
		minIdx := 0
		for i, v := range a.free {
			if v < a.free[minIdx] {
				minIdx = i
			}
		}
		n := a.free[minIdx]
		a.free = append(a.free[:minIdx], a.free[minIdx+1:]...)
		return tempName(n)
	}
	n := a.next
	a.next++
	return tempName(n)
}

// Free releases a temp slot for reuse. name must have been returned by
// Alloc; a non-temp name is ignored.
func (a *TempAllocator) Free(name string) {
	var n int
	if _, err := fmt.Sscanf(name, "temp%d", &n); err != nil {
		return
	}
	a.free = append(a.free, n)
}

func tempName(n int) string { return fmt.Sprintf("temp%d", n) }

package interests

import "strconv"

const (
	PageSize = 6
	// Delta is how many neighbours of the current page are labelled.
	Delta = 2
)

// TotalPages returns ceil(n/size), and 0 for an empty list.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage keeps page within [1, total]. With no pages it returns 1.
func ClampPage(page, total int) int {
	if total < 1 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Paginate returns the 1-based page of items. Out-of-range pages are empty.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// Label is one entry of the page selector. Ellipsis labels have Page == 0
// and cannot be selected.
type Label struct {
	Page     int
	Ellipsis bool
	Current  bool
}

func (l Label) String() string {
	if l.Ellipsis {
		return "..."
	}
	return strconv.Itoa(l.Page)
}

// PageLabels lists the page selector for current of total pages: the first
// and last page always, up to delta pages either side of current, and a
// single ellipsis wherever shown numbers are not adjacent.
func PageLabels(current, total, delta int) []Label {
	if total < 1 {
		return nil
	}
	current = ClampPage(current, total)

	pages := []int{1}
	for p := max(2, current-delta); p <= min(total-1, current+delta); p++ {
		pages = append(pages, p)
	}
	if total > 1 {
		pages = append(pages, total)
	}

	labels := make([]Label, 0, len(pages)+2)
	prev := 0
	for _, p := range pages {
		if prev != 0 && p-prev > 1 {
			labels = append(labels, Label{Ellipsis: true})
		}
		labels = append(labels, Label{Page: p, Current: p == current})
		prev = p
	}
	return labels
}

package state

// Ellipsis marks a gap in a PageWindow.
const Ellipsis = 0

// windowDelta is how many pages are shown on each side of the current page.
const windowDelta = 2

// PageWindow returns the page numbers a pager should show: the first and last
// page, the pages within two of current, and Ellipsis where pages are skipped.
func PageWindow(current, total int) []int {
	if total < 1 {
		total = 1
	}
	current = clampPage(current, total)

	pages := []int{1}
	if current-windowDelta > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := max(2, current-windowDelta); i <= min(total-1, current+windowDelta); i++ {
		pages = append(pages, i)
	}
	if current+windowDelta < total-1 {
		pages = append(pages, Ellipsis)
	}
	if total > 1 {
		pages = append(pages, total)
	}
	return pages
}

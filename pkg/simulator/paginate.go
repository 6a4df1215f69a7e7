package simulator

import "github.com/mesh-intelligence/contactsim/pkg/types"

// Paginate splits items into consecutive pages of at most size elements,
// preserving order. Empty input yields no pages.
// Returns ErrPageSizeInvalid if size is not positive.
func Paginate[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, types.ErrPageSizeInvalid
	}
	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages, nil
}

// paginateAtLeastOne is Paginate for retrieval endpoints, which answer an
// empty collection with a single empty page.
func paginateAtLeastOne[T any](items []T, size int) ([][]T, error) {
	pages, err := Paginate(items, size)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		pages = append(pages, []T{})
	}
	return pages, nil
}

// Package selection parses user-supplied page lists and resolves them
// against a document's page count.
package selection

import (
	"strconv"
	"strings"
)

// ParsePageList parses a comma-separated list of 1-based page numbers like
// "1,3,10". Empty tokens are skipped; a token that is not an integer, or a
// list with no usable tokens at all, is rejected.
func ParsePageList(raw string) ([]int, error) {
	var pages []int
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		page, err := strconv.Atoi(token)
		if err != nil {
			return nil, &InvalidPageListError{Input: raw, Message: "page number is not an integer: " + strconv.Quote(token), Cause: err}
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, &InvalidPageListError{Input: raw, Message: "no pages named"}
	}
	return pages, nil
}

// Select resolves a 1-based page list against totalPages. It returns the
// surviving pages as 0-based indices, preserving caller order and
// duplicates, plus the 1-based pages that fell outside the document.
func Select(raw string, totalPages int) (indices []int, skipped []int, err error) {
	pages, err := ParsePageList(raw)
	if err != nil {
		return nil, nil, err
	}

	for _, page := range pages {
		if page < 1 || page > totalPages {
			skipped = append(skipped, page)
			continue
		}
		indices = append(indices, page-1)
	}
	return indices, skipped, nil
}

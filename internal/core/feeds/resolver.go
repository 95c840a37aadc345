package feeds

import (
	"fmt"
	"strings"

	"Quotable/internal/core/quotes"
)

// ResolveQuery validates a requested filter+sort combination and produces the
// immutable query descriptor consumed by the pagination engine.
// Omitted values default to the unfiltered shuffled feed; invalid values fail
// with a validation error naming the offending field.
func ResolveQuery(filterType, author, sort string) (QueryDescriptor, error) {
	var descriptor QueryDescriptor

	if filterType == "" {
		filterType = string(FilterAll)
	}
	if sort == "" {
		sort = string(SortDefault)
	}

	switch FilterKind(filterType) {
	case FilterAll, FilterLikes, FilterDislikes:
		descriptor.Filter = Filter{Kind: FilterKind(filterType)}
	case FilterAuthor:
		trimmed := strings.TrimSpace(author)
		if trimmed == "" {
			return QueryDescriptor{}, quotes.NewValidationError("author", "author filter cannot be empty")
		}
		if len([]rune(trimmed)) > quotes.MaxAuthorLength {
			return QueryDescriptor{}, quotes.NewValidationError("author",
				fmt.Sprintf("author filter is too long (max %d characters)", quotes.MaxAuthorLength))
		}
		descriptor.Filter = Filter{Kind: FilterAuthor, Author: trimmed}
	default:
		return QueryDescriptor{}, quotes.NewValidationError("filter", fmt.Sprintf("invalid filter type %q", filterType))
	}

	switch SortKind(sort) {
	case SortNew, SortOld, SortMost, SortLeast, SortDefault:
		descriptor.Sort = SortKind(sort)
	default:
		return QueryDescriptor{}, quotes.NewValidationError("sort", fmt.Sprintf("invalid sort option %q", sort))
	}

	return descriptor, nil
}

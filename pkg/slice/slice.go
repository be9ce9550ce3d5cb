// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the two
generic helpers the listing code needs: Map for turning entities into views
and Filter for in-memory queries.
*/
package slice

// Map returns transform applied to every element of input, in order.
//
// A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns the elements of input for which predicate is true.
//
// The result is never nil, so an empty match still serializes as [].
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

package cst

import "errors"

// WalkFunc is called for each view visited by Walk.
// Return SkipChildren to skip a node's children, or any other non-nil error
// to stop the walk.
type WalkFunc func(v View) error

// SkipChildren may be returned by a WalkFunc to prune the current subtree.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // sentinel, not a failure

// Walk performs a pre-order traversal of the subtree at v, tokens included.
func Walk(v View, fn WalkFunc) error {
	if v.IsZero() {
		return nil
	}
	if err := fn(v); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for child := range v.All() {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns the views below v, v included, matching predicate.
func FindAll(v View, predicate func(View) bool) []View {
	var result []View

	//nolint:errcheck // the callback never fails
	Walk(v, func(w View) error {
		if predicate(w) {
			result = append(result, w)
		}
		return nil
	})

	return result
}

// FindNodes returns every node of the given kind below v.
func FindNodes(v View, kind NodeKind) []View {
	return FindAll(v, func(w View) bool { return w.IsNode(kind) })
}

// FindTokens returns every token of the given kind below v.
func FindTokens(v View, kind TokenKind) []View {
	return FindAll(v, func(w View) bool { return w.IsToken(kind) })
}

// TokenAt returns the token containing byte offset.
func TokenAt(v View, offset int) (View, bool) {
	start, end := v.Range()
	if offset < start || offset >= end {
		return View{}, false
	}
	if _, ok := v.Token(); ok {
		return v, true
	}
	for child := range v.All() {
		if s, e := child.Range(); offset >= s && offset < e {
			return TokenAt(child, offset)
		}
	}
	return View{}, false
}

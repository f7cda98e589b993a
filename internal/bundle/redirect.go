package bundle

import "strings"

// Redirect signal types observed in redirect-tree nodes.
const (
	SignalJS      = "js"
	SignalMeta    = "meta"
	SignalRefresh = "refresh"
)

// RedirectScan is the /redirect/ payload: a tree of followed redirects
// with per-node signals.
type RedirectScan struct {
	Tree    *RedirectNode `json:"tree"`
	Visited int           `json:"visited"`
}

type RedirectNode struct {
	URL      string           `json:"url"`
	Signals  []RedirectSignal `json:"signals"`
	Children []*RedirectNode  `json:"children"`
}

type RedirectSignal struct {
	Type string `json:"type"`
}

// SignalCounts tallies js/meta/refresh signal occurrences across the
// whole tree and returns the node count alongside.
func (s *RedirectScan) SignalCounts() (js, meta, refresh, nodes int) {
	if s == nil || s.Tree == nil {
		return 0, 0, 0, 0
	}
	var walk func(n *RedirectNode)
	walk = func(n *RedirectNode) {
		if n == nil {
			return
		}
		nodes++
		for _, sig := range n.Signals {
			switch strings.ToLower(sig.Type) {
			case SignalJS:
				js++
			case SignalMeta:
				meta++
			case SignalRefresh:
				refresh++
			}
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(s.Tree)
	return js, meta, refresh, nodes
}

// HasSuspiciousSignal walks the tree depth-first and reports whether any
// node carries a js, meta, or refresh signal. Short-circuits on the
// first hit.
func (s *RedirectScan) HasSuspiciousSignal() bool {
	if s == nil || s.Tree == nil {
		return false
	}
	var walk func(n *RedirectNode) bool
	walk = func(n *RedirectNode) bool {
		if n == nil {
			return false
		}
		for _, sig := range n.Signals {
			switch strings.ToLower(sig.Type) {
			case SignalJS, SignalMeta, SignalRefresh:
				return true
			}
		}
		for _, child := range n.Children {
			if walk(child) {
				return true
			}
		}
		return false
	}
	return walk(s.Tree)
}

// NodeCount returns the visited count reported by the provider, falling
// back to the actual tree size when the field is absent.
func (s *RedirectScan) NodeCount() int {
	if s == nil {
		return 0
	}
	if s.Visited > 0 {
		return s.Visited
	}
	_, _, _, nodes := s.SignalCounts()
	return nodes
}

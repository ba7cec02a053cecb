// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inspection

// Paginator is the wizard state machine over a template's sections.
// Navigation is strictly sequential: no skip-ahead, no jump-to-section.
// The index stays within [0, count-1]; Next at the last section and
// Previous at the first are no-ops.
type Paginator struct {
	index int
	count int
}

func NewPaginator(count int) Paginator {
	return Paginator{count: count}
}

// Next advances one section and returns the new index.
func (p *Paginator) Next() int {
	if p.index < p.count-1 {
		p.index++
	}
	return p.index
}

// Previous steps back one section and returns the new index.
func (p *Paginator) Previous() int {
	if p.index > 0 {
		p.index--
	}
	return p.index
}

func (p *Paginator) Index() int { return p.index }

func (p *Paginator) Count() int { return p.count }

// AtEnd reports whether the paginator is on the last section, the only
// state from which submission is reachable.
func (p *Paginator) AtEnd() bool {
	return p.index >= p.count-1
}

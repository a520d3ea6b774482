package toc

import "github.com/dgallion1/inkpost/internal/doctree"

// container is an open list in the outline under construction. owner is nil
// for the root list.
type container struct {
	owner *doctree.OutlineNode
	level int
}

// Build turns a heading sequence into an outline.
//
// Headings deeper than the open list open exactly one nested list under the
// last entry, whatever the jump. Shallower headings close lists until the
// open list is at most their level. Skipped levels get no placeholder entries.
// A heading always nests under the most recent shallower heading, so after a
// jump (2, 4, 3) the h3 lands under the h2 rather than at the top level.
func Build(headings []doctree.Heading) *doctree.Outline {
	root := &doctree.Outline{}
	stack := []container{{level: MinLevel}}

	children := func(c container) *[]*doctree.OutlineNode {
		if c.owner == nil {
			return &root.Children
		}
		return &c.owner.Children
	}

	for _, h := range headings {
		// Close deeper lists. The root list is never closed.
		for len(stack) > 1 && stack[len(stack)-1].level > h.Level {
			stack = stack[:len(stack)-1]
		}

		top := &stack[len(stack)-1]
		switch {
		case h.Level > top.level:
			list := *children(*top)
			if len(list) > 0 {
				stack = append(stack, container{owner: list[len(list)-1], level: h.Level})
			} else {
				// Nothing to nest under yet: stay in this list at the new depth.
				top.level = h.Level
			}
		case h.Level < top.level:
			top.level = h.Level
		}

		top = &stack[len(stack)-1]
		list := children(*top)
		*list = append(*list, &doctree.OutlineNode{
			Label:  h.Text,
			Target: h.ID,
			Level:  h.Level,
		})
	}
	return root
}

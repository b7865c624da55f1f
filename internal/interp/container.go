package interp

import "strings"

// Container holds the namespace an expression was declared in and
// computes candidate resolution names for identifiers. For container
// "a.b.c" and reference "x.y" the candidates are "a.b.c.x.y",
// "a.b.x.y", "a.x.y", and "x.y", most specific first; the longest
// bound prefix wins at resolution time.
type Container struct {
	name string
}

// NewContainer creates a container for the given namespace; the empty
// name is the root container.
func NewContainer(name string) *Container {
	return &Container{name: name}
}

// Name returns the container's namespace name.
func (c *Container) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// ResolveCandidateNames returns the candidate names for an identifier,
// most specific first. A leading dot pins the name to the root
// namespace.
func (c *Container) ResolveCandidateNames(name string) []string {
	if strings.HasPrefix(name, ".") {
		return []string{name[1:]}
	}
	if c.Name() == "" {
		return []string{name}
	}
	nextCont := c.name
	candidates := []string{nextCont + "." + name}
	for i := strings.LastIndex(nextCont, "."); i >= 0; i = strings.LastIndex(nextCont, ".") {
		nextCont = nextCont[:i]
		candidates = append(candidates, nextCont+"."+name)
	}
	return append(candidates, name)
}

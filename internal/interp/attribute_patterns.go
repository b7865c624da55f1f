package interp

import (
	"fmt"
	"strings"
)

// AttributePattern names a variable plus a qualifier path, possibly
// with wildcards, that a partial activation declares unknown. The
// pattern "headers.auth.*" marks every attribute beneath headers.auth
// as unknown while leaving the rest of headers resolvable.
type AttributePattern struct {
	variable   string
	qualifiers []*qualifierPattern
}

type qualifierPattern struct {
	wildcard bool
	value    any // bool | int64 | uint64 | string
}

// NewAttributePattern creates a pattern rooted at the variable name.
func NewAttributePattern(variable string) *AttributePattern {
	return &AttributePattern{variable: variable}
}

// QualString appends a string-keyed qualifier match.
func (p *AttributePattern) QualString(s string) *AttributePattern {
	p.qualifiers = append(p.qualifiers, &qualifierPattern{value: s})
	return p
}

// QualInt appends an int-keyed qualifier match.
func (p *AttributePattern) QualInt(i int64) *AttributePattern {
	p.qualifiers = append(p.qualifiers, &qualifierPattern{value: i})
	return p
}

// QualUint appends a uint-keyed qualifier match.
func (p *AttributePattern) QualUint(u uint64) *AttributePattern {
	p.qualifiers = append(p.qualifiers, &qualifierPattern{value: u})
	return p
}

// QualBool appends a bool-keyed qualifier match.
func (p *AttributePattern) QualBool(b bool) *AttributePattern {
	p.qualifiers = append(p.qualifiers, &qualifierPattern{value: b})
	return p
}

// Wildcard appends a qualifier match for any key.
func (p *AttributePattern) Wildcard() *AttributePattern {
	p.qualifiers = append(p.qualifiers, &qualifierPattern{wildcard: true})
	return p
}

// VariableMatches reports whether the pattern is rooted at the
// variable name.
func (p *AttributePattern) VariableMatches(variable string) bool {
	return p.variable == variable
}

// matchesPath reports whether the pattern covers the given resolved
// key path: every pattern qualifier must match the corresponding key,
// and the path must be at least as long as the pattern.
func (p *AttributePattern) matchesPath(keys []any) bool {
	if len(keys) < len(p.qualifiers) {
		return false
	}
	for i, qp := range p.qualifiers {
		if qp.wildcard {
			continue
		}
		if qp.value != keys[i] {
			return false
		}
	}
	return true
}

func (p *AttributePattern) String() string {
	var sb strings.Builder
	sb.WriteString(p.variable)
	for _, qp := range p.qualifiers {
		if qp.wildcard {
			sb.WriteString(".*")
		} else {
			sb.WriteString(fmt.Sprintf(".%v", qp.value))
		}
	}
	return sb.String()
}

// ParseAttributePattern builds a pattern from its dotted string form,
// e.g. "headers.auth.*". Segments are matched as string keys; a lone
// '*' segment is a wildcard.
func ParseAttributePattern(s string) (*AttributePattern, error) {
	parts := strings.Split(s, ".")
	if len(parts) == 0 || parts[0] == "" || parts[0] == "*" {
		return nil, fmt.Errorf("invalid attribute pattern: %q", s)
	}
	p := NewAttributePattern(parts[0])
	for _, seg := range parts[1:] {
		switch seg {
		case "":
			return nil, fmt.Errorf("invalid attribute pattern: %q", s)
		case "*":
			p.Wildcard()
		default:
			p.QualString(seg)
		}
	}
	return p, nil
}

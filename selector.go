package celadon

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Node is anything a selector can be matched against: widgets, pages, the
// application and the terminal.
type Node interface {
	TypeName() string
	ID() string
	Groups() []string
	State() string
	ParentNode() Node
}

// terminalProvider is implemented by the node at the top of a tree that
// knows which terminal it draws to.
type terminalProvider interface {
	TerminalNode() Node
}

// Selector scores how well a node matches a query such as
// "Tower > Button#submit.primary/hover|active".
type Selector struct {
	Query    string
	Elements []string
	ID       string
	Groups   []string

	// States is nil when the query has no state suffix.
	States []string

	DirectParent   *Selector
	IndirectParent *Selector

	// ForcedScore replaces the computed score of a successful match.
	ForcedScore int

	universal bool
}

type selectorKey struct {
	query string
	score int
}

var selectorCache sync.Map

// ParseSelector parses query into a Selector. Results are memoized, so
// parsing the same query twice returns the same pointer.
func ParseSelector(query string) (*Selector, error) {
	return ParseSelectorWithScore(query, 0)
}

// ParseSelectorWithScore parses query and attaches a forced score. A score of
// zero leaves the computed score in place.
func ParseSelectorWithScore(query string, score int) (*Selector, error) {
	key := selectorKey{query: query, score: score}
	if s, ok := selectorCache.Load(key); ok {
		return s.(*Selector), nil
	}
	s, err := parseSelector(strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	s.ForcedScore = score
	actual, _ := selectorCache.LoadOrStore(key, s)
	return actual.(*Selector), nil
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(query string) *Selector {
	s, err := ParseSelector(query)
	if err != nil {
		panic(err)
	}
	return s
}

func parseSelector(query string) (*Selector, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrSyntax)
	}

	direct := strings.LastIndex(query, " > ")
	indirect := strings.LastIndex(query, " *> ")
	if direct < 0 && indirect < 0 {
		return parseTerm(query)
	}

	sep, at := " > ", direct
	if indirect > direct {
		sep, at = " *> ", indirect
	}
	parent, err := parseSelector(strings.TrimSpace(query[:at]))
	if err != nil {
		return nil, err
	}
	s, err := parseTerm(strings.TrimSpace(query[at+len(sep):]))
	if err != nil {
		return nil, err
	}
	if sep == " > " {
		s.DirectParent = parent
	} else {
		s.IndirectParent = parent
	}
	s.Query = query
	return s, nil
}

// parseTerm parses a single term:
//
//	"*" | Type("|" Type)* ("#" id)? ("." group)* ("/" state("|" state)*)?
func parseTerm(term string) (*Selector, error) {
	s := &Selector{Query: term}
	if term == "*" {
		s.universal = true
		return s, nil
	}

	errorf := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s in selector %q, use 'Type#id.group/state'",
			ErrSyntax, fmt.Sprintf(format, args...), term)
	}

	pos := 0
	if pos < len(term) && isUpper(term[pos]) {
		end := scan(term, pos, func(c byte) bool { return isWord(c) || c == '|' })
		for _, el := range strings.Split(term[pos:end], "|") {
			if el == "" || !isUpper(el[0]) {
				return nil, errorf("invalid type %q", el)
			}
			s.Elements = append(s.Elements, el)
		}
		pos = end
	}

	if pos < len(term) && term[pos] == '#' {
		end := scan(term, pos+1, isName)
		if end == pos+1 {
			return nil, errorf("empty id")
		}
		s.ID = term[pos+1 : end]
		pos = end
	}

	for pos < len(term) && term[pos] == '.' {
		end := scan(term, pos+1, isName)
		if end == pos+1 {
			return nil, errorf("empty group")
		}
		s.Groups = append(s.Groups, term[pos+1:end])
		pos = end
	}

	if pos < len(term) && term[pos] == '/' {
		end := scan(term, pos+1, func(c byte) bool { return isWord(c) || c == '|' || c == '-' })
		for _, st := range strings.Split(term[pos+1:end], "|") {
			if st == "" {
				return nil, errorf("empty state")
			}
			s.States = append(s.States, st)
		}
		pos = end
	}

	if pos != len(term) {
		return nil, errorf("unexpected %q", term[pos:])
	}
	return s, nil
}

func scan(s string, pos int, ok func(byte) bool) int {
	for pos < len(s) && ok(s[pos]) {
		pos++
	}
	return pos
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isWord(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || isUpper(c) || (c >= '0' && c <= '9')
}

func isName(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '@' || c == '-' || c == '_'
}

// Key returns a string that identifies the selector in rule tables.
func (s *Selector) Key() string {
	if s.ForcedScore == 0 {
		return s.String()
	}
	return s.String() + "@" + strconv.Itoa(s.ForcedScore)
}

// String returns the normalized query.
func (s *Selector) String() string {
	var b strings.Builder
	switch {
	case s.DirectParent != nil:
		b.WriteString(s.DirectParent.String())
		b.WriteString(" > ")
	case s.IndirectParent != nil:
		b.WriteString(s.IndirectParent.String())
		b.WriteString(" *> ")
	}
	if s.universal {
		b.WriteString("*")
		return b.String()
	}
	b.WriteString(strings.Join(s.Elements, "|"))
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, g := range s.Groups {
		b.WriteString("." + g)
	}
	if s.States != nil {
		b.WriteString("/" + strings.Join(s.States, "|"))
	}
	return b.String()
}

// Equal reports whether s and other describe the same query.
func (s *Selector) Equal(other *Selector) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Key() == other.Key()
}

// IsPalette reports whether the selector defines a color palette rather than
// widget attributes.
func (s *Selector) IsPalette() bool {
	return len(s.Elements) == 1 && s.Elements[0] == "Palette"
}

// PaletteNamespace returns the namespace a palette selector defines, taken
// from its state: "Palette/ocean" defines "ocean".
func (s *Selector) PaletteNamespace() string {
	if !s.IsPalette() || len(s.States) == 0 {
		return ""
	}
	return s.States[0]
}

// Matches scores node against the selector. Zero means no match; more
// specific selectors score higher.
func (s *Selector) Matches(node Node) int {
	if node == nil {
		return 0
	}
	hasParent := s.DirectParent != nil || s.IndirectParent != nil
	if s.universal && !hasParent {
		return 10
	}

	score := 100
	switch {
	case s.universal:
		score = 10
	case s.IsPalette(), len(s.Elements) == 0:
	case !slices.Contains(s.Elements, node.TypeName()):
		return 0
	}

	if s.DirectParent != nil {
		parent := node.ParentNode()
		if parent == nil {
			return 0
		}
		found := s.DirectParent.Matches(parent)
		if found == 0 {
			return 0
		}
		score += found
	}

	if s.IndirectParent != nil {
		found := s.matchAncestor(node)
		if found == 0 {
			return 0
		}
		score += found
	}

	if s.IsPalette() {
		return score + 100
	}

	if s.ID != "" {
		if node.ID() != s.ID {
			return 0
		}
		score += 1000
	}

	if len(s.Groups) > 0 {
		groups := node.Groups()
		for _, g := range s.Groups {
			if !slices.Contains(groups, g) {
				return 0
			}
		}
		score += 500 + 100*len(s.Groups)
	}

	if s.States != nil {
		state := node.State()
		if !slices.ContainsFunc(s.States, func(st string) bool {
			return strings.HasSuffix(state, st)
		}) {
			return 0
		}
		score += 250
	}

	if s.ForcedScore != 0 {
		return s.ForcedScore
	}
	return score
}

// matchAncestor walks up from node and scores the first ancestor matching
// the indirect parent. Closer ancestors score higher.
func (s *Selector) matchAncestor(node Node) int {
	if slices.Contains(s.IndirectParent.Elements, "Terminal") {
		for n := node; n != nil; n = n.ParentNode() {
			if p, ok := n.(terminalProvider); ok {
				return s.IndirectParent.Matches(p.TerminalNode())
			}
		}
		return 0
	}

	distance := 1
	for parent := node.ParentNode(); parent != nil; parent = parent.ParentNode() {
		if found := s.IndirectParent.Matches(parent); found != 0 {
			return max(found-10*distance, 1)
		}
		distance++
	}
	return 0
}

package celadon

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// RuleSource is one flattened rule: a selector query and the attributes and
// styles it sets. Style keys keep their "_style" suffix until the rule is
// added to a page.
type RuleSource struct {
	Query  string
	Values map[string]any
}

// ruleTree is a decoded rule document with key order preserved. Values are
// scalars, []any, or nested ruleTrees.
type ruleTree []ruleEntry

type ruleEntry struct {
	key   string
	value any
}

// LoadRules parses YAML rule source into flat rules.
//
//	Button:
//	  height: 1
//	  /hover:
//	    content_style: bold
//	  .big:
//	    width: fill
//
// yields "Button", "Button/hover" and "Button.big".
func LoadRules(source string) ([]RuleSource, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(source), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	tree, err := yamlTree(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return flattenRules(tree), nil
}

func yamlTree(n *yaml.Node) (ruleTree, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: rules must be a mapping", ErrSyntax, n.Line)
	}
	tree := make(ruleTree, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		value, err := yamlValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		tree = append(tree, ruleEntry{key: n.Content[i].Value, value: value})
	}
	return tree, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		return yamlTree(n)
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, item := range n.Content {
			var v any
			if err := item.Decode(&v); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, item.Line, err)
			}
			items[i] = v
		}
		return items, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, n.Line, err)
	}
	return v, nil
}

// LoadRulesTOML parses TOML rule source into flat rules. Selectors that are
// not bare TOML keys must be quoted:
//
//	[Button]
//	height = 1
//
//	[Button."/hover"]
//	content_style = "bold"
func LoadRulesTOML(source string) ([]RuleSource, error) {
	var raw map[string]any
	md, err := toml.Decode(source, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	order := make(map[string]int)
	for i, key := range md.Keys() {
		path := strings.Join(key, "\x00")
		if _, ok := order[path]; !ok {
			order[path] = i
		}
	}
	return flattenRules(tomlTree(raw, nil, order)), nil
}

func tomlTree(m map[string]any, path []string, order map[string]int) ruleTree {
	tree := make(ruleTree, 0, len(m))
	for key, value := range m {
		child := append(path[:len(path):len(path)], key)
		if sub, ok := value.(map[string]any); ok {
			tree = append(tree, ruleEntry{key: key, value: tomlTree(sub, child, order)})
			continue
		}
		tree = append(tree, ruleEntry{key: key, value: tomlValue(value)})
	}
	sort.SliceStable(tree, func(i, j int) bool {
		pi := order[strings.Join(append(path[:len(path):len(path)], tree[i].key), "\x00")]
		pj := order[strings.Join(append(path[:len(path):len(path)], tree[j].key), "\x00")]
		return pi < pj
	})
	return tree
}

func tomlValue(v any) any {
	switch v := v.(type) {
	case int64:
		return int(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = tomlValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	}
	return v
}

// LoadRulesFile reads rules from path, choosing TOML for ".toml" files and
// YAML otherwise.
func LoadRulesFile(path string) ([]RuleSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rules []RuleSource
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		rules, err = LoadRulesTOML(string(data))
	} else {
		rules, err = LoadRules(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// flattenRules turns a nested rule tree into flat rules. A nested key is a
// selector relative to its parent: "&" marks where the parent selector goes
// and is implied at the start when missing, keys starting with ">" or "*>"
// become hierarchy selectors, and a comma declares several selectors at
// once. Rules declared more than once are merged in order.
func flattenRules(tree ruleTree) []RuleSource {
	var out ruleList
	flattenInto(tree, "", &out)

	rules := make([]RuleSource, 0, len(out.order))
	for _, q := range out.order {
		if len(out.values[q]) == 0 {
			continue
		}
		rules = append(rules, RuleSource{Query: q, Values: out.values[q]})
	}
	return rules
}

type ruleList struct {
	order  []string
	values map[string]map[string]any
}

func (l *ruleList) reserve(query string) {
	if l.values == nil {
		l.values = make(map[string]map[string]any)
	}
	if _, ok := l.values[query]; !ok {
		l.order = append(l.order, query)
		l.values[query] = map[string]any{}
	}
}

func flattenInto(tree ruleTree, prefix string, out *ruleList) map[string]any {
	inner := make(map[string]any)
	for _, e := range tree {
		sub, ok := e.value.(ruleTree)
		if !ok {
			inner[e.key] = e.value
			continue
		}
		for _, part := range strings.Split(e.key, ",") {
			query := nestedSelector(strings.TrimSpace(part), prefix)
			out.reserve(query)
			values := flattenInto(sub, query, out)
			out.values[query] = deepMerge(out.values[query], values)
		}
	}
	return inner
}

func nestedSelector(key, prefix string) string {
	key = strings.ReplaceAll(key, `\*>`, "*>")
	key = strings.ReplaceAll(key, `\>`, ">")
	if strings.HasPrefix(key, ">") || strings.HasPrefix(key, "*>") {
		key = " " + key
	}
	if !strings.Contains(key, "&") {
		key = "&" + key
	}
	return strings.TrimSpace(strings.ReplaceAll(key, "&", prefix))
}

// splitStyles separates "_style" keys from attributes. The suffix is
// stripped from the style keys.
func splitStyles(values map[string]any) (map[string]any, map[string]string, error) {
	attrs := make(map[string]any, len(values))
	styles := make(map[string]string)
	for k, v := range values {
		name, ok := strings.CutSuffix(k, "_style")
		if !ok {
			attrs[k] = v
			continue
		}
		switch v := v.(type) {
		case string:
			styles[name] = v
		case nil:
			styles[name] = ""
		default:
			return nil, nil, fmt.Errorf("%w: style %q must be a string, got %T", ErrValue, k, v)
		}
	}
	return attrs, styles, nil
}

// CheckRule reports whether r could be applied: its selector must parse,
// its styles must be strings and every attribute must exist on each widget
// type the selector names. Types that are not registered are not checked.
func CheckRule(r RuleSource) error {
	sel, err := ParseSelector(r.Query)
	if err != nil {
		return err
	}
	attrs, _, err := splitStyles(r.Values)
	if err != nil {
		return fmt.Errorf("%s: %w", r.Query, err)
	}
	if sel.IsPalette() {
		for key, value := range attrs {
			if _, ok := value.(string); !ok {
				return fmt.Errorf("%s: %w: palette color %q must be a string", r.Query, ErrValue, key)
			}
		}
		return nil
	}

	for _, name := range sel.Elements {
		reg, ok := LookupType(name)
		if !ok || reg.New == nil {
			continue
		}
		known := reg.New().WidgetBase().AttrNames()
		for key := range attrs {
			if strings.HasPrefix(key, "_") {
				return fmt.Errorf("%s: %w: cannot set non-public attribute %q", r.Query, ErrAttribute, key)
			}
			if _, found := slices.BinarySearch(known, key); !found {
				return fmt.Errorf("%s: %w: %s has no attribute %q", r.Query, ErrAttribute, name, key)
			}
		}
	}
	return nil
}

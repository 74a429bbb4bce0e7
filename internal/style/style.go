// Package style resolves utility-class strings into concrete styles.
//
// Merge combines a base class string with an instance class string so that
// instance classes override base classes of the same category. A Compiler
// turns a class string into an ordered list of CSS declarations using a
// Theme. Classes the compiler does not support produce no declarations.
package style

import (
	"math"
	"strconv"
	"strings"
)

// Declaration is a single CSS property assignment.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered set of declarations with unique properties.
type Style struct {
	decls []Declaration
}

// Get returns the value of property.
func (s Style) Get(property string) (string, bool) {
	for _, d := range s.decls {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Declarations returns a copy of the declarations in order.
func (s Style) Declarations() []Declaration {
	return append([]Declaration(nil), s.decls...)
}

// Len returns the number of declarations.
func (s Style) Len() int { return len(s.decls) }

// CSS formats the style as an inline style attribute value.
func (s Style) CSS() string {
	parts := make([]string, len(s.decls))
	for i, d := range s.decls {
		parts[i] = d.Property + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}

// set replaces property in place or appends it.
func (s *Style) set(property, value string) {
	for i, d := range s.decls {
		if d.Property == property {
			s.decls[i].Value = value
			return
		}
	}
	s.decls = append(s.decls, Declaration{Property: property, Value: value})
}

// Compiler converts class strings to styles. It is immutable and safe for
// concurrent use.
type Compiler struct {
	theme Theme
}

// NewCompiler creates a compiler for theme.
func NewCompiler(theme Theme) *Compiler {
	return &Compiler{theme: theme}
}

// Compile merges the classes, so a later class wins over an earlier class of
// the same category, and resolves each surviving class. Classes with variant
// modifiers such as "hover:" are ignored.
func (c *Compiler) Compile(classes ...string) Style {
	var s Style
	for _, token := range strings.Fields(Merge(classes...)) {
		modifiers, utility := splitModifiers(token)
		if modifiers != "" {
			continue
		}
		for _, d := range c.resolve(strings.TrimPrefix(utility, "!")) {
			s.set(d.Property, d.Value)
		}
	}
	return s
}

// Unsupported lists the classes in classes that compile to nothing.
func (c *Compiler) Unsupported(classes string) []string {
	var out []string
	for _, token := range strings.Fields(classes) {
		if _, utility := splitModifiers(token); len(c.resolve(strings.TrimPrefix(utility, "!"))) == 0 {
			out = append(out, token)
		}
	}
	return out
}

func decl(pairs ...string) []Declaration {
	out := make([]Declaration, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Declaration{Property: pairs[i], Value: pairs[i+1]})
	}
	return out
}

var fixed = map[string][]Declaration{
	"italic":            decl("font-style", "italic"),
	"not-italic":        decl("font-style", "normal"),
	"underline":         decl("text-decoration-line", "underline"),
	"overline":          decl("text-decoration-line", "overline"),
	"line-through":      decl("text-decoration-line", "line-through"),
	"no-underline":      decl("text-decoration-line", "none"),
	"uppercase":         decl("text-transform", "uppercase"),
	"lowercase":         decl("text-transform", "lowercase"),
	"capitalize":        decl("text-transform", "capitalize"),
	"normal-case":       decl("text-transform", "none"),
	"block":             decl("display", "block"),
	"inline-block":      decl("display", "inline-block"),
	"inline":            decl("display", "inline"),
	"flex":              decl("display", "flex"),
	"inline-flex":       decl("display", "inline-flex"),
	"grid":              decl("display", "grid"),
	"hidden":            decl("display", "none"),
	"contents":          decl("display", "contents"),
	"flex-row":          decl("flex-direction", "row"),
	"flex-row-reverse":  decl("flex-direction", "row-reverse"),
	"flex-col":          decl("flex-direction", "column"),
	"flex-col-reverse":  decl("flex-direction", "column-reverse"),
	"flex-wrap":         decl("flex-wrap", "wrap"),
	"flex-wrap-reverse": decl("flex-wrap", "wrap-reverse"),
	"flex-nowrap":       decl("flex-wrap", "nowrap"),
	"flex-1":            decl("flex", "1 1 0%"),
	"flex-auto":         decl("flex", "1 1 auto"),
	"flex-initial":      decl("flex", "0 1 auto"),
	"flex-none":         decl("flex", "none"),
	"grow":              decl("flex-grow", "1"),
	"grow-0":            decl("flex-grow", "0"),
	"shrink":            decl("flex-shrink", "1"),
	"shrink-0":          decl("flex-shrink", "0"),
	"border":            decl("border-width", "1px", "border-style", "solid"),
	"truncate":          decl("overflow", "hidden", "text-overflow", "ellipsis", "white-space", "nowrap"),
	"list-none":         decl("list-style-type", "none"),
	"list-disc":         decl("list-style-type", "disc"),
	"list-decimal":      decl("list-style-type", "decimal"),
}

var (
	alignValues = map[string]string{
		"start": "flex-start", "end": "flex-end", "center": "center",
		"baseline": "baseline", "stretch": "stretch",
	}
	justifyValues = map[string]string{
		"start": "flex-start", "end": "flex-end", "center": "center",
		"between": "space-between", "around": "space-around", "evenly": "space-evenly",
	}
	spacingProperties = map[string][]string{
		"p":  {"padding"},
		"px": {"padding-left", "padding-right"},
		"py": {"padding-top", "padding-bottom"},
		"pt": {"padding-top"},
		"pr": {"padding-right"},
		"pb": {"padding-bottom"},
		"pl": {"padding-left"},
		"m":  {"margin"},
		"mx": {"margin-left", "margin-right"},
		"my": {"margin-top", "margin-bottom"},
		"mt": {"margin-top"},
		"mr": {"margin-right"},
		"mb": {"margin-bottom"},
		"ml": {"margin-left"},
	}
	borderSides = map[string][]string{
		"x": {"left", "right"},
		"y": {"top", "bottom"},
		"t": {"top"},
		"r": {"right"},
		"b": {"bottom"},
		"l": {"left"},
	}
)

// resolve returns the declarations for a single utility without modifiers.
func (c *Compiler) resolve(utility string) []Declaration {
	if d, ok := fixed[utility]; ok {
		return d
	}
	if utility == "rounded" {
		return decl("border-radius", radiusScale[""])
	}

	negative := strings.HasPrefix(utility, "-")
	utility = strings.TrimPrefix(utility, "-")

	prefix, value, ok := strings.Cut(utility, "-")
	if !ok {
		return nil
	}

	switch prefix {
	case "text":
		if sz, ok := fontSizeScale[value]; ok {
			return decl("font-size", sz[0], "line-height", sz[1])
		}
		if textAligns[value] {
			return decl("text-align", value)
		}
		if col, ok := c.theme.color(value); ok {
			return decl("color", col)
		}
	case "font":
		if w, ok := fontWeightScale[value]; ok {
			return decl("font-weight", w)
		}
		if f, ok := c.theme.FontFamily[value]; ok {
			return decl("font-family", f)
		}
	case "leading":
		if v, ok := leadingScale[value]; ok {
			return decl("line-height", v)
		}
		if v, ok := c.spacing(value, false); ok {
			return decl("line-height", v)
		}
	case "tracking":
		if v, ok := trackingScale[value]; ok {
			return decl("letter-spacing", v)
		}
	case "p", "px", "py", "pt", "pr", "pb", "pl", "m", "mx", "my", "mt", "mr", "mb", "ml":
		v, ok := c.spacing(value, negative)
		if !ok && prefix[0] == 'm' && value == "auto" {
			v, ok = "auto", true
		}
		if !ok {
			return nil
		}
		var out []Declaration
		for _, p := range spacingProperties[prefix] {
			out = append(out, Declaration{Property: p, Value: v})
		}
		return out
	case "gap":
		property := "gap"
		if axis, rest, ok := strings.Cut(value, "-"); ok && (axis == "x" || axis == "y") {
			property = map[string]string{"x": "column-gap", "y": "row-gap"}[axis]
			value = rest
		}
		if v, ok := c.spacing(value, false); ok {
			return decl(property, v)
		}
	case "w", "h", "size":
		v, ok := c.size(value, prefix)
		if !ok {
			return nil
		}
		switch prefix {
		case "w":
			return decl("width", v)
		case "h":
			return decl("height", v)
		default:
			return decl("width", v, "height", v)
		}
	case "min", "max":
		axis, rest, ok := strings.Cut(value, "-")
		if !ok || (axis != "w" && axis != "h") {
			return nil
		}
		if v, ok := c.size(rest, axis); ok {
			property := map[string]string{"w": "width", "h": "height"}[axis]
			return decl(prefix+"-"+property, v)
		}
	case "items":
		if v, ok := alignValues[value]; ok {
			return decl("align-items", v)
		}
	case "self":
		if v, ok := alignValues[value]; ok {
			return decl("align-self", v)
		}
	case "justify":
		if v, ok := justifyValues[value]; ok {
			return decl("justify-content", v)
		}
	case "bg":
		if col, ok := c.theme.color(value); ok {
			return decl("background-color", col)
		}
	case "rounded":
		return c.rounded(value)
	case "border":
		return c.border(value)
	case "opacity":
		if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 100 {
			return decl("opacity", formatFloat(float64(n)/100))
		}
	case "whitespace":
		switch value {
		case "normal", "nowrap", "pre", "pre-line", "pre-wrap":
			return decl("white-space", value)
		}
	case "overflow":
		switch value {
		case "hidden", "visible", "auto", "scroll":
			return decl("overflow", value)
		}
	}

	return nil
}

// spacing resolves a spacing step such as "4", "0.5" or "px".
func (c *Compiler) spacing(value string, negative bool) (string, bool) {
	var v string
	switch {
	case value == "px":
		v = "1px"
	case value == "0":
		return "0px", true
	case isNumber(value):
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", false
		}
		v = formatFloat(n*c.theme.Spacing) + "rem"
	default:
		return "", false
	}
	if negative {
		v = "-" + v
	}
	return v, true
}

// size resolves width and height values: spacing steps, fractions and
// keywords.
func (c *Compiler) size(value, axis string) (string, bool) {
	switch value {
	case "full":
		return "100%", true
	case "auto":
		return "auto", true
	case "min":
		return "min-content", true
	case "max":
		return "max-content", true
	case "fit":
		return "fit-content", true
	case "screen":
		if axis == "h" {
			return "100vh", true
		}
		return "100vw", true
	}

	if num, den, ok := strings.Cut(value, "/"); ok {
		n, err1 := strconv.Atoi(num)
		d, err2 := strconv.Atoi(den)
		if err1 != nil || err2 != nil || d == 0 {
			return "", false
		}
		return formatFloat(float64(n)*100/float64(d)) + "%", true
	}

	return c.spacing(value, false)
}

func (c *Compiler) rounded(value string) []Declaration {
	corners := map[string][]string{
		"t": {"top-left", "top-right"},
		"r": {"top-right", "bottom-right"},
		"b": {"bottom-right", "bottom-left"},
		"l": {"top-left", "bottom-left"},
	}

	side, rest, _ := strings.Cut(value, "-")
	if names, ok := corners[side]; ok {
		v, ok := radiusScale[rest]
		if !ok {
			return nil
		}
		var out []Declaration
		for _, n := range names {
			out = append(out, Declaration{Property: "border-" + n + "-radius", Value: v})
		}
		return out
	}

	if v, ok := radiusScale[value]; ok {
		return decl("border-radius", v)
	}
	return nil
}

func (c *Compiler) border(value string) []Declaration {
	if isNumber(value) {
		return decl("border-width", value+"px", "border-style", "solid")
	}
	if borderStyles[value] {
		return decl("border-style", value)
	}

	side, rest, _ := strings.Cut(value, "-")
	if names, ok := borderSides[side]; ok {
		width := "1px"
		if rest != "" {
			if !isNumber(rest) {
				col, ok := c.theme.color(rest)
				if !ok {
					return nil
				}
				var out []Declaration
				for _, n := range names {
					out = append(out, Declaration{Property: "border-" + n + "-color", Value: col})
				}
				return out
			}
			width = rest + "px"
		}
		out := decl("border-style", "solid")
		for _, n := range names {
			out = append(out, Declaration{Property: "border-" + n + "-width", Value: width})
		}
		return out
	}

	if col, ok := c.theme.color(value); ok {
		return decl("border-color", col)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e6)/1e6, 'f', -1, 64)
}

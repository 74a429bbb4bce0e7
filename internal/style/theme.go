package style

// Theme holds the design tokens the compiler resolves classes against.
type Theme struct {
	// Colors maps a palette name to shade -> CSS colour. Single colours such
	// as "black" use the empty shade.
	Colors map[string]map[string]string
	// FontFamily maps a family key ("sans", "mono") to a CSS font stack.
	FontFamily map[string]string
	// Spacing is the size of one spacing step, in rem.
	Spacing float64
}

// DefaultTheme returns the stock palette, font stacks and a 0.25rem spacing
// step.
func DefaultTheme() Theme {
	colors := make(map[string]map[string]string, len(palettes)+4)
	for name, shades := range palettes {
		colors[name] = shades
	}
	colors["black"] = map[string]string{"": "#000000"}
	colors["white"] = map[string]string{"": "#ffffff"}
	colors["transparent"] = map[string]string{"": "transparent"}
	colors["current"] = map[string]string{"": "currentColor"}

	return Theme{
		Colors: colors,
		FontFamily: map[string]string{
			"sans":  `ui-sans-serif, system-ui, sans-serif`,
			"serif": `ui-serif, Georgia, Cambria, "Times New Roman", Times, serif`,
			"mono":  `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace`,
		},
		Spacing: 0.25,
	}
}

// Extend returns a copy of t with extra font families and single colours
// layered on top. Existing keys are replaced.
func (t Theme) Extend(fonts map[string]string, colors map[string]string) Theme {
	out := Theme{
		Colors:     make(map[string]map[string]string, len(t.Colors)+len(colors)),
		FontFamily: make(map[string]string, len(t.FontFamily)+len(fonts)),
		Spacing:    t.Spacing,
	}
	for k, v := range t.Colors {
		out.Colors[k] = v
	}
	for k, v := range t.FontFamily {
		out.FontFamily[k] = v
	}
	for k, v := range fonts {
		out.FontFamily[k] = v
	}
	for k, v := range colors {
		out.Colors[k] = map[string]string{"": v}
	}
	return out
}

// color resolves "zinc-900", "black" or a theme colour name.
func (t Theme) color(value string) (string, bool) {
	if shades, ok := t.Colors[value]; ok {
		c, ok := shades[""]
		return c, ok
	}

	for i := len(value) - 1; i > 0; i-- {
		if value[i] != '-' {
			continue
		}
		if shades, ok := t.Colors[value[:i]]; ok {
			c, ok := shades[value[i+1:]]
			return c, ok
		}
	}
	return "", false
}

var palettes = map[string]map[string]string{
	"zinc": {
		"50": "#fafafa", "100": "#f4f4f5", "200": "#e4e4e7", "300": "#d4d4d8", "400": "#a1a1aa",
		"500": "#71717a", "600": "#52525b", "700": "#3f3f46", "800": "#27272a", "900": "#18181b", "950": "#09090b",
	},
	"neutral": {
		"50": "#fafafa", "100": "#f5f5f5", "200": "#e5e5e5", "300": "#d4d4d4", "400": "#a3a3a3",
		"500": "#737373", "600": "#525252", "700": "#404040", "800": "#262626", "900": "#171717", "950": "#0a0a0a",
	},
	"slate": {
		"50": "#f8fafc", "100": "#f1f5f9", "200": "#e2e8f0", "300": "#cbd5e1", "400": "#94a3b8",
		"500": "#64748b", "600": "#475569", "700": "#334155", "800": "#1e293b", "900": "#0f172a", "950": "#020617",
	},
	"blue": {
		"50": "#eff6ff", "100": "#dbeafe", "200": "#bfdbfe", "300": "#93c5fd", "400": "#60a5fa",
		"500": "#3b82f6", "600": "#2563eb", "700": "#1d4ed8", "800": "#1e40af", "900": "#1e3a8a", "950": "#172554",
	},
	"red": {
		"50": "#fef2f2", "100": "#fee2e2", "200": "#fecaca", "300": "#fca5a5", "400": "#f87171",
		"500": "#ef4444", "600": "#dc2626", "700": "#b91c1c", "800": "#991b1b", "900": "#7f1d1d", "950": "#450a0a",
	},
	"green": {
		"50": "#f0fdf4", "100": "#dcfce7", "200": "#bbf7d0", "300": "#86efac", "400": "#4ade80",
		"500": "#22c55e", "600": "#16a34a", "700": "#15803d", "800": "#166534", "900": "#14532d", "950": "#052e16",
	},
	"amber": {
		"50": "#fffbeb", "100": "#fef3c7", "200": "#fde68a", "300": "#fcd34d", "400": "#fbbf24",
		"500": "#f59e0b", "600": "#d97706", "700": "#b45309", "800": "#92400e", "900": "#78350f", "950": "#451a03",
	},
}

// fontSizeScale maps size keys to font-size and line-height.
var fontSizeScale = map[string][2]string{
	"xs":   {"0.75rem", "1rem"},
	"sm":   {"0.875rem", "1.25rem"},
	"base": {"1rem", "1.5rem"},
	"lg":   {"1.125rem", "1.75rem"},
	"xl":   {"1.25rem", "1.75rem"},
	"2xl":  {"1.5rem", "2rem"},
	"3xl":  {"1.875rem", "2.25rem"},
	"4xl":  {"2.25rem", "2.5rem"},
	"5xl":  {"3rem", "1"},
	"6xl":  {"3.75rem", "1"},
	"7xl":  {"4.5rem", "1"},
	"8xl":  {"6rem", "1"},
	"9xl":  {"8rem", "1"},
}

var fontWeightScale = map[string]string{
	"thin":       "100",
	"extralight": "200",
	"light":      "300",
	"normal":     "400",
	"medium":     "500",
	"semibold":   "600",
	"bold":       "700",
	"extrabold":  "800",
	"black":      "900",
}

var leadingScale = map[string]string{
	"none":    "1",
	"tight":   "1.25",
	"snug":    "1.375",
	"normal":  "1.5",
	"relaxed": "1.625",
	"loose":   "2",
}

var trackingScale = map[string]string{
	"tighter": "-0.05em",
	"tight":   "-0.025em",
	"normal":  "0em",
	"wide":    "0.025em",
	"wider":   "0.05em",
	"widest":  "0.1em",
}

var radiusScale = map[string]string{
	"none": "0px",
	"sm":   "0.125rem",
	"":     "0.25rem",
	"md":   "0.375rem",
	"lg":   "0.5rem",
	"xl":   "0.75rem",
	"2xl":  "1rem",
	"3xl":  "1.5rem",
	"full": "9999px",
}

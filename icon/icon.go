// Package icon renders the symbols pplay prints in the configured icon variant.
package icon

import (
	"github.com/pplay-cli/pplay/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

type variant struct {
	name string
	pick func(*iconDef) string
}

// Listed in the order the options menu cycles through them.
var variants = []variant{
	{"plain", func(d *iconDef) string { return d.plain }},
	{"emoji", func(d *iconDef) string { return d.emoji }},
	{"kaomoji", func(d *iconDef) string { return d.kaomoji }},
	{"squares", func(d *iconDef) string { return d.squares }},
	{"nerd", func(d *iconDef) string { return d.nerd }},
}

// AvailableVariants lists the variant names accepted by the icons setting.
func AvailableVariants() []string {
	return lo.Map(variants, func(v variant, _ int) string { return v.name })
}

// IsVariant reports whether name is a known variant.
func IsVariant(name string) bool {
	return lo.ContainsBy(variants, func(v variant) bool { return v.name == name })
}

// Get renders i in the configured variant. Unknown variants render as plain text.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	current := viper.GetString(key.IconsVariant)
	v, found := lo.Find(variants, func(v variant) bool { return v.name == current })
	if !found {
		return def.plain
	}
	return v.pick(def)
}

package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is one setting: its key, default value and what it does.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Section is the part of the key before the first dot, e.g. "player".
func (f Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env is the environment variable that overrides the field.
func (f Field) Env() string {
	return strings.ToUpper(constant.Pplay + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Changed reports whether the effective value differs from the default.
func (f Field) Changed() bool {
	return !reflect.DeepEqual(viper.Get(f.Key), f.Value)
}

func (f Field) typeName() string {
	return reflect.TypeOf(f.Value).String()
}

// MarshalJSON includes the effective value next to the default.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"env":         f.Env(),
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        f.typeName(),
	})
}

// Pretty renders the field for `config info`.
func (f Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Ok)("true")
		}
		return style.Fg(color.Bad)("false")
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Value)(value)
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"key":      style.Fg(color.Media),
	"label":    style.Fg(color.Folder),
	"hl":       highlight,
	"current":  func(k string) any { return viper.Get(k) },
	"typename": func(f Field) string { return f.typeName() },
	"indent":   func(s string) string { return strings.ReplaceAll(s, "\n", "\n  ") },
}).Parse(`{{ key .Key }} {{ faint (typename .) }}
  {{ indent .Description }}
  {{ label "value" }}   {{ hl (current .Key) }}{{ if .Changed }} {{ faint "(default" }} {{ hl .Value }}{{ faint ")" }}{{ end }}
  {{ label "env" }}     {{ .Env }}`))

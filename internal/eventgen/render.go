package eventgen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"
)

// ImportRoot is the import path prefix of the packages generated code uses.
const ImportRoot = "github.com/dshills/asyncui/internal"

// event is an Entry resolved against its group.
type event struct {
	Entry
	Group   string
	Targets []string
	DocURL  string
}

// Const returns the name of the kind constant, e.g. KindClick.
func (e event) Const() string {
	return "Kind" + strings.TrimPrefix(e.Accessor, "Until")
}

// Render produces the formatted Go source for t. source names the table
// file in the generated header.
func Render(t *Table, source string) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	events := make([]event, 0, t.Len())
	for _, g := range t.Groups {
		mdn := g.MDN
		if mdn == "" {
			mdn = "Element"
		}
		for _, e := range g.Events {
			events = append(events, event{
				Entry:   e,
				Group:   g.Name,
				Targets: g.Targets,
				DocURL:  fmt.Sprintf("https://developer.mozilla.org/en-US/docs/Web/API/%s/%s_event", mdn, e.Name),
			})
		}
	}

	tmpl, err := template.New("events").Funcs(template.FuncMap{
		"quote":      strconv.Quote,
		"quoteList":  quoteList,
		"targetList": targetList,
	}).Parse(eventsTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	data := struct {
		Source     string
		Package    string
		ImportRoot string
		Events     []event
	}{
		Source:     source,
		Package:    t.Package,
		ImportRoot: ImportRoot,
		Events:     events,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("format source: %w", err)
	}
	return formatted, nil
}

// quoteList renders ss as a comma-separated list of Go string literals.
func quoteList(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, ", ")
}

// targetList renders ss as English prose: "a", "a and b", "a, b and c".
func targetList(ss []string) string {
	switch len(ss) {
	case 0:
		return ""
	case 1:
		return ss[0]
	default:
		return strings.Join(ss[:len(ss)-1], ", ") + " and " + ss[len(ss)-1]
	}
}

const eventsTemplate = `// Code generated by eventgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"{{.ImportRoot}}/bridge"
	"{{.ImportRoot}}/dom"
	"{{.ImportRoot}}/event"
)

// Event kinds declared in {{.Source}}.
const (
{{- range .Events}}
	{{.Const}} event.Kind = {{quote .Name}}
{{- end}}
)
{{range .Events}}
// {{.Accessor}} is like Until for the {{quote .Name}} event.
{{- if .Targets}}
// Only {{targetList .Targets}} elements emit it.
{{- end}}
// See {{.DocURL}}.
func {{.Accessor}}(el *dom.Element, opts ...bridge.Option) (*bridge.Stream[{{.Payload}}], error) {
	return Until[{{.Payload}}](el, {{.Const}}, opts...)
}
{{end}}
// Table lists every event kind declared in {{.Source}}.
var Table = []TableEntry{
{{- range .Events}}
	{Kind: {{.Const}}, Accessor: {{quote .Accessor}}, Payload: {{quote .Payload}}, Group: {{quote .Group}}
{{- if .Targets}}, Targets: []string{ {{- quoteList .Targets -}} }{{end}}},
{{- end}}
}

func registerTable(r *event.Registry) {
{{- range .Events}}
	event.MustRegister[{{.Payload}}](r, {{.Const}}{{range .Targets}}, {{quote .}}{{end}})
{{- end}}
}
`

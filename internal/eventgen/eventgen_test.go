package eventgen

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const smallTable = `
package: events
groups:
  - name: element
    mdn: Element
    events:
      - {name: click, accessor: UntilClick, payload: MouseEvent}
  - name: edit
    mdn: HTMLElement
    targets: [input, textarea]
    events:
      - {name: input, accessor: UntilInput, payload: Event}
`

func mustLoad(t *testing.T, src string) *Table {
	t.Helper()
	tbl, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return tbl
}

func TestLoad(t *testing.T) {
	tbl := mustLoad(t, smallTable)

	if tbl.Package != "events" {
		t.Errorf("expected package events, got %q", tbl.Package)
	}
	if len(tbl.Groups) != 2 || tbl.Len() != 2 {
		t.Fatalf("expected 2 groups and 2 events, got %d and %d", len(tbl.Groups), tbl.Len())
	}
	if got := tbl.Groups[1].Targets; len(got) != 2 || got[0] != "input" {
		t.Errorf("unexpected targets %v", got)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("package: events\nflavour: mint\n"))
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad package", "package: 9x\ngroups: [{name: g, events: [{name: a, accessor: UntilA, payload: E}]}]"},
		{"no groups", "package: events\n"},
		{"unnamed group", "package: events\ngroups: [{events: [{name: a, accessor: UntilA, payload: E}]}]"},
		{"empty group", "package: events\ngroups: [{name: g}]"},
		{"bad event name", "package: events\ngroups: [{name: g, events: [{name: Click, accessor: UntilClick, payload: E}]}]"},
		{"bad accessor", "package: events\ngroups: [{name: g, events: [{name: a, accessor: OnA, payload: E}]}]"},
		{"bare accessor", "package: events\ngroups: [{name: g, events: [{name: a, accessor: Until, payload: E}]}]"},
		{"unexported payload", "package: events\ngroups: [{name: g, events: [{name: a, accessor: UntilA, payload: e}]}]"},
		{"bad target", "package: events\ngroups: [{name: g, targets: [\"In Put\"], events: [{name: a, accessor: UntilA, payload: E}]}]"},
		{"duplicate name", "package: events\ngroups: [{name: g, events: [{name: a, accessor: UntilA, payload: E}, {name: a, accessor: UntilB, payload: E}]}]"},
		{"duplicate accessor", "package: events\ngroups: [{name: g, events: [{name: a, accessor: UntilA, payload: E}, {name: b, accessor: UntilA, payload: E}]}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := mustLoad(t, tt.src)
			if err := tbl.Validate(); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("expected ErrInvalidTable, got %v", err)
			}
		})
	}

	if err := mustLoad(t, smallTable).Validate(); err != nil {
		t.Errorf("valid table rejected: %v", err)
	}
}

func TestRender(t *testing.T) {
	code, err := Render(mustLoad(t, smallTable), "small.yaml")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	src := string(code)

	wants := []string{
		"// Code generated by eventgen from small.yaml. DO NOT EDIT.",
		"package events",
		`KindClick event.Kind = "click"`,
		"func UntilClick(el *dom.Element, opts ...bridge.Option) (*bridge.Stream[MouseEvent], error) {",
		"return Until[MouseEvent](el, KindClick, opts...)",
		"// Only input and textarea elements emit it.",
		"https://developer.mozilla.org/en-US/docs/Web/API/HTMLElement/input_event",
		`{Kind: KindInput, Accessor: "UntilInput", Payload: "Event", Group: "edit", Targets: []string{"input", "textarea"}},`,
		"event.MustRegister[MouseEvent](r, KindClick)",
		`event.MustRegister[Event](r, KindInput, "input", "textarea")`,
	}
	for _, want := range wants {
		if !strings.Contains(src, want) {
			t.Errorf("generated code missing %q", want)
		}
	}
}

func TestRender_InvalidTable(t *testing.T) {
	_, err := Render(&Table{Package: "events"}, "x.yaml")
	if !errors.Is(err, ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}

func TestRender_CheckedInFileIsCurrent(t *testing.T) {
	in := filepath.Join("..", "events", "events.yaml")
	tbl, err := LoadFile(in)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	code, err := Render(tbl, "events.yaml")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	existing, err := os.ReadFile(filepath.Join("..", "events", "zz_generated_events.go"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(code, existing) {
		t.Error("zz_generated_events.go is stale; run go generate ./internal/events")
	}
}

func TestGenerator_WriteAndCheck(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "small.yaml")
	out := filepath.Join(dir, "zz_generated.go")
	if err := os.WriteFile(in, []byte(smallTable), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var log bytes.Buffer
	if err := New(Options{DryRun: true, Log: &log}).Generate(in, out); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("dry run should not write output")
	}
	if !strings.Contains(log.String(), "2 events") {
		t.Errorf("unexpected log %q", log.String())
	}

	if err := New(Options{}).Generate(in, out); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := New(Options{Check: true}).Generate(in, out); err != nil {
		t.Errorf("check after generate failed: %v", err)
	}

	if err := os.WriteFile(out, []byte("package events\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := New(Options{Check: true}).Generate(in, out); !errors.Is(err, ErrStale) {
		t.Errorf("expected ErrStale, got %v", err)
	}
}

func TestTargetList(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b and c"},
	}
	for _, tt := range tests {
		if got := targetList(tt.in); got != tt.want {
			t.Errorf("targetList(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

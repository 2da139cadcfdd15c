package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/minid3/pkg/chart"
	"github.com/matzehuels/minid3/pkg/dataset"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		template string
		want     string
	}{
		{"template fallback", "", "", "bar", "bar"},
		{"input stem", "", "charts/letters.toml", "bar", "charts/letters"},
		{"output extension stripped", "out/chart.svg", "", "bar", "out/chart"},
		{"unknown extension kept", "out/chart.v2", "", "bar", "out/chart.v2"},
		{"bare output", "out/chart", "x.toml", "bar", "out/chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input, tt.template); got != tt.want {
				t.Errorf("basePath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.template, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		count  int
		want   string
	}{
		{"single explicit", "chart.svg", "svg", 1, "chart.svg"},
		{"stdout", "-", "html", 1, "-"},
		{"single derived", "", "png", 1, "base.png"},
		{"multiple", "chart.svg", "pdf", 2, "base.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "base", tt.format, tt.count); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDemoConfig(t *testing.T) {
	for _, name := range chart.Names() {
		cfg := demoConfig(name)
		if cfg.Template != name {
			t.Errorf("demoConfig(%q).Template = %q", name, cfg.Template)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("demoConfig(%q) invalid: %v", name, err)
		}
	}
	if got := demoConfig("bar").YTickStep; got != 0.02 {
		t.Errorf("bar YTickStep = %v, want 0.02", got)
	}
}

func TestDemoData(t *testing.T) {
	rows, err := dataset.ParseJSON(letterFrequency)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(rows) != 14 {
		t.Errorf("rows = %d, want 14", len(rows))
	}
}

func TestTemplateListModel(t *testing.T) {
	m := NewTemplateListModel(chart.All())
	if len(m.Templates) == 0 {
		t.Fatal("no templates registered")
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := model.(TemplateListModel).Cursor; got != 0 {
		t.Errorf("cursor after up at top = %d, want 0", got)
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := model.(TemplateListModel).Cursor; got != 1 {
		t.Errorf("cursor after down = %d, want 1", got)
	}
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("enter should quit")
	}
	sel := model.(TemplateListModel).Selected
	if sel == nil || sel.Name() != m.Templates[1].Name() {
		t.Errorf("selected = %v, want %s", sel, m.Templates[1].Name())
	}
	if view := model.(TemplateListModel).View(); !strings.Contains(view, m.Templates[1].Name()) {
		t.Error("view does not list templates")
	}
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"render", "demo", "templates", "tree", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRunRender(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := withLogger(context.Background(), c.Logger)

	rows, err := dataset.ParseJSON(letterFrequency)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	opts := renderOpts{
		output:  filepath.Join(dir, "letters.svg"),
		formats: "svg,html",
		noCache: true,
	}
	popts := opts.pipelineOptions(demoConfig("bar"))
	popts.Rows = rows

	if err := c.runRender(ctx, popts, basePath(opts.output, "", "bar"), &opts); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	for _, name := range []string{"letters.svg", "letters.html"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(data), `class="bar"`) {
			t.Errorf("%s has no bars", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out.String(), "minid3") {
		t.Error("bash completion does not mention the program name")
	}
}

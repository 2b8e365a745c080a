package action

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"

	"csstweak/config"
	"csstweak/state"
)

const chapter = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Chapter</title></head>
<body>
<div class="outer">
<p class="inner first" id="p1">Some <span id="s1">text</span></p>
</div>
</body>
</html>
`

const mainParagraph = ".inner { margin:0; padding:0; text-indent:1.5em; text-align:justify; font-size:11pt; line-height:1.2em; }\n"

type fixture struct {
	ctx context.Context
	env *state.LocalEnv
	doc string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Store.Directory = t.TempDir()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	t.Cleanup(func() { env.Close() })

	doc := filepath.Join(t.TempDir(), "chapter.xhtml")
	if err := os.WriteFile(doc, []byte(chapter), 0644); err != nil {
		t.Fatal(err)
	}
	return &fixture{ctx: ctx, env: env, doc: doc}
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:     "tweak",
		Writer:   &out,
		Commands: Commands(),
	}
	err := app.Run(f.ctx, append([]string{"tweak"}, args...))
	return out.String(), err
}

func (f *fixture) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := f.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func TestStyles(t *testing.T) {
	f := newFixture(t)
	out := f.mustRun(t, "styles")
	for _, want := range []string{"Main paragraph (main-paragraph)", "Opening paragraph", "Force preferences"} {
		if !strings.Contains(out, want) {
			t.Errorf("styles output missing %q:\n%s", want, out)
		}
	}
}

func TestChapters(t *testing.T) {
	f := newFixture(t)
	if out := f.mustRun(t, "chapters", f.doc); out != "chapter.xhtml\n" {
		t.Errorf("chapters = %q", out)
	}
	if _, err := f.run(t, "chapters"); err == nil {
		t.Error("chapters without document expected to fail")
	}
}

func TestPropose(t *testing.T) {
	f := newFixture(t)
	out := f.mustRun(t, "propose", "--path", "#s1", f.doc)
	if !strings.Contains(out, `Text: "text"`) || !strings.Contains(out, "[0] p.inner") || !strings.Contains(out, "[1] div.outer") {
		t.Errorf("propose output:\n%s", out)
	}
}

func TestApplyBuildUndo(t *testing.T) {
	f := newFixture(t)

	out := f.mustRun(t, "apply", "--path", "#p1", "--style", "main-paragraph", f.doc)
	if out != "Main paragraph applied to .inner\n" {
		t.Errorf("apply = %q", out)
	}

	if out := f.mustRun(t, "build", f.doc); out != mainParagraph {
		t.Errorf("build = %q, want %q", out, mainParagraph)
	}

	out = f.mustRun(t, "build", "--font-size", "14.5", f.doc)
	if !strings.Contains(out, "font-size:14.5pt;") {
		t.Errorf("build with live font size = %q", out)
	}

	dst := filepath.Join(t.TempDir(), "tweaks.css")
	f.mustRun(t, "build", f.doc, dst)
	if data, err := os.ReadFile(dst); err != nil || string(data) != mainParagraph {
		t.Errorf("build destination = %q, %v", data, err)
	}

	if out := f.mustRun(t, "undo", f.doc); !strings.Contains(out, ".inner") {
		t.Errorf("undo = %q", out)
	}
	if out := f.mustRun(t, "build", f.doc); out != "" {
		t.Errorf("build after undo = %q", out)
	}
	// nothing to undo is not an error
	f.mustRun(t, "undo", f.doc)
}

func TestApplyAmbiguous(t *testing.T) {
	f := newFixture(t)

	out := f.mustRun(t, "apply", "--path", "#s1", "--style", "Main paragraph", f.doc)
	if !strings.Contains(out, "[1] div.outer") {
		t.Errorf("ambiguous apply should list candidates:\n%s", out)
	}
	if out := f.mustRun(t, "build", f.doc); out != "" {
		t.Errorf("nothing should be applied, got %q", out)
	}

	out = f.mustRun(t, "apply", "--path", "#s1", "--choice", "1", "--style", "Main paragraph", f.doc)
	if out != "Main paragraph applied to .outer\n" {
		t.Errorf("apply with choice = %q", out)
	}
}

func TestApplyClass(t *testing.T) {
	f := newFixture(t)
	f.mustRun(t, "apply", "--class", "1st", "--style", "Main paragraph", f.doc)
	out := f.mustRun(t, "apply", "--class", ".para", "--style", "Opening paragraph", f.doc)
	if out != "Opening paragraph applied to .para\n" {
		t.Errorf("apply --class .para = %q", out)
	}

	out = f.mustRun(t, "build", f.doc)
	if !strings.Contains(out, `.\31 st { `) || !strings.Contains(out, "\n.para { ") {
		t.Errorf("build = %q", out)
	}

	out = f.mustRun(t, "undo", "--all", f.doc)
	if out != "2 tweaks removed\n" {
		t.Errorf("undo --all = %q", out)
	}
}

func TestApplyErrors(t *testing.T) {
	f := newFixture(t)
	tests := [][]string{
		{"apply", "--path", "#p1", f.doc},
		{"apply", "--path", "#p1", "--style", "no such style", f.doc},
		{"apply", "--style", "Main paragraph", f.doc},
		{"apply", "--path", "#absent", "--style", "Main paragraph", f.doc},
		{"apply", "--path", "#s1", "--choice", "5", "--style", "Main paragraph", f.doc},
		{"build", "--text-align", "sideways", f.doc},
		{"build", "--font-size", "0", f.doc},
	}
	for _, args := range tests {
		if _, err := f.run(t, args...); err == nil {
			t.Errorf("%v expected to fail", args)
		}
	}
	if out := f.mustRun(t, "build", f.doc); out != "" {
		t.Errorf("failed commands left tweaks behind: %q", out)
	}
}

func TestBuildLiveFile(t *testing.T) {
	f := newFixture(t)
	f.mustRun(t, "apply", "--path", "#p1", "--style", "Main paragraph", f.doc)

	live := filepath.Join(t.TempDir(), "live.yaml")
	if err := os.WriteFile(live, []byte("line_height: 1.5\ntext_align: left\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := f.mustRun(t, "build", "--live", live, "--text-align", "center", f.doc)
	want := ".inner { margin:0; padding:0; text-indent:1.5em; text-align:center; font-size:11pt; line-height:1.5em; }\n"
	if out != want {
		t.Errorf("build = %q, want %q", out, want)
	}
}

func TestInspect(t *testing.T) {
	f := newFixture(t)
	f.mustRun(t, "apply", "--path", "#p1", "--style", "Main paragraph", f.doc)

	out := f.mustRun(t, "inspect", "--path", "#s1", f.doc)
	for _, want := range []string{"Document: " + f.doc, "Selection: #s1 (ambiguous)", `Text:      "text"`, ".inner: 1", "font-size:11pt"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	out = f.mustRun(t, "inspect", "--selector", ".title*", f.doc)
	if !strings.Contains(out, "Selectors (0)") {
		t.Errorf("filtered inspect:\n%s", out)
	}
}

func TestWatchRequiresLive(t *testing.T) {
	f := newFixture(t)
	if _, err := f.run(t, "watch", f.doc); err == nil {
		t.Error("watch without live file expected to fail")
	}
}

package options

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestExtFromGlob(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"PlainExtension", "*.properties", ".properties"},
		{"NestedDirectory", "dir/*.properties", ".properties"},
		{"DoubleStar", "src/**/*.txt", ".txt"},
		{"NoExtension", "src/*", ""},
		{"DotFile", "src/.env", ""},
		{"BraceGroup", "*.{js,ts}", ""},
		{"BraceGroupSpanningDot", "*.{txt,properties}", ""},
		{"Extglob", "*.js?(x)", ""},
		{"ExtglobAt", "*.@(js|ts)", ""},
		{"CharacterClass", "*.[A-Z]", ""},
		{"Wildcard", "file.*", ""},
		{"BracesInDirectoryOnly", "{a,b}/*.css", ".css"},
		{"BraceGroupBeforeDot", "{a,b}.txt", ""},
		{"CharacterClassBeforeDot", "[ab].txt", ""},
		{"ExtglobBeforeDot", "src/@(x|y).css", ""},
		{"ParentDirectory", "..", ""},
		{"CurrentDirectory", ".", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtFromGlob(tt.pattern))
		})
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"main.js", ".js"},
		{"dir/[name].[chunkhash].js", ".js"},
		{".env", ""},
		{"..", ""},
		{"a/..", ""},
		{".", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Ext(tt.input))
		})
	}
}

func TestPluginOptions_Validate(t *testing.T) {
	assert.NoError(t, PluginOptions{Files: "*.txt"}.Validate())
	assert.ErrorIs(t, PluginOptions{}.Validate(), ErrNoFiles)
	assert.ErrorIs(t, PluginOptions{Files: "  "}.Validate(), ErrNoFiles)
}

func TestResolve(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "build", "dist")
	out := OutputConfig{Filename: "main.js", Path: base}

	tests := []struct {
		name       string
		opts       PluginOptions
		wantName   string
		wantOutput OutputPath
		wantTarget string
	}{
		{
			name:       "AllDefaults",
			opts:       PluginOptions{Files: "i18n/*.properties"},
			wantName:   "main.properties",
			wantOutput: AbsolutePath(base),
			wantTarget: "main.properties",
		},
		{
			name:       "IndeterminateExtension",
			opts:       PluginOptions{Files: "i18n/*.{json,properties}"},
			wantName:   "main",
			wantOutput: AbsolutePath(base),
			wantTarget: "main",
		},
		{
			name:       "RelativeOutputPath",
			opts:       PluginOptions{Files: "*.txt", OutputPath: "cases", Name: "all.txt"},
			wantName:   "all.txt",
			wantOutput: RelativePath("cases"),
			wantTarget: "cases/all.txt",
		},
		{
			name:       "RelativeOutputPathNotNormalized",
			opts:       PluginOptions{Files: "*.txt", OutputPath: "../shared", Name: "all.txt"},
			wantName:   "all.txt",
			wantOutput: RelativePath("../shared"),
			wantTarget: "../shared/all.txt",
		},
		{
			name:       "AbsoluteOutputPathBelowBase",
			opts:       PluginOptions{Files: "*.txt", OutputPath: filepath.Join(base, "text"), Name: "all.txt"},
			wantName:   "all.txt",
			wantOutput: AbsolutePath(filepath.Join(base, "text")),
			wantTarget: "text/all.txt",
		},
		{
			name:       "AbsoluteOutputPathOutsideBase",
			opts:       PluginOptions{Files: "*.txt", OutputPath: filepath.Join(string(filepath.Separator), "build", "other"), Name: "all.txt"},
			wantName:   "all.txt",
			wantOutput: AbsolutePath(filepath.Join(string(filepath.Separator), "build", "other")),
			wantTarget: "../other/all.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.opts, out)
			assert.Equal(t, tt.opts.Files, got.Files)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantOutput, got.OutputPath)
			assert.Equal(t, tt.wantTarget, got.Target)
		})
	}
}

func TestResolve_DefaultNameStripsOnlyLastExtension(t *testing.T) {
	got := Resolve(PluginOptions{Files: "*.txt"}, OutputConfig{Filename: "js/[name].[chunkhash].js", Path: "/dist"})
	assert.Equal(t, "[name].[chunkhash].txt", got.Name)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	opts := PluginOptions{Files: "*.txt"}
	_ = Resolve(opts, OutputConfig{Filename: "main.js", Path: "/dist"})
	assert.Equal(t, PluginOptions{Files: "*.txt"}, opts)
}

func TestAbsolutePath_RelativeTo_SameDirectoryIsEmpty(t *testing.T) {
	assert.Equal(t, "", AbsolutePath("/dist").RelativeTo("/dist"))
	assert.Equal(t, "", AbsolutePath("/dist/").RelativeTo("/dist"))
}

func segmentGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z0-9_-]{1,8}`)
}

func absPathGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		segs := rapid.SliceOfN(segmentGen(), 0, 5).Draw(t, "segments")
		return string(filepath.Separator) + filepath.Join(segs...)
	})
}

func TestProperty_ExtFromGlobPlainSegment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dir := rapid.SliceOfN(segmentGen(), 0, 3).Draw(t, "dir")
		ext := "." + rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "ext")
		pattern := strings.Join(append(dir, "*"+ext), "/")

		if got := ExtFromGlob(pattern); got != ext {
			t.Fatalf("ExtFromGlob(%q) = %q, want %q", pattern, got, ext)
		}
	})
}

func TestProperty_ExtFromGlobMagicSegment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "b")
		pattern := rapid.SampledFrom([]string{
			"*.{" + a + "," + b + "}",
			"*." + a + "?(" + b + ")",
			"*." + a + "+(" + b + ")",
			"*.[" + a + "]",
			"*.@(" + a + "|" + b + ")",
		}).Draw(t, "pattern")

		if got := ExtFromGlob(pattern); got != "" {
			t.Fatalf("ExtFromGlob(%q) = %q, want empty", pattern, got)
		}
	})
}

func TestProperty_ExtFromGlobGroupInTerminalSegment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dir := rapid.SliceOfN(segmentGen(), 0, 3).Draw(t, "dir")
		a := rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "b")
		stem := rapid.SampledFrom([]string{
			"{" + a + "," + b + "}",
			"[" + a + "]",
			"@(" + a + "|" + b + ")",
			a + "+(" + b + ")",
		}).Draw(t, "stem")
		ext := "." + rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "ext")
		pattern := strings.Join(append(dir, stem+ext), "/")

		if got := ExtFromGlob(pattern); got != "" {
			t.Fatalf("ExtFromGlob(%q) = %q, want empty", pattern, got)
		}
	})
}

func TestProperty_RelativeTargetInverseOfJoin(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := absPathGen().Draw(t, "start")
		target := absPathGen().Draw(t, "target")

		rel := AbsolutePath(target).RelativeTo(start)
		require.False(t, filepath.IsAbs(rel), "relative target %q must not be absolute", rel)
		if got := filepath.Join(start, rel); got != filepath.Clean(target) {
			t.Fatalf("Join(%q, %q) = %q, want %q", start, rel, got, target)
		}
	})
}

func TestProperty_RelativeOutputPathPassesThrough(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := absPathGen().Draw(t, "base")
		segs := rapid.SliceOfN(rapid.SampledFrom([]string{"..", ".", "cases", "a", "b"}), 1, 4).Draw(t, "segments")
		rel := strings.Join(segs, "/")

		p := ParseOutputPath(rel)
		require.IsType(t, RelativePath(""), p)
		if got := p.RelativeTo(base); got != rel {
			t.Fatalf("RelativeTo(%q) = %q, want %q", base, got, rel)
		}
	})
}

func TestProperty_ResolveIdempotentOnCompleteInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		opts := PluginOptions{
			Files:      rapid.StringMatching(`[a-z]{1,5}/\*\.[a-z{},]{1,6}`).Draw(t, "files"),
			OutputPath: rapid.OneOf(absPathGen(), segmentGen()).Draw(t, "outputPath"),
			Name:       rapid.StringMatching(`[a-z]{1,8}\.[a-z]{1,4}`).Draw(t, "name"),
		}
		out := OutputConfig{
			Filename: rapid.StringMatching(`[a-z]{1,8}\.js`).Draw(t, "filename"),
			Path:     absPathGen().Draw(t, "path"),
		}

		first := Resolve(opts, out)
		if got := first.Options(); got != opts {
			t.Fatalf("Resolve changed complete options: got %+v, want %+v", got, opts)
		}
		if second := Resolve(first.Options(), out); second != first {
			t.Fatalf("Resolve not idempotent: %+v != %+v", second, first)
		}
	})
}

package emitter

import (
	"path/filepath"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		descr string
		path  string
		sep   rune
		want  string
	}{{
		descr: "backslash separator",
		path:  `a\b\c`,
		sep:   '\\',
		want:  "a/b/c",
	}, {
		descr: "backslash separator, drive letter",
		path:  `C:\styles\main.styl`,
		sep:   '\\',
		want:  "C:/styles/main.styl",
	}, {
		descr: "backslash separator, mixed",
		path:  `a/b\c`,
		sep:   '\\',
		want:  "a/b/c",
	}, {
		descr: "slash separator keeps backslashes",
		path:  `a\b\c`,
		sep:   '/',
		want:  `a\b\c`,
	}, {
		descr: "slash separator",
		path:  "/src/main.styl",
		sep:   '/',
		want:  "/src/main.styl",
	}, {
		descr: "empty",
		path:  "",
		sep:   '\\',
		want:  "",
	}}

	for _, test := range tests {
		t.Run(test.descr, func(t *testing.T) {
			got := normalizePath(test.path, test.sep)
			if got != test.want {
				t.Errorf("Got: normalizePath(%q, %q) = %q. Want: %q.", test.path, test.sep, got, test.want)
			}
			if again := normalizePath(got, test.sep); again != got {
				t.Errorf("Got: normalizePath() is not idempotent: %q -> %q.", got, again)
			}
		})
	}
}

func TestNormalizePathHost(t *testing.T) {
	p := filepath.Join("styles", "partials", "base.styl")
	got := NormalizePath(p)
	want := filepath.ToSlash(p)
	if got != want {
		t.Errorf("Got: NormalizePath(%q) = %q. Want: %q.", p, got, want)
	}
	if again := NormalizePath(got); again != got {
		t.Errorf("Got: NormalizePath() is not idempotent: %q -> %q.", got, again)
	}
}

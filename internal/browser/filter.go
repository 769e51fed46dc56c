package browser

import (
	"path/filepath"
	"strings"

	"storebrowse/internal/config"
	"storebrowse/internal/errors"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"
)

// Options selects how the filter text is applied to entries.
type Options struct {
	// Mode is one of config.FilterSubstring, config.FilterGlob, config.FilterFuzzy.
	Mode string
	// Match is config.MatchPath to test the full joined path, or
	// config.MatchName to test only the base name.
	Match string
}

// DefaultOptions matches the filter text as a substring of the full path.
func DefaultOptions() Options {
	return Options{Mode: config.FilterSubstring, Match: config.MatchPath}
}

// OptionsFromConfig copies the filter settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{Mode: cfg.Filter.Mode, Match: cfg.Filter.Match}
}

// Substring keeps paths containing text. The comparison is case-sensitive and
// byte-wise over the UTF-8 path string; an empty text keeps everything.
func Substring(text string) Predicate {
	return func(path string) bool {
		return strings.Contains(path, text)
	}
}

// Glob keeps paths matching the gobwas/glob pattern. No separators are
// declared, so * also crosses path separators. An empty pattern keeps
// everything.
func Glob(pattern string) (Predicate, error) {
	if pattern == "" {
		return func(string) bool { return true }, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.NewInvalidInputError("invalid filter pattern", err).
			WithContext("pattern", pattern)
	}
	return g.Match, nil
}

// Fuzzy keeps paths that contain the characters of text in order, as
// sahilm/fuzzy defines a match. Unlike Substring and Glob it ignores case,
// so "MAIL" keeps mail.gpg. It is only used to keep or drop entries; the
// listing order is never changed by match score.
func Fuzzy(text string) Predicate {
	return func(path string) bool {
		if text == "" {
			return true
		}
		return len(fuzzy.Find(text, []string{path})) > 0
	}
}

// NewPredicate builds the predicate for text under opts.
func NewPredicate(text string, opts Options) (Predicate, error) {
	var match Predicate
	switch opts.Mode {
	case config.FilterSubstring, "":
		match = Substring(text)
	case config.FilterGlob:
		g, err := Glob(text)
		if err != nil {
			return nil, err
		}
		match = g
	case config.FilterFuzzy:
		match = Fuzzy(text)
	default:
		return nil, errors.NewInvalidInputError("unknown filter mode", nil).WithContext("mode", opts.Mode)
	}

	switch opts.Match {
	case config.MatchPath, "":
		return match, nil
	case config.MatchName:
		return func(path string) bool {
			return match(filepath.Base(path))
		}, nil
	default:
		return nil, errors.NewInvalidInputError("unknown filter target", nil).WithContext("match", opts.Match)
	}
}

// Derive lists root and keeps the entries the filter text selects.
// It re-reads the directory on every call.
func Derive(root, text string, opts Options) ([]string, error) {
	keep, err := NewPredicate(text, opts)
	if err != nil {
		return nil, err
	}
	return ListFiltered(root, keep)
}

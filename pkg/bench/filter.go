package bench

import (
	"regexp"

	"github.com/smykla-skalski/nanobench/pkg/logger"
)

// Filter decides whether a benchmark configuration runs, by matching a
// regular expression against the composed "set/function/size" name. The
// zero value matches everything.
type Filter struct {
	re *regexp.Regexp
}

// MatchAll returns a filter that accepts every benchmark name.
func MatchAll() Filter {
	return Filter{}
}

// NewFilter compiles pattern into a Filter. An empty pattern matches
// everything. A malformed pattern also degrades to match-everything, with a
// logged warning: a typo in a filter should not abort a long benchmark run.
func NewFilter(pattern string, log logger.Logger) Filter {
	if pattern == "" {
		return Filter{}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Error("invalid filter pattern, matching everything",
			"pattern", pattern,
			"error", err,
		)

		return Filter{}
	}

	return Filter{re: re}
}

// Match reports whether the benchmark name passes the filter.
func (f Filter) Match(name string) bool {
	return f.re == nil || f.re.MatchString(name)
}

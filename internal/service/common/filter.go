package common

import (
	"strings"

	"github.com/gobwas/glob"
)

// MatchPattern はワイルドカードパターンマッチングを行う
// ワイルドカード（* ? [ {）を含む場合はglob形式でマッチング、
// 含まない場合は部分一致で判定する
func MatchPattern(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?[{") {
		return strings.Contains(name, pattern)
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(name)
}

// MatchAny はいずれかのパターンにマッチするかを判定する
func MatchAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchPattern(name, pattern) {
			return true
		}
	}
	return false
}

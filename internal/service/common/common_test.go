package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"uat-web-1", "uat-*", true},
		{"prod-web-1", "uat-*", false},
		{"uat-web-1", "web", true},
		{"uat-web-1", "api", false},
		{"uat-db-2", "uat-{db,cache}-?", true},
		{"uat-web-2", "uat-{db,cache}-?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPattern(tt.name, tt.pattern))
		})
	}
}

func TestMatchAny(t *testing.T) {
	assert.True(t, MatchAny("uat-batch", []string{"prod-*", "uat-*"}))
	assert.False(t, MatchAny("uat-batch", nil))
}

func TestPrintTableAlignsWideCharacters(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, "対象一覧", []TableColumn{{Header: "種別"}, {Header: "ID"}}, [][]string{
		{"EC2", "i-0123"},
		{"Auroraクラスター", "uat-cluster-1"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "対象一覧:", lines[1])
	// 「Auroraクラスター」は表示幅16なので2列目は17桁目から始まる
	assert.Equal(t, "EC2              i-0123        ", lines[4])
	assert.Equal(t, "Auroraクラスター uat-cluster-1 ", lines[5])
}

package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrintTable はテーブル形式でデータを表示する（全角文字の表示幅を考慮）
func PrintTable(w io.Writer, title string, columns []TableColumn, data [][]string) {
	if title != "" {
		fmt.Fprintf(w, "\n%s:\n", title)
	}

	// 各列の最大表示幅を計算
	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range data {
		for i, cell := range row {
			if i < len(colWidths) {
				if width := runewidth.StringWidth(cell); width > colWidths[i] {
					colWidths[i] = width
				}
			}
		}
	}

	// ヘッダー
	for i, col := range columns {
		fmt.Fprintf(w, "%s ", runewidth.FillRight(col.Header, colWidths[i]))
	}
	fmt.Fprintln(w)

	// 区切り線
	for i := range columns {
		fmt.Fprintf(w, "%s ", strings.Repeat("-", colWidths[i]))
	}
	fmt.Fprintln(w)

	// データ行
	for _, row := range data {
		for i, cell := range row {
			if i < len(columns) {
				fmt.Fprintf(w, "%s ", runewidth.FillRight(cell, colWidths[i]))
			}
		}
		fmt.Fprintln(w)
	}
}

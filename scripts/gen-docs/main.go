package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"envstart/cmd"
)

// docs/README.md にルート、docs/<command>.md にサブコマンドごとのドキュメントを出力する
func main() {
	docsDir := "./docs"

	if err := os.RemoveAll(docsDir); err != nil {
		log.Fatalf("Failed to clean docs directory: %v", err)
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		log.Fatalf("Failed to create docs directory: %v", err)
	}

	if err := genMarkdown([]*cobra.Command{cmd.RootCmd}, "", filepath.Join(docsDir, "README.md")); err != nil {
		log.Fatalf("Failed to generate root documentation: %v", err)
	}

	count := 1
	for _, sub := range cmd.RootCmd.Commands() {
		if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
			continue
		}

		commands := []*cobra.Command{sub}
		for _, child := range sub.Commands() {
			if child.IsAvailableCommand() && !child.IsAdditionalHelpTopicCommand() {
				commands = append(commands, child)
			}
		}

		filename := filepath.Join(docsDir, sub.Name()+".md")
		if err := genMarkdown(commands, sub.Name(), filename); err != nil {
			log.Printf("Failed to generate documentation for %s: %v", sub.Name(), err)
			continue
		}
		count++
	}

	fmt.Printf("✅ Documentation generated in %s (%d files)\n", docsDir, count)
}

// linkHandler は envstart_schedule_ls のようなリンクを schedule#envstart-schedule-ls に変換する
func linkHandler(name string) string {
	base := strings.TrimSuffix(name, ".md")
	if base == cmd.AppName {
		return "README.md"
	}

	parts := strings.Split(base, "_")
	if len(parts) < 2 || parts[0] != cmd.AppName {
		return name
	}
	if len(parts) > 2 {
		return parts[1] + ".md#" + strings.ReplaceAll(base, "_", "-")
	}
	return parts[1] + ".md"
}

// genMarkdown は複数のコマンドのドキュメントを1つのファイルにまとめる（titleが空なら目次なし）
func genMarkdown(commands []*cobra.Command, title string, filename string) error {
	var content strings.Builder

	if title != "" {
		fmt.Fprintf(&content, "# %s Commands\n\n", title)
		content.WriteString("## Table of Contents\n\n")
		for _, c := range commands {
			fmt.Fprintf(&content, "- [%s](#%s)\n", c.CommandPath(), strings.ReplaceAll(c.CommandPath(), " ", "-"))
		}
		content.WriteString("\n---\n\n")
	}

	for _, c := range commands {
		buf := new(bytes.Buffer)
		if err := doc.GenMarkdownCustom(c, buf, linkHandler); err != nil {
			return fmt.Errorf("failed to generate markdown for %s: %w", c.CommandPath(), err)
		}
		content.Write(buf.Bytes())
		if title != "" {
			content.WriteString("\n---\n\n")
		}
	}

	return os.WriteFile(filename, []byte(content.String()), 0644)
}

package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed docs/*.md
var docsFS embed.FS

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: MsgDocsShort,
	Long:  "Display documentation topics beyond command help. Run without arguments to list available topics.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listTopics(cmd)
		}
		return renderTopic(cmd, args[0])
	},
}

func listTopics(cmd *cobra.Command) error {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return err
	}

	var topics []string
	for _, entry := range entries {
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)

	fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
	for _, topic := range topics {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", topic)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'local-cli docs <topic>' to read one.")
	return nil
}

func renderTopic(cmd *cobra.Command, topic string) error {
	content, err := docsFS.ReadFile("docs/" + topic + ".md")
	if err != nil {
		return fmt.Errorf("unknown topic %q (run 'local-cli docs' to list topics)", topic)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// fall back to raw markdown
		fmt.Fprint(cmd.OutOrStdout(), string(content))
		return nil
	}

	rendered, err := renderer.Render(string(content))
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), string(content))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrisgosselin92/docgenautomation/cmd/docgen/ui"
	"github.com/chrisgosselin92/docgenautomation/internal/docx"
	"github.com/chrisgosselin92/docgenautomation/internal/token"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect .docx templates",
	RunE:  runTemplatesList,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates in the templates directory",
	RunE:  runTemplatesList,
}

var templatesScanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Report every placeholder in a template, grouped by family",
	Long: `Scan reads a .docx file and prints its placeholder inventory: each
family's distinct names with occurrence counts, plus flags on stored
variables and modifier variants on dynamic blocks. Run it on a new
template before the first generation to catch typos in placeholder
names.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatesScan,
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesScanCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	templates, err := listTemplates()
	if err != nil {
		return err
	}

	tbl := ui.NewTable("Templates in "+cfg.Paths.Templates, "File")
	for _, tpl := range templates {
		tbl.AddRow(filepath.Base(tpl))
	}
	fmt.Print(tbl.Render(ui.DefaultStyles()))
	return nil
}

func runTemplatesScan(cmd *cobra.Command, args []string) error {
	// A bare filename is looked up in the templates directory.
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if candidate := filepath.Join(cfg.Paths.Templates, path); fileExists(candidate) {
			path = candidate
		}
	}

	doc, err := docx.Open(path)
	if err != nil {
		return fmt.Errorf("open template %s: %w", path, err)
	}
	stream := token.Scan(doc.Text())

	counts := map[token.Kind]int{}
	names := map[token.Kind]map[string]int{}
	for _, tok := range stream.Placeholders() {
		counts[tok.Kind]++
		if names[tok.Kind] == nil {
			names[tok.Kind] = map[string]int{}
		}
		names[tok.Kind][tok.Name]++
	}

	fmt.Printf("%s: %d placeholders\n\n", filepath.Base(path), len(stream.Placeholders()))

	styles := ui.DefaultStyles()

	stored := ui.NewTable("Stored {{...}}", "Name", "Count", "Flags")
	for _, name := range sortedKeys(stream.Variables) {
		meta := stream.Variables[name]
		stored.AddRow(name, strconv.Itoa(meta.Occurrences), flagList(meta.FlagsSeen))
	}
	fmt.Print(stored.Render(styles))

	dynamic := ui.NewTable("Dynamic <<...>>", "Base", "Count", "Modifiers")
	for _, base := range sortedKeys(stream.Blocks) {
		block := stream.Blocks[base]
		dynamic.AddRow(base, strconv.Itoa(block.Occurrences), strings.Join(block.Modifiers, " "))
	}
	fmt.Print(dynamic.Render(styles))

	for _, family := range []struct {
		kind  token.Kind
		title string
	}{
		{token.Attorney, "Attorney ((...))"},
		{token.DocSpecific, "Doc-specific {@...@}"},
		{token.Grammar, "Grammar (@...@)"},
		{token.Bracket, "Bracket [[...]]"},
	} {
		tbl := ui.NewTable(family.title, "Name", "Count")
		for _, name := range sortedKeys(names[family.kind]) {
			tbl.AddRow(name, strconv.Itoa(names[family.kind][name]))
		}
		fmt.Print(tbl.Render(styles))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flagList(flags map[string]bool) string {
	var out []string
	for f := range flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

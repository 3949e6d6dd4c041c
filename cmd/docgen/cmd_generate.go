package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisgosselin92/docgenautomation/cmd/docgen/ui"
	"github.com/chrisgosselin92/docgenautomation/internal/dynamic"
	"github.com/chrisgosselin92/docgenautomation/internal/resolve"
	"github.com/chrisgosselin92/docgenautomation/internal/store"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

const timeRounding = 10 * time.Millisecond

var (
	generateClientID   int64
	generateAllClients bool
	generateTemplate   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documents for clients from .docx templates",
	Long: `Generate runs every selected (client, template) pair in sequence.

With no flags both the client and the template are picked interactively.
A pair the operator cancels is skipped without writing output; the batch
continues with the next pair and every pair appears in the summary.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int64Var(&generateClientID, "client", 0, "generate for a single client ID")
	generateCmd.Flags().BoolVar(&generateAllClients, "all-clients", false, "generate for every client on the roster")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "template file glob, relative to the templates directory")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateClientID != 0 && generateAllClients {
		return fmt.Errorf("--client and --all-clients are mutually exclusive")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	prompter := ui.NewPrompter()

	clients, err := selectClients(st, prompter)
	if err != nil {
		return err
	}
	templates, err := selectTemplates(prompter)
	if err != nil {
		return err
	}

	pairs := make([]resolve.Pair, 0, len(clients)*len(templates))
	for _, c := range clients {
		for _, tpl := range templates {
			pairs = append(pairs, resolve.Pair{Client: c, Template: tpl})
		}
	}

	bank := dynamic.OpenBank(cfg.Paths.ResponseBank)
	defer bank.Close()
	dyn := dynamic.NewResolver(bank, dynamic.NewCache(), prompter)
	res := resolve.NewResolver(st, dyn, prompter)

	summary := resolve.NewOrchestrator(res, cfg.Paths.Output).Run(pairs)
	printSummary(summary)
	return nil
}

// selectClients resolves the --client / --all-clients flags, falling
// back to an interactive roster loop that lets the operator pick any
// number of clients.
func selectClients(st *store.Store, prompter *ui.Prompter) ([]types.Client, error) {
	if generateAllClients {
		clients, err := st.ListClients()
		if err != nil {
			return nil, fmt.Errorf("list clients: %w", err)
		}
		if len(clients) == 0 {
			return nil, fmt.Errorf("no clients on the roster")
		}
		return clients, nil
	}
	if generateClientID != 0 {
		c, err := st.GetClient(generateClientID)
		if err != nil {
			return nil, fmt.Errorf("client %d: %w", generateClientID, err)
		}
		return []types.Client{c}, nil
	}

	roster, err := st.ListClients()
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("no clients on the roster; add one with 'docgen clients add'")
	}

	var picked []types.Client
	chosen := map[int64]bool{}
	for {
		options := make([]string, 0, len(roster)+1)
		remaining := make([]types.Client, 0, len(roster))
		for _, c := range roster {
			if !chosen[c.ID] {
				options = append(options, c.Label())
				remaining = append(remaining, c)
			}
		}
		if len(picked) > 0 {
			options = append(options, "Done selecting")
		}
		if len(remaining) == 0 {
			break
		}

		i, err := prompter.Select("Select a client", options)
		if err != nil {
			return nil, err
		}
		if i == len(remaining) {
			break
		}
		picked = append(picked, remaining[i])
		chosen[remaining[i].ID] = true
	}
	return picked, nil
}

// selectTemplates resolves the --template glob, falling back to an
// interactive pick of one template or all of them.
func selectTemplates(prompter *ui.Prompter) ([]string, error) {
	if generateTemplate != "" {
		matches, err := filepath.Glob(filepath.Join(cfg.Paths.Templates, generateTemplate))
		if err != nil {
			return nil, fmt.Errorf("template glob %q: %w", generateTemplate, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no templates match %q under %s", generateTemplate, cfg.Paths.Templates)
		}
		sort.Strings(matches)
		return matches, nil
	}

	all, err := listTemplates()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no .docx templates under %s", cfg.Paths.Templates)
	}

	options := make([]string, 0, len(all)+1)
	for _, tpl := range all {
		options = append(options, filepath.Base(tpl))
	}
	options = append(options, "All templates")

	i, err := prompter.Select("Select a template", options)
	if err != nil {
		return nil, err
	}
	if i == len(all) {
		return all, nil
	}
	return []string{all[i]}, nil
}

// listTemplates returns the sorted .docx files in the templates dir.
func listTemplates() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(cfg.Paths.Templates, "*.docx"))
	if err != nil {
		return nil, fmt.Errorf("scan templates dir %s: %w", cfg.Paths.Templates, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func printSummary(summary types.BatchSummary) {
	tbl := ui.NewTable("Generation run "+summary.RunID, "Client", "Template", "Status", "Output", "Elapsed")
	for _, r := range summary.Results {
		out := r.OutputPath
		if r.Err != nil {
			out = r.Err.Error()
		}
		tbl.AddRow(
			fmt.Sprintf("%d", r.ClientID),
			filepath.Base(r.Template),
			r.Status.String(),
			out,
			r.Elapsed.Round(timeRounding).String(),
		)
	}
	fmt.Print(tbl.Render(ui.DefaultStyles()))

	ok, failed, cancelled := summary.Counts()
	fmt.Printf("%d succeeded, %d failed, %d cancelled\n", ok, failed, cancelled)
}

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrisgosselin92/docgenautomation/cmd/docgen/ui"
	"github.com/chrisgosselin92/docgenautomation/internal/expr"
	"github.com/chrisgosselin92/docgenautomation/internal/store"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "Manage variable metadata and combo definitions",
	RunE:  runVariablesList,
}

var variablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all variable metadata",
	RunE:  runVariablesList,
}

var (
	metaType        string
	metaCategory    string
	metaDescription string
	metaDerived     string
)

var variablesMetaCmd = &cobra.Command{
	Use:   "meta <name>",
	Short: "Show or set metadata for a variable",
	Long: `With no flags, meta prints the variable's metadata. Any flag switches
to update mode; unset flags keep their stored values. Setting --derived
marks the variable derived, so its value is computed from the expression
at snapshot time instead of being read from the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runVariablesMeta,
}

var variablesComboCmd = &cobra.Command{
	Use:   "combo",
	Short: "Manage combo variable definitions",
	RunE:  runComboList,
}

var variablesComboListCmd = &cobra.Command{
	Use:   "list",
	Short: "List combo definitions",
	RunE:  runComboList,
}

var (
	comboComponents string
	comboSeparator  string
)

var variablesComboSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or replace a combo definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runComboSet,
}

var variablesComboDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a combo definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runComboDelete,
}

var evalClientID int64

var variablesEvalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a derived expression against a client snapshot",
	Long: `Eval computes an expression the way the snapshot builder does, using
the client's stored variables as context. Useful for testing a derived
expression before saving it with 'variables meta --derived'.`,
	Args: cobra.ExactArgs(1),
	RunE: runVariablesEval,
}

func init() {
	variablesMetaCmd.Flags().StringVar(&metaType, "type", "", "variable type (text, date, number)")
	variablesMetaCmd.Flags().StringVar(&metaCategory, "category", "", "grouping category")
	variablesMetaCmd.Flags().StringVar(&metaDescription, "description", "", "description shown at prompts")
	variablesMetaCmd.Flags().StringVar(&metaDerived, "derived", "", "derived expression; marks the variable derived")

	variablesComboSetCmd.Flags().StringVar(&comboComponents, "components", "", "component variable names, space separated")
	variablesComboSetCmd.Flags().StringVar(&comboSeparator, "sep", " ", "separator joined between components")

	variablesEvalCmd.Flags().Int64Var(&evalClientID, "client", 0, "client whose variables form the context")
	_ = variablesEvalCmd.MarkFlagRequired("client")

	variablesComboCmd.AddCommand(variablesComboListCmd)
	variablesComboCmd.AddCommand(variablesComboSetCmd)
	variablesComboCmd.AddCommand(variablesComboDeleteCmd)

	variablesCmd.AddCommand(variablesListCmd)
	variablesCmd.AddCommand(variablesMetaCmd)
	variablesCmd.AddCommand(variablesComboCmd)
	variablesCmd.AddCommand(variablesEvalCmd)
}

func runVariablesList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	metas, err := st.ListMeta()
	if err != nil {
		return fmt.Errorf("list variables: %w", err)
	}

	tbl := ui.NewTable("Variables", "Name", "Type", "Category", "Derived expression")
	for _, m := range metas {
		derived := ""
		if m.IsDerived {
			derived = m.DerivedExpression
		}
		tbl.AddRow(m.VarName, m.VarType, m.Category, derived)
	}
	fmt.Print(tbl.Render(ui.DefaultStyles()))
	return nil
}

func runVariablesMeta(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	m, err := st.GetMeta(name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		m = types.VariableMeta{VarName: name, VarType: "text"}
	case err != nil:
		return fmt.Errorf("variable %s: %w", name, err)
	}

	if !cmd.Flags().Changed("type") && !cmd.Flags().Changed("category") &&
		!cmd.Flags().Changed("description") && !cmd.Flags().Changed("derived") {
		fmt.Printf("Name:        %s\n", m.VarName)
		fmt.Printf("Type:        %s\n", m.VarType)
		fmt.Printf("Category:    %s\n", m.Category)
		fmt.Printf("Description: %s\n", m.Description)
		if m.IsDerived {
			fmt.Printf("Derived:     %s\n", m.DerivedExpression)
		}
		return nil
	}

	if cmd.Flags().Changed("type") {
		m.VarType = metaType
	}
	if cmd.Flags().Changed("category") {
		m.Category = metaCategory
	}
	if cmd.Flags().Changed("description") {
		m.Description = metaDescription
	}
	if cmd.Flags().Changed("derived") {
		m.IsDerived = metaDerived != ""
		m.DerivedExpression = metaDerived
	}

	if err := st.SetMeta(m); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	fmt.Printf("Saved metadata for %s\n", name)
	return nil
}

func runComboList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	combos, err := st.ListCombos()
	if err != nil {
		return fmt.Errorf("list combos: %w", err)
	}

	tbl := ui.NewTable("Combo variables", "Name", "Components", "Separator")
	for _, c := range combos {
		tbl.AddRow(c.Name, strings.Join(c.Components, " "), strconv.Quote(c.Separator))
	}
	fmt.Print(tbl.Render(ui.DefaultStyles()))
	return nil
}

func runComboSet(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))
	components := strings.Fields(strings.ToLower(comboComponents))
	if len(components) == 0 {
		return fmt.Errorf("--components is required")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	combo := types.ComboVariable{
		Name:       name,
		Components: components,
		Separator:  comboSeparator,
	}
	if err := st.UpsertCombo(combo); err != nil {
		return fmt.Errorf("save combo %s: %w", name, err)
	}
	fmt.Printf("Saved combo %s = %s\n", name, strings.Join(components, comboSeparator))
	return nil
}

func runComboDelete(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteCombo(name); err != nil {
		return fmt.Errorf("delete combo %s: %w", name, err)
	}
	fmt.Printf("Deleted combo %s\n", name)
	return nil
}

func runVariablesEval(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.GetClient(evalClientID); err != nil {
		return fmt.Errorf("client %d: %w", evalClientID, err)
	}
	snapshot, err := st.Snapshot(types.EntityClient, evalClientID)
	if err != nil {
		return fmt.Errorf("snapshot for client %d: %w", evalClientID, err)
	}

	result := expr.EvaluateSep(args[0], snapshot, cfg.Generation.DerivedSeparator)
	fmt.Println(result)
	return nil
}

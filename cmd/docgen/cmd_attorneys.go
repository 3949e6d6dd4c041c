package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chrisgosselin92/docgenautomation/cmd/docgen/ui"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

var attorneysCmd = &cobra.Command{
	Use:   "attorneys",
	Short: "Manage opposing-counsel records",
	RunE:  runAttorneysList,
}

var attorneysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all attorneys",
	RunE:  runAttorneysList,
}

var (
	attorneyFirst string
	attorneyLast  string
	attorneyFirm  string
	attorneyEmail string
	attorneyPhone string
	attorneyBar   string
)

var attorneysAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an attorney record",
	RunE:  runAttorneysAdd,
}

var attorneysDeleteCmd = &cobra.Command{
	Use:   "delete <attorney-id>",
	Short: "Delete an attorney record",
	Long: `Delete removes an attorney. Clients assigned to the attorney are
left on the roster with no opposing counsel; the next generation run
will prompt to assign one.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttorneysDelete,
}

func init() {
	attorneysAddCmd.Flags().StringVar(&attorneyFirst, "first", "", "first name")
	attorneysAddCmd.Flags().StringVar(&attorneyLast, "last", "", "last name")
	attorneysAddCmd.Flags().StringVar(&attorneyFirm, "firm", "", "firm name")
	attorneysAddCmd.Flags().StringVar(&attorneyEmail, "email", "", "email address")
	attorneysAddCmd.Flags().StringVar(&attorneyPhone, "phone", "", "phone number")
	attorneysAddCmd.Flags().StringVar(&attorneyBar, "bar", "", "bar number")

	attorneysCmd.AddCommand(attorneysListCmd)
	attorneysCmd.AddCommand(attorneysAddCmd)
	attorneysCmd.AddCommand(attorneysDeleteCmd)
}

func runAttorneysList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	attorneys, err := st.ListAttorneys()
	if err != nil {
		return fmt.Errorf("list attorneys: %w", err)
	}

	tbl := ui.NewTable("Attorneys", "ID", "Name", "Firm", "Email", "Phone", "Bar")
	for _, a := range attorneys {
		tbl.AddRow(
			strconv.FormatInt(a.ID, 10),
			a.FullName(),
			a.FirmName,
			a.Email,
			a.Phone,
			a.BarNumber,
		)
	}
	fmt.Print(tbl.Render(ui.DefaultStyles()))
	return nil
}

func runAttorneysAdd(cmd *cobra.Command, args []string) error {
	if attorneyFirst == "" && attorneyLast == "" {
		return fmt.Errorf("at least one of --first / --last is required")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.CreateAttorney(types.Attorney{
		FirstName: attorneyFirst,
		LastName:  attorneyLast,
		FirmName:  attorneyFirm,
		Email:     attorneyEmail,
		Phone:     attorneyPhone,
		BarNumber: attorneyBar,
	})
	if err != nil {
		return fmt.Errorf("create attorney: %w", err)
	}
	fmt.Printf("Created attorney %d\n", id)
	return nil
}

func runAttorneysDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("attorney ID %q: %w", args[0], err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteAttorney(id); err != nil {
		return fmt.Errorf("delete attorney %d: %w", id, err)
	}
	fmt.Printf("Deleted attorney %d\n", id)
	return nil
}

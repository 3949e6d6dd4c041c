package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrisgosselin92/docgenautomation/cmd/docgen/ui"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage the client roster",
	RunE:  runClientsList,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE:  runClientsList,
}

var (
	clientFirst    string
	clientLast     string
	clientBirthday string
	clientMatter   string
)

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client to the roster",
	RunE:  runClientsAdd,
}

var clientsShowCmd = &cobra.Command{
	Use:   "show <client-id>",
	Short: "Show a client and their stored variables",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsShow,
}

var clientsSetCmd = &cobra.Command{
	Use:   "set <client-id> <name> <value>",
	Short: "Set a stored variable for a client",
	Args:  cobra.ExactArgs(3),
	RunE:  runClientsSet,
}

func init() {
	clientsAddCmd.Flags().StringVar(&clientFirst, "first", "", "first name")
	clientsAddCmd.Flags().StringVar(&clientLast, "last", "", "last name")
	clientsAddCmd.Flags().StringVar(&clientBirthday, "birthday", "", "birthday (MM/DD/YYYY)")
	clientsAddCmd.Flags().StringVar(&clientMatter, "matter", "", "matter ID (unique)")

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsSetCmd)
}

func runClientsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	clients, err := st.ListClients()
	if err != nil {
		return fmt.Errorf("list clients: %w", err)
	}

	tbl := ui.NewTable("Clients", "ID", "Name", "Matter", "Birthday", "Counsel")
	for _, c := range clients {
		counsel := "-"
		if c.OpposingCounselID != 0 {
			counsel = strconv.FormatInt(c.OpposingCounselID, 10)
		}
		tbl.AddRow(
			strconv.FormatInt(c.ID, 10),
			strings.TrimSpace(c.FirstName+" "+c.LastName),
			c.MatterID,
			c.Birthday,
			counsel,
		)
	}
	fmt.Print(tbl.Render(ui.DefaultStyles()))
	return nil
}

func runClientsAdd(cmd *cobra.Command, args []string) error {
	if clientFirst == "" && clientLast == "" {
		return fmt.Errorf("at least one of --first / --last is required")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.CreateClient(types.Client{
		FirstName: clientFirst,
		LastName:  clientLast,
		Birthday:  clientBirthday,
		MatterID:  clientMatter,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	fmt.Printf("Created client %d\n", id)
	return nil
}

func runClientsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("client ID %q: %w", args[0], err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.GetClient(id)
	if err != nil {
		return fmt.Errorf("client %d: %w", id, err)
	}
	fmt.Println(c.Label())
	if c.Birthday != "" {
		fmt.Printf("Birthday: %s\n", c.Birthday)
	}
	if c.OpposingCounselID != 0 {
		if a, err := st.GetAttorney(c.OpposingCounselID); err == nil {
			fmt.Printf("Opposing counsel: %s\n", a.Label())
		}
	}

	values, err := st.RawValues(types.EntityClient, id)
	if err != nil {
		return fmt.Errorf("client %d variables: %w", id, err)
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	tbl := ui.NewTable("Stored variables", "Name", "Value")
	for _, name := range names {
		tbl.AddRow(name, values[name])
	}
	fmt.Print(tbl.Render(ui.DefaultStyles()))
	return nil
}

func runClientsSet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("client ID %q: %w", args[0], err)
	}
	name := strings.ToLower(strings.TrimSpace(args[1]))
	if name == "" {
		return fmt.Errorf("variable name is empty")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.GetClient(id); err != nil {
		return fmt.Errorf("client %d: %w", id, err)
	}
	if err := st.SetValue(types.EntityClient, id, name, args[2]); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	fmt.Printf("Set %s for client %d\n", name, id)
	return nil
}

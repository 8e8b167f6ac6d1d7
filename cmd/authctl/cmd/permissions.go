package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/permissions"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Fetch and print the session's capability grants",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := manager.FetchPermissions(cmd.Context()); err != nil {
			return err
		}

		set := manager.Snapshot().Permissions
		if len(set) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No permissions granted")
			return nil
		}

		keys := make([]string, 0, len(set))
		for key := range set {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MODULE\tNAME\tACTIONS\tROUTE")
		for _, key := range keys {
			grant := set[key]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, grant.Name, actionList(grant), grant.Route)
		}
		return w.Flush()
	},
}

func actionList(cap permissions.Capability) string {
	var actions []string
	if cap.CanView {
		actions = append(actions, "view")
	}
	if cap.CanViewAll {
		actions = append(actions, "view-all")
	}
	if cap.CanAdd {
		actions = append(actions, "add")
	}
	if cap.CanEdit {
		actions = append(actions, "edit")
	}
	if cap.CanDelete {
		actions = append(actions, "delete")
	}
	if len(actions) == 0 {
		return "-"
	}
	return strings.Join(actions, ",")
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/beehive/jxunxo/pkg/version"
	"github.com/spf13/cobra"
)

// VersionCmd prints build information.
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return fmt.Errorf("failed to get json flag: %w", err)
			}
			info := version.Get()
			if asJSON {
				data, err := json.Marshal(info)
				if err != nil {
					return fmt.Errorf("failed to encode version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "jxunxo %s\ncommit: %s\nbuilt: %s\n",
				info.Version, info.CommitHash, info.BuildDate)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print version information as JSON")
	return cmd
}

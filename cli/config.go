package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/beehive/jxunxo/pkg/config"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// ConfigCmd returns the config command group.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect jxunxo configuration",
	}
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where each value came from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, service, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			entries, err := configEntries(cfg, service)
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return writeConfigJSON(cmd.OutOrStdout(), entries)
			case "table":
				return writeConfigTable(cmd.OutOrStdout(), entries)
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "table", "Output format (table, json)")
	return cmd
}

type configEntry struct {
	Key    string            `json:"key"`
	Value  any               `json:"value"`
	Source config.SourceType `json:"source"`
}

// configEntries flattens cfg into dotted keys sorted by name.
func configEntries(cfg *config.Config, service config.Service) ([]configEntry, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to flatten configuration: %w", err)
	}
	keys := k.Keys()
	sort.Strings(keys)
	entries := make([]configEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, configEntry{
			Key:    key,
			Value:  k.Get(key),
			Source: service.GetSource(key),
		})
	}
	return entries, nil
}

func writeConfigTable(w io.Writer, entries []configEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%v\t%s\n", e.Key, e.Value, e.Source)
	}
	return tw.Flush()
}

func writeConfigJSON(w io.Writer, entries []configEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

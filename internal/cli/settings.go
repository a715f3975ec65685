package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSettingsCmd создаёт группу команд для настроек.
func NewSettingsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage scheduler settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(clientFn, outputFn),
		newSettingsSetCmd(clientFn, outputFn),
	)

	return cmd
}

func settingsRows(settings map[string]string) [][]string {
	rows := make([][]string, 0, len(settings))
	for _, key := range []string{"default_timezone", "delete_data_on_uninstall"} {
		if value, ok := settings[key]; ok {
			rows = append(rows, []string{key, value})
		}
	}
	for key, value := range settings {
		if key != "default_timezone" && key != "delete_data_on_uninstall" {
			rows = append(rows, []string{key, value})
		}
	}
	return rows
}

func newSettingsShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			settings, err := client.GetSettings()
			if err != nil {
				return err
			}

			out.Print([]string{"KEY", "VALUE"}, settingsRows(settings), settings)
			return nil
		},
	}
}

func newSettingsSetCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var defaultTimezone string
	var deleteData string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := UpdateSettingsRequest{}
			if cmd.Flags().Changed("default-timezone") {
				req.DefaultTimezone = &defaultTimezone
			}
			if cmd.Flags().Changed("delete-data-on-uninstall") {
				req.DeleteDataOnUninstall = &deleteData
			}
			if req.DefaultTimezone == nil && req.DeleteDataOnUninstall == nil {
				return fmt.Errorf("nothing to change, pass at least one flag")
			}

			settings, err := client.UpdateSettings(req)
			if err != nil {
				return err
			}

			out.Success("Settings updated")
			out.Print([]string{"KEY", "VALUE"}, settingsRows(settings), settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&defaultTimezone, "default-timezone", "", "Default IANA timezone for products without an override")
	cmd.Flags().StringVar(&deleteData, "delete-data-on-uninstall", "", `Allow dropping all data on uninstall ("yes" or "no")`)

	return cmd
}

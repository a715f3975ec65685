package cli

import (
	"github.com/spf13/cobra"
)

// NewTimezoneCmd создаёт группу команд для каталога таймзон.
func NewTimezoneCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timezone",
		Short: "Inspect supported timezones",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported timezones with current offsets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			zones, err := client.ListTimezones()
			if err != nil {
				return err
			}

			headers := []string{"ID", "OFFSET"}
			rows := make([][]string, len(zones))
			for i, z := range zones {
				rows[i] = []string{z.ID, z.Offset}
			}

			out.Print(headers, rows, zones)
			return nil
		},
	})

	return cmd
}

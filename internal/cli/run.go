package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewRunCmd создаёт группу команд для запуска и мониторинга прогонов.
func NewRunCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Trigger and inspect scheduler runs",
	}

	cmd.AddCommand(
		newRunNowCmd(clientFn, outputFn),
		newRunStatusCmd(clientFn, outputFn),
		newRunReportCmd(clientFn, outputFn),
	)

	return cmd
}

func newRunNowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Run due transitions immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			result, err := client.TriggerRun()
			if err != nil {
				return err
			}

			if !result.Triggered {
				msg := "Nothing is due"
				if result.NextScheduledAt != "" {
					msg += ", next transition at " + result.NextScheduledAt
				}
				out.Success(msg)
			} else {
				out.Success("Run triggered, due entries: " + strconv.Itoa(result.Due))
			}

			out.Print(
				[]string{"TRIGGERED", "DUE", "NEXT_SCHEDULED_AT"},
				[][]string{{
					strconv.FormatBool(result.Triggered),
					strconv.Itoa(result.Due),
					result.NextScheduledAt,
				}},
				result,
			)
			return nil
		},
	}
}

func newRunStatusCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show scheduler queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			status, err := client.SchedulerStatus()
			if err != nil {
				return err
			}

			out.Print(
				[]string{"DUE", "PENDING", "NEXT_SCHEDULED_AT"},
				[][]string{{
					strconv.Itoa(status.Due),
					strconv.Itoa(status.Pending),
					status.NextScheduledAt,
				}},
				status,
			)
			return nil
		},
	}
}

func newRunReportCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the latest run report",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			report, err := client.LatestReport()
			if err != nil {
				return err
			}

			out.Success(report.Summary)

			headers := []string{"RESULT", "SCHEDULE_ID", "PRODUCT_ID", "NAME"}
			var rows [][]string
			for _, item := range report.Succeeded {
				rows = append(rows, reportRow("published", item))
			}
			for _, item := range report.Failed {
				rows = append(rows, reportRow("failed", item))
			}

			out.Print(headers, rows, report)
			return nil
		},
	}
}

func reportRow(result string, item ReportItem) []string {
	return []string{
		result,
		strconv.FormatInt(item.ScheduleID, 10),
		strconv.FormatInt(item.ProductID, 10),
		item.Name,
	}
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewScheduleCmd создаёт группу команд для управления расписаниями.
func NewScheduleCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage publication schedules",
	}

	cmd.AddCommand(
		newScheduleListCmd(clientFn, outputFn),
		newScheduleSetCmd(clientFn, outputFn),
		newScheduleCancelCmd(clientFn, outputFn),
		newScheduleDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newScheduleListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedules, err := client.ListSchedules()
			if err != nil {
				return err
			}

			headers := []string{"ID", "PRODUCT_ID", "PRODUCT", "STATUS", "KIND", "LOCAL_TIME", "TIMEZONE"}
			rows := make([][]string, len(schedules))
			for i, s := range schedules {
				rows[i] = []string{
					strconv.FormatInt(s.ID, 10),
					strconv.FormatInt(s.ProductID, 10),
					s.ProductName,
					s.ProductStatus,
					s.Kind,
					s.LocalDate + " " + s.LocalTime,
					s.Timezone,
				}
			}

			out.Print(headers, rows, schedules)
			return nil
		},
	}
}

func newScheduleSetCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var date string
	var clock string
	var timezone string
	var kind string

	cmd := &cobra.Command{
		Use:   "set PRODUCT_ID",
		Short: "Schedule a product transition",
		Long: `Schedule a product transition at a local date and time.

The previous pending schedule of the product, if any, is replaced.
Date and time are interpreted in the product's timezone: --timezone
if given, otherwise the stored product override, the default timezone
setting, the TZ of the server, or UTC.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			productID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			schedule, err := client.SetSchedule(productID, SetScheduleRequest{
				Date:     date,
				Time:     clock,
				Timezone: timezone,
				Kind:     kind,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Schedule set: %d", schedule.ID))
			out.Print(
				[]string{"ID", "PRODUCT_ID", "KIND", "SCHEDULED_AT (UTC)"},
				[][]string{{
					strconv.FormatInt(schedule.ID, 10),
					strconv.FormatInt(schedule.ProductID, 10),
					schedule.Kind,
					schedule.ScheduledAt,
				}},
				schedule,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Local date, e.g. 2026-09-01 (required)")
	cmd.Flags().StringVar(&clock, "time", "", "Local time, e.g. 09:30 (required)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone to pin to the product")
	cmd.Flags().StringVar(&kind, "kind", "visibility", "Transition kind: visibility or status")

	return cmd
}

func newScheduleCancelCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel PRODUCT_ID",
		Short: "Cancel the pending schedule of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			productID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			if err := client.CancelSchedule(productID); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Schedule cancelled for product %d", productID))
			return nil
		},
	}
}

func newScheduleDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SCHEDULE_ID",
		Short: "Delete a schedule entry by its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[0])
			}

			if err := client.DeleteSchedule(id); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Schedule deleted: %d", id))
			return nil
		},
	}
}

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewSeatsCommand constructs the `seats` command group and subcommands.
func NewSeatsCommand(baseURL BaseURLFunc) *cobra.Command {
	seatsCmd := &cobra.Command{Use: "seats", Short: "Seat inventory operations"}

	seatsCmd.AddCommand(
		newSeatsInitCommand(baseURL),
		newSeatsResetCommand(baseURL),
		newSeatsReserveCommand(baseURL),
		newSeatsReserveExactCommand(baseURL),
		newSeatsOccupancyCommand(baseURL),
		newSeatsAvailabilityCommand(baseURL),
		newSeatsStatsCommand(baseURL),
	)

	return seatsCmd
}

func newSeatsInitCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Materialize every row of the inventory (idempotent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return postJSON(baseURL()+"/v1/seats/initialize", nil)
		},
	}
}

func newSeatsResetCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Wipe all row state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return postJSON(baseURL()+"/v1/seats/reset", nil)
		},
	}
}

func newSeatsReserveCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Reserve the first contiguous block of free seats in a row",
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, _ := cmd.Flags().GetInt("zone")
			row, _ := cmd.Flags().GetInt("row")
			count, _ := cmd.Flags().GetInt("count")
			return postJSON(baseURL()+"/v1/seats/reserve",
				map[string]int{"zone": zone, "row": row, "count": count})
		},
	}
	cmd.Flags().Int("zone", 1, "Zone id")
	cmd.Flags().Int("row", 1, "Row id")
	cmd.Flags().Int("count", 1, "Number of adjacent seats")
	return cmd
}

func newSeatsReserveExactCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserve-exact",
		Short: "Reserve a specific seat range in a row",
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, _ := cmd.Flags().GetInt("zone")
			row, _ := cmd.Flags().GetInt("row")
			start, _ := cmd.Flags().GetInt("start")
			count, _ := cmd.Flags().GetInt("count")
			return postJSON(baseURL()+"/v1/seats/reserve-exact",
				map[string]int{"zone": zone, "row": row, "start": start, "count": count})
		},
	}
	cmd.Flags().Int("zone", 1, "Zone id")
	cmd.Flags().Int("row", 1, "Row id")
	cmd.Flags().Int("start", 0, "First seat index (zero-based)")
	cmd.Flags().Int("count", 1, "Number of adjacent seats")
	return cmd
}

func newSeatsOccupancyCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "occupancy",
		Short: "Show occupancy for one row",
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, _ := cmd.Flags().GetInt("zone")
			row, _ := cmd.Flags().GetInt("row")
			return getJSON(fmt.Sprintf("%s/v1/seats/occupancy/%d/%d", baseURL(), zone, row))
		},
	}
	cmd.Flags().Int("zone", 1, "Zone id")
	cmd.Flags().Int("row", 1, "Row id")
	return cmd
}

func newSeatsAvailabilityCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "availability",
		Short: "Show inventory-wide occupancy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getJSON(baseURL() + "/v1/seats/availability")
		},
	}
}

func newSeatsStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store and inventory stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getJSON(baseURL() + "/v1/stats")
		},
	}
}

func postJSON(url string, body any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	resp, err := http.Post(url, "application/json", reader)
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func getJSON(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Println("status:", resp.Status)
	var buf bytes.Buffer
	if json.Indent(&buf, bytes.TrimSpace(b), "", "  ") == nil {
		fmt.Println(buf.String())
	} else if len(b) > 0 {
		fmt.Println(string(b))
	}
	return nil
}

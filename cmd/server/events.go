package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/spf13/cobra"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/config"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
)

var eventsFlags struct {
	eventType   string
	aggregateID string
	status      string
	limit       int
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the most recent outbox events",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return fmt.Errorf("failed to create Spanner client: %w", err)
		}
		defer client.Close()

		events, total, err := list_events.NewQuery(repo.NewEventsReadModel(client)).Execute(ctx, eventsRequest())
		if err != nil {
			return err
		}
		return printEvents(os.Stdout, events, total)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	f := eventsCmd.Flags()
	f.StringVar(&eventsFlags.eventType, "type", "", "Filter by event type, e.g. quote.locked")
	f.StringVar(&eventsFlags.aggregateID, "aggregate", "", "Filter by aggregate (quote) id")
	f.StringVar(&eventsFlags.status, "status", "", "Filter by status: pending, completed or failed")
	f.IntVar(&eventsFlags.limit, "limit", 10, "Maximum number of events")
}

func eventsRequest() *list_events.Request {
	req := &list_events.Request{Limit: eventsFlags.limit}
	if eventsFlags.eventType != "" {
		req.EventType = &eventsFlags.eventType
	}
	if eventsFlags.aggregateID != "" {
		req.AggregateID = &eventsFlags.aggregateID
	}
	if eventsFlags.status != "" {
		req.Status = &eventsFlags.status
	}
	return req
}

func printEvents(w io.Writer, events []*m_outbox.Data, total int64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EVENT ID\tTYPE\tAGGREGATE\tSTATUS\tRETRIES\tCREATED AT")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			e.EventID, e.EventType, e.AggregateID, e.Status, e.RetryCount, e.CreatedAt.UTC().Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nShowing %d of %d events\n", len(events), total)
	return err
}

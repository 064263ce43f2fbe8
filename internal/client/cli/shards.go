package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

func (a *App) Shards(ctx context.Context) error {
	snap := a.shards.Snapshot()
	if len(snap) == 0 {
		a.println("No shard status received yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.writer(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHARD\tSTATUS\tSIZE\tLAST SEEN")
	for _, s := range snap {
		state := color.GreenString("up")
		if !s.Healthy {
			state = color.RedString("down")
		}
		seen := "-"
		if s.LastHeartbeat > 0 {
			sec := int64(s.LastHeartbeat)
			nsec := int64((s.LastHeartbeat - float64(sec)) * float64(time.Second))
			seen = humanize.Time(time.Unix(sec, nsec))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Shard, state, humanize.Bytes(uint64(max(s.Size, 0))), seen)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if a.shards.Degraded() {
		a.println(color.YellowString("Storage is degraded: some shards are unreachable."))
	}
	return nil
}

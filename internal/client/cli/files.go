package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

var errUsage = errors.New("usage")

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

func (a *App) List(ctx context.Context) error {
	listing, err := a.files.List(ctx)
	if err != nil {
		return err
	}
	if listing.Cached {
		a.println("Backend unreachable; showing the cached listing.")
	}
	if len(listing.Files) == 0 {
		a.println("No files.")
		return nil
	}

	tw := tabwriter.NewWriter(a.writer(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tUPLOADED")
	for _, f := range listing.Files {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, humanize.Bytes(uint64(max(f.Size, 0))), humanize.Time(f.CreatedAt.Time))
	}
	return tw.Flush()
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	if err := a.files.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.printf("Deleted %s.\n", args[0])
	return a.List(ctx)
}

func (a *App) Link(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("link <id>")
	}
	link, err := a.files.ShareLink(ctx, args[0])
	if err != nil {
		return err
	}
	a.println(link)
	return nil
}

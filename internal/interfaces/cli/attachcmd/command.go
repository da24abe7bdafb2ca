package attachcmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"flowboard/internal/domain/ticket"
	"flowboard/internal/interfaces/cli"
	"flowboard/internal/shared/id"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <ticket-id> <file>",
		Short: "Upload a media file and attach it to a ticket",
		Long:  `Upload an image or video to the media bucket and set it as the ticket's attachment. Files over 10 MB or outside the supported types are rejected before upload.`,
		Args:  cobra.ExactArgs(2),
		RunE:  run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ticketID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("ticket id must be a number: %s", args[0])
	}
	filePath := args[1]

	rt, err := cli.Bootstrap(ctx)
	if err != nil {
		return err
	}

	if err := rt.Store.Load(ctx); err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	if _, ok := rt.Store.Get(uint(ticketID)); !ok {
		return fmt.Errorf("ticket %d not found", ticketID)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	contentType, err := mimetype.DetectFile(filePath)
	if err != nil {
		return fmt.Errorf("detect content type: %w", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	objectName, err := id.ObjectName(info.Name())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lastPct := -1
	publicURL, err := rt.Storage.Upload(ctx, objectName, file, info.Size(), contentType.String(), func(pct int) {
		if pct/10 != lastPct/10 {
			fmt.Fprintf(out, "uploading... %d%%\n", pct)
		}
		lastPct = pct
	})
	if err != nil {
		return err
	}

	mediaURL := publicURL
	if err := rt.Store.Update(ctx, uint(ticketID), ticket.Patch{MediaURL: &mediaURL}); err != nil {
		return err
	}

	fmt.Fprintf(out, "attached %s to ticket %d\n", publicURL, ticketID)
	return nil
}

package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/styles"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
	"github.com/colonyops/hard75/pkg/iojson"
)

type PhotoCmd struct {
	flags  *Flags
	app    *hard75.App
	day    int
	asJSON bool
	output string
}

// NewPhotoCmd creates the photo and photos commands
func NewPhotoCmd(flags *Flags, app *hard75.App) *PhotoCmd {
	return &PhotoCmd{flags: flags, app: app}
}

// Register adds the photo commands to the application
func (cmd *PhotoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "photo",
			Usage:     "Save a progress photo",
			UsageText: "hard75 photo <file> [--day N]",
			Description: `Stores the image as the progress photo of a day, replacing any
existing one. Saving the photo for the current day completes the photo task.`,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:        "day",
					Usage:       "day the photo belongs to (defaults to the current day)",
					Destination: &cmd.day,
				},
			},
			Action: cmd.runSave,
		},
		&cli.Command{
			Name:      "photos",
			Usage:     "List progress photos",
			UsageText: "hard75 photos [--json]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "output as JSON",
					Destination: &cmd.asJSON,
				},
			},
			Action: cmd.runList,
			Commands: []*cli.Command{
				{
					Name:      "export",
					Usage:     "Write the photo of a day to a file",
					UsageText: "hard75 photos export <day> -o <file>",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:        "output",
							Aliases:     []string{"o"},
							Usage:       "destination file",
							Required:    true,
							Destination: &cmd.output,
						},
					},
					Action: cmd.runExport,
				},
			},
		},
	)
	return app
}

func (cmd *PhotoCmd) runSave(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one image file is required")
	}
	path := c.Args().First()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}
	if limit := cmd.app.Config.Photos.MaxBytes; limit > 0 && info.Size() > limit {
		return fmt.Errorf("photo is %s, the limit is %s", humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(limit)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return fmt.Errorf("%s is not an image (%s)", path, mimeType)
	}

	day := cmd.day
	if day == 0 {
		day = cmd.app.Challenge.State().CurrentDay
	}

	err = cmd.app.Challenge.RecordPhoto(ctx, day, challenge.NewPhotoRef(mimeType, data))
	if err := saveResult(p, err); err != nil {
		return err
	}

	p.Successf("Photo saved! 📸")
	p.Printf("Day %d, %s", day, humanize.IBytes(uint64(len(data))))
	return nil
}

type photoJSON struct {
	Day      int    `json:"day"`
	MIMEType string `json:"mime_type"`
	Bytes    int    `json:"bytes"`
}

func (cmd *PhotoCmd) runList(ctx context.Context, c *cli.Command) error {
	state := cmd.app.Challenge.State()
	gallery := challenge.Gallery(state)
	w := c.Root().Writer

	if cmd.asJSON {
		out := make([]photoJSON, 0, len(gallery))
		for _, e := range gallery {
			out = append(out, photoJSON{Day: e.Day, MIMEType: e.Ref.MIMEType(), Bytes: e.Ref.Size()})
		}
		return iojson.WriteWith(w, os.Stderr, out)
	}

	if len(gallery) == 0 {
		printer.Ctx(ctx).Infof("No photos yet")
		return nil
	}

	for _, e := range gallery {
		_, _ = fmt.Fprintf(w, "%s Day %-3d %s %s\n",
			styles.IconCamera, e.Day,
			styles.MutedStyle.Render(e.Ref.MIMEType()),
			styles.MutedStyle.Render(humanize.IBytes(uint64(e.Ref.Size()))))
	}

	if before, after, ok := challenge.Comparison(state); ok {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintf(w, "%s Progress comparison: Day %d → Day %d\n", styles.IconFlex, before.Day, after.Day)
	}
	return nil
}

func (cmd *PhotoCmd) runExport(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("a day is required")
	}
	day, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid day %q", c.Args().First())
	}

	ref, ok := cmd.app.Challenge.State().Photo(day)
	if !ok {
		return fmt.Errorf("no photo for day %d", day)
	}

	_, data, err := ref.Decode()
	if err != nil {
		return fmt.Errorf("decode photo: %w", err)
	}

	if err := os.WriteFile(cmd.output, data, 0o644); err != nil {
		return fmt.Errorf("write photo: %w", err)
	}

	printer.Ctx(ctx).Success("Photo exported", cmd.output)
	return nil
}

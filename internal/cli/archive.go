package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mazekit/mazekit/pkg/archive"
	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
	"github.com/mazekit/mazekit/pkg/pipeline"
	"github.com/mazekit/mazekit/pkg/render/text"
)

// renderForTerminal draws g with unicode walls. Topologies without a
// flat wall layout report an error and the caller skips the preview.
func renderForTerminal(g *maze.Grid) (string, error) {
	return text.Render(g, text.Options{Unicode: true})
}

// archiveCommand creates the archive command group for named mazes.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Save, list, show, and remove named mazes",
	}

	cmd.AddCommand(c.archiveSaveCommand())
	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveShowCommand())
	cmd.AddCommand(c.archiveRemoveCommand())

	return cmd
}

// newStore opens the configured archive backend. The file backend is
// the default; backend = "mongo" with a URI selects mongo.
func (c *CLI) newStore(ctx context.Context) (archive.Store, error) {
	switch c.cfg.Archive.Backend {
	case "", "file":
		return archive.NewFileStore(c.cfg.Archive.Dir)
	case "mongo":
		if c.cfg.Archive.URI == "" {
			return nil, fmt.Errorf("archive backend mongo requires a uri in the config")
		}
		db := c.cfg.Archive.Database
		if db == "" {
			db = appName
		}
		return archive.NewMongoStore(ctx, c.cfg.Archive.URI, db)
	default:
		return nil, fmt.Errorf("unknown archive backend %q (must be 'file' or 'mongo')", c.cfg.Archive.Backend)
	}
}

// saveToArchive stores a generated maze under name. Shared with the
// generate command's --name flag.
func (c *CLI) saveToArchive(ctx context.Context, name string, opts pipeline.Options, g *maze.Grid) error {
	store, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := mazeio.WriteJSON(g, &buf); err != nil {
		return fmt.Errorf("serialize maze: %w", err)
	}
	rec, err := archive.New(name, opts, buf.Bytes())
	if err != nil {
		return err
	}
	if err := store.Put(ctx, rec); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}

	printSuccess("Saved %q to the archive", name)
	printDetail("ID: %s", rec.ID)
	return nil
}

// resolveRecord fetches a record by UUID or by name.
func resolveRecord(ctx context.Context, store archive.Store, ref string) (*archive.Record, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return store.Get(ctx, id)
	}
	return store.GetByName(ctx, ref)
}

// archiveSaveCommand stores an existing maze document under a name.
func (c *CLI) archiveSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [maze.json] [name]",
		Short: "Save a maze document under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read maze %s: %w", args[0], err)
			}
			g, err := mazeio.ReadJSON(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("load maze %s: %w", args[0], err)
			}
			return c.saveToArchive(ctx, args[1], pipeline.Options{Topology: g.Topology()}, g)
		},
	}
}

// archiveListCommand lists stored mazes, newest first.
func (c *CLI) archiveListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored mazes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("Archive is empty")
				return nil
			}

			for _, rec := range records {
				fmt.Println(StyleValue.Render(rec.Name) +
					"  " + StyleDim.Render(rec.ID.String()) +
					"  " + StyleDim.Render(rec.CreatedAt.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

// archiveShowCommand prints a stored maze's metadata and text render.
func (c *CLI) archiveShowCommand() *cobra.Command {
	var rawJSON bool

	cmd := &cobra.Command{
		Use:   "show [name-or-id]",
		Short: "Show a stored maze",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := resolveRecord(ctx, store, args[0])
			if err != nil {
				return err
			}

			if rawJSON {
				_, err = os.Stdout.Write(rec.Maze)
				return err
			}

			g, err := mazeio.ReadJSON(bytes.NewReader(rec.Maze))
			if err != nil {
				return fmt.Errorf("decode stored maze %s: %w", rec.ID, err)
			}
			census := maze.TakeCensus(g)

			printKeyValue("Name", rec.Name)
			printKeyValue("ID", rec.ID.String())
			printKeyValue("Created", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("Topology", g.Topology())
			printStats(census.Cells, census.Passages, census.DeadEnds, true)

			if rendered, err := renderForTerminal(g); err == nil {
				printNewline()
				fmt.Println(rendered)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "print the raw maze document instead")

	return cmd
}

// archiveRemoveCommand deletes a stored maze.
func (c *CLI) archiveRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [name-or-id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a stored maze",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := resolveRecord(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(ctx, rec.ID); err != nil {
				return err
			}
			printSuccess("Removed %q", rec.Name)
			return nil
		},
	}
}

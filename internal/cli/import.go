package cli

import (
	"fmt"
	"os"

	"pm-cli/internal/format"
	"pm-cli/internal/model"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import items from a CSV export",
		Long: "Import items from a CSV export. Imported items get fresh ids; parent\n" +
			"references are remapped within the file, and parents not present in the\n" +
			"file are dropped rather than left dangling.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()

			incoming, err := format.ReadCSV(f)
			if err != nil {
				return writeErr(cmd, err)
			}

			now := app.Now()
			idMap := make(map[uint64]uint64, len(incoming))
			for i := range incoming {
				idMap[incoming[i].ID] = db.AllocateID()
			}
			imported := make([]model.Item, 0, len(incoming))
			for _, it := range incoming {
				it.ID = idMap[it.ID]
				if it.Parent != nil {
					if nid, ok := idMap[*it.Parent]; ok {
						it.Parent = &nid
					} else {
						it.Parent = nil
					}
				}
				if it.CreatedAt.IsZero() {
					it.CreatedAt = now
				}
				it.UpdatedAt = now
				imported = append(imported, it)
			}
			if err := validateImported(imported); err != nil {
				return writeErr(cmd, err)
			}
			db.Items = append(db.Items, imported...)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}

			if app.JSON {
				return writeOut(cmd, app, map[string]any{"data": imported})
			}
			cmd.Printf("Imported %d item(s)\n", len(imported))
			return nil
		},
	}
	return cmd
}

// validateImported rejects a batch whose remapped rows would break the
// hierarchy: a kind pairing the ladder forbids, or a parent cycle encoded
// among the rows themselves. Remapped parents only ever point at other rows
// in the batch, so the checks need no view of the existing store.
func validateImported(items []model.Item) error {
	kinds := make(map[uint64]model.Kind, len(items))
	for _, it := range items {
		kinds[it.ID] = it.Kind
	}
	parents := make(map[uint64]uint64, len(items))
	for _, it := range items {
		if it.Parent == nil {
			continue
		}
		p := *it.Parent
		if !model.ValidChild(kinds[p], it.Kind) {
			return fmt.Errorf("import %q: a %s cannot nest under a %s", it.Title, it.Kind, kinds[p])
		}
		parents[it.ID] = p
	}
	for _, it := range items {
		cur, steps := it.ID, 0
		for {
			p, ok := parents[cur]
			if !ok {
				break
			}
			steps++
			if p == it.ID || steps > len(items) {
				return fmt.Errorf("import %q: parent cycle among imported rows", it.Title)
			}
			cur = p
		}
	}
	return nil
}

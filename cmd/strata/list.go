package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/strataform/strata/internal/cli/config"
	"github.com/strataform/strata/model"
	"github.com/strataform/strata/tree"
)

var listModelFlag string

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the objects in a model document",
		Long: `List every object node in the model document: its uuid, schema
category, and citation title.

The document path comes from --model, falling back to model.path in
strata.yml.`,
		Example: `  # List objects from the configured model document
  strata list

  # List objects from an explicit document
  strata list --model wells.xml`,
		RunE: runList,
	}

	cmd.Flags().StringVar(&listModelFlag, "model", "", "Override the model document path")

	return cmd
}

// openModel hydrates a model from the document at path, falling back to the
// configured path when none is given.
func openModel(path string) (*model.Model, error) {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = cfg.Model.Path
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model document: %w", err)
	}
	defer f.Close()

	m := model.New()
	if err := m.LoadTree(f); err != nil {
		return nil, fmt.Errorf("failed to parse model document: %w", err)
	}
	return m, nil
}

// category strips the object prefix from a node tag for display.
func category(node *tree.Node) string {
	return strings.TrimPrefix(node.Tag, "obj_")
}

func runList(cmd *cobra.Command, args []string) error {
	uuidColor := color.New(color.FgCyan)
	titleColor := color.New(color.FgGreen, color.Bold)

	m, err := openModel(listModelFlag)
	if err != nil {
		return err
	}

	objects := m.Document().Objects()
	if len(objects) == 0 {
		fmt.Println("no objects in model")
		return nil
	}

	for _, node := range objects {
		id, ok := tree.IdentityForNode(node)
		if !ok {
			continue
		}
		title, _, _ := tree.Citation(node)
		fmt.Printf("%s  %-24s %s\n", uuidColor.Sprint(id), category(node), titleColor.Sprint(title))
	}
	fmt.Printf("\n%d objects\n", len(objects))

	return nil
}

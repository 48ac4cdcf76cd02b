package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/strataform/strata/tree"
)

var showModelFlag string

func newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <uuid>",
		Short: "Show one object's metadata",
		Long: `Show the citation block and top-level elements of the object
bound to the given uuid.`,
		Example: `  # Show an object from the configured model document
  strata show 0cbe1a1a-3f3e-4c86-9a02-7e9d2d8a1f00

  # Show an object from an explicit document
  strata show 0cbe1a1a-3f3e-4c86-9a02-7e9d2d8a1f00 --model wells.xml`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().StringVar(&showModelFlag, "model", "", "Override the model document path")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	labelColor := color.New(color.FgCyan)
	errorColor := color.New(color.FgRed, color.Bold)

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid uuid %q: %w", args[0], err)
	}

	m, err := openModel(showModelFlag)
	if err != nil {
		return err
	}

	node := m.ResolveNode(id)
	if node == nil {
		errorColor.Printf("no object with uuid %s\n", id)
		return fmt.Errorf("object not found")
	}

	title, originator, created := tree.Citation(node)
	fmt.Printf("%s %s\n", labelColor.Sprint("Category:"), category(node))
	fmt.Printf("%s %s\n", labelColor.Sprint("UUID:"), id)
	fmt.Printf("%s %s\n", labelColor.Sprint("Title:"), title)
	fmt.Printf("%s %s\n", labelColor.Sprint("Originator:"), originator)
	if !created.IsZero() {
		fmt.Printf("%s %s\n", labelColor.Sprint("Created:"), created.Format(time.RFC3339))
	}

	fmt.Println()
	for _, child := range node.Children {
		text := child.Text
		if text == "" && len(child.Children) > 0 {
			text = fmt.Sprintf("(%d elements)", len(child.Children))
		}
		fmt.Printf("  %-24s %s\n", child.Tag, text)
	}

	return nil
}

package cli

import (
	"github.com/spf13/cobra"
)

func newSpaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "space",
		Short: "Space management commands",
	}

	cmd.AddCommand(newSpaceCreateCmd())
	cmd.AddCommand(newSpaceListCmd())
	cmd.AddCommand(newSpaceGetCmd())
	cmd.AddCommand(newSpaceDeleteCmd())
	cmd.AddCommand(newSpacePlaceCmd())
	cmd.AddCommand(newSpaceUnplaceCmd())

	return cmd
}

func newSpaceCreateCmd() *cobra.Command {
	var name, dimensions, mapID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new space",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			if dimensions != "" {
				req["dimensions"] = dimensions
			}
			if mapID != "" {
				req["map_id"] = mapID
			}
			var result Space

			if err := client.Post("/api/v1/space", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Space name (required)")
	cmd.Flags().StringVar(&dimensions, "dimensions", "", "Grid dimensions as WIDTHxHEIGHT, e.g. 20x15")
	cmd.Flags().StringVar(&mapID, "map", "", "Map ID to base the space on")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSpaceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List spaces you created",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SpaceList

			if err := client.Get("/api/v1/space/all", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSpaceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a space and its placed elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SpaceDetail

			if err := client.Get("/api/v1/space/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSpaceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a space you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/space/"+args[0], nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Space deleted")
			return nil
		},
	}
}

func newSpacePlaceCmd() *cobra.Command {
	var spaceID, elementID string
	var x, y int

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an element in a space",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"space_id":   spaceID,
				"element_id": elementID,
				"x":          x,
				"y":          y,
			}
			var result SpaceElement

			if err := client.Post("/api/v1/space/element", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&spaceID, "space", "", "Space ID (required)")
	cmd.Flags().StringVar(&elementID, "element", "", "Element ID (required)")
	cmd.Flags().IntVar(&x, "x", 0, "X coordinate")
	cmd.Flags().IntVar(&y, "y", 0, "Y coordinate")
	_ = cmd.MarkFlagRequired("space")
	_ = cmd.MarkFlagRequired("element")

	return cmd
}

func newSpaceUnplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unplace <placement-id>",
		Short: "Remove a placed element from a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"id": args[0]}

			if err := client.Delete("/api/v1/space/element", req); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Element removed")
			return nil
		},
	}
}

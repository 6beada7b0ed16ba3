package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Catalog administration commands (admin role required)",
	}

	cmd.AddCommand(newAdminElementCmd())
	cmd.AddCommand(newAdminAvatarCmd())
	cmd.AddCommand(newAdminMapCmd())

	return cmd
}

func newAdminElementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "element",
		Short: "Element catalog commands",
	}

	cmd.AddCommand(newAdminElementCreateCmd())
	cmd.AddCommand(newAdminElementUpdateCmd())
	cmd.AddCommand(newAdminElementListCmd())

	return cmd
}

func newAdminElementCreateCmd() *cobra.Command {
	var width, height int
	var static bool
	var imageURL string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a catalog element",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"width":     width,
				"height":    height,
				"static":    static,
				"image_url": imageURL,
			}
			var result Element

			if err := client.Post("/api/v1/admin/element", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 1, "Element width in cells")
	cmd.Flags().IntVar(&height, "height", 1, "Element height in cells")
	cmd.Flags().BoolVar(&static, "static", false, "Whether the element blocks movement")
	cmd.Flags().StringVar(&imageURL, "image", "", "Image URL (required)")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newAdminElementUpdateCmd() *cobra.Command {
	var imageURL string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a catalog element's image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"image_url": imageURL}
			var result Element

			if err := client.Put("/api/v1/admin/element/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&imageURL, "image", "", "New image URL (required)")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newAdminElementListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog elements",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ElementList

			if err := client.Get("/api/v1/elements", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminAvatarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Avatar catalog commands",
	}

	cmd.AddCommand(newAdminAvatarCreateCmd())
	cmd.AddCommand(newAdminAvatarListCmd())

	return cmd
}

func newAdminAvatarCreateCmd() *cobra.Command {
	var name, imageURL string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a catalog avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":      name,
				"image_url": imageURL,
			}
			var result Avatar

			if err := client.Post("/api/v1/admin/avatar", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Avatar name (required)")
	cmd.Flags().StringVar(&imageURL, "image", "", "Image URL")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAdminAvatarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog avatars",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AvatarList

			if err := client.Get("/api/v1/avatars", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map catalog commands",
	}

	cmd.AddCommand(newAdminMapCreateCmd())

	return cmd
}

func newAdminMapCreateCmd() *cobra.Command {
	var name, dimensions, thumbnail, elementsJSON string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a catalog map",
		Long: `Create a catalog map with default element placements.

Default elements are passed as a JSON array, e.g.:
  --elements '[{"element_id":"el_abc123","x":2,"y":3}]'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var elements []map[string]any
			if elementsJSON != "" {
				if err := json.Unmarshal([]byte(elementsJSON), &elements); err != nil {
					return fmt.Errorf("invalid --elements JSON: %w", err)
				}
			}

			req := map[string]any{
				"name":             name,
				"dimensions":       dimensions,
				"thumbnail":        thumbnail,
				"default_elements": elements,
			}
			var result Map

			if err := client.Post("/api/v1/admin/map", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Map name (required)")
	cmd.Flags().StringVar(&dimensions, "dimensions", "", "Grid dimensions as WIDTHxHEIGHT (required)")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "Thumbnail URL")
	cmd.Flags().StringVar(&elementsJSON, "elements", "", "Default element placements as JSON")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dimensions")

	return cmd
}

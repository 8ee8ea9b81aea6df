package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/manifest"
	"github.com/hooktools/core/schema"
)

// NewSchemaCmd creates the `schema` command.
func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [config|hooks]",
		Short: "Print the JSON Schema for a pre-commit file",
		Long: `Print the JSON Schema used to validate .pre-commit-config.yaml
(config, the default) or .pre-commit-hooks.yaml (hooks).

By default this is the embedded schema validation runs against. With
--generated the schema is derived from the Go types instead, which is
what the schema generator uses to refresh the embedded copies.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generated, _ := cmd.Flags().GetBool("generated")

			which := "config"
			if len(args) > 0 {
				which = args[0]
			}

			var data []byte
			var err error
			switch which {
			case "config":
				data = schema.ConfigSchema()
				if generated {
					data, err = config.GenerateSchema()
				}
			case "hooks":
				data = schema.ManifestSchema()
				if generated {
					data, err = manifest.GenerateSchema()
				}
			default:
				return errors.New(errors.ErrCodeInvalidInput,
					fmt.Sprintf("unknown schema %q, expected config or hooks", which))
			}
			if err != nil {
				return err
			}

			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().Bool("generated", false, "Print the schema generated from the Go types")
	return cmd
}

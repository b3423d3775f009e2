package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

// Config is the resolved set of options for one evmdis invocation.
type Config struct {
	Debug      bool   `json:"debug" jsonschema:"title=Debug,description=Enable debug logging"`
	Offsets    bool   `json:"offsets" jsonschema:"title=Offsets,description=Prefix each instruction with its byte offset"`
	JSON       bool   `json:"json" jsonschema:"title=JSON,description=Emit the listing as a JSON document"`
	TUI        bool   `json:"tui" jsonschema:"title=TUI,description=Page through the listing interactively"`
	Follow     bool   `json:"follow" jsonschema:"title=Follow,description=Keep decoding as the input file grows"`
	Color      bool   `json:"color" jsonschema:"title=Color,description=Force colored output"`
	CPUProfile string `json:"cpuProfile,omitempty" jsonschema:"title=CPU Profile,description=Path for CPU profile output"`
	MemProfile string `json:"memProfile,omitempty" jsonschema:"title=Memory Profile,description=Path for heap profile output"`
}

func configFromFlags(cmd *cobra.Command) Config {
	flags := cmd.Flags()
	var cfg Config
	cfg.Debug, _ = flags.GetBool("debug")
	cfg.Offsets, _ = flags.GetBool("offsets")
	cfg.JSON, _ = flags.GetBool("json")
	cfg.TUI, _ = flags.GetBool("tui")
	cfg.Follow, _ = flags.GetBool("follow")
	cfg.Color, _ = flags.GetBool("color")
	cfg.CPUProfile, _ = flags.GetString("cpuprofile")
	cfg.MemProfile, _ = flags.GetString("memprofile")
	return cfg
}

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Generate JSON schema for configuration",
	Long:   "Generate JSON schema for the evmdis configuration",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := new(jsonschema.Reflector)
		bts, err := json.MarshalIndent(reflector.Reflect(&Config{}), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

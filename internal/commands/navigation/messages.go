package navigationcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const generateMessageType = "sitenav.navigation.generate"

// GenerateCommand requests one full navigation pass. Empty fields fall back
// to the generator configuration.
type GenerateCommand struct {
	// OutputDir overrides the manifest directory.
	OutputDir string `json:"output_dir,omitempty"`
	// Format selects the manifest encoding: json, yaml or yml.
	Format string `json:"format,omitempty"`
	// DryRun resolves every page without writing the manifest.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (GenerateCommand) Type() string { return generateMessageType }

// Validate rejects unknown manifest formats.
func (cmd GenerateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Format, validation.By(func(value any) error {
			format := strings.ToLower(strings.TrimSpace(value.(string)))
			switch format {
			case "", "json", "yaml", "yml":
				return nil
			}
			return validation.NewError("sitenav.navigation.generate.format_invalid", "format must be json or yaml")
		})),
		validation.Field(&cmd.OutputDir, validation.By(func(value any) error {
			dir := value.(string)
			if dir != "" && strings.TrimSpace(dir) == "" {
				return validation.NewError("sitenav.navigation.generate.output_dir_blank", "output dir cannot be blank")
			}
			return nil
		})),
	)
}

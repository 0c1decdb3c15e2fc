package pagescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importMessageType = "sitenav.pages.import"

// ImportCommand loads every markdown page below Directory into the page
// store.
type ImportCommand struct {
	// Directory is the content root to walk.
	Directory string `json:"directory"`
	// Prune deletes stored pages whose address no longer exists in Directory.
	Prune bool `json:"prune,omitempty"`
	// DryRun counts the changes without touching the store.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportCommand) Type() string { return importMessageType }

// Validate ensures a directory is present before handlers execute.
func (cmd ImportCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("sitenav.pages.import.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

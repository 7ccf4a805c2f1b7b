package link

import (
	"github.com/docwilco/linksync/internal/logger"
	"github.com/docwilco/linksync/sdk/contracts"
)

// applyDefaultOptions sets default values for SessionOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify SessionOptions.
//
// Returns:
//   - contracts.SessionOptions: A structure containing the finalized session options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.SessionOptions, error) {
	options := &contracts.SessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}

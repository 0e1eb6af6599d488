package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// DescMirroring describes the spinner of a mirror run
const DescMirroring = "Mirroring"

// ProgressOptions configures NewProgressBar
type ProgressOptions struct {
	// Total number of items; -1 when unknown, which renders a spinner
	Total       int
	Description string
	// Output defaults to os.Stderr so stdout stays clean for pipelines
	Output io.Writer
}

// NewProgressBar creates a consistently styled progress bar.
//
// A tree walk does not know how many files it will write until it is done, so
// mirrors use Total -1 and the bar counts files as a spinner:
//
//	bar := utils.NewProgressBar(utils.ProgressOptions{Total: -1, Description: utils.DescMirroring})
//	defer bar.Finish()
func NewProgressBar(opts ProgressOptions) *progressbar.ProgressBar {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}

	options := []progressbar.Option{
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionSetWriter(output),
		progressbar.OptionShowCount(),
	}

	if opts.Total < 0 {
		options = append(options,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		options = append(options,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(opts.Total, options...)
}

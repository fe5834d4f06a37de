package iobatch

import (
	"os"

	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a progress bar over the accession list. The bar
// renders on stderr so stdout stays clean for user messages and previews.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.New(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	bar.SetWriter(os.Stderr)
	return bar.Start()
}

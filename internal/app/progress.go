package app

import (
	"github.com/schollz/progressbar/v3"

	"github.com/blackwell-systems/binctl/internal/fetch"
	"github.com/blackwell-systems/binctl/internal/util"
)

// progressHook returns a download callback that renders a byte progress
// bar on interactive sessions and stays silent everywhere else.
func progressHook() fetch.Progress {
	if flagNoInteractive || !util.IsTTY() {
		return nil
	}
	var bar *progressbar.ProgressBar
	var barTotal int64
	return func(written, total int64) {
		if bar == nil || barTotal != total {
			bar = progressbar.DefaultBytes(total, "downloading")
			barTotal = total
		}
		_ = bar.Set64(written)
	}
}

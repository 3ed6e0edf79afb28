package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/binctl/internal/github"
	"github.com/blackwell-systems/binctl/internal/pipeline"
	"github.com/blackwell-systems/binctl/internal/util"
)

// newPrompter returns the prompter for one command invocation. Outside
// an interactive session every question answers itself: ties take the
// best-scored asset, and script installs go through only when the user
// asked for them with autoAcceptScripts.
func newPrompter(autoAcceptScripts bool) pipeline.Prompter {
	if flagNoInteractive || !util.Interactive() {
		return pipeline.AutoPrompter{AcceptScripts: autoAcceptScripts}
	}
	return terminalPrompter{}
}

// terminalPrompter asks on stdin/stdout.
type terminalPrompter struct{}

func (terminalPrompter) SelectAsset(assets []github.Asset) (int, error) {
	fmt.Println("Multiple assets match this platform:")
	for i, a := range assets {
		fmt.Printf("  %d) %s  (%s)\n", i+1, a.Name, humanBytes(a.Size))
	}
	for {
		fmt.Printf("Pick one [1-%d]: ", len(assets))
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil {
			// Closed stdin: take the first, it scored best.
			return 0, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && n >= 1 && n <= len(assets) {
			return n - 1, nil
		}
	}
}

func (terminalPrompter) ConfirmScripts(scripts []string) (bool, error) {
	fmt.Println("No prebuilt binary for this platform. The source tarball has scripts:")
	for _, s := range scripts {
		fmt.Printf("  - %s\n", s)
	}
	fmt.Print("Install these scripts? (y/N): ")
	var answer string
	_, _ = fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

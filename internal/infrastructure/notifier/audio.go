package notifier

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"nft_tracker/internal/domain/service/changes"
)

const bell = "\a"

// Audio rings the terminal bell and optionally plays a sound with an external
// command such as "paplay /usr/share/sounds/freedesktop/stereo/bell.oga".
type Audio struct {
	out     io.Writer
	command []string
}

func NewAudio(out io.Writer, command string) *Audio {
	return &Audio{
		out:     out,
		command: strings.Fields(command),
	}
}

func (a *Audio) Name() string {
	return ChannelAudio
}

func (a *Audio) Notify(ctx context.Context, _ changes.Report) error {
	if _, err := io.WriteString(a.out, bell); err != nil {
		return fmt.Errorf("write bell: %w", err)
	}

	if len(a.command) == 0 {
		return nil
	}

	//nolint:gosec // command comes from the operator's own config
	if out, err := exec.CommandContext(ctx, a.command[0], a.command[1:]...).CombinedOutput(); err != nil {
		return fmt.Errorf("play sound %q: %w: %s", a.command[0], err, strings.TrimSpace(string(out)))
	}

	return nil
}

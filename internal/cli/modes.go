package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/sequence"
)

// modeFlags holds the --repeat and --shuffle flags shared by play and order.
type modeFlags struct {
	repeat  string
	shuffle bool
}

func (m *modeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&m.repeat, "repeat", "r", "", "repeat mode: off, one, all (default from config)")
	cmd.Flags().BoolVarP(&m.shuffle, "shuffle", "s", false, "shuffle the queue (default from config)")
}

// resolve combines the flags with the configured playback modes. Flags that
// were not set keep the config value.
func (m *modeFlags) resolve(cmd *cobra.Command, repeat sequence.RepeatMode, shuffle bool) (sequence.RepeatMode, bool, error) {
	if cmd.Flags().Changed("repeat") {
		mode, err := sequence.ParseRepeatMode(m.repeat)
		if err != nil {
			return 0, false, errors.New(errmsg.FormatWith(errmsg.OpRepeatMode, m.repeat, err))
		}
		repeat = mode
	}
	if cmd.Flags().Changed("shuffle") {
		shuffle = m.shuffle
	}
	return repeat, shuffle, nil
}

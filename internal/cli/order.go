package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/sequence"
)

var (
	orderModes modeFlags
	orderSeed  uint64
	orderCount int
)

var orderCmd = &cobra.Command{
	Use:   "order [paths...]",
	Short: "Print the play order without playing",
	Long: `Print the order in which the queue would play, without audio output.

Examples:
  cadence order ~/music/album              # Sequential order
  cadence order --shuffle --seed 42 .      # Reproducible shuffle
  cadence order --repeat all -n 30 .       # Wrap around the queue`,
	RunE: runOrder,
}

func init() {
	orderModes.register(orderCmd)
	orderCmd.Flags().Uint64Var(&orderSeed, "seed", 0, "shuffle seed (0 picks a random one)")
	orderCmd.Flags().IntVarP(&orderCount, "count", "n", 0, "number of plays to list (default: queue length)")
	rootCmd.AddCommand(orderCmd)
}

type orderOptions struct {
	repeat  sequence.RepeatMode
	shuffle bool
	seed    uint64
	count   int
}

func runOrder(cmd *cobra.Command, args []string) error {
	pb := cfg.GetPlaybackConfig()
	repeat, shuffle, err := orderModes.resolve(cmd, pb.RepeatMode(), pb.Shuffle)
	if err != nil {
		return err
	}

	tracks, err := collectTracks(args)
	if err != nil {
		return err
	}

	seed := orderSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("computing play order", "tracks", len(tracks), "repeat", repeat, "shuffle", shuffle, "seed", seed)

	return writeOrder(cmd.OutOrStdout(), tracks, orderOptions{
		repeat:  repeat,
		shuffle: shuffle,
		seed:    seed,
		count:   orderCount,
	})
}

// playOrder returns the queue indices in the order they would play. It stops
// at the end of the queue or after opts.count plays.
func playOrder(tracks []playlist.Track, opts orderOptions) []int {
	if len(tracks) == 0 {
		return nil
	}
	count := opts.count
	if count <= 0 {
		count = len(tracks)
	}

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed))
	q := newQueue(tracks, opts.repeat, opts.shuffle, rng.Float64)

	order := []int{q.CurrentIndex()}
	for len(order) < count && q.Next() != nil {
		order = append(order, q.CurrentIndex())
	}
	return order
}

func writeOrder(w io.Writer, tracks []playlist.Track, opts orderOptions) error {
	order := playOrder(tracks, opts)

	var total time.Duration
	for i, idx := range order {
		t := tracks[idx]
		total += t.Duration
		if _, err := fmt.Fprintln(w, trackLine(i+1, t.Title, t.Artist, sequence.FormatTime(t.Duration))); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, noticeStyle.Render(orderSummary(tracks, order, total, opts)))
	return err
}

func orderSummary(tracks []playlist.Track, order []int, total time.Duration, opts orderOptions) string {
	unique := lo.Uniq(order)
	var size uint64
	for _, idx := range unique {
		if info, err := os.Stat(tracks[idx].Path); err == nil {
			size += uint64(info.Size())
		}
	}

	summary := fmt.Sprintf("%s plays of %s tracks, %s, %s, repeat %s",
		humanize.Comma(int64(len(order))),
		humanize.Comma(int64(len(unique))),
		sequence.FormatTime(total),
		humanize.Bytes(size),
		opts.repeat,
	)
	if opts.shuffle {
		summary += fmt.Sprintf(", shuffle seed %d", opts.seed)
	}
	return summary
}

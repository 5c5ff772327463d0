package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/notify"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/stderr"
)

var playModes modeFlags

var playCmd = &cobra.Command{
	Use:   "play [paths...]",
	Short: "Play music files and folders",
	Long: `Play music files and folders as a queue, printing each track as it starts.
Without arguments, plays the configured default folder or the current directory.

Examples:
  cadence play ~/music/album            # Play an album
  cadence play --shuffle --repeat all . # Shuffle forever
  cadence play a.flac b.mp3             # Play files in the given order`,
	RunE: runPlay,
}

func init() {
	playModes.register(playCmd)
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	pb := cfg.GetPlaybackConfig()
	repeat, shuffle, err := playModes.resolve(cmd, pb.RepeatMode(), pb.Shuffle)
	if err != nil {
		return err
	}

	tracks, err := collectTracks(args)
	if err != nil {
		return err
	}

	if capture, err := stderr.Start(); err != nil {
		logger.Debug("stderr capture unavailable", "err", err)
	} else {
		logger.SetOutput(capture.Original())
		go forwardAudioMessages(capture.Lines(), logger)
		defer func() {
			logger.SetOutput(os.Stderr)
			_ = capture.Stop()
		}()
	}

	q := newQueue(tracks, repeat, shuffle, rand.Float64)
	svc := playback.New(player.New(), q,
		playback.WithLogger(logger),
		playback.WithUndoDepth(pb.UndoDepth),
	)
	defer svc.Close()

	var mprisErr <-chan error
	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(svc)
		if err != nil {
			logger.Warn(errmsg.Format(errmsg.OpMPRIS, err))
		} else {
			defer adapter.Close()
			mprisErr = adapter.Err()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{svc: svc, sub: svc.Subscribe(), out: cmd.OutOrStdout(), logger: logger, mprisErr: mprisErr}
	if cfg.Notifications.Enabled {
		n, err := notify.New()
		if err != nil {
			logger.Warn("desktop notifications unavailable", "err", err)
		} else {
			s.nowPlaying = notify.NewNowPlaying(n)
		}
	}
	if err := s.start(); err != nil {
		return err
	}
	return s.run(ctx)
}

// forwardAudioMessages logs lines the audio backend wrote to stderr.
func forwardAudioMessages(lines <-chan string, l *log.Logger) {
	for line := range lines {
		l.Debug("audio backend", "msg", line)
	}
}

// session prints playback events until the queue ends or ctx is cancelled.
type session struct {
	svc      playback.Service
	sub      *playback.Subscription
	out      io.Writer
	logger   *log.Logger
	mprisErr <-chan error

	nowPlaying *notify.NowPlaying // nil when notifications are off

	failures int // consecutive tracks that failed to start
}

// start begins playback. A first track that fails to play is reported as an
// error event and skipped by run like any later one.
func (s *session) start() error {
	err := s.svc.Play()
	if err != nil && s.svc.CurrentTrack() == nil {
		return errors.New(errmsg.Format(errmsg.OpPlaybackStart, err))
	}
	return nil
}

func (s *session) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.printf("%s\n", noticeStyle.Render("stopped at "+progress(s.svc.Position(), s.svc.Duration())))
			return nil

		case e := <-s.sub.TrackChanged:
			s.failures = 0
			s.printf("%s\n", trackLine(e.Index+1, e.Current.Title, e.Current.Artist,
				progress(0, e.Current.Duration)))
			s.announce(e.Current)

		case e := <-s.sub.ModeChanged:
			shuffle := "off"
			if e.Shuffle {
				shuffle = "on"
			}
			s.printf("%s\n", noticeStyle.Render(fmt.Sprintf("repeat %s, shuffle %s", e.RepeatMode, shuffle)))

		case e := <-s.sub.Error:
			if e.Operation != "play" {
				s.logger.Warn(errmsg.FormatWith(errmsg.OpPlaybackSeek, e.Path, e.Err))
				continue
			}
			s.logger.Error(errmsg.FormatWith(errmsg.OpPlaybackStart, e.Path, e.Err))
			if done := s.skip(); done {
				s.printf("%s\n", noticeStyle.Render("end of queue"))
				return nil
			}

		case e := <-s.sub.QueueEnded:
			s.logger.Debug("queue ended", "index", e.LastIndex)
			s.printf("%s\n", noticeStyle.Render("end of queue"))
			return nil

		case err := <-s.mprisErr:
			if err != nil {
				s.logger.Warn(errmsg.Format(errmsg.OpMPRIS, err))
			}
			s.mprisErr = nil

		case <-s.sub.Done:
			return nil
		}
	}
}

// skip moves past a track that failed to play. It reports true when there is
// nothing left to play, including when every track in the queue has failed.
func (s *session) skip() bool {
	if s.svc.IsPlaying() {
		return false
	}
	s.failures++
	if s.failures >= s.svc.QueueLen() || s.svc.RepeatMode() == playback.RepeatOne {
		return true
	}
	if s.svc.QueueAdvance() == nil {
		return true
	}
	// A failure here arrives as another error event.
	_ = s.svc.Play()
	return false
}

func (s *session) announce(t *playback.Track) {
	if s.nowPlaying == nil {
		return
	}
	if err := s.nowPlaying.Track(t.Path, t.Title, t.Artist, t.Album, t.Duration); err != nil {
		s.logger.Debug("notification failed", "err", err)
	}
}

func (s *session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

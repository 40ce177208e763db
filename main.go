package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Alextopher/lisscope/generators"
	"github.com/Alextopher/lisscope/player"
	"github.com/Alextopher/lisscope/render"
	"github.com/faiface/beep"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const usage = `Usage: lisscope <play|plot> [flags]

  play   loop the figure on the default audio output until interrupted
  plot   draw the figure to a PNG

Run "lisscope <command> -h" for the flags of a command.`

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle sys interrupt
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go stopOnSignal(sig, cancel)

	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

// stopOnSignal cancels on the first signal and hands later ones back to the
// default handler, so a second Ctrl-C kills a stuck device write.
func stopOnSignal(sig chan os.Signal, cancel context.CancelFunc) {
	<-sig
	signal.Stop(sig)

	fmt.Println("Interrupted, stopping...")
	cancel()
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Println(usage)
		return 2
	}

	var err error
	switch args[0] {
	case "play":
		err = play(ctx, args[1:])
	case "plot":
		err = plot(args[1:], stdout)
	case "-h", "-help", "--help", "help":
		fmt.Println(usage)
		return 0
	default:
		fmt.Println("Unknown command", args[0])
		fmt.Println(usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, render.ErrRenderingUnavailable):
		fmt.Println(err)
		fmt.Println("This binary was built without plotting. Rebuild without -tags noplot to enable it.")
		return 1
	default:
		fmt.Println(err)
		return 1
	}
}

// figureFlags registers the flags shared by every command.
func figureFlags(fs *flag.FlagSet) func() (generators.Parameters, error) {
	d := generators.DefaultParameters()

	freq := fs.Float64("freq", d.BaseFreq, "X channel (left) frequency in Hz")
	note := fs.Int("note", -1, "MIDI note number (0-127) for the X channel, overrides -freq")
	ratio := fs.Int("ratio", d.Ratio, "Y channel (right) frequency as a multiple of X")
	phase := fs.Float64("phase", d.PhaseDeg, "Y channel phase offset in degrees")
	rate := fs.Int("rate", int(d.SampleRate), "sample rate in samples/second")

	return func() (generators.Parameters, error) {
		p := generators.Parameters{
			BaseFreq:   *freq,
			Ratio:      *ratio,
			PhaseDeg:   *phase,
			SampleRate: beep.SampleRate(*rate),
		}
		switch {
		case *note == -1:
		case *note >= 0 && *note <= 127:
			p.BaseFreq = generators.MidiNoteToFreq(uint8(*note))
		default:
			return p, errors.Wrapf(generators.ErrInvalidParameters, "note must be a MIDI note number in [0, 127], got %d", *note)
		}
		return p, nil
	}
}

func play(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	params := figureFlags(fs)
	duration := fs.Duration("duration", 0, "stop after this long, 0 plays until interrupted")
	latency := fs.Duration("latency", time.Second/10, "audio buffered in the driver")
	volume := fs.Float64("volume", 1, "output volume in (0, 1]")
	unmute := fs.Bool("unmute", false, "unmute the speakers with amixer before playing (linux)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := params()
	if err != nil {
		return err
	}
	buf, err := generators.Generate(p)
	if err != nil {
		return err
	}
	if *volume <= 0 || *volume > 1 {
		return errors.Wrapf(generators.ErrInvalidParameters, "volume must be in (0, 1], got %g", *volume)
	}

	if *unmute {
		unmuteSpeakers()
	}

	s, err := player.Open(player.Oto(*latency), buf, player.Options{Duration: *duration, Volume: *volume})
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("Playing %g Hz x %d (%g Hz), phase %.1f deg, loop of %d samples at %d Hz\n",
		buf.Frequency(), p.Ratio, buf.Frequency()*float64(p.Ratio), buf.Params().PhaseDeg, buf.Len(), buf.SampleRate())
	if buf.Frequency() != p.BaseFreq {
		fmt.Printf("%g Hz does not divide %d Hz, snapped to %g Hz\n", p.BaseFreq, buf.SampleRate(), buf.Frequency())
	}

	if err := s.Stream(ctx); err != nil {
		return err
	}

	fmt.Println("Stopped after", buf.SampleRate().D(int(s.Written())).Round(time.Millisecond))
	return nil
}

func unmuteSpeakers() {
	if runtime.GOOS != "linux" {
		return
	}

	c := exec.Command("/bin/bash", "-c", "amixer set Master 50% ; amixer sset Master unmute ; amixer set Speaker 50% ; amixer sset Speaker unmute")
	o, err := c.CombinedOutput()
	if err != nil {
		fmt.Println(err)
	}

	fmt.Println(string(o))
	fmt.Println("Speakers unmuted")
}

func plot(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	params := figureFlags(fs)
	out := fs.String("o", "lissajous.png", `output file, "-" for stdout`)
	size := fs.Int("size", render.DefaultSize, "image width and height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := params()
	if err != nil {
		return err
	}
	buf, err := generators.Generate(p)
	if err != nil {
		return err
	}

	fig, err := render.Render(buf, render.Options{Size: *size})
	if err != nil {
		return err
	}

	if *out == "-" {
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("refusing to write a PNG to a terminal, redirect stdout or use -o")
		}
		return fig.EncodePNG(stdout)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := fig.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", *out)
	}

	fmt.Println("Wrote", fig.Title, "to", *out)
	return nil
}

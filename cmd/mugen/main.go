package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Ashmit-Ag/mugen-transformer/internal/composer"
	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
	"github.com/Ashmit-Ag/mugen-transformer/internal/progress"
	"github.com/Ashmit-Ag/mugen-transformer/internal/render"
	"github.com/Ashmit-Ag/mugen-transformer/internal/song"
	"github.com/Ashmit-Ag/mugen-transformer/internal/theory"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mugen",
	Short: "Generate complete songs as MIDI files",
	Long: `MuGen procedurally composes full songs: melodies, chords, bass,
drums, and transitions, laid out over a generated song structure.

Pipeline: request → patterns → song structure → timeline → MIDI file`,
	Version: version,
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a song and write it as a MIDI file",
	Long: `Compose a song from a root note, scale, tempo, and style.

Examples:
  mugen compose --output song.mid
  mugen compose -o song.mid --root A3 --scale minor --tempo 140 --style trap
  mugen compose -o song.mid --bars 64 --phonk --seed 42`,
	RunE: runCompose,
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available styles, scales, and moods",
	RunE:  runStyles,
}

var (
	outputPath   string
	rootNote     string
	scaleName    string
	tempoBPM     int
	numBars      int
	styleName    string
	epic         bool
	phonk        bool
	atmospheric  bool
	minimal      bool
	noBreakdown  bool
	seed         int64
	instruments  string
	verbose      bool
)

func init() {
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(stylesCmd)

	composeCmd.Flags().StringVarP(&outputPath, "output", "o", "song.mid", "Output MIDI file")
	composeCmd.Flags().StringVar(&rootNote, "root", "A3", "Root note in scientific pitch (e.g. C4, F#3, Bb2)")
	composeCmd.Flags().StringVar(&scaleName, "scale", "minor", "Scale name (see 'mugen styles')")
	composeCmd.Flags().IntVarP(&tempoBPM, "tempo", "t", 130, "Tempo in BPM")
	composeCmd.Flags().IntVarP(&numBars, "bars", "b", 48, "Song length in bars (rounded down to whole sections)")
	composeCmd.Flags().StringVarP(&styleName, "style", "s", "trap", "Style (trap, ambient, house, lofi)")
	composeCmd.Flags().BoolVar(&epic, "epic", false, "Push climactic sections harder")
	composeCmd.Flags().BoolVar(&phonk, "phonk", false, "Phonk mood: automaton drums, synth bass, cowbell accents")
	composeCmd.Flags().BoolVar(&atmospheric, "atmospheric", false, "Atmospheric mood: softer curve, pad instruments")
	composeCmd.Flags().BoolVar(&minimal, "minimal", false, "Minimal mood: thinner arrangement")
	composeCmd.Flags().BoolVar(&noBreakdown, "no-breakdown", false, "Skip the breakdown/build-up pair in long songs")
	composeCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	composeCmd.Flags().StringVar(&instruments, "instruments", "", "JSON file overriding the instrument bank")
	composeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

var styles = map[string]song.Style{
	"trap":    song.StyleTrap,
	"ambient": song.StyleAmbient,
	"house":   song.StyleHouse,
	"lofi":    song.StyleLofi,
}

func runCompose(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reporter := progress.NewReporter(os.Stdout, verbose)

	reporter.StartStage(progress.StageValidate)

	root, err := theory.ParseNote(rootNote)
	if err != nil {
		return fmt.Errorf("invalid root note %q: %w", rootNote, err)
	}

	scale, ok := theory.ScaleByName(scaleName)
	if !ok {
		return fmt.Errorf("unknown scale %q (see 'mugen styles')", scaleName)
	}

	style, ok := styles[strings.ToLower(styleName)]
	if !ok {
		return fmt.Errorf("unknown style %q (trap, ambient, house, lofi)", styleName)
	}

	bank := config.DefaultInstruments()
	if instruments != "" {
		bank, err = config.LoadInstruments(instruments)
		if err != nil {
			return err
		}
		reporter.Update("loaded instrument bank from %s", instruments)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("request validated",
		slog.Int("root", root),
		slog.String("scale", scaleName),
		slog.Int("tempo", tempoBPM),
		slog.Int64("seed", seed))
	reporter.StageComplete("root %s, scale %s, %d bpm, seed %d", rootNote, scaleName, tempoBPM, seed)

	c := composer.New(
		config.DefaultTiming(),
		config.DefaultChannels(),
		config.DefaultControllers(),
		config.GMDrums(),
		bank,
	)

	reporter.StartStage(progress.StageCompose)

	comp, err := c.Compose(composer.Request{
		Root:     root,
		Scale:    scale,
		TempoBPM: tempoBPM,
		NumBars:  numBars,
		Style:    style,
		Mood: song.Mood{
			Epic:        epic,
			Phonk:       phonk,
			Atmospheric: atmospheric,
			Minimal:     minimal,
		},
		HasBreakdown: !noBreakdown,
		Seed:         seed,
	})
	if err != nil {
		reporter.Error(err)
		return err
	}
	logger.Debug("composition assembled",
		slog.Int("bars", comp.TotalBars),
		slog.Int("channels", len(comp.Streams)),
		slog.Int("last_tick", comp.LastTick))
	reporter.StageComplete("%d bars across %d channels", comp.TotalBars, len(comp.Streams))

	reporter.StartStage(progress.StageRender)
	r := render.New(config.DefaultTiming(), config.DefaultChannels())
	if err := r.WriteFile(comp, outputPath); err != nil {
		reporter.Error(err)
		return err
	}

	reporter.Done(outputPath)
	return nil
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	itemStyle    = lipgloss.NewStyle().PaddingLeft(2)
)

func runStyles(cmd *cobra.Command, args []string) error {
	fmt.Println(headingStyle.Render("Styles"))
	for _, s := range []string{"trap", "ambient", "house", "lofi"} {
		fmt.Println(itemStyle.Render(s))
	}

	fmt.Println(headingStyle.Render("Scales"))
	for _, s := range theory.ScaleNames() {
		fmt.Println(itemStyle.Render(s))
	}

	fmt.Println(headingStyle.Render("Moods"))
	for _, m := range []string{"--epic", "--phonk", "--atmospheric", "--minimal"} {
		fmt.Println(itemStyle.Render(m))
	}
	return nil
}

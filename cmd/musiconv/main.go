// Package main is the entry point for the musiconv CLI
package main

import (
	"fmt"
	"os"

	"github.com/james-see/musiconv/pkg/api"
	"github.com/james-see/musiconv/pkg/converter"
	"github.com/james-see/musiconv/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	keyName    string
	clefName   string
	baseFreq   string
	outputFile string
	beats      int
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "musiconv",
	Short: "Convert between musical pitch representations",
	Long: `musiconv converts between representations of a single musical pitch:
note names, half-tone values, frequencies, amplitude/gain, and staff
notation under a key signature and clef.

Examples:
  musiconv parse A4 "+30" 440Hz
  musiconv parse --key F/d --clef bass Bb2
  musiconv parse "A4=432Hz" C5
  musiconv export C4 -o c4.mid --beats 4
  musiconv repl
  musiconv serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var parseCmd = &cobra.Command{
	Use:   "parse <input>...",
	Short: "Apply inputs in order and print the resulting state",
	Long: `Each argument is one line of the input language: a note name ("A4",
"D#4/Eb4", "A4 +30"), a frequency ("440Hz"), a base frequency assignment
("A4=432Hz"), an amplitude ("35%"), a gain ("-10dB"), a key ("F/d"), a
clef ("bass"), or staff notation ("sc 5:#").`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var exportCmd = &cobra.Command{
	Use:   "export <input>...",
	Short: "Apply inputs and write the pitch as a MIDI file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Launch the interactive terminal UI",
	RunE:  runREPL,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&keyName, "key", "k", "", "Key signature (e.g. F/d)")
	rootCmd.PersistentFlags().StringVarP(&clefName, "clef", "c", "", "Clef (violin, alto, bass)")
	rootCmd.PersistentFlags().StringVarP(&baseFreq, "base", "b", "", "Base frequency (e.g. A4=432Hz)")

	// export command
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path (required)")
	exportCmd.Flags().IntVar(&beats, "beats", 4, "Note length in quarter-note beats")
	_ = exportCmd.MarkFlagRequired("output")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(serveCmd)
}

// newConverter builds a converter with the global flags applied.
func newConverter() (*converter.Converter, error) {
	conv := converter.New()
	if keyName != "" {
		if err := conv.SetKey(keyName); err != nil {
			return nil, err
		}
	}
	if clefName != "" {
		if err := conv.SetClef(clefName); err != nil {
			return nil, err
		}
	}
	if baseFreq != "" {
		if err := conv.SetBaseFreqText(baseFreq); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

func applyInputs(conv *converter.Converter, args []string) error {
	for _, arg := range args {
		if err := conv.Set(arg); err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	conv, err := newConverter()
	if err != nil {
		return err
	}
	if err := applyInputs(conv, args); err != nil {
		return err
	}

	fmt.Printf("note:      %s\n", conv.NoteName())
	fmt.Printf("in key:    %s (%s)\n", conv.KeyName(), conv.Key())
	fmt.Printf("value:     %+.2f\n", conv.NoteValue())
	fmt.Printf("frequency: %.3fHz (base %.3fHz)\n", conv.Frequency(), conv.BaseFreq())
	fmt.Printf("amplitude: %.1f%% (%.2fdB)\n", conv.Amplitude()*100, conv.Gain())
	for _, n := range conv.Notation() {
		fmt.Printf("staff:     %s (%s clef)\n", n, conv.Clef())
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	conv, err := newConverter()
	if err != nil {
		return err
	}
	if err := applyInputs(conv, args); err != nil {
		return err
	}

	data, err := conv.RenderSMF(beats)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%s, %d beats)\n", outputFile, conv.NoteName(), beats)
	return nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tonelang-ai/tonelang-go/config"
	"github.com/tonelang-ai/tonelang-go/notation"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	out := flag.String("o", "out.mid", "output MIDI file")
	bpm := flag.Float64("bpm", 0, "tempo (defaults to the configured export_bpm)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tonelang-export [-config config.yaml] [-o out.mid] [-bpm 120] <notation-file>")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}
	tempo := *bpm
	if tempo <= 0 {
		tempo = cfg.ExportBPM
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}

	voices, err := notation.Parse(string(source))
	if err != nil {
		log.Fatalf("❌ Notation rejected: %v", err)
	}
	notes, err := notation.Interpret(voices)
	if err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}
	defer f.Close()

	if err := notation.WriteSMF(f, notes, tempo); err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}
	log.Printf("✅ Wrote %d notes across %d voices to %s at %g BPM", len(notes), len(voices), *out, tempo)
}

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/orizon-lang/wgsl-fuzz/internal/lexer"
	"github.com/orizon-lang/wgsl-fuzz/internal/parser"
	"github.com/orizon-lang/wgsl-fuzz/internal/structfuzz"
	"github.com/orizon-lang/wgsl-fuzz/internal/testrunner/fuzz"
)

func main() {
	var (
		dur        time.Duration
		seed       int64
		max        int
		par        int
		corpusPath string
		corpusDir  string
		corpusOut  string
		outPath    string
		crashDir   string
		lang       string
		minimize   string
		targetKind string
		covOut     string
		covStats   bool
		per        time.Duration
		minOnCrash bool
		minDir     string
		minBudget  time.Duration
		saveSeed   string
		printStats bool
		jsonStats  string
		intensity  float64
		autotune   bool
		covMode    string
		maxExecs   uint64
		probSpec   string
		kindSpec   string
		inspect    int
	)

	flag.DurationVar(&dur, "duration", 5*time.Second, "fuzzing duration")
	flag.Int64Var(&seed, "seed", 0, "random seed (0=time)")
	flag.IntVar(&max, "max", 4096, "max input size")
	flag.IntVar(&par, "p", 1, "parallel workers")
	flag.StringVar(&corpusPath, "corpus", "", "optional corpus file (one input per line, hex or raw)")
	flag.StringVar(&corpusOut, "corpus-out", "", "directory to save interesting inputs (new coverage)")
	flag.StringVar(&corpusDir, "corpus-dir", "", "optional corpus directory (each file is an input)")
	flag.StringVar(&outPath, "out", "", "optional crashes output file")
	flag.StringVar(&crashDir, "crash-dir", "", "optional directory to save each crashing input as a file")
	flag.StringVar(&lang, "lang", "en", "message language (ja|en)")
	flag.StringVar(&minimize, "minimize", "", "minimize a crashing input from file to --out (skips fuzz loop)")
	flag.StringVar(&targetKind, "target", "noop", "target selector (noop|wgsl|wgsl-parser|custom)")
	flag.StringVar(&covOut, "covout", "", "write token-edge coverage to file during fuzzing")
	flag.BoolVar(&covStats, "covstats", false, "print coverage summary (unique token-edge count)")
	flag.DurationVar(&per, "per", 0, "per-input timeout (0=none)")
	flag.BoolVar(&minOnCrash, "min-on-crash", false, "minimize crashing inputs to --min-dir")
	flag.StringVar(&minDir, "min-dir", "", "directory to write minimized crashes (default=./crashes_min)")
	flag.DurationVar(&minBudget, "min-budget", 2*time.Second, "time budget for per-crash minimization")
	flag.StringVar(&saveSeed, "save-seed", "", "optional path to write the used random seed")
	flag.BoolVar(&printStats, "stats", false, "print execution/crash statistics at end")
	flag.StringVar(&jsonStats, "json-stats", "", "write execution/crash stats as JSON to file")
	flag.Float64Var(&intensity, "intensity", 0, "mutation intensity factor (1.0=default). 0=auto")
	flag.BoolVar(&autotune, "autotune", false, "enable adaptive mutation intensity")
	flag.StringVar(&covMode, "cov-mode", "weighted", "coverage mode (edge|weighted|trigram|both)")
	flag.Uint64Var(&maxExecs, "max-execs", 0, "stop after this many executions (0=unlimited)")
	flag.StringVar(&probSpec, "prob", "", "comma-separated MutationKind weights, padded/truncated to the full kind count (default 10 each)")
	flag.StringVar(&kindSpec, "kind", "", "force every structural mutation to this MutationKind by name (e.g. RandomTerminal); default samples from --prob")
	flag.IntVar(&inspect, "inspect", 0, "debug mode: render and mutate N generations starting from an empty buffer, printing each, then exit")
	flag.Parse()

	L := getLocale(lang)

	// Determine final seed deterministically here so it is known to the user and reproducible.
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if saveSeed != "" {
		_ = os.WriteFile(saveSeed, []byte(fmt.Sprintf("%d\n", seed)), 0o644)
	}

	if inspect > 0 {
		runInspect(inspect, uint64(seed))
		return
	}

	// choose target.
	var target fuzz.Target

	// covSource turns a raw corpus entry into the text coverage is measured
	// over; the wgsl targets measure coverage over rendered WGSL source, not
	// the opaque structural bytes the grammar actually consumes.
	covSource := func(data []byte) string { return string(data) }

	switch strings.ToLower(targetKind) {
	case "noop":
		target = func(data []byte) error {
			_ = data
			return nil
		}
	case "wgsl":
		covSource = structfuzz.Render
		// Render the structural buffer to WGSL source and lex it; a crash
		// here means the grammar emitted something the lexer chokes on.
		target = func(data []byte) error {
			src := structfuzz.Render(data)

			lx := lexer.NewWithFilename(src, "fuzz_wgsl.oriz")
			for {
				tok := lx.NextToken()
				if tok.Type == lexer.TokenError {
					return fmt.Errorf("lexer error token: %q", tok.Literal)
				}

				if tok.Type == lexer.TokenEOF {
					break
				}
			}

			return nil
		}
	case "wgsl-parser":
		covSource = structfuzz.Render
		// Render then run the rendered source through the full parser.
		target = func(data []byte) error {
			src := structfuzz.Render(data)
			lx := lexer.NewWithFilename(src, "fuzz_wgsl_parser.oriz")
			ps := parser.NewParser(lx, "fuzz_wgsl_parser.oriz")

			_, errs := ps.Parse()
			if len(errs) > 0 {
				return fmt.Errorf("parse failed: %w", errs[0])
			}

			return nil
		}
	default:
		target = func(data []byte) error {
			_ = data
			return nil
		}
	}

	if minimize != "" {
		if outPath == "" {
			fatal(L, "--minimize requires --out destination")
		}

		b, err := os.ReadFile(minimize)
		if err != nil {
			fatal(L, "failed to read input: ", err)
		}

		min := fuzz.Minimize(seed, b, target, dur)
		if err := os.WriteFile(outPath, min, 0o644); err != nil {
			fatal(L, "failed to write output: ", err)
		}

		println(L.done())

		return
	}

	var corpus []fuzz.CorpusEntry

	if corpusPath != "" {
		b2, err2 := os.ReadFile(corpusPath)
		if err2 != nil {
			fatal(L, "failed to read corpus: ", err2)
		}

		for _, line := range strings.Split(string(b2), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			// Try to decode hex input; fallback to raw on failure.
			l := line
			if strings.HasPrefix(l, "0x") || strings.HasPrefix(l, "0X") {
				l = l[2:]
			}

			if decoded, errh := hex.DecodeString(l); errh == nil && len(decoded) > 0 {
				corpus = append(corpus, decoded)
			} else {
				corpus = append(corpus, []byte(line))
			}
		}
	}
	// Load corpus from directory if provided (one file per input).
	if corpusDir != "" {
		entries, err := os.ReadDir(corpusDir)
		if err != nil {
			fatal(L, "failed to read corpus dir: ", err)
		}

		for _, e := range entries {
			if e.IsDir() {
				continue
			}

			b, err := os.ReadFile(filepath.Join(corpusDir, e.Name()))
			if err == nil && len(b) > 0 {
				corpus = append(corpus, b)
			}
		}
	}

	var w io.Writer

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fatal(L, "failed to open output: ", err)
		}

		defer f.Close()
		w = f
	}

	// Optional coverage collection wrapper (thread-safe log + unique set).
	wrapped := target

	var covMu sync.Mutex

	covSeen := make(map[uint64]struct{})

	if covOut != "" || covStats || corpusOut != "" {
		var logf io.Writer

		if covOut != "" {
			f, err := os.Create(covOut)
			if err != nil {
				fatal(L, "failed to open covout: ", err)
			}

			defer f.Close()
			logf = f
		}

		wrapped = func(data []byte) error {
			edges := fuzz.ComputeCoverage(covMode, covSource(data))

			if covOut != "" {
				covMu.Lock()
				for _, e := range edges {
					// write as hex per line.
					fmt.Fprintf(logf, "%016x\n", e)
				}
				covMu.Unlock()
			}

			if covStats {
				covMu.Lock()
				for _, e := range edges {
					covSeen[e] = struct{}{}
				}
				covMu.Unlock()
			}
			// Save interesting inputs based on new edge discovery.
			if corpusOut != "" {
				covMu.Lock()
				base := len(covSeen)

				for _, e := range edges {
					covSeen[e] = struct{}{}
				}

				grew := len(covSeen) > base
				covMu.Unlock()

				if grew {
					// Deduplicate by input hash and persist once.
					sum := sha256.Sum256(data)
					hexname := hex.EncodeToString(sum[:]) + ".bin"
					_ = os.MkdirAll(corpusOut, 0o755)
					path := filepath.Join(corpusOut, hexname)

					if _, err := os.Stat(path); err != nil {
						_ = os.WriteFile(path, data, 0o644)
					}
				}
			} else if covStats {
				covMu.Lock()
				for _, e := range edges {
					covSeen[e] = struct{}{}
				}
				covMu.Unlock()
			}

			return target(data)
		}
	}

	// Optional per-input timeout and on-crash minimization wrapper.
	effective := wrapped

	if per > 0 || minOnCrash {
		if minDir == "" {
			minDir = "crashes_min"
		}

		baseTarget := target // use raw target for minimization to avoid wrapper side effects
		effective = func(data []byte) error {
			// Apply per-input timeout if requested.
			var err error

			if per > 0 {
				ch := make(chan error, 1)
				go func() { ch <- wrapped(data) }()
				select {
				case e := <-ch:
					err = e
				case <-time.After(per):
					err = fmt.Errorf("per-input timeout")
				}
			} else {
				err = wrapped(data)
			}
			// On crash, optionally minimize and persist minimized input.
			if err != nil && minOnCrash {
				_ = os.MkdirAll(minDir, 0o755)
				min := fuzz.Minimize(seed, data, baseTarget, minBudget)
				name := time.Now().Format("20060102_150405.000000000") + ".min"
				_ = os.WriteFile(filepath.Join(minDir, name), min, 0o644)
			}

			return err
		}
	}

	opts := fuzz.Options{Duration: dur, Seed: seed, MaxInput: max, Concurrency: par}
	if per > 0 {
		opts.InputBudget = per
	}

	if intensity > 0 {
		opts.MutationIntensity = intensity
	}

	opts.AutoTune = autotune
	if maxExecs > 0 {
		opts.MaxExecs = maxExecs
	}
	// If a crash directory is specified, wrap crashes writer to emit per-file cases too.
	var crashWriter io.Writer = w

	if crashDir != "" {
		_ = os.MkdirAll(crashDir, 0o755)
		// wrap: on every write of a crash line, also save the input bytes to a timestamped file.
		crashWriter = &crashFileWriter{base: w, dir: crashDir}
	}

	structMutator, err := buildStructMutator(probSpec, kindSpec)
	if err != nil {
		fatal(L, err)
	}

	start := time.Now()
	stats := fuzz.RunWithStats(opts, corpus, effective, structMutator, crashWriter)
	elapsed := time.Since(start)

	if covStats {
		covMu.Lock()
		n := len(covSeen)
		covMu.Unlock()
		fmt.Println(L.cov(n))
	}

	// Optional stats printing / JSON output
	if printStats {
		execsPerSec := float64(stats.Executions) / (elapsed.Seconds())
		fmt.Printf("executions=%d crashes=%d duration=%s execs_per_sec=%.2f\n", stats.Executions, stats.Crashes, elapsed.Truncate(time.Millisecond), execsPerSec)
	}

	if jsonStats != "" {
		_ = os.WriteFile(jsonStats, []byte(fmt.Sprintf("{\"executions\":%d,\"crashes\":%d,\"duration_ms\":%d}\n", stats.Executions, stats.Crashes, elapsed.Milliseconds())), 0o644)
	}

	println(L.done())
}

type locale struct {
	done func() string
	cov  func(n int) string
}

// crashFileWriter writes crash lines to an underlying writer and also extracts.
// the crashing input to store as an individual file in a directory.
type crashFileWriter struct {
	base io.Writer
	dir  string
	buf  []byte
}

func (w *crashFileWriter) Write(p []byte) (int, error) {
	// Pass-through.
	if w.base != nil {
		if _, err := w.base.Write(p); err != nil {
			// ignore pass-through error for extraction.
		}
	}
	// Buffer until newline.
	w.buf = append(w.buf, p...)
	// process complete lines.
	for {
		idx := -1

		for i := 0; i < len(w.buf); i++ {
			if w.buf[i] == '\n' {
				idx = i

				break
			}
		}

		if idx == -1 {
			break
		}

		line := w.buf[:idx]

		if len(w.buf) > idx+1 {
			w.buf = w.buf[idx+1:]
		} else {
			w.buf = w.buf[:0]
		}
		// Attempt to split the assembled line by tabs.
		parts := strings.SplitN(string(line), "\t", 3)
		if len(parts) >= 2 {
			raw := parts[1]
			// We expect hex-encoded input prefixed with 0x from the crash writer.
			if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
				raw = raw[2:]
			}

			if dec, err := hex.DecodeString(raw); err == nil && len(dec) > 0 {
				name := time.Now().Format("20060102_150405.000000000") + ".crash"
				_ = os.WriteFile(filepath.Join(w.dir, name), dec, 0o644)
			}
		}
	}

	return len(p), nil
}

func getLocale(lang string) locale {
	switch strings.ToLower(lang) {
	case "ja", "jp", "japanese":
		return locale{
			done: func() string { return "ファズ終了" },
			cov:  func(n int) string { return fmt.Sprintf("カバレッジユニークエッジ数: %d", n) },
		}
	default:
		return locale{
			done: func() string { return "Fuzzing finished" },
			cov:  func(n int) string { return fmt.Sprintf("Coverage unique edges: %d", n) },
		}
	}
}

func fatal(L locale, a ...any) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}

// buildStructMutator turns --prob/--kind into a fuzz.Mutator backed by
// structfuzz.Mutate. kindSpec, if set, forces every call to that one
// MutationKind and probSpec is ignored; otherwise each call samples a kind
// from the weights in probSpec (default weight 10 per kind).
func buildStructMutator(probSpec, kindSpec string) (fuzz.Mutator, error) {
	var forced mutationKindOrTable

	if kindSpec != "" {
		k, ok := structfuzz.ParseMutationKind(kindSpec)
		if !ok {
			return nil, fmt.Errorf("unknown --kind %q", kindSpec)
		}
		forced.kind = k
		forced.forced = true
	} else {
		weights := make([]uint32, structfuzz.NumMutationKinds)
		for i := range weights {
			weights[i] = 10
		}

		if probSpec != "" {
			parts := strings.Split(probSpec, ",")
			for i, p := range parts {
				if i >= len(weights) {
					break
				}

				v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
				if err != nil {
					return nil, fmt.Errorf("--prob entry %q: %w", p, err)
				}
				weights[i] = uint32(v)
			}
		}

		forced.table = structfuzz.NewProbabilityTable(weights)
	}

	return func(r *rand.Rand, in []byte) []byte {
		kind := forced.kind
		if !forced.forced {
			kind = forced.table.SampleKind(structfuzz.NewRng(r.Uint64()))
		}

		return structfuzz.Mutate(in, len(in)*2+64, r.Uint64(), kind)
	}, nil
}

// mutationKindOrTable holds either a forced MutationKind or a
// ProbabilityTable to sample one from, selected by forced.
type mutationKindOrTable struct {
	forced bool
	kind   structfuzz.MutationKind
	table  structfuzz.ProbabilityTable
}

// runInspect renders and mutates n generations starting from an empty
// buffer, printing each step, for manually eyeballing grammar output.
func runInspect(n int, seed uint64) {
	rng := structfuzz.NewRng(seed)
	buf := []byte{}

	for i := 0; i < n; i++ {
		text := structfuzz.Render(buf)
		fmt.Printf("--- generation %d (%d bytes) ---\n%s\n", i, len(buf), text)

		kind := structfuzz.MutationKind(int(rng.UInt32(uint32(structfuzz.NumMutationKinds))))
		buf = structfuzz.Mutate(buf, len(buf)*2+64, rng.UInt64(), kind)
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/PhucNguyen204/LineCheck_V2/internal/suites"
	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
	"github.com/PhucNguyen204/LineCheck_V2/pkg/verify"
)

// Exit codes: 0 all checks passed, 1 verification failed, 2 usage or
// parse/compile error.

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("linecheck: ")

	suiteDir := flag.String("suite", "", "run every suite manifest under this directory")
	noPrefilter := flag.Bool("no-prefilter", getenv("LINECHECK_NO_PREFILTER", "") != "", "disable the literal prefilter")
	quiet := flag.Bool("q", false, "suppress per-case output, only the final verdict")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: linecheck [flags] CHECKFILE [INPUT]\n       linecheck -suite DIR\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := verify.DefaultConfig()
	if *noPrefilter {
		cfg = verify.DisabledPrefilterConfig()
	}

	if *suiteDir != "" {
		os.Exit(runSuites(*suiteDir, cfg, *quiet))
	}

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(runSingle(flag.Arg(0), flag.Arg(1), cfg, *quiet))
}

func runSingle(checkPath, inputPath string, cfg verify.Config, quiet bool) int {
	cb, err := os.ReadFile(checkPath)
	if err != nil {
		log.Printf("read check file: %v", err)
		return 2
	}
	cf, err := checkfile.Parse(checkPath, cb)
	if err != nil {
		log.Printf("%v", err)
		return 2
	}
	if len(cf.Directives) == 0 {
		log.Printf("warning: %s contains no directives", checkPath)
	}

	var input []byte
	if inputPath == "" || inputPath == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(inputPath)
	}
	if err != nil {
		log.Printf("read input: %v", err)
		return 2
	}

	v := verify.Compile(cf, cfg).Verify(string(input))
	if !v.Pass {
		log.Printf("FAIL %s: %s", checkPath, v.Failure)
		return 1
	}
	if !quiet {
		log.Printf("PASS %s: %d directives over %d lines", checkPath, v.DirectivesRun, v.InputLines)
	}
	return 0
}

func runSuites(dir string, cfg verify.Config, quiet bool) int {
	loaded, err := suites.LoadDirRecursive(dir)
	if err != nil {
		log.Printf("load suites: %v", err)
		return 2
	}
	if len(loaded) == 0 {
		log.Printf("no suite manifests under %s", dir)
		return 2
	}

	passed, failed, broken := 0, 0, 0
	for _, ls := range loaded {
		for _, res := range suites.Run(ls, cfg) {
			name := res.Suite + "/" + res.Case
			switch {
			case res.Err != nil:
				broken++
				log.Printf("ERROR %s: %v", name, res.Err)
			case !res.Verdict.Pass:
				failed++
				log.Printf("FAIL %s: %s", name, res.Verdict.Failure)
			default:
				passed++
				if !quiet {
					log.Printf("PASS %s", name)
				}
			}
		}
	}
	log.Printf("suites: %d passed, %d failed, %d broken", passed, failed, broken)
	if broken > 0 {
		return 2
	}
	if failed > 0 {
		return 1
	}
	return 0
}

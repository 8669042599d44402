package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mpux/64x0/arch"
	"github.com/mpux/64x0/assembler"
	"github.com/mpux/64x0/internal/logger"
)

const version = "1.10"

// Recognized source extensions, replaced by the object extension in the
// output name.
var sourceExts = []string{".64x", ".asm", ".s"}

const objectExt = ".o"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Print program version.")
		binary      = flag.Bool("binary", false, "Output as flat binary.")
		verbose     = flag.Bool("verbose", false, "Print verbose output.")
		subset      = flag.Bool("64xxx", false, "Assemble for the reduced X64000 subset.")
		noColor     = flag.Bool("nocolor", false, "Disable colored output.")
		errorLimit  = flag.Int("errorlimit", assembler.DefaultErrorLimit, "Syntax errors tolerated before giving up.")
	)
	flag.Parse()
	logger.Init(*verbose, *noColor)

	if *showVersion {
		fmt.Printf("asm64: 64x0 assembler v%s\n", version)
		return
	}
	if flag.NArg() == 0 {
		log.Error("no input files")
		os.Exit(1)
	}

	opts := assembler.Options{
		Arch:       arch.Arch64000,
		Binary:     *binary,
		ErrorLimit: *errorLimit,
	}
	if *subset {
		opts.SubArch = arch.Arch64xxx
	}

	status := 0
	for _, src := range flag.Args() {
		if err := assembleFile(src, opts); err != nil {
			if errors.Is(err, assembler.ErrTooManyErrors) {
				log.Error("error limit exceeded", "file", src)
				os.Exit(3)
			}
			log.Error("assembly failed", "file", src, "error", err)
			status = 1
		}
	}
	if status == 0 {
		log.Debug("exit succeeded with code 0")
	}
	os.Exit(status)
}

// assembleFile runs one assembly session and writes the object file,
// deleting the partial output if anything fails.
func assembleFile(src string, opts assembler.Options) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("can't open: %s: %w", src, err)
	}
	defer in.Close()

	dst := objectName(src)
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("can't create: %s: %w", dst, err)
	}

	opts.File = src
	sess := assembler.New(opts)

	if err := sess.Assemble(in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	log.Debug("writing object file", "file", dst)
	if err := sess.WriteObject(out); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// objectName derives the output path by swapping a known source extension
// for the object extension.
func objectName(src string) string {
	for _, ext := range sourceExts {
		if strings.HasSuffix(src, ext) {
			return strings.TrimSuffix(src, ext) + objectExt
		}
	}
	return src + objectExt
}

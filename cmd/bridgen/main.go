// Bridgen CLI - generates foreign-function bindings for annotated Go packages.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/chazu/bridgen/bindgen"
	"github.com/chazu/bridgen/manifest"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	outputDir := flag.String("o", "", "Output directory (default from bridgen.toml, else ./bindings)")
	targetFlag := flag.String("target", "", "Emission target: cabi or host (default from bridgen.toml, else cabi)")
	namespace := flag.String("namespace", "", "Host class namespace (default from bridgen.toml, else Go)")
	hostImport := flag.String("host-import", "", "Import path of the host protocol package")
	name := flag.String("name", "", "Base name for generated files (default: wrapped package name)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bridgen [options] [package]\n\n")
		fmt.Fprintf(os.Stderr, "Generates C-ABI or host-extension bindings for the annotated\n")
		fmt.Fprintf(os.Stderr, "declarations of a Go package.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bridgen ./geom                  # C-ABI bindings into ./bindings\n")
		fmt.Fprintf(os.Stderr, "  bridgen -target host ./geom     # host-extension glue as well\n")
		fmt.Fprintf(os.Stderr, "  bridgen                         # configuration from bridgen.toml\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("bridgen")

	pattern := flag.Arg(0)
	var include map[string]bool

	// Manifest-driven when no package is given on the command line, and
	// manifest values fill any flag left at its default either way.
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fatal("loading manifest: %v", err)
	}
	dir := "."
	if m != nil {
		dir = m.Dir
		if pattern == "" {
			pattern = m.Bind.Package
			include = m.IncludeSet()
		}
		if *outputDir == "" {
			*outputDir = m.OutputDir()
		}
		if *targetFlag == "" {
			*targetFlag = m.Bind.Target
		}
		if *namespace == "" {
			*namespace = m.Bind.Namespace
		}
		if *hostImport == "" {
			*hostImport = m.Bind.HostImport
		}
	}
	if pattern == "" {
		fmt.Fprintln(os.Stderr, "Error: no package specified and no bridgen.toml found")
		fmt.Fprintln(os.Stderr, "Usage: bridgen [options] [package] or configure [bind] in bridgen.toml")
		os.Exit(1)
	}
	if *outputDir == "" {
		*outputDir = "bindings"
	}
	if *namespace == "" {
		*namespace = "Go"
	}
	if *hostImport == "" {
		*hostImport = "github.com/chazu/bridgen/host"
	}

	target, err := bindgen.ParseTarget(*targetFlag)
	if err != nil {
		fatal("%v", err)
	}

	log.Infof("introspecting %s", pattern)
	info, err := bindgen.IntrospectPackage(pattern, dir)
	if err != nil {
		fatal("introspecting %s: %v", pattern, err)
	}

	decls := info.Decls
	if include != nil {
		kept := decls[:0]
		for _, d := range decls {
			if include[d.Name] {
				kept = append(kept, d)
			}
		}
		decls = kept
	}
	log.Infof("found %d annotated declarations", len(decls))

	if *name == "" {
		*name = info.Name
	}
	opts := bindgen.Options{
		Name:        *name,
		GenPackage:  "main",
		ImportPath:  info.ImportPath,
		PackageName: info.Name,
		HostImport:  *hostImport,
		Namespace:   *namespace,
		Target:      target,
	}

	files, err := bindgen.Generate(opts, decls)
	if err != nil {
		// Diagnostics abort before assembly, so nothing was written.
		fatal("%v", err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fatal("creating output dir: %v", err)
	}
	for _, f := range files {
		path := filepath.Join(*outputDir, f.Name)
		if err := os.WriteFile(path, []byte(f.Contents), 0o644); err != nil {
			fatal("writing %s: %v", path, err)
		}
		log.Infof("wrote %s", path)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

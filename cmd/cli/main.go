package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/psylabs/art-finder/internal/download"
	"github.com/psylabs/art-finder/internal/museum"
	"github.com/psylabs/art-finder/pkg/mappings"
	"github.com/psylabs/art-finder/pkg/models"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "sources":
		handleSources()
	case "departments":
		handleDepartments(os.Args[2:])
	case "search":
		handleSearch(os.Args[2:])
	case "fetch":
		handleFetch(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: art-finder <command> [flags]

commands:
  sources                    list available museums
  departments <code>         list canonical and museum department names
  search <code> [flags]      search a museum and print the results
  fetch <code> [flags]       search a museum and download the images

run "art-finder search -h" for the filter flags`)
}

func handleSources() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME")
	for _, info := range museum.ListAll() {
		fmt.Fprintf(w, "%s\t%s\n", info.Code, info.Name)
	}
	_ = w.Flush()
}

func handleDepartments(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: art-finder departments <code>")
		os.Exit(1)
	}

	adapter, err := museum.Resolve(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("canonical departments:")
	for _, d := range mappings.CanonicalDepartments() {
		fmt.Printf("  %s\n", d)
	}

	native := adapter.Departments()
	if len(native) == 0 {
		fmt.Printf("\n%s departments: none known yet (discovered from searches)\n", adapter.Code())
		return
	}
	fmt.Printf("\n%s departments:\n", adapter.Code())
	for _, d := range native {
		fmt.Printf("  %s\n", d)
	}
}

// filterFlags registers the shared search filter flags on a flag set.
func filterFlags(fs *flag.FlagSet) *models.SearchFilters {
	filters := models.DefaultFilters()
	fs.StringVar(&filters.Query, "q", "", "search term (AIC only)")
	fs.StringVar(&filters.Department, "department", "", "canonical department name")
	fs.StringVar(&filters.Orientation, "orientation", "", "Portrait or Landscape")
	fs.IntVar(&filters.YearFrom, "year-from", 0, "earliest creation year")
	fs.IntVar(&filters.YearTo, "year-to", 0, "latest creation year")
	fs.IntVar(&filters.MinWidth, "min-width", 0, "minimum image width in pixels")
	fs.IntVar(&filters.MinHeight, "min-height", 0, "minimum image height in pixels")
	fs.IntVar(&filters.Limit, "limit", models.DefaultLimit, "maximum number of results")
	return &filters
}

func runSearch(code string, filters models.SearchFilters, verbose bool, timeout time.Duration) models.AdapterResult {
	adapter, err := museum.Resolve(code)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if verbose {
		adapter.SetLogger(func(level, message string) {
			fmt.Fprintf(os.Stderr, "%s %s\n", level, message)
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return adapter.Search(ctx, filters)
}

func printResult(result models.AdapterResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tARTIST\tDEPARTMENT\tSIZE")
	for _, art := range result.Artworks {
		size := "?"
		if art.ImageWidth != nil && art.ImageHeight != nil {
			size = fmt.Sprintf("%dx%d", *art.ImageWidth, *art.ImageHeight)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", art.ID, truncate(art.Title, 40), truncate(art.Artist, 30), art.Department, size)
	}
	_ = w.Flush()

	fmt.Printf("\n%d artworks\n", len(result.Artworks))
	for name, desc := range result.FilterStatus.Applied {
		fmt.Printf("applied %s: %s\n", name, desc)
	}
	for name, reason := range result.FilterStatus.Skipped {
		fmt.Printf("skipped %s: %s\n", name, reason)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", errMsg)
	}
}

func handleSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	filters := filterFlags(fs)
	verbose := fs.Bool("verbose", false, "print adapter log events")
	timeout := fs.Int("timeout", 60, "overall timeout in seconds")

	code, rest := splitCode(args)
	_ = fs.Parse(rest)

	result := runSearch(code, *filters, *verbose, time.Duration(*timeout)*time.Second)
	printResult(result)
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func handleFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	filters := filterFlags(fs)
	verbose := fs.Bool("verbose", false, "print adapter log events")
	timeout := fs.Int("timeout", 60, "overall timeout in seconds")
	out := fs.String("out", ".", "output directory for downloaded images")

	code, rest := splitCode(args)
	_ = fs.Parse(rest)

	result := runSearch(code, *filters, *verbose, time.Duration(*timeout)*time.Second)
	printResult(result)
	if len(result.Errors) > 0 {
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	fetcher := download.NewFetcher(30 * time.Second)
	downloaded := 0
	for _, art := range result.Artworks {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		body, _, err := fetcher.Fetch(ctx, art.ImageURL)
		cancel()
		if err != nil {
			// One bad image must not stop the rest of the batch.
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", art.Filename, err)
			continue
		}
		path := filepath.Join(*out, art.Filename)
		if err := os.WriteFile(path, body, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", art.Filename, err)
			continue
		}
		downloaded++
		fmt.Printf("saved %s\n", path)
	}
	fmt.Printf("downloaded %d of %d images\n", downloaded, len(result.Artworks))
}

// splitCode peels the museum code off the front of the argument list so
// flags can follow it: "art-finder search CMA -limit 20".
func splitCode(args []string) (string, []string) {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "-help" || args[0] == "--help") {
		// Let the flag set print its own help.
		return "", args
	}
	if len(args) == 0 || len(args[0]) == 0 || args[0][0] == '-' {
		fmt.Fprintln(os.Stderr, "museum code required (see: art-finder sources)")
		os.Exit(1)
	}
	return args[0], args[1:]
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"cvcombine/internal/combine"
	"cvcombine/internal/folds"
	"cvcombine/internal/plotting"

	"github.com/fatih/color"
)

func main() {
	outprefix := flag.String("outprefix", "", "Prefix for input and output files (--outprefix from training)")
	foldnums := flag.String("foldnums", "", "Fold numbers to combine, default is to determine using glob")
	affinity := flag.Bool("affinity", false, "Also look for affinity results files")
	affinityOnly := flag.Bool("affinity_only", false, "ONLY look for affinity results files")
	twoSources := flag.Bool("two_data_sources", false, "Whether to look for 2nd data source results files")
	testInterval := flag.Int("test_interval", 40, "Number of iterations between tests")

	flag.Parse()

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	if *outprefix == "" {
		fmt.Fprintln(os.Stderr, red("error: -outprefix is required"))
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *testInterval <= 0 {
		fmt.Fprintln(os.Stderr, red("error: -test_interval must be positive"))
		os.Exit(1)
	}

	cfg := folds.Config{
		Prefix:         *outprefix,
		FoldSpec:       *foldnums,
		Classification: !*affinityOnly,
		Affinity:       *affinity || *affinityOnly,
		SecondSource:   *twoSources,
		TestInterval:   *testInterval,
	}

	fileSets, err := folds.Resolve(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(1)
	}

	printFileSets(fileSets)

	assembler := combine.Assembler{Config: cfg, Renderer: plotting.New()}
	if err := assembler.Run(fileSets); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(1)
	}

	fmt.Println(green(fmt.Sprintf("Combined results for %d folds with prefix %s", len(fileSets), cfg.Prefix)))
}

func printFileSets(fileSets map[int]folds.FileSet) {
	foldNums := make([]int, 0, len(fileSets))
	for i := range fileSets {
		foldNums = append(foldNums, i)
	}
	sort.Ints(foldNums)

	for _, i := range foldNums {
		fs := fileSets[i]
		for _, role := range fs.SortedRoles() {
			fmt.Printf("%3d %15s %s\n", i, role, fs[role])
		}
	}
}

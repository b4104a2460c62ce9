package folds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Config is the immutable run configuration shared by every component.
type Config struct {
	Prefix         string
	FoldSpec       string
	Classification bool
	Affinity       bool
	SecondSource   bool
	TestInterval   int
}

// Logical roles of the per-fold results files.
const (
	RoleOut             = "out"
	RoleAUCFinalTest    = "auc_finaltest"
	RoleAUCFinalTrain   = "auc_finaltrain"
	RoleRMSDFinalTest   = "rmsd_finaltest"
	RoleRMSDFinalTrain  = "rmsd_finaltrain"
	RoleAUCFinalTest2   = "auc_finaltest2"
	RoleAUCFinalTrain2  = "auc_finaltrain2"
	RoleRMSDFinalTest2  = "rmsd_finaltest2"
	RoleRMSDFinalTrain2 = "rmsd_finaltrain2"
)

// FileSet maps logical roles to the result file paths of one fold.
type FileSet map[string]string

// SortedRoles returns the roles ordered by name length, then name.
func (fs FileSet) SortedRoles() []string {
	roles := make([]string, 0, len(fs))
	for role := range fs {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool {
		if len(roles[i]) != len(roles[j]) {
			return len(roles[i]) < len(roles[j])
		}
		return roles[i] < roles[j]
	})
	return roles
}

// ErrNoFolds indicates that no cross-validation folds could be resolved.
var ErrNoFolds = errors.New("missing results files")

// MissingFileError lists every required results file that does not exist.
type MissingFileError struct {
	Paths []string
}

func (e *MissingFileError) Error() string {
	if len(e.Paths) == 1 {
		return fmt.Sprintf("%s does not exist", e.Paths[0])
	}
	return fmt.Sprintf("%d results files do not exist: %s", len(e.Paths), strings.Join(e.Paths, ", "))
}

// DiscoverFoldNums finds fold numbers by matching files that share the
// output prefix against the training pipeline's naming convention.
func DiscoverFoldNums(prefix string) ([]int, error) {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `\.(\d+)\.(out|(auc|rmsd)\.final(test|train)2?)$`)

	matches, err := filepath.Glob(prefix + "*")
	if err != nil {
		return nil, fmt.Errorf("invalid output prefix %q: %w", prefix, err)
	}

	seen := make(map[int]bool)
	var nums []int
	for _, file := range matches {
		m := pattern.FindStringSubmatch(file)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !seen[n] {
			seen[n] = true
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	return nums, nil
}

// ParseFoldList splits a comma-separated fold list into fold numbers,
// ignoring empty tokens.
func ParseFoldList(spec string) ([]int, error) {
	var nums []int
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid fold number %q", tok)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// BuildFileSet builds the expected results files for every fold and
// validates that each one exists. All absent paths are reported at once.
func BuildFileSet(cfg Config, foldNums []int) (map[int]FileSet, error) {
	if len(foldNums) == 0 {
		return nil, ErrNoFolds
	}

	sets := make(map[int]FileSet, len(foldNums))
	for _, i := range foldNums {
		fs := FileSet{
			RoleOut: fmt.Sprintf("%s.%d.out", cfg.Prefix, i),
		}
		if cfg.Classification {
			fs[RoleAUCFinalTest] = fmt.Sprintf("%s.%d.auc.finaltest", cfg.Prefix, i)
			fs[RoleAUCFinalTrain] = fmt.Sprintf("%s.%d.auc.finaltrain", cfg.Prefix, i)
		}
		if cfg.Affinity {
			fs[RoleRMSDFinalTest] = fmt.Sprintf("%s.%d.rmsd.finaltest", cfg.Prefix, i)
			fs[RoleRMSDFinalTrain] = fmt.Sprintf("%s.%d.rmsd.finaltrain", cfg.Prefix, i)
		}
		if cfg.SecondSource {
			if cfg.Classification {
				fs[RoleAUCFinalTest2] = fmt.Sprintf("%s.%d.auc.finaltest2", cfg.Prefix, i)
				fs[RoleAUCFinalTrain2] = fmt.Sprintf("%s.%d.auc.finaltrain2", cfg.Prefix, i)
			}
			if cfg.Affinity {
				fs[RoleRMSDFinalTest2] = fmt.Sprintf("%s.%d.rmsd.finaltest2", cfg.Prefix, i)
				fs[RoleRMSDFinalTrain2] = fmt.Sprintf("%s.%d.rmsd.finaltrain2", cfg.Prefix, i)
			}
		}
		sets[i] = fs
	}

	var missing []string
	for _, i := range foldNums {
		for _, role := range sets[i].SortedRoles() {
			if !fileExists(sets[i][role]) {
				missing = append(missing, sets[i][role])
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingFileError{Paths: missing}
	}
	return sets, nil
}

// Resolve determines the fold set from the configuration, either from the
// explicit fold list or by filename discovery, and builds the validated
// per-fold file sets.
func Resolve(cfg Config) (map[int]FileSet, error) {
	var nums []int
	var err error
	if cfg.FoldSpec != "" {
		nums, err = ParseFoldList(cfg.FoldSpec)
	} else {
		nums, err = DiscoverFoldNums(cfg.Prefix)
	}
	if err != nil {
		return nil, err
	}
	return BuildFileSet(cfg, nums)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

package folds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("0 0\n"), 0644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestDiscoverFoldNums(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "cvmodel")
	for _, name := range []string{
		prefix + ".0.out",
		prefix + ".1.out",
		prefix + ".3.auc.finaltest",
		prefix + ".10.rmsd.finaltrain2",
		prefix + ".x.out",
		prefix + ".2.outdated",
		prefix + "_roc_test.pdf",
	} {
		touch(t, name)
	}

	nums, err := DiscoverFoldNums(prefix)
	if err != nil {
		t.Fatalf("DiscoverFoldNums: %v", err)
	}
	if want := []int{0, 1, 3, 10}; !reflect.DeepEqual(nums, want) {
		t.Errorf("got %v, want %v", nums, want)
	}
}

func TestParseFoldList(t *testing.T) {
	tests := []struct {
		spec    string
		want    []int
		wantErr bool
	}{
		{spec: "0,1,2", want: []int{0, 1, 2}},
		{spec: "3,,5,", want: []int{3, 5}},
		{spec: "", want: nil},
		{spec: "1,two", wantErr: true},
	}

	for _, tt := range tests {
		nums, err := ParseFoldList(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFoldList(%q): expected error", tt.spec)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFoldList(%q): %v", tt.spec, err)
			continue
		}
		if !reflect.DeepEqual(nums, tt.want) {
			t.Errorf("ParseFoldList(%q): got %v, want %v", tt.spec, nums, tt.want)
		}
	}
}

func TestBuildFileSetRoles(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "classification only",
			cfg:  Config{Classification: true},
			want: []string{RoleOut, RoleAUCFinalTest, RoleAUCFinalTrain},
		},
		{
			name: "classification and affinity",
			cfg:  Config{Classification: true, Affinity: true},
			want: []string{RoleOut, RoleAUCFinalTest, RoleAUCFinalTrain, RoleRMSDFinalTest, RoleRMSDFinalTrain},
		},
		{
			name: "affinity only",
			cfg:  Config{Affinity: true},
			want: []string{RoleOut, RoleRMSDFinalTest, RoleRMSDFinalTrain},
		},
		{
			name: "everything",
			cfg:  Config{Classification: true, Affinity: true, SecondSource: true},
			want: []string{
				RoleOut,
				RoleAUCFinalTest, RoleAUCFinalTrain, RoleRMSDFinalTest, RoleRMSDFinalTrain,
				RoleAUCFinalTest2, RoleAUCFinalTrain2, RoleRMSDFinalTest2, RoleRMSDFinalTrain2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Prefix = filepath.Join(t.TempDir(), "cvmodel")

			// create every expected file so validation passes
			for _, role := range tt.want {
				suffix := strings.Replace(role, "_", ".", 1)
				touch(t, fmt.Sprintf("%s.0.%s", cfg.Prefix, suffix))
			}

			sets, err := BuildFileSet(cfg, []int{0})
			if err != nil {
				t.Fatalf("BuildFileSet: %v", err)
			}
			fs := sets[0]
			if len(fs) != len(tt.want) {
				t.Fatalf("expected %d roles, got %d: %v", len(tt.want), len(fs), fs)
			}
			for _, role := range tt.want {
				if _, ok := fs[role]; !ok {
					t.Errorf("missing role %s", role)
				}
			}
		})
	}
}

func TestBuildFileSetMissingFile(t *testing.T) {
	cfg := Config{
		Prefix:         filepath.Join(t.TempDir(), "cvmodel"),
		Classification: true,
	}
	for _, i := range []int{0, 1, 2} {
		touch(t, fmt.Sprintf("%s.%d.out", cfg.Prefix, i))
		touch(t, fmt.Sprintf("%s.%d.auc.finaltrain", cfg.Prefix, i))
		if i != 2 {
			touch(t, fmt.Sprintf("%s.%d.auc.finaltest", cfg.Prefix, i))
		}
	}

	_, err := BuildFileSet(cfg, []int{0, 1, 2})
	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFileError, got %v", err)
	}
	want := fmt.Sprintf("%s.2.auc.finaltest", cfg.Prefix)
	if len(missing.Paths) != 1 || missing.Paths[0] != want {
		t.Errorf("got missing paths %v, want [%s]", missing.Paths, want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should name %s", err.Error(), want)
	}
}

func TestBuildFileSetEmptyFolds(t *testing.T) {
	if _, err := BuildFileSet(Config{Prefix: "cvmodel"}, nil); !errors.Is(err, ErrNoFolds) {
		t.Fatalf("expected ErrNoFolds, got %v", err)
	}
}

func TestSortedRoles(t *testing.T) {
	fs := FileSet{
		RoleRMSDFinalTrain: "c",
		RoleOut:            "a",
		RoleAUCFinalTest:   "b",
	}
	got := fs.SortedRoles()
	want := []string{RoleOut, RoleAUCFinalTest, RoleRMSDFinalTrain}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

package combine

import (
	"fmt"
	"sort"

	"cvcombine/internal/folds"
	"cvcombine/internal/resultsio"
)

// sourceData accumulates per-fold series and pooled final predictions for
// one data source across all folds.
type sourceData struct {
	testAUCs   [][]float64
	trainAUCs  [][]float64
	testRMSDs  [][]float64
	trainRMSDs [][]float64

	testLabels  []float64
	testScores  []float64
	trainLabels []float64
	trainScores []float64

	testAff      []float64
	testPredAff  []float64
	trainAff     []float64
	trainPredAff []float64
}

// Assembler reads every fold's results files and drives the Combiner once
// per active (metric family x data source) pair.
type Assembler struct {
	Config   folds.Config
	Renderer Renderer
}

// Run combines the results of all folds. All reads happen before any
// combination, so a structural problem aborts before outputs are written.
func (a *Assembler) Run(fileSets map[int]folds.FileSet) error {
	roles := Layout(a.Config)
	sources := [2]*sourceData{{}, {}}

	foldNums := make([]int, 0, len(fileSets))
	for i := range fileSets {
		foldNums = append(foldNums, i)
	}
	sort.Ints(foldNums)

	for _, i := range foldNums {
		fs := fileSets[i]

		if a.Config.Classification {
			if err := appendPair(fs[folds.RoleAUCFinalTest], &sources[0].testLabels, &sources[0].testScores); err != nil {
				return err
			}
			if err := appendPair(fs[folds.RoleAUCFinalTrain], &sources[0].trainLabels, &sources[0].trainScores); err != nil {
				return err
			}
		}
		if a.Config.Affinity {
			if err := appendPair(fs[folds.RoleRMSDFinalTest], &sources[0].testAff, &sources[0].testPredAff); err != nil {
				return err
			}
			if err := appendPair(fs[folds.RoleRMSDFinalTrain], &sources[0].trainAff, &sources[0].trainPredAff); err != nil {
				return err
			}
		}
		if a.Config.SecondSource {
			if a.Config.Classification {
				if err := appendPair(fs[folds.RoleAUCFinalTest2], &sources[1].testLabels, &sources[1].testScores); err != nil {
					return err
				}
				if err := appendPair(fs[folds.RoleAUCFinalTrain2], &sources[1].trainLabels, &sources[1].trainScores); err != nil {
					return err
				}
			}
			if a.Config.Affinity {
				if err := appendPair(fs[folds.RoleRMSDFinalTest2], &sources[1].testAff, &sources[1].testPredAff); err != nil {
					return err
				}
				if err := appendPair(fs[folds.RoleRMSDFinalTrain2], &sources[1].trainAff, &sources[1].trainPredAff); err != nil {
					return err
				}
			}
		}

		columns, err := resultsio.ReadTable(fs[folds.RoleOut])
		if err != nil {
			return err
		}
		byRole, err := SliceColumns(columns, roles)
		if err != nil {
			return fmt.Errorf("%s: %w", fs[folds.RoleOut], err)
		}

		if a.Config.Classification {
			sources[0].testAUCs = append(sources[0].testAUCs, byRole[ColTestAUC])
			sources[0].trainAUCs = append(sources[0].trainAUCs, byRole[ColTrainAUC])
		}
		if a.Config.Affinity {
			sources[0].testRMSDs = append(sources[0].testRMSDs, byRole[ColTestRMSD])
			sources[0].trainRMSDs = append(sources[0].trainRMSDs, byRole[ColTrainRMSD])
		}
		if a.Config.SecondSource {
			if a.Config.Classification {
				sources[1].testAUCs = append(sources[1].testAUCs, byRole[ColTest2AUC])
				sources[1].trainAUCs = append(sources[1].trainAUCs, byRole[ColTrain2AUC])
			}
			if a.Config.Affinity {
				sources[1].testRMSDs = append(sources[1].testRMSDs, byRole[ColTest2RMSD])
				sources[1].trainRMSDs = append(sources[1].trainRMSDs, byRole[ColTrain2RMSD])
			}
		}
	}

	combiner := &Combiner{Config: a.Config, Renderer: a.Renderer}
	for s, src := range sources {
		second := s == 1
		if second && !a.Config.SecondSource {
			break
		}

		if a.Config.Classification {
			in := Input{
				TestSeries:  src.testAUCs,
				TrainSeries: src.trainAUCs,
				TestLabels:  src.testLabels,
				TestPreds:   src.testScores,
				TrainLabels: src.trainLabels,
				TrainPreds:  src.trainScores,
			}
			if err := combiner.Combine(in, false, second); err != nil {
				return err
			}
		}

		if a.Config.Affinity {
			in := Input{
				TestSeries:  src.testRMSDs,
				TrainSeries: src.trainRMSDs,
				TestLabels:  src.testAff,
				TestPreds:   src.testPredAff,
				TrainLabels: src.trainAff,
				TrainPreds:  src.trainPredAff,
			}
			// Affinity metrics over a joint classification+affinity
			// model only score truly active compounds.
			if a.Config.Classification {
				in.ActiveTest = src.testLabels
				in.ActiveTrain = src.trainLabels
			}
			if err := combiner.Combine(in, true, second); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendPair reads a two-column final-prediction file and concatenates its
// columns onto the pooled cross-fold sequences.
func appendPair(path string, first, second *[]float64) error {
	columns, err := resultsio.ReadTable(path)
	if err != nil {
		return err
	}
	if len(columns) != 2 {
		return fmt.Errorf("%s: expected 2 columns, got %d", path, len(columns))
	}
	*first = append(*first, columns[0]...)
	*second = append(*second, columns[1]...)
	return nil
}

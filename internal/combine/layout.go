package combine

import (
	"fmt"

	"cvcombine/internal/folds"
)

// ColumnRole names one metric column of a per-iteration out file.
type ColumnRole string

const (
	ColTestAUC      ColumnRole = "test_auc"
	ColTrainAUC     ColumnRole = "train_auc"
	ColTrainLoss    ColumnRole = "train_loss"
	ColLearningRate ColumnRole = "learning_rate"
	ColTestRMSD     ColumnRole = "test_rmsd"
	ColTrainRMSD    ColumnRole = "train_rmsd"
	ColTest2AUC     ColumnRole = "test2_auc"
	ColTrain2AUC    ColumnRole = "train2_auc"
	ColTrain2Loss   ColumnRole = "train2_loss"
	ColTest2RMSD    ColumnRole = "test2_rmsd"
	ColTrain2RMSD   ColumnRole = "train2_rmsd"
)

// Layout returns the ordered column roles of an out file for the given
// configuration. The training pipeline packs columns in this fixed order;
// the learning rate column is always present and never consumed.
func Layout(cfg folds.Config) []ColumnRole {
	var roles []ColumnRole
	if cfg.Classification {
		roles = append(roles, ColTestAUC, ColTrainAUC, ColTrainLoss)
	}
	roles = append(roles, ColLearningRate)
	if cfg.Affinity {
		roles = append(roles, ColTestRMSD, ColTrainRMSD)
	}
	if cfg.SecondSource {
		if cfg.Classification {
			roles = append(roles, ColTest2AUC, ColTrain2AUC, ColTrain2Loss)
		}
		if cfg.Affinity {
			roles = append(roles, ColTest2RMSD, ColTrain2RMSD)
		}
	}
	return roles
}

// SliceColumns zips raw out-file columns against the role layout by
// position.
func SliceColumns(columns [][]float64, roles []ColumnRole) (map[ColumnRole][]float64, error) {
	if len(columns) != len(roles) {
		return nil, fmt.Errorf("expected %d columns for layout %v, got %d", len(roles), roles, len(columns))
	}
	byRole := make(map[ColumnRole][]float64, len(roles))
	for i, role := range roles {
		byRole[role] = columns[i]
	}
	return byRole, nil
}

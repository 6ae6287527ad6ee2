package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/result-harvester/internal/config"
	"github.com/daryltucker/result-harvester/internal/output"
	"github.com/daryltucker/result-harvester/internal/testutil"
)

func TestProcess_SingleDataset(t *testing.T) {
	base := t.TempDir()
	header := testutil.MetricsHeader
	row := []string{"5", "100", "0.8123", "0.9", "0.95", "0.97", "0.88", "0.9", "0.91", "31000000", "4500000000"}
	testutil.CreateDataset(t, base, "run1", "modelA", "ds-1", testutil.MetricsCSV(header, row))

	log, err := Process(config.DefaultConfig(), base, []string{"run1"})
	require.NoError(t, err)
	assert.Contains(t, log, "Processing run1 (run number 1)")
	assert.Contains(t, log, "Successfully processed 1 run folders")

	records, err := output.ReadReport(filepath.Join(base, output.ReportFileName))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "modelA", records[0].Model)
	assert.Equal(t, "ds-1", records[0].Dataset)
	assert.InDelta(t, 81.23, records[0].Miou, 0.01)
	assert.InDelta(t, 31.0, records[0].ParametersM, 1e-9)
	assert.InDelta(t, 4.5, records[0].FlopsG, 1e-9)

	assert.FileExists(t, filepath.Join(base, "run1", FinalResultDir, output.ReportFileName))
}

func TestProcess_EmptyModelWritesNothing(t *testing.T) {
	base := t.TempDir()
	testutil.CreateDummyDir(t, filepath.Join(base, "run1", ResultsDir, "modelA"))

	log, err := Process(config.DefaultConfig(), base, []string{"run1"})
	require.NoError(t, err)
	assert.Contains(t, log, "No records were produced")
	assert.NoFileExists(t, filepath.Join(base, output.ReportFileName))
	assert.DirExists(t, filepath.Join(base, "run1", FinalResultDir))
}

func TestProcess_MissingColumnSkipsOnlyThatDataset(t *testing.T) {
	base := t.TempDir()
	testutil.CreateDataset(t, base, "run1", "modelA", "ds-1", validMetrics("0.5"))
	testutil.CreateDataset(t, base, "run1", "modelA", "ds-2", "epoch,test/MeanIoU\n1,0.5\n")
	testutil.CreateDataset(t, base, "run1", "modelA", "ds-3", validMetrics("0.7"))

	log, err := Process(config.DefaultConfig(), base, []string{"run1"})
	require.NoError(t, err)
	assert.Contains(t, log, "skipped modelA/ds-2")
	assert.Contains(t, log, "Processed run1: 2 records, 1 skipped")

	records, err := output.ReadReport(filepath.Join(base, output.ReportFileName))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ds-1", records[0].Dataset)
	assert.Equal(t, "ds-3", records[1].Dataset)
}

func TestProcess_AccumulatesAcrossRunsInGivenOrder(t *testing.T) {
	base := t.TempDir()
	testutil.CreateDataset(t, base, "run1", "m", "ds-1", validMetrics("0.1"))
	testutil.CreateDataset(t, base, "run2", "m", "ds-1", validMetrics("0.2"))
	testutil.CreateDummyDir(t, filepath.Join(base, "run3"))

	cfg := config.DefaultConfig()
	cfg.PerRunReport = false
	cfg.JSONReport = true
	log, err := Process(cfg, base, []string{"run2", "run3", "run1"})
	require.NoError(t, err)
	assert.Contains(t, log, "skipping run3")
	assert.Contains(t, log, "Successfully processed 2 run folders")

	records, err := output.ReadReport(filepath.Join(base, output.ReportFileName))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 20.0, records[0].Miou, 1e-9)
	assert.InDelta(t, 10.0, records[1].Miou, 1e-9)

	assert.NoFileExists(t, filepath.Join(base, "run1", FinalResultDir, output.ReportFileName))
	assert.FileExists(t, filepath.Join(base, output.JSONReportFileName))
}

func TestProcess_FinalResultBlockedIsRecoverable(t *testing.T) {
	base := t.TempDir()
	testutil.CreateDataset(t, base, "run1", "m", "ds-1", validMetrics("0.1"))
	testutil.CreateDataset(t, base, "run2", "m", "ds-1", validMetrics("0.2"))
	// A file where the final-result directory should go.
	testutil.CreateDummyFile(t, filepath.Join(base, "run1", FinalResultDir), "")

	log, err := Process(config.DefaultConfig(), base, []string{"run1", "run2"})
	require.NoError(t, err)
	assert.Contains(t, log, "Failed to create final-result directory for run1")

	records, err := output.ReadReport(filepath.Join(base, output.ReportFileName))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 20.0, records[0].Miou, 1e-9)
}

func TestProcess_MissingBase(t *testing.T) {
	_, err := Process(config.DefaultConfig(), filepath.Join(t.TempDir(), "missing"), []string{"run1"})
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestProcess_NoSelection(t *testing.T) {
	log, err := Process(config.DefaultConfig(), t.TempDir(), nil)
	require.NoError(t, err)
	assert.Contains(t, log, "No records were produced")
}

func TestProcess_WalkErrorContinues(t *testing.T) {
	base := t.TempDir()
	testutil.CreateDataset(t, base, "run1", "m", "ds-1", validMetrics("0.1"))
	testutil.CreateDataset(t, base, "run2", "m", "ds-1", validMetrics("0.2"))

	brokenModel := filepath.Join(base, "run1", ResultsDir, "m")
	prev := dirLister
	t.Cleanup(func() { dirLister = prev })
	dirLister = func(path string) ([]string, error) {
		if path == brokenModel {
			return nil, fmt.Errorf("%w: %s: permission denied", ErrReadDir, path)
		}
		return prev(path)
	}

	log, err := Process(config.DefaultConfig(), base, []string{"run1", "run2"})
	require.NoError(t, err)
	assert.Contains(t, log, "Error processing run1")
	assert.Contains(t, log, "Processed run2: 1 records, 0 skipped")
	assert.Contains(t, log, "Successfully processed 1 run folders")

	records, err := output.ReadReport(filepath.Join(base, output.ReportFileName))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 20.0, records[0].Miou, 1e-9)
}

func TestProcess_UnreadableModelDirContinues(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	base := t.TempDir()
	testutil.CreateDataset(t, base, "run1", "m", "ds-1", validMetrics("0.1"))
	testutil.CreateDataset(t, base, "run2", "m", "ds-1", validMetrics("0.2"))

	modelDir := filepath.Join(base, "run1", ResultsDir, "m")
	require.NoError(t, os.Chmod(modelDir, 0000))
	t.Cleanup(func() { os.Chmod(modelDir, 0755) })

	log, err := Process(config.DefaultConfig(), base, []string{"run1", "run2"})
	require.NoError(t, err)
	assert.Contains(t, log, "Error processing run1")

	records, err := output.ReadReport(filepath.Join(base, output.ReportFileName))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ds-1", records[0].Dataset)
}

func TestProcess_RejectsNonRunNames(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "base")
	testutil.CreateDataset(t, root, "escape", "m", "ds-1", validMetrics("0.3"))
	testutil.CreateDataset(t, base, "run1", "m", "ds-1", validMetrics("0.1"))

	log, err := Process(config.DefaultConfig(), base, []string{"../escape", "notes", "run1"})
	require.NoError(t, err)
	assert.Contains(t, log, `"../escape" is not a run folder name, skipping`)
	assert.Contains(t, log, `"notes" is not a run folder name, skipping`)
	assert.False(t, strings.Contains(log, "Processing ../escape"))
	assert.NoDirExists(t, filepath.Join(root, "escape", FinalResultDir))

	records, err := output.ReadReport(filepath.Join(base, output.ReportFileName))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 10.0, records[0].Miou, 1e-9)
}

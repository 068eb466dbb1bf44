package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danmuck/pdbfold/internal/pdb"
	"github.com/danmuck/pdbfold/internal/pdb/token"
	"github.com/danmuck/pdbfold/internal/testutil/testlog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const good = "HEADER    OXYGEN TRANSPORT\n" +
	"COMPND    MOL_ID:  1;\n" +
	"COMPND   2 MOLECULE:  HEMOGLOBIN ALPHA CHAIN;\n" +
	"REVDAT   1   15-JAN-99 1ABC    0\n"

const bad = "COMPND    MOL_ID:  1; HETNAM: X;\n"

func writeFiles(t *testing.T, bodies ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(bodies))
	for i, body := range bodies {
		p := filepath.Join(dir, string(rune('a'+i))+".pdb")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		paths = append(paths, p)
	}
	return paths
}

func newRunner(t *testing.T, workers int, failFast bool) *Runner {
	t.Helper()
	reg, err := pdb.DefaultRegistry()
	require.NoError(t, err)
	r, err := NewRunner(Options{Workers: workers, FailFast: failFast, Registry: reg})
	require.NoError(t, err)
	return r
}

func TestRunParsesInInputOrder(t *testing.T) {
	testlog.Start(t)
	paths := writeFiles(t, good, bad, good, good)
	sum, err := newRunner(t, 2, false).Run(context.Background(), paths)
	require.NoError(t, err)
	require.NotEmpty(t, sum.RunID)
	require.Len(t, sum.Results, 4)
	require.Equal(t, 1, sum.Failed)

	for i, res := range sum.Results {
		require.Equal(t, paths[i], res.Path)
	}
	require.ErrorIs(t, sum.Results[1].Err, token.ErrUnknownToken)
	require.NotNil(t, sum.Results[0].File)
	require.Len(t, sum.Results[0].File.Compnd, 1)
	require.Equal(t, 2, sum.Results[0].File.Tokens())
}

func TestRunFailFastReturnsFirstError(t *testing.T) {
	testlog.Start(t)
	paths := writeFiles(t, bad, good, good)
	sum, err := newRunner(t, 1, true).Run(context.Background(), paths)
	require.ErrorIs(t, err, token.ErrUnknownToken)
	require.ErrorIs(t, sum.Results[2].Err, context.Canceled)
}

func TestRunHonoursCancellation(t *testing.T) {
	testlog.Start(t)
	paths := writeFiles(t, good, good)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := newRunner(t, 2, false).Run(ctx, paths)
	require.ErrorIs(t, err, context.Canceled)
	for _, res := range sum.Results {
		require.ErrorIs(t, res.Err, context.Canceled)
		require.Nil(t, res.File)
	}
	require.Equal(t, 2, sum.Failed)
}

func TestRunReportsReadErrors(t *testing.T) {
	testlog.Start(t)
	sum, err := newRunner(t, 1, false).Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.pdb")})
	require.NoError(t, err)
	require.True(t, errors.Is(sum.Results[0].Err, os.ErrNotExist))
}

func TestNewRunnerRequiresRegistry(t *testing.T) {
	_, err := NewRunner(Options{Workers: 1})
	require.ErrorIs(t, err, ErrNoRegistry)
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdash/backend/internal/artifact"
	"github.com/healthdash/backend/internal/config"
	"github.com/healthdash/backend/internal/domain"
)

// writeRawDir writes a complete records/demographics CSV pair. When
// corrupt is set one value falls outside [0,100].
func writeRawDir(t *testing.T, corrupt bool) string {
	t.Helper()
	dir := t.TempDir()

	var records strings.Builder
	records.WriteString("State,Abbr,Metric,Year,Percentage,Population\n")
	for year := domain.MinYear; year <= domain.MaxYear; year++ {
		for i, s := range domain.States {
			for j, m := range domain.Metrics {
				v := 5.0 + float64(i%8) + float64(j)*6 + float64(year-domain.MinYear)*0.1
				fmt.Fprintf(&records, "%s,%s,%s,%d,%.1f,%d\n", s.Name, s.Code, m, year, v, 600000+i*1000)
			}
		}
	}
	if corrupt {
		records.WriteString("Texas,TX,diabetes,2024,104.2,30503301\n")
	}

	demographics := "category,label,metric,value\n" +
		"income_level,\"Less than $15,000\",diabetes,14.2\n" +
		"income_level,\"$75,000 and above\",diabetes,8.1\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.csv"), []byte(records.String()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demographics.csv"), []byte(demographics), 0o644))
	return dir
}

func TestRunWritesArtifact(t *testing.T) {
	in := writeRawDir(t, false)
	out := filepath.Join(t.TempDir(), "state_health_data.json")

	var stderr bytes.Buffer
	require.Equal(t, exitOK, run(context.Background(), []string{"-in", in, "-out", out}, &stderr))

	ds, err := artifact.Read(out)
	require.NoError(t, err)
	assert.Len(t, ds.States, domain.StateCount)
	assert.Len(t, ds.Demographics[domain.CategoryIncome], 2)

	first, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, exitOK, run(context.Background(), []string{"-in", in, "-out", out}, &stderr))
	second, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunValidationFailureWritesNothing(t *testing.T) {
	in := writeRawDir(t, true)
	out := filepath.Join(t.TempDir(), "state_health_data.json")

	assert.Equal(t, exitValidation, run(context.Background(), []string{"-in", in, "-out", out}, &bytes.Buffer{}))
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRunExitCodes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-bogus"}, exitUsage},
		{"stray argument", []string{"-out", out, "extra"}, exitUsage},
		{"empty output", []string{"-out", ""}, exitUsage},
		{"missing input", []string{"-in", filepath.Join(t.TempDir(), "nope"), "-out", out}, exitSource},
		{"unreachable database", []string{"-in", "postgres://healthdash@127.0.0.1:1/brfss?connect_timeout=2", "-out", out}, exitSource},
		{"help", []string{"-h"}, exitOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, run(context.Background(), tc.args, &bytes.Buffer{}))
		})
	}
}

func TestOpenSourceChecksDatabaseHealth(t *testing.T) {
	cfg := &config.Config{Input: "postgres://healthdash@127.0.0.1:1/brfss?connect_timeout=2"}

	src, closeSource, err := openSource(context.Background(), cfg)
	defer closeSource()
	assert.Nil(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: health check failed")
}

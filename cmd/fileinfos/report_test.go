package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClicksEnStock/FileInfos/cfb/builder"
	"github.com/ClicksEnStock/FileInfos/internal/testutil"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

func TestReportCommand(t *testing.T) {
	summary := testutil.SummaryDocument(t)
	nested := testutil.NestedDocument(t)
	bare := testutil.WriteDocument(t, "bare.doc", func(b *builder.Builder) error {
		return b.AddStream(nil, "WordDocument", []byte("body"))
	})

	tests := []struct {
		name           string
		files          []string
		configure      func(*config)
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:           "single file",
			files:          []string{summary},
			wantContain:    []string{summary + " {F29F85E0-4FF9-1068-AB91-08002B27B3D9}\n", "  Title\"Report\"\n"},
			wantNotContain: []string{"==>"},
		},
		{
			name:  "nested storages",
			files: []string{nested},
			wantContain: []string{
				" (Summary)\n",
				"  Client\"ACME\"\n",
				nested + `\ObjectPool\_1 {F29F85E0-4FF9-1068-AB91-08002B27B3D9}`,
			},
		},
		{
			name:        "several files keep argument order",
			files:       []string{nested, summary},
			configure:   func(c *config) { c.Jobs = 2 },
			wantContain: []string{"==> " + nested + " <==", "==> " + summary + " <=="},
		},
		{
			name:      "options",
			files:     []string{nested},
			configure: func(c *config) { c.PathSeparator = "/"; c.NameFallback = true; c.ValueWidth = 4 },
			wantContain: []string{
				nested + "/ObjectPool/_1 ",
				"  2...\n",
				"  Pages12\n",
			},
		},
		{
			name:        "no property sets",
			files:       []string{bare},
			wantContain: []string{bare + ": no property sets\n"},
		},
		{
			name:        "missing file",
			files:       []string{summary, filepath.Join(t.TempDir(), "gone.doc")},
			wantErr:     true,
			wantContain: []string{"  Title\"Report\"\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConfig()
			if tt.configure != nil {
				tt.configure(&c)
			}
			useConfig(t, c)

			output, err := captureOutput(t, func() error {
				return runReport(context.Background(), tt.files)
			})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestPrintFileReport(t *testing.T) {
	useConfig(t, defaultConfig())

	tests := []struct {
		name string
		r    fileReport
		want bool
	}{
		{"empty", fileReport{}, true},
		{"text", fileReport{text: "doc {F29F85E0-4FF9-1068-AB91-08002B27B3D9}\n"}, false},
		{"failed before any set", fileReport{diags: []types.Diagnostic{
			types.NewDiagnostic("doc", "enumerate property sets", types.ErrCorrupt),
		}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := captureOutput(t, func() error {
				printFileReport("doc", tt.r)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.Contains(output, "no property sets"))
		})
	}
}

func TestReportCommandOrder(t *testing.T) {
	useConfig(t, defaultConfig())
	summary := testutil.SummaryDocument(t)
	nested := testutil.NestedDocument(t)

	output, err := captureOutput(t, func() error {
		return runReport(context.Background(), []string{nested, summary, nested})
	})
	require.NoError(t, err)

	first := strings.Index(output, "==> "+nested)
	second := strings.Index(output, "==> "+summary)
	third := strings.LastIndex(output, "==> "+nested)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestReportCommandInvalidConfig(t *testing.T) {
	c := defaultConfig()
	c.Jobs = 0
	useConfig(t, c)

	err := runReport(context.Background(), []string{testutil.SummaryDocument(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs")
}

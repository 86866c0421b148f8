package match

import (
	"fmt"
	"time"

	"github.com/kordata/xlmatch/internal/formats/xlsx"
)

// RunConfig is the full description of one match run, as assembled by the
// CLI layer. The core keeps no state of its own.
type RunConfig struct {
	SourcePath  string   `json:"source" yaml:"source"`
	SourceSheet string   `json:"sourceSheet,omitempty" yaml:"source_sheet,omitempty"`
	TargetPath  string   `json:"target" yaml:"target"`
	TargetSheet string   `json:"targetSheet,omitempty" yaml:"target_sheet,omitempty"`
	KeyColumns  []string `json:"keys" yaml:"keys"`
	ValueColumn string   `json:"value" yaml:"value"`
	Accumulate  bool     `json:"accumulate,omitempty" yaml:"accumulate,omitempty"`

	// TargetColumn names an existing column of the target sheet to
	// overwrite. When empty, a new column is appended using OutputHeader
	// (or the default 匹配_<value column> name).
	TargetColumn string `json:"targetColumn,omitempty" yaml:"target_column,omitempty"`
	OutputHeader string `json:"outputHeader,omitempty" yaml:"output_header,omitempty"`

	// OutputPath is where the rewritten target workbook is saved.
	// Empty means overwrite the target file in place.
	OutputPath string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Validate checks the config before any file is touched.
func (cfg *RunConfig) Validate() error {
	if cfg.SourcePath == "" {
		return fmt.Errorf("source workbook path is required")
	}
	if cfg.TargetPath == "" {
		return fmt.Errorf("target workbook path is required")
	}
	if len(cfg.KeyColumns) == 0 {
		return fmt.Errorf("at least one key column is required")
	}
	if cfg.ValueColumn == "" {
		return fmt.Errorf("value column is required")
	}
	return nil
}

// Result summarizes a completed run.
type Result struct {
	Keys       int           `json:"keys"`
	Matched    int           `json:"matched"`
	Total      int           `json:"total"`
	Column     string        `json:"column"`
	OutputPath string        `json:"output"`
	Duration   time.Duration `json:"-"`
	DurationMs int64         `json:"durationMs"`
}

// Run executes a full match: load and unmerge the source sheet, build the
// index, load and unmerge the target sheet, resolve every row's key, and
// write the resolved values into the target column. All resolution errors
// surface before anything is written; the target file is only rewritten
// after the whole match pass succeeds.
func Run(cfg RunConfig) (*Result, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source, spans, err := xlsx.ReadSheet(cfg.SourcePath, cfg.SourceSheet)
	if err != nil {
		return nil, err
	}
	source.Unmerge(spans)

	idx, err := BuildIndex(source, cfg.KeyColumns, cfg.ValueColumn, cfg.Accumulate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.SourcePath, err)
	}

	target, spans, err := xlsx.ReadSheet(cfg.TargetPath, cfg.TargetSheet)
	if err != nil {
		return nil, err
	}
	target.Unmerge(spans)

	values, stats, err := Match(target, cfg.KeyColumns, idx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.TargetPath, err)
	}

	update := xlsx.ColumnUpdate{Sheet: cfg.TargetSheet, Values: values}
	if cfg.TargetColumn != "" {
		col, err := target.HeaderOf().Resolve(cfg.TargetColumn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.TargetPath, err)
		}
		update.Col = col
		update.Header = ""
	} else {
		update.Col = target.NumCols()
		update.Header = cfg.OutputHeader
		if update.Header == "" {
			update.Header = fmt.Sprintf("匹配_%s", cfg.ValueColumn)
		}
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = cfg.TargetPath
	}
	if err := xlsx.WriteColumn(cfg.TargetPath, update, outputPath); err != nil {
		return nil, err
	}

	column := cfg.TargetColumn
	if column == "" {
		column = update.Header
	}

	return &Result{
		Keys:       idx.Len(),
		Matched:    stats.Matched,
		Total:      stats.Total,
		Column:     column,
		OutputPath: outputPath,
		Duration:   time.Since(start),
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

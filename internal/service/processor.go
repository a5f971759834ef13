package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"example/screenshot-batch/internal/logging"
	"example/screenshot-batch/internal/model"
)

// writeFile is swappable so tests can fail one artifact write in isolation.
var writeFile = os.WriteFile

// ItemProcessor handles one work item end to end: analyze, then persist both
// artifacts. Every failure is converted into a Failure outcome; Process never
// returns an error and never aborts sibling items.
type ItemProcessor struct {
	analyzer  Analyzer
	outputDir string
	logger    *logging.Logger
	seq       atomic.Int64
}

func NewItemProcessor(analyzer Analyzer, outputDir string, logger *logging.Logger) *ItemProcessor {
	return &ItemProcessor{
		analyzer:  analyzer,
		outputDir: outputDir,
		logger:    logger,
	}
}

func (p *ItemProcessor) Process(ctx context.Context, item model.WorkItem) model.Outcome {
	p.logger.Logf("Processing image: %s (MIME type: %s)", item.Path(), MIMETypeOf(item.Path()))

	analysis, err := p.analyzer.Analyze(ctx, item.Path())
	if err != nil {
		return p.fail(item, err)
	}

	textPath, responsePath := p.artifactPaths(item)
	if err := writeFile(responsePath, analysis.RawJSON, 0644); err != nil {
		return p.fail(item, &model.ItemError{Kind: model.FailureSink, Err: err})
	}
	if err := writeFile(textPath, []byte(analysis.Text), 0644); err != nil {
		// A Failure outcome must not leave half of the artifact pair behind.
		_ = os.Remove(responsePath)
		return p.fail(item, &model.ItemError{Kind: model.FailureSink, Err: err})
	}

	p.logger.Logf("Response saved to: %s", textPath)
	return model.Outcome{Item: item, ResponsePath: responsePath, TextPath: textPath}
}

func (p *ItemProcessor) fail(item model.WorkItem, err error) model.Outcome {
	kind := model.KindOf(err)
	p.logger.Logf("Error processing %s [%s]: %v", item.Path(), kind, err)
	return model.Outcome{Item: item, Kind: kind, Err: err}
}

// artifactPaths names the two artifacts for one attempt. The unix timestamp
// keeps names readable across runs; the sequence number makes two completions
// within the same second name distinct files.
func (p *ItemProcessor) artifactPaths(item model.WorkItem) (textPath, responsePath string) {
	name := fmt.Sprintf("%s_%d_%d.txt", item.Base(), time.Now().Unix(), p.seq.Add(1))
	textPath = filepath.Join(p.outputDir, name)
	responsePath = textPath + "_response.json"
	return textPath, responsePath
}

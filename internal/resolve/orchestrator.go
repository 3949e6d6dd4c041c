package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrisgosselin92/docgenautomation/internal/docx"
	"github.com/chrisgosselin92/docgenautomation/internal/logging"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// Pair is one (client, template) generation unit in a batch.
type Pair struct {
	Client   types.Client
	Template string
}

// Orchestrator runs a batch of pairs strictly sequentially. A cancelled
// or failed pair never stops the batch; the summary reports every pair.
type Orchestrator struct {
	resolver *Resolver
	outDir   string
	log      *zap.SugaredLogger
}

// NewOrchestrator wires a batch runner writing output under outDir.
func NewOrchestrator(res *Resolver, outDir string) *Orchestrator {
	return &Orchestrator{
		resolver: res,
		outDir:   outDir,
		log:      logging.Get(logging.CategoryResolve),
	}
}

// Run generates every pair and returns the batch summary.
func (o *Orchestrator) Run(pairs []Pair) types.BatchSummary {
	summary := types.BatchSummary{RunID: uuid.NewString()}
	o.log.Infow("batch started", "run_id", summary.RunID, "pairs", len(pairs))

	for _, pair := range pairs {
		start := time.Now()
		result := o.generate(pair)
		result.Elapsed = time.Since(start)
		summary.Results = append(summary.Results, result)

		o.log.Infow("pair finished",
			"run_id", summary.RunID,
			"client_id", result.ClientID,
			"template", result.Template,
			"status", result.Status.String(),
			"error", result.Err)
	}

	s, f, c := summary.Counts()
	o.log.Infow("batch finished", "run_id", summary.RunID,
		"succeeded", s, "failed", f, "cancelled", c)
	return summary
}

// generate resolves one pair. The output file is written only after all
// six passes succeed, so a cancel leaves nothing on disk.
func (o *Orchestrator) generate(pair Pair) types.PairResult {
	result := types.PairResult{ClientID: pair.Client.ID, Template: pair.Template}

	doc, err := docx.Open(pair.Template)
	if err != nil {
		result.Status = types.PairFailed
		result.Err = err
		return result
	}

	if err := o.resolver.ResolveDocument(doc, pair.Client); err != nil {
		if errors.Is(err, types.ErrCancelled) {
			result.Status = types.PairCancelled
		} else {
			result.Status = types.PairFailed
		}
		result.Err = err
		return result
	}

	out := o.outputPath(pair)
	if err := doc.SaveAs(out); err != nil {
		result.Status = types.PairFailed
		result.Err = err
		return result
	}
	result.Status = types.PairSucceeded
	result.OutputPath = out
	return result
}

func (o *Orchestrator) outputPath(pair Pair) string {
	prefix := pair.Client.MatterID
	if prefix == "" {
		prefix = fmt.Sprintf("client%d", pair.Client.ID)
	}
	return filepath.Join(o.outDir, prefix+"_"+filepath.Base(pair.Template))
}

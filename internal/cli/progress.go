package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pagebind/pagebind/pkg/observability"
)

// spinnerProgress feeds pipeline stage transitions into a running
// spinner, so a long conversion shows which image is being probed and
// how many pages are rendering instead of an anonymous spinner.
type spinnerProgress struct {
	observability.NoopPipelineHooks
	spinner *Spinner
	probed  atomic.Int64
}

func newSpinnerProgress(s *Spinner) *spinnerProgress {
	return &spinnerProgress{spinner: s}
}

func (p *spinnerProgress) OnProbeStart(_ context.Context, path string) {
	n := p.probed.Add(1)
	p.spinner.SetMessage(fmt.Sprintf("Probing %s (%d)...", filepath.Base(path), n))
}

func (p *spinnerProgress) OnLayoutStart(_ context.Context, imageCount int) {
	p.spinner.SetMessage(fmt.Sprintf("Planning %d pages...", imageCount))
}

func (p *spinnerProgress) OnRenderStart(_ context.Context, backend string, pageCount int) {
	p.spinner.SetMessage(fmt.Sprintf("Rendering %d pages (%s)...", pageCount, backend))
}

func (p *spinnerProgress) OnRenderComplete(_ context.Context, _ string, pageCount int, _ time.Duration, err error) {
	if err == nil {
		p.spinner.SetMessage(fmt.Sprintf("Writing %d pages...", pageCount))
	}
}

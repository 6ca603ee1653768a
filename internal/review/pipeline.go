package review

import (
	"context"

	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/ports"
)

// State names one step of the review pipeline.
type State string

const (
	StateFetch   State = "FETCH"
	StateFilter  State = "FILTER"
	StateAnalyze State = "ANALYZE"
	StateFormat  State = "FORMAT"
	StatePublish State = "PUBLISH"
	StateError   State = "ERROR"
	StateEnd     State = "END"
)

// nextState is the linear backbone of the machine. ERROR is absorbing and
// reachable from every working state; PUBLISH and ERROR always end the run.
var nextState = map[State]State{
	StateFetch:   StateFilter,
	StateFilter:  StateAnalyze,
	StateAnalyze: StateFormat,
	StateFormat:  StatePublish,
	StatePublish: StateEnd,
	StateError:   StateEnd,
}

// RunState is the single mutable record of one review run. It is created
// empty at invocation, populated monotonically stage by stage, and discarded
// once the final Result is built. Once Done is true or ErrMsg is set no
// stage mutates it again.
type RunState struct {
	Ref      models.PullRequestRef
	PR       models.PRData
	Files    []models.ChangedFile
	Filtered []models.ChangedFile
	Review   *models.StructuredReview
	Report   string
	ErrMsg   string
	Done     bool
}

// Pipeline sequences the review stages around the two I/O collaborators.
// The collaborators are stateless and shared; every run owns its own
// RunState, so concurrent ReviewPullRequest calls are independent.
type Pipeline struct {
	source   ports.PRSource
	provider ports.CompletionProvider
	cfg      *config.Config
}

func NewPipeline(source ports.PRSource, provider ports.CompletionProvider, cfg *config.Config) *Pipeline {
	return &Pipeline{
		source:   source,
		provider: provider,
		cfg:      cfg,
	}
}

// ReviewPullRequest runs the whole pipeline for one pull request. It never
// returns an unhandled failure: every outcome, including collaborator
// errors, lands in the Result record.
func (p *Pipeline) ReviewPullRequest(ctx context.Context, ref models.PullRequestRef) models.Result {
	ctx = logger.With(ctx,
		"owner", ref.Owner,
		"repo", ref.Repo,
		"pr_number", ref.Number)
	log := logger.FromContext(ctx)
	run := &RunState{Ref: ref}

	state := StateFetch
	for state != StateEnd {
		log.Debug("pipeline state", "state", string(state))

		var err error
		switch state {
		case StateFetch:
			err = p.fetch(ctx, run)
		case StateFilter:
			err = p.filter(ctx, run)
		case StateAnalyze:
			err = p.analyze(ctx, run)
		case StateFormat:
			err = p.format(run)
		case StatePublish:
			err = p.publish(ctx, run)
		case StateError:
			run.Done = true
		}

		state = transition(state, run, err)
	}

	return buildResult(run)
}

// transition applies the machine's single rule: error wins, then the done
// short-circuit, then the linear backbone.
func transition(state State, run *RunState, err error) State {
	if state == StateError {
		return StateEnd
	}
	if err != nil {
		if run.ErrMsg == "" {
			run.ErrMsg = err.Error()
		}
		return StateError
	}
	if run.Done {
		return StateEnd
	}
	return nextState[state]
}

func (p *Pipeline) fetch(ctx context.Context, run *RunState) error {
	pr, err := p.source.GetPullRequest(ctx, run.Ref)
	if err != nil {
		return err
	}
	files, err := p.source.ListChangedFiles(ctx, run.Ref)
	if err != nil {
		return err
	}

	run.PR = pr
	run.Files = files
	return nil
}

func (p *Pipeline) filter(ctx context.Context, run *RunState) error {
	log := logger.FromContext(ctx)

	filtered := FilterFiles(run.Files, p.cfg.IncludePatterns, p.cfg.ExcludePatterns)
	if len(filtered) == 0 {
		log.Info("no relevant files to review, ending run",
			"files_count", len(run.Files))
		run.Done = true
		return nil
	}

	log.Info("files selected for review", "files_count", len(filtered))

	run.Filtered = filtered
	return nil
}

func (p *Pipeline) analyze(ctx context.Context, run *RunState) error {
	log := logger.FromContext(ctx)

	if len(run.Filtered) == 0 {
		return domainErrors.ErrMissingRunState.WithContext("state", "ANALYZE")
	}

	var stack models.StackTag
	var role string
	if p.cfg.ForcedStack != "" {
		stack = models.StackTag(p.cfg.ForcedStack)
		role = RoleForStack(stack)
	} else {
		stack, role = DetectStack(run.Filtered)
	}

	log.Info("analyzing pull request",
		"stack", string(stack),
		"provider", p.provider.Name())

	prompt := BuildPrompt(run.PR, run.Filtered, role)

	raw, err := p.provider.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	review := ParseReview(ctx, raw)
	run.Review = &review
	return nil
}

func (p *Pipeline) format(run *RunState) error {
	if run.Review == nil {
		return domainErrors.ErrMissingRunState.WithContext("state", "FORMAT")
	}
	run.Report = FormatReport(*run.Review)
	return nil
}

func (p *Pipeline) publish(ctx context.Context, run *RunState) error {
	log := logger.FromContext(ctx)

	if run.Report == "" {
		return domainErrors.ErrMissingRunState.WithContext("state", "PUBLISH")
	}

	if p.cfg.PostComment {
		if err := p.source.CreateReviewComment(ctx, run.Ref, run.Report); err != nil {
			return err
		}
	} else {
		log.Debug("post-comment disabled, skipping publish")
	}

	run.Done = true
	return nil
}

// buildResult projects the terminal RunState into the public result record.
func buildResult(run *RunState) models.Result {
	if run.ErrMsg != "" {
		return models.Result{
			Success: false,
			Error:   run.ErrMsg,
		}
	}

	result := models.Result{Success: true}
	if run.Review != nil {
		result.Recommendation = run.Review.Recommendation
		result.Score = run.Review.OverallScore
		result.IssuesCount = len(run.Review.Findings)
		result.Summary = run.Review.Summary
		result.Report = run.Report
	}
	return result
}

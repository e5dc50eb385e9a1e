package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

const (
	// GenericError is the only message a user sees when a component fails.
	GenericError = "Hubo un error al procesar tu solicitud, vuelve a intentarlo."

	missingCityTemplate   = "¿A qué ciudad te refieres en \"%s\"?"
	lowConfidenceTemplate = "No entiendo la pregunta \"%s\"."
	lineSeparator         = "\n\n"
)

// QueryPipeline turns a free-text question into the joined answer. Sentences
// are handled in order; routing and city resolution of one sentence run
// concurrently.
type QueryPipeline struct {
	normalizer  models.SentenceNormalizer
	router      models.IntentRouter
	resolver    models.CityResolver
	synthesizer models.ResponseSynthesizer
}

func NewQueryPipeline(
	normalizer models.SentenceNormalizer,
	router models.IntentRouter,
	resolver models.CityResolver,
	synthesizer models.ResponseSynthesizer,
) *QueryPipeline {
	return &QueryPipeline{
		normalizer:  normalizer,
		router:      router,
		resolver:    resolver,
		synthesizer: synthesizer,
	}
}

// Process returns only the text of Run.
func (p *QueryPipeline) Process(ctx context.Context, text string) string {
	return p.Run(ctx, text).Response
}

// Run never returns an error. Any component failure is logged and replaced by
// GenericError.
func (p *QueryPipeline) Run(ctx context.Context, text string) *models.QueryResult {
	result, err := p.run(ctx, text)
	if err != nil {
		log.Printf("Query processing failed: %v", err)
		return &models.QueryResult{Response: GenericError, Failed: true}
	}
	return result
}

func (p *QueryPipeline) run(ctx context.Context, text string) (*models.QueryResult, error) {
	sentences, err := p.normalizer.Normalize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("normalization: %w", err)
	}

	result := &models.QueryResult{}
	lines := newOrderedSet()
	seen := make(map[models.QueryOutcome]struct{})

	for _, sentence := range sentences {
		result.Sentences = append(result.Sentences, sentence.Text)

		decision, cities, err := p.analyze(ctx, sentence.Text)
		if err != nil {
			return nil, fmt.Errorf("sentence %q: %w", sentence.Text, err)
		}

		if len(cities) == 0 {
			lines.add(fmt.Sprintf(missingCityTemplate, sentence.Text))
			continue
		}
		if !decision.Accepted {
			lines.add(fmt.Sprintf(lowConfidenceTemplate, sentence.Text))
			continue
		}

		for _, city := range cities {
			outcome := models.QueryOutcome{City: city, Intent: decision.Intent}
			if _, dup := seen[outcome]; dup {
				continue
			}
			seen[outcome] = struct{}{}
			result.Outcomes = append(result.Outcomes, outcome)
			lines.add(p.synthesizer.Synthesize(ctx, city, decision.Intent))
		}
	}

	result.Response = strings.Join(lines.items, lineSeparator)
	return result, nil
}

// analyze routes and resolves one sentence in parallel.
func (p *QueryPipeline) analyze(ctx context.Context, sentence string) (*models.RoutingDecision, []models.CityMatch, error) {
	var (
		decision *models.RoutingDecision
		cities   []models.CityMatch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := p.router.Route(gctx, sentence)
		if err != nil {
			return fmt.Errorf("routing: %w", err)
		}
		decision = d
		return nil
	})
	g.Go(func() error {
		c, err := p.resolver.Resolve(gctx, sentence)
		if err != nil {
			return fmt.Errorf("city resolution: %w", err)
		}
		cities = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if decision == nil {
		return nil, nil, fmt.Errorf("routing: no decision")
	}
	return decision, cities, nil
}

// orderedSet keeps the first occurrence of each line.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(line string) {
	if _, ok := s.index[line]; ok {
		return
	}
	s.index[line] = struct{}{}
	s.items = append(s.items, line)
}

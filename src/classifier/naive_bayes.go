package classifier

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// ModelFile is the on-disk form of a fitted multinomial naive Bayes model.
type ModelFile struct {
	Classes        []string    `yaml:"classes"`
	Vocabulary     []string    `yaml:"vocabulary"`
	ClassLogPrior  []float64   `yaml:"class_log_prior"`
	FeatureLogProb [][]float64 `yaml:"feature_log_prob"`
	Keywords       []string    `yaml:"keywords,omitempty"`
}

// NaiveBayes implements models.Classifier over a pre-fit model.
type NaiveBayes struct {
	classes        []models.IntentKind
	classLogPrior  []float64
	featureLogProb [][]float64
	vocabulary     []string
	keywords       map[string]struct{}
}

// LoadModel reads a model file and returns the classifier with its vectorizer.
func LoadModel(path string) (*NaiveBayes, *CountVectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read model: %w", err)
	}

	var file ModelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse model %s: %w", path, err)
	}

	nb, err := NewNaiveBayes(&file)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid model %s: %w", path, err)
	}
	return nb, NewCountVectorizer(file.Vocabulary), nil
}

func NewNaiveBayes(file *ModelFile) (*NaiveBayes, error) {
	if len(file.Classes) == 0 {
		return nil, fmt.Errorf("model has no classes")
	}
	if len(file.ClassLogPrior) != len(file.Classes) || len(file.FeatureLogProb) != len(file.Classes) {
		return nil, fmt.Errorf("model has %d classes but %d priors and %d likelihood rows",
			len(file.Classes), len(file.ClassLogPrior), len(file.FeatureLogProb))
	}

	nb := &NaiveBayes{
		classes:        make([]models.IntentKind, len(file.Classes)),
		classLogPrior:  file.ClassLogPrior,
		featureLogProb: file.FeatureLogProb,
		vocabulary:     file.Vocabulary,
		keywords:       make(map[string]struct{}, len(file.Keywords)),
	}

	seen := make(map[models.IntentKind]bool)
	for i, label := range file.Classes {
		kind, ok := models.ParseIntentKind(label)
		if !ok {
			return nil, fmt.Errorf("unknown class label %q", label)
		}
		if seen[kind] {
			return nil, fmt.Errorf("duplicate class label %q", label)
		}
		seen[kind] = true
		nb.classes[i] = kind

		if len(file.FeatureLogProb[i]) != len(file.Vocabulary) {
			return nil, fmt.Errorf("class %q has %d likelihoods for a vocabulary of %d",
				label, len(file.FeatureLogProb[i]), len(file.Vocabulary))
		}
	}

	for _, kw := range file.Keywords {
		nb.keywords[kw] = struct{}{}
	}
	return nb, nil
}

// PredictProbabilities returns the posterior of every class, normalised with
// a log-sum-exp so the values add up to 1.
func (nb *NaiveBayes) PredictProbabilities(ctx context.Context, features []float64) (map[models.IntentKind]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(features) != len(nb.vocabulary) {
		return nil, fmt.Errorf("expected %d features, got %d", len(nb.vocabulary), len(features))
	}

	joint := make([]float64, len(nb.classes))
	maxLog := math.Inf(-1)
	for c := range nb.classes {
		score := nb.classLogPrior[c]
		for i, count := range features {
			if count != 0 {
				score += count * nb.featureLogProb[c][i]
			}
		}
		joint[c] = score
		maxLog = math.Max(maxLog, score)
	}

	var total float64
	for c := range joint {
		joint[c] = math.Exp(joint[c] - maxLog)
		total += joint[c]
	}

	probs := make(map[models.IntentKind]float64, len(nb.classes))
	for c, kind := range nb.classes {
		probs[kind] = joint[c] / total
	}
	return probs, nil
}

// Keywords are the intent keywords the model was trained with.
func (nb *NaiveBayes) Keywords() map[string]struct{} {
	return nb.keywords
}

func (nb *NaiveBayes) Classes() []models.IntentKind {
	return nb.classes
}

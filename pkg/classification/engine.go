/*
Copyright 2025 Intake Engine Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package classification is the engine's public surface: per-task ensemble
// classification combining a learned feed-forward model with a rule-based
// keyword heuristic behind a confidence gate.
package classification

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/helpdeskai/intake-engine/pkg/config"
	"github.com/helpdeskai/intake-engine/pkg/corpus"
	"github.com/helpdeskai/intake-engine/pkg/lexicon"
	"github.com/helpdeskai/intake-engine/pkg/modelstore"
	"github.com/helpdeskai/intake-engine/pkg/neural"
	"github.com/helpdeskai/intake-engine/pkg/observability"
	"github.com/helpdeskai/intake-engine/pkg/observability/metrics"
	"github.com/helpdeskai/intake-engine/pkg/textproc"
)

// Engine owns every classification asset for the process lifetime: lexicons,
// vocabularies, the five trained models, the taxonomy mapping, and the model
// store. Construct one Engine and share it; after initialization all state is
// read-only and safe for concurrent classification calls.
type Engine struct {
	cfg      *config.EngineConfig
	lex      *lexicon.Set
	store    *modelstore.Store
	taxonomy *TaxonomyMapping

	// initOnce guards the train-or-load pass so concurrent first calls
	// cannot trigger redundant training.
	initOnce sync.Once
	initErr  error

	globalVocab    *textproc.Vocabulary
	categoryVocab  *textproc.Vocabulary
	urgencyVocab   *textproc.Vocabulary
	sentimentVocab *textproc.Vocabulary

	models map[string]*neural.Network
}

// NewEngine creates an engine over the default French lexicon set. Models are
// trained or loaded lazily on the first classification call, or eagerly via
// Init.
func NewEngine(cfg *config.EngineConfig) *Engine {
	return NewEngineWithLexicons(cfg, lexicon.DefaultFrench())
}

// NewEngineWithLexicons creates an engine over a caller-supplied lexicon set.
// Intended for tests that need small, controlled vocabularies.
func NewEngineWithLexicons(cfg *config.EngineConfig, lex *lexicon.Set) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		cfg:      cfg,
		lex:      lex,
		store:    modelstore.New(cfg.ModelDir),
		taxonomy: DefaultTaxonomy(),
		models:   make(map[string]*neural.Network),
	}
}

// Init performs the train-or-load pass eagerly. It is idempotent; concurrent
// callers block until the single in-flight initialization completes.
func (e *Engine) Init() error {
	e.initOnce.Do(e.initialize)
	return e.initErr
}

// taskSpec binds one task to its lexicons and vocabulary scope.
type taskSpec struct {
	name     string
	lexicons []lexicon.Lexicon
	vocab    *textproc.Vocabulary
}

func (e *Engine) taskSpecs() []taskSpec {
	return []taskSpec{
		{TaskType, e.lex.Type, e.globalVocab},
		{TaskCategory, e.lex.Category, e.categoryVocab},
		{TaskUrgency, e.lex.Urgency, e.urgencyVocab},
		{TaskSentiment, e.lex.Sentiment, e.sentimentVocab},
		{TaskComplexity, e.lex.Complexity, e.globalVocab},
	}
}

func (e *Engine) initialize() {
	start := time.Now()

	// Vocabularies: one global set spanning every lexicon, narrower sets
	// per task. Built once; their sizes fix each model's input dimension.
	e.globalVocab = textproc.BuildVocabulary(
		e.lex.Type, e.lex.Category, e.lex.Urgency, e.lex.Sentiment, e.lex.Complexity)
	e.categoryVocab = textproc.BuildVocabulary(e.lex.Category)
	e.urgencyVocab = textproc.BuildVocabulary(e.lex.Urgency)
	e.sentimentVocab = textproc.BuildVocabulary(e.lex.Sentiment)

	specs := e.taskSpecs()

	// Only a structurally complete artifact set takes the load path; a
	// partial set retrains every task. Within a complete set, a load
	// failure (corrupt or stale artifact) retrains just the affected task.
	if e.store.HasAll(AllTasks) {
		observability.Infof("Persisted models found for all %d tasks, loading", len(specs))
		loadFailed := false
		for _, spec := range specs {
			model, err := e.store.Load(spec.name, spec.vocab.Size(), spec.vocab.Checksum())
			if err != nil {
				observability.Warnf("Failed to load model for task %q, will retrain: %v", spec.name, err)
				metrics.RecordModelLoad(spec.name, "retrained")
				loadFailed = true
				continue
			}
			metrics.RecordModelLoad(spec.name, "loaded")
			e.models[spec.name] = model
		}
		if !loadFailed {
			observability.Infof("Engine initialized from persisted models in %v", time.Since(start))
			return
		}
	}

	// Train whatever is missing from scratch on synthetic corpora
	for i, spec := range specs {
		if _, ok := e.models[spec.name]; ok {
			continue
		}
		model, err := e.trainTask(spec, int64(i))
		if err != nil {
			e.initErr = fmt.Errorf("failed to train model for task %q: %w", spec.name, err)
			return
		}
		e.models[spec.name] = model

		// Best-effort persistence: a save failure must not make the
		// freshly trained in-memory model unusable
		if err := e.store.Save(spec.name, model); err != nil {
			observability.Warnf("Failed to persist model for task %q: %v", spec.name, err)
		}
	}

	observability.Infof("Engine initialized (trained) in %v", time.Since(start))
}

func (e *Engine) trainTask(spec taskSpec, seedOffset int64) (*neural.Network, error) {
	start := time.Now()

	seed := e.cfg.Training.Seed
	if seed != 0 {
		seed += seedOffset
	}
	gen := corpus.NewGenerator(seed, e.lex.Filler)
	examples := gen.Generate(spec.lexicons, e.cfg.Training.ExamplesPerLabel, spec.vocab)

	samples := make([]neural.Sample, len(examples))
	for i, ex := range examples {
		samples[i] = neural.Sample{Features: ex.Features, Target: ex.Target}
	}

	model, err := neural.New(spec.vocab.Size(), hiddenLayersByTask[spec.name],
		lexicon.Labels(spec.lexicons), spec.vocab.Checksum())
	if err != nil {
		return nil, err
	}

	opts := neural.TrainOptions{
		Epochs:          e.cfg.Training.Epochs,
		BatchSize:       e.cfg.Training.BatchSize,
		LearningRate:    e.cfg.Training.LearningRate,
		Dropout:         e.cfg.Training.Dropout,
		ValidationSplit: e.cfg.Training.ValidationSplit,
		Seed:            seed,
	}
	if err := model.Train(samples, opts); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.RecordTraining(spec.name, elapsed)
	observability.Infof("Trained %q model: %d examples, %d features, %d labels in %v",
		spec.name, len(samples), spec.vocab.Size(), len(spec.lexicons), elapsed)
	return model, nil
}

// resolve runs the ensemble for one task: learned prediction when its
// confidence clears the task threshold, rule-based prediction otherwise.
// allowed, when non-nil, restricts learned candidates to a label subset.
// Panics during extraction or inference degrade to the rule result; this
// function never fails.
func (e *Engine) resolve(
	task, text string,
	vocab *textproc.Vocabulary,
	lexicons []lexicon.Lexicon,
	threshold float64,
	defaultLabel string,
	allowed func(string) bool,
) (label string, confidence float64, source string) {
	start := time.Now()
	rule := ClassifyKeywords(text, lexicons, defaultLabel)

	label, confidence, source = rule.Label, rule.Confidence, SourceRules
	if rule.Total == 0 {
		source = SourceDefault
	}
	defer func() {
		if r := recover(); r != nil {
			observability.Errorf("Recovered from %q inference panic: %v", task, r)
			label, confidence, source = defaultLabel, DefaultConfidence, SourceDefault
		}
		metrics.RecordClassification(task, source, time.Since(start))
	}()

	model, ok := e.models[task]
	if !ok {
		return label, confidence, source
	}

	features := textproc.Extract(text, vocab)
	if !textproc.HasSignal(features) {
		return label, confidence, source
	}

	best, prob, probs, err := model.Predict(features)
	if err != nil {
		observability.Warnf("Learned %q prediction failed, using rule result: %v", task, err)
		return label, confidence, source
	}

	labels := model.Labels()
	learnedLabel := labels[best]
	learnedConf := prob
	if allowed != nil && !allowed(learnedLabel) {
		learnedConf = 0
		for i, l := range labels {
			if allowed(l) && probs[i] > learnedConf {
				learnedLabel, learnedConf = l, probs[i]
			}
		}
	}

	if learnedConf >= threshold {
		observability.Debugf("%s: model label=%q conf=%.3f (rules said %q conf=%.3f)",
			task, learnedLabel, learnedConf, rule.Label, rule.Confidence)
		return learnedLabel, learnedConf, SourceModel
	}

	metrics.RecordFallback(task)
	observability.Debugf("%s: model conf %.3f below threshold %.2f, rules label=%q conf=%.3f",
		task, learnedConf, threshold, label, confidence)
	return label, confidence, source
}

// ClassifyType decides incident vs. request.
func (e *Engine) ClassifyType(text string) (TypeResult, error) {
	if err := e.Init(); err != nil {
		return TypeResult{}, err
	}
	label, conf, source := e.resolve(TaskType, text, e.globalVocab, e.lex.Type,
		e.cfg.Thresholds.Type, DefaultType, nil)
	return TypeResult{
		Type:       label,
		TypeID:     e.taxonomy.TypeID(label),
		Confidence: conf,
		Source:     source,
	}, nil
}

// ClassifyCategory decides the ticket category, restricted to labels whose
// prefix matches the already-decided request type.
func (e *Engine) ClassifyCategory(text, requestType string) (CategoryResult, error) {
	if err := e.Init(); err != nil {
		return CategoryResult{}, err
	}
	if requestType != lexicon.TypeIncident && requestType != lexicon.TypeRequest {
		requestType = DefaultType
	}

	prefix := requestType + "_"
	candidates := make([]lexicon.Lexicon, 0, len(e.lex.Category))
	for _, lx := range e.lex.Category {
		if strings.HasPrefix(lx.Label, prefix) {
			candidates = append(candidates, lx)
		}
	}

	label, conf, source := e.resolve(TaskCategory, text, e.categoryVocab, candidates,
		e.cfg.Thresholds.Category, DefaultCategory(requestType),
		func(l string) bool { return strings.HasPrefix(l, prefix) })
	return CategoryResult{
		Category:   label,
		CategoryID: e.taxonomy.CategoryID(label),
		Confidence: conf,
		Source:     source,
	}, nil
}

// ClassifyUrgency decides the urgency band 1 (most urgent) to 5 (least).
func (e *Engine) ClassifyUrgency(text string) (UrgencyResult, error) {
	if err := e.Init(); err != nil {
		return UrgencyResult{}, err
	}
	label, conf, source := e.resolve(TaskUrgency, text, e.urgencyVocab, e.lex.Urgency,
		e.cfg.Thresholds.Urgency, strconv.Itoa(DefaultUrgency), nil)

	urgency, err := strconv.Atoi(label)
	if err != nil || urgency < 1 || urgency > 5 {
		urgency, conf, source = DefaultUrgency, DefaultConfidence, SourceDefault
	}
	return UrgencyResult{Urgency: urgency, Confidence: conf, Source: source}, nil
}

// ClassifySentiment decides the message tone.
func (e *Engine) ClassifySentiment(text string) (SentimentResult, error) {
	if err := e.Init(); err != nil {
		return SentimentResult{}, err
	}
	label, conf, source := e.resolve(TaskSentiment, text, e.sentimentVocab, e.lex.Sentiment,
		e.cfg.Thresholds.Sentiment, DefaultSentiment, nil)
	return SentimentResult{Sentiment: label, Confidence: conf, Source: source}, nil
}

// ClassifyComplexity estimates problem complexity.
func (e *Engine) ClassifyComplexity(text string) (ComplexityResult, error) {
	if err := e.Init(); err != nil {
		return ComplexityResult{}, err
	}
	label, conf, source := e.resolve(TaskComplexity, text, e.globalVocab, e.lex.Complexity,
		e.cfg.Thresholds.Complexity, DefaultComplexity, nil)
	return ComplexityResult{Complexity: label, Confidence: conf, Source: source}, nil
}

// ClassifyIntake runs every task for one support request. The type decision
// feeds the category restriction.
func (e *Engine) ClassifyIntake(text string) (IntakeResult, error) {
	typeResult, err := e.ClassifyType(text)
	if err != nil {
		return IntakeResult{}, err
	}
	categoryResult, err := e.ClassifyCategory(text, typeResult.Type)
	if err != nil {
		return IntakeResult{}, err
	}
	urgencyResult, err := e.ClassifyUrgency(text)
	if err != nil {
		return IntakeResult{}, err
	}
	sentimentResult, err := e.ClassifySentiment(text)
	if err != nil {
		return IntakeResult{}, err
	}
	complexityResult, err := e.ClassifyComplexity(text)
	if err != nil {
		return IntakeResult{}, err
	}
	return IntakeResult{
		Type:       typeResult,
		Category:   categoryResult,
		Urgency:    urgencyResult,
		Sentiment:  sentimentResult,
		Complexity: complexityResult,
	}, nil
}

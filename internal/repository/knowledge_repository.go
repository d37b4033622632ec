package repository

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"admitiq/internal/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed corpus/qa.yaml
var embeddedCorpus []byte

var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

// ConfigurationError reports a corpus entry that breaks a knowledge base invariant.
// Index is the position of the record inside its category, or -1 when the
// problem is with the category or the document itself.
type ConfigurationError struct {
	Category string
	Index    int
	Field    string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Index < 0 {
		if e.Category == "" {
			return fmt.Sprintf("knowledge base configuration: %s", e.Reason)
		}
		return fmt.Sprintf("knowledge base configuration: category %q: %s", e.Category, e.Reason)
	}
	return fmt.Sprintf("knowledge base configuration: category %q record %d: %s %s",
		e.Category, e.Index, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidKnowledgeBase
}

type corpusDocument struct {
	Categories []corpusCategory `yaml:"categories"`
}

type corpusCategory struct {
	Name    string            `yaml:"name"`
	Records []models.QARecord `yaml:"records"`
}

// KnowledgeRepository holds the assistant corpus. It is built once and never
// mutated, so it is safe for concurrent readers without locking.
type KnowledgeRepository struct {
	records    []*models.QARecord
	categories []string
	logger     *zap.Logger
}

// NewKnowledgeRepository validates and copies records, keeping their order.
func NewKnowledgeRepository(records []models.QARecord, logger *zap.Logger) (*KnowledgeRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo := &KnowledgeRepository{
		records: make([]*models.QARecord, 0, len(records)),
		logger:  logger,
	}

	seen := make(map[string]bool)
	positions := make(map[string]int)
	for _, rec := range records {
		idx := positions[rec.Category]
		positions[rec.Category] = idx + 1

		if err := validateRecord(rec, idx); err != nil {
			return nil, err
		}

		copied := rec
		copied.Keywords = append([]string(nil), rec.Keywords...)
		copied.Roles = append([]models.Role(nil), rec.Roles...)
		repo.records = append(repo.records, &copied)

		if !seen[rec.Category] {
			seen[rec.Category] = true
			repo.categories = append(repo.categories, rec.Category)
		}
	}

	logger.Info("Knowledge base loaded",
		zap.Int("records", len(repo.records)),
		zap.Int("categories", len(repo.categories)),
	)

	return repo, nil
}

// LoadKnowledgeRepository builds the repository from the YAML corpus at path,
// or from the corpus compiled into the binary when path is empty.
func LoadKnowledgeRepository(path string, logger *zap.Logger) (*KnowledgeRepository, error) {
	data := embeddedCorpus
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigurationError{
				Index:  -1,
				Reason: fmt.Sprintf("read %s: %v", path, err),
			}
		}
		data = raw
	}

	records, err := ParseCorpus(data)
	if err != nil {
		return nil, err
	}

	return NewKnowledgeRepository(records, logger)
}

// ParseCorpus decodes a YAML corpus into a flat list of records tagged with
// their category name.
func ParseCorpus(data []byte) ([]models.QARecord, error) {
	var doc corpusDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigurationError{Index: -1, Reason: fmt.Sprintf("parse corpus: %v", err)}
	}
	if len(doc.Categories) == 0 {
		return nil, &ConfigurationError{Index: -1, Reason: "corpus defines no categories"}
	}

	var records []models.QARecord
	for _, cat := range doc.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, &ConfigurationError{Index: -1, Reason: "category without a name"}
		}
		if len(cat.Records) == 0 {
			return nil, &ConfigurationError{Category: name, Index: -1, Reason: "category has no records"}
		}
		for _, rec := range cat.Records {
			rec.Category = name
			records = append(records, rec)
		}
	}

	return records, nil
}

func validateRecord(rec models.QARecord, idx int) error {
	fail := func(field, reason string) error {
		return &ConfigurationError{Category: rec.Category, Index: idx, Field: field, Reason: reason}
	}

	if strings.TrimSpace(rec.Category) == "" {
		return fail("category", "is empty")
	}
	if strings.TrimSpace(rec.Question) == "" {
		return fail("question", "is empty")
	}
	if strings.TrimSpace(rec.Answer) == "" {
		return fail("answer", "is empty")
	}
	if len(rec.Keywords) == 0 {
		return fail("keywords", "is empty")
	}
	for _, kw := range rec.Keywords {
		if kw == "" {
			return fail("keywords", "contains an empty keyword")
		}
		if kw != strings.ToLower(kw) {
			return fail("keywords", fmt.Sprintf("keyword %q is not lowercase", kw))
		}
	}
	if len(rec.Roles) == 0 {
		return fail("roles", "is empty")
	}
	for _, role := range rec.Roles {
		if role == "" {
			return fail("roles", "contains an empty role")
		}
	}

	return nil
}

// AllRecords returns every record in the order the base was built from.
// Callers must treat the records as read-only.
func (r *KnowledgeRepository) AllRecords() []*models.QARecord {
	return r.records
}

// Categories returns the category names in first-appearance order.
func (r *KnowledgeRepository) Categories() []string {
	return append([]string(nil), r.categories...)
}

func (r *KnowledgeRepository) Count() int {
	return len(r.records)
}

package service

import (
	"strings"
	"unicode/utf8"

	"admitiq/internal/dto"
	"admitiq/internal/models"

	"go.uber.org/zap"
)

// Scoring weights and the confidence threshold. Changing any of them changes
// which answers users receive.
const (
	KeywordWeight         = 3.0
	QuestionTokenWeight   = 1.0
	AnswerTokenWeight     = 0.5
	ConfidenceThreshold   = 2.0
	MinQuestionTokenRunes = 4
	MinAnswerTokenRunes   = 5
)

// RecordSource is the read-only view of the knowledge base the matcher scans.
type RecordSource interface {
	AllRecords() []*models.QARecord
}

// ScoreObserver receives the winning score of every scan, matched or not.
type ScoreObserver interface {
	ObserveMatchScore(score float64, matched bool)
}

type MatchService struct {
	source   RecordSource
	observer ScoreObserver
	logger   *zap.Logger
}

func NewMatchService(source RecordSource, observer ScoreObserver, logger *zap.Logger) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchService{
		source:   source,
		observer: observer,
		logger:   logger,
	}
}

// FindBestMatch returns the highest scoring record visible to role, or nil
// when no record scores above ConfidenceThreshold. The first record in base
// order wins ties.
func (s *MatchService) FindBestMatch(query string, role string) *models.QARecord {
	q := strings.ToLower(query)
	r := models.Role(role)

	var best *models.QARecord
	highest := 0.0

	for _, rec := range s.source.AllRecords() {
		if !rec.VisibleTo(r) {
			continue
		}

		score := Score(q, rec)
		if score > highest {
			highest = score
			best = rec
		}
	}

	matched := highest > ConfidenceThreshold
	if s.observer != nil {
		s.observer.ObserveMatchScore(highest, matched)
	}

	if !matched {
		s.logger.Debug("No confident match",
			zap.String("role", role),
			zap.Float64("score", highest),
		)
		return nil
	}

	s.logger.Debug("Match found",
		zap.String("role", role),
		zap.String("question", best.Question),
		zap.Float64("score", highest),
	)
	return best
}

// Score rates one record against a query that is already lowercased.
// Every containment test is a plain substring check and repeated tokens
// count once per occurrence.
func Score(lowerQuery string, rec *models.QARecord) float64 {
	score := 0.0

	for _, kw := range rec.Keywords {
		if strings.Contains(lowerQuery, kw) {
			score += KeywordWeight
		}
	}

	score += tokenOverlap(lowerQuery, rec.Question, MinQuestionTokenRunes, QuestionTokenWeight)
	score += tokenOverlap(lowerQuery, rec.Answer, MinAnswerTokenRunes, AnswerTokenWeight)

	return score
}

func tokenOverlap(lowerQuery, text string, minRunes int, weight float64) float64 {
	total := 0.0
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(token) < minRunes {
			continue
		}
		if strings.Contains(lowerQuery, token) {
			total += weight
		}
	}
	return total
}

// Catalog lists the questions visible to role, grouped by category in base order.
func (s *MatchService) Catalog(role string) []dto.CategoryResponse {
	r := models.Role(role)

	catalog := []dto.CategoryResponse{}
	index := make(map[string]int)
	for _, rec := range s.source.AllRecords() {
		if !rec.VisibleTo(r) {
			continue
		}
		i, ok := index[rec.Category]
		if !ok {
			i = len(catalog)
			index[rec.Category] = i
			catalog = append(catalog, dto.CategoryResponse{Name: rec.Category})
		}
		catalog[i].Questions = append(catalog[i].Questions, rec.Question)
	}
	return catalog
}

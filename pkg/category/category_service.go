package category

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/entities"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

type (
	CategoryService interface {
		GetCategories(ctx context.Context, userID string) ([]domain.CategoryResponse, error)
		Suggest(ctx context.Context, userID string, merchantName string, itemDescriptions []string) (domain.SuggestCategoryResponse, error)
		RecordCorrection(userID string, req domain.RecordCorrectionRequest) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
		keyPhrases         KeyPhraseClient
	}
)

func NewCategoryService(categoryRepository CategoryRepository, keyPhrases KeyPhraseClient) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		keyPhrases:         keyPhrases,
	}
}

func (s *categoryService) GetCategories(ctx context.Context, userID string) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var response []domain.CategoryResponse
	for _, c := range categories {
		response = append(response, domain.CategoryResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			Description: c.Description,
			Color:       c.Color,
			IsDefault:   c.IsDefault,
		})
	}
	return response, nil
}

// Suggest maps receipt-level signals to one of the user's categories. Rules
// are evaluated in fixed priority order and the first rule that both fires
// and resolves to an existing category wins; there is no global best-score
// search, which keeps the result deterministic.
func (s *categoryService) Suggest(ctx context.Context, userID string, merchantName string, itemDescriptions []string) (domain.SuggestCategoryResponse, error) {
	categories, err := s.ensureCategories(ctx, userID)
	if err != nil {
		return domain.SuggestCategoryResponse{}, err
	}

	combined := strings.ToLower(strings.TrimSpace(merchantName + " " + strings.Join(itemDescriptions, " ")))

	for _, rule := range suggestionRules {
		matched := matchedKeywords(rule.Keywords, combined)
		if len(matched) == 0 {
			continue
		}
		resolved := resolveCategory(rule.CandidateNames, categories)
		if resolved == nil {
			continue
		}

		confidence := 0.7 + 0.1*float64(len(matched))
		if confidence > rule.BaseConfidence {
			confidence = rule.BaseConfidence
		}
		return domain.SuggestCategoryResponse{
			SuggestedCategoryID: resolved.ID.String(),
			Confidence:          confidence,
			Reasoning:           fmt.Sprintf("matched %s for category %q", strings.Join(matched, ", "), resolved.Name),
		}, nil
	}

	if s.keyPhrases != nil && s.keyPhrases.Available() {
		if response, ok := s.suggestByKeyPhrases(ctx, combined, categories); ok {
			return response, nil
		}
	}

	return domain.SuggestCategoryResponse{Confidence: 0.3, Reasoning: "no strong match"}, nil
}

// ensureCategories returns the user's categories, bootstrapping the default
// set when the user has none. A failed bootstrap is fatal to the suggestion
// call: there would be nothing to match against.
func (s *categoryService) ensureCategories(ctx context.Context, userID string) ([]*entities.Category, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	categories, err := s.categoryRepository.GetCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	defaults := make([]*entities.Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		defaults = append(defaults, &entities.Category{
			ID:          uuid.New(),
			UserID:      userUUID,
			Name:        d.Name,
			Description: d.Description,
			Color:       d.Color,
			IsDefault:   true,
		})
	}
	if err := s.categoryRepository.CreateCategories(ctx, defaults); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCategoryBootstrap, err)
	}
	return defaults, nil
}

// RecordCorrection persists a (merchant, suggested, actual) tuple for rule
// tuning. The insert runs in the background; a storage failure is logged and
// never surfaces to the caller.
func (s *categoryService) RecordCorrection(userID string, req domain.RecordCorrectionRequest) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	actualUUID, err := uuid.Parse(req.ActualCategoryID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var suggestedUUID *uuid.UUID
	if req.SuggestedCategoryID != "" {
		parsed, err := uuid.Parse(req.SuggestedCategoryID)
		if err != nil {
			return domain.ErrParseUUID
		}
		suggestedUUID = &parsed
	}

	correction := &entities.CategoryCorrection{
		ID:                  uuid.New(),
		UserID:              userUUID,
		MerchantName:        req.MerchantName,
		SuggestedCategoryID: suggestedUUID,
		ActualCategoryID:    actualUUID,
	}

	go func() {
		if err := s.categoryRepository.CreateCorrection(context.Background(), correction); err != nil {
			log.Printf("Error recording category correction for %q: %v", req.MerchantName, err)
		}
	}()

	return nil
}

func (s *categoryService) suggestByKeyPhrases(ctx context.Context, text string, categories []*entities.Category) (domain.SuggestCategoryResponse, bool) {
	phrases, err := s.keyPhrases.ExtractKeyPhrases(ctx, text)
	if err != nil {
		log.Printf("Key phrase extraction unavailable: %v", err)
		return domain.SuggestCategoryResponse{}, false
	}
	if len(phrases) == 0 {
		return domain.SuggestCategoryResponse{}, false
	}

	var best *entities.Category
	bestHits := 0
	var bestPhrases []string
	for _, c := range categories {
		hits, matchedPhrases := scoreCategoryAgainstPhrases(c.Name, phrases)
		if hits > bestHits {
			best, bestHits, bestPhrases = c, hits, matchedPhrases
		}
	}
	if best == nil {
		return domain.SuggestCategoryResponse{}, false
	}

	confidence := 0.5 + 0.1*float64(bestHits)
	if confidence > 0.8 {
		confidence = 0.8
	}
	return domain.SuggestCategoryResponse{
		SuggestedCategoryID: best.ID.String(),
		Confidence:          confidence,
		Reasoning:           fmt.Sprintf("key phrases %s matched category %q", strings.Join(bestPhrases, ", "), best.Name),
	}, true
}

func matchedKeywords(keywords []string, text string) []string {
	var matched []string
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// resolveCategory finds the first user category whose name token-overlaps one
// of the rule's candidate names; substring containment counts in either
// direction.
func resolveCategory(candidateNames []string, categories []*entities.Category) *entities.Category {
	for _, candidate := range candidateNames {
		candidateLower := strings.ToLower(candidate)
		for _, c := range categories {
			nameLower := strings.ToLower(c.Name)
			if strings.Contains(nameLower, candidateLower) || strings.Contains(candidateLower, nameLower) {
				return c
			}
		}
	}
	return nil
}

func scoreCategoryAgainstPhrases(categoryName string, phrases []string) (int, []string) {
	nameLower := strings.ToLower(categoryName)
	nameTokens := strings.FieldsFunc(nameLower, func(r rune) bool {
		return r == ' ' || r == '&' || r == '/'
	})

	hits := 0
	var matched []string
	for _, phrase := range phrases {
		phraseLower := strings.ToLower(phrase)
		if strings.Contains(nameLower, phraseLower) || strings.Contains(phraseLower, nameLower) {
			hits++
			matched = append(matched, phrase)
			continue
		}
		for _, token := range nameTokens {
			if len(token) > 2 && strings.Contains(phraseLower, token) {
				hits++
				matched = append(matched, phrase)
				break
			}
		}
	}
	return hits, matched
}

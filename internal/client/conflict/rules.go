package conflict

import (
	"time"
	"unicode/utf8"

	"github.com/iudanet/fieldsync/internal/models"
)

// DefaultDivergenceThreshold окно, в пределах которого правки считаются одновременными
const DefaultDivergenceThreshold = 60 * time.Second

// Имена правил автоматического разрешения
const (
	RuleWorkflowPrecedence = "workflow_precedence"
	RuleContentRichness    = "content_richness"
	RuleTemporalMerge      = "temporal_merge"
	RuleManual             = "manual"
)

// Policy настраивает автоматическое разрешение
type Policy struct {
	DivergenceThreshold time.Duration
	// PreferLongerNarrative включает правило content_richness.
	// Эвристика без бизнес-обоснования, ждет подтверждения продукта.
	PreferLongerNarrative bool
}

// DefaultPolicy returns the policy with all rules enabled
func DefaultPolicy() Policy {
	return Policy{
		DivergenceThreshold:   DefaultDivergenceThreshold,
		PreferLongerNarrative: true,
	}
}

// Resolution is the final field set for a conflicted complaint
type Resolution struct {
	Final       models.Complaint          `json:"final"`
	Strategy    models.ResolutionStrategy `json:"strategy"`
	Rules       []string                  `json:"rules"`
	RemoteWrite bool                      `json:"remote_write"` // false - серверная версия остается как есть
}

// Evaluate applies the automatic rules in order. Returns false if any
// conflicting field stays unresolved; partial results are then discarded
// and the whole item goes to manual resolution.
func (p Policy) Evaluate(item *models.ConflictItem) (*Resolution, bool) {
	if len(item.ConflictFields) == 0 {
		return nil, false
	}

	// Workflow precedence: сервер авторитетен для статуса
	if len(item.ConflictFields) == 1 && models.IsWorkflowField(item.ConflictFields[0]) {
		return &Resolution{
			Strategy:    models.ResolutionAuto,
			Rules:       []string{RuleWorkflowPrecedence},
			Final:       item.RemoteData,
			RemoteWrite: false,
		}, true
	}

	final := item.RemoteData
	unresolved := make(map[string]struct{}, len(item.ConflictFields))
	for _, f := range item.ConflictFields {
		unresolved[f] = struct{}{}
	}
	var rules []string

	// Content richness: более длинное локальное описание побеждает
	if _, ok := unresolved[models.FieldDescription]; ok && p.PreferLongerNarrative {
		if utf8.RuneCountInString(item.LocalData.Description) > utf8.RuneCountInString(item.RemoteData.Description) {
			final.Description = item.LocalData.Description
			delete(unresolved, models.FieldDescription)
			rules = append(rules, RuleContentRichness)
		}
	}

	// Temporal merge: почти одновременные правки объединяются
	if len(unresolved) > 0 && p.withinWindow(item) && compatible(item, unresolved) {
		for f := range unresolved {
			if !models.IsWorkflowField(f) {
				final.SetField(f, item.LocalData.Field(f))
			}
			delete(unresolved, f)
		}
		rules = append(rules, RuleTemporalMerge)
	}

	if len(unresolved) > 0 {
		return nil, false
	}

	return &Resolution{
		Strategy:    models.ResolutionAuto,
		Rules:       rules,
		Final:       final,
		RemoteWrite: true,
	}, true
}

func (p Policy) withinWindow(item *models.ConflictItem) bool {
	threshold := p.DivergenceThreshold
	if threshold <= 0 {
		threshold = DefaultDivergenceThreshold
	}
	window := item.DivergenceWindow()
	return window >= 0 && window < threshold
}

// compatible: локальная версия не стирает непустое серверное содержимое
func compatible(item *models.ConflictItem, fields map[string]struct{}) bool {
	for f := range fields {
		if models.IsWorkflowField(f) {
			continue
		}
		if item.LocalData.Field(f) == "" && item.RemoteData.Field(f) != "" {
			return false
		}
	}
	return true
}

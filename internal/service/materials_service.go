package service

import (
	"encoding/json"
	"os"

	"github.com/studybuddy-ai/studybuddy/internal/domain"
	"go.uber.org/zap"
)

// MaterialsService serves the study materials set. The set is loaded
// once and cached for the process lifetime; load failures degrade to
// an empty set with zeroed metadata and are never surfaced to callers.
type MaterialsService struct {
	set    *domain.MaterialSet
	logger *zap.Logger
}

// NewMaterialsService loads materials from path and caches them
func NewMaterialsService(path string, logger *zap.Logger) *MaterialsService {
	s := &MaterialsService{logger: logger}
	s.set = loadMaterials(path, logger)
	return s
}

func loadMaterials(path string, logger *zap.Logger) *domain.MaterialSet {
	empty := &domain.MaterialSet{Topics: []domain.StudyTopic{}}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("materials file unavailable, serving empty set",
			zap.String("path", path), zap.Error(err))
		return empty
	}

	var set domain.MaterialSet
	if err := json.Unmarshal(data, &set); err != nil {
		logger.Warn("materials file malformed, serving empty set",
			zap.String("path", path), zap.Error(err))
		return empty
	}

	if set.Topics == nil {
		set.Topics = []domain.StudyTopic{}
	}
	logger.Info("study materials loaded",
		zap.String("path", path), zap.Int("topics", len(set.Topics)))
	return &set
}

// Materials returns the cached material set
func (s *MaterialsService) Materials() *domain.MaterialSet {
	return s.set
}

// TopicIDs returns the ids of all loaded topics, in file order
func (s *MaterialsService) TopicIDs() []string {
	ids := make([]string, 0, len(s.set.Topics))
	for _, t := range s.set.Topics {
		ids = append(ids, t.ID)
	}
	return ids
}

// ValidateMaterialID returns id when it names a loaded topic and the
// empty string otherwise. Unexpected ids from the model are logged
// and dropped rather than passed through.
func (s *MaterialsService) ValidateMaterialID(id string) string {
	if id == "" {
		return ""
	}
	for _, t := range s.set.Topics {
		if t.ID == id {
			return id
		}
	}
	s.logger.Warn("model returned unknown material id", zap.String("material_id", id))
	return ""
}

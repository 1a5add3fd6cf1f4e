package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/aggregator"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dto"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// Previewer computes index scores for ad-hoc weights without persisting.
type Previewer interface {
	Preview(ctx context.Context, weights map[domain.Category]float64, date string) (map[domain.Category]float64, float64, error)
}

// IndexService reads snapshots and manages weighting presets.
type IndexService struct {
	snapshots repository.SnapshotRepository
	presets   repository.PresetRepository
	previewer Previewer
	log       *zap.Logger
	now       func() time.Time
}

// NewIndexService creates a new index service
func NewIndexService(snapshots repository.SnapshotRepository, presets repository.PresetRepository, previewer Previewer, log *zap.Logger) *IndexService {
	return &IndexService{
		snapshots: snapshots,
		presets:   presets,
		previewer: previewer,
		log:       log,
		now:       time.Now,
	}
}

func snapshotData(presetName string, s *domain.IndexSnapshot) dto.SnapshotData {
	return dto.SnapshotData{
		Preset:       presetName,
		Date:         s.SnapshotDate,
		Overall:      s.Overall,
		Capabilities: s.Capabilities,
		Agents:       s.Agents,
		Inputs:       s.Inputs,
		Security:     s.Security,
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *IndexService) resolvePreset(ctx context.Context, name string) (*domain.WeightPreset, error) {
	if name == "" {
		return s.presets.EnsureDefault(ctx)
	}
	return s.presets.GetByName(ctx, name)
}

// GetCurrent returns the most recent snapshot for the preset, defaulting to
// the equal-weight preset.
func (s *IndexService) GetCurrent(presetName string) (*dto.IndexResponse, error) {
	ctx := context.Background()

	preset, err := s.resolvePreset(ctx, presetName)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshots.Latest(ctx, preset.ID)
	if err != nil {
		return nil, err
	}

	return &dto.IndexResponse{Snapshot: snapshotData(preset.Name, snapshot)}, nil
}

// GetHistory returns the snapshots for a preset between two dates,
// inclusive, oldest first.
func (s *IndexService) GetHistory(req *dto.GetHistoryRequest) (*dto.HistoryResponse, error) {
	ctx := context.Background()

	for _, date := range []string{req.From, req.To} {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
		}
	}
	if req.From > req.To {
		return nil, fmt.Errorf("from date must not be after to date")
	}

	preset, err := s.resolvePreset(ctx, req.Preset)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshots.Range(ctx, preset.ID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SnapshotData, 0, len(snapshots))
	for _, snapshot := range snapshots {
		out = append(out, snapshotData(preset.Name, snapshot))
	}

	return &dto.HistoryResponse{Snapshots: out, Count: len(out)}, nil
}

// Preview computes the index for caller-supplied weights against today's
// evidence (or a requested date) without writing a snapshot.
func (s *IndexService) Preview(req *dto.PreviewIndexRequest) (*dto.PreviewResponse, error) {
	ctx := context.Background()

	weights := map[domain.Category]float64{
		domain.CategoryCapabilities: req.Capabilities,
		domain.CategoryAgents:       req.Agents,
		domain.CategoryInputs:       req.Inputs,
		domain.CategorySecurity:     req.Security,
	}

	date := req.Date
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}

	scores, overall, err := s.previewer.Preview(ctx, weights, date)
	if err != nil {
		return nil, err
	}

	categories := make(map[string]float64, len(scores))
	for category, score := range scores {
		categories[string(category)] = score
	}

	return &dto.PreviewResponse{Overall: overall, Categories: categories, Date: date}, nil
}

// CreatePreset registers a named weighting. Weights must sum to 1.0.
func (s *IndexService) CreatePreset(req *dto.CreatePresetRequest) (*dto.PresetData, error) {
	ctx := context.Background()

	preset := &domain.WeightPreset{
		Name:         req.Name,
		Capabilities: req.Capabilities,
		Agents:       req.Agents,
		Inputs:       req.Inputs,
		Security:     req.Security,
	}

	if err := aggregator.ValidateWeights(preset.Weights()); err != nil {
		return nil, err
	}

	if err := s.presets.Create(ctx, preset); err != nil {
		return nil, err
	}

	s.log.Info("Preset created", zap.String("name", preset.Name))

	return &dto.PresetData{
		Name:         preset.Name,
		Capabilities: preset.Capabilities,
		Agents:       preset.Agents,
		Inputs:       preset.Inputs,
		Security:     preset.Security,
	}, nil
}

// ListPresets returns all registered presets.
func (s *IndexService) ListPresets() (*dto.PresetListResponse, error) {
	ctx := context.Background()

	presets, err := s.presets.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PresetData, 0, len(presets))
	for _, preset := range presets {
		out = append(out, dto.PresetData{
			Name:         preset.Name,
			Capabilities: preset.Capabilities,
			Agents:       preset.Agents,
			Inputs:       preset.Inputs,
			Security:     preset.Security,
		})
	}

	return &dto.PresetListResponse{Presets: out, Count: len(out)}, nil
}

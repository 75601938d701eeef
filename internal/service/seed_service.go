package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/seeddata"
)

// ProfileWriter запись профилей кандидатов.
type ProfileWriter interface {
	Upsert(ctx context.Context, cands []models.Candidate) (int, error)
}

// SchemaError документ не прошёл проверку схемой.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return "seed: документ не соответствует схеме: " + strings.Join(e.Fields, "; ")
}

// SeedService импортирует профили кандидатов из JSON.
type SeedService struct {
	profiles ProfileWriter
	schema   *gojsonschema.Schema
	onImport func(ctx context.Context)
}

// NewSeedService компилирует схему профилей. onImport вызывается после успешного импорта.
func NewSeedService(profiles ProfileWriter, onImport func(ctx context.Context)) (*SeedService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(seeddata.Schema))
	if err != nil {
		return nil, fmt.Errorf("seed: не удалось загрузить схему: %w", err)
	}
	return &SeedService{profiles: profiles, schema: schema, onImport: onImport}, nil
}

// SeedDefault импортирует встроенный набор кандидатов.
func (s *SeedService) SeedDefault(ctx context.Context) (int, error) {
	return s.Import(ctx, seeddata.Candidates)
}

// Validate проверяет документ схемой и декодирует его.
func (s *SeedService) Validate(doc []byte) ([]models.Candidate, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("seed: некорректный JSON: %w", err)
	}
	if !result.Valid() {
		fields := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			fields = append(fields, field+": "+desc.Description())
		}
		return nil, &SchemaError{Fields: fields}
	}

	var cands []models.Candidate
	if err := json.Unmarshal(doc, &cands); err != nil {
		return nil, fmt.Errorf("seed: не удалось декодировать кандидатов: %w", err)
	}
	return cands, nil
}

// Import проверяет документ и сохраняет профили, обновляя существующие по id.
func (s *SeedService) Import(ctx context.Context, doc []byte) (int, error) {
	cands, err := s.Validate(doc)
	if err != nil {
		return 0, err
	}

	n, err := s.profiles.Upsert(ctx, cands)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	logger.Get().WithField("count", n).Info("seed: профили импортированы")
	if s.onImport != nil {
		s.onImport(ctx)
	}
	return n, nil
}

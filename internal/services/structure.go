package services

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
	"github.com/vibhu2208/hrms-backend-sub007/internal/utils"
)

type FieldInfo struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

type CollectionSummary struct {
	Name            string      `json:"name"`
	Count           int64       `json:"count"`
	Fields          []FieldInfo `json:"fields"`
	NewestCreatedAt *time.Time  `json:"newestCreatedAt,omitempty"`
}

type TenantStructure struct {
	Database    string              `json:"database"`
	Collections []CollectionSummary `json:"collections"`
}

type Sampler interface {
	DatabaseName() string
	Sample(ctx context.Context, n int64) ([]repository.CollectionSample, error)
}

// SummarizeCollection merges the top-level fields of the sampled documents.
// A field seen with more than one BSON type lists every type.
func SummarizeCollection(s repository.CollectionSample) CollectionSummary {
	types := map[string][]string{}
	var newest time.Time
	for _, doc := range s.Docs {
		for k, v := range doc {
			t := utils.BSONTypeName(v)
			if !slices.Contains(types[k], t) {
				types[k] = append(types[k], t)
			}
		}
		if ts, ok := utils.ExtractTime(doc, "createdAt"); ok && ts.After(newest) {
			newest = ts
		}
	}

	fields := make([]FieldInfo, 0, len(types))
	for name, ts := range types {
		sort.Strings(ts)
		fields = append(fields, FieldInfo{Name: name, Types: ts})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	summary := CollectionSummary{Name: s.Name, Count: s.Count, Fields: fields}
	if !newest.IsZero() {
		summary.NewestCreatedAt = &newest
	}
	return summary
}

func DescribeTenant(ctx context.Context, s Sampler, sampleSize int64) (TenantStructure, error) {
	if sampleSize <= 0 {
		sampleSize = 3
	}
	samples, err := s.Sample(ctx, sampleSize)
	if err != nil {
		return TenantStructure{}, err
	}
	out := TenantStructure{Database: s.DatabaseName(), Collections: make([]CollectionSummary, 0, len(samples))}
	for _, sample := range samples {
		out.Collections = append(out.Collections, SummarizeCollection(sample))
	}
	return out, nil
}

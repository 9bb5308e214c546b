package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// EvaluationIndex stores the resume embedding of every completed evaluation
// so recruiters can search for resumes similar to a free-text query.
type EvaluationIndex interface {
	InitCollection() error
	IndexResume(ctx context.Context, evalID string, resumeFile string, verdict string, totalScore float64, embedding []float32) error
	SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeHit, error)
	DeleteResume(ctx context.Context, evalID string) error
}

type ResumeHit struct {
	EvaluationID string
	ResumeFile   string
	Verdict      string
	TotalScore   float64
	Score        float32
}

type evaluationIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewEvaluationIndex(urlStr, apiKey, collectionName string, logger *zap.Logger) (EvaluationIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port by default
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &evaluationIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
		logger:         logger,
	}, nil
}

// InitCollection implements EvaluationIndex.
func (q *evaluationIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Info("qdrant collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// IndexResume implements EvaluationIndex.
func (q *evaluationIndex) IndexResume(ctx context.Context, evalID string, resumeFile string, verdict string, totalScore float64, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(evalID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"eval_id":     evalID,
			"resume_file": resumeFile,
			"verdict":     verdict,
			"total_score": totalScore,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchResumes implements EvaluationIndex.
func (q *evaluationIndex) SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeHit, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var hits []ResumeHit
	for _, point := range searchResult {
		payload := point.Payload

		hit := ResumeHit{
			Score: point.Score,
		}

		if evalID, ok := payload["eval_id"]; ok {
			if val, ok := evalID.GetKind().(*qdrant.Value_StringValue); ok {
				hit.EvaluationID = val.StringValue
			}
		}

		if file, ok := payload["resume_file"]; ok {
			if val, ok := file.GetKind().(*qdrant.Value_StringValue); ok {
				hit.ResumeFile = val.StringValue
			}
		}

		if verdict, ok := payload["verdict"]; ok {
			if val, ok := verdict.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Verdict = val.StringValue
			}
		}

		if total, ok := payload["total_score"]; ok {
			if val, ok := total.GetKind().(*qdrant.Value_DoubleValue); ok {
				hit.TotalScore = val.DoubleValue
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// DeleteResume implements EvaluationIndex.
func (q *evaluationIndex) DeleteResume(ctx context.Context, evalID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("eval_id", evalID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume point: %w", err)
	}

	return nil
}

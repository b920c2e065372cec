package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"interviewsystem/api/internal/models"
)

// ResponseIndex is the vector index over saved interview responses, backing
// semantic search across questions and answers.
type ResponseIndex interface {
	InitCollection() error
	UpsertResponse(ctx context.Context, response *models.InterviewResponse, embedding []float32) error
	Search(ctx context.Context, queryEmbedding []float32, jobID *uuid.UUID, limit int) ([]ResponseHit, error)
}

// ResponseHit is one similarity match from the index.
type ResponseHit struct {
	ResponseID uuid.UUID
	Score      float32
}

type responseIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewResponseIndex(urlStr, apiKey, collectionName string) (ResponseIndex, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
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

	return &responseIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements ResponseIndex.
func (q *responseIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
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

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertResponse implements ResponseIndex. The point id is the response id,
// so re-indexing the same response overwrites its previous point.
func (q *responseIndex) UpsertResponse(ctx context.Context, response *models.InterviewResponse, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(response.ID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"response_id": response.ID.String(),
			"job_id":      response.JobID.String(),
			"company_id":  response.CompanyID.String(),
			"score":       int64(response.Evaluation.Score),
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

// Search implements ResponseIndex.
func (q *responseIndex) Search(ctx context.Context, queryEmbedding []float32, jobID *uuid.UUID, limit int) ([]ResponseHit, error) {
	var filter *qdrant.Filter
	if jobID != nil {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_id", jobID.String()),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var hits []ResponseHit
	for _, point := range searchResult {
		raw, ok := point.Payload["response_id"]
		if !ok {
			continue
		}
		val, ok := raw.GetKind().(*qdrant.Value_StringValue)
		if !ok {
			continue
		}
		id, err := uuid.Parse(val.StringValue)
		if err != nil {
			continue
		}
		hits = append(hits, ResponseHit{ResponseID: id, Score: point.Score})
	}

	return hits, nil
}

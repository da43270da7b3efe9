package domain

// RunbookChunk is a unit stored in the vector index.
//
// Invariant: len(Embedding) equals the embedding dimension reported by the
// configured LLM adapter for its embedding model; all chunks in a given store
// share that dimension. Embedding is defensively copied on construct and on
// every accessor that would otherwise leak the backing array.
type RunbookChunk struct {
	ID               string
	RunbookPath      string // origin key in storage
	SectionTitle     string
	Content          string
	Tags             []string
	ApplicableShapes []string // glob patterns, '*'/'?' only
	Embedding        []float32
}

// NewRunbookChunk defensively copies every slice field.
func NewRunbookChunk(id, runbookPath, sectionTitle, content string, tags, applicableShapes []string, embedding []float32) RunbookChunk {
	return RunbookChunk{
		ID:               id,
		RunbookPath:      runbookPath,
		SectionTitle:     sectionTitle,
		Content:          content,
		Tags:             copyStrings(tags),
		ApplicableShapes: copyStrings(applicableShapes),
		Embedding:        copyFloats(embedding),
	}
}

// EmbeddingCopy returns a defensive copy of the chunk's embedding vector.
func (c RunbookChunk) EmbeddingCopy() []float32 {
	return copyFloats(c.Embedding)
}

// ScoredChunk pairs a chunk with its raw cosine similarity against a query.
type ScoredChunk struct {
	Chunk           RunbookChunk
	SimilarityScore float64 // cosine in [-1, 1]
}

// RetrievedChunk adds the metadata-derived boost retrieval applies on top of
// similarity.
type RetrievedChunk struct {
	Chunk           RunbookChunk
	SimilarityScore float64
	MetadataBoost   float64 // non-negative
	FinalScore      float64 // SimilarityScore + MetadataBoost
}

func copyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func copyFloats(f []float32) []float32 {
	if f == nil {
		return nil
	}
	out := make([]float32, len(f))
	copy(out, f)
	return out
}

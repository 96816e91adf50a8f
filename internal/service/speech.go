package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/msomdec/creator-studio/internal/domain"
	"golang.org/x/sync/errgroup"
)

// AudioFetcher returns synthesized audio bytes for a single piece of text
// no longer than the provider's per-call limit.
type AudioFetcher interface {
	FetchAudio(ctx context.Context, text string) ([]byte, error)
}

// SpeechService converts text to speech by splitting it into chunks the
// provider can handle, fetching audio for every chunk concurrently, and
// concatenating the raw bytes in chunk order.
type SpeechService struct {
	fetcher    AudioFetcher
	chunkLimit int
}

// NewSpeechService creates a new SpeechService with the given per-request
// character limit.
func NewSpeechService(fetcher AudioFetcher, chunkLimit int) *SpeechService {
	return &SpeechService{fetcher: fetcher, chunkLimit: chunkLimit}
}

// Synthesize returns one audio payload for the whole text. All chunk
// fetches run in parallel; if any fails the whole operation fails and the
// remaining fetches are cancelled. No re-encoding or silence insertion
// happens between chunks.
func (s *SpeechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	chunks := ChunkText(text, s.chunkLimit)
	parts := make([][]byte, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			audio, err := s.fetcher.FetchAudio(ctx, chunk)
			if err != nil {
				return fmt.Errorf("fetch audio for chunk %d: %w", i, err)
			}
			parts[i] = audio
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bytes.Join(parts, nil), nil
}

// ChunkText splits text into contiguous rune chunks of at most limit
// characters. Boundaries may fall mid-word. A non-positive limit yields
// the whole text as a single chunk.
func ChunkText(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"image-story-web/internal/domain"
	"image-story-web/internal/gemini"
	"image-story-web/internal/history"
	"image-story-web/internal/prompt"
)

// --- Mocks ---

type mockGenerator struct {
	generateFunc func(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error)
	instructions []string
}

func (m *mockGenerator) GenerateFromImage(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error) {
	m.instructions = append(m.instructions, instruction)
	return m.generateFunc(ctx, instruction, imageData, mimeType, opts)
}

type mockNotifier struct {
	notified      int
	errorNotified int
}

func (m *mockNotifier) Notify(ctx context.Context, req domain.NotificationRequest) error {
	m.notified++
	return nil
}

func (m *mockNotifier) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	m.errorNotified++
	return nil
}

func newRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		ImageData:     []byte("fake-image-bytes"),
		ImageMIMEType: "image/jpeg",
		FileName:      "a.jpg",
		Tone:          domain.TonePoetic,
		Length:        domain.LengthShort,
		ContentType:   domain.ContentStory,
		Prompt:        "a homecoming",
	}
}

// --- Tests ---

func TestGenerationPipeline_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("成功時は履歴にちょうど1件追記されるのだ", func(t *testing.T) {
		gen := &mockGenerator{
			generateFunc: func(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error) {
				if instruction == prompt.DescribeInstruction {
					return "D", nil
				}
				return "T", nil
			},
		}
		notifier := &mockNotifier{}
		store := history.NewStore(time.Hour)
		p := NewGenerationPipeline(gen, store, notifier)

		result, err := p.Execute(ctx, "sid-1", newRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Description != "D" || result.GeneratedText != "T" {
			t.Errorf("unexpected result: %+v", result)
		}

		records := store.Records("sid-1")
		if len(records) != 1 {
			t.Fatalf("expected exactly 1 history record, got %d", len(records))
		}
		if records[0].GeneratedText != "T" {
			t.Errorf("expected history text T, got %q", records[0].GeneratedText)
		}
		if notifier.notified != 1 {
			t.Errorf("expected 1 completion notification, got %d", notifier.notified)
		}
	})

	t.Run("選択したスタイル名が創作ペイロードに現れる", func(t *testing.T) {
		gen := &mockGenerator{
			generateFunc: func(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error) {
				return "ok", nil
			},
		}
		p := NewGenerationPipeline(gen, history.NewStore(time.Hour), &mockNotifier{})

		if _, err := p.Execute(ctx, "sid-1", newRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(gen.instructions) != 2 {
			t.Fatalf("expected 2 provider calls (describe + creative), got %d", len(gen.instructions))
		}
		creative := gen.instructions[1]
		for _, want := range []string{"poetic", "short", "story", "a homecoming"} {
			if !strings.Contains(creative, want) {
				t.Errorf("creative payload missing %q", want)
			}
		}
	})

	t.Run("画像なしは MissingInputError で履歴は変化しないのだ", func(t *testing.T) {
		gen := &mockGenerator{
			generateFunc: func(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error) {
				t.Fatal("provider must not be called without an image")
				return "", nil
			},
		}
		store := history.NewStore(time.Hour)
		notifier := &mockNotifier{}
		p := NewGenerationPipeline(gen, store, notifier)

		req := newRequest()
		req.ImageData = nil

		_, err := p.Execute(ctx, "sid-1", req)
		if !errors.Is(err, domain.ErrMissingImage) {
			t.Fatalf("expected ErrMissingImage, got %v", err)
		}
		if len(store.Records("sid-1")) != 0 {
			t.Error("history must stay unchanged")
		}
		if notifier.errorNotified != 0 {
			t.Error("input errors must not trigger error notifications")
		}
	})

	t.Run("プロバイダ失敗は ProviderError で履歴は変化しない", func(t *testing.T) {
		gen := &mockGenerator{
			generateFunc: func(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error) {
				return "", domain.NewProviderError("quota exceeded", errors.New("429"))
			},
		}
		store := history.NewStore(time.Hour)
		notifier := &mockNotifier{}
		p := NewGenerationPipeline(gen, store, notifier)

		_, err := p.Execute(ctx, "sid-1", newRequest())
		var provErr *domain.ProviderError
		if !errors.As(err, &provErr) {
			t.Fatalf("expected *domain.ProviderError, got %v", err)
		}
		if len(store.Records("sid-1")) != 0 {
			t.Error("history must stay unchanged")
		}
		if notifier.errorNotified != 1 {
			t.Errorf("expected 1 error notification, got %d", notifier.errorNotified)
		}
	})

	t.Run("解説と創作で温度設定が切り替わるのだ", func(t *testing.T) {
		var temps []float32
		gen := &mockGenerator{
			generateFunc: func(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error) {
				temps = append(temps, opts.Temperature)
				return "ok", nil
			},
		}
		p := NewGenerationPipeline(gen, history.NewStore(time.Hour), &mockNotifier{})

		if _, err := p.Execute(ctx, "sid-1", newRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(temps) != 2 || temps[0] >= temps[1] {
			t.Errorf("expected describe temperature below creative temperature, got %v", temps)
		}
	})
}

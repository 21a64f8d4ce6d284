package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tessera-app/tessera/composition"
	"github.com/tessera-app/tessera/domain"
	"github.com/tessera-app/tessera/metrics"
	"github.com/tessera-app/tessera/shared/id"
	"github.com/tessera-app/tessera/store"
)

var tracer = otel.Tracer("tessera/services")

// ComponentInput is one slot of a submitted compound prompt.
type ComponentInput struct {
	ComponentPromptID *string `json:"component_prompt_id"`
	Position          int     `json:"position"`
	CustomTextBefore  *string `json:"custom_text_before"`
	CustomTextAfter   *string `json:"custom_text_after"`
}

// PromptInput carries the submitted fields of a create or edit.
type PromptInput struct {
	Title      string           `json:"title"`
	Text       *string          `json:"text"`
	IsCompound bool             `json:"is_compound"`
	Tags       []string         `json:"tags"`
	Components []ComponentInput `json:"components"`
}

type PromptService struct {
	store *store.Store
}

func NewPromptService(s *store.Store) *PromptService {
	return &PromptService{store: s}
}

func (svc *PromptService) Create(ctx context.Context, authorID string, in PromptInput) (*domain.Prompt, error) {
	ctx, span := tracer.Start(ctx, "prompt.create")
	defer span.End()

	now := time.Now().UTC()
	prompt := &domain.Prompt{
		ID:         id.NewPrompt(),
		AuthorID:   authorID,
		Title:      in.Title,
		IsCompound: in.IsCompound,
		Status:     domain.PromptStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	span.SetAttributes(attribute.String("prompt.id", prompt.ID))

	var components []*domain.PromptComponent
	if in.IsCompound {
		components = buildComponents(prompt.ID, in.Components)
		if err := svc.validateCompound(ctx, prompt.ID, components); err != nil {
			return nil, err
		}
		prompt.Components = components
	} else {
		prompt.Text = in.Text
	}

	err := svc.store.WithTx(ctx, func(ctx context.Context) error {
		if err := svc.store.CreatePrompt(ctx, prompt); err != nil {
			return err
		}
		if in.IsCompound {
			if err := svc.store.ReplaceComponents(ctx, prompt.ID, components); err != nil {
				return err
			}
		}
		if len(in.Tags) > 0 {
			if err := svc.store.SetPromptTags(ctx, prompt.ID, in.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	prompt.Tags = in.Tags

	svc.refreshMaxDepth(ctx, prompt)
	return prompt, nil
}

// Update replaces a prompt's content. A compound prompt's component set is
// swapped wholesale, never patched row by row. Any edit sends the prompt back
// through moderation.
func (svc *PromptService) Update(ctx context.Context, promptID string, in PromptInput) (*domain.Prompt, error) {
	ctx, span := tracer.Start(ctx, "prompt.update")
	defer span.End()
	span.SetAttributes(attribute.String("prompt.id", promptID))

	prompt, err := svc.store.GetPrompt(ctx, promptID)
	if err != nil {
		return nil, err
	}

	prompt.Title = in.Title
	prompt.IsCompound = in.IsCompound
	prompt.Status = domain.PromptStatusPending
	prompt.UpdatedAt = time.Now().UTC()

	var components []*domain.PromptComponent
	if in.IsCompound {
		prompt.Text = nil
		components = buildComponents(promptID, in.Components)
		if err := svc.validateCompound(ctx, promptID, components); err != nil {
			return nil, err
		}
	} else {
		prompt.Text = in.Text
	}
	prompt.Components = components

	err = svc.store.WithTx(ctx, func(ctx context.Context) error {
		if err := svc.store.UpdatePrompt(ctx, prompt); err != nil {
			return err
		}
		// Also clears stale rows when a compound prompt becomes plain.
		if err := svc.store.ReplaceComponents(ctx, promptID, components); err != nil {
			return err
		}
		return svc.store.SetPromptTags(ctx, promptID, in.Tags)
	})
	if err != nil {
		return nil, err
	}
	prompt.Tags = in.Tags

	svc.refreshMaxDepth(ctx, prompt)
	return prompt, nil
}

func (svc *PromptService) Get(ctx context.Context, promptID string) (*domain.Prompt, error) {
	return svc.store.GetPrompt(ctx, promptID)
}

// ListedPrompt pairs a catalogue entry with its resolved display text.
type ListedPrompt struct {
	Prompt       *domain.Prompt `json:"prompt"`
	ResolvedText string         `json:"resolved_text"`
}

func (svc *PromptService) List(ctx context.Context, status string, limit, offset int) ([]*ListedPrompt, int, error) {
	ctx, span := tracer.Start(ctx, "prompt.list")
	defer span.End()

	prompts, total, err := svc.store.ListPrompts(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*ListedPrompt, 0, len(prompts))
	for _, p := range prompts {
		entries = append(entries, &ListedPrompt{
			Prompt:       p,
			ResolvedText: ResolveForDisplay(ctx, svc.store, p.ID),
		})
	}
	return entries, total, nil
}

func (svc *PromptService) Delete(ctx context.Context, promptID string) error {
	return svc.store.DeletePrompt(ctx, promptID)
}

func (svc *PromptService) Tags(ctx context.Context) ([]*domain.Tag, error) {
	return svc.store.ListTags(ctx)
}

// Resolve flattens a prompt into its display text.
func (svc *PromptService) Resolve(ctx context.Context, promptID string) (string, error) {
	ctx, span := tracer.Start(ctx, "prompt.resolve")
	defer span.End()
	span.SetAttributes(attribute.String("prompt.id", promptID))

	text, err := composition.ResolvePrompt(ctx, promptID, svc.store)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.ResolutionsTotal.WithLabelValues("ok").Inc()
	return text, nil
}

// Preview resolves an unsaved component list, for the editing UI.
func (svc *PromptService) Preview(ctx context.Context, inputs []ComponentInput) (string, error) {
	ctx, span := tracer.Start(ctx, "prompt.preview")
	defer span.End()

	components := buildComponents("", inputs)
	if err := composition.ValidateComponentStructure(components); err != nil {
		countValidationFailure(err)
		return "", err
	}
	return composition.PreviewComponents(ctx, components, svc.store)
}

func (svc *PromptService) validateCompound(ctx context.Context, compoundID string, components []*domain.PromptComponent) error {
	if err := composition.ValidateComponentStructure(components); err != nil {
		countValidationFailure(err)
		return err
	}
	for _, c := range components {
		if c.ComponentPromptID == nil {
			continue
		}
		if err := composition.ValidateComponent(ctx, compoundID, *c.ComponentPromptID, svc.store); err != nil {
			countValidationFailure(err)
			return err
		}
	}
	return nil
}

// refreshMaxDepth recomputes the advisory depth cache after a component
// change. The cache is best-effort: on failure the previous value is left in
// place and the error is only logged.
func (svc *PromptService) refreshMaxDepth(ctx context.Context, prompt *domain.Prompt) {
	if !prompt.IsCompound {
		return
	}
	depth, err := composition.CalculateMaxDepth(ctx, prompt.ID, svc.store, nil)
	if err != nil {
		slog.Warn("max depth recompute failed, keeping previous value", "prompt_id", prompt.ID, "error", err)
		return
	}
	if err := svc.store.SetMaxDepth(ctx, prompt.ID, depth); err != nil {
		slog.Warn("max depth cache update failed", "prompt_id", prompt.ID, "error", err)
		return
	}
	prompt.MaxDepth = &depth
}

func buildComponents(compoundID string, inputs []ComponentInput) []*domain.PromptComponent {
	components := make([]*domain.PromptComponent, 0, len(inputs))
	for _, in := range inputs {
		components = append(components, &domain.PromptComponent{
			ID:                id.NewComponent(),
			CompoundPromptID:  compoundID,
			ComponentPromptID: in.ComponentPromptID,
			Position:          in.Position,
			CustomTextBefore:  in.CustomTextBefore,
			CustomTextAfter:   in.CustomTextAfter,
		})
	}
	return components
}

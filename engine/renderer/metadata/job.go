package metadata

import (
	"context"
	"time"

	"github.com/google/uuid"
)

/** @brief Distinguishes a full avatar render from a single item thumbnail. */
type JobKind uint8

const (
	JobKindAvatar    JobKind = 1
	JobKindThumbnail JobKind = 2
)

func (k JobKind) String() string {
	switch k {
	case JobKindAvatar:
		return "avatar"
	case JobKindThumbnail:
		return "thumbnail"
	default:
		return "unknown"
	}
}

/**
 * @brief The reply sent once per job. Image holds the base64 PNG; an empty
 * Image is the failure sentinel and Err says why.
 */
type RenderResult struct {
	Image string
	Err   error
}

/**
 * @brief Describes a render to be run by the engine.
 */
type RenderJob struct {
	/** @brief Identifies the job in logs. */
	ID uuid.UUID
	/** @brief The kind of render. */
	Kind JobKind
	/** @brief Items in caller order. */
	Items []EquippedItem
	/** @brief Body colours. Nil for thumbnails, which use the neutral palette. */
	Colors *ColorProfile
	/** @brief One-shot reply channel, buffered so the render thread never blocks on it. */
	Reply chan RenderResult
	/** @brief When the job was queued. Only used for latency logging. */
	EnqueuedAt time.Time
	/** @brief Cancelled when the submitter stops waiting. */
	Ctx context.Context
}

func NewRenderJob(ctx context.Context, kind JobKind, items []EquippedItem, colors *ColorProfile) *RenderJob {
	return &RenderJob{
		ID:         uuid.New(),
		Kind:       kind,
		Items:      items,
		Colors:     colors,
		Reply:      make(chan RenderResult, 1),
		EnqueuedAt: time.Now(),
		Ctx:        ctx,
	}
}

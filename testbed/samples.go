// Package testbed renders a fixed set of avatars without a database, for
// eyeballing renderer changes.
package testbed

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

type Submitter interface {
	Submit(ctx context.Context, kind metadata.JobKind, items []metadata.EquippedItem, colors *metadata.ColorProfile) (string, error)
}

type Sample struct {
	Name   string
	Kind   metadata.JobKind
	Items  []metadata.EquippedItem
	Colors *metadata.ColorProfile
}

func Samples() []Sample {
	classic := metadata.ColorProfile{Head: 24, Torso: 23, LeftArm: 24, RightArm: 24, LeftLeg: 119, RightLeg: 119}
	unknown := metadata.ColorProfile{Head: 9999, Torso: 9999, LeftArm: 9999, RightArm: 9999, LeftLeg: 9999, RightLeg: 9999}
	defaults := metadata.DefaultColorProfile()

	return []Sample{
		{Name: "default", Kind: metadata.JobKindAvatar, Colors: &defaults},
		{Name: "classic", Kind: metadata.JobKindAvatar, Colors: &classic},
		{Name: "unknown_colors", Kind: metadata.JobKindAvatar, Colors: &unknown},
		{
			Name:  "missing_hat_thumbnail",
			Kind:  metadata.JobKindThumbnail,
			Items: []metadata.EquippedItem{{Type: metadata.ItemTypeHat, Location: "testbed/hat.obj", TexturePath: "testbed/hat.png"}},
		},
	}
}

// RenderSamples submits every sample and writes the decoded PNGs to dir.
// It returns the written paths.
func RenderSamples(ctx context.Context, s Submitter, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, sample := range Samples() {
		encoded, err := s.Submit(ctx, sample.Kind, sample.Items, sample.Colors)
		if err != nil {
			return written, fmt.Errorf("sample %s: %w", sample.Name, err)
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return written, fmt.Errorf("sample %s: %w", sample.Name, err)
		}
		path := filepath.Join(dir, sample.Name+".png")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, err
		}
		core.LogInfo("wrote %s (%d bytes)", path, len(data))
		written = append(written, path)
	}
	return written, nil
}

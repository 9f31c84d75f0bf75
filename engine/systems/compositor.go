package systems

import (
	"github.com/stuxvii/lsd-thumbnail-server/engine/assets/loaders"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
	"github.com/stuxvii/lsd-thumbnail-server/engine/palette"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// AssetSource loads item assets by path relative to the asset root.
// Returned values are shared and must not be modified.
type AssetSource interface {
	LoadImage(rel string) (*metadata.ImageResourceData, error)
	LoadMesh(rel string) (*metadata.Mesh, error)
}

// Draw call names of the body parts, in draw order.
const (
	DrawTorso    = "torso"
	DrawRightArm = "rarm"
	DrawLeftArm  = "larm"
	DrawHead     = "head"
	DrawLeftLeg  = "lleg"
	DrawRightLeg = "rleg"
	DrawTShirt   = "tshirt"
	DrawHat      = "hat"
)

/** @brief Scale applied to the t-shirt overlay so it sits just above the torso surface. */
const OverlayScale float32 = 1.01

type SceneCompositor struct {
	static      *metadata.StaticMeshSet
	assets      AssetSource
	defaultFace *metadata.ImageResourceData
}

// NewSceneCompositor builds a compositor over the shared body meshes. face
// is the default face image; nil means the head gets a plain red texture.
func NewSceneCompositor(static *metadata.StaticMeshSet, assets AssetSource, face *metadata.ImageResourceData) *SceneCompositor {
	if static == nil {
		static = &metadata.StaticMeshSet{}
	}
	return &SceneCompositor{
		static:      static,
		assets:      assets,
		defaultFace: face,
	}
}

// Compose turns an equipped item list into draw calls. Items are applied in
// list order, so a later item of the same type replaces an earlier one. Hats
// are emitted as they are met; body parts follow in fixed order and overlays
// come last. Asset failures only skip the offending item.
func (sc *SceneCompositor) Compose(items []metadata.EquippedItem, colors metadata.ResolvedColors) *metadata.CompositedScene {
	scene := &metadata.CompositedScene{}

	headMesh := sc.static.Head
	faceTexture := sc.faceTexture(colors.Head)
	torsoTexture := palette.SolidTexture(colors.Torso)
	rightArmTexture := palette.SolidTexture(colors.RightArm)
	leftArmTexture := palette.SolidTexture(colors.LeftArm)
	leftLegTexture := palette.SolidTexture(colors.LeftLeg)
	rightLegTexture := palette.SolidTexture(colors.RightLeg)

	var overlays []metadata.DrawCall

	for _, item := range items {
		if item.Location == "" {
			continue
		}

		switch item.Type {
		case metadata.ItemTypeHat:
			mesh, texture, ok := sc.loadHat(item)
			if ok {
				scene.Add(DrawHat, mesh, texture, nil)
			}
		case metadata.ItemTypeHead:
			mesh, err := sc.assets.LoadMesh(item.Location)
			if err != nil {
				core.LogWarn("head %s skipped: %v", item.Location, err)
				continue
			}
			headMesh = mesh
		case metadata.ItemTypeFace:
			img, err := sc.assets.LoadImage(item.Location)
			if err != nil {
				core.LogWarn("face %s skipped: %v", item.Location, err)
				continue
			}
			faceTexture = palette.RecolorImage(item.Location, img, colors.Head)
		case metadata.ItemTypePants:
			img, err := sc.assets.LoadImage(item.Location)
			if err != nil {
				core.LogWarn("pants %s skipped: %v", item.Location, err)
				continue
			}
			rightLegTexture = palette.RecolorImage(item.Location, img, colors.RightLeg)
			leftLegTexture = palette.RecolorImage(item.Location, img, colors.LeftLeg)
		case metadata.ItemTypeShirt:
			img, err := sc.assets.LoadImage(item.Location)
			if err != nil {
				core.LogWarn("shirt %s skipped: %v", item.Location, err)
				continue
			}
			torsoTexture = palette.RecolorImage(item.Location, img, colors.Torso)
			rightArmTexture = palette.RecolorImage(item.Location, img, colors.RightArm)
			leftArmTexture = palette.RecolorImage(item.Location, img, colors.LeftArm)
		case metadata.ItemTypeTShirt:
			img, err := sc.assets.LoadImage(item.Location)
			if err != nil {
				core.LogWarn("t-shirt %s skipped: %v", item.Location, err)
				continue
			}
			if sc.static.TShirt == nil {
				core.LogWarn("t-shirt %s skipped: no overlay mesh", item.Location)
				continue
			}
			pixels := make([]uint8, len(img.Pixels))
			copy(pixels, img.Pixels)
			overlays = append(overlays, metadata.DrawCall{
				Name:      DrawTShirt,
				Mesh:      sc.static.TShirt,
				Texture:   metadata.NewTexture(item.Location, img.Width, img.Height, pixels),
				Transform: math.TransformFromScale(math.NewVec3(OverlayScale, OverlayScale, OverlayScale)),
			})
		default:
			core.LogWarn("item type %s not implemented", item.Type)
		}
	}

	sc.addPart(scene, DrawTorso, sc.static.Torso, torsoTexture)
	sc.addPart(scene, DrawRightArm, sc.static.RightArm, rightArmTexture)
	sc.addPart(scene, DrawLeftArm, sc.static.LeftArm, leftArmTexture)
	sc.addPart(scene, DrawHead, headMesh, faceTexture)
	sc.addPart(scene, DrawLeftLeg, sc.static.LeftLeg, leftLegTexture)
	sc.addPart(scene, DrawRightLeg, sc.static.RightLeg, rightLegTexture)
	scene.Draws = append(scene.Draws, overlays...)

	return scene
}

func (sc *SceneCompositor) addPart(scene *metadata.CompositedScene, name string, mesh *metadata.Mesh, texture *metadata.Texture) {
	if mesh == nil {
		core.LogDebug("body part %s has no mesh", name)
		return
	}
	scene.Add(name, mesh, texture, nil)
}

func (sc *SceneCompositor) faceTexture(head metadata.RGB) *metadata.Texture {
	if sc.defaultFace == nil {
		return metadata.NewTexture("face", 1, 1, []uint8{255, 0, 0, 255})
	}
	return palette.RecolorImage("face", sc.defaultFace, head)
}

// loadHat loads the hat mesh and texture. A missing or broken texture is
// replaced by the checker; a broken mesh drops the hat.
func (sc *SceneCompositor) loadHat(item metadata.EquippedItem) (*metadata.Mesh, *metadata.Texture, bool) {
	var texture *metadata.Texture
	if item.TexturePath != "" {
		img, err := sc.assets.LoadImage(item.TexturePath)
		if err != nil {
			core.LogWarn("hat texture %s: %v", item.TexturePath, err)
		} else {
			pixels := make([]uint8, len(img.Pixels))
			copy(pixels, img.Pixels)
			texture = metadata.NewTexture(item.TexturePath, img.Width, img.Height, pixels)
		}
	}
	if texture == nil {
		texture = loaders.CheckerTexture("checker")
	}

	mesh, err := sc.assets.LoadMesh(item.Location)
	if err != nil {
		core.LogWarn("hat %s skipped: %v", item.Location, err)
		return nil, nil, false
	}
	return mesh, texture, true
}

package components

import (
	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
)

/**
 * @brief An orbit camera: it sits on a sphere of Radius around Target,
 * placed by Yaw and Pitch (radians), and always looks at Target.
 */
type Camera struct {
	Yaw    float32
	Pitch  float32
	Radius float32
	Target math.Vec3
	Up     math.Vec3
	/** @brief Vertical field of view in radians. */
	FovY float32
	Near float32
	Far  float32
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4
}

/** @brief The fixed avatar camera. */
const (
	AVATAR_CAMERA_YAW    float32 = 1.0
	AVATAR_CAMERA_PITCH  float32 = 0.4
	AVATAR_CAMERA_RADIUS float32 = 10.0
	DEFAULT_FOV_DEGREES  float32 = 45.0
)

var AvatarCameraTarget = math.NewVec3(-0.25, -1.75, -1.0)

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

// NewAvatarCamera returns the camera every avatar and thumbnail is shot with.
func NewAvatarCamera() *Camera {
	c := NewCamera()
	c.Orbit(AVATAR_CAMERA_YAW, AVATAR_CAMERA_PITCH, AVATAR_CAMERA_RADIUS)
	c.SetTarget(AvatarCameraTarget)
	return c
}

func (c *Camera) Reset() {
	c.Yaw = 0
	c.Pitch = 0
	c.Radius = 1
	c.Target = math.NewVec3Zero()
	c.Up = math.NewVec3Up()
	c.FovY = math.DegToRad(DEFAULT_FOV_DEGREES)
	c.Near = 0.01
	c.Far = 10000.0
	c.IsDirty = true
	c.ViewMatrix = math.NewMat4Identity()
}

func (c *Camera) Orbit(yaw, pitch, radius float32) {
	c.Yaw = yaw
	c.Pitch = pitch
	c.Radius = radius
	c.IsDirty = true
}

func (c *Camera) SetTarget(target math.Vec3) {
	c.Target = target
	c.IsDirty = true
}

// GetPosition returns the eye position derived from the orbit parameters.
func (c *Camera) GetPosition() math.Vec3 {
	offset := math.NewVec3(
		c.Radius*math.Cos(c.Yaw)*math.Cos(c.Pitch),
		c.Radius*math.Sin(c.Pitch),
		c.Radius*math.Sin(c.Yaw)*math.Cos(c.Pitch),
	)
	return offset.Add(c.Target)
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = math.NewMat4LookAt(c.GetPosition(), c.Target, c.Up)
		c.IsDirty = false
	}
	return c.ViewMatrix
}

func (c *Camera) GetProjection(width, height uint32) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.NewMat4Perspective(c.FovY, aspect, c.Near, c.Far)
}

// GetViewProjection returns view * projection for a target of the given size.
func (c *Camera) GetViewProjection(width, height uint32) math.Mat4 {
	return c.GetView().Mul(c.GetProjection(width, height))
}

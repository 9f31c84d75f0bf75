package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The normal of the vertex. */
	Normal Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord Vec2
}

/**
 * @brief Represents the transform of a mesh in the world. Only
 * translation and uniform or per-axis scale are needed by the avatar
 * scene. NOTE: edit through the setters so the cached matrix is rebuilt.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The scale in the world. */
	Scale Vec3
	/** @brief Indicates that the local matrix needs to be recalculated. */
	IsDirty bool
	/** @brief The local transformation matrix. */
	Local Mat4
}

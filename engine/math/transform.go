package math

func TransformFromScale(scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionScale(NewVec3Zero(), scale)
	t.Local = NewMat4Identity()
	return t
}

func (t *Transform) SetPositionScale(position Vec3, scale Vec3) {
	t.Position = position
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal returns scale-then-translate. A nil transform is the identity.
func (t *Transform) GetLocal() Mat4 {
	if t != nil {
		if t.IsDirty {
			s := NewMat4Scale(t.Scale)
			t.Local = s.Mul(NewMat4Translation(t.Position))
			t.IsDirty = false
		}
		return t.Local
	}
	return NewMat4Identity()
}

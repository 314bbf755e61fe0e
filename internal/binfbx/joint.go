package binfbx

// Joint is one skeleton bone: a 3x4 transform block stored as 12 floats,
// an envelope vector and radius used for bone display, and the parent
// index (-1 for a root bone).
type Joint struct {
	Name     string
	Matrix   [12]float32
	Envelope [3]float32
	Radius   float32
	Parent   int32
}

func readJoint(c *Cursor) (Joint, error) {
	var j Joint
	var err error
	if j.Name, err = c.ReadString(); err != nil {
		return j, err
	}
	m, err := c.ReadF32Array(12)
	if err != nil {
		return j, err
	}
	copy(j.Matrix[:], m)
	e, err := c.ReadF32Array(3)
	if err != nil {
		return j, err
	}
	copy(j.Envelope[:], e)
	if j.Radius, err = c.ReadF32(); err != nil {
		return j, err
	}
	if j.Parent, err = c.ReadI32(); err != nil {
		return j, err
	}
	return j, nil
}

func (j *Joint) write(w *Writer) {
	w.WriteString(j.Name)
	w.WriteF32Array(j.Matrix[:])
	w.WriteF32Array(j.Envelope[:])
	w.WriteF32(j.Radius)
	w.WriteI32(j.Parent)
}

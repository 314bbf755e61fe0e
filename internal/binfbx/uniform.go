package binfbx

import "fmt"

// UniformVariable is a named shader parameter. The type tag selects which
// payload field carries data: Floats for Float/Range/Vector/Color (1, 2, 3
// and 4 entries), Map for TextureMap, Flag for Boolean. TextureSampler and
// NoPayload have no payload at all.
type UniformVariable struct {
	Name   string
	Type   uint32
	Floats []float32
	Map    string
	Flag   uint32
}

// uniformFloatCount returns how many floats a float-shaped tag carries.
func uniformFloatCount(tag uint32) int {
	switch tag {
	case UniformFloat:
		return 1
	case UniformRange:
		return 2
	case UniformVector:
		return 3
	case UniformColor:
		return 4
	}
	return 0
}

func readUniformVariable(c *Cursor) (UniformVariable, error) {
	var u UniformVariable
	var err error
	if u.Name, err = c.ReadString(); err != nil {
		return u, err
	}
	if u.Type, err = c.ReadU32(); err != nil {
		return u, err
	}
	switch u.Type {
	case UniformFloat, UniformRange, UniformVector, UniformColor:
		if u.Floats, err = c.ReadF32Array(uniformFloatCount(u.Type)); err != nil {
			return u, err
		}
	case UniformTextureMap:
		if u.Map, err = c.ReadString(); err != nil {
			return u, err
		}
	case UniformBoolean:
		if u.Flag, err = c.ReadU32(); err != nil {
			return u, err
		}
	case UniformTextureSampler, UniformNoPayload:
		// no payload
	default:
		// The format has no self-describing length, so an unknown tag
		// makes everything after it unreadable.
		return u, fmt.Errorf("binfbx: uniform %q has unknown type tag 0x%x", u.Name, u.Type)
	}
	return u, nil
}

func (u *UniformVariable) write(w *Writer) error {
	w.WriteString(u.Name)
	w.WriteU32(u.Type)
	switch u.Type {
	case UniformFloat, UniformRange, UniformVector, UniformColor:
		w.WriteF32Array(u.Floats)
	case UniformTextureMap:
		w.WriteString(u.Map)
	case UniformBoolean:
		w.WriteU32(u.Flag)
	case UniformTextureSampler, UniformNoPayload:
	default:
		return fmt.Errorf("binfbx: uniform %q has unknown type tag 0x%x", u.Name, u.Type)
	}
	return nil
}

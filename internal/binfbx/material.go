package binfbx

import "fmt"

// Material is a named shader binding: an opaque 8-byte id, three strings
// (name, shader type, source path), a fixed render-parameter block and an
// ordered uniform list. The parameter block semantics are only partially
// recovered; the values are preserved verbatim.
type Material struct {
	ID       [8]byte
	Name     string
	Type     string
	Path     string
	Params   [6]uint32
	Uniforms []UniformVariable
}

// Indices into Material.Params for the fields with recovered meaning.
const (
	ParamRenderFlags = 0
	ParamDecalMode   = 1
	ParamLayout      = 2
	ParamLighting    = 3
	ParamFamily      = 4
	ParamRenderMode  = 5
)

func readMaterial(c *Cursor) (Material, error) {
	var m Material
	magic, err := c.ReadU32()
	if err != nil {
		return m, err
	}
	if magic != materialMagic {
		return m, fmt.Errorf("binfbx: material magic %d at offset %d, want %d", magic, c.Offset()-4, materialMagic)
	}
	id, err := c.ReadBytes(8)
	if err != nil {
		return m, err
	}
	copy(m.ID[:], id)
	if m.Name, err = c.ReadString(); err != nil {
		return m, err
	}
	if m.Type, err = c.ReadString(); err != nil {
		return m, err
	}
	if m.Path, err = c.ReadString(); err != nil {
		return m, err
	}
	params, err := c.ReadU32Array(6)
	if err != nil {
		return m, err
	}
	copy(m.Params[:], params)
	count, err := c.ReadU32()
	if err != nil {
		return m, err
	}
	m.Uniforms = make([]UniformVariable, 0, count)
	for i := uint32(0); i < count; i++ {
		u, err := readUniformVariable(c)
		if err != nil {
			return m, fmt.Errorf("binfbx: material %q: %w", m.Name, err)
		}
		m.Uniforms = append(m.Uniforms, u)
	}
	return m, nil
}

func (m *Material) write(w *Writer) error {
	w.WriteU32(materialMagic)
	w.WriteBytes(m.ID[:])
	w.WriteString(m.Name)
	w.WriteString(m.Type)
	w.WriteString(m.Path)
	w.WriteU32Array(m.Params[:])
	w.WriteU32(uint32(len(m.Uniforms)))
	for i := range m.Uniforms {
		if err := m.Uniforms[i].write(w); err != nil {
			return fmt.Errorf("binfbx: material %q: %w", m.Name, err)
		}
	}
	return nil
}

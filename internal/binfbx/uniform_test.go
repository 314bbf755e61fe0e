package binfbx

import "testing"

func TestReadUniformVariablePayloads(t *testing.T) {
	tests := []struct {
		name   string
		u      UniformVariable
		floats int
	}{
		{"float", UniformVariable{Name: "g_fAlpha", Type: UniformFloat, Floats: []float32{0.5}}, 1},
		{"range", UniformVariable{Name: "g_vRange", Type: UniformRange, Floats: []float32{0, 1}}, 2},
		{"vector", UniformVariable{Name: "g_vOffset", Type: UniformVector, Floats: []float32{1, 2, 3}}, 3},
		{"color", UniformVariable{Name: "g_vTint", Type: UniformColor, Floats: []float32{1, 0, 0, 1}}, 4},
		{"texturemap", UniformVariable{Name: "g_sDiffuse", Type: UniformTextureMap, Map: "runtimedata/t.dds"}, 0},
		{"sampler", UniformVariable{Name: "g_sSampler", Type: UniformTextureSampler}, 0},
		{"nopayload", UniformVariable{Name: "g_sVoid", Type: UniformNoPayload}, 0},
		{"boolean", UniformVariable{Name: "g_bSkinned", Type: UniformBoolean, Flag: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Writer{}
			if err := tt.u.write(w); err != nil {
				t.Fatal(err)
			}
			got, err := readUniformVariable(NewCursor(w.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != tt.u.Name || got.Type != tt.u.Type || got.Map != tt.u.Map || got.Flag != tt.u.Flag {
				t.Fatalf("got %+v, want %+v", got, tt.u)
			}
			if len(got.Floats) != tt.floats {
				t.Fatalf("got %d floats, want %d", len(got.Floats), tt.floats)
			}
		})
	}
}

func TestReadUniformVariableUnknownTag(t *testing.T) {
	w := &Writer{}
	w.WriteString("g_mystery")
	w.WriteU32(0x7f)
	if _, err := readUniformVariable(NewCursor(w.Bytes())); err == nil {
		t.Fatal("unknown tag did not fail")
	}
}

func TestWriteUniformVariableUnknownTag(t *testing.T) {
	u := UniformVariable{Name: "bad", Type: 0x7f}
	if err := u.write(&Writer{}); err == nil {
		t.Fatal("unknown tag did not fail on encode")
	}
}
